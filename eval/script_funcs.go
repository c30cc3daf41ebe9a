package eval

import (
	"os"

	"github.com/signadot/xmod/ir"

	"github.com/expr-lang/expr"
)

func exprOpts(node *ir.Node) []expr.Option {
	return []expr.Option{
		expr.Function("whereami", func(params ...any) (any, error) {
			if node == nil {
				return "/", nil
			}
			return node.Path(), nil
		},
			new(func() string)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
