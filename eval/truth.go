package eval

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Truth evaluates a condition. An empty condition is true; anything else
// must evaluate to a bool. A condition may be written bare or as $[...].
func Truth(cond string, env Env) (bool, error) {
	cond = strings.TrimSpace(cond)
	if strings.HasPrefix(cond, "$[") && strings.HasSuffix(cond, "]") {
		cond = strings.TrimSpace(cond[2 : len(cond)-1])
	}
	if cond == "" {
		return true, nil
	}
	opts := append(exprOpts(nil), expr.AsBool())
	program, err := expr.Compile(cond, opts...)
	if err != nil {
		return false, fmt.Errorf("error compiling condition %q: %w", cond, err)
	}
	v, err := vm.Run(program, map[string]any(env))
	if err != nil {
		return false, fmt.Errorf("error evaluating condition %q: %w", cond, err)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q gave %T, want bool", cond, v)
	}
	return b, nil
}
