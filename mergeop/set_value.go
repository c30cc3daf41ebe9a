package mergeop

import (
	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/ir"
)

var setValueSym = &setValueSymbol{commandName: setValueTag}

func SetValue() Symbol {
	return setValueSym
}

const (
	setValueTag commandName = "setValue"
)

type setValueSymbol struct {
	commandName
}

func (s setValueSymbol) Instance(node *ir.Node) (Op, error) {
	return &setValueOp{
		op:   op{name: s.commandName, path: node.Path()},
		text: node.TextTrim(),
	}, nil
}

type setValueOp struct {
	op
	text string
}

// Apply replaces all content of ctx, child elements included, with one
// text run.
func (s *setValueOp) Apply(ctx *ir.Node, _ *OpContext) (bool, error) {
	if debug.Command() {
		debug.Logf("setValue %q on %s\n", s.text, ctx.Path())
	}
	ctx.SetText(s.text)
	return false, nil
}
