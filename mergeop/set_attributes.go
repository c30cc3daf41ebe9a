package mergeop

import (
	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/ir"
)

var setAttributesSym = &setAttributesSymbol{commandName: setAttributesTag}

func SetAttributes() Symbol {
	return setAttributesSym
}

const (
	setAttributesTag commandName = "setAttributes"
)

type setAttributesSymbol struct {
	commandName
}

func (s setAttributesSymbol) Instance(node *ir.Node) (Op, error) {
	return &setAttributesOp{
		op:    op{name: s.commandName, path: node.Path()},
		attrs: node.DataAttrs(),
	}, nil
}

type setAttributesOp struct {
	op
	attrs []ir.Attr
}

func (s *setAttributesOp) Apply(ctx *ir.Node, _ *OpContext) (bool, error) {
	if debug.Command() {
		debug.Logf("setAttributes %v on %s\n", s.attrs, ctx.Path())
	}
	for _, a := range s.attrs {
		ctx.SetAttr(a)
	}
	return false, nil
}
