package mergeop

import (
	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/ir"
)

var removeAttributesSym = &removeAttributesSymbol{commandName: removeAttributesTag}

func RemoveAttributes() Symbol {
	return removeAttributesSym
}

const (
	removeAttributesTag commandName = "removeAttributes"
)

type removeAttributesSymbol struct {
	commandName
}

// Instance compiles a removeAttributes tag. Only the names of its
// attributes are used.
func (s removeAttributesSymbol) Instance(node *ir.Node) (Op, error) {
	res := &removeAttributesOp{op: op{name: s.commandName, path: node.Path()}}
	for _, a := range node.DataAttrs() {
		res.names = append(res.names, a.Name)
	}
	return res, nil
}

type removeAttributesOp struct {
	op
	names []string
}

func (r *removeAttributesOp) Apply(ctx *ir.Node, _ *OpContext) (bool, error) {
	if debug.Command() {
		debug.Logf("removeAttributes %v on %s\n", r.names, ctx.Path())
	}
	for _, name := range r.names {
		ctx.RemoveAttr(name)
	}
	return false, nil
}
