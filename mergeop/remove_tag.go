package mergeop

import (
	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/ir"
)

var removeTagSym = &removeTagSymbol{commandName: removeTagTag}

func RemoveTag() Symbol {
	return removeTagSym
}

const (
	removeTagTag commandName = "removeTag"
)

type removeTagSymbol struct {
	commandName
}

func (s removeTagSymbol) Instance(node *ir.Node) (Op, error) {
	return &removeTagOp{op: op{name: s.commandName, path: node.Path()}}, nil
}

type removeTagOp struct {
	op
}

// Apply detaches ctx from its parent. No further commands run on ctx.
func (r *removeTagOp) Apply(ctx *ir.Node, _ *OpContext) (bool, error) {
	if debug.Command() {
		debug.Logf("removeTag on %s\n", ctx.Path())
	}
	ctx.Detach()
	return true, nil
}
