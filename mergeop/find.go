package mergeop

import (
	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/ir"
)

// filterFind is the compiled form of findName, findLike and
// findWithChildLike.
type filterFind struct {
	op
	slicing
	filter *Filter
}

func (f *filterFind) Find(ctx *ir.Node, oc *OpContext) ([]*ir.Node, error) {
	matches, err := f.filter.Select(ctx)
	if err != nil {
		return nil, err
	}
	if debug.Find() {
		debug.Logf("%s [%s] on %s: %d matches\n", f, f.filter, ctx.Path(), len(matches))
	}
	return f.finish(f.op, matches, oc)
}

// selectorOf instantiates the mod:selector child of node, if any.
func selectorOf(node *ir.Node) (*selectorOp, error) {
	child := node.Element(NS, selectorTag.String())
	if child == nil {
		return &selectorOp{}, nil
	}
	sel, err := Selector().Instance(child)
	if err != nil {
		return nil, err
	}
	return sel.(*selectorOp), nil
}
