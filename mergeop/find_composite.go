package mergeop

import "github.com/signadot/xmod/ir"

var findCompositeSym = &findCompositeSymbol{finderName: findCompositeTag}

func FindComposite() Symbol {
	return findCompositeSym
}

const (
	findCompositeTag finderName = "findComposite"
)

type findCompositeSymbol struct {
	finderName
}

func (s findCompositeSymbol) Instance(node *ir.Node) (Op, error) {
	sl, err := parseSlicing(node, false, -1)
	if err != nil {
		return nil, err
	}
	if err := sl.check(node); err != nil {
		return nil, err
	}
	parNode := node.Element(NS, parTag.String())
	if parNode == nil {
		return nil, malformed(node, "requires a <par> tag")
	}
	par, err := Par().Instance(parNode)
	if err != nil {
		return nil, err
	}
	return &findCompositeOp{
		op:      op{name: s.finderName, path: node.Path()},
		slicing: sl,
		par:     par.(*parOp),
	}, nil
}

type findCompositeOp struct {
	op
	slicing
	par *parOp
}

func (f *findCompositeOp) Find(ctx *ir.Node, oc *OpContext) ([]*ir.Node, error) {
	matches, err := f.par.Find(ctx, oc)
	if err != nil {
		return nil, err
	}
	return f.finish(f.op, matches, oc)
}
