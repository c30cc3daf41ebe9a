package mergeop

import "github.com/signadot/xmod/ir"

var findLikeSym = &findLikeSymbol{finderName: findLikeTag}

func FindLike() Symbol {
	return findLikeSym
}

const (
	findLikeTag finderName = "findLike"
)

type findLikeSymbol struct {
	finderName
}

// Instance compiles a findLike tag. The attributes and trimmed text of its
// mod:selector child are matched against each child of the context.
func (s findLikeSymbol) Instance(node *ir.Node) (Op, error) {
	sl, err := parseSlicing(node, false, -1)
	if err != nil {
		return nil, err
	}
	regex, err := boolAttr(node, "regex", false)
	if err != nil {
		return nil, err
	}
	typ, err := optAttr(node, "type")
	if err != nil {
		return nil, err
	}
	if err := sl.check(node); err != nil {
		return nil, err
	}
	sel, err := selectorOf(node)
	if err != nil {
		return nil, err
	}
	f, err := NewFilter(typ, sel.attrs, sel.value, regex)
	if err != nil {
		return nil, withPath(err, node)
	}
	return &filterFind{
		op:      op{name: s.finderName, path: node.Path()},
		slicing: sl,
		filter:  f,
	}, nil
}
