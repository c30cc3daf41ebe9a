package mergeop

import "github.com/signadot/xmod/ir"

var findWithChildLikeSym = &findWithChildLikeSymbol{finderName: findWithChildLikeTag}

func FindWithChildLike() Symbol {
	return findWithChildLikeSym
}

const (
	findWithChildLikeTag finderName = "findWithChildLike"
)

type findWithChildLikeSymbol struct {
	finderName
}

// Instance compiles a findWithChildLike tag. It selects children named by
// type that have at least one element child named by child-type and
// matching the mod:selector child.
func (s findWithChildLikeSymbol) Instance(node *ir.Node) (Op, error) {
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
	childType, err := optAttr(node, "child-type")
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
	child, err := NewFilter(childType, sel.attrs, sel.value, regex)
	if err != nil {
		return nil, withPath(err, node)
	}
	f, err := NewWithChildFilter(typ, child, regex)
	if err != nil {
		return nil, withPath(err, node)
	}
	return &filterFind{
		op:      op{name: s.finderName, path: node.Path()},
		slicing: sl,
		filter:  f,
	}, nil
}
