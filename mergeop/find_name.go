package mergeop

import "github.com/signadot/xmod/ir"

var findNameSym = &findNameSymbol{finderName: findNameTag}

func FindName() Symbol {
	return findNameSym
}

const (
	findNameTag finderName = "findName"
)

type findNameSymbol struct {
	finderName
}

// Instance compiles a findName tag. It selects children whose name
// attribute, and type when given, match. By default only the last such
// child is selected.
func (s findNameSymbol) Instance(node *ir.Node) (Op, error) {
	sl, err := parseSlicing(node, true, 1)
	if err != nil {
		return nil, err
	}
	regex, err := boolAttr(node, "regex", false)
	if err != nil {
		return nil, err
	}
	name, _ := node.Attr("name")
	if name == "" {
		return nil, malformed(node, "requires a name attribute")
	}
	typ, err := optAttr(node, "type")
	if err != nil {
		return nil, err
	}
	if err := sl.check(node); err != nil {
		return nil, err
	}
	f, err := NewFilter(typ, []ir.Attr{{Name: "name", Value: name}}, "", regex)
	if err != nil {
		return nil, withPath(err, node)
	}
	return &filterFind{
		op:      op{name: s.finderName, path: node.Path()},
		slicing: sl,
		filter:  f,
	}, nil
}
