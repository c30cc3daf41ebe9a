package mergeop

import (
	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/ir"
)

var parSym = &parSymbol{auxName: parTag}

func Par() Symbol {
	return parSym
}

const (
	parTag auxName = "par"
)

type parSymbol struct {
	auxName
}

// Instance compiles a par tag: a boolean combination of the results of its
// child find and par tags.
func (s parSymbol) Instance(node *ir.Node) (Op, error) {
	res := &parOp{op: op{name: s.auxName, path: node.Path()}}
	res.opName, _ = node.Attr("op")
	switch res.opName {
	case "AND":
	case "OR":
		res.isOr = true
	case "NAND":
		res.isNot = true
	case "NOR":
		res.isOr = true
		res.isNot = true
	default:
		return nil, malformed(node, "invalid \"op\" attribute: must be 'AND', 'OR', 'NAND', or 'NOR'")
	}
	for _, c := range node.Children {
		if c.Type != ir.ElementType {
			continue
		}
		f, err := parCriterion(c)
		if err != nil {
			return nil, err
		}
		res.criteria = append(res.criteria, f)
	}
	return res, nil
}

func parCriterion(node *ir.Node) (Finder, error) {
	if node.Space == NS {
		sym := Lookup(node.Name)
		if sym != nil && (sym.IsFind() || sym.String() == parTag.String()) {
			o, err := sym.Instance(node)
			if err != nil {
				return nil, err
			}
			return o.(Finder), nil
		}
	}
	return nil, malformed(node, "invalid <par> search criteria: must be a <find...> or <par>")
}

type parOp struct {
	op
	opName   string
	isOr     bool
	isNot    bool
	criteria []Finder
}

// Find seeds a candidate set with the first criterion's matches, then
// unions or intersects the rest, complements against the element children
// of ctx for NAND and NOR, and returns the result in document order.
func (p *parOp) Find(ctx *ir.Node, oc *OpContext) ([]*ir.Node, error) {
	set := map[*ir.Node]bool{}
	for i, c := range p.criteria {
		matches, err := c.Find(ctx, oc)
		if err != nil {
			return nil, err
		}
		if i == 0 || p.isOr {
			for _, m := range matches {
				set[m] = true
			}
			continue
		}
		keep := make(map[*ir.Node]bool, len(matches))
		for _, m := range matches {
			if set[m] {
				keep[m] = true
			}
		}
		set = keep
	}
	var res []*ir.Node
	for _, c := range ctx.Children {
		if c.Type != ir.ElementType {
			continue
		}
		if set[c] != p.isNot {
			res = append(res, c)
		}
	}
	if debug.Find() {
		debug.Logf("par %s on %s: %d matches\n", p.opName, ctx.Path(), len(res))
	}
	return res, nil
}
