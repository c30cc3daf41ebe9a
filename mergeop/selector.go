package mergeop

import (
	"fmt"

	"github.com/signadot/xmod/ir"
)

var selectorSym = &selectorSymbol{auxName: selectorTag}

func Selector() Symbol {
	return selectorSym
}

const (
	selectorTag auxName = "selector"
)

type selectorSymbol struct {
	auxName
}

func (s selectorSymbol) Instance(node *ir.Node) (Op, error) {
	res := &selectorOp{op: op{name: s.auxName, path: node.Path()}}
	for _, a := range node.DataAttrs() {
		if a.Space != "" {
			continue
		}
		if a.Value == "" {
			return nil, malformed(node, "attributes, when present, can't be empty")
		}
		res.attrs = append(res.attrs, a)
	}
	res.value = node.TextTrim()
	return res, nil
}

// selectorOp is the match-by-example data of a mod:selector tag: its
// no-namespace attributes and trimmed text.
type selectorOp struct {
	op
	attrs []ir.Attr
	value string
}

func (s *selectorOp) String() string {
	return fmt.Sprintf("%s%v %q", s.op, s.attrs, s.value)
}
