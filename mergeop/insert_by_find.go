package mergeop

import (
	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/ir"
)

var insertByFindSym = &insertByFindSymbol{commandName: insertByFindTag}

func InsertByFind() Symbol {
	return insertByFindSym
}

const (
	insertByFindTag commandName = "insertByFind"
)

type insertByFindSymbol struct {
	commandName
}

// Instance compiles an insertByFind tag. It needs a type attribute of
// "before" or "after", one mod find child locating the anchor and one
// mod-insert child holding the element to insert.
func (s insertByFindSymbol) Instance(node *ir.Node) (Op, error) {
	res := &insertByFindOp{op: op{name: s.commandName, path: node.Path()}}
	typ, ok := node.Attr("type")
	switch {
	case !ok:
		return nil, malformed(node, "requires a type attribute")
	case typ == "after":
		res.after = true
	case typ == "before":
	default:
		return nil, malformed(node, "type attribute is invalid, must be either 'before' or 'after'")
	}
	for _, c := range node.Children {
		if c.Type != ir.ElementType {
			continue
		}
		switch c.Space {
		case NS:
			sym := Lookup(c.Name)
			if sym == nil || !sym.IsFind() {
				return nil, malformed(c, "insertByFind expected a mod:find tag")
			}
			if res.find != nil {
				return nil, malformed(c, "insertByFind accepts only one mod:find tag")
			}
			f, err := sym.Instance(c)
			if err != nil {
				return nil, err
			}
			res.find = f.(Finder)
		case NSInsert:
			if res.node != nil {
				return nil, malformed(c, "insertByFind accepts only one mod-insert: tag")
			}
			res.node = payload(c)
		default:
			return nil, malformed(c, "insertByFind expected mod:%s or mod-insert:%s", c.Name, c.Name)
		}
	}
	if res.find == nil {
		return nil, malformed(node, "insertByFind is missing mod:find tag")
	}
	if res.node == nil {
		return nil, malformed(node, "insertByFind is missing mod-insert: tag")
	}
	return res, nil
}

type insertByFindOp struct {
	op
	after bool
	find  Finder
	node  *ir.Node
}

// Apply inserts before the first match or after the last one. With no
// matches it prepends (before) or appends (after).
func (o *insertByFindOp) Apply(ctx *ir.Node, oc *OpContext) (bool, error) {
	matches, err := o.find.Find(ctx, oc)
	if err != nil {
		return false, err
	}
	n := o.node.Clone()
	var i int
	switch {
	case len(matches) == 0 && o.after:
		i = len(ctx.Children)
	case len(matches) == 0:
		i = 0
	case o.after:
		i = ctx.IndexOf(matches[len(matches)-1]) + 1
	default:
		i = ctx.IndexOf(matches[0])
	}
	if len(ctx.Children) == 0 || i < 0 {
		i = 0
	}
	if debug.Command() {
		debug.Logf("insertByFind <%s> at %d of %s\n", n.Name, i, ctx.Path())
	}
	// InsertChild appends past the end
	ctx.InsertChild(i, n)
	return false, nil
}
