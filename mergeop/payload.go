package mergeop

import (
	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/ir"
)

// Instruction namespaces.
const (
	NS          = "mod"
	NSAppend    = "mod-append"
	NSPrepend   = "mod-prepend"
	NSOverwrite = "mod-overwrite"
	NSInsert    = "mod-insert"
)

// payload returns a detached copy of node without its namespace. Nested
// elements keep theirs.
func payload(node *ir.Node) *ir.Node {
	res := node.Clone()
	res.Space = ""
	return res
}

// payloadOp adds a copy of a literal element to the context.
type payloadOp struct {
	op
	node *ir.Node
}

func newPayloadOp(node *ir.Node) *payloadOp {
	return &payloadOp{
		op:   op{name: commandName(node.Space), path: node.Path()},
		node: payload(node),
	}
}

func (p *payloadOp) Apply(ctx *ir.Node, _ *OpContext) (bool, error) {
	if debug.Command() {
		debug.Logf("%s <%s> on %s\n", p, p.node.Name, ctx.Path())
	}
	n := p.node.Clone()
	switch p.name.String() {
	case NSAppend:
		ctx.AppendChild(n)
	case NSPrepend:
		ctx.PrependChild(n)
	case NSOverwrite:
		old := ctx.Element("", n.Name)
		if old == nil {
			ctx.AppendChild(n)
			break
		}
		i := ctx.IndexOf(old)
		ctx.RemoveChildAt(i)
		ctx.InsertChild(i, n)
	}
	return false, nil
}
