package mergeop

import (
	"errors"
	"fmt"

	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/ir"
)

var ErrNoTargetRoot = errors.New("target has no root element")

// Program is a compiled patch. It is immutable and safe for concurrent
// use.
type Program struct {
	steps []step
}

// step is one top-level child of a patch: a find with its commands, or
// literal content appended to the target root.
type step struct {
	find    *scoped
	literal *ir.Node
}

// Compile validates a patch and compiles its mod tags. patch is a document
// or an element whose children are the top-level instructions, such as the
// result of parse.ParseFragment.
func Compile(patch *ir.Node) (*Program, error) {
	root := patch.RootElement()
	if root == nil {
		return nil, fmt.Errorf("%w: patch has no root element", ErrMalformed)
	}
	res := &Program{}
	for _, c := range root.Children {
		if c.Type != ir.ElementType || c.Space != NS {
			res.steps = append(res.steps, step{literal: c.Clone()})
			continue
		}
		f, err := compileScoped(c)
		if err != nil {
			return nil, err
		}
		res.steps = append(res.steps, step{find: f})
	}
	if debug.Compile() {
		debug.Logf("compiled %d steps from %s\n", len(res.steps), root.Path())
	}
	return res, nil
}

// CompileFind compiles a single find tag, ignoring any commands under it.
func CompileFind(node *ir.Node) (Finder, error) {
	sym := lookupFind(node)
	if sym == nil {
		return nil, malformed(node, "not a find tag")
	}
	o, err := sym.Instance(node)
	if err != nil {
		return nil, err
	}
	return o.(Finder), nil
}

func lookupFind(node *ir.Node) Symbol {
	if node.Type != ir.ElementType || node.Space != NS {
		return nil
	}
	sym := Lookup(node.Name)
	if sym == nil || !sym.IsFind() {
		return nil
	}
	return sym
}

func compileScoped(node *ir.Node) (*scoped, error) {
	sym := lookupFind(node)
	if sym == nil {
		return nil, malformed(node, "unrecognized mod tag")
	}
	o, err := sym.Instance(node)
	if err != nil {
		return nil, err
	}
	cmds, err := compileCommands(node)
	if err != nil {
		return nil, err
	}
	return &scoped{Finder: o.(Finder), cmds: cmds}, nil
}

// compileCommands compiles the element children of node as commands.
// selector and par children carry data for node itself and are skipped.
func compileCommands(node *ir.Node) ([]Command, error) {
	var res []Command
	for _, c := range node.Children {
		if c.Type != ir.ElementType {
			continue
		}
		switch c.Space {
		case NS:
			sym := Lookup(c.Name)
			if sym == nil {
				return nil, malformed(c, "unrecognized mod tag")
			}
			switch {
			case sym.IsFind():
				s, err := compileScoped(c)
				if err != nil {
					return nil, err
				}
				res = append(res, s)
			case sym.IsCommand():
				o, err := sym.Instance(c)
				if err != nil {
					return nil, err
				}
				res = append(res, o.(Command))
			}
		case NSAppend, NSPrepend, NSOverwrite:
			res = append(res, newPayloadOp(c))
		default:
			return nil, malformed(c, "unrecognized tag namespace %q", c.Space)
		}
	}
	return res, nil
}

// Len returns the number of top-level steps.
func (p *Program) Len() int {
	return len(p.steps)
}

// Apply runs p against a deep copy of target and returns the copy. target
// itself is never modified.
func (p *Program) Apply(target *ir.Node, oc *OpContext) (*ir.Node, error) {
	res := target.Clone()
	root := res.RootElement()
	if root == nil {
		return nil, ErrNoTargetRoot
	}
	for i := range p.steps {
		s := &p.steps[i]
		if s.literal != nil {
			if debug.Patch() {
				debug.Logf("patch append %s\n", s.literal.Type)
			}
			root.AppendChild(s.literal.Clone())
			continue
		}
		if debug.Patch() {
			debug.Logf("patch %s at %s\n", s.find, s.find.Path())
		}
		if _, err := s.find.Apply(root, oc); err != nil {
			return nil, err
		}
	}
	return res, nil
}
