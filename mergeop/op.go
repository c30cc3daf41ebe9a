package mergeop

import "github.com/signadot/xmod/ir"

// Op is a compiled instruction tag.
type Op interface {
	String() string
	// Path is the breadcrumb of the tag in the patch it was compiled from.
	Path() string
}

type op struct {
	name Name
	path string
}

func (o op) String() string {
	return o.name.String()
}

func (o op) Path() string {
	return o.path
}

func (o op) IsFind() bool {
	return o.name.IsFind()
}

func (o op) IsCommand() bool {
	return o.name.IsCommand()
}

// Finder selects direct element children of a context element.
type Finder interface {
	Op
	Find(ctx *ir.Node, oc *OpContext) ([]*ir.Node, error)
}

// Command mutates a context element. Apply reports whether the remaining
// commands for the same context must be skipped.
type Command interface {
	Op
	Apply(ctx *ir.Node, oc *OpContext) (stop bool, err error)
}

// scoped runs the commands nested under a find tag against each match.
type scoped struct {
	Finder
	cmds []Command
}

func (s *scoped) Apply(ctx *ir.Node, oc *OpContext) (bool, error) {
	matches, err := s.Find(ctx, oc)
	if err != nil {
		return false, err
	}
	for _, m := range matches {
		if err := runCommands(m, s.cmds, oc); err != nil {
			return false, err
		}
	}
	return false, nil
}

func runCommands(ctx *ir.Node, cmds []Command, oc *OpContext) error {
	for _, c := range cmds {
		stop, err := c.Apply(ctx, oc)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return nil
}
