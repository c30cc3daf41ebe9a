package mergeop

import (
	"slices"

	"github.com/signadot/xmod/ir"
)

// slicing holds the attributes shared by all find tags.
type slicing struct {
	reverse bool
	start   int
	limit   int
	panic   bool
}

func parseSlicing(node *ir.Node, reverse bool, limit int) (slicing, error) {
	var (
		s   slicing
		err error
	)
	if s.reverse, err = boolAttr(node, "reverse", reverse); err != nil {
		return s, err
	}
	if s.start, err = intAttr(node, "start", 0); err != nil {
		return s, err
	}
	if s.limit, err = intAttr(node, "limit", limit); err != nil {
		return s, err
	}
	if s.panic, err = boolAttr(node, "panic", false); err != nil {
		return s, err
	}
	return s, nil
}

func (s slicing) check(node *ir.Node) error {
	if s.start < 0 {
		return malformed(node, "'start' attribute is not >= 0")
	}
	if s.limit < -1 {
		return malformed(node, "'limit' attribute is not >= -1")
	}
	return nil
}

// apply reverses matches if requested and then keeps the window
// [start, start+limit). matches may be reordered in place.
func (s slicing) apply(matches []*ir.Node) []*ir.Node {
	if s.reverse {
		slices.Reverse(matches)
	}
	n := len(matches)
	if s.start >= n {
		return nil
	}
	end := n
	if s.limit != -1 {
		end = min(n, s.start+s.limit)
	}
	return matches[s.start:end]
}

// finish slices matches and enforces panic for the find at path.
func (s slicing) finish(o op, matches []*ir.Node, oc *OpContext) ([]*ir.Node, error) {
	res := s.apply(matches)
	if len(res) == 0 && (s.panic || oc.forcePanic()) {
		return nil, &InstructionError{
			Err:  ErrRequiredMatch,
			Tag:  "mod:" + o.String(),
			Path: o.path,
			Msg:  "was set to require results but found none",
		}
	}
	return res, nil
}
