// Package xmod merges patch documents into XML documents.
//
// A patch is a sequence of top-level nodes. Plain content is appended to
// the target's root element; elements in the "mod" namespace find children
// of the root and run the commands nested under them. See package mergeop
// for the instruction set.
package xmod

import (
	"bytes"
	"fmt"

	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/encode"
	"github.com/signadot/xmod/ir"
	"github.com/signadot/xmod/mergeop"
	"github.com/signadot/xmod/parse"
)

type PatchConfig struct {
	ForcePanic bool
}

type PatchOpt func(*PatchConfig)

// PatchForcePanic makes every find in the patch fail when it selects
// nothing, as if each carried panic="true".
func PatchForcePanic(v bool) PatchOpt {
	return func(c *PatchConfig) { c.ForcePanic = v }
}

// Patch applies patch to a copy of target. target and patch are never
// modified.
func Patch(target, patch *ir.Node, opts ...PatchOpt) (*ir.Node, error) {
	cfg := &PatchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return PatchWith(target, patch, &mergeop.OpContext{ForcePanic: cfg.ForcePanic})
}

// PatchWith is Patch with an explicit operation context.
func PatchWith(target, patch *ir.Node, ctx *mergeop.OpContext) (*ir.Node, error) {
	prog, err := mergeop.Compile(patch)
	if err != nil {
		return nil, err
	}
	if debug.Patch() {
		debug.Logf("patch with %d steps\n", prog.Len())
	}
	return prog.Apply(target, ctx)
}

// Merge applies patch to a copy of target, optionally forcing every find
// to require a match.
func Merge(target, patch *ir.Node, forcePanic bool) (*ir.Node, error) {
	return Patch(target, patch, PatchForcePanic(forcePanic))
}

// PatchAll applies patches in order, each to the result of the previous
// one. The first failure aborts.
func PatchAll(target *ir.Node, patches []*ir.Node, opts ...PatchOpt) (*ir.Node, error) {
	res := target
	for i, p := range patches {
		next, err := Patch(res, p, opts...)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		res = next
	}
	if res == target {
		res = target.Clone()
	}
	return res, nil
}

// PatchXML parses target as a document and patch as a fragment, merges
// them and encodes the result.
func PatchXML(target, patch []byte, opts ...PatchOpt) ([]byte, error) {
	doc, err := parse.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	p, err := parse.ParseFragment(patch)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	res, err := Patch(doc, p, opts...)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(res, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
