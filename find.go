package xmod

import (
	"github.com/signadot/xmod/ir"
	"github.com/signadot/xmod/mergeop"
)

// Find runs a single find instruction against the children of the root
// element of doc and returns the matches. Commands nested under find are
// not run.
func Find(doc, find *ir.Node, opts ...PatchOpt) ([]*ir.Node, error) {
	cfg := &PatchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	f, err := mergeop.CompileFind(find)
	if err != nil {
		return nil, err
	}
	root := doc.RootElement()
	if root == nil {
		return nil, mergeop.ErrNoTargetRoot
	}
	return f.Find(root, &mergeop.OpContext{ForcePanic: cfg.ForcePanic})
}
