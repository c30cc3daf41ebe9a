package dirbuild

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/signadot/xmod"
	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/encode"
	"github.com/signadot/xmod/eval"
	"github.com/signadot/xmod/ir"
	"github.com/signadot/xmod/mergeop"
	"github.com/signadot/xmod/parse"
)

// Result describes one built target.
type Result struct {
	Target  string
	Out     string
	Applied []string
	Skipped []string
	Doc     *ir.Node
}

// Run builds every target in manifest order. With a destDir each result
// is written to its own file there; otherwise results are written to w one
// after another. The first failing target aborts the build.
func (d *Dir) Run(ctx context.Context, w io.Writer, opts ...encode.EncodeOption) ([]*Result, error) {
	d.nameCache = map[string]int{}
	res := make([]*Result, 0, len(d.Targets))
	for i := range d.Targets {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		r, err := d.runTarget(&d.Targets[i])
		if err != nil {
			d.Log.Error("build failed", "target", d.Targets[i].File, "error", err)
			return res, err
		}
		if err := d.writeOut(w, r, opts...); err != nil {
			return res, fmt.Errorf("%s: %w", r.Target, err)
		}
		d.Log.Info("built", "target", r.Target, "out", r.Out,
			"applied", len(r.Applied), "skipped", len(r.Skipped))
		res = append(res, r)
	}
	return res, nil
}

func (d *Dir) runTarget(t *Target) (*Result, error) {
	file, err := d.expand(t.File)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", t.File, err)
	}
	data, err := os.ReadFile(d.path(file))
	if err != nil {
		return nil, err
	}
	doc, err := parse.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	out := t.Out
	if out == "" {
		out = filepath.Base(file)
	}
	out, err = d.expand(out)
	if err != nil {
		return nil, fmt.Errorf("%s: out: %w", file, err)
	}
	res := &Result{Target: file, Out: out}
	oc := &mergeop.OpContext{ForcePanic: d.ForcePanic}
	for _, p := range t.Patches {
		pFile, err := d.expand(p.File)
		if err != nil {
			return nil, fmt.Errorf("%s: patch %s: %w", file, p.File, err)
		}
		ok, err := eval.Truth(p.When, eval.Env(d.Env))
		if err != nil {
			return nil, fmt.Errorf("%s: patch %s: %w", file, pFile, err)
		}
		if !ok {
			if debug.Build() {
				debug.Logf("skip %s for %s\n", p, file)
			}
			res.Skipped = append(res.Skipped, pFile)
			continue
		}
		patch, err := d.loadPatch(pFile)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		next, err := xmod.PatchWith(doc, patch, oc)
		if err != nil {
			return nil, fmt.Errorf("%s: patch %s: %w", file, pFile, err)
		}
		if debug.Build() {
			debug.Logf("applied %s to %s\n", pFile, file)
		}
		doc = next
		res.Applied = append(res.Applied, pFile)
	}
	res.Doc = doc
	return res, nil
}

func (d *Dir) loadPatch(file string) (*ir.Node, error) {
	data, err := os.ReadFile(d.path(file))
	if err != nil {
		return nil, err
	}
	patch, err := parse.ParseFragment(data)
	if err != nil {
		return nil, fmt.Errorf("patch %s: %w", file, err)
	}
	if err := eval.ExpandIR(patch, eval.Env(d.Env)); err != nil {
		return nil, fmt.Errorf("patch %s: %w", file, err)
	}
	return patch, nil
}
