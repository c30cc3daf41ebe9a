package main

import (
	"bytes"
	"fmt"

	"github.com/signadot/xmod"
	"github.com/signadot/xmod/encode"
	"github.com/signadot/xmod/ir"
	"github.com/signadot/xmod/libdiff"
	"github.com/signadot/xmod/mergeop"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: patch requires a target and at least one patch file", cli.ErrUsage)
	}
	target, err := getDocFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	oc := &mergeop.OpContext{ForcePanic: cfg.Force}
	res := target
	for _, pf := range args[1:] {
		p, err := getPatchFile(cc, pf, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", pf, err)
		}
		next, err := xmod.PatchWith(res, p, oc)
		if err != nil {
			return fmt.Errorf("error applying %s: %w", pf, err)
		}
		theLog.Debug("applied", "patch", pf)
		res = next
	}
	if cfg.Diff {
		_, err := writeDiff(cfg.MainConfig, cc, args[0], "patched", target, res, 3)
		return err
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = cc.Out.Write([]byte{'\n'})
	return err
}

// writeDiff re-encodes a and b without color so that layout differences in
// the inputs do not show up as changes, then writes a unified diff.
func writeDiff(cfg *MainConfig, cc *cli.Context, aName, bName string, a, b *ir.Node, context int) (bool, error) {
	opts := []encode.EncodeOption{encode.EncodeIndent(2)}
	switch {
	case cfg.Tabs:
		opts = []encode.EncodeOption{encode.EncodeTabs(true)}
	case cfg.Indent > 0:
		opts = []encode.EncodeOption{encode.EncodeIndent(cfg.Indent)}
	}
	aBuf, bBuf := &bytes.Buffer{}, &bytes.Buffer{}
	if err := encode.Encode(a, aBuf, opts...); err != nil {
		return false, err
	}
	if err := encode.Encode(b, bBuf, opts...); err != nil {
		return false, err
	}
	hunks := libdiff.Lines(aBuf.String()+"\n", bBuf.String()+"\n")
	color := cfg.Color || (!cfg.colorSet() && isTerminal(cc.Out))
	err := libdiff.Unified(cc.Out, aName, bName, hunks,
		libdiff.UnifiedContext(context), libdiff.UnifiedColor(color))
	return libdiff.Changed(hunks), err
}
