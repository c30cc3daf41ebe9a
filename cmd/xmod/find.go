package main

import (
	"fmt"

	"github.com/signadot/xmod"
	"github.com/signadot/xmod/encode"
	"github.com/signadot/xmod/ir"
	"github.com/signadot/xmod/parse"

	"github.com/scott-cotton/cli"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		cfg.Find.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: find requires a target and a find instruction", cli.ErrUsage)
	}
	doc, err := getDocFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	f, err := getFind(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return err
	}
	matches, err := xmod.Find(doc, f, xmod.PatchForcePanic(cfg.Force))
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	for _, m := range matches {
		if cfg.Paths {
			fmt.Fprintln(cc.Out, m.Path())
			continue
		}
		if err := encode.Encode(m, cc.Out, opts...); err != nil {
			return err
		}
		fmt.Fprintln(cc.Out)
	}
	return nil
}

// getFind accepts a file or, when arg starts with '<', the instruction
// itself.
func getFind(cc *cli.Context, arg string, opts ...parse.ParseOption) (*ir.Node, error) {
	var (
		frag *ir.Node
		err  error
	)
	if len(arg) != 0 && arg[0] == '<' {
		frag, err = parse.ParseFragment([]byte(arg), opts...)
	} else {
		frag, err = getPatchFile(cc, arg, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding find %s: %w", arg, err)
	}
	elts := frag.Elements()
	if len(elts) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one find instruction, got %d elements", cli.ErrUsage, len(elts))
	}
	return elts[0], nil
}
