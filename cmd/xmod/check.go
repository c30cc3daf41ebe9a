package main

import (
	"errors"
	"fmt"

	"github.com/signadot/xmod/mergeop"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check requires at least one patch file", cli.ErrUsage)
	}
	var errs []error
	for _, pf := range args {
		p, err := getPatchFile(cc, pf, cfg.parseOpts()...)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", pf, err))
			continue
		}
		prog, err := mergeop.Compile(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", pf, err))
			continue
		}
		fmt.Fprintf(cc.Out, "%s: ok, %d steps\n", pf, prog.Len())
	}
	return errors.Join(errs...)
}
