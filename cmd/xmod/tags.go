package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/xmod/mergeop"

	"github.com/scott-cotton/cli"
)

func tags(cfg *TagsConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Tags.Parse(cc, args); err != nil {
		cfg.Tags.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	syms := mergeop.Symbols()
	slices.SortFunc(syms, func(a, b mergeop.Symbol) int {
		return strings.Compare(a.String(), b.String())
	})
	for _, s := range syms {
		kind := "aux"
		switch {
		case s.IsFind():
			kind = "find"
		case s.IsCommand():
			kind = "command"
		}
		fmt.Fprintf(cc.Out, "%s:%s\t%s\n", mergeop.NS, s, kind)
	}
	for _, ns := range []string{mergeop.NSAppend, mergeop.NSPrepend, mergeop.NSOverwrite, mergeop.NSInsert} {
		fmt.Fprintf(cc.Out, "%s:*\tpayload\n", ns)
	}
	return nil
}
