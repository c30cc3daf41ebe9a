package main

import (
	"io"
	"os"

	"github.com/signadot/xmod/encode"
	"github.com/signadot/xmod/parse"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color      bool `cli:"name=color desc='encode with color'"`
	Indent     int  `cli:"name=indent desc='re-indent output with n spaces'"`
	Tabs       bool `cli:"name=tabs desc='re-indent output with tabs'"`
	Decl       bool `cli:"name=decl desc='add an xml declaration to output documents'"`
	Permissive bool `cli:"name=permissive desc='accept sloppy xml input'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{
		parse.ParsePermissive(cfg.Permissive),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeIndent(cfg.Indent),
		encode.EncodeTabs(cfg.Tabs),
		encode.EncodeDeclaration(cfg.Decl),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	if cfg.colorSet() {
		return res
	}
	if isTerminal(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) colorSet() bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		return opt.Value != nil
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type PatchConfig struct {
	*MainConfig
	Force bool `cli:"name=f desc='make every find require a match'"`
	Diff  bool `cli:"name=diff desc='print a diff against the target instead of the result'"`

	Patch *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type FindConfig struct {
	*MainConfig
	Force bool `cli:"name=f desc='fail when nothing is selected'"`
	Paths bool `cli:"name=paths desc='print breadcrumbs instead of elements'"`

	Find *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Context int `cli:"name=U desc='lines of context'"`

	Diff *cli.Command
}

type BuildConfig struct {
	*MainConfig
	Env map[string]any

	Force   bool   `cli:"name=f desc='make every find require a match'"`
	List    bool   `cli:"name=l aliases=list desc='list profiles'"`
	Profile string `cli:"name=p aliases=profile desc='profile to build'"`
	ShowEnv bool   `cli:"name=s aliases=show desc='show environment'"`
	Watch   bool   `cli:"name=w aliases=watch desc='rebuild on changes'"`

	Build *cli.Command
}

type TagsConfig struct {
	*MainConfig

	Tags *cli.Command
}
