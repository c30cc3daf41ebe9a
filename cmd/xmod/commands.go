package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "xmod").
		WithSynopsis("xmod [opts] command [opts]").
		WithDescription("xmod applies mod: patch files to XML documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xmodMain(cfg, cc, args)
		}).
		WithSubs(
			PatchCommand(cfg),
			CheckCommand(cfg),
			FindCommand(cfg),
			DiffCommand(cfg),
			BuildCommand(cfg),
			TagsCommand(cfg))
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] <target> <patch> [patches]").
		WithDescription("apply patch files to a target document in order").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check <patch> [patches]").
		WithDescription("compile patch files without applying them").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Find, "find").
		WithAliases("f").
		WithSynopsis("find [opts] <target> <find>").
		WithDescription("print the elements a single find instruction selects").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: 3}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff a b").
		WithDescription("show a line diff of two documents after re-encoding").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func BuildCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BuildConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "e",
		Description: "set an env value",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(key=val)"),
	})
	return cli.NewCommandAt(&cfg.Build, "build").
		WithAliases("b").
		WithSynopsis("build [opts] [dir] [-- key=val...]").
		WithDescription(buildDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return build(cfg, cc, args)
		})
}

func TagsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TagsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Tags, "tags").
		WithSynopsis("tags").
		WithDescription("list the mod: instruction tags").
		WithRun(func(cc *cli.Context, args []string) error {
			return tags(cfg, cc, args)
		})
}

const buildDescription = `build applies patches to the targets of a build directory.

Build operates on a build directory, which defaults to the current directory.

Manifest

Build looks for build.yaml, build.yml, build.json or build.toml:

  # optional destination directory, relative to the build directory
  destDir: out

  # make every find require a match
  forcePanic: false

  # env holds values for $[expr] placeholders and 'when' conditions.
  env:
    profile: dev

  targets:
  - file: blueprints.xml
    out: blueprints-$[profile].xml   # defaults to the base name of file
    patches:
    - file: patches/crew.xml
    - file: patches/debug.xml
      when: profile == "dev"

Environment

The env can be set in 4 ways
1. in the manifest.
2. using '-e key=value'
3. using '-- key1=value1 key2=value2 ...'
4. setting $XMOD_ENV to a mapping such as '{profile: prod}'

Later ways take precedence over earlier ones.

Profiles

Profiles are files in the 'profiles' sub-directory holding an 'env:'
mapping merged over the manifest env. List them with -l and select one
with -p <profile>.

Watch

build -w rebuilds whenever a manifest, target or patch file changes.`
