package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os/signal"
	"slices"
	"syscall"

	"github.com/signadot/xmod/dirbuild"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func build(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		return err
	}
	args, err = parseEnvExtras(cfg, cc, args)
	if err != nil {
		return err
	}
	dirPath := "."
	if len(args) != 0 {
		dirPath = args[0]
	}
	if cfg.ShowEnv && cfg.List {
		return fmt.Errorf("%w: cannot use -s and -l together", cli.ErrUsage)
	}
	env, err := buildEnv(cfg)
	if err != nil {
		return err
	}
	dir, err := openDir(cfg, dirPath, env)
	if err != nil {
		return err
	}
	if cfg.List {
		profiles, err := dir.Profiles()
		if err != nil {
			return fmt.Errorf("error getting profiles: %w", err)
		}
		for _, profile := range profiles {
			fmt.Fprintln(cc.Out, profile)
		}
		return nil
	}
	if cfg.ShowEnv {
		d, err := yaml.MarshalWithOptions(dir.Env, yaml.Indent(2))
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "# build environment:\n%s", d)
		return nil
	}
	var w io.Writer = cc.Out
	if dir.DestDir != "" && cfg.Out == "" {
		w = nil
	}
	if w != nil {
		dir.DestDir = ""
	}
	opts := cfg.MainConfig.encOpts(w)
	_, err = dir.Run(context.Background(), w, opts...)
	if !cfg.Watch {
		return err
	}
	if err != nil {
		theLog.Error("initial build failed", "error", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return dir.Watch(ctx, func(ctx context.Context) error {
		// reopen so manifest edits take effect
		next, err := openDir(cfg, dirPath, env)
		if err != nil {
			return err
		}
		if w != nil {
			next.DestDir = ""
		}
		_, err = next.Run(ctx, w, opts...)
		return err
	})
}

func openDir(cfg *BuildConfig, path string, env map[string]any) (*dirbuild.Dir, error) {
	dir, err := dirbuild.OpenDir(path, env)
	if err != nil {
		return nil, err
	}
	dir.Log = theLog
	dir.ForcePanic = dir.ForcePanic || cfg.Force
	if cfg.Profile != "" {
		if err := dir.LoadProfile(cfg.Profile, env); err != nil {
			return nil, fmt.Errorf("error loading profile %s: %w", cfg.Profile, err)
		}
		dir.ForcePanic = dir.ForcePanic || cfg.Force
	}
	return dir, nil
}

// buildEnv merges $XMOD_ENV under the -e and trailing key=value arguments.
func buildEnv(cfg *BuildConfig) (map[string]any, error) {
	env, err := dirbuild.LoadEnv()
	if err != nil {
		return nil, err
	}
	if env == nil {
		env = map[string]any{}
	}
	for _, k := range slices.Sorted(maps.Keys(cfg.Env)) {
		env[k] = cfg.Env[k]
	}
	return env, nil
}

func envOptTypeFunc(env map[string]any) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := dirbuild.ParseEnvArg(env, a); err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		return 0, nil
	}
}

func parseEnvExtras(cfg *BuildConfig, cc *cli.Context, args []string) ([]string, error) {
	delim := -1
	for i, arg := range args {
		if arg == "--" {
			delim = i
			break
		}
	}
	if delim == -1 {
		return args, nil
	}
	f := envOptTypeFunc(cfg.Env)
	ret := args[:delim]
	delim++
	for delim < len(args) {
		arg := args[delim]
		delim++
		_, err := f(cc, arg)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}
