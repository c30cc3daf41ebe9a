// Package dirbuild interprets an xmod build directory.
//
// A build directory holds a manifest, build.yaml, build.yml, build.json or
// build.toml, naming target documents and the patches to apply to each:
//
//	destDir: out
//	forcePanic: false
//	env:
//	  profile: dev
//	targets:
//	- file: blueprints.xml
//	  patches:
//	  - file: patches/crew.xml
//	  - file: patches/debug.xml
//	    when: profile == "dev"
//
// File names may contain $[expr] placeholders and patches are expanded
// against the environment before they are applied. See package eval.
package dirbuild

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/eval"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

var manifestNames = []string{"build.yaml", "build.yml", "build.json", "build.toml"}

type Dir struct {
	Root       string         `yaml:"-" toml:"-"`
	DestDir    string         `yaml:"destDir,omitempty" toml:"destDir"`
	ForcePanic bool           `yaml:"forcePanic,omitempty" toml:"forcePanic"`
	Env        map[string]any `yaml:"env,omitempty" toml:"env"`
	Targets    []Target       `yaml:"targets" toml:"targets"`

	Log *slog.Logger `yaml:"-" toml:"-"`

	manifest  string
	nameCache map[string]int
}

type Target struct {
	File    string     `yaml:"file" toml:"file"`
	Patches []DirPatch `yaml:"patches,omitempty" toml:"patches"`
	Out     string     `yaml:"out,omitempty" toml:"out"`
}

type DirPatch struct {
	File string `yaml:"file" toml:"file"`
	When string `yaml:"when,omitempty" toml:"when"`
}

func (p DirPatch) String() string {
	if p.When == "" {
		return p.File
	}
	return p.File + " when " + p.When
}

// OpenDir reads the manifest in path. env overrides the manifest
// environment.
func OpenDir(path string, env map[string]any) (*Dir, error) {
	if debug.LoadEnv() {
		debug.Logf("OpenDir input env:\n%s\n", env)
	}
	var (
		mPath string
		d     []byte
	)
	for _, name := range manifestNames {
		candidate := filepath.Join(path, name)
		var err error
		d, err = os.ReadFile(candidate)
		if err == nil {
			mPath = candidate
			break
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %q: %w", candidate, err)
		}
	}
	if mPath == "" {
		return nil, fmt.Errorf("%w: no build.{yaml,yml,json,toml} in %q", ErrManifest, path)
	}
	dir := &Dir{Root: path, manifest: mPath}
	if err := decodeManifest(mPath, d, dir); err != nil {
		return nil, err
	}
	if err := dir.init(env); err != nil {
		return nil, fmt.Errorf("%s: %w", mPath, err)
	}
	return dir, nil
}

func decodeManifest(path string, d []byte, dir *Dir) error {
	var err error
	if filepath.Ext(path) == ".toml" {
		_, err = toml.Decode(string(d), dir)
	} else {
		err = yaml.Unmarshal(d, dir)
	}
	if err != nil {
		return fmt.Errorf("%w: could not decode %s: %w", ErrManifest, path, err)
	}
	return nil
}

func (d *Dir) init(env map[string]any) error {
	if len(d.Targets) == 0 {
		return fmt.Errorf("%w: no targets", ErrManifest)
	}
	for i := range d.Targets {
		t := &d.Targets[i]
		if t.File == "" {
			return fmt.Errorf("%w: target %d has no file", ErrManifest, i)
		}
		for j := range t.Patches {
			if t.Patches[j].File == "" {
				return fmt.Errorf("%w: target %s patch %d has no file", ErrManifest, t.File, j)
			}
		}
	}
	merged, err := eval.MergeEnv(d.Env, env)
	if err != nil {
		return err
	}
	d.Env = merged
	if debug.LoadEnv() {
		debug.Logf("loaded env %s\n", d.Env)
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	d.nameCache = map[string]int{}
	return nil
}

// Manifest returns the path of the manifest the directory was read from.
func (d *Dir) Manifest() string {
	return d.manifest
}

func (d *Dir) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(d.Root, p)
}

func (d *Dir) expand(s string) (string, error) {
	return eval.ExpandString(s, eval.Env(d.Env))
}
