package dirbuild

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/eval"

	"github.com/goccy/go-yaml"
)

const profileSuffix = ".yaml"

// Profiles lists the profiles in the profiles sub-directory.
func (d *Dir) Profiles() ([]string, error) {
	dirEnts, err := os.ReadDir(filepath.Join(d.Root, "profiles"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	res := []string{}
	for _, dirEnt := range dirEnts {
		if dirEnt.IsDir() {
			continue
		}
		fName := dirEnt.Name()
		if !strings.HasSuffix(fName, profileSuffix) {
			continue
		}
		res = append(res, fName[:len(fName)-len(profileSuffix)])
	}
	slices.Sort(res)
	return res, nil
}

// LoadProfile reopens the directory with the env of a profile merged over
// the manifest env. env takes precedence over both. profile is either a
// name listed by Profiles or a path to a profile file.
func (d *Dir) LoadProfile(profile string, env map[string]any) error {
	if debug.LoadEnv() {
		debug.Logf("LoadProfile %s with env %s\n", profile, env)
	}
	profilePath, err := d.profilePath(profile)
	if err != nil {
		return err
	}
	dd, err := os.ReadFile(profilePath)
	if err != nil {
		return err
	}
	var p struct {
		Env map[string]any `yaml:"env"`
	}
	if err := yaml.Unmarshal(dd, &p); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProfile, profilePath, err)
	}
	if p.Env == nil {
		return fmt.Errorf("%w: no env in profile at %s", ErrProfile, profilePath)
	}
	merged, err := eval.MergeEnv(p.Env, env)
	if err != nil {
		return err
	}
	reDir, err := OpenDir(d.Root, merged)
	if err != nil {
		return err
	}
	reDir.Log = d.Log
	*d = *reDir
	return nil
}

func (d *Dir) profilePath(profile string) (string, error) {
	st, err := os.Stat(profile)
	if err == nil && !st.IsDir() {
		return profile, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	path := filepath.Join(d.Root, "profiles", profile+profileSuffix)
	st, err = os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no profile %q", ErrProfile, profile)
		}
		return "", err
	}
	if st.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrProfile, path)
	}
	return path, nil
}
