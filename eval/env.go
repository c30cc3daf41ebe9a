package eval

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

type Env map[string]any

// MergeEnv merges override into base following RFC 7386: maps merge key
// by key, a null value deletes the key and anything else replaces it.
// Neither argument is modified.
func MergeEnv(base, override Env) (Env, error) {
	if len(override) == 0 {
		return copyEnv(base)
	}
	if base == nil {
		base = Env{}
	}
	doc, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("could not encode env: %w", err)
	}
	patch, err := json.Marshal(override)
	if err != nil {
		return nil, fmt.Errorf("could not encode env override: %w", err)
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("could not merge env: %w", err)
	}
	res := Env{}
	if err := json.Unmarshal(merged, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func copyEnv(e Env) (Env, error) {
	if e == nil {
		return Env{}, nil
	}
	d, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("could not encode env: %w", err)
	}
	res := Env{}
	if err := json.Unmarshal(d, &res); err != nil {
		return nil, err
	}
	return res, nil
}
