package dirbuild

import (
	"fmt"
	"os"

	"github.com/signadot/xmod/debug"

	"github.com/goccy/go-yaml"
)

const (
	EnvEnv = "XMOD_ENV"
)

// LoadEnv reads an environment override from $XMOD_ENV, which holds a
// YAML or JSON mapping such as '{profile: prod}'.
func LoadEnv() (map[string]any, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	var res map[string]any
	if err := yaml.Unmarshal([]byte(envEnv), &res); err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	if res == nil {
		return nil, fmt.Errorf("error decoding env $%s: not a mapping", EnvEnv)
	}
	if debug.LoadEnv() {
		debug.Logf("\nloaded env from env: %s\n", res)
	}
	return res, nil
}

// ParseEnvArg parses a key=value argument. The value is decoded as YAML so
// that numbers and booleans keep their type.
func ParseEnvArg(env map[string]any, arg string) error {
	for i := 0; i < len(arg); i++ {
		if arg[i] != '=' {
			continue
		}
		k, v := arg[:i], arg[i+1:]
		if k == "" {
			break
		}
		var val any
		if err := yaml.Unmarshal([]byte(v), &val); err != nil {
			val = v
		}
		env[k] = val
		return nil
	}
	return fmt.Errorf("expected key=value, got %q", arg)
}
