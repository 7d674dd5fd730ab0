package facts

import (
	"fmt"

	version "github.com/hashicorp/go-version"
)

// Static is a fixture fact source with fixed answers. It backs tests (the
// equivalent of pretending a component version is installed) and the CLI's
// --facts files, which unmarshal directly into it via YAML.
//
// Zero values fall back sensibly: an empty Runtime reports version 0.0.0,
// an empty OS reports "", and nil maps mean "nothing set".
type Static struct {
	Runtime    string            `yaml:"runtime,omitempty"`
	GOOS       string            `yaml:"os,omitempty"`
	EnvVars    map[string]string `yaml:"env,omitempty"`
	Components map[string]string `yaml:"components,omitempty"`
}

func (s Static) RuntimeVersion() *version.Version {
	raw := s.Runtime
	if raw == "" {
		raw = "0.0.0"
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		panic(fmt.Sprintf("facts: invalid static runtime version %q: %v", s.Runtime, err))
	}
	return v
}

func (s Static) OS() string {
	return s.GOOS
}

func (s Static) Env(name string) (string, bool) {
	val, ok := s.EnvVars[name]
	return val, ok
}

func (s Static) ComponentVersion(name string) (*version.Version, error) {
	raw, ok := s.Components[name]
	if !ok {
		return nil, ErrUnavailable
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("component %s: corrupt version %q: %w", name, raw, err)
	}
	return v, nil
}
