package cli

import (
	"fmt"
	"os"

	version "github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"

	"github.com/BenjaminBossan/versiondispatch/facts"
)

// Rule is one entry of a rules manifest: the file-based mirror of a
// Register call, checked without a program around it.
type Rule struct {
	Predicate string `yaml:"predicate" json:"predicate"`
	Warning   *struct {
		Category string `yaml:"category" json:"category"`
		Message  string `yaml:"message" json:"message"`
	} `yaml:"warning,omitempty" json:"warning,omitempty"`
}

// Manifest is a YAML rules file: an ordered list of predicate rules.
type Manifest struct {
	Rules []Rule `yaml:"rules"`
}

// LoadManifest reads and decodes a rules manifest.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	if len(m.Rules) == 0 {
		return nil, fmt.Errorf("manifest %s contains no rules", path)
	}
	return &m, nil
}

// LoadFacts returns the fact source for a command: a static fixture when
// path is set, the real process environment otherwise.
func LoadFacts(path string) (facts.Source, error) {
	if path == "" {
		return facts.System(), nil
	}
	return LoadStatic(path)
}

// LoadStatic reads a YAML facts fixture into a static fact source. The
// runtime version is validated here: the fact source contract treats the
// runtime as always knowable, so a garbage value must be rejected at the
// file boundary rather than surface later as a panic.
func LoadStatic(path string) (facts.Static, error) {
	var st facts.Static
	raw, err := os.ReadFile(path)
	if err != nil {
		return st, fmt.Errorf("reading facts: %w", err)
	}
	if err := yaml.Unmarshal(raw, &st); err != nil {
		return st, fmt.Errorf("decoding facts %s: %w", path, err)
	}
	if st.Runtime != "" {
		if _, err := version.NewVersion(st.Runtime); err != nil {
			return st, fmt.Errorf("decoding facts %s: invalid runtime version %q: %w", path, st.Runtime, err)
		}
	}
	return st, nil
}
