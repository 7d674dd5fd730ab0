package facts

import (
	"runtime"
	"strings"
)

// Report is a flat snapshot of observable facts, used for display by the
// CLI. It is not a Source; it enumerates, where a Source answers point
// queries.
type Report struct {
	Runtime    string            `json:"runtime" yaml:"runtime"`
	OS         string            `json:"os" yaml:"os"`
	Env        map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	Components map[string]string `json:"components,omitempty" yaml:"components,omitempty"`
}

// SystemReport snapshots the running process: runtime version, GOOS, and
// every module recorded in the binary's build info. Environment variables
// are left out; dumping the whole environ is noise, and point queries go
// through Source.Env.
func SystemReport() Report {
	r := Report{
		Runtime:    strings.TrimPrefix(runtime.Version(), "go"),
		OS:         runtime.GOOS,
		Components: map[string]string{},
	}

	bi, ok := readBuildInfo()
	if !ok {
		return r
	}
	if bi.Main.Path != "" && bi.Main.Version != "" {
		r.Components[bi.Main.Path] = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, dep := range bi.Deps {
		mod := dep
		if dep.Replace != nil {
			mod = dep.Replace
		}
		r.Components[dep.Path] = strings.TrimPrefix(mod.Version, "v")
	}
	return r
}

// Report snapshots a static fixture verbatim.
func (s Static) Report() Report {
	return Report{
		Runtime:    s.Runtime,
		OS:         s.GOOS,
		Env:        s.EnvVars,
		Components: s.Components,
	}
}
