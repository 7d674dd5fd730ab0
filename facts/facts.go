package facts

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	version "github.com/hashicorp/go-version"
)

// ErrUnavailable indicates a fact that cannot be observed: a module the
// binary was not built with, or an unset environment variable. It is a
// defined non-match, not a failure.
var ErrUnavailable = errors.New("fact unavailable")

// Source answers fact queries during predicate evaluation.
//
// RuntimeVersion and OS are always knowable and never fail.
// ComponentVersion and Env report absence via ErrUnavailable and
// (false) respectively; any other error from ComponentVersion means the
// environment itself is broken and is treated as fatal by callers.
type Source interface {
	// RuntimeVersion reports the version of the Go runtime the process
	// is executing under.
	RuntimeVersion() *version.Version

	// OS reports the operating system identity string (GOOS for the
	// system source).
	OS() string

	// Env reports the value of an environment variable and whether it
	// is set.
	Env(name string) (string, bool)

	// ComponentVersion reports the installed version of the named
	// component. Returns ErrUnavailable when the component is not
	// present.
	ComponentVersion(name string) (*version.Version, error)
}

// System returns the Source backed by the running process: runtime.Version,
// runtime.GOOS, os.LookupEnv, and the module list from debug.ReadBuildInfo.
func System() Source {
	return systemSource{}
}

type systemSource struct{}

var (
	buildInfoOnce sync.Once
	buildInfo     *debug.BuildInfo
	buildInfoOK   bool
)

func readBuildInfo() (*debug.BuildInfo, bool) {
	buildInfoOnce.Do(func() {
		buildInfo, buildInfoOK = debug.ReadBuildInfo()
	})
	return buildInfo, buildInfoOK
}

func (systemSource) RuntimeVersion() *version.Version {
	raw := strings.TrimPrefix(runtime.Version(), "go")
	v, err := version.NewVersion(raw)
	if err != nil {
		// Development toolchains report versions like "devel +abcdef".
		// Treat them as an arbitrarily high release.
		v = version.Must(version.NewVersion("9999.0.0"))
	}
	return v
}

func (systemSource) OS() string {
	return runtime.GOOS
}

func (systemSource) Env(name string) (string, bool) {
	return os.LookupEnv(name)
}

// ComponentVersion resolves name as a module path against the binary's
// build info: the main module first, then the dependency list. Replaced
// modules report the replacement's version.
func (systemSource) ComponentVersion(name string) (*version.Version, error) {
	bi, ok := readBuildInfo()
	if !ok {
		// Binaries built without module support carry no dependency
		// facts; every component is simply not installed.
		return nil, ErrUnavailable
	}

	mod := findModule(bi, name)
	if mod == nil {
		return nil, ErrUnavailable
	}

	raw := strings.TrimPrefix(mod.Version, "v")
	if raw == "" || raw == "(devel)" {
		return nil, ErrUnavailable
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		// The module is present but its recorded version is garbage.
		// That is corrupt build metadata, not a missing component.
		return nil, fmt.Errorf("component %s: corrupt version %q: %w", name, mod.Version, err)
	}
	return v, nil
}

func findModule(bi *debug.BuildInfo, path string) *debug.Module {
	if bi.Main.Path == path {
		return &bi.Main
	}
	for i := range bi.Deps {
		dep := bi.Deps[i]
		if dep.Path != path {
			continue
		}
		if dep.Replace != nil {
			return dep.Replace
		}
		return dep
	}
	return nil
}
