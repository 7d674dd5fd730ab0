package facts

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_RuntimeVersion(t *testing.T) {
	v := System().RuntimeVersion()
	require.NotNil(t, v)
	// Whatever toolchain runs this, it is a Go 1.x or later release.
	assert.GreaterOrEqual(t, v.Segments()[0], 1)
}

func TestSystem_OS(t *testing.T) {
	assert.Equal(t, runtime.GOOS, System().OS())
}

func TestSystem_Env(t *testing.T) {
	t.Setenv("VERSIONDISPATCH_TEST_VAR", "hello")

	val, ok := System().Env("VERSIONDISPATCH_TEST_VAR")
	assert.True(t, ok)
	assert.Equal(t, "hello", val)

	_, ok = System().Env("VERSIONDISPATCH_NO_SUCH_VAR")
	assert.False(t, ok)
}

func TestSystem_ComponentVersion(t *testing.T) {
	// The test binary is built with testify, so its version is a fact.
	v, err := System().ComponentVersion("github.com/stretchr/testify")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.GreaterOrEqual(t, v.Segments()[0], 1)
}

func TestSystem_ComponentVersionUnavailable(t *testing.T) {
	_, err := System().ComponentVersion("github.com/no/such/module")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestStatic_Defaults(t *testing.T) {
	var s Static

	assert.Equal(t, "0.0.0", s.RuntimeVersion().String())
	assert.Empty(t, s.OS())

	_, ok := s.Env("LANG")
	assert.False(t, ok)

	_, err := s.ComponentVersion("numpy")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestStatic_Lookups(t *testing.T) {
	s := Static{
		Runtime:    "1.24.0",
		GOOS:       "darwin",
		EnvVars:    map[string]string{"LANG": "C"},
		Components: map[string]string{"numpy": "0.9"},
	}

	assert.Equal(t, "1.24.0", s.RuntimeVersion().String())
	assert.Equal(t, "darwin", s.OS())

	val, ok := s.Env("LANG")
	require.True(t, ok)
	assert.Equal(t, "C", val)

	v, err := s.ComponentVersion("numpy")
	require.NoError(t, err)
	assert.Equal(t, "0.9.0", v.String())
}

func TestStatic_CorruptComponentVersion(t *testing.T) {
	s := Static{Components: map[string]string{"numpy": "garbage!"}}

	_, err := s.ComponentVersion("numpy")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestStatic_Report(t *testing.T) {
	s := Static{
		Runtime:    "1.24.0",
		GOOS:       "linux",
		EnvVars:    map[string]string{"LANG": "C"},
		Components: map[string]string{"numpy": "0.9"},
	}

	r := s.Report()
	assert.Equal(t, "1.24.0", r.Runtime)
	assert.Equal(t, "linux", r.OS)
	assert.Equal(t, map[string]string{"LANG": "C"}, r.Env)
	assert.Equal(t, map[string]string{"numpy": "0.9"}, r.Components)
}

func TestSystemReport(t *testing.T) {
	r := SystemReport()
	assert.NotEmpty(t, r.Runtime)
	assert.Equal(t, runtime.GOOS, r.OS)
	assert.Contains(t, r.Components, "github.com/stretchr/testify")
}
