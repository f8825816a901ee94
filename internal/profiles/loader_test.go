package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2inventory/motioncore/internal/motion"
)

const validProfileYAML = `name: test-mill
description: two axis test rig
kinematics: trivial
vel_limit: 60.0
axes:
  - name: X
    min_limit: 0.0
    max_limit: 400.0
    max_vel: 50.0
    max_ferror: 1.0
    min_ferror: 0.25
    homing_vel: -5.0
    home_offset: 0.0
  - name: Z
    min_limit: -120.0
    max_limit: 0.0
    max_vel: 30.0
    max_ferror: 0.5
    homing_vel: 4.0
`

func writeProfile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadYAMLProfile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "test-mill.yaml", validProfileYAML)

	loader, err := NewProfileLoader([]string{dir})
	require.NoError(t, err)

	profile, err := loader.Load("test-mill")
	require.NoError(t, err)

	assert.Equal(t, "test-mill", profile.Name)
	assert.Equal(t, 60.0, profile.VelLimit)
	require.Len(t, profile.Axes, 2)
	assert.Equal(t, "X", profile.Axes[0].Name)
	assert.Equal(t, -5.0, profile.Axes[0].HomingVel)
	assert.Equal(t, -120.0, profile.Axes[1].MinLimit)
}

func TestLoadJSONProfile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "rig.json", `{
		"name": "rig",
		"vel_limit": 20.0,
		"axes": [
			{"name": "X", "min_limit": 0, "max_limit": 100, "max_vel": 10, "max_ferror": 1, "homing_vel": -2}
		]
	}`)

	loader, err := NewProfileLoader([]string{dir})
	require.NoError(t, err)

	profile, err := loader.Load("rig")
	require.NoError(t, err)
	assert.Equal(t, "rig", profile.Name)
}

func TestLoadSearchesPathsInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeProfile(t, second, "test-mill.yaml", validProfileYAML)

	loader, err := NewProfileLoader([]string{first, second})
	require.NoError(t, err)

	profile, err := loader.Load("test-mill")
	require.NoError(t, err)
	assert.Equal(t, "test-mill", profile.Name)
}

func TestLoadUnknownProfile(t *testing.T) {
	loader, err := NewProfileLoader([]string{t.TempDir()})
	require.NoError(t, err)

	_, err = loader.Load("nope")
	assert.ErrorContains(t, err, "profile not found")
}

func TestLoadCachesByName(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "test-mill.yaml", validProfileYAML)

	loader, err := NewProfileLoader([]string{dir})
	require.NoError(t, err)

	first, err := loader.Load("test-mill")
	require.NoError(t, err)

	// Removing the file does not invalidate the cache.
	require.NoError(t, os.Remove(filepath.Join(dir, "test-mill.yaml")))
	second, err := loader.Load("test-mill")
	require.NoError(t, err)
	assert.Same(t, first, second)

	loader.ClearCache()
	_, err = loader.Load("test-mill")
	assert.Error(t, err)
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing vel_limit",
			content: `name: bad
axes:
  - {name: X, min_limit: 0, max_limit: 10, max_vel: 5, max_ferror: 1, homing_vel: 1}
`,
		},
		{
			name: "no axes",
			content: `name: bad
vel_limit: 10
axes: []
`,
		},
		{
			name: "unknown axis field",
			content: `name: bad
vel_limit: 10
axes:
  - {name: X, min_limit: 0, max_limit: 10, max_vel: 5, max_ferror: 1, homing_vel: 1, backlash: 0.1}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeProfile(t, dir, "bad.yaml", tt.content)

			loader, err := NewProfileLoader([]string{dir})
			require.NoError(t, err)

			_, err = loader.Load("bad")
			assert.ErrorContains(t, err, "validation failed")
		})
	}
}

func TestLoadRejectsCrossFieldViolations(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "inverted.yaml", `name: inverted
vel_limit: 10
axes:
  - {name: X, min_limit: 50, max_limit: 10, max_vel: 5, max_ferror: 1, homing_vel: 1}
`)
	writeProfile(t, dir, "nohome.yaml", `name: nohome
vel_limit: 10
axes:
  - {name: X, min_limit: 0, max_limit: 10, max_vel: 5, max_ferror: 1, homing_vel: 0}
`)

	loader, err := NewProfileLoader([]string{dir})
	require.NoError(t, err)

	_, err = loader.Load("inverted")
	assert.ErrorContains(t, err, "min_limit must be below max_limit")

	_, err = loader.Load("nohome")
	assert.ErrorContains(t, err, "homing_vel must be nonzero")
}

func TestApplyWritesAxisConfiguration(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "test-mill.yaml", validProfileYAML)

	loader, err := NewProfileLoader([]string{dir})
	require.NoError(t, err)
	profile, err := loader.Load("test-mill")
	require.NoError(t, err)

	cfg := motion.DefaultConfig()
	require.NoError(t, Apply(profile, cfg))

	assert.Equal(t, 2, cfg.NumAxes)
	assert.Equal(t, 60.0, cfg.LimitVel)
	assert.Equal(t, 400.0, cfg.MaxLimit[0])
	assert.Equal(t, -5.0, cfg.HomingVel[0])
	assert.Equal(t, -120.0, cfg.MinLimit[1])
	assert.Equal(t, 4.0, cfg.HomingVel[1])
}
