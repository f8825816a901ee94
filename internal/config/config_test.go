package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: {}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, time.Millisecond, cfg.Motion.CyclePeriod)
	assert.Equal(t, 32, cfg.Motion.CoordQueueSize)
	assert.Equal(t, "trivial", cfg.Motion.Kinematics)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
}

func TestLoadReadsFullConfig(t *testing.T) {
	content := `
server:
  http_port: 9090
database:
  enabled: true
  host: db.local
  port: 5433
  database: motion
  user: motion
  password: pw
motion:
  cycle_period: 2ms
  kinematics: identity
auth:
  jwt_secret_env: MY_SECRET
  operators:
    - username: alice
      password_hash: "$argon2id$..."
      role: admin
machine_profiles:
  profile: mill-3axis
  search_paths: ["./configs/profiles"]
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 2*time.Millisecond, cfg.Motion.CyclePeriod)
	assert.Equal(t, "identity", cfg.Motion.Kinematics)
	assert.Equal(t, "mill-3axis", cfg.Profiles.Profile)
	require.Len(t, cfg.Auth.Operators, 1)
	assert.Equal(t, "alice", cfg.Auth.Operators[0].Username)
	assert.Equal(t, "admin", cfg.Auth.Operators[0].Role)

	assert.Equal(t,
		"postgres://motion:pw@db.local:5433/motion?sslmode=disable",
		cfg.Database.DSN())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetJWTSecretFallbacks(t *testing.T) {
	a := AuthConfig{JWTSecretEnv: "UNSET_SECRET_VAR"}
	assert.Equal(t, "dev-secret-change-in-production-min-32-chars", a.GetJWTSecret())
	assert.False(t, a.IsProductionReady())

	t.Setenv("UNSET_SECRET_VAR", "a-real-secret-that-is-at-least-32-characters")
	assert.Equal(t, "a-real-secret-that-is-at-least-32-characters", a.GetJWTSecret())
	assert.True(t, a.IsProductionReady())
}
