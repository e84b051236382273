package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  serviceName: faer
  log:
    level: debug

http:
  port: 3000

auth:
  jwtSecret: test-secret
  tokenTtl: 24h
  sweepInterval: 30m
`

func writeTestConfig(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)
}

func TestLoadWithEnv(t *testing.T) {
	writeTestConfig(t)

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SweepInterval)
}

func TestLoadWithEnv_EnvOverride(t *testing.T) {
	writeTestConfig(t)
	t.Setenv("AUTH_JWTSECRET", "from-env")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.Error(t, err)
}

func TestApplyAuthDefaults(t *testing.T) {
	auth := AuthConfig{}
	applyAuthDefaults(&auth)

	assert.Equal(t, DefaultTokenTTL, auth.TokenTTL)
	assert.Equal(t, DefaultSweepInterval, auth.SweepInterval)
	assert.Equal(t, DefaultBcryptCost, auth.BcryptCost)
	assert.Equal(t, DefaultCookieName, auth.CookieName)
}
