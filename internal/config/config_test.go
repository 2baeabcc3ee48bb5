package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  dsn: postgres://localhost/hancock
authorization:
  signing_secret: secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.App.Env)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "memory", cfg.Cache.Kind)
	require.Equal(t, 365*24*time.Hour, Duration(cfg.Authorization.Validity))
	require.Equal(t, "authn_nonce", cfg.Authentication.NonceCookieName)
}

func TestLoad_InvalidDurationIsAnError(t *testing.T) {
	path := writeConfig(t, `
authorization:
  validity: soon
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9999"
`)

	t.Setenv("HANCOCK_ADDR", ":8081")
	t.Setenv("AUTHZ_SIGNING_SECRET", "from-env")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":8081", cfg.Server.Addr)
	require.Equal(t, "from-env", cfg.Authorization.SigningSecret)
	require.True(t, cfg.Providers.Google.Enabled)
}
