package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
sender:
  name: Dana Smith
  email: dana@example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "simulated", cfg.Mailer.Provider)
	assert.Equal(t, 30, cfg.Sending.TimeoutSeconds)
	assert.Equal(t, 2, cfg.Sending.MaxRetries)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadReadsValues(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 9000
storage:
  type: redis
  redis_url: redis://localhost:6379/0
mailer:
  provider: ses
  region: eu-west-1
sender:
  name: Dana Smith
  email: dana@example.com
  role: Backend Engineer
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, "eu-west-1", cfg.Mailer.Region)

	details := cfg.Sender.SenderDetails()
	assert.Equal(t, "Dana Smith", details.Name)
	assert.Equal(t, "Backend Engineer", details.Role)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unknown storage", "storage:\n  type: dynamo\n"},
		{"redis without url", "storage:\n  type: redis\n"},
		{"unknown provider", "mailer:\n  provider: sendgrid\n"},
		{"ses without sender", "mailer:\n  provider: ses\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.yaml))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("MAILER_PROVIDER", "simulated")
	t.Setenv("JOBMAILER_SENDER_EMAIL", "env@example.com")

	cfg, err := LoadFromEnv("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "env@example.com", cfg.Sender.Email)
}
