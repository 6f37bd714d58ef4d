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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validYAML = `
store:
  type: firestore
firebase:
  project_id: smarttax-test
  web_api_key: test-key
session:
  mode: firebase
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "firestore", cfg.Store.Type)
	assert.Equal(t, "0 0 9 * * *", cfg.Reminders.Schedule)
	assert.Equal(t, 14, cfg.Reminders.LeadDays)
	assert.Equal(t, "individual", cfg.Reminders.Profile)
	assert.Equal(t, 15, cfg.Session.AccessTokenExpiry)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STORE_TYPE", "memory")
	t.Setenv("SESSION_MODE", "local")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("REMINDER_LEAD_DAYS", "30")

	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Type)
	assert.Equal(t, "local", cfg.Session.Mode)
	assert.Equal(t, 30, cfg.Reminders.LeadDays)
}

func TestValidate(t *testing.T) {
	t.Run("Unknown Store Type", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
store:
  type: dynamo
`))
		assert.ErrorContains(t, err, "unknown store type")
	})

	t.Run("Firestore Needs Project ID", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
store:
  type: firestore
firebase:
  web_api_key: k
`))
		assert.ErrorContains(t, err, "project id")
	})

	t.Run("Firebase Session Needs Web API Key", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
store:
  type: memory
session:
  mode: firebase
`))
		assert.ErrorContains(t, err, "web API key")
	})

	t.Run("Local Session Needs Long Secret", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
store:
  type: memory
session:
  mode: local
  jwt_secret: short
`))
		assert.ErrorContains(t, err, "at least 32 characters")
	})

	t.Run("Unknown Reminder Profile", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
store:
  type: memory
session:
  mode: local
  jwt_secret: 0123456789abcdef0123456789abcdef
reminders:
  profile: corporation
`))
		assert.ErrorContains(t, err, "unknown reminder profile")
	})

	t.Run("SendGrid Key Needs From Email", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
store:
  type: memory
session:
  mode: local
  jwt_secret: 0123456789abcdef0123456789abcdef
sendgrid:
  api_key: sg-key
`))
		assert.ErrorContains(t, err, "from_email")
	})
}
