package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvistad/tweetkit/internal/app"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("", nil, func() []string { return nil })
	require.NoError(t, err)

	assert.Equal(t, app.LogFormatText, cfg.LogFormat)
	assert.Equal(t, app.StorageTypeFile, cfg.Storage.Type)
	assert.NotEmpty(t, cfg.Storage.File, "file storage should default to a home path")
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	environ := func() []string {
		return []string{
			"TWEETKIT_LOG_FORMAT=json",
			"TWEETKIT_APP__KEY=envkey1",
			"TWEETKIT_STORAGE__TYPE=env",
			"TWEETKIT_STORAGE__ENV_KEY=MY_TOKEN_JSON",
		}
	}

	cfg, err := loadConfig("", nil, environ)
	require.NoError(t, err)

	assert.Equal(t, app.LogFormatJSON, cfg.LogFormat)
	assert.Equal(t, "envkey1", cfg.App.Key)
	assert.Equal(t, app.StorageTypeEnv, cfg.Storage.Type)
	assert.Equal(t, "MY_TOKEN_JSON", cfg.Storage.EnvKey)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
log_format = "json"

[app]
name = "myapp"
key = "filekey1"

[storage]
type = "keyring"
keyring_user = "alice"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := loadConfig(path, nil, func() []string { return nil })
	require.NoError(t, err)

	assert.Equal(t, "myapp", cfg.App.Name)
	assert.Equal(t, "filekey1", cfg.App.Key)
	assert.Equal(t, app.StorageTypeKeyring, cfg.Storage.Type)
	assert.Equal(t, "alice", cfg.Storage.KeyringUser)
}

func TestLoadConfigEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_format = "text"`), 0600))

	environ := func() []string {
		return []string{"TWEETKIT_LOG_FORMAT=json"}
	}

	cfg, err := loadConfig(path, nil, environ)
	require.NoError(t, err)
	assert.Equal(t, app.LogFormatJSON, cfg.LogFormat)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	environ := func() []string {
		return []string{"TWEETKIT_STORAGE__TYPE=carrier-pigeon"}
	}

	_, err := loadConfig("", nil, environ)
	assert.Error(t, err)
}
