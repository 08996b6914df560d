package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "https://app.asana.com/api/1.0", config.Asana.BaseURL)
	assert.Equal(t, "30s", config.Asana.RequestTimeout)
	assert.Equal(t, 587, config.Email.Port)
	assert.True(t, config.Email.UseTLS)
	assert.False(t, config.Scheduler.Enabled)
	assert.Equal(t, "24h", config.Scheduler.Lookback)

	assert.NoError(t, config.Validate())
}

func TestLoadFromFiles_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reparo.toml")
	content := `
environment = "production"

[server]
port = 9090

[asana]
repair_project_gid = "proj-from-file"

[email]
distribution_list = "ops@example.com"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "proj-from-file", config.Asana.RepairProjectGID)
	assert.Equal(t, "ops@example.com", config.Email.DistributionList)
	// Untouched keys keep their defaults
	assert.Equal(t, "localhost", config.Server.Host)
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "base.toml")
	second := filepath.Join(dir, "override.toml")
	require.NoError(t, os.WriteFile(first, []byte("[server]\nport = 9090\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("[server]\nport = 9091\n"), 0644))

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)

	assert.Equal(t, 9091, config.Server.Port)
}

func TestLoadFromFiles_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reparo.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9090\n"), 0644))

	t.Setenv("REPARO_SERVER_PORT", "7070")
	t.Setenv("ASANA_TOKEN", "token-from-env")
	t.Setenv("REPAIR_PROJECT_ID", "proj-from-env")

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "token-from-env", config.Asana.AccessToken)
	assert.Equal(t, "proj-from-env", config.Asana.RepairProjectGID)
}

func TestLoadFromFiles_SubtasksProjectDefaultsToRepairProject(t *testing.T) {
	t.Setenv("REPAIR_PROJECT_ID", "proj-1")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "proj-1", config.Asana.SubtasksProjectGID)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/reparo.toml")
	assert.Error(t, err)
}

func TestValidate_RejectsBadDurations(t *testing.T) {
	config := NewDefaultConfig()
	config.Asana.RequestTimeout = "soon"
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.Scheduler.Lookback = "yesterday"
	assert.Error(t, config.Validate())
}

func TestValidate_RejectsBadBaseURL(t *testing.T) {
	config := NewDefaultConfig()
	config.Asana.BaseURL = "not a url"
	assert.Error(t, config.Validate())
}
