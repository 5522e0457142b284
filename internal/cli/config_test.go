package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miradorhq/mirador/internal/common/httpclient"
)

func TestLoadConfigDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, LoadConfig(missing))

	cfg := GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, httpclient.DefaultPrimaryURL, cfg.APIURL)
	assert.Equal(t, httpclient.DefaultAgentURL, cfg.AgentURL)
}

func TestLoadConfigFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: \"1.0.0\"\napi_url: https://mirador.example.edu/api/v1\nagent_url: https://agent.example.edu/\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	require.NoError(t, LoadConfig(file))

	cfg := GetConfig()
	assert.Equal(t, "https://mirador.example.edu/api/v1", cfg.APIURL)
	// trailing slash is stripped
	assert.Equal(t, "https://agent.example.edu", cfg.AgentURL)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: \"1.0.0\"\napi_url: https://file.example.edu\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	t.Setenv(envAPIURL, "https://env.example.edu")
	t.Setenv(envAgentURL, "agent.example.edu")

	require.NoError(t, LoadConfig(file))

	cfg := GetConfig()
	assert.Equal(t, "https://env.example.edu", cfg.APIURL)
	// bare host gains a scheme
	assert.Equal(t, "https://agent.example.edu", cfg.AgentURL)
}

func TestLoadConfigRejectsFutureFormat(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: \"2.0.0\"\napi_url: https://mirador.example.edu\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	err := LoadConfig(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestWriteConfigRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := &Config{
		Version:  "1.0.0",
		APIURL:   "https://mirador.example.edu/api/v1",
		AgentURL: "https://agent.example.edu",
	}
	require.NoError(t, cfg.WriteConfig(file))

	require.NoError(t, LoadConfig(file))
	got := GetConfig()
	assert.Equal(t, cfg.APIURL, got.APIURL)
	assert.Equal(t, cfg.AgentURL, got.AgentURL)

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
