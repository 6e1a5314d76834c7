package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Equal(t, DefaultChatModel, cfg.ChatModel)
	assert.Equal(t, DefaultImageModel, cfg.ImageModel)
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
openai_api_key: sk-test
chat_model: gpt-4o
github_token: ghp_abc
theme: light
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.ChatModel)
	assert.Equal(t, "ghp_abc", cfg.GitHubToken)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, DefaultImageModel, cfg.ImageModel, "unset fields keep defaults")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openai_api_key: from-file\ntheme: dark\n"), 0600))

	t.Setenv("BADGEHUNT_OPENAI_API_KEY", "from-env")
	t.Setenv("BADGEHUNT_THEME", "light")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OpenAIAPIKey)
	assert.Equal(t, "light", cfg.Theme)
}

func TestGenericEnvFallbacks(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "generic-openai")
	t.Setenv("GITHUB_TOKEN", "generic-github")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "generic-openai", cfg.OpenAIAPIKey)
	assert.Equal(t, "generic-github", cfg.GitHubToken)
}
