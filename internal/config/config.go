package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultChatModel  = "gpt-4o-mini"
	DefaultImageModel = "dall-e-2"
	DefaultTheme      = "dark"
)

// Config holds all user-tunable settings. Everything is optional: the app
// runs without a config file, and generative features simply stay disabled
// until an API key is provided.
type Config struct {
	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	ChatModel     string `yaml:"chat_model"`
	ImageModel    string `yaml:"image_model"`
	GitHubToken   string `yaml:"github_token"`
	Theme         string `yaml:"theme"`
}

// Load reads the yaml config file at path (missing file is not an error),
// applies environment variable overrides, then fills in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BADGEHUNT_OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("BADGEHUNT_OPENAI_BASE_URL"); v != "" {
		cfg.OpenAIBaseURL = v
	}
	if v := os.Getenv("BADGEHUNT_CHAT_MODEL"); v != "" {
		cfg.ChatModel = v
	}
	if v := os.Getenv("BADGEHUNT_IMAGE_MODEL"); v != "" {
		cfg.ImageModel = v
	}
	if v := os.Getenv("BADGEHUNT_GITHUB_TOKEN"); v != "" {
		cfg.GitHubToken = v
	} else if v := os.Getenv("GITHUB_TOKEN"); v != "" && cfg.GitHubToken == "" {
		cfg.GitHubToken = v
	}
	if v := os.Getenv("BADGEHUNT_THEME"); v != "" {
		cfg.Theme = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
}
