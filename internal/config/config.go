package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type YouTubeConfig struct {
	APIKey     string `toml:"api_key"`
	MaxResults int64  `toml:"max_results"`
}

type StorageConfig struct {
	CacheDir   string `toml:"cache_dir"`
	OutlineDir string `toml:"outline_dir"`
}

// Prompts are fmt.Sprintf templates. Empty values fall back to the built-in
// prompts in the suggest and compose packages.
type Prompts struct {
	Suggest       string `toml:"suggest"`
	ComposeVideo  string `toml:"compose_video"`
	ComposeColumn string `toml:"compose_column"`
}

type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	YouTube YouTubeConfig `toml:"youtube"`
	Storage StorageConfig `toml:"storage"`
	Prompts Prompts       `toml:"prompts"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config usable without any config file present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemma3:latest"
	}
	if c.LLM.BaseURL == "" && c.LLM.Provider == "ollama" {
		c.LLM.BaseURL = "http://localhost:11434"
	}
	if c.YouTube.MaxResults <= 0 {
		c.YouTube.MaxResults = 200
	}
	if c.Storage.CacheDir == "" {
		c.Storage.CacheDir = "."
	}
	if c.Storage.OutlineDir == "" {
		c.Storage.OutlineDir = "outlines"
	}
}

// ApplyEnv overrides file values with environment variables if present.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.YouTube.APIKey = v
	}
}
