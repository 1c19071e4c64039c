// ai_config.go holds the AI provider configuration.
//
// AI settings are stored in ~/.askdb/config.json. API keys can also be
// set via environment variables (OPENAI_API_KEY, GEMINI_API_KEY, ...),
// which take precedence over the file.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// AIConfig holds the AI provider selection and credentials.
type AIConfig struct {
	Provider  string          `json:"provider"` // "openai", "groq", "anthropic", "gemini", "ollama", "placeholder"
	OpenAI    OpenAIConfig    `json:"openai"`
	Groq      OpenAIConfig    `json:"groq"`
	Anthropic AnthropicConfig `json:"anthropic"`
	Gemini    GeminiConfig    `json:"gemini"`
	Ollama    OllamaConfig    `json:"ollama"`
}

// OpenAIConfig holds settings for OpenAI-compatible chat APIs.
type OpenAIConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model"`
}

// AnthropicConfig holds Anthropic-specific settings.
type AnthropicConfig struct {
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model"`
}

// GeminiConfig holds Google Gemini-specific settings.
type GeminiConfig struct {
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model"`
}

// OllamaConfig holds Ollama-specific settings.
type OllamaConfig struct {
	Host  string `json:"host"`
	Model string `json:"model"`
}

// AppConfig is the top-level config file structure (~/.askdb/config.json).
type AppConfig struct {
	AI AIConfig `json:"ai"`
}

// DefaultAIConfig returns sensible defaults. Provider is left empty and
// resolved after env overrides are applied.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Groq: OpenAIConfig{
			BaseURL: "https://api.groq.com/openai/v1",
			Model:   "llama-3.1-8b-instant",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet-4-20250514",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash-lite",
		},
		Ollama: OllamaConfig{
			Host:  "http://localhost:11434",
			Model: "llama3.2",
		},
	}
}

// Dir returns ~/.askdb.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".askdb"), nil
}

// LoadAppConfig reads ~/.askdb/config.json; returns defaults if not found.
func LoadAppConfig() (*AppConfig, error) {
	dir, err := Dir()
	if err != nil {
		cfg := defaultAppConfig()
		applyAIEnv(cfg, os.Getenv)
		return cfg, nil
	}
	return loadAppConfig(filepath.Join(dir, "config.json"), os.Getenv)
}

func loadAppConfig(path string, getenv func(string) string) (*AppConfig, error) {
	cfg := defaultAppConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	applyAIEnv(cfg, getenv)
	return cfg, nil
}

// applyAIEnv lets env vars override file config and picks a provider
// when none was chosen.
func applyAIEnv(cfg *AppConfig, getenv func(string) string) {
	if v := getenv("ASKDB_AI_PROVIDER"); v != "" {
		cfg.AI.Provider = v
	}
	if v := getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.OpenAI.APIKey = v
	}
	if v := getenv("OPENAI_BASE_URL"); v != "" {
		cfg.AI.OpenAI.BaseURL = v
	}
	if v := getenv("GROQ_API_KEY"); v != "" {
		cfg.AI.Groq.APIKey = v
	}
	if v := getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.AI.Anthropic.APIKey = v
	}
	if v := getenv("GEMINI_API_KEY"); v != "" {
		cfg.AI.Gemini.APIKey = v
	}
	if v := getenv("OLLAMA_HOST"); v != "" {
		cfg.AI.Ollama.Host = v
	}

	if cfg.AI.Provider == "" {
		if cfg.AI.Gemini.APIKey != "" {
			cfg.AI.Provider = "gemini"
		} else {
			cfg.AI.Provider = "placeholder"
		}
	}
}

// SaveAppConfig writes the config to ~/.askdb/config.json.
func SaveAppConfig(cfg *AppConfig) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0600)
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		AI: DefaultAIConfig(),
	}
}
