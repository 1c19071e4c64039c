package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
)

func TestClientBackendPrecedence(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"default", map[string]string{}, DefaultBackendURL},
		{"public fallback", map[string]string{"NEXT_PUBLIC_BACKEND_URL": "http://agent:9000/"}, "http://agent:9000"},
		{"own var wins", map[string]string{
			"NEXT_PUBLIC_BACKEND_URL": "http://agent:9000",
			"ASKDB_BACKEND_URL":       "https://db.example.com//",
		}, "https://db.example.com"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := loadClient(env.Options{Environment: c.env})
			if err != nil {
				t.Fatalf("loadClient: %v", err)
			}
			if got := cfg.Backend(); got != c.want {
				t.Fatalf("Backend() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestClientTimeout(t *testing.T) {
	cfg, err := loadClient(env.Options{Environment: map[string]string{}})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timeout != 0 {
		t.Fatalf("default timeout should be zero, got %v", cfg.Timeout)
	}

	cfg, err = loadClient(env.Options{Environment: map[string]string{"ASKDB_TIMEOUT": "90s"}})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timeout != 90*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
}

func TestServerDefaults(t *testing.T) {
	cfg, err := loadServer(env.Options{Environment: map[string]string{}})
	if err != nil {
		t.Fatalf("loadServer: %v", err)
	}
	if cfg.Schema != "public" || cfg.MaxRows != 200 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.SSH.Enabled || cfg.SSH.Port != 22 {
		t.Fatalf("unexpected ssh defaults: %+v", cfg.SSH)
	}
}

func TestServerSSHPrefix(t *testing.T) {
	cfg, err := loadServer(env.Options{Environment: map[string]string{
		"ASKDB_SSH_ENABLED":     "true",
		"ASKDB_SSH_HOST":        "bastion",
		"ASKDB_SSH_USER":        "deploy",
		"ASKDB_SSH_KEY_PATH":    "/keys/id",
		"ASKDB_ALLOWED_ORIGINS": "http://a,http://b",
	}})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.SSH.Enabled || cfg.SSH.Host != "bastion" || cfg.SSH.User != "deploy" || cfg.SSH.KeyPath != "/keys/id" {
		t.Fatalf("unexpected ssh config: %+v", cfg.SSH)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestServerRejectsBadMaxRows(t *testing.T) {
	if _, err := loadServer(env.Options{Environment: map[string]string{"ASKDB_MAX_ROWS": "0"}}); err == nil {
		t.Fatal("expected error for zero max rows")
	}
}

func TestServerAddr(t *testing.T) {
	cases := map[string]string{
		"":               ":8000",
		"8080":           ":8080",
		":9000":          ":9000",
		"127.0.0.1:8000": "127.0.0.1:8000",
	}
	for port, want := range cases {
		got, err := Server{Port: port}.Addr()
		if err != nil {
			t.Fatalf("Addr(%q): %v", port, err)
		}
		if got != want {
			t.Errorf("Addr(%q) = %q, want %q", port, got, want)
		}
	}
	if _, err := (Server{Port: "80 80"}).Addr(); err == nil {
		t.Fatal("expected error for port with spaces")
	}
}

func TestLoadAppConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	cfg, err := loadAppConfig(path, func(string) string { return "" })
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AI.Provider != "placeholder" {
		t.Fatalf("provider = %q, want placeholder", cfg.AI.Provider)
	}
	if cfg.AI.Gemini.Model != "gemini-2.5-flash-lite" {
		t.Fatalf("unexpected gemini model %q", cfg.AI.Gemini.Model)
	}
}

func TestLoadAppConfigGeminiKeySelectsGemini(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	getenv := func(k string) string {
		if k == "GEMINI_API_KEY" {
			return "g-key"
		}
		return ""
	}
	cfg, err := loadAppConfig(path, getenv)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AI.Provider != "gemini" || cfg.AI.Gemini.APIKey != "g-key" {
		t.Fatalf("unexpected config: %+v", cfg.AI)
	}
}

func TestLoadAppConfigFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"ai":{"provider":"ollama","ollama":{"host":"http://gpu:11434","model":"qwen"}}}`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	getenv := func(k string) string {
		if k == "ASKDB_AI_PROVIDER" {
			return "openai"
		}
		return ""
	}
	cfg, err := loadAppConfig(path, getenv)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AI.Provider != "openai" {
		t.Fatalf("env should override provider, got %q", cfg.AI.Provider)
	}
	if cfg.AI.Ollama.Host != "http://gpu:11434" || cfg.AI.Ollama.Model != "qwen" {
		t.Fatalf("file values lost: %+v", cfg.AI.Ollama)
	}
	if cfg.AI.OpenAI.Model != "gpt-4o-mini" {
		t.Fatal("defaults should survive partial file")
	}
}

func TestLoadAppConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadAppConfig(path, func(string) string { return "" }); err == nil {
		t.Fatal("expected parse error")
	}
}
