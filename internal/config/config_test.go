package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PabloGalante/uiba-agent/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.Port)
	}
	if cfg.LLMBackend != config.LLMMock {
		t.Fatalf("expected mock backend by default, got %q", cfg.LLMBackend)
	}
	if cfg.StorageBackend != config.StorageMemory {
		t.Fatalf("expected memory storage by default, got %q", cfg.StorageBackend)
	}
	if cfg.MaxTokens != 1500 {
		t.Fatalf("unexpected default max tokens %d", cfg.MaxTokens)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("UIBA_PORT", "9090")
	t.Setenv("UIBA_LLM_BACKEND", "openai")
	t.Setenv("UIBA_API_BASE_URL", "http://localai:8080/v1")
	t.Setenv("UIBA_TEMPERATURE", "0.2")
	t.Setenv("UIBA_MAX_TOKENS", "800")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Fatalf("env port not applied: %q", cfg.Port)
	}
	if cfg.LLMBackend != config.LLMOpenAI || cfg.APIBaseURL != "http://localai:8080/v1" {
		t.Fatalf("env llm settings not applied: %+v", cfg)
	}
	if cfg.Temperature != 0.2 || cfg.MaxTokens != 800 {
		t.Fatalf("env generation params not applied: %+v", cfg)
	}
}

func TestConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uiba.yaml")
	content := "port: \"7070\"\nmodel_name: from-file\ngreeting: \"Hi from file\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("UIBA_CONFIG_FILE", path)
	t.Setenv("UIBA_MODEL_NAME", "from-env")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "7070" {
		t.Fatalf("file port not applied: %q", cfg.Port)
	}
	if cfg.Greeting != "Hi from file" {
		t.Fatalf("file greeting not applied: %q", cfg.Greeting)
	}
	// Env wins over file.
	if cfg.ModelName != "from-env" {
		t.Fatalf("env must override file, got %q", cfg.ModelName)
	}
}

func TestValidation(t *testing.T) {
	t.Setenv("UIBA_LLM_BACKEND", "vertex")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for vertex backend without project")
	}

	t.Setenv("UIBA_LLM_BACKEND", "something-else")
	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
