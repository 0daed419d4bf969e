package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type LLMBackend string

const (
	LLMMock   LLMBackend = "mock"
	LLMOpenAI LLMBackend = "openai"
	LLMVertex LLMBackend = "vertex"
)

type StorageBackend string

const (
	StorageNone      StorageBackend = "none"
	StorageMemory    StorageBackend = "memory"
	StorageFirestore StorageBackend = "firestore"
)

// Config holds every knob of the agent. Defaults come first, then an
// optional YAML file (UIBA_CONFIG_FILE), then UIBA_* env vars on top.
type Config struct {
	Port string `yaml:"port"`

	LLMBackend  LLMBackend `yaml:"llm_backend"`
	APIBaseURL  string     `yaml:"api_base_url"`
	APIKey      string     `yaml:"api_key"`
	ModelName   string     `yaml:"model_name"`
	Temperature float32    `yaml:"temperature"`
	MaxTokens   int        `yaml:"max_tokens"`

	StorageBackend StorageBackend `yaml:"storage_backend"`
	GCPProjectID   string         `yaml:"gcp_project_id"`
	GCPLocation    string         `yaml:"gcp_location"`

	Greeting string `yaml:"greeting"`
}

func defaults() *Config {
	return &Config{
		Port:           "8080",
		LLMBackend:     LLMMock,
		APIBaseURL:     "http://localhost:8080/v1",
		APIKey:         "dummy-key", // LocalAI-style servers ignore the key
		ModelName:      "gpt-3.5-turbo",
		Temperature:    0.7,
		MaxTokens:      1500,
		StorageBackend: StorageMemory,
		GCPLocation:    "us-central1",
	}
}

// Load builds the config from defaults, an optional YAML file and env vars.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("UIBA_CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("UIBA_PORT", c.Port)

	if v := os.Getenv("UIBA_LLM_BACKEND"); v != "" {
		c.LLMBackend = LLMBackend(v)
	}
	c.APIBaseURL = getEnv("UIBA_API_BASE_URL", c.APIBaseURL)
	c.APIKey = getEnv("UIBA_API_KEY", c.APIKey)
	c.ModelName = getEnv("UIBA_MODEL_NAME", c.ModelName)
	c.Temperature = getFloatEnv("UIBA_TEMPERATURE", c.Temperature)
	c.MaxTokens = getIntEnv("UIBA_MAX_TOKENS", c.MaxTokens)

	if v := os.Getenv("UIBA_STORAGE_BACKEND"); v != "" {
		c.StorageBackend = StorageBackend(v)
	}
	c.GCPProjectID = getEnv("UIBA_GCP_PROJECT", c.GCPProjectID)
	c.GCPLocation = getEnv("UIBA_GCP_LOCATION", c.GCPLocation)

	c.Greeting = getEnv("UIBA_GREETING", c.Greeting)
}

func (c *Config) validate() error {
	switch c.LLMBackend {
	case LLMMock, LLMOpenAI, LLMVertex:
	default:
		return fmt.Errorf("config: unknown llm backend %q", c.LLMBackend)
	}
	switch c.StorageBackend {
	case StorageNone, StorageMemory, StorageFirestore:
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.StorageBackend)
	}

	if c.LLMBackend == LLMOpenAI && c.APIBaseURL == "" {
		return fmt.Errorf("config: UIBA_API_BASE_URL is required for the openai backend")
	}
	if c.LLMBackend == LLMVertex && c.GCPProjectID == "" {
		return fmt.Errorf("config: UIBA_GCP_PROJECT is required for the vertex backend")
	}
	if c.StorageBackend == StorageFirestore && c.GCPProjectID == "" {
		return fmt.Errorf("config: UIBA_GCP_PROJECT is required for firestore storage")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getFloatEnv(key string, def float32) float32 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return def
	}
	return float32(f)
}
