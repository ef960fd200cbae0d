package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type LLMConfig struct {
	Model string `yaml:"model"`
}

type LimitsConfig struct {
	MaxFileBytes       int64 `yaml:"max_file_bytes"`
	MaxRowsPerSheet    int   `yaml:"max_rows_per_sheet"`
	MaxColumnsPerSheet int   `yaml:"max_columns_per_sheet"`
	MaxSheets          int   `yaml:"max_sheets"`
}

type ExtractionConfig struct {
	RowBudget   int `yaml:"row_budget"`
	Parallelism int `yaml:"parallelism"`
}

type ArticleNumberConfig struct {
	Prefix string `yaml:"prefix"`
	Width  int    `yaml:"width"`
	Base   int    `yaml:"base"`
	// CounterPath enables the persistent continuation counter. Empty means
	// numbering restarts from Base on every run.
	CounterPath string `yaml:"counter_path"`
}

type Config struct {
	AppPort       int                 `yaml:"app_port"`
	LLM           LLMConfig           `yaml:"llm"`
	Limits        LimitsConfig        `yaml:"limits"`
	Extraction    ExtractionConfig    `yaml:"extraction"`
	ArticleNumber ArticleNumberConfig `yaml:"article_number"`
}

func defaults() *Config {
	return &Config{
		AppPort: 8080,
		LLM:     LLMConfig{Model: "gpt-4o-mini"},
		Limits: LimitsConfig{
			MaxFileBytes:       20 << 20,
			MaxRowsPerSheet:    5000,
			MaxColumnsPerSheet: 60,
			MaxSheets:          10,
		},
		Extraction: ExtractionConfig{
			RowBudget:   50,
			Parallelism: 4,
		},
		ArticleNumber: ArticleNumberConfig{
			Prefix: "AC",
			Width:  8,
			Base:   1000,
		},
	}
}

// Load reads the YAML config at path on top of the built-in defaults.
// A missing file leaves the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Extraction.RowBudget <= 0 {
		return nil, fmt.Errorf("extraction.row_budget must be positive, got %d", cfg.Extraction.RowBudget)
	}
	if cfg.Extraction.Parallelism <= 0 {
		return nil, fmt.Errorf("extraction.parallelism must be positive, got %d", cfg.Extraction.Parallelism)
	}
	return cfg, nil
}

// APIKey returns the extraction service credential.
func APIKey() string {
	return getEnv("OPENAI_API_KEY")
}

func getEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}
