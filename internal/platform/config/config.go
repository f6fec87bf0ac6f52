package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	OracleGroq   = "groq"
	OraclePlugin = "plugin"
	OracleNone   = "none"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Oracle OracleConfig `yaml:"oracle"`
	Focus  FocusConfig  `yaml:"focus"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type OracleConfig struct {
	Provider string        `yaml:"provider"`
	BaseURL  string        `yaml:"base_url"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
	Plugin   PluginConfig  `yaml:"plugin"`
}

type PluginConfig struct {
	Binary string `yaml:"binary"`
	SHA256 string `yaml:"sha256"`
}

type FocusConfig struct {
	DefaultUser      string        `yaml:"default_user"`
	BatchConcurrency int           `yaml:"batch_concurrency"`
	BatchTimeout     time.Duration `yaml:"batch_timeout"`
	ReportsDir       string        `yaml:"reports_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8000",
			CORSOrigins:     []string{"http://localhost:5173"},
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{Path: filepath.Join(".lernova", "lernova.db")},
		Oracle: OracleConfig{
			Provider: OracleGroq,
			BaseURL:  "https://api.groq.com/openai/v1",
			Model:    "llama-3.1-8b-instant",
			Timeout:  8 * time.Second,
		},
		Focus: FocusConfig{
			DefaultUser:      "default_user",
			BatchConcurrency: 4,
			BatchTimeout:     20 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults, then applies environment overrides. An
// empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("LERNOVA_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv("LERNOVA_DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := getenv("LERNOVA_ORACLE"); v != "" {
		cfg.Oracle.Provider = v
	}
	if v := getenv("LERNOVA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	if cfg.Oracle.APIKey == "" {
		cfg.Oracle.APIKey = getenv("GROQ_API_KEY")
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store path is required")
	}
	switch c.Oracle.Provider {
	case OracleGroq:
		if strings.TrimSpace(c.Oracle.BaseURL) == "" || strings.TrimSpace(c.Oracle.Model) == "" {
			return fmt.Errorf("groq oracle requires base_url and model")
		}
	case OraclePlugin:
		if strings.TrimSpace(c.Oracle.Plugin.Binary) == "" {
			return fmt.Errorf("plugin oracle requires plugin.binary")
		}
	case OracleNone:
	default:
		return fmt.Errorf("unsupported oracle provider %q", c.Oracle.Provider)
	}
	if c.Oracle.Timeout <= 0 {
		return fmt.Errorf("oracle timeout must be positive")
	}
	if c.Focus.BatchConcurrency < 1 {
		return fmt.Errorf("focus batch_concurrency must be at least 1")
	}
	if c.Focus.BatchTimeout <= 0 {
		return fmt.Errorf("focus batch_timeout must be positive")
	}
	if strings.TrimSpace(c.Focus.DefaultUser) == "" {
		return fmt.Errorf("focus default_user is required")
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
