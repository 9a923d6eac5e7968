// Package config loads runtime settings from defaults, an optional YAML file
// and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort         = "8080"
	DefaultMaxUploadMB  = 50
	DefaultTextProvider = "huggingface"
	LoaderNative        = "native"
	LoaderMuPDF         = "mupdf"
)

type Config struct {
	Text    ModelConfig   `yaml:"text"`
	Image   ModelConfig   `yaml:"image"`
	Loader  string        `yaml:"loader"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Secrets SecretsConfig `yaml:"-"`

	// ImageRatePerMinute paces image requests; 0 means unlimited.
	ImageRatePerMinute int `yaml:"image_rate_per_minute"`
}

type ModelConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

type ServerConfig struct {
	Port        string `yaml:"port"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SecretsConfig is only ever read from the environment.
type SecretsConfig struct {
	HuggingFaceToken string
	GeminiAPIKey     string
	OpenAIAPIKey     string
}

func Default() Config {
	return Config{
		Text:   ModelConfig{Provider: DefaultTextProvider},
		Image:  ModelConfig{Provider: DefaultTextProvider},
		Loader: LoaderNative,
		Server: ServerConfig{Port: DefaultPort, MaxUploadMB: DefaultMaxUploadMB},
		Log:    LogConfig{Level: "info", Format: "console"},
	}
}

// LoadConfig builds the configuration. path may be empty.
func LoadConfig(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Text.Provider = envOrDefault("TEXT_PROVIDER", cfg.Text.Provider)
	cfg.Text.Model = envOrDefault("TEXT_MODEL", cfg.Text.Model)
	cfg.Image.Provider = envOrDefault("IMAGE_PROVIDER", cfg.Image.Provider)
	cfg.Image.Model = envOrDefault("IMAGE_MODEL", cfg.Image.Model)
	cfg.Loader = envOrDefault("PDF_LOADER", cfg.Loader)
	cfg.Server.Port = envOrDefault("PORT", cfg.Server.Port)
	cfg.Log.Level = envOrDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envOrDefault("LOG_FORMAT", cfg.Log.Format)

	if key := baseURLEnv(cfg.Text.Provider, false); key != "" {
		cfg.Text.BaseURL = envOrDefault(key, cfg.Text.BaseURL)
	}
	if key := baseURLEnv(cfg.Image.Provider, true); key != "" {
		cfg.Image.BaseURL = envOrDefault(key, cfg.Image.BaseURL)
	}

	mb, err := parseIntEnv("MAX_UPLOAD_MB", cfg.Server.MaxUploadMB)
	if err != nil {
		return fmt.Errorf("parse MAX_UPLOAD_MB: %w", err)
	}
	cfg.Server.MaxUploadMB = mb

	rpm, err := parseIntEnv("IMAGE_RATE_PER_MINUTE", int64(cfg.ImageRatePerMinute))
	if err != nil {
		return fmt.Errorf("parse IMAGE_RATE_PER_MINUTE: %w", err)
	}
	cfg.ImageRatePerMinute = int(rpm)

	cfg.Secrets = SecretsConfig{
		HuggingFaceToken: os.Getenv("HUGGINGFACE_API_TOKEN"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}
	return nil
}

// baseURLEnv names the variable that overrides a provider's endpoint.
func baseURLEnv(provider string, image bool) string {
	switch strings.ToLower(provider) {
	case "openai":
		return "OPENAI_BASE_URL"
	case "gemini":
		return "GEMINI_BASE_URL"
	case "ollama":
		return "OLLAMA_HOST"
	case "huggingface":
		if image {
			return "HF_IMAGE_BASE_URL"
		}
		return "HF_TEXT_BASE_URL"
	}
	return ""
}

var (
	textProviders  = []string{"huggingface", "gemini", "openai", "ollama"}
	imageProviders = []string{"huggingface", "gemini", "openai"}
)

func (c Config) Validate() error {
	var errs []error
	if !oneOf(c.Text.Provider, textProviders) {
		errs = append(errs, fmt.Errorf("text provider %q not one of %s", c.Text.Provider, strings.Join(textProviders, "|")))
	}
	if !oneOf(c.Image.Provider, imageProviders) {
		errs = append(errs, fmt.Errorf("image provider %q not one of %s", c.Image.Provider, strings.Join(imageProviders, "|")))
	}
	if !oneOf(c.Loader, []string{LoaderNative, LoaderMuPDF}) {
		errs = append(errs, fmt.Errorf("pdf loader %q not one of native|mupdf", c.Loader))
	}
	if c.ImageRatePerMinute < 0 {
		errs = append(errs, errors.New("image rate per minute must not be negative"))
	}
	if c.Server.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("max upload size must be positive"))
	}
	return errors.Join(errs...)
}

// MaxUploadBytes is the request body limit for uploads.
func (c Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB * 1024 * 1024
}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseIntEnv(key string, fallback int64) (int64, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}

	num, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return num, nil
}
