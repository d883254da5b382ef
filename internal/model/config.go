package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all runtime configuration. Defaults can be overridden by
// ~/.efaktur/config.yaml, EFAKTUR_* environment variables, and CLI flags,
// in ascending priority.
type Config struct {
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
	Mock         MockConfig        `yaml:"mock" mapstructure:"mock"`
	LLM          LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// HTTPConfig configures the outbound DJP fetch - the only operation in the
// pipeline that crosses a network boundary.
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent  string        `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig configures the layered reference-record cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig throttles outbound DJP requests per host.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ServerConfig configures the HTTP validation API.
type ServerConfig struct {
	Addr           string `yaml:"addr" mapstructure:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
}

// MockConfig controls the substitute reference data path used when no QR
// code can be decoded from the document.
type MockConfig struct {
	// FallbackEnabled substitutes mock reference data on a code-not-found
	// miss instead of failing the request.
	FallbackEnabled bool `yaml:"fallback_enabled" mapstructure:"fallback_enabled"`
	// DataFile optionally overrides the embedded mock XML payload.
	DataFile string `yaml:"data_file" mapstructure:"data_file"`
}

// LLMConfig configures the optional report summarizer.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "anthropic", "ollama", "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // environment only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		HTTP: HTTPConfig{
			Timeout:   15 * time.Second,
			UserAgent: "efaktur/1.0 (+https://github.com/wisnuaga/e-faktur)",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(home, ".efaktur", "cache"),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 16 << 20,
		},
		Mock: MockConfig{
			FallbackEnabled: false,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 600,
		},
	}
}
