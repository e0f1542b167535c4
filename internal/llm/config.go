package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// defaultModels is the model used when none is configured.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
	ProviderMock:       "mock",
}

// vendorKeys names each vendor's standard API key variable.
var vendorKeys = map[string]string{
	ProviderAnthropic:  "ANTHROPIC_API_KEY",
	ProviderOpenAI:     "OPENAI_API_KEY",
	ProviderGemini:     "GEMINI_API_KEY",
	ProviderOpenRouter: "OPENROUTER_API_KEY",
}

// Config selects and configures one LLM provider.
type Config struct {
	// Provider is one of the Provider* names. Empty disables generation.
	Provider string

	APIKey  string
	Model   string
	BaseURL string // optional endpoint override

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration

	Retry   RetryConfig
	Breaker BreakerConfig
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a disabled Config with retry and breaker defaults.
func DefaultConfig() Config {
	return Config{
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Breaker: DefaultBreakerConfig(),
		Timeout: 60 * time.Second,
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// ConfigFromEnv reads JAVALEARN_LLM_* variables. With no provider set it
// falls back to the first standard API key found (see DiscoverConfig).
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("JAVALEARN_LLM_PROVIDER"); p != "" {
		cfg.Provider = strings.ToLower(p)
		cfg.APIKey = os.Getenv("JAVALEARN_LLM_API_KEY")
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv(vendorKeys[cfg.Provider])
		}
	} else if found, ok := DiscoverConfig(); ok {
		cfg.Provider = found.Provider
		cfg.APIKey = found.APIKey
	}

	if m := os.Getenv("JAVALEARN_LLM_MODEL"); m != "" {
		cfg.Model = m
	}
	if u := os.Getenv("JAVALEARN_LLM_BASE_URL"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("JAVALEARN_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	return cfg
}

// DiscoverConfig checks the vendors' standard API key variables in order
// Anthropic, OpenAI, Gemini, OpenRouter and returns a Config for the first
// one set.
func DiscoverConfig() (Config, bool) {
	for _, p := range []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter} {
		if k := os.Getenv(vendorKeys[p]); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = p
			cfg.APIKey = k
			cfg.Model = defaultModels[p]
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("JAVALEARN_LLM_API_KEY is required for the %s provider", c.Provider)
		}
	case ProviderMock:
	case "":
		return fmt.Errorf("no LLM provider configured (set JAVALEARN_LLM_PROVIDER)")
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
