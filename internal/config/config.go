// Package config loads user settings from defaults, an optional YAML file,
// and the environment (with an optional .env file), in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/javalearn/internal/llm"
)

// Config holds the application settings.
type Config struct {
	// DBPath overrides the history database location.
	DBPath string `yaml:"db_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// AutoAdvance moves to the next question this long after a submission.
	// Zero waits for an explicit keypress.
	AutoAdvance time.Duration `yaml:"auto_advance" validate:"gte=0,lte=1m"`

	Narration NarrationConfig `yaml:"narration"`

	// QuestionBanks lists extra YAML or xlsx banks loaded at startup.
	QuestionBanks []string `yaml:"question_banks" validate:"dive,required"`

	// LLM is always read from the environment.
	LLM llm.Config `yaml:"-"`
}

// NarrationConfig configures the text-to-speech command.
type NarrationConfig struct {
	// Command is the speech program; empty searches PATH for a known one.
	Command string `yaml:"command"`

	// Rate is the speaking rate in words per minute; 0 keeps the default.
	Rate int `yaml:"rate" validate:"gte=0,lte=500"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		LLM:      llm.DefaultConfig(),
	}
}

// Dir returns the configuration directory:
// $XDG_CONFIG_HOME/javalearn, falling back to ~/.config/javalearn.
func Dir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "javalearn"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "javalearn"), nil
}

// DefaultPath returns the config file location inside Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load builds the config. An empty path uses DefaultPath; a missing file is
// not an error. A .env file in the working directory is loaded first,
// without overriding variables already set.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("JAVALEARN_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("JAVALEARN_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("JAVALEARN_AUTO_ADVANCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JAVALEARN_AUTO_ADVANCE: %w", err)
		}
		c.AutoAdvance = d
	}
	if v := os.Getenv("JAVALEARN_SPEECH_CMD"); v != "" {
		c.Narration.Command = v
	}
	if v := os.Getenv("JAVALEARN_BANKS"); v != "" {
		c.QuestionBanks = append(c.QuestionBanks, filepath.SplitList(v)...)
	}
	c.LLM = llm.ConfigFromEnv()
	return nil
}

// Validate checks field rules.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
