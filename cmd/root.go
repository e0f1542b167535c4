package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/javalearn/internal/config"
	"github.com/abhisek/javalearn/internal/content"
	"github.com/abhisek/javalearn/internal/llm"
	"github.com/abhisek/javalearn/internal/logging"
	"github.com/abhisek/javalearn/internal/quizgen"
	"github.com/abhisek/javalearn/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "javalearn",
	Short: "Learn Java in the terminal",
	Long: "JavaLearn is a terminal app for learning Java: lessons with read-aloud, " +
		"step-by-step code walks, and multiple-choice puzzles with tracked history.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides JAVALEARN_DB and config)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/javalearn/config.yaml)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(llmCmd)
}

// env is what every subcommand needs: settings and a logger.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func()
}

// setup loads the config named by --config and opens the log file.
func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.Setup(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	logger.Debug("config loaded", "path", path, "llm_provider", cfg.LLM.Provider)
	return &env{cfg: cfg, logger: logger, closeLog: closeLog}, nil
}

func (e *env) Close() {
	e.closeLog()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file or JAVALEARN_DB, then the default XDG path.
func (e *env) resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if e.cfg.DBPath != "" {
		return e.cfg.DBPath, store.EnsureDir(e.cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func (e *env) openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := e.resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	e.logger.Debug("store opened", "path", dbPath)
	return st, nil
}

// library loads the embedded material plus the configured banks and any
// extra bank paths. A configured bank that fails to load is skipped with a
// warning; an explicit extra bank is an error.
func (e *env) library(extra ...string) (*content.Library, error) {
	lib, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	for _, path := range e.cfg.QuestionBanks {
		if err := addBank(lib, path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping question bank: %v\n", err)
			e.logger.Warn("question bank skipped", "path", path, "err", err)
		}
	}
	for _, path := range extra {
		if err := addBank(lib, path); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

func addBank(lib *content.Library, path string) error {
	topics, err := content.LoadBank(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := lib.AddTopics(topics...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// generator returns nil when no LLM provider is configured.
func (e *env) generator(ctx context.Context, events store.EventRepo) (quizgen.Generator, error) {
	if !e.cfg.LLM.Enabled() {
		return nil, nil
	}
	provider, err := llm.NewProvider(ctx, e.cfg.LLM, events, e.logger)
	if err != nil {
		return nil, err
	}
	return quizgen.New(provider, quizgen.DefaultConfig(), e.logger), nil
}
