package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/javalearn/internal/app"
	"github.com/abhisek/javalearn/internal/narration"
	"github.com/abhisek/javalearn/internal/screens/home"
	"github.com/abhisek/javalearn/internal/screens/puzzle"
	"github.com/abhisek/javalearn/internal/selfupdate"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// A non-empty level opens that puzzle level directly.
func runApp(cmd *cobra.Command, level string) error {
	ctx := cmd.Context()
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	lib, err := e.library()
	if err != nil {
		return err
	}

	st, err := e.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	deps := home.Deps{
		Library: lib,
		Puzzles: puzzle.Config{
			Library:     lib,
			Attempts:    st.AttemptRepo(),
			AutoAdvance: e.cfg.AutoAdvance,
			Logger:      e.logger,
		},
		Attempts: st.AttemptRepo(),
		Speaker:  narration.New(e.cfg.Narration.Command, e.cfg.Narration.Rate, e.logger),
		Updates:  selfupdate.NewChecker(selfupdate.WithTimeout(5 * time.Second)),
		Version:  version,
		Logger:   e.logger,
	}

	gen, err := e.generator(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable.")
		e.logger.Warn("llm provider unavailable", "err", err)
	}
	deps.Generator = gen

	return app.Run(app.Options{Home: deps, StartLevel: level})
}
