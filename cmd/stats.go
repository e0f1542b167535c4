package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/javalearn/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-level results and recent attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.AttemptRepo()
		stats, err := repo.Stats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		var attempts []store.AttemptRecord
		if recent > 0 && len(stats) > 0 {
			attempts, err = repo.Recent(ctx, store.QueryOpts{Limit: recent})
			if err != nil {
				return fmt.Errorf("query recent attempts: %w", err)
			}
		}
		writeStats(cmd.OutOrStdout(), stats, attempts)
		return nil
	},
}

func writeStats(out io.Writer, stats []store.LevelStats, attempts []store.AttemptRecord) {
	if len(stats) == 0 {
		fmt.Fprintln(out, "No attempts recorded yet. Run `javalearn` and finish a puzzle level.")
		return
	}

	t := newTable("Level", "Attempts", "Best", "Avg", "Last played")
	for _, s := range stats {
		t.Row(truncate(s.Label, 28), strconv.Itoa(s.Attempts), ratio(s.BestScore, s.BestTotal),
			fmt.Sprintf("%.0f%%", s.AvgAccuracy*100), stamp(s.LastPlayed))
	}
	printSection(out, "Levels", t)

	if len(attempts) == 0 {
		return
	}
	t = newTable("Finished", "Level", "Score", "Accuracy", "Time", "Source")
	for _, a := range attempts {
		t.Row(stamp(a.CompletedAt), truncate(a.Label, 28), ratio(a.Score, a.Total),
			fmt.Sprintf("%.0f%%", a.Accuracy()*100), fmt.Sprintf("%ds", a.DurationSecs), a.Source)
	}
	fmt.Fprintln(out)
	printSection(out, "Recent attempts", t)
}

func init() {
	statsCmd.Flags().IntP("recent", "n", 10, "Number of recent attempts to list (0 hides them)")
}
