package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete attempt history",
	Long: "Delete the history database. With --keep N only the N most recent " +
		"attempts survive and the database is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		keep, _ := cmd.Flags().GetInt("keep")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		dbPath, err := e.resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		out := cmd.OutOrStdout()

		if !yes {
			what := "all history in " + dbPath
			if keep > 0 {
				what = fmt.Sprintf("all but the %d most recent attempts in %s", keep, dbPath)
			}
			fmt.Fprintf(out, "This deletes %s.\nRun again with --yes to confirm.\n", what)
			return nil
		}

		if keep > 0 {
			st, err := e.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.AttemptRepo().Prune(cmd.Context(), keep); err != nil {
				return err
			}
			e.logger.Info("history pruned", "keep", keep)
			fmt.Fprintf(out, "Kept the %d most recent attempts.\n", keep)
			return nil
		}

		removed := false
		for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			err := os.Remove(p)
			switch {
			case err == nil:
				removed = removed || p == dbPath
			case !errors.Is(err, os.ErrNotExist):
				return fmt.Errorf("remove %s: %w", p, err)
			}
		}
		if !removed {
			fmt.Fprintln(out, "No history to delete.")
			return nil
		}
		e.logger.Info("history reset", "path", dbPath)
		fmt.Fprintf(out, "Deleted %s\n", dbPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm deletion")
	resetCmd.Flags().Int("keep", 0, "Keep the N most recent attempts instead of deleting everything")
}
