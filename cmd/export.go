package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/javalearn/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export attempt history to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
			return fmt.Errorf("export file must end in .xlsx, got %q", path)
		}
		limit, _ := cmd.Flags().GetInt("limit")

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

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		n, err := report.Export(cmd.Context(), st.AttemptRepo(), f, limit)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
			return err
		}

		e.logger.Info("history exported", "path", path, "attempts", n)
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d attempts to %s\n", n, path)
		return nil
	},
}

func init() {
	exportCmd.Flags().IntP("limit", "n", 0, "Export only the N most recent attempts (0 exports all)")
}
