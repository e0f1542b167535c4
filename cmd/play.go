package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Start the TUI, optionally straight into a puzzle level",
	Long: "Start the TUI. With a level key (see `javalearn topics`) the puzzle " +
		"for that level opens immediately.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := ""
		if len(args) == 1 {
			level = strings.ToLower(args[0])
		}
		return runApp(cmd, level)
	},
}
