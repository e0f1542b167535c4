package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/javalearn/internal/screens/puzzle"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List puzzle levels, including those from question banks",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, _ := cmd.Flags().GetString("bank")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		var extra []string
		if bank != "" {
			extra = append(extra, bank)
		}
		lib, err := e.library(extra...)
		if err != nil {
			return err
		}

		t := newTable("Key", "Label", "Questions", "Source")
		for _, topic := range lib.Levels {
			t.Row(truncate(topic.Key, 28), truncate(topic.Label, 32),
				strconv.Itoa(len(topic.Questions)), puzzle.SourceOf(lib, topic.Key))
		}
		printSection(cmd.OutOrStdout(), "Puzzle levels", t)
		return nil
	},
}

func init() {
	topicsCmd.Flags().StringP("bank", "b", "", "Extra YAML or xlsx question bank")
}
