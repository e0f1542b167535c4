package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/javalearn/internal/quiz"
	"github.com/abhisek/javalearn/internal/screens/puzzle"
	"github.com/abhisek/javalearn/internal/store"
	"github.com/abhisek/javalearn/internal/ui/components"
)

// errQuit is returned when the learner leaves a quiz early.
var errQuit = errors.New("quiz abandoned")

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Play a puzzle level in the plain terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
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
		topic, err := lib.Level(strings.ToLower(level))
		if err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(lib.LevelKeys(), ", "))
		}

		st, err := e.openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		return playAndRecord(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(),
			topic, puzzle.SourceOf(lib, topic.Key), lib.Feedback(), st.AttemptRepo())
	},
}

func init() {
	quizCmd.Flags().StringP("level", "l", "beginner", "Level key to play")
	quizCmd.Flags().StringP("bank", "b", "", "Extra YAML or xlsx question bank")
}

// playAndRecord runs the terminal quiz and appends the finished attempt.
func playAndRecord(ctx context.Context, in io.Reader, out io.Writer, topic quiz.Topic, source string, fb quiz.FeedbackPicker, repo store.AttemptRepo) error {
	started := time.Now()
	engine, err := runQuiz(in, out, topic, fb)
	if errors.Is(err, errQuit) {
		fmt.Fprintln(out, "\nQuiz abandoned. Nothing was recorded.")
		return nil
	}
	if err != nil {
		return err
	}
	printSummary(out, quiz.Summarize(engine))

	if repo == nil {
		return nil
	}
	rec := puzzle.AttemptRecord(topic, source, engine, time.Since(started))
	if _, err := repo.Append(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: attempt not saved: %v\n", err)
	}
	return nil
}

// runQuiz asks every question of topic on out, reading answers from in. It
// returns errQuit if the learner types q or input ends early.
func runQuiz(in io.Reader, out io.Writer, topic quiz.Topic, fb quiz.FeedbackPicker) (*quiz.Engine, error) {
	engine, err := quiz.New(topic.Questions, quiz.WithFeedback(fb))
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "%s: %d questions\n", topic.Label, engine.Len())
	for !engine.Complete() {
		q := engine.Current()
		pos, total := engine.Progress()
		fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", pos, total, q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %s) %s\n", components.OptionLetter(i), opt)
		}

		for {
			fmt.Fprintf(out, "Answer (%s-%s, q to quit): ", components.OptionLetter(0), components.OptionLetter(len(q.Options)-1))
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return engine, fmt.Errorf("read answer: %w", err)
				}
				return engine, errQuit
			}
			input := strings.TrimSpace(scanner.Text())
			if strings.EqualFold(input, "q") {
				return engine, errQuit
			}
			choice, ok := parseChoice(input, len(q.Options))
			if !ok || engine.SelectOption(choice) != nil {
				fmt.Fprintln(out, "Please pick one of the listed options.")
				continue
			}
			break
		}

		res, err := engine.SubmitAnswer()
		if err != nil {
			return engine, err
		}
		if res.Correct {
			fmt.Fprintf(out, "✓ Correct! %s\n", res.Feedback)
		} else {
			fmt.Fprintf(out, "✗ Not quite. The answer is %s) %s. %s\n",
				components.OptionLetter(res.CorrectIndex), q.CorrectOption(), res.Feedback)
		}
		if res.Explanation != "" {
			fmt.Fprintln(out, "  "+res.Explanation)
		}
		if err := engine.Advance(); err != nil {
			return engine, err
		}
	}
	return engine, nil
}

// parseChoice accepts a letter (a, B) or a 1-based number.
func parseChoice(s string, n int) (int, bool) {
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v - 1, v >= 1 && v <= n
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && int(c-'A') < n {
			return int(c - 'A'), true
		}
	}
	return 0, false
}

func printSummary(out io.Writer, sum quiz.Summary) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("─", 40))
	fmt.Fprintln(out, sum.Tier.Message())
	fmt.Fprintf(out, "Score:     %d / %d\n", sum.Score, sum.Total)
	fmt.Fprintf(out, "Accuracy:  %.0f%%\n", sum.Accuracy)
	fmt.Fprintf(out, "Correct:   %d   Incorrect: %d\n", sum.Score, sum.Incorrect)
	fmt.Fprintln(out, sum.Tier.Performance())
}
