package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/javalearn/internal/content"
	"github.com/abhisek/javalearn/internal/quiz"
	"github.com/abhisek/javalearn/internal/quizgen"
	"github.com/abhisek/javalearn/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate <subject>",
	Short: "Generate a quiz on any Java subject with the configured LLM",
	Long: "Generate multiple-choice questions on a Java subject. The quiz is played " +
		"in the terminal, or written to a YAML question bank with --save.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		count, _ := cmd.Flags().GetInt("count")
		save, _ := cmd.Flags().GetString("save")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if !e.cfg.LLM.Enabled() {
			return errors.New("no LLM provider configured: set JAVALEARN_LLM_PROVIDER or a vendor API key such as ANTHROPIC_API_KEY")
		}

		st, err := e.openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		gen, err := e.generator(ctx, st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		req, err := quizgen.Request{
			Subject: strings.Join(args, " "),
			Level:   level,
			Count:   count,
		}.Normalize()
		if err != nil {
			return err
		}
		req.Avoid = seenPrompts(ctx, st.AttemptRepo(), req.TopicKey())

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Generating %d %s questions on %s...\n", req.Count, req.Level, req.Subject)
		started := time.Now()
		topic, err := gen.Generate(ctx, req)
		if err != nil {
			return err
		}
		e.logger.Info("quiz generated", "topic", topic.Key, "questions", len(topic.Questions),
			"elapsed", time.Since(started).Round(time.Millisecond))

		if save != "" {
			if err := saveBank(save, topic); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %q to %s. Play it with: javalearn quiz --bank %s --level %s\n",
				topic.Label, save, save, topic.Key)
			return nil
		}

		return playAndRecord(ctx, cmd.InOrStdin(), out, topic, store.SourceGenerated, encouragement(e), st.AttemptRepo())
	},
}

func init() {
	generateCmd.Flags().StringP("level", "l", quizgen.Levels[0], "Difficulty: "+strings.Join(quizgen.Levels, ", "))
	generateCmd.Flags().IntP("count", "c", quizgen.DefaultCount, fmt.Sprintf("Number of questions (1-%d)", quizgen.MaxCount))
	generateCmd.Flags().StringP("save", "s", "", "Write the quiz to this YAML bank instead of playing it")
}

// encouragement returns the embedded feedback pool, or plain
// "Correct!"/"Not quite." when the content cannot load.
func encouragement(e *env) quiz.FeedbackPicker {
	lib, err := content.Load()
	if err != nil {
		if e != nil {
			e.logger.Warn("encouragement pool unavailable", "err", err)
		}
		return quiz.StaticFeedback{}
	}
	return lib.Feedback()
}

// seenPrompts collects prompts from recent attempts at the same generated
// topic so the model is asked for new questions.
func seenPrompts(ctx context.Context, repo store.AttemptRepo, key string) []string {
	recent, err := repo.Recent(ctx, store.QueryOpts{Level: key, Limit: 5})
	if err != nil {
		return nil
	}
	var prompts []string
	for _, a := range recent {
		rec, err := repo.Attempt(ctx, a.ID)
		if err != nil || rec == nil {
			continue
		}
		for _, ans := range rec.Answers {
			prompts = append(prompts, ans.Prompt)
		}
	}
	return prompts
}

// saveBank merges topic into the YAML bank at path, replacing a topic with
// the same key.
func saveBank(path string, topic quiz.Topic) error {
	var topics []quiz.Topic
	if f, err := os.Open(path); err == nil {
		topics, err = content.ReadYAMLBank(path, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("existing bank: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("open bank: %w", err)
	}

	replaced := false
	for i := range topics {
		if topics[i].Key == topic.Key {
			topics[i] = topic
			replaced = true
		}
	}
	if !replaced {
		topics = append(topics, topic)
	}

	var buf bytes.Buffer
	if err := content.WriteYAMLBank(&buf, topics); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write bank: %w", err)
	}
	return nil
}
