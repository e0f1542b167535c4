package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/javalearn/internal/llm"
	"github.com/abhisek/javalearn/internal/quiz"
)

// LLMGenerator implements Generator using an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates an LLMGenerator. A nil logger discards logs.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMGenerator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// Generate requests a batch, validates it, and re-requests with the
// validator's complaint in the prompt while the failure is retryable.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (quiz.Topic, error) {
	req, err := req.Normalize()
	if err != nil {
		return quiz.Topic{}, err
	}
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	var (
		feedback []string
		lastErr  error
	)
	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		qs, err := g.request(ctx, req, feedback)
		if err != nil {
			return quiz.Topic{}, err
		}

		verr := g.validate(qs, req)
		if verr == nil {
			topic := quiz.Topic{Key: req.TopicKey(), Label: req.TopicLabel(), Questions: qs}
			if err := topic.Validate(); err != nil {
				return quiz.Topic{}, err
			}
			g.logger.Info("generated quiz topic", "subject", req.Subject, "level", req.Level, "questions", len(qs), "attempt", attempt)
			return topic, nil
		}

		lastErr = verr
		g.logger.Warn("generated batch rejected", "attempt", attempt, "err", verr)
		if !verr.Retryable {
			break
		}
		feedback = append(feedback, verr.Error())
	}
	return quiz.Topic{}, fmt.Errorf("generate %q after %d attempts: %w", req.Subject, g.config.MaxAttempts, lastErr)
}

func (g *LLMGenerator) request(ctx context.Context, req Request, feedback []string) ([]quiz.Question, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(req, g.config, feedback)}},
		Schema:      TopicSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	qs := make([]quiz.Question, len(out.Questions))
	for i, q := range out.Questions {
		qs[i] = quiz.Question{
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		}
	}
	return qs, nil
}

func (g *LLMGenerator) validate(qs []quiz.Question, req Request) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(qs, req); verr != nil {
			return verr
		}
	}
	return nil
}

// IsValidationError reports whether err came from a rejected batch.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
