package store

import (
	"context"
	"time"
)

// Attempt sources.
const (
	SourceBuiltin   = "builtin"
	SourceBank      = "bank"
	SourceGenerated = "generated"
)

// QueryOpts configures attempt and event queries.
type QueryOpts struct {
	Limit int    // max results (0 = unlimited)
	Level string // only this level key ("" = all)
	After int64  // sequence > After
}

// AnswerRecord is one answered question inside an attempt.
type AnswerRecord struct {
	Position     int
	Prompt       string
	Selected     int
	SelectedText string
	CorrectIndex int
	CorrectText  string
	Correct      bool
}

// AttemptRecord is one completed pass through a level.
type AttemptRecord struct {
	ID           string
	Sequence     int64
	Level        string
	Label        string
	Source       string
	Score        int
	Total        int
	DurationSecs int
	CompletedAt  time.Time

	// Answers is only filled by AttemptRepo.Attempt.
	Answers []AnswerRecord
}

// Accuracy returns the score as a fraction of the total.
func (a AttemptRecord) Accuracy() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Score) / float64(a.Total)
}

// LevelStats aggregates every attempt for one level.
type LevelStats struct {
	Level       string
	Label       string
	Attempts    int
	BestScore   int
	BestTotal   int
	AvgAccuracy float64
	LastPlayed  time.Time
}

// AttemptRepo stores completed quiz attempts.
type AttemptRepo interface {
	// Append stores an attempt and its answers in one transaction and
	// returns the assigned ID.
	Append(ctx context.Context, rec AttemptRecord) (string, error)

	// Recent returns attempts newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// Attempt returns one attempt with its answers, or nil if not found.
	Attempt(ctx context.Context, id string) (*AttemptRecord, error)

	// Stats aggregates attempts per level, in first-played order.
	Stats(ctx context.Context) ([]LevelStats, error)

	// Prune deletes all but the N most recent attempts.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one request purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose sums token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel sums token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
