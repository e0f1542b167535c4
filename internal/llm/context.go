package llm

import "context"

type contextKey struct{}

// Request purposes recorded with each logged call.
const (
	PurposeQuizGen = "quiz-gen"
	PurposeUnknown = "unknown"
)

// WithPurpose labels requests made with ctx for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, contextKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok {
		return v
	}
	return PurposeUnknown
}
