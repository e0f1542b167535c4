package quiz

import (
	"math/rand/v2"
	"sync"
)

// FeedbackPicker chooses the encouragement shown after a submission.
// The choice is cosmetic and never affects scoring.
type FeedbackPicker interface {
	Pick(correct bool) string
}

// Pool holds the encouragement messages for each outcome.
type Pool struct {
	Correct   []string `yaml:"correct" validate:"min=1,dive,required"`
	Incorrect []string `yaml:"incorrect" validate:"min=1,dive,required"`
}

// StaticFeedback always returns the same pair of messages.
type StaticFeedback struct{}

func (StaticFeedback) Pick(correct bool) string {
	if correct {
		return "Correct!"
	}
	return "Not quite."
}

// RandomFeedback picks a uniformly random message from a Pool.
type RandomFeedback struct {
	mu   sync.Mutex
	pool Pool
	rng  *rand.Rand
}

// NewRandomFeedback creates a picker over pool. A nil rng uses a
// time-seeded source.
func NewRandomFeedback(pool Pool, rng *rand.Rand) *RandomFeedback {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomFeedback{pool: pool, rng: rng}
}

func (r *RandomFeedback) Pick(correct bool) string {
	msgs := r.pool.Incorrect
	if correct {
		msgs = r.pool.Correct
	}
	if len(msgs) == 0 {
		return StaticFeedback{}.Pick(correct)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return msgs[r.rng.IntN(len(msgs))]
}
