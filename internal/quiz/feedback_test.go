package quiz

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestRandomFeedback_PicksFromMatchingPool(t *testing.T) {
	pool := Pool{
		Correct:   []string{"Awesome! Keep it up!", "Brilliant! Next one!"},
		Incorrect: []string{"You'll get the next one!"},
	}
	p := NewRandomFeedback(pool, rand.New(rand.NewPCG(1, 2)))

	for i := 0; i < 50; i++ {
		if msg := p.Pick(true); !slices.Contains(pool.Correct, msg) {
			t.Fatalf("Pick(true) = %q, not in correct pool", msg)
		}
		if msg := p.Pick(false); !slices.Contains(pool.Incorrect, msg) {
			t.Fatalf("Pick(false) = %q, not in incorrect pool", msg)
		}
	}
}

func TestRandomFeedback_EmptyPoolFallsBack(t *testing.T) {
	p := NewRandomFeedback(Pool{}, nil)
	if p.Pick(true) == "" || p.Pick(false) == "" {
		t.Error("expected a fallback message for an empty pool")
	}
}
