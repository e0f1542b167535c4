package quiz

// Tier ranks a finished attempt by accuracy.
type Tier int

const (
	TierSlate Tier = iota
	TierBronze
	TierSilver
	TierGold
)

func (t Tier) String() string {
	switch t {
	case TierGold:
		return "gold"
	case TierSilver:
		return "silver"
	case TierBronze:
		return "bronze"
	default:
		return "slate"
	}
}

// Message is the headline shown on the result card.
func (t Tier) Message() string {
	switch t {
	case TierGold:
		return "Outstanding! You're a Java Virtuoso!"
	case TierSilver:
		return "Excellent Work! You've got strong skills!"
	case TierBronze:
		return "Good Job! Keep practicing to master it!"
	default:
		return "Great start! Review and try again!"
	}
}

// Performance is the one-line verdict shown under the score.
func (t Tier) Performance() string {
	switch t {
	case TierGold:
		return "Excellent! You're a Java master!"
	case TierSilver:
		return "Great job! You have a solid understanding!"
	case TierBronze:
		return "Good effort! Keep practicing!"
	default:
		return "Keep learning! Review the basics and try again!"
	}
}

// TierFor maps an accuracy percentage to a tier.
func TierFor(accuracy float64) Tier {
	switch {
	case accuracy >= 90:
		return TierGold
	case accuracy >= 70:
		return TierSilver
	case accuracy >= 50:
		return TierBronze
	default:
		return TierSlate
	}
}

// Summary holds the figures shown once a quiz is complete.
type Summary struct {
	Score     int
	Total     int
	Incorrect int
	Accuracy  float64 // percent, 0-100
	Tier      Tier
	Answers   []Answer
}

// Summarize builds a Summary from the engine's current state. It can be
// called mid-quiz; Incorrect then counts unanswered questions too.
func Summarize(e *Engine) Summary {
	st := e.State()
	return NewSummary(st.Score, st.Total, e.Answers())
}

// NewSummary computes the derived figures for score out of total.
func NewSummary(score, total int, answers []Answer) Summary {
	var acc float64
	if total > 0 {
		acc = float64(score) / float64(total) * 100
	}
	return Summary{
		Score:     score,
		Total:     total,
		Incorrect: total - score,
		Accuracy:  acc,
		Tier:      TierFor(acc),
		Answers:   answers,
	}
}
