package puzzle

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/javalearn/internal/quiz"
	"github.com/abhisek/javalearn/internal/store"
)

// attemptSavedMsg reports the outcome of appending a finished attempt.
type attemptSavedMsg struct {
	ID  string
	Err error
}

// AttemptRecord converts a finished engine session into a history record.
func AttemptRecord(topic quiz.Topic, source string, e *quiz.Engine, elapsed time.Duration) store.AttemptRecord {
	st := e.State()
	rec := store.AttemptRecord{
		Level:        topic.Key,
		Label:        topic.Label,
		Source:       source,
		Score:        st.Score,
		Total:        st.Total,
		DurationSecs: int(elapsed.Round(time.Second).Seconds()),
		CompletedAt:  time.Now(),
	}
	for _, a := range e.Answers() {
		q, _ := e.Question(a.Position)
		ans := store.AnswerRecord{
			Position:     a.Position,
			Prompt:       q.Prompt,
			Selected:     a.Selected,
			CorrectIndex: q.CorrectIndex,
			CorrectText:  q.CorrectOption(),
			Correct:      a.Correct,
		}
		if a.Selected >= 0 && a.Selected < len(q.Options) {
			ans.SelectedText = q.Options[a.Selected]
		}
		rec.Answers = append(rec.Answers, ans)
	}
	return rec
}

// saveAttempt appends rec in the background. A nil repo skips saving.
func saveAttempt(repo store.AttemptRepo, rec store.AttemptRecord, logger *slog.Logger) tea.Cmd {
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		id, err := repo.Append(ctx, rec)
		if err != nil {
			logger.Error("save attempt", "level", rec.Level, "err", err)
			return attemptSavedMsg{Err: err}
		}
		logger.Info("attempt saved", "id", id, "level", rec.Level, "score", rec.Score, "total", rec.Total)
		return attemptSavedMsg{ID: id}
	}
}
