package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "re.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.AttemptRepo().Append(context.Background(), sampleAttempt("beginner", 3, 5)); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.AttemptRepo().Recent(context.Background(), QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("attempts after reopen = %d, want 1", len(got))
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func sampleAttempt(level string, score, total int) AttemptRecord {
	rec := AttemptRecord{
		Level:        level,
		Label:        level + " label",
		Score:        score,
		Total:        total,
		DurationSecs: 42,
	}
	for i := 0; i < total; i++ {
		correct := i < score
		sel := 1
		if correct {
			sel = 0
		}
		rec.Answers = append(rec.Answers, AnswerRecord{
			Position:     i,
			Prompt:       "question",
			Selected:     sel,
			SelectedText: "opt",
			CorrectIndex: 0,
			CorrectText:  "opt",
			Correct:      correct,
		})
	}
	return rec
}

func TestAttemptAppendAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	done := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	rec := sampleAttempt("beginner", 4, 5)
	rec.CompletedAt = done

	id, err := repo.Append(ctx, rec)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id == "" {
		t.Fatal("expected an id")
	}

	got, err := repo.Attempt(ctx, id)
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if got == nil {
		t.Fatal("expected attempt, got nil")
	}
	if got.Score != 4 || got.Total != 5 {
		t.Errorf("score = %d/%d, want 4/5", got.Score, got.Total)
	}
	if got.Source != SourceBuiltin {
		t.Errorf("source = %q, want %q", got.Source, SourceBuiltin)
	}
	if !got.CompletedAt.Equal(done) {
		t.Errorf("completed_at = %v, want %v", got.CompletedAt, done)
	}
	if len(got.Answers) != 5 {
		t.Fatalf("answers = %d, want 5", len(got.Answers))
	}
	for i, a := range got.Answers {
		if a.Position != i {
			t.Errorf("answer %d position = %d", i, a.Position)
		}
	}
	if !got.Answers[0].Correct || got.Answers[4].Correct {
		t.Errorf("unexpected correctness: %+v", got.Answers)
	}
}

func TestAttemptMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.AttemptRepo().Attempt(context.Background(), "nope")
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestAttemptAppendRejectsEmpty(t *testing.T) {
	s := openTestStore(t)
	_, err := s.AttemptRepo().Append(context.Background(), AttemptRecord{Level: "beginner"})
	if !errors.Is(err, ErrInvalidAttempt) {
		t.Fatalf("err = %v, want ErrInvalidAttempt", err)
	}
}

func TestRecent_OrderAndFilter(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	for _, lvl := range []string{"beginner", "advanced", "beginner"} {
		if _, err := repo.Append(ctx, sampleAttempt(lvl, 1, 2)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("recent = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Sequence <= all[i].Sequence {
			t.Errorf("not newest first: %d then %d", all[i-1].Sequence, all[i].Sequence)
		}
	}

	beg, err := repo.Recent(ctx, QueryOpts{Level: "beginner", Limit: 1})
	if err != nil {
		t.Fatalf("recent filtered: %v", err)
	}
	if len(beg) != 1 || beg[0].Level != "beginner" {
		t.Fatalf("filtered = %+v", beg)
	}
	if beg[0].Sequence != all[0].Sequence {
		t.Errorf("limit should keep the newest beginner attempt")
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	for _, a := range []AttemptRecord{
		sampleAttempt("beginner", 2, 5),
		sampleAttempt("intermediate", 5, 5),
		sampleAttempt("beginner", 4, 5),
	} {
		if _, err := repo.Append(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %d levels, want 2", len(stats))
	}
	beg := stats[0]
	if beg.Level != "beginner" || beg.Attempts != 2 {
		t.Errorf("beginner = %+v", beg)
	}
	if beg.BestScore != 4 || beg.BestTotal != 5 {
		t.Errorf("best = %d/%d, want 4/5", beg.BestScore, beg.BestTotal)
	}
	if diff := beg.AvgAccuracy - 0.6; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("avg accuracy = %v, want 0.6", beg.AvgAccuracy)
	}
	if stats[1].Level != "intermediate" || stats[1].AvgAccuracy != 1 {
		t.Errorf("intermediate = %+v", stats[1])
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := repo.Append(ctx, sampleAttempt("beginner", i, 5))
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		ids = append(ids, id)
	}

	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatalf("prune: %v", err)
	}
	left, err := repo.Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(left) != 2 {
		t.Fatalf("after prune = %d, want 2", len(left))
	}
	if left[0].ID != ids[4] || left[1].ID != ids[3] {
		t.Errorf("prune kept the wrong attempts")
	}

	// Answers cascade with their attempt.
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM answer_events").Scan(&n); err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if n != 10 {
		t.Errorf("answers after prune = %d, want 10", n)
	}

	// Fewer than keep is a no-op.
	if err := repo.Prune(ctx, 10); err != nil {
		t.Fatalf("prune no-op: %v", err)
	}
	if err := repo.Prune(ctx, -1); err == nil {
		t.Error("expected error for negative keep")
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.AttemptRepo().Append(ctx, sampleAttempt("beginner", 1, 1)); err != nil {
		t.Fatalf("append attempt: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "quiz-gen", Success: true}); err != nil {
		t.Fatalf("append event: %v", err)
	}

	attempts, _ := s.AttemptRepo().Recent(ctx, QueryOpts{})
	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(attempts) != 1 || len(events) != 1 {
		t.Fatalf("attempts=%d events=%d", len(attempts), len(events))
	}
	if events[0].Sequence <= attempts[0].Sequence {
		t.Errorf("event sequence %d should follow attempt sequence %d", events[0].Sequence, attempts[0].Sequence)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-x", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "anthropic", Model: "claude-x", Purpose: "quiz-gen", InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-y", Purpose: "explain", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("query = %d, want 2", len(got))
	}
	if got[0].Purpose != "explain" || got[0].Success || got[0].ErrorMessage != "boom" {
		t.Errorf("newest event = %+v", got[0])
	}

	first, err := repo.GetLLMEvent(ctx, got[1].ID-1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first == nil || first.RequestBody != "req" || first.ResponseBody != "resp" {
		t.Errorf("first event = %+v", first)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("missing event = %+v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	qg := byPurpose[1]
	if qg.Purpose != "quiz-gen" || qg.Calls != 2 || qg.InputTokens != 400 || qg.OutputTokens != 200 || qg.AvgLatencyMs != 300 {
		t.Errorf("quiz-gen usage = %+v", qg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "claude-x" || byModel[0].Calls != 2 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		p := filepath.Join(dir, "custom", "x.db")
		t.Setenv("JAVALEARN_DB", p)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("default path: %v", err)
		}
		if got != p {
			t.Errorf("path = %q, want %q", got, p)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("JAVALEARN_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("default path: %v", err)
		}
		want := filepath.Join(dir, "javalearn", "javalearn.db")
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}
