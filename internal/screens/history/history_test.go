package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/javalearn/internal/store"
)

type fakeRepo struct {
	store.AttemptRepo
	attempts []store.AttemptRecord
	details  map[string]*store.AttemptRecord
	lookups  int
	opts     store.QueryOpts
}

func (f *fakeRepo) Recent(_ context.Context, opts store.QueryOpts) ([]store.AttemptRecord, error) {
	f.opts = opts
	return f.attempts, nil
}

func (f *fakeRepo) Stats(context.Context) ([]store.LevelStats, error) {
	return []store.LevelStats{{Level: "beginner", Label: "Beginner", Attempts: 2, BestScore: 5, BestTotal: 5, AvgAccuracy: 0.8}}, nil
}

func (f *fakeRepo) Attempt(_ context.Context, id string) (*store.AttemptRecord, error) {
	f.lookups++
	return f.details[id], nil
}

func newRepo() *fakeRepo {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &fakeRepo{
		attempts: []store.AttemptRecord{
			{ID: "a2", Label: "Beginner", Source: store.SourceBuiltin, Score: 5, Total: 5, CompletedAt: at},
			{ID: "a1", Label: "Beginner", Source: store.SourceBuiltin, Score: 3, Total: 5, CompletedAt: at.Add(-time.Hour)},
		},
		details: map[string]*store.AttemptRecord{
			"a1": {ID: "a1", Answers: []store.AnswerRecord{
				{Position: 0, Prompt: "Size of int?", Selected: 0, SelectedText: "16 bits", CorrectIndex: 1, CorrectText: "32 bits"},
				{Position: 1, Prompt: "Entry point?", Selected: 0, SelectedText: "main", CorrectIndex: 0, CorrectText: "main", Correct: true},
			}},
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

var (
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func TestLoadsRecentWithLimit(t *testing.T) {
	repo := newRepo()
	s := New(repo)
	if !strings.Contains(s.View(100, 30), "Loading history") {
		t.Error("expected loading state before data arrives")
	}
	load(t, s)

	if repo.opts.Limit != Limit {
		t.Errorf("Recent limit = %d, want %d", repo.opts.Limit, Limit)
	}
	v := s.View(100, 30)
	for _, want := range []string{"Beginner  2 played  best 5/5  avg 80%", "5/5", "3/5"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEmptyHistory(t *testing.T) {
	s := New(&fakeRepo{})
	load(t, s)
	if !strings.Contains(s.View(100, 30), "No attempts yet") {
		t.Error("expected empty-state message")
	}
}

func TestExpandLoadsAnswersOnce(t *testing.T) {
	repo := newRepo()
	s := New(repo)
	load(t, s)

	s.Update(down)
	_, cmd := s.Update(enter)
	if s.Expanded() != "a1" || cmd == nil {
		t.Fatalf("expanded=%q cmd=%v", s.Expanded(), cmd)
	}
	if !strings.Contains(s.View(100, 30), "Loading answers") {
		t.Error("expected answers placeholder")
	}
	s.Update(cmd())

	v := s.View(100, 30)
	for _, want := range []string{"1. Size of int?", "you: A) 16 bits", "answer: B) 32 bits", "2. Entry point?"} {
		if !strings.Contains(v, want) {
			t.Errorf("expanded view missing %q", want)
		}
	}

	// Collapse and expand again: the answers are cached.
	s.Update(enter)
	if s.Expanded() != "" {
		t.Fatal("second enter should collapse")
	}
	if _, cmd := s.Update(enter); cmd != nil {
		t.Error("expected cached answers, got a reload command")
	}
	if repo.lookups != 1 {
		t.Errorf("Attempt called %d times, want 1", repo.lookups)
	}
}

func TestCursorClamps(t *testing.T) {
	s := New(newRepo())
	load(t, s)
	for range 5 {
		s.Update(down)
	}
	if s.cursor != 1 {
		t.Errorf("cursor = %d, want 1", s.cursor)
	}
}
