package quiz

import (
	"errors"
	"sync"
	"testing"
)

func testQuestions(correct ...int) []Question {
	qs := make([]Question, len(correct))
	for i, c := range correct {
		qs[i] = Question{
			Prompt:       "Q",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: c,
			Explanation:  "because",
		}
	}
	return qs
}

func newTestEngine(t *testing.T, correct ...int) *Engine {
	t.Helper()
	e, err := New(testQuestions(correct...))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func answer(t *testing.T, e *Engine, opt int) Result {
	t.Helper()
	if err := e.SelectOption(opt); err != nil {
		t.Fatalf("SelectOption(%d): %v", opt, err)
	}
	res, err := e.SubmitAnswer()
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	return res
}

func TestNew_EmptyTopic(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrEmptyTopic) {
		t.Errorf("New(nil) error = %v, want ErrEmptyTopic", err)
	}
}

func TestNew_InitialState(t *testing.T) {
	e := newTestEngine(t, 1, 0)
	st := e.State()
	if st.Position != 0 || st.HasSelection || st.Answered || st.Score != 0 || st.Complete {
		t.Errorf("initial state = %+v", st)
	}
	if st.Total != 2 {
		t.Errorf("Total = %d, want 2", st.Total)
	}
	if e.Phase() != PhaseUnanswered {
		t.Errorf("Phase = %v, want unanswered", e.Phase())
	}
}

func TestScenarioA_TwoQuestions(t *testing.T) {
	e := newTestEngine(t, 1, 0)

	res := answer(t, e, 1)
	if !res.Correct {
		t.Error("first answer should be correct")
	}
	if e.Score() != 1 {
		t.Errorf("Score = %d, want 1", e.Score())
	}
	if err := e.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if e.Position() != 1 {
		t.Errorf("Position = %d, want 1", e.Position())
	}
	if e.Answered() {
		t.Error("Answered should reset after advance")
	}

	res = answer(t, e, 2)
	if res.Correct {
		t.Error("second answer should be wrong")
	}
	if res.CorrectIndex != 0 {
		t.Errorf("CorrectIndex = %d, want 0", res.CorrectIndex)
	}
	if e.Score() != 1 {
		t.Errorf("Score = %d, want 1", e.Score())
	}
	if err := e.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if !e.Complete() {
		t.Error("expected complete after last advance")
	}
	if e.Position() != 1 {
		t.Errorf("Position = %d, want 1 (unchanged on completion)", e.Position())
	}
	if e.Phase() != PhaseComplete {
		t.Errorf("Phase = %v, want complete", e.Phase())
	}
}

func TestScenarioB_SubmitWithoutSelection(t *testing.T) {
	e := newTestEngine(t, 0)
	_, err := e.SubmitAnswer()
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("SubmitAnswer error = %v, want ErrNoSelection", err)
	}
	if e.Answered() {
		t.Error("Answered should remain false")
	}
}

func TestScenarioC_SwitchToEmptyTopicKeepsSession(t *testing.T) {
	e := newTestEngine(t, 1, 0, 2)
	answer(t, e, 1)
	if err := e.Advance(); err != nil {
		t.Fatal(err)
	}
	before := e.State()

	err := e.SwitchTopic(nil)
	if !errors.Is(err, ErrEmptyTopic) {
		t.Errorf("SwitchTopic error = %v, want ErrEmptyTopic", err)
	}
	if after := e.State(); after != before {
		t.Errorf("state changed: before %+v, after %+v", before, after)
	}
	if e.Len() != 3 {
		t.Errorf("Len = %d, want 3", e.Len())
	}
}

func TestInvalidQuestionsRejected(t *testing.T) {
	tests := []struct {
		name string
		qs   []Question
	}{
		{"one option", []Question{{Prompt: "p", Options: []string{"only"}}}},
		{"index past options", []Question{{Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 7}}},
		{"negative index", append(testQuestions(0), Question{Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: -1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.qs); !errors.Is(err, ErrInvalidQuestion) {
				t.Errorf("New error = %v, want ErrInvalidQuestion", err)
			}

			e := newTestEngine(t, 1, 0)
			answer(t, e, 1)
			before := e.State()
			if err := e.SwitchTopic(tt.qs); !errors.Is(err, ErrInvalidQuestion) {
				t.Errorf("SwitchTopic error = %v, want ErrInvalidQuestion", err)
			}
			if after := e.State(); after != before {
				t.Errorf("state changed: before %+v, after %+v", before, after)
			}
			if e.Len() != 2 {
				t.Errorf("Len = %d, want 2", e.Len())
			}
		})
	}
}

func TestScenarioD_RestartAfterComplete(t *testing.T) {
	e := newTestEngine(t, 0)
	answer(t, e, 0)
	if err := e.Advance(); err != nil {
		t.Fatal(err)
	}
	if !e.Complete() {
		t.Fatal("expected complete")
	}

	e.Restart()
	st := e.State()
	if st.Position != 0 || st.Score != 0 || st.Complete || st.Answered || st.HasSelection {
		t.Errorf("state after restart = %+v", st)
	}
	if len(e.Answers()) != 0 {
		t.Errorf("Answers = %d, want 0 after restart", len(e.Answers()))
	}
}

func TestSelectOption_OutOfRange(t *testing.T) {
	e := newTestEngine(t, 0)
	if err := e.SelectOption(1); err != nil {
		t.Fatal(err)
	}

	for _, i := range []int{-1, 4, 100} {
		if err := e.SelectOption(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SelectOption(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
	}
	if sel, ok := e.Selected(); !ok || sel != 1 {
		t.Errorf("Selected = (%d, %v), want (1, true)", sel, ok)
	}
}

func TestSelectOption_IgnoredAfterSubmit(t *testing.T) {
	e := newTestEngine(t, 0)
	answer(t, e, 2)

	if err := e.SelectOption(0); err != nil {
		t.Errorf("SelectOption after submit error = %v, want nil", err)
	}
	if sel, _ := e.Selected(); sel != 2 {
		t.Errorf("Selected = %d, want 2", sel)
	}
	if e.Score() != 0 {
		t.Errorf("Score = %d, want 0", e.Score())
	}
}

func TestSelectOption_LastSelectionWins(t *testing.T) {
	e := newTestEngine(t, 3)
	for _, i := range []int{0, 1, 2, 1, 3} {
		if err := e.SelectOption(i); err != nil {
			t.Fatal(err)
		}
	}
	res, err := e.SubmitAnswer()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Correct || res.Selected != 3 {
		t.Errorf("result = %+v, want correct with selection 3", res)
	}
	if e.Score() != 1 {
		t.Errorf("Score = %d, want 1", e.Score())
	}
}

func TestSubmitAnswer_OncePerQuestion(t *testing.T) {
	e := newTestEngine(t, 0, 0)
	answer(t, e, 0)

	if _, err := e.SubmitAnswer(); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second SubmitAnswer error = %v, want ErrAlreadyAnswered", err)
	}
	if e.Score() != 1 {
		t.Errorf("Score = %d, want 1", e.Score())
	}
}

func TestSubmitAnswer_ReportsExplanationAndFeedback(t *testing.T) {
	e := newTestEngine(t, 0)
	res := answer(t, e, 0)
	if res.Explanation != "because" {
		t.Errorf("Explanation = %q, want %q", res.Explanation, "because")
	}
	if res.Feedback == "" {
		t.Error("expected a feedback message")
	}
}

func TestAdvance_NotAnswered(t *testing.T) {
	e := newTestEngine(t, 0, 1)
	if err := e.Advance(); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("Advance error = %v, want ErrNotAnswered", err)
	}
	if err := e.SelectOption(0); err != nil {
		t.Fatal(err)
	}
	if err := e.Advance(); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("Advance with pending selection error = %v, want ErrNotAnswered", err)
	}
	if e.Position() != 0 {
		t.Errorf("Position = %d, want 0", e.Position())
	}
}

func TestAdvance_CompleteIsTerminal(t *testing.T) {
	e := newTestEngine(t, 0)
	answer(t, e, 0)
	if err := e.Advance(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := e.Advance(); err != nil {
			t.Errorf("Advance on complete error = %v", err)
		}
	}
	if _, err := e.SubmitAnswer(); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("SubmitAnswer on complete error = %v, want ErrAlreadyAnswered", err)
	}
	st := e.State()
	if st.Position != 0 || !st.Complete || st.Score != 1 {
		t.Errorf("state = %+v", st)
	}
}

func TestSwitchTopic_Resets(t *testing.T) {
	e := newTestEngine(t, 0, 0)
	answer(t, e, 0)

	next := testQuestions(2, 2, 2)
	if err := e.SwitchTopic(next); err != nil {
		t.Fatal(err)
	}
	st := e.State()
	if st.Position != 0 || st.Score != 0 || st.Answered || st.Complete || st.HasSelection {
		t.Errorf("state after switch = %+v", st)
	}
	if st.Total != 3 {
		t.Errorf("Total = %d, want 3", st.Total)
	}
	if e.Current().CorrectIndex != 2 {
		t.Errorf("Current().CorrectIndex = %d, want 2", e.Current().CorrectIndex)
	}
}

func TestProgress(t *testing.T) {
	e := newTestEngine(t, 0, 0, 0)
	if n, m := e.Progress(); n != 1 || m != 3 {
		t.Errorf("Progress = %d of %d, want 1 of 3", n, m)
	}
	answer(t, e, 0)
	if err := e.Advance(); err != nil {
		t.Fatal(err)
	}
	if n, m := e.Progress(); n != 2 || m != 3 {
		t.Errorf("Progress = %d of %d, want 2 of 3", n, m)
	}
}

// op is one user intent applied to an engine.
type op struct {
	kind string
	arg  int
}

func replay(e *Engine, ops []op) {
	for _, o := range ops {
		switch o.kind {
		case "select":
			_ = e.SelectOption(o.arg)
		case "submit":
			_, _ = e.SubmitAnswer()
		case "advance":
			_ = e.Advance()
		case "restart":
			e.Restart()
		}
	}
}

func TestInvariants_HoldAcrossSequences(t *testing.T) {
	sequences := map[string][]op{
		"all correct": {
			{"select", 1}, {"submit", 0}, {"advance", 0},
			{"select", 0}, {"submit", 0}, {"advance", 0},
			{"select", 2}, {"submit", 0}, {"advance", 0},
		},
		"noise": {
			{"advance", 0}, {"submit", 0}, {"select", 9}, {"select", 1},
			{"submit", 0}, {"submit", 0}, {"select", 3}, {"advance", 0},
			{"advance", 0}, {"select", 1}, {"submit", 0}, {"advance", 0},
			{"select", 2}, {"submit", 0}, {"advance", 0}, {"advance", 0},
		},
		"restart midway": {
			{"select", 1}, {"submit", 0}, {"advance", 0},
			{"restart", 0},
			{"select", 3}, {"submit", 0}, {"advance", 0},
		},
	}

	for name, ops := range sequences {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, 1, 0, 2)
			lastPos, lastScore := 0, 0
			for i, o := range ops {
				replay(e, []op{o})
				st := e.State()
				if st.Score < 0 || st.Score > st.Total {
					t.Fatalf("step %d: score %d out of [0,%d]", i, st.Score, st.Total)
				}
				if st.Position < 0 || st.Position >= st.Total {
					t.Fatalf("step %d: position %d out of [0,%d)", i, st.Position, st.Total)
				}
				answered := 0
				if st.Answered {
					answered = 1
				}
				if st.Score > st.Position+answered {
					t.Fatalf("step %d: score %d > position %d + answered %d", i, st.Score, st.Position, answered)
				}
				if o.kind != "restart" {
					if st.Position < lastPos {
						t.Fatalf("step %d: position decreased %d -> %d", i, lastPos, st.Position)
					}
					if st.Score < lastScore {
						t.Fatalf("step %d: score decreased %d -> %d", i, lastScore, st.Score)
					}
				}
				lastPos, lastScore = st.Position, st.Score
			}
		})
	}
}

func TestDeterministicReplay(t *testing.T) {
	ops := []op{
		{"select", 1}, {"submit", 0}, {"advance", 0},
		{"select", 1}, {"submit", 0}, {"advance", 0},
		{"select", 2}, {"submit", 0}, {"advance", 0},
	}

	var first State
	for i := 0; i < 5; i++ {
		e, err := New(testQuestions(1, 0, 2), WithFeedback(NewRandomFeedback(Pool{
			Correct:   []string{"yes", "great"},
			Incorrect: []string{"no", "nope"},
		}, nil)))
		if err != nil {
			t.Fatal(err)
		}
		replay(e, ops)
		st := e.State()
		if i == 0 {
			first = st
			continue
		}
		if st != first {
			t.Errorf("run %d: state %+v, want %+v", i, st, first)
		}
	}
	if first.Score != 2 || !first.Complete {
		t.Errorf("final state = %+v, want score 2 and complete", first)
	}
}

func TestConcurrentSubmitScoresOnce(t *testing.T) {
	e := newTestEngine(t, 0)
	if err := e.SelectOption(0); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.SubmitAnswer(); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("successful submissions = %d, want 1", succeeded)
	}
	if e.Score() != 1 {
		t.Errorf("Score = %d, want 1", e.Score())
	}
}

func TestAnswersLog(t *testing.T) {
	e := newTestEngine(t, 1, 0)
	answer(t, e, 1)
	if err := e.Advance(); err != nil {
		t.Fatal(err)
	}
	answer(t, e, 3)

	got := e.Answers()
	want := []Answer{
		{Position: 0, Selected: 1, Correct: true},
		{Position: 1, Selected: 3, Correct: false},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Answers) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Answers[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopicValidate(t *testing.T) {
	tests := []struct {
		name    string
		topic   Topic
		wantErr bool
	}{
		{"ok", Topic{Key: "k", Label: "K", Questions: testQuestions(0)}, false},
		{"empty", Topic{Key: "k", Label: "K"}, true},
		{"one option", Topic{Key: "k", Questions: []Question{{Prompt: "p", Options: []string{"a"}}}}, true},
		{"bad index", Topic{Key: "k", Questions: []Question{{Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 2}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.topic.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
