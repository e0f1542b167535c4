package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/javalearn/internal/content"
	"github.com/abhisek/javalearn/internal/quiz"
	"github.com/abhisek/javalearn/internal/store"
)

func sampleTopic() quiz.Topic {
	return quiz.Topic{
		Key:   "basics",
		Label: "Basics",
		Questions: []quiz.Question{
			{Prompt: "Size of int?", Options: []string{"16 bits", "32 bits", "64 bits"}, CorrectIndex: 1, Explanation: "int is 32-bit."},
			{Prompt: "Entry point?", Options: []string{"main", "start"}, CorrectIndex: 0},
		},
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"a", 0, true},
		{"C", 2, true},
		{"2", 1, true},
		{"d", 0, false},
		{"0", -1, false},
		{"4", 3, false},
		{"", 0, false},
		{"ab", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.in, 3)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseChoice(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGeneratedQuizUsesEncouragementPool(t *testing.T) {
	lib, err := content.Load()
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = runQuiz(strings.NewReader("b\nb\n"), &out, sampleTopic(), encouragement(nil))
	require.NoError(t, err)

	text := out.String()
	assert.NotContains(t, text, "Not quite.")
	hasCorrect := false
	for _, msg := range lib.Encouragement.Correct {
		hasCorrect = hasCorrect || strings.Contains(text, msg)
	}
	hasIncorrect := false
	for _, msg := range lib.Encouragement.Incorrect {
		hasIncorrect = hasIncorrect || strings.Contains(text, msg)
	}
	assert.True(t, hasCorrect, "correct answer should show a pool message: %s", text)
	assert.True(t, hasIncorrect, "wrong answer should show a pool message: %s", text)
}

func TestRunQuiz_RepromptsAndScores(t *testing.T) {
	in := strings.NewReader("z\nb\n2\n")
	var out bytes.Buffer

	engine, err := runQuiz(in, &out, sampleTopic(), quiz.StaticFeedback{})
	require.NoError(t, err)
	assert.True(t, engine.Complete())
	assert.Equal(t, 1, engine.Score())

	text := out.String()
	assert.Contains(t, text, "Question 1 of 2")
	assert.Contains(t, text, "Please pick one of the listed options.")
	assert.Contains(t, text, "✓ Correct!")
	assert.Contains(t, text, "int is 32-bit.")
	assert.Contains(t, text, "✗ Not quite. The answer is A) main.")
}

func TestRunQuiz_QuitAndEOF(t *testing.T) {
	for _, input := range []string{"q\n", "a\n"} {
		_, err := runQuiz(strings.NewReader(input), &bytes.Buffer{}, sampleTopic(), nil)
		assert.ErrorIs(t, err, errQuit, "input %q", input)
	}
}

type memRepo struct {
	store.AttemptRepo
	saved []store.AttemptRecord
}

func (m *memRepo) Append(_ context.Context, rec store.AttemptRecord) (string, error) {
	m.saved = append(m.saved, rec)
	return "id", nil
}

func TestPlayAndRecord(t *testing.T) {
	repo := &memRepo{}
	var out bytes.Buffer
	err := playAndRecord(context.Background(), strings.NewReader("b\na\n"), &out,
		sampleTopic(), store.SourceBank, nil, repo)
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	rec := repo.saved[0]
	assert.Equal(t, "basics", rec.Level)
	assert.Equal(t, store.SourceBank, rec.Source)
	assert.Equal(t, 2, rec.Score)
	assert.Len(t, rec.Answers, 2)
	assert.Contains(t, out.String(), "Score:     2 / 2")
	assert.Contains(t, out.String(), quiz.TierGold.Message())
}

func TestPlayAndRecord_AbandonedNotSaved(t *testing.T) {
	repo := &memRepo{}
	err := playAndRecord(context.Background(), strings.NewReader("b\nq\n"), &bytes.Buffer{},
		sampleTopic(), store.SourceBank, nil, repo)
	require.NoError(t, err)
	assert.Empty(t, repo.saved)
}

func TestSaveBank_MergesByKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")

	first := sampleTopic()
	require.NoError(t, saveBank(path, first))

	other := sampleTopic()
	other.Key, other.Label = "more", "More"
	require.NoError(t, saveBank(path, other))

	replaced := sampleTopic()
	replaced.Label = "Basics v2"
	require.NoError(t, saveBank(path, replaced))

	topics, err := content.LoadBank(path)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "Basics v2", topics[0].Label)
	assert.Equal(t, "more", topics[1].Key)
}

func TestSaveBank_CorruptExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("levels: [{key: x}]"), 0o644))
	assert.Error(t, saveBank(path, sampleTopic()))
}
