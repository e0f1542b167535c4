package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// ErrInvalidAttempt is returned when an attempt has no questions.
var ErrInvalidAttempt = errors.New("attempt must have a positive total")

// attemptRepo implements AttemptRepo with the ent SQL builder.
type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

type attemptRow struct {
	ID           string    `sql:"id"`
	Sequence     int64     `sql:"sequence"`
	Level        string    `sql:"level"`
	Label        string    `sql:"label"`
	Source       string    `sql:"source"`
	Score        int       `sql:"score"`
	Total        int       `sql:"total"`
	DurationSecs int       `sql:"duration_secs"`
	CompletedAt  time.Time `sql:"completed_at"`
}

var attemptSelect = []string{
	"id", "sequence", "level", "label", "source",
	"score", "total", "duration_secs", "completed_at",
}

type answerRow struct {
	Position     int    `sql:"position"`
	Prompt       string `sql:"prompt"`
	Selected     int    `sql:"selected"`
	SelectedText string `sql:"selected_text"`
	CorrectIndex int    `sql:"correct_index"`
	CorrectText  string `sql:"correct_text"`
	Correct      bool   `sql:"correct"`
}

var answerSelect = []string{
	"position", "prompt", "selected", "selected_text",
	"correct_index", "correct_text", "correct",
}

func (r *attemptRepo) Append(ctx context.Context, rec AttemptRecord) (string, error) {
	if rec.Total <= 0 {
		return "", ErrInvalidAttempt
	}
	if rec.Source == "" {
		rec.Source = SourceBuiltin
	}
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin attempt tx: %w", err)
	}
	defer tx.Rollback()

	seqNum, err := r.seq.Next(ctx, tx)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	query, args := builder.Insert(TableAttempts).
		Columns(attemptSelect...).
		Values(id, seqNum, rec.Level, rec.Label, rec.Source,
			rec.Score, rec.Total, rec.DurationSecs, rec.CompletedAt.UTC()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("save attempt: %w", err)
	}

	if len(rec.Answers) > 0 {
		ins := builder.Insert(TableAnswers).Columns(append([]string{"attempt_id"}, answerSelect...)...)
		for _, a := range rec.Answers {
			ins.Values(id, a.Position, a.Prompt, a.Selected, a.SelectedText,
				a.CorrectIndex, a.CorrectText, a.Correct)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return "", fmt.Errorf("save answers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit attempt: %w", err)
	}
	return id, nil
}

func (r *attemptRepo) Recent(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	sel := builder.Select(attemptSelect...).
		From(builder.Table(TableAttempts)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Level != "" {
		sel.Where(entsql.EQ("level", opts.Level))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	rows, err := r.queryAttempts(ctx, sel)
	if err != nil {
		return nil, err
	}
	out := make([]AttemptRecord, len(rows))
	for i, row := range rows {
		out[i] = row.record()
	}
	return out, nil
}

func (r *attemptRepo) Attempt(ctx context.Context, id string) (*AttemptRecord, error) {
	sel := builder.Select(attemptSelect...).
		From(builder.Table(TableAttempts)).
		Where(entsql.EQ("id", id))
	rows, err := r.queryAttempts(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	rec := rows[0].record()

	query, args := builder.Select(answerSelect...).
		From(builder.Table(TableAnswers)).
		Where(entsql.EQ("attempt_id", id)).
		OrderBy(entsql.Asc("position")).
		Query()
	ar, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer ar.Close()

	var answers []answerRow
	if err := entsql.ScanSlice(ar, &answers); err != nil {
		return nil, fmt.Errorf("scan answers: %w", err)
	}
	for _, a := range answers {
		rec.Answers = append(rec.Answers, AnswerRecord(a))
	}
	return &rec, nil
}

func (r *attemptRepo) Stats(ctx context.Context) ([]LevelStats, error) {
	sel := builder.Select(attemptSelect...).
		From(builder.Table(TableAttempts)).
		OrderBy(entsql.Asc("sequence"))
	rows, err := r.queryAttempts(ctx, sel)
	if err != nil {
		return nil, err
	}

	var (
		out   []LevelStats
		index = make(map[string]int)
		sums  = make(map[string]float64)
	)
	for _, row := range rows {
		i, ok := index[row.Level]
		if !ok {
			i = len(out)
			index[row.Level] = i
			out = append(out, LevelStats{Level: row.Level})
		}
		st := &out[i]
		st.Label = row.Label
		st.Attempts++
		acc := row.record().Accuracy()
		sums[row.Level] += acc
		if st.BestTotal == 0 || acc > float64(st.BestScore)/float64(st.BestTotal) {
			st.BestScore, st.BestTotal = row.Score, row.Total
		}
		st.LastPlayed = row.CompletedAt
	}
	for i := range out {
		out[i].AvgAccuracy = sums[out[i].Level] / float64(out[i].Attempts)
	}
	return out, nil
}

func (r *attemptRepo) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return fmt.Errorf("prune attempts: keep must not be negative, got %d", keep)
	}

	// Find the sequence threshold: the first attempt past the newest keep.
	query, args := builder.Select("sequence").
		From(builder.Table(TableAttempts)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Offset(keep).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query attempts for prune: %w", err)
	}
	var seqs []int64
	err = entsql.ScanSlice(rows, &seqs)
	rows.Close()
	if err != nil {
		return fmt.Errorf("scan prune threshold: %w", err)
	}
	if len(seqs) == 0 {
		return nil // fewer than keep attempts exist
	}

	query, args = builder.Delete(TableAttempts).
		Where(entsql.LTE("sequence", seqs[0])).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune attempts: %w", err)
	}
	return nil
}

func (r *attemptRepo) queryAttempts(ctx context.Context, sel *entsql.Selector) ([]attemptRow, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []attemptRow
	if err := entsql.ScanSlice(rows, &out); err != nil {
		return nil, fmt.Errorf("scan attempts: %w", err)
	}
	return out, nil
}

func (row attemptRow) record() AttemptRecord {
	return AttemptRecord{
		ID:           row.ID,
		Sequence:     row.Sequence,
		Level:        row.Level,
		Label:        row.Label,
		Source:       row.Source,
		Score:        row.Score,
		Total:        row.Total,
		DurationSecs: row.DurationSecs,
		CompletedAt:  row.CompletedAt,
	}
}
