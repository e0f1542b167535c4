// Package report exports quiz history to an xlsx workbook.
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/javalearn/internal/store"
)

// Sheet names.
const (
	SheetAttempts = "Attempts"
	SheetAnswers  = "Answers"
)

var (
	attemptHeaders = []any{"Completed", "Level", "Label", "Source", "Score", "Total", "Accuracy", "Duration (s)", "Attempt ID"}
	answerHeaders  = []any{"Attempt ID", "Level", "#", "Prompt", "Selected", "Correct Answer", "Result"}
)

// Export loads attempts from repo (newest first, all when limit is 0)
// and writes them to w. It returns the number of attempts written.
func Export(ctx context.Context, repo store.AttemptRepo, w io.Writer, limit int) (int, error) {
	recent, err := repo.Recent(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return 0, fmt.Errorf("load attempts: %w", err)
	}
	full := make([]store.AttemptRecord, 0, len(recent))
	for _, a := range recent {
		rec, err := repo.Attempt(ctx, a.ID)
		if err != nil {
			return 0, fmt.Errorf("load attempt %s: %w", a.ID, err)
		}
		if rec != nil {
			full = append(full, *rec)
		}
	}
	if err := Write(w, full); err != nil {
		return 0, err
	}
	return len(full), nil
}

// Write renders attempts, with their answers, as a two-sheet workbook.
func Write(w io.Writer, attempts []store.AttemptRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetAttempts); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetAnswers); err != nil {
		return fmt.Errorf("create answers sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return fmt.Errorf("percent style: %w", err)
	}

	if err := writeRow(f, SheetAttempts, 1, attemptHeaders); err != nil {
		return err
	}
	if err := writeRow(f, SheetAnswers, 1, answerHeaders); err != nil {
		return err
	}

	answerRow := 2
	for i, a := range attempts {
		row := i + 2
		err := writeRow(f, SheetAttempts, row, []any{
			a.CompletedAt.Local().Format("2006-01-02 15:04:05"),
			a.Level, a.Label, a.Source, a.Score, a.Total,
			a.Accuracy(), a.DurationSecs, a.ID,
		})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetAttempts, cell(7, row), cell(7, row), percent); err != nil {
			return fmt.Errorf("style accuracy: %w", err)
		}

		for _, ans := range a.Answers {
			result := "incorrect"
			if ans.Correct {
				result = "correct"
			}
			err := writeRow(f, SheetAnswers, answerRow, []any{
				a.ID, a.Level, ans.Position + 1, ans.Prompt,
				ans.SelectedText, ans.CorrectText, result,
			})
			if err != nil {
				return err
			}
			answerRow++
		}
	}

	for _, sheet := range []string{SheetAttempts, SheetAnswers} {
		if err := f.SetCellStyle(sheet, "A1", cell(len(attemptHeaders), 1), bold); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}
	_ = f.SetColWidth(SheetAttempts, "A", "A", 20)
	_ = f.SetColWidth(SheetAttempts, "C", "C", 18)
	_ = f.SetColWidth(SheetAnswers, "D", "D", 60)
	_ = f.SetColWidth(SheetAnswers, "E", "F", 30)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
