package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/javalearn/internal/quiz"
)

// ErrOptionGap is returned for an xlsx row with an empty option cell
// before a filled one.
var ErrOptionGap = errors.New("option columns must be filled left to right")

// LoadBank reads extra topics from a YAML or xlsx question bank.
func LoadBank(path string) ([]quiz.Topic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAMLBank(path, f)
	case ".xlsx":
		return ReadXLSXBank(f)
	default:
		return nil, fmt.Errorf("unsupported bank format %q", filepath.Ext(path))
	}
}

// ReadYAMLBank decodes a bank with the same layout as the built-in
// puzzles file.
func ReadYAMLBank(source string, r io.Reader) ([]quiz.Topic, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	var pf puzzleFile
	if err := decode(source, raw, &pf); err != nil {
		return nil, err
	}
	for _, t := range pf.Levels {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
	}
	return pf.Levels, nil
}

// ReadXLSXBank reads one topic per sheet. The first row is a header with a
// Prompt (or Question) column, one or more "Option" columns, a Correct
// column holding a letter or 1-based number, and an optional Explanation.
func ReadXLSXBank(r io.Reader) ([]quiz.Topic, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var topics []quiz.Topic
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}
		t, err := parseSheet(sheet, rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("xlsx bank: %w", quiz.ErrEmptyTopic)
	}
	return topics, nil
}

type sheetColumns struct {
	prompt      int
	options     []int
	correct     int
	explanation int
}

func parseHeader(sheet string, header []string) (sheetColumns, error) {
	cols := sheetColumns{prompt: -1, correct: -1, explanation: -1}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case h == "prompt" || h == "question":
			cols.prompt = i
		case strings.HasPrefix(h, "option"):
			cols.options = append(cols.options, i)
		case h == "correct" || h == "answer" || h == "correct answer":
			cols.correct = i
		case h == "explanation":
			cols.explanation = i
		}
	}
	if cols.prompt < 0 || cols.correct < 0 || len(cols.options) < 2 {
		return cols, fmt.Errorf("sheet %q: header needs Prompt, Correct and at least two Option columns", sheet)
	}
	return cols, nil
}

func parseSheet(sheet string, rows [][]string) (quiz.Topic, error) {
	cols, err := parseHeader(sheet, rows[0])
	if err != nil {
		return quiz.Topic{}, err
	}

	t := quiz.Topic{Key: slug(sheet), Label: sheet}
	for n, row := range rows[1:] {
		cell := func(i int) string {
			if i < 0 || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		prompt := cell(cols.prompt)
		if prompt == "" {
			continue
		}
		// Options must be contiguous from the first column so that the
		// Correct letter keeps naming the same column.
		var opts []string
		gap := false
		for _, c := range cols.options {
			v := cell(c)
			switch {
			case v == "":
				gap = true
			case gap:
				return quiz.Topic{}, fmt.Errorf("sheet %q row %d: %w", sheet, n+2, ErrOptionGap)
			default:
				opts = append(opts, v)
			}
		}
		idx, err := parseCorrect(cell(cols.correct))
		if err != nil {
			return quiz.Topic{}, fmt.Errorf("sheet %q row %d: %w", sheet, n+2, err)
		}
		q := quiz.Question{
			Prompt:       prompt,
			Options:      opts,
			CorrectIndex: idx,
			Explanation:  cell(cols.explanation),
		}
		if err := q.Validate(); err != nil {
			return quiz.Topic{}, fmt.Errorf("sheet %q row %d: %w", sheet, n+2, err)
		}
		t.Questions = append(t.Questions, q)
	}
	if len(t.Questions) == 0 {
		return quiz.Topic{}, fmt.Errorf("sheet %q: %w", sheet, quiz.ErrEmptyTopic)
	}
	return t, nil
}

// parseCorrect accepts "B", "b" or "2" for the second option.
func parseCorrect(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		c := s[0] | 0x20
		if c >= 'a' && c <= 'z' {
			return int(c - 'a'), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid correct answer %q", s)
	}
	return n - 1, nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

// WriteYAMLBank encodes topics in the layout ReadYAMLBank accepts.
func WriteYAMLBank(w io.Writer, topics []quiz.Topic) error {
	for _, t := range topics {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(puzzleFile{Levels: topics}); err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	return enc.Close()
}
