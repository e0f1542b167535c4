// Package content loads the static learning material: puzzle levels,
// encouragement messages, code walks, course sections and help answers. The built-in
// material is embedded; extra question banks can be read from YAML or xlsx.
package content

import (
	"embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/javalearn/internal/codewalk"
	"github.com/abhisek/javalearn/internal/quiz"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ErrUnknownLevel is returned when a level key is not in the library.
var ErrUnknownLevel = errors.New("unknown level")

// Example is a titled code sample inside a course section.
type Example struct {
	Title       string `yaml:"title" validate:"required"`
	Code        string `yaml:"code" validate:"required"`
	Explanation string `yaml:"explanation"`
}

// Section is one lesson of the course.
type Section struct {
	Title     string    `yaml:"title" validate:"required"`
	Subtitle  string    `yaml:"subtitle"`
	Body      string    `yaml:"body" validate:"required"`
	KeyPoints []string  `yaml:"key_points"`
	Examples  []Example `yaml:"examples" validate:"dive"`
}

// FAQ is one entry of the help screen.
type FAQ struct {
	Question string `yaml:"question" validate:"required"`
	Answer   string `yaml:"answer" validate:"required"`
}

// Library is the full set of learning material.
type Library struct {
	Levels        []quiz.Topic
	Encouragement quiz.Pool
	Programs      []codewalk.Program
	Course        []Section
	FAQs          []FAQ

	builtin map[string]bool
}

type puzzleFile struct {
	Levels []quiz.Topic `yaml:"levels" validate:"min=1,dive"`
}

type codewalkFile struct {
	Programs []codewalk.Program `yaml:"programs" validate:"min=1,dive"`
}

type courseFile struct {
	Sections []Section `yaml:"sections" validate:"min=1,dive"`
}

type helpFile struct {
	FAQs []FAQ `yaml:"faqs" validate:"min=1,dive"`
}

// Load decodes and validates the embedded material.
func Load() (*Library, error) {
	var (
		puzzles  puzzleFile
		pool     quiz.Pool
		programs codewalkFile
		course   courseFile
		help     helpFile
	)

	files := []struct {
		name string
		dst  any
	}{
		{"data/puzzles.yaml", &puzzles},
		{"data/encouragement.yaml", &pool},
		{"data/codewalk.yaml", &programs},
		{"data/course.yaml", &course},
		{"data/help.yaml", &help},
	}
	for _, f := range files {
		raw, err := dataFS.ReadFile(f.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := decode(f.name, raw, f.dst); err != nil {
			return nil, err
		}
	}

	for _, t := range puzzles.Levels {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("data/puzzles.yaml: %w", err)
		}
	}
	for _, p := range programs.Programs {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("data/codewalk.yaml: %w", err)
		}
	}

	builtin := make(map[string]bool, len(puzzles.Levels))
	for _, t := range puzzles.Levels {
		builtin[t.Key] = true
	}
	return &Library{
		builtin:       builtin,
		Levels:        puzzles.Levels,
		Encouragement: pool,
		Programs:      programs.Programs,
		Course:        course.Sections,
		FAQs:          help.FAQs,
	}, nil
}

// decode unmarshals YAML into dst and runs struct validation on it.
func decode(source string, raw []byte, dst any) error {
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parse %s: %w", source, err)
	}
	if err := validateStruct(source, dst); err != nil {
		return err
	}
	return nil
}

// Level returns the topic with the given key.
func (l *Library) Level(key string) (quiz.Topic, error) {
	for _, t := range l.Levels {
		if t.Key == key {
			return t, nil
		}
	}
	return quiz.Topic{}, fmt.Errorf("%w: %q", ErrUnknownLevel, key)
}

// NextLevel returns the level after key, wrapping to the first.
func (l *Library) NextLevel(key string) quiz.Topic {
	i := slices.IndexFunc(l.Levels, func(t quiz.Topic) bool { return t.Key == key })
	return l.Levels[(i+1)%len(l.Levels)]
}

// LevelKeys lists the level keys in order.
func (l *Library) LevelKeys() []string {
	keys := make([]string, len(l.Levels))
	for i, t := range l.Levels {
		keys[i] = t.Key
	}
	return keys
}

// AddTopics appends extra topics after validating them. A topic whose key
// already exists replaces the existing one.
func (l *Library) AddTopics(topics ...quiz.Topic) error {
	for _, t := range topics {
		if err := t.Validate(); err != nil {
			return err
		}
		delete(l.builtin, t.Key)
		if i := slices.IndexFunc(l.Levels, func(x quiz.Topic) bool { return x.Key == t.Key }); i >= 0 {
			l.Levels[i] = t
			continue
		}
		l.Levels = append(l.Levels, t)
	}
	return nil
}

// IsBuiltin reports whether key names an embedded level that no bank has
// replaced.
func (l *Library) IsBuiltin(key string) bool {
	return l.builtin[key]
}

// Feedback returns a random picker over the encouragement pool.
func (l *Library) Feedback() quiz.FeedbackPicker {
	return quiz.NewRandomFeedback(l.Encouragement, nil)
}
