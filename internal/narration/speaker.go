// Package narration reads lesson text aloud through a platform speech
// command such as say or espeak.
package narration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"sync"
)

// ErrUnavailable is returned when no speech command is configured or found.
var ErrUnavailable = errors.New("narration unavailable")

// Speaker reads text aloud.
type Speaker interface {
	// Speak blocks until the text has been read, ctx is cancelled, or Stop
	// is called. Starting a new utterance stops the previous one.
	Speak(ctx context.Context, text string) error

	// Stop interrupts the current utterance, if any.
	Stop()

	// Available reports whether Speak can produce audio.
	Available() bool
}

// knownCommands are looked up on PATH in order.
var knownCommands = []string{"say", "espeak-ng", "espeak", "spd-say"}

// LookPath is swapped in tests.
var LookPath = exec.LookPath

// Detect returns the configured command, or the first known command on PATH.
func Detect(configured string) (string, bool) {
	if configured != "" {
		if p, err := LookPath(configured); err == nil {
			return p, true
		}
		return "", false
	}
	for _, c := range knownCommands {
		if p, err := LookPath(c); err == nil {
			return p, true
		}
	}
	return "", false
}

// New returns a CommandSpeaker when a speech command is available and Nop
// otherwise.
func New(configured string, rate int, logger *slog.Logger) Speaker {
	path, ok := Detect(configured)
	if !ok {
		return Nop{}
	}
	return &CommandSpeaker{Path: path, Rate: rate, Logger: logger}
}

// CommandSpeaker runs an external program with the text as its argument.
type CommandSpeaker struct {
	Path   string
	Rate   int // words per minute; 0 keeps the program default
	Logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

func (s *CommandSpeaker) Available() bool { return true }

func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		cancel()
		s.cancel = nil
		s.mu.Unlock()
	}()

	cmd := exec.CommandContext(ctx, s.Path, Args(s.Path, s.Rate, text)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.Logger != nil {
			s.Logger.Warn("narration failed", "command", s.Path, "error", err)
		}
		return fmt.Errorf("run %s: %w", s.Path, err)
	}
	return nil
}

func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Args builds the argument list for the known speech programs.
func Args(path string, rate int, text string) []string {
	var args []string
	if rate > 0 {
		r := strconv.Itoa(rate)
		switch base(path) {
		case "say":
			args = append(args, "-r", r)
		case "espeak", "espeak-ng":
			args = append(args, "-s", r)
		}
	}
	if base(path) == "spd-say" {
		args = append(args, "--wait")
	}
	return append(args, text)
}

func base(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}

// Nop is used when no speech program exists.
type Nop struct{}

func (Nop) Speak(context.Context, string) error { return ErrUnavailable }
func (Nop) Stop()                               {}
func (Nop) Available() bool                     { return false }
