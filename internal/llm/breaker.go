package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
)

// BreakerConfig configures the circuit breaker decorator.
type BreakerConfig struct {
	// Failures is the number of consecutive transient failures that opens
	// the circuit. Zero disables the breaker.
	Failures int

	// Cooldown is how long the circuit stays open before a trial call.
	Cooldown time.Duration
}

// DefaultBreakerConfig opens after three straight failures for a minute.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{Failures: 3, Cooldown: time.Minute}
}

// BreakerProvider stops calling a provider that keeps failing.
type BreakerProvider struct {
	inner  Provider
	cb     circuitbreaker.CircuitBreaker[*Response]
	logger *slog.Logger
}

// WithBreaker wraps p with a circuit breaker. A nil logger discards state
// change logs.
func WithBreaker(p Provider, cfg BreakerConfig, logger *slog.Logger) Provider {
	if cfg.Failures <= 0 {
		return p
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	bp := &BreakerProvider{inner: p, logger: logger}
	threshold := cfg.Failures
	bp.cb = circuitbreaker.New[*Response](circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    cfg.Cooldown,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= threshold
		},
		OnStateChange: func(from, to circuitbreaker.State) {
			logger.Warn("llm circuit breaker state change",
				"model", p.ModelID(),
				"from", from.String(),
				"to", to.String())
		},
	})
	return bp
}

func (b *BreakerProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		called   bool
		innerErr error
	)
	resp, err := b.cb.Execute(ctx, func(ctx context.Context) (*Response, error) {
		called = true
		resp, err := b.inner.Generate(ctx, req)
		if err != nil && !countsAsOutage(err) {
			// Rejected requests and bad output say nothing about provider
			// health; report them without tripping the breaker.
			innerErr = err
			return nil, nil
		}
		return resp, err
	})
	if innerErr != nil {
		return nil, innerErr
	}
	if err != nil && !called {
		return nil, errors.Join(ErrCircuitOpen, err)
	}
	return resp, err
}

func (b *BreakerProvider) ModelID() string {
	return b.inner.ModelID()
}

func countsAsOutage(err error) bool {
	var rl *ErrRateLimit
	var unavail *ErrProviderUnavailable
	return errors.As(err, &rl) || errors.As(err, &unavail) ||
		errors.Is(err, context.DeadlineExceeded)
}
