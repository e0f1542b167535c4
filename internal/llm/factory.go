package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/javalearn/internal/store"
)

// NewProvider builds the configured provider wrapped, outermost first, in
// breaker, retry and logging decorators, so every attempt is recorded and
// the breaker sees the outcome after retries.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = newAnthropic(cfg)
	case ProviderOpenAI:
		base, err = newOpenAI(cfg)
	case ProviderOpenRouter:
		base, err = newOpenRouter(cfg)
	case ProviderGemini:
		base, err = newGemini(ctx, cfg)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, cfg.Provider, events, logger)
	p = WithRetry(p, cfg.Retry, logger)
	p = WithBreaker(p, cfg.Breaker, logger)
	return p, nil
}
