package provider

import (
	"context"
	"log/slog"

	"github.com/math-master/backend/internal/domain/mocktest"
	"github.com/math-master/backend/internal/notify"
)

// Chain is the acquisition policy: prefer the AI provider, fall back to
// the sample bank on any failure. Because the fallback cannot fail, a
// Chain always terminates with a usable test; provider outages surface
// only as an informational toast.
type Chain struct {
	primary  TestProvider
	fallback *SampleBank
	notifier notify.Notifier
	logger   *slog.Logger
}

var _ TestProvider = (*Chain)(nil)

func NewChain(primary TestProvider, fallback *SampleBank, notifier notify.Notifier, logger *slog.Logger) *Chain {
	return &Chain{
		primary:  primary,
		fallback: fallback,
		notifier: notifier,
		logger:   logger,
	}
}

func (c *Chain) GenerateTest(ctx context.Context, params Params) (*mocktest.Test, error) {
	if c.primary != nil {
		test, err := c.primary.GenerateTest(ctx, params)
		if err == nil {
			return test, nil
		}
		c.logger.Warn("AI test provider failed, falling back to sample bank",
			"error", err,
			"question_count", params.QuestionCount,
			"difficulty", params.Difficulty,
		)
		if c.notifier != nil {
			c.notifier.Notify("AI is unavailable - using a sample test instead.", notify.LevelInfo)
		}
	}
	return c.fallback.GenerateTest(ctx, params)
}
