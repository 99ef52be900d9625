package provider

import (
	"context"
	"fmt"

	"github.com/math-master/backend/internal/domain/mocktest"
)

// Params describe the test a student asked for.
type Params struct {
	QuestionCount int
	Difficulty    mocktest.Difficulty
	Topics        []mocktest.Topic
	StudentLevel  string
}

func (p Params) Validate() error {
	if p.QuestionCount <= 0 {
		return fmt.Errorf("question count must be positive, got %d", p.QuestionCount)
	}
	if !p.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", p.Difficulty)
	}
	return nil
}

// TestProvider supplies test content. Implementations may call the remote
// AI service or synthesize from the local sample bank (for fallback and
// tests).
type TestProvider interface {
	GenerateTest(ctx context.Context, params Params) (*mocktest.Test, error)
}

// ProviderError is returned when the remote test provider fails, so the
// caller can distinguish "provider produced a bad test" from "provider
// was unreachable". Both recover through the sample bank.
type ProviderError struct {
	Reason  string
	Wrapped error
}

func (e *ProviderError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("test provider failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("test provider failed: %s", e.Reason)
}

func (e *ProviderError) Unwrap() error {
	return e.Wrapped
}
