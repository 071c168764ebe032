// Package classifier wraps the zero-shot text classification service used to
// label process names that the static category table does not know.
package classifier

import (
	"context"
	"fmt"

	"screentime/entity"
)

// Prediction is one candidate label with its score.
type Prediction struct {
	Label string
	Score float64
}

// Classifier ranks candidate labels for a piece of text, highest score first.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]Prediction, error)
}

// Func adapts a plain function to the Classifier interface.
type Func func(ctx context.Context, text string, labels []string) ([]Prediction, error)

func (f Func) Classify(ctx context.Context, text string, labels []string) ([]Prediction, error) {
	return f(ctx, text, labels)
}

// Disabled always fails, so every unknown app ends up in Other.
type Disabled struct{}

func (Disabled) Classify(context.Context, string, []string) ([]Prediction, error) {
	return nil, fmt.Errorf("Classify: classifier disabled: %w", entity.ErrClassifierUnavailable)
}
