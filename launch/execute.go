package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"screentime/classifier"
	"screentime/config"
	"screentime/entity"
	"screentime/manager"
	"screentime/report"
)

// NewPipeline wires the configured source, tables and classifier.
func NewPipeline(cfg config.Config, logger *log.Logger) (*Pipeline, error) {
	table, err := cfg.CategoryTable()
	if err != nil {
		return nil, fmt.Errorf("NewPipeline: %w", err)
	}

	var source Source
	switch cfg.General.Source {
	case config.SourceWMI:
		source, err = NewWMISource(logger)
		if err != nil {
			return nil, err
		}
	default:
		source = NewProcessSource(logger)
	}

	var c classifier.Classifier = classifier.Disabled{}
	if cfg.Classifier.Provider == config.ProviderHuggingFace {
		c = classifier.NewHuggingFace(cfg.Classifier.Endpoint, cfg.Classifier.Model,
			cfg.Classifier.Token(), cfg.Classifier.Timeout())
	}

	return &Pipeline{
		Source:     source,
		Ignore:     manager.NewIgnoreList(cfg.Filter.Ignore),
		Categories: table,
		Classifier: c,
		WindowDays: cfg.General.WindowDays,
		Logger:     logger,
	}, nil
}

// Execute runs p once, writes the report or a message to w and returns the
// process exit status.
func Execute(ctx context.Context, p *Pipeline, w io.Writer, opts report.Options) int {
	r, err := p.Run(ctx)
	switch {
	case err == nil:
		if err := report.Write(w, r, opts); err != nil {
			return 1
		}
		return 0
	case errors.Is(err, entity.ErrNoData):
		report.WriteNoData(w)
		return 0
	case errors.Is(err, entity.ErrSourceUnavailable):
		report.WriteSourceUnavailable(w, err)
		return 1
	default:
		report.WriteFailure(w, err)
		return 1
	}
}
