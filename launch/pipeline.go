package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"screentime/classifier"
	"screentime/entity"
	"screentime/manager"
	"screentime/query"
)

// Pipeline runs Source -> Filter -> Resolver + Estimator -> Aggregator once per Run.
// The lookup tables are fixed at construction; the resolver cache and the
// usage database are created per Run.
type Pipeline struct {
	Source     Source
	Ignore     *manager.IgnoreList
	Categories map[string]entity.Category
	Classifier classifier.Classifier
	WindowDays int
	Logger     *log.Logger
	Now        func() time.Time
}

func (p *Pipeline) logger() *log.Logger {
	if p.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return p.Logger
}

// Run returns entity.ErrNoData when nothing survives filtering and wraps
// entity.ErrSourceUnavailable when the process list cannot be read.
func (p *Pipeline) Run(ctx context.Context) (entity.Report, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	window := entity.NewObservationWindow(now(), p.WindowDays)
	logger := p.logger()

	records, err := p.Source.ListRecentProcesses(ctx)
	if err != nil {
		if !errors.Is(err, entity.ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %v", entity.ErrSourceUnavailable, err)
		}
		return entity.Report{}, err
	}

	survivors := p.filter(records, window)
	if len(survivors) == 0 {
		return entity.Report{}, entity.ErrNoData
	}

	resolver := manager.NewResolver(p.Categories, p.Classifier, logger)
	apps := uniqueApps(survivors)
	for i, app := range apps {
		c := resolver.Resolve(ctx, app)
		logger.Printf("Classificando aplicativos %d/%d: %s -> %s", i+1, len(apps), app, c)
	}
	logger.Printf("%d apps resolved, %d classifier calls", len(resolver.Assignments()), resolver.ClassifierCalls())
	// an interrupted classification turns into Other; do not report it
	if err := ctx.Err(); err != nil {
		return entity.Report{}, fmt.Errorf("Run: %w", err)
	}

	entries := make([]entity.UsageEntry, 0, len(survivors))
	for _, rec := range survivors {
		entry := entity.Estimate(rec, window)
		entry.Category = resolver.Resolve(ctx, rec.Name)
		entries = append(entries, entry)
	}

	if err := ctx.Err(); err != nil {
		return entity.Report{}, fmt.Errorf("Run: %w", err)
	}
	db, err := query.OpenRunDatabase()
	if err != nil {
		return entity.Report{}, fmt.Errorf("Run: %w", err)
	}
	defer db.Close()

	if err := db.SaveUsageBatch(entries); err != nil {
		return entity.Report{}, fmt.Errorf("Run: %w", err)
	}
	return db.Aggregate(window)
}

// filter drops ignored names first, then anything outside the window.
func (p *Pipeline) filter(records []entity.ProcessRecord, window entity.ObservationWindow) []entity.ProcessRecord {
	out := make([]entity.ProcessRecord, 0, len(records))
	for _, rec := range records {
		if p.Ignore.IsIgnored(rec.Name) {
			continue
		}
		if rec.StartTime.IsZero() || !window.Contains(rec.StartTime) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// uniqueApps keeps first-seen order.
func uniqueApps(records []entity.ProcessRecord) []string {
	seen := make(map[string]struct{}, len(records))
	apps := make([]string, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.Name]; ok {
			continue
		}
		seen[rec.Name] = struct{}{}
		apps = append(apps, rec.Name)
	}
	return apps
}
