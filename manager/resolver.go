package manager

import (
	"context"
	"log"

	"screentime/classifier"
	"screentime/entity"
)

// Resolver maps app names to categories: static table first, classifier second.
// A Resolver belongs to one run; its cache is never shared.
type Resolver struct {
	table      map[string]entity.Category
	classifier classifier.Classifier
	logger     *log.Logger
	cache      map[string]entity.CategoryAssignment
	calls      int
}

func NewResolver(table map[string]entity.Category, c classifier.Classifier, logger *log.Logger) *Resolver {
	if c == nil {
		c = classifier.Disabled{}
	}
	return &Resolver{
		table:      table,
		classifier: c,
		logger:     logger,
		cache:      make(map[string]entity.CategoryAssignment),
	}
}

// Resolve never fails: classifier errors fall back to Other.
func (r *Resolver) Resolve(ctx context.Context, app string) entity.Category {
	return r.Assign(ctx, app).Category
}

func (r *Resolver) Assign(ctx context.Context, app string) entity.CategoryAssignment {
	if a, ok := r.cache[app]; ok {
		return a
	}

	a := entity.CategoryAssignment{App: app}
	if c, ok := r.table[app]; ok {
		a.Category = c
		a.Static = true
	} else {
		a.Category = r.classify(ctx, app)
	}
	r.cache[app] = a
	return a
}

func (r *Resolver) classify(ctx context.Context, app string) entity.Category {
	r.calls++
	preds, err := r.classifier.Classify(ctx, app, entity.Labels())
	if err != nil {
		r.logf("classification of %s failed, using %s: %v", app, entity.Other, err)
		return entity.Other
	}
	c, ok := bestCategory(preds)
	if !ok {
		r.logf("classifier returned no known label for %s, using %s", app, entity.Other)
		return entity.Other
	}
	return c
}

// bestCategory picks the highest score; equal scores go to the label that comes
// first in the fixed list. Unknown labels are skipped.
func bestCategory(preds []classifier.Prediction) (entity.Category, bool) {
	best, found := entity.Other, false
	var bestScore float64
	for _, p := range preds {
		c, ok := entity.ParseCategory(p.Label)
		if !ok {
			continue
		}
		if !found || p.Score > bestScore || (p.Score == bestScore && c < best) {
			best, bestScore, found = c, p.Score, true
		}
	}
	return best, found
}

// ClassifierCalls is the number of classifier invocations made so far.
func (r *Resolver) ClassifierCalls() int {
	return r.calls
}

// Assignments returns every resolved app.
func (r *Resolver) Assignments() []entity.CategoryAssignment {
	out := make([]entity.CategoryAssignment, 0, len(r.cache))
	for _, a := range r.cache {
		out = append(out, a)
	}
	return out
}

func (r *Resolver) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
