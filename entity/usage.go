package entity

import "time"

// ProcessRecord is one process as seen by the source.
type ProcessRecord struct {
	Name      string
	StartTime time.Time
}

// UsageEntry is a process record turned into an estimated duration.
type UsageEntry struct {
	App           string
	Category      Category
	StartTime     time.Time
	DurationHours float64
}

// ObservationWindow is fixed once per run so that every estimate uses the same now.
// Days are exact 24-hour spans, independent of DST changes.
type ObservationWindow struct {
	Now    time.Time
	Cutoff time.Time
	Days   int
}

func NewObservationWindow(now time.Time, days int) ObservationWindow {
	return ObservationWindow{
		Now:    now,
		Cutoff: now.Add(-time.Duration(days) * 24 * time.Hour),
		Days:   days,
	}
}

// Contains reports whether start falls in [Cutoff, Now].
func (w ObservationWindow) Contains(start time.Time) bool {
	return !start.Before(w.Cutoff) && !start.After(w.Now)
}

// Estimate treats the process as running until Now. Terminated processes are
// therefore overstated; the source exposes no end time.
func Estimate(rec ProcessRecord, w ObservationWindow) UsageEntry {
	return UsageEntry{
		App:           rec.Name,
		Category:      Other,
		StartTime:     rec.StartTime,
		DurationHours: w.Now.Sub(rec.StartTime).Hours(),
	}
}
