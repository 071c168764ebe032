package entity

import (
	"errors"
	"math"
)

var (
	// ErrSourceUnavailable aborts the run: the process list could not be read at all.
	ErrSourceUnavailable = errors.New("process source unavailable")
	// ErrRecordParse marks a single record without a usable creation time.
	ErrRecordParse = errors.New("unusable process record")
	// ErrClassifierUnavailable marks a failed classification; the app falls back to Other.
	ErrClassifierUnavailable = errors.New("classifier unavailable")
	// ErrNoData means nothing survived filtering. It is reported, not failed on.
	ErrNoData = errors.New("no usage data")
)

type CategoryTotal struct {
	Category Category `db:"category"`
	Hours    float64  `db:"hours"`
}

type AppTotal struct {
	Category Category `db:"category"`
	App      string   `db:"app"`
	Hours    float64  `db:"hours"`
}

// Report holds the aggregates of one run.
type Report struct {
	Window               ObservationWindow
	Entries              int
	TotalScreenTimeHours float64
	// CategoryTotals is sorted by hours descending, then by label order.
	CategoryTotals []CategoryTotal
	AppBreakdown   []AppTotal
}

// Hours returns the total for c, zero when the category is absent.
func (r Report) Hours(c Category) float64 {
	for _, t := range r.CategoryTotals {
		if t.Category == c {
			return t.Hours
		}
	}
	return 0
}

// BooksRead converts Games and Browser hours into books of bookHours each,
// rounded to two decimals.
func (r Report) BooksRead(bookHours float64) float64 {
	if bookHours <= 0 {
		return 0
	}
	lost := r.Hours(Games) + r.Hours(Browser)
	return Round2(lost / bookHours)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
