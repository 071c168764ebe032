package query

import (
	"fmt"
	"time"

	"screentime/entity"
)

type usageSpan struct {
	Entries  int   `db:"entries"`
	Earliest int64 `db:"earliest"`
}

// GetCategoryTotals sums durations per category, highest first. Equal totals
// keep label order. Categories without entries are absent.
func (db *Database) GetCategoryTotals() ([]entity.CategoryTotal, error) {
	rows := []entity.CategoryTotal{}
	q := `
	SELECT category,
	       SUM(duration_hours) AS hours
	FROM usage
	GROUP BY category
	ORDER BY hours DESC, category ASC`
	if err := db.Select(&rows, q); err != nil {
		return nil, fmt.Errorf("GetCategoryTotals: %w", err)
	}
	return rows, nil
}

// GetAppBreakdown sums durations per (category, app), grouped in the same
// category order as GetCategoryTotals.
func (db *Database) GetAppBreakdown() ([]entity.AppTotal, error) {
	rows := []entity.AppTotal{}
	q := `
	WITH totals AS (
	  SELECT category, SUM(duration_hours) AS total
	  FROM usage
	  GROUP BY category
	)
	SELECT u.category AS category,
	       u.app AS app,
	       SUM(u.duration_hours) AS hours
	FROM usage u
	JOIN totals t ON t.category = u.category
	GROUP BY u.category, u.app
	ORDER BY MAX(t.total) DESC, u.category ASC, hours DESC, u.app ASC`
	if err := db.Select(&rows, q); err != nil {
		return nil, fmt.Errorf("GetAppBreakdown: %w", err)
	}
	return rows, nil
}

func (db *Database) getSpan() (usageSpan, error) {
	var span usageSpan
	err := db.Get(&span, `SELECT COUNT(*) AS entries, COALESCE(MIN(start_time), 0) AS earliest FROM usage`)
	if err != nil {
		return span, fmt.Errorf("getSpan: %w", err)
	}
	return span, nil
}

// Aggregate builds the report for the stored entries. Total screen time is the
// span from the earliest start to now, not a sum of durations. With no stored
// entries it returns entity.ErrNoData.
func (db *Database) Aggregate(window entity.ObservationWindow) (entity.Report, error) {
	span, err := db.getSpan()
	if err != nil {
		return entity.Report{}, err
	}
	if span.Entries == 0 {
		return entity.Report{}, entity.ErrNoData
	}

	totals, err := db.GetCategoryTotals()
	if err != nil {
		return entity.Report{}, err
	}
	breakdown, err := db.GetAppBreakdown()
	if err != nil {
		return entity.Report{}, err
	}

	earliest := time.Unix(0, span.Earliest)
	return entity.Report{
		Window:               window,
		Entries:              span.Entries,
		TotalScreenTimeHours: window.Now.Sub(earliest).Hours(),
		CategoryTotals:       totals,
		AppBreakdown:         breakdown,
	}, nil
}
