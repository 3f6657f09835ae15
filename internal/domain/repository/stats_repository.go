package repository

import "github.com/vtcwoerden/materiaal-api/internal/domain/entity"

// TermBreakdown is one slice of a dashboard chart: item count per term.
type TermBreakdown struct {
	Name  string
	Count int
}

// StatsRepository provides the read-only aggregates behind the admin
// dashboard.
type StatsRepository interface {
	TotalItems() (int, error)
	TotalTerms(taxonomy entity.Taxonomy) (int, error)
	// LowStockCount counts items with quantity at or below the threshold.
	LowStockCount(threshold int) (int, error)
	Breakdown(taxonomy entity.Taxonomy) ([]TermBreakdown, error)
}
