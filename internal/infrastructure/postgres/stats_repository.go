package postgres

import (
	"context"
	"fmt"

	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo computes the dashboard aggregates on PostgreSQL.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository builds the stats adapter. Pass pool or tx (Querier).
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// TotalItems counts every item.
func (r *StatsRepo) TotalItems() (int, error) {
	return r.count(`SELECT COUNT(*) FROM items`)
}

// TotalTerms counts the terms of one taxonomy.
func (r *StatsRepo) TotalTerms(taxonomy entity.Taxonomy) (int, error) {
	return r.count(`SELECT COUNT(*) FROM terms WHERE taxonomy = $1`, string(taxonomy))
}

// LowStockCount counts items at or below the threshold.
func (r *StatsRepo) LowStockCount(threshold int) (int, error) {
	return r.count(`SELECT COUNT(*) FROM items WHERE quantity <= $1`, threshold)
}

func (r *StatsRepo) count(query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Breakdown returns per-term item counts for one taxonomy, largest first.
func (r *StatsRepo) Breakdown(taxonomy entity.Taxonomy) ([]repository.TermBreakdown, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT t.name, COUNT(it.item_id)
		FROM terms t
		LEFT JOIN item_terms it ON it.term_id = t.id
		WHERE t.taxonomy = $1
		GROUP BY t.name
		ORDER BY COUNT(it.item_id) DESC, t.name ASC`, string(taxonomy))
	if err != nil {
		return nil, fmt.Errorf("breakdown: %w", err)
	}
	defer rows.Close()
	var out []repository.TermBreakdown
	for rows.Next() {
		var b repository.TermBreakdown
		if err := rows.Scan(&b.Name, &b.Count); err != nil {
			return nil, fmt.Errorf("scan breakdown: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("breakdown: %w", err)
	}
	return out, nil
}
