package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vtcwoerden/materiaal-api/internal/domain"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
)

var _ repository.TaxonomyRepository = (*TaxonomyRepo)(nil)

const termColumns = "id, taxonomy, slug, name, created_at"

// TaxonomyRepo implements TaxonomyRepository on PostgreSQL (usable with pool or tx).
type TaxonomyRepo struct {
	q Querier
}

// NewTaxonomyRepository builds the persistence adapter for terms. Pass pool or tx (Querier).
func NewTaxonomyRepository(q Querier) *TaxonomyRepo {
	return &TaxonomyRepo{q: q}
}

// EnsureTerm returns the term with the given display name, creating it first
// when the taxonomy does not contain it yet. Terms are keyed by slug, so
// "Loods West" and "loods west" resolve to the same term.
func (r *TaxonomyRepo) EnsureTerm(taxonomy entity.Taxonomy, name string) (*entity.Term, error) {
	slug := Slugify(name)
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}
	term, err := r.GetBySlug(taxonomy, slug)
	if err != nil {
		return nil, err
	}
	if term != nil {
		return term, nil
	}
	_, err = r.q.Exec(context.Background(), `
		INSERT INTO terms (id, taxonomy, slug, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (taxonomy, slug) DO NOTHING`,
		uuid.New().String(), string(taxonomy), slug, name, time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert term: %w", err)
	}
	// Re-read so a concurrent insert still yields the winning row.
	term, err = r.GetBySlug(taxonomy, slug)
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, fmt.Errorf("term %s/%s vanished after insert", taxonomy, slug)
	}
	return term, nil
}

// GetBySlug returns the term with the given slug, or nil.
func (r *TaxonomyRepo) GetBySlug(taxonomy entity.Taxonomy, slug string) (*entity.Term, error) {
	query := fmt.Sprintf("SELECT %s FROM terms WHERE taxonomy = $1 AND slug = $2", termColumns)
	var term entity.Term
	err := r.q.QueryRow(context.Background(), query, string(taxonomy), slug).Scan(
		&term.ID, &term.Taxonomy, &term.Slug, &term.Name, &term.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get term: %w", err)
	}
	return &term, nil
}

// List returns the terms of one taxonomy ordered by name.
func (r *TaxonomyRepo) List(taxonomy entity.Taxonomy) ([]*entity.Term, error) {
	query := fmt.Sprintf("SELECT %s FROM terms WHERE taxonomy = $1 ORDER BY name ASC", termColumns)
	return r.queryTerms(query, string(taxonomy))
}

// ListAll returns every term across all taxonomies.
func (r *TaxonomyRepo) ListAll() ([]*entity.Term, error) {
	query := fmt.Sprintf("SELECT %s FROM terms ORDER BY taxonomy ASC, name ASC", termColumns)
	return r.queryTerms(query)
}

func (r *TaxonomyRepo) queryTerms(query string, args ...any) ([]*entity.Term, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	defer rows.Close()
	var terms []*entity.Term
	for rows.Next() {
		var term entity.Term
		if err := rows.Scan(&term.ID, &term.Taxonomy, &term.Slug, &term.Name, &term.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		terms = append(terms, &term)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// CountItems counts items referencing the term.
func (r *TaxonomyRepo) CountItems(termID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM item_terms WHERE term_id = $1`, termID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count term items: %w", err)
	}
	return count, nil
}

// Delete removes a term. Item bindings cascade.
func (r *TaxonomyRepo) Delete(termID string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM terms WHERE id = $1`, termID)
	if err != nil {
		return fmt.Errorf("delete term: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Slugify lowercases a display name and collapses everything that is not a
// letter or digit into single dashes.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
