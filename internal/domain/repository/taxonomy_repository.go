package repository

import "github.com/vtcwoerden/materiaal-api/internal/domain/entity"

// TaxonomyRepository is the persistence port for the tag registries.
type TaxonomyRepository interface {
	// EnsureTerm returns the term with the given display name, creating it
	// first if the taxonomy does not contain it yet.
	EnsureTerm(taxonomy entity.Taxonomy, name string) (*entity.Term, error)
	GetBySlug(taxonomy entity.Taxonomy, slug string) (*entity.Term, error)
	List(taxonomy entity.Taxonomy) ([]*entity.Term, error)
	ListAll() ([]*entity.Term, error)
	// CountItems counts items referencing the term, across every taxonomy use.
	CountItems(termID string) (int, error)
	Delete(termID string) error
}
