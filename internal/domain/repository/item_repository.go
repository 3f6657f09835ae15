package repository

import "github.com/vtcwoerden/materiaal-api/internal/domain/entity"

// ItemFilter narrows List. Zero value means "everything, ordered by name".
// Taxonomy filters match term slugs.
type ItemFilter struct {
	Search       string
	Owner        string
	Condition    string
	Location     string
	MigratedOnly bool
	Limit        int // 0 = no limit
	Offset       int
}

// ItemRepository is the persistence port for inventory items. Implementations
// return items with their terms and photos loaded.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByName(name string) (*entity.Item, error)
	Update(item *entity.Item) error
	Delete(id string) error
	List(filter ItemFilter) ([]*entity.Item, error)
	// ReplaceTerms rebinds the item's tags in one taxonomy to exactly termIDs.
	ReplaceTerms(itemID string, taxonomy entity.Taxonomy, termIDs []string) error
}
