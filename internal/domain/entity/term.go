package entity

import "time"

// Taxonomy identifies one of the open-ended tag sets items can be labeled with.
type Taxonomy string

const (
	TaxonomyOwner     Taxonomy = "owner"
	TaxonomyCondition Taxonomy = "condition"
	TaxonomyLocation  Taxonomy = "location"
)

// Taxonomies lists every registered taxonomy kind.
var Taxonomies = []Taxonomy{TaxonomyOwner, TaxonomyCondition, TaxonomyLocation}

// Valid reports whether t is a registered taxonomy kind.
func (t Taxonomy) Valid() bool {
	switch t {
	case TaxonomyOwner, TaxonomyCondition, TaxonomyLocation:
		return true
	}
	return false
}

// Term is a tag value inside a taxonomy. Terms are created on demand when an
// item is tagged with an unknown value and deleted by cleanup only once no
// item references them.
type Term struct {
	ID        string
	Taxonomy  Taxonomy
	Slug      string
	Name      string
	CreatedAt time.Time
}
