package entity

import "time"

// Item is a piece of club material tracked in the inventory.
// QRCodeURL is derived from Name and the configured base URL; it is recomputed
// on every rename and never edited directly. Quantity is always >= 1.
type Item struct {
	ID          string
	Name        string
	Description string
	Quantity    int
	Comments    string
	QRCodeURL   string
	Owner       []Term // zero or one term in practice, stored as a set
	Condition   []Term
	Location    []Term
	Photos      []Photo
	Migrated    bool // created by the legacy import, in scope for rollback
	LegacyID    int  // numeric id from the legacy JSON export, 0 for manual items
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FeaturedPhoto returns the primary photo, the first one attached. Nil if the
// item has no photos.
func (i *Item) FeaturedPhoto() *Photo {
	if len(i.Photos) == 0 {
		return nil
	}
	return &i.Photos[0]
}

// TermNames returns the display names of the given term set.
func TermNames(terms []Term) []string {
	names := make([]string, 0, len(terms))
	for _, t := range terms {
		names = append(names, t.Name)
	}
	return names
}
