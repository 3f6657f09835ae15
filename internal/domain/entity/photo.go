package entity

import "time"

// Photo is a binary attachment belonging to an item. Position preserves upload
// order; position 0 is the featured photo. StorageKey locates the object in
// the configured media store.
type Photo struct {
	ID         string
	ItemID     string
	StorageKey string
	URL        string
	MIMEType   string
	Position   int
	CreatedAt  time.Time
}
