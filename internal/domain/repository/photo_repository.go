package repository

import "github.com/vtcwoerden/materiaal-api/internal/domain/entity"

// PhotoRepository is the persistence port for item photo attachments.
// Positions are assigned by Create in upload order; position 0 is featured.
type PhotoRepository interface {
	Create(photo *entity.Photo) error
	ListByItem(itemID string) ([]entity.Photo, error)
	DeleteByItem(itemID string) error
}
