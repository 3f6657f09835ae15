package postgres

import (
	"context"
	"fmt"

	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
)

var _ repository.PhotoRepository = (*PhotoRepo)(nil)

// PhotoRepo implements PhotoRepository on PostgreSQL (usable with pool or tx).
type PhotoRepo struct {
	q Querier
}

// NewPhotoRepository builds the persistence adapter for photos. Pass pool or tx (Querier).
func NewPhotoRepository(q Querier) *PhotoRepo {
	return &PhotoRepo{q: q}
}

// Create appends a photo to the item. The position is assigned here, after
// the item's current highest, so upload order is preserved.
func (r *PhotoRepo) Create(photo *entity.Photo) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO photos (id, item_id, storage_key, url, mime_type, position, created_at)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM photos WHERE item_id = $2), $6)
		RETURNING position`,
		photo.ID, photo.ItemID, photo.StorageKey, photo.URL, photo.MIMEType, photo.CreatedAt,
	).Scan(&photo.Position)
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

// ListByItem returns the item's photos in position order.
func (r *PhotoRepo) ListByItem(itemID string) ([]entity.Photo, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, item_id, storage_key, url, mime_type, position, created_at
		FROM photos WHERE item_id = $1 ORDER BY position ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()
	var photos []entity.Photo
	for rows.Next() {
		var photo entity.Photo
		if err := rows.Scan(
			&photo.ID, &photo.ItemID, &photo.StorageKey, &photo.URL,
			&photo.MIMEType, &photo.Position, &photo.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

// DeleteByItem removes every photo row of the item.
func (r *PhotoRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM photos WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete photos: %w", err)
	}
	return nil
}
