package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/vtcwoerden/materiaal-api/internal/domain"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const itemColumns = "id, name, description, quantity, comments, qr_code_url, migrated, legacy_id, created_at, updated_at"

// ItemRepo implements ItemRepository on PostgreSQL (usable with pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the persistence adapter for items. Pass pool or tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persists a new item. Names are not unique; two items may share one.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, description, quantity, comments, qr_code_url, migrated, legacy_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Quantity, item.Comments,
		item.QRCodeURL, item.Migrated, item.LegacyID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID returns an item with its terms and photos, or nil when unknown.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getBy("id = $1", id)
}

// GetByName returns the oldest item with the given exact name, or nil. Names
// are not unique; the lookup page resolves duplicates to the first match.
func (r *ItemRepo) GetByName(name string) (*entity.Item, error) {
	return r.getBy("name = $1 ORDER BY created_at ASC, id ASC LIMIT 1", name)
}

func (r *ItemRepo) getBy(where string, arg any) (*entity.Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items WHERE %s", itemColumns, where)
	var item entity.Item
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&item.ID, &item.Name, &item.Description, &item.Quantity, &item.Comments,
		&item.QRCodeURL, &item.Migrated, &item.LegacyID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := r.loadRelations([]*entity.Item{&item}); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update rewrites the item's own columns. Terms are managed via ReplaceTerms.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, description = $3, quantity = $4, comments = $5, qr_code_url = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Quantity, item.Comments,
		item.QRCodeURL, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete removes an item. Term bindings and photo rows cascade.
func (r *ItemRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns items matching the filter, ordered by name. Free text matches
// name, description and comments; taxonomy filters match term slugs.
func (r *ItemRepo) List(filter repository.ItemFilter) ([]*entity.Item, error) {
	b := psql.Select(
		"id", "name", "description", "quantity", "comments",
		"qr_code_url", "migrated", "legacy_id", "created_at", "updated_at",
	).From("items").OrderBy("name ASC")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"name": like},
			sq.ILike{"description": like},
			sq.ILike{"comments": like},
		})
	}
	for _, tf := range []struct {
		taxonomy entity.Taxonomy
		slug     string
	}{
		{entity.TaxonomyOwner, filter.Owner},
		{entity.TaxonomyCondition, filter.Condition},
		{entity.TaxonomyLocation, filter.Location},
	} {
		if tf.slug == "" {
			continue
		}
		b = b.Where(`EXISTS (
			SELECT 1 FROM item_terms it JOIN terms t ON t.id = it.term_id
			WHERE it.item_id = items.id AND t.taxonomy = ? AND t.slug = ?)`, string(tf.taxonomy), tf.slug)
	}
	if filter.MigratedOnly {
		b = b.Where(sq.Eq{"migrated": true})
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item query: %w", err)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		var item entity.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Quantity, &item.Comments,
			&item.QRCodeURL, &item.Migrated, &item.LegacyID, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if err := r.loadRelations(items); err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceTerms rebinds the item's tags in one taxonomy to exactly termIDs.
func (r *ItemRepo) ReplaceTerms(itemID string, taxonomy entity.Taxonomy, termIDs []string) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		DELETE FROM item_terms USING terms
		WHERE item_terms.term_id = terms.id AND item_terms.item_id = $1 AND terms.taxonomy = $2`,
		itemID, string(taxonomy),
	)
	if err != nil {
		return fmt.Errorf("clear item terms: %w", err)
	}
	for _, termID := range termIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO item_terms (item_id, term_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			itemID, termID,
		)
		if err != nil {
			return fmt.Errorf("bind item term: %w", err)
		}
	}
	return nil
}

// loadRelations fills Owner, Condition, Location and Photos for the given
// items in two batched queries.
func (r *ItemRepo) loadRelations(items []*entity.Item) error {
	if len(items) == 0 {
		return nil
	}
	ctx := context.Background()
	ids := make([]string, 0, len(items))
	byID := make(map[string]*entity.Item, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		byID[item.ID] = item
	}

	rows, err := r.q.Query(ctx, `
		SELECT it.item_id, t.id, t.taxonomy, t.slug, t.name, t.created_at
		FROM item_terms it JOIN terms t ON t.id = it.term_id
		WHERE it.item_id = ANY($1)
		ORDER BY t.name ASC`, ids)
	if err != nil {
		return fmt.Errorf("load item terms: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var itemID string
		var term entity.Term
		if err := rows.Scan(&itemID, &term.ID, &term.Taxonomy, &term.Slug, &term.Name, &term.CreatedAt); err != nil {
			return fmt.Errorf("scan item term: %w", err)
		}
		item := byID[itemID]
		switch term.Taxonomy {
		case entity.TaxonomyOwner:
			item.Owner = append(item.Owner, term)
		case entity.TaxonomyCondition:
			item.Condition = append(item.Condition, term)
		case entity.TaxonomyLocation:
			item.Location = append(item.Location, term)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load item terms: %w", err)
	}

	photoRows, err := r.q.Query(ctx, `
		SELECT id, item_id, storage_key, url, mime_type, position, created_at
		FROM photos WHERE item_id = ANY($1)
		ORDER BY position ASC`, ids)
	if err != nil {
		return fmt.Errorf("load item photos: %w", err)
	}
	defer photoRows.Close()
	for photoRows.Next() {
		var photo entity.Photo
		if err := photoRows.Scan(
			&photo.ID, &photo.ItemID, &photo.StorageKey, &photo.URL,
			&photo.MIMEType, &photo.Position, &photo.CreatedAt,
		); err != nil {
			return fmt.Errorf("scan item photo: %w", err)
		}
		item := byID[photo.ItemID]
		item.Photos = append(item.Photos, photo)
	}
	if err := photoRows.Err(); err != nil {
		return fmt.Errorf("load item photos: %w", err)
	}
	return nil
}
