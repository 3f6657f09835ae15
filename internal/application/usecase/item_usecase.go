package usecase

import (
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/application/ports"
	"github.com/vtcwoerden/materiaal-api/internal/domain"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/qr"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
	"github.com/vtcwoerden/materiaal-api/internal/imaging"
)

// ItemUseCase CRUD, search and photo attachment for inventory items.
type ItemUseCase struct {
	items    repository.ItemRepository
	taxonomy repository.TaxonomyRepository
	photos   repository.PhotoRepository
	media    ports.MediaStore
	settings *SettingsUseCase
}

// NewItemUseCase builds the use case.
func NewItemUseCase(
	items repository.ItemRepository,
	taxonomy repository.TaxonomyRepository,
	photos repository.PhotoRepository,
	media ports.MediaStore,
	settings *SettingsUseCase,
) *ItemUseCase {
	return &ItemUseCase{items: items, taxonomy: taxonomy, photos: photos, media: media, settings: settings}
}

// clampQuantity enforces the quantity >= 1 invariant. Absent input defaults
// to 1, and explicit zero or negative values floor to 1.
func clampQuantity(q *int) int {
	if q == nil || *q < 1 {
		return 1
	}
	return *q
}

// Create stores a new item and tags it, creating taxonomy terms on demand.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Quantity:    clampQuantity(in.Quantity),
		Comments:    in.Comments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if uc.settings.AutoGenerateQR() {
		item.QRCodeURL = qr.BuildURL(uc.settings.QRBaseURL(), item.Name)
	}
	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	if err := uc.assignTag(item.ID, entity.TaxonomyOwner, in.Owner); err != nil {
		return nil, err
	}
	if err := uc.assignTag(item.ID, entity.TaxonomyCondition, in.Condition); err != nil {
		return nil, err
	}
	if err := uc.assignTag(item.ID, entity.TaxonomyLocation, in.Location); err != nil {
		return nil, err
	}
	return uc.GetByID(item.ID)
}

// GetByID returns an item with tags and photos, or nil when unknown.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Lookup resolves a QR payload name to its item, for the public lookup page.
func (uc *ItemUseCase) Lookup(name string) (*dto.ItemResponse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.items.GetByName(name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update applies the non-nil fields. A rename recomputes the QR URL so it
// never drifts out of sync with the name.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil && *in.Name != item.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
		if uc.settings.AutoGenerateQR() {
			item.QRCodeURL = qr.BuildURL(uc.settings.QRBaseURL(), item.Name)
		}
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Quantity != nil {
		item.Quantity = clampQuantity(in.Quantity)
	}
	if in.Comments != nil {
		item.Comments = *in.Comments
	}
	item.UpdatedAt = time.Now()
	if err := uc.items.Update(item); err != nil {
		return nil, err
	}
	if in.Owner != nil {
		if err := uc.assignTag(id, entity.TaxonomyOwner, *in.Owner); err != nil {
			return nil, err
		}
	}
	if in.Condition != nil {
		if err := uc.assignTag(id, entity.TaxonomyCondition, *in.Condition); err != nil {
			return nil, err
		}
	}
	if in.Location != nil {
		if err := uc.assignTag(id, entity.TaxonomyLocation, *in.Location); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(id)
}

// Delete removes an item, its photo rows and its stored photo objects.
// Object deletion is best-effort: a missing object never blocks the delete.
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	for _, p := range item.Photos {
		_ = uc.media.Delete(p.StorageKey)
	}
	if err := uc.photos.DeleteByItem(id); err != nil {
		return err
	}
	return uc.items.Delete(id)
}

// Search lists items matching the free-text and taxonomy filters.
func (uc *ItemUseCase) Search(in dto.SearchItemsRequest) (*dto.ItemListResponse, error) {
	filter := repository.ItemFilter{
		Search:    in.Search,
		Owner:     in.Owner,
		Condition: in.Condition,
		Location:  in.Location,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	list, err := uc.items.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: items, Total: len(items)}, nil
}

// ListTerms lists the terms of one taxonomy for the filter dropdowns.
func (uc *ItemUseCase) ListTerms(taxonomy entity.Taxonomy) ([]dto.TermResponse, error) {
	if !taxonomy.Valid() {
		return nil, domain.ErrInvalidInput
	}
	terms, err := uc.taxonomy.List(taxonomy)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TermResponse, 0, len(terms))
	for _, t := range terms {
		out = append(out, dto.TermResponse{Slug: t.Slug, Name: t.Name})
	}
	return out, nil
}

// PhotoUpload one uploaded file.
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// AddPhotos processes and attaches uploads to an item, in order. The first
// photo ever attached to an item becomes its featured image.
func (uc *ItemUseCase) AddPhotos(itemID string, uploads []PhotoUpload) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	for _, up := range uploads {
		processed, err := imaging.Process(up.Data)
		if err != nil {
			return nil, fmt.Errorf("photo %s: %w", up.Filename, err)
		}
		key := path.Join("items", itemID, uuid.New().String()+".jpg")
		url, err := uc.media.Put(key, processed.MIMEType, processed.Data)
		if err != nil {
			return nil, fmt.Errorf("store photo %s: %w", up.Filename, err)
		}
		photo := &entity.Photo{
			ID:         uuid.New().String(),
			ItemID:     itemID,
			StorageKey: key,
			URL:        url,
			MIMEType:   processed.MIMEType,
			CreatedAt:  time.Now(),
		}
		if err := uc.photos.Create(photo); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(itemID)
}

// assignTag replaces the item's tag in one taxonomy; an empty name clears it.
func (uc *ItemUseCase) assignTag(itemID string, taxonomy entity.Taxonomy, name string) error {
	if name == "" {
		return uc.items.ReplaceTerms(itemID, taxonomy, nil)
	}
	term, err := uc.taxonomy.EnsureTerm(taxonomy, name)
	if err != nil {
		return err
	}
	return uc.items.ReplaceTerms(itemID, taxonomy, []string{term.ID})
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	photos := make([]dto.PhotoResponse, 0, len(item.Photos))
	for i, p := range item.Photos {
		photos = append(photos, dto.PhotoResponse{ID: p.ID, URL: p.URL, Featured: i == 0})
	}
	return &dto.ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		Comments:    item.Comments,
		QRCodeURL:   item.QRCodeURL,
		Owner:       entity.TermNames(item.Owner),
		Condition:   entity.TermNames(item.Condition),
		Location:    entity.TermNames(item.Location),
		Photos:      photos,
		Migrated:    item.Migrated,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
