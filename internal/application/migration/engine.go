package migration

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/application/ports"
	"github.com/vtcwoerden/materiaal-api/internal/application/usecase"
	"github.com/vtcwoerden/materiaal-api/internal/domain"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/qr"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
	"github.com/vtcwoerden/materiaal-api/internal/imaging"
)

// Migration states stored under repository.SettingMigrationStatus.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Config locates the legacy export on disk.
type Config struct {
	// DataFile is the legacy JSON export.
	DataFile string
	// UploadsDir holds the photo files the export references by bare filename.
	UploadsDir string
}

// Engine runs the one-off legacy import and its undo operations. All four
// mutating operations take the migration lock; only one may run at a time.
type Engine struct {
	items    repository.ItemRepository
	taxonomy repository.TaxonomyRepository
	photos   repository.PhotoRepository
	media    ports.MediaStore
	settings *usecase.SettingsUseCase
	store    repository.SettingsRepository
	locker   Locker
	cfg      Config
}

// NewEngine builds the migration engine.
func NewEngine(
	items repository.ItemRepository,
	taxonomy repository.TaxonomyRepository,
	photos repository.PhotoRepository,
	media ports.MediaStore,
	settings *usecase.SettingsUseCase,
	store repository.SettingsRepository,
	locker Locker,
	cfg Config,
) *Engine {
	return &Engine{
		items:    items,
		taxonomy: taxonomy,
		photos:   photos,
		media:    media,
		settings: settings,
		store:    store,
		locker:   locker,
		cfg:      cfg,
	}
}

// Status reports the migration state, the stored progress counter and what
// the export file currently holds. File problems surface as FileExists=false
// with TotalItems=0 rather than an error, so the dashboard can always render.
func (e *Engine) Status() (*dto.MigrationStatusResponse, error) {
	resp := &dto.MigrationStatusResponse{Status: StatusNotStarted}
	if v, err := e.store.Get(repository.SettingMigrationStatus); err == nil {
		resp.Status = v
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if v, err := e.store.Get(repository.SettingMigratedCount); err == nil {
		resp.MigratedCount, _ = strconv.Atoi(v)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	data, err := os.ReadFile(e.cfg.DataFile)
	if err != nil {
		return resp, nil
	}
	resp.FileExists = true
	if records, err := parseLegacyFile(data); err == nil {
		resp.TotalItems = len(records)
	}
	return resp, nil
}

// Import reads the legacy export and creates one inventory item per record.
// The whole file is validated before the first write. After that every record
// is processed independently: one bad record is reported and skipped, never
// aborting the rest, but any record error leaves the final state failed. A
// completed migration must be rolled back before it can run again; a failed
// one may simply be retried.
func (e *Engine) Import() (*dto.ImportResultResponse, error) {
	unlock, err := e.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()

	if status, err := e.store.Get(repository.SettingMigrationStatus); err == nil && status == StatusCompleted {
		return nil, fmt.Errorf("%w: migration already completed, roll back first", domain.ErrConflict)
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	data, err := os.ReadFile(e.cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("%w: legacy data file %s", domain.ErrNotFound, e.cfg.DataFile)
	}
	records, err := parseLegacyFile(data)
	if err != nil {
		return nil, err
	}

	if err := e.setState(StatusInProgress, 0); err != nil {
		return nil, err
	}

	result := &dto.ImportResultResponse{}
	for i, rec := range records {
		if err := e.importRecord(rec); err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("record %d (%s): %v", i, rec.Name, err))
			continue
		}
		result.MigratedCount++
	}

	// Any record error leaves the migration failed, so a partial import can
	// be fixed and re-run. Only a clean run is completed.
	finalStatus := StatusCompleted
	if result.ErrorCount > 0 {
		finalStatus = StatusFailed
	}
	if err := e.setState(finalStatus, result.MigratedCount); err != nil {
		return nil, err
	}
	result.Message = fmt.Sprintf("migrated %d of %d items", result.MigratedCount, len(records))
	return result, nil
}

// importRecord creates one item with its tags and photos.
func (e *Engine) importRecord(rec legacyRecord) error {
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        rec.Name,
		Description: rec.Description,
		Quantity:    int(rec.Quantity),
		Comments:    rec.Comments,
		Migrated:    true,
		LegacyID:    rec.ID,
		CreatedAt:   parseLegacyTime(rec.CreatedAt, now),
		UpdatedAt:   now,
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if e.settings.AutoGenerateQR() {
		item.QRCodeURL = qr.BuildURL(e.settings.QRBaseURL(), item.Name)
	}
	if err := e.items.Create(item); err != nil {
		return err
	}
	if err := e.tag(item.ID, entity.TaxonomyOwner, OwnerName(rec.Owner)); err != nil {
		return err
	}
	if err := e.tag(item.ID, entity.TaxonomyCondition, ConditionName(rec.Condition)); err != nil {
		return err
	}
	if err := e.tag(item.ID, entity.TaxonomyLocation, LocationName(rec.Location)); err != nil {
		return err
	}
	e.attachPhotos(item.ID, rec.Photos)
	return nil
}

func (e *Engine) tag(itemID string, taxonomy entity.Taxonomy, name string) error {
	if name == "" {
		return nil
	}
	term, err := e.taxonomy.EnsureTerm(taxonomy, name)
	if err != nil {
		return err
	}
	return e.items.ReplaceTerms(itemID, taxonomy, []string{term.ID})
}

// attachPhotos copies the referenced upload files into the media store, in
// the order the export lists them so the first one stays featured. A missing
// or unreadable file is skipped silently; the item itself already exists.
func (e *Engine) attachPhotos(itemID string, filenames []string) {
	for _, name := range filenames {
		if name == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(e.cfg.UploadsDir, filepath.Base(name)))
		if err != nil {
			continue
		}
		processed, err := imaging.Process(data)
		if err != nil {
			continue
		}
		key := path.Join("items", itemID, uuid.New().String()+".jpg")
		url, err := e.media.Put(key, processed.MIMEType, processed.Data)
		if err != nil {
			continue
		}
		_ = e.photos.Create(&entity.Photo{
			ID:         uuid.New().String(),
			ItemID:     itemID,
			StorageKey: key,
			URL:        url,
			MIMEType:   processed.MIMEType,
			CreatedAt:  time.Now(),
		})
	}
}

// Rollback deletes every item the import created and resets the migration
// state. Manually created items are never touched.
func (e *Engine) Rollback() (*dto.RollbackResultResponse, error) {
	unlock, err := e.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()

	migrated, err := e.items.List(repository.ItemFilter{MigratedOnly: true})
	if err != nil {
		return nil, err
	}
	deleted := 0
	for _, item := range migrated {
		if err := e.deleteItem(item); err != nil {
			continue
		}
		deleted++
	}
	if err := e.store.Delete(repository.SettingMigrationStatus); err != nil {
		return nil, err
	}
	if err := e.store.Delete(repository.SettingMigratedCount); err != nil {
		return nil, err
	}
	return &dto.RollbackResultResponse{
		DeletedCount: deleted,
		Message:      fmt.Sprintf("removed %d migrated items", deleted),
	}, nil
}

// PreviewSweep lists everything a sweep would delete, without deleting. Rows
// show the first tag of each taxonomy or "N/A" when untagged, plus whether
// the item came from the import or was created by hand.
func (e *Engine) PreviewSweep() (*dto.SweepPreviewResponse, error) {
	all, err := e.items.List(repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	rows := make([]dto.SweepPreviewRow, 0, len(all))
	for _, item := range all {
		origin := "manual"
		if item.Migrated {
			origin = "migrated"
		}
		rows = append(rows, dto.SweepPreviewRow{
			ID:        item.ID,
			Name:      item.Name,
			Owner:     firstTermName(item.Owner),
			Condition: firstTermName(item.Condition),
			Location:  firstTermName(item.Location),
			Origin:    origin,
		})
	}
	return &dto.SweepPreviewResponse{
		Items:   rows,
		Count:   len(rows),
		Message: fmt.Sprintf("%d items would be deleted", len(rows)),
	}, nil
}

// Sweep deletes the entire inventory, migrated and manual alike, then removes
// taxonomy terms that no item references anymore and resets the migration
// state. Single item failures are counted and skipped.
func (e *Engine) Sweep() (*dto.SweepResultResponse, error) {
	unlock, err := e.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()

	all, err := e.items.List(repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	result := &dto.SweepResultResponse{}
	for _, item := range all {
		if err := e.deleteItem(item); err != nil {
			result.ErrorCount++
			continue
		}
		result.DeletedCount++
	}
	if err := e.cleanupOrphanTerms(); err != nil {
		return nil, err
	}
	if err := e.store.Delete(repository.SettingMigrationStatus); err != nil {
		return nil, err
	}
	if err := e.store.Delete(repository.SettingMigratedCount); err != nil {
		return nil, err
	}
	result.Message = fmt.Sprintf("deleted %d items", result.DeletedCount)
	return result, nil
}

// cleanupOrphanTerms deletes terms no longer referenced by any item. The
// count is re-checked immediately before each delete, so a term tagged
// concurrently between the two counts survives.
func (e *Engine) cleanupOrphanTerms() error {
	terms, err := e.taxonomy.ListAll()
	if err != nil {
		return err
	}
	for _, term := range terms {
		count, err := e.taxonomy.CountItems(term.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		count, err = e.taxonomy.CountItems(term.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := e.taxonomy.Delete(term.ID); err != nil {
			return err
		}
	}
	return nil
}

// deleteItem removes an item with its photo rows and stored objects. Object
// deletion is best-effort, matching the item use case.
func (e *Engine) deleteItem(item *entity.Item) error {
	for _, p := range item.Photos {
		_ = e.media.Delete(p.StorageKey)
	}
	if err := e.photos.DeleteByItem(item.ID); err != nil {
		return err
	}
	return e.items.Delete(item.ID)
}

func (e *Engine) acquire() (func(), error) {
	ok, err := e.locker.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrMigrationLocked
	}
	return func() { _ = e.locker.Unlock() }, nil
}

func (e *Engine) setState(status string, count int) error {
	if err := e.store.Set(repository.SettingMigrationStatus, status); err != nil {
		return err
	}
	return e.store.Set(repository.SettingMigratedCount, strconv.Itoa(count))
}

func firstTermName(terms []entity.Term) string {
	if len(terms) == 0 {
		return "N/A"
	}
	return terms[0].Name
}
