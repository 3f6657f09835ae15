package migration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtcwoerden/materiaal-api/internal/application/usecase"
	"github.com/vtcwoerden/materiaal-api/internal/domain"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/qr"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
)

func newTestEngine(t *testing.T, legacyJSON string) (*Engine, *fakeStore) {
	t.Helper()
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "materiaal-export.json")
	if legacyJSON != "" {
		require.NoError(t, os.WriteFile(dataFile, []byte(legacyJSON), 0o644))
	}
	store := newFakeStore()
	settings := usecase.NewSettingsUseCase(store.fakeSettings, usecase.SettingsDefaults{
		QRBaseURL:      qr.DefaultBaseURL,
		AutoGenerateQR: true,
	})
	engine := NewEngine(
		store.fakeItems,
		store.fakeTaxonomy,
		store.fakePhotos,
		store.fakeMedia,
		settings,
		store.fakeSettings,
		store.fakeLocker,
		Config{DataFile: dataFile, UploadsDir: filepath.Join(dir, "uploads")},
	)
	return engine, store
}

func TestImportMigratesAndNormalizes(t *testing.T) {
	engine, store := newTestEngine(t, `[
		{"id": 7, "name": "Kano", "quantity": "3", "owner": "vtc", "condition": "zeer_goed", "location": "Loods West", "comments": "twee peddels", "created_at": "2019-05-12T10:30:00+02:00"},
		{"id": 8, "name": "Pion", "quantity": 0, "owner": "onbekend", "condition": "matig_versleten", "location": "  Kast 3  "}
	]`)

	result, err := engine.Import()
	require.NoError(t, err)
	assert.Equal(t, 2, result.MigratedCount)
	assert.Equal(t, 0, result.ErrorCount)

	kano, err := store.fakeItems.GetByName("Kano")
	require.NoError(t, err)
	require.NotNil(t, kano)
	assert.Equal(t, 3, kano.Quantity)
	assert.True(t, kano.Migrated)
	assert.Equal(t, 7, kano.LegacyID)
	assert.Equal(t, []string{"VTC Woerden"}, termNames(kano.Owner))
	assert.Equal(t, []string{"Zeer goed"}, termNames(kano.Condition))
	assert.Equal(t, []string{"Loods West"}, termNames(kano.Location))
	assert.Equal(t, qr.DefaultBaseURL+"Kano", kano.QRCodeURL)
	want, _ := time.Parse(time.RFC3339, "2019-05-12T10:30:00+02:00")
	assert.True(t, kano.CreatedAt.Equal(want))

	pion, err := store.fakeItems.GetByName("Pion")
	require.NoError(t, err)
	require.NotNil(t, pion)
	assert.Equal(t, 1, pion.Quantity, "zero quantity floors to one")
	assert.Equal(t, []string{"Onbekend"}, termNames(pion.Owner), "unknown owner codes are humanized")
	assert.Equal(t, []string{"Matig versleten"}, termNames(pion.Condition))
	assert.Equal(t, []string{"Kast 3"}, termNames(pion.Location))

	status, err := engine.Status()
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status.Status)
	assert.Equal(t, 2, status.MigratedCount)
	assert.True(t, status.FileExists)
	assert.Equal(t, 2, status.TotalItems)
	assert.False(t, store.fakeLocker.held, "lock released after import")
}

func TestImportTimestampFallback(t *testing.T) {
	engine, store := newTestEngine(t, `[{"name": "Net", "created_at": "gisteren"}]`)

	before := time.Now()
	_, err := engine.Import()
	require.NoError(t, err)

	item, err := store.fakeItems.GetByName("Net")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.False(t, item.CreatedAt.Before(before), "unparseable timestamp falls back to now")
}

func TestImportRejectsWholeFileOnFirstViolation(t *testing.T) {
	engine, store := newTestEngine(t, `[
		{"name": "Kano"},
		{"name": "   "},
		{"name": "Pion"}
	]`)

	_, err := engine.Import()
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "record 1")

	all, _ := store.fakeItems.List(repository.ItemFilter{})
	assert.Empty(t, all, "nothing written when validation fails")
	_, err = store.fakeSettings.Get(repository.SettingMigrationStatus)
	assert.ErrorIs(t, err, domain.ErrNotFound, "state untouched when validation fails")
}

func TestImportRejectsNonArrayRoot(t *testing.T) {
	engine, _ := newTestEngine(t, `{"name": "Kano"}`)
	_, err := engine.Import()
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportRejectsNonObjectRecord(t *testing.T) {
	engine, _ := newTestEngine(t, `["Kano"]`)
	_, err := engine.Import()
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "record 0")
}

func TestImportMissingFile(t *testing.T) {
	engine, _ := newTestEngine(t, "")
	_, err := engine.Import()
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImportAllowsDuplicateNames(t *testing.T) {
	// Names are not unique; two identical records both import and share a
	// QR payload.
	engine, store := newTestEngine(t, `[
		{"name": "Kano"},
		{"name": "Kano"}
	]`)

	result, err := engine.Import()
	require.NoError(t, err)
	assert.Equal(t, 2, result.MigratedCount)
	assert.Equal(t, 0, result.ErrorCount)

	all, _ := store.fakeItems.List(repository.ItemFilter{})
	require.Len(t, all, 2)
	assert.Equal(t, all[0].QRCodeURL, all[1].QRCodeURL)

	status, err := engine.Status()
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status.Status)
}

func TestImportContinuesPastFailingRecord(t *testing.T) {
	engine, store := newTestEngine(t, `[
		{"name": "Kano"},
		{"name": "Pion"},
		{"name": "Net"}
	]`)
	store.fakeItems.failCreate = map[string]error{"Pion": errors.New("insert item: connection reset")}

	result, err := engine.Import()
	require.NoError(t, err)
	assert.Equal(t, 2, result.MigratedCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.ErrorMessages, 1)
	assert.Contains(t, result.ErrorMessages[0], "record 1")

	// Any record error leaves the migration failed, never completed.
	status, err := engine.Status()
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, status.Status)
	assert.Equal(t, 2, status.MigratedCount)

	all, _ := store.fakeItems.List(repository.ItemFilter{})
	assert.Len(t, all, 2)
}

func TestImportFailsWhenNothingMigrates(t *testing.T) {
	engine, store := newTestEngine(t, `[{"name": "Kano"}, {"name": "Pion"}]`)
	store.fakeItems.failCreate = map[string]error{
		"Kano": errors.New("insert item: connection reset"),
		"Pion": errors.New("insert item: connection reset"),
	}

	result, err := engine.Import()
	require.NoError(t, err)
	assert.Equal(t, 0, result.MigratedCount)
	assert.Equal(t, 2, result.ErrorCount)

	status, err := engine.Status()
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, status.Status)
}

func TestImportRetriesAfterFailure(t *testing.T) {
	// A failed run is re-enterable: only the completed state demands a
	// rollback first.
	engine, store := newTestEngine(t, `[{"name": "Kano"}, {"name": "Pion"}]`)
	store.fakeItems.failCreate = map[string]error{"Pion": errors.New("insert item: connection reset")}

	result, err := engine.Import()
	require.NoError(t, err)
	assert.Equal(t, 1, result.ErrorCount)

	store.fakeItems.failCreate = nil
	result, err = engine.Import()
	require.NoError(t, err)
	assert.Equal(t, 2, result.MigratedCount)
	assert.Equal(t, 0, result.ErrorCount)

	status, err := engine.Status()
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status.Status)
}

func TestImportRefusesRerunAfterCompletion(t *testing.T) {
	engine, _ := newTestEngine(t, `[{"name": "Kano"}]`)
	_, err := engine.Import()
	require.NoError(t, err)

	_, err = engine.Import()
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestImportRefusesWhenLockHeld(t *testing.T) {
	engine, store := newTestEngine(t, `[{"name": "Kano"}]`)
	store.fakeLocker.held = true

	_, err := engine.Import()
	require.ErrorIs(t, err, domain.ErrMigrationLocked)
}

func TestRollbackDeletesOnlyMigratedItems(t *testing.T) {
	engine, store := newTestEngine(t, `[{"name": "Kano"}, {"name": "Pion"}]`)
	_, err := engine.Import()
	require.NoError(t, err)

	manual := newManualItem("Fluitje")
	require.NoError(t, store.fakeItems.Create(manual))

	result, err := engine.Rollback()
	require.NoError(t, err)
	assert.Equal(t, 2, result.DeletedCount)

	remaining, _ := store.fakeItems.List(repository.ItemFilter{})
	require.Len(t, remaining, 1)
	assert.Equal(t, "Fluitje", remaining[0].Name)

	status, err := engine.Status()
	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, status.Status)
	assert.Equal(t, 0, status.MigratedCount)
}

func TestPreviewSweepListsEverything(t *testing.T) {
	engine, store := newTestEngine(t, `[{"name": "Kano", "owner": "vtc"}]`)
	_, err := engine.Import()
	require.NoError(t, err)
	require.NoError(t, store.fakeItems.Create(newManualItem("Fluitje")))

	preview, err := engine.PreviewSweep()
	require.NoError(t, err)
	assert.Equal(t, 2, preview.Count)

	byName := map[string]string{}
	for _, row := range preview.Items {
		byName[row.Name] = row.Origin
	}
	assert.Equal(t, "migrated", byName["Kano"])
	assert.Equal(t, "manual", byName["Fluitje"])
	for _, row := range preview.Items {
		if row.Name == "Fluitje" {
			assert.Equal(t, "N/A", row.Owner, "untagged taxonomies render as N/A")
		}
	}

	all, _ := store.fakeItems.List(repository.ItemFilter{})
	assert.Len(t, all, 2, "preview never deletes")
}

func TestSweepDeletesAllAndCleansOrphanTerms(t *testing.T) {
	engine, store := newTestEngine(t, `[{"name": "Kano", "owner": "vtc", "condition": "goed"}]`)
	_, err := engine.Import()
	require.NoError(t, err)
	require.NoError(t, store.fakeItems.Create(newManualItem("Fluitje")))

	result, err := engine.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 2, result.DeletedCount)
	assert.Equal(t, 0, result.ErrorCount)

	all, _ := store.fakeItems.List(repository.ItemFilter{})
	assert.Empty(t, all)
	terms, _ := store.fakeTaxonomy.ListAll()
	assert.Empty(t, terms, "unreferenced terms are removed")

	status, err := engine.Status()
	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, status.Status)
}

func TestSweepKeepsTermTaggedBetweenChecks(t *testing.T) {
	// A term that looks orphaned on the first count but gains a reference
	// before the delete survives the cleanup.
	engine, store := newTestEngine(t, `[]`)
	term, err := store.fakeTaxonomy.EnsureTerm(entity.TaxonomyOwner, "VTC Woerden")
	require.NoError(t, err)

	store.fakeTaxonomy.onCount = func(termID string, call int) {
		if termID == term.ID && call == 2 {
			item := newManualItem("Nieuw")
			item.Owner = []entity.Term{*term}
			require.NoError(t, store.fakeItems.Create(item))
		}
	}

	_, err = engine.Sweep()
	require.NoError(t, err)

	terms, _ := store.fakeTaxonomy.ListAll()
	require.Len(t, terms, 1)
	assert.Equal(t, "VTC Woerden", terms[0].Name)
}

func TestAttachPhotosSkipsMissingFiles(t *testing.T) {
	engine, store := newTestEngine(t, `[{"name": "Kano", "photos": ["verdwenen.jpg"]}]`)

	result, err := engine.Import()
	require.NoError(t, err)
	assert.Equal(t, 1, result.MigratedCount)
	assert.Equal(t, 0, result.ErrorCount, "missing photo files never fail the record")

	kano, _ := store.fakeItems.GetByName("Kano")
	photos, _ := store.fakePhotos.ListByItem(kano.ID)
	assert.Empty(t, photos)
}
