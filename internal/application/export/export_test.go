package export

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/application/usecase"
	"github.com/vtcwoerden/materiaal-api/internal/domain"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/qr"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
	"github.com/vtcwoerden/materiaal-api/internal/domain/sheet"
)

type stubItems struct {
	items []*entity.Item
}

var _ repository.ItemRepository = (*stubItems)(nil)

func (s *stubItems) Create(*entity.Item) error { return errors.New("not implemented") }
func (s *stubItems) Update(*entity.Item) error { return errors.New("not implemented") }
func (s *stubItems) Delete(string) error       { return errors.New("not implemented") }
func (s *stubItems) ReplaceTerms(string, entity.Taxonomy, []string) error {
	return errors.New("not implemented")
}

func (s *stubItems) GetByID(id string) (*entity.Item, error) {
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (s *stubItems) GetByName(name string) (*entity.Item, error) {
	for _, item := range s.items {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, nil
}

func (s *stubItems) List(filter repository.ItemFilter) ([]*entity.Item, error) {
	if filter.Location == "" {
		return s.items, nil
	}
	var out []*entity.Item
	for _, item := range s.items {
		for _, term := range item.Location {
			if term.Slug == filter.Location {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

type stubSettings struct{ values map[string]string }

func (s *stubSettings) Get(key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}
func (s *stubSettings) Set(key, value string) error { s.values[key] = value; return nil }
func (s *stubSettings) Delete(key string) error     { delete(s.values, key); return nil }

type stubGenerator struct {
	last *SheetSpec
	err  error
	name string
}

func (g *stubGenerator) Generate(spec SheetSpec) (*dto.FileResponse, error) {
	g.last = &spec
	if g.err != nil {
		return nil, g.err
	}
	return &dto.FileResponse{Filename: g.name, ContentType: "application/test", Data: []byte(g.name)}, nil
}

func term(tax entity.Taxonomy, name string) entity.Term {
	return entity.Term{ID: "t-" + name, Taxonomy: tax, Slug: strings.ToLower(name), Name: name}
}

func testUseCase(items []*entity.Item) (*ExportUseCase, *stubGenerator, *stubGenerator) {
	settings := usecase.NewSettingsUseCase(&stubSettings{values: map[string]string{}}, usecase.SettingsDefaults{
		QRBaseURL:      qr.DefaultBaseURL,
		AutoGenerateQR: true,
	})
	pdf := &stubGenerator{name: "sheet.pdf"}
	fallback := &stubGenerator{name: "sheet.html"}
	return NewExportUseCase(&stubItems{items: items}, settings, pdf, fallback), pdf, fallback
}

func TestExportCSV(t *testing.T) {
	created := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	uc, _, _ := testUseCase([]*entity.Item{
		{
			ID:        "a1",
			Name:      "Kano, rood",
			Quantity:  2,
			Comments:  "peddel ontbreekt",
			Owner:     []entity.Term{term(entity.TaxonomyOwner, "VTC Woerden")},
			Condition: []entity.Term{term(entity.TaxonomyCondition, "Goed")},
			Location:  []entity.Term{term(entity.TaxonomyLocation, "Loods"), term(entity.TaxonomyLocation, "Rek 2")},
			CreatedAt: created,
		},
		{ID: "a2", Name: "Pion", Quantity: 1, CreatedAt: created},
	})

	file, err := uc.ExportCSV()
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "vtc_inventory_export_"))
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Quantity,Owner,Condition,Location,Comments,Date Created", lines[0])
	assert.Equal(t, `a1,"Kano, rood",2,VTC Woerden,Goed,"Loods, Rek 2",peddel ontbreekt,2024-03-09 14:05:00`, lines[1])
	assert.Equal(t, "a2,Pion,1,,,,,2024-03-09 14:05:00", lines[2])
}

func TestGenerateSheetSelectionAndLayout(t *testing.T) {
	items := make([]*entity.Item, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, &entity.Item{
			ID:       string(rune('a' + i%26)) + strings.Repeat("x", i/26),
			Name:     "Item",
			Quantity: 1,
		})
	}
	uc, pdf, _ := testUseCase(items)

	file, err := uc.GenerateSheet(dto.SheetRequest{Layout: "grid"})
	require.NoError(t, err)
	assert.Equal(t, "sheet.pdf", file.Filename)

	require.NotNil(t, pdf.last)
	assert.Equal(t, sheet.LayoutGrid, pdf.last.Layout)
	assert.Equal(t, 36, pdf.last.Geometry.ItemsPerPage)
	require.Len(t, pdf.last.Pages, 2)
	assert.Len(t, pdf.last.Pages[0], 36)
	assert.Len(t, pdf.last.Pages[1], 4)
}

func TestGenerateSheetExplicitIDsKeepOrder(t *testing.T) {
	uc, pdf, _ := testUseCase([]*entity.Item{
		{ID: "a1", Name: "Kano", Quantity: 1},
		{ID: "a2", Name: "Pion", Quantity: 1},
	})

	_, err := uc.GenerateSheet(dto.SheetRequest{ItemIDs: []string{"a2", "a1"}, Layout: "large"})
	require.NoError(t, err)

	require.Len(t, pdf.last.Pages, 1)
	page := pdf.last.Pages[0]
	require.Len(t, page, 2)
	assert.Equal(t, "Pion", page[0].Name)
	assert.Equal(t, "Kano", page[1].Name)
	assert.Equal(t, sheet.LayoutLarge, pdf.last.Layout)
	assert.False(t, pdf.last.Geometry.ShowQuantity)
	assert.Equal(t, qr.DefaultBaseURL+"Pion", page[0].QRPayload)
}

func TestGenerateSheetUnknownIDFails(t *testing.T) {
	uc, _, _ := testUseCase([]*entity.Item{{ID: "a1", Name: "Kano", Quantity: 1}})
	_, err := uc.GenerateSheet(dto.SheetRequest{ItemIDs: []string{"nope"}})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateSheetEmptyInventoryFails(t *testing.T) {
	uc, _, _ := testUseCase(nil)
	_, err := uc.GenerateSheet(dto.SheetRequest{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateSheetFallsBackToHTML(t *testing.T) {
	uc, pdf, fallback := testUseCase([]*entity.Item{{ID: "a1", Name: "Kano", Quantity: 1}})
	pdf.err = errors.New("font missing")

	file, err := uc.GenerateSheet(dto.SheetRequest{})
	require.NoError(t, err)
	assert.Equal(t, "sheet.html", file.Filename)
	require.NotNil(t, fallback.last)
	assert.Equal(t, pdf.last.Pages, fallback.last.Pages)
}

func TestGenerateSheetStoredPayloadWins(t *testing.T) {
	uc, pdf, _ := testUseCase([]*entity.Item{
		{ID: "a1", Name: "Kano", Quantity: 1, QRCodeURL: "https://elders.example/?object=Kano"},
	})

	_, err := uc.GenerateSheet(dto.SheetRequest{})
	require.NoError(t, err)
	assert.Equal(t, "https://elders.example/?object=Kano", pdf.last.Pages[0][0].QRPayload)
}
