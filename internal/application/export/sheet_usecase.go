package export

import (
	"fmt"

	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/application/usecase"
	"github.com/vtcwoerden/materiaal-api/internal/domain"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/qr"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
	"github.com/vtcwoerden/materiaal-api/internal/domain/sheet"
)

// ExportUseCase produces the downloadable documents: the CSV export and the
// printable QR sticker sheets.
type ExportUseCase struct {
	items    repository.ItemRepository
	settings *usecase.SettingsUseCase
	pdf      SheetGenerator
	fallback SheetGenerator
}

// NewExportUseCase builds the use case. fallback may be nil; a pdf failure
// then surfaces as an error instead of degrading.
func NewExportUseCase(items repository.ItemRepository, settings *usecase.SettingsUseCase, pdf, fallback SheetGenerator) *ExportUseCase {
	return &ExportUseCase{items: items, settings: settings, pdf: pdf, fallback: fallback}
}

// GenerateSheet renders a sticker sheet for the requested selection. Explicit
// item ids keep their request order; an empty selection takes the whole
// inventory, optionally narrowed to one location. When the pdf renderer
// fails the html fallback sheet is served instead.
func (uc *ExportUseCase) GenerateSheet(in dto.SheetRequest) (*dto.FileResponse, error) {
	items, err := uc.resolveSelection(in)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items selected", domain.ErrNotFound)
	}

	layout := sheet.Layout(in.Layout)
	if !layout.Valid() {
		layout = sheet.LayoutGrid
	}
	geo := sheet.GeometryFor(layout)

	cells := make([]sheet.Item, 0, len(items))
	for _, item := range items {
		cells = append(cells, sheet.Item{
			ID:        item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			QRPayload: uc.payloadFor(item),
		})
	}

	title := "Materiaaloverzicht"
	if in.Location != "" {
		title = fmt.Sprintf("Materiaaloverzicht: %s", in.Location)
	}
	spec := SheetSpec{
		Layout:   layout,
		Geometry: geo,
		Pages:    sheet.Paginate(cells, geo.ItemsPerPage),
		Title:    title,
	}

	file, err := uc.pdf.Generate(spec)
	if err == nil {
		return file, nil
	}
	if uc.fallback == nil {
		return nil, err
	}
	return uc.fallback.Generate(spec)
}

// resolveSelection loads the items the sheet covers.
func (uc *ExportUseCase) resolveSelection(in dto.SheetRequest) ([]*entity.Item, error) {
	if len(in.ItemIDs) == 0 {
		return uc.items.List(repository.ItemFilter{Location: in.Location})
	}
	items := make([]*entity.Item, 0, len(in.ItemIDs))
	for _, id := range in.ItemIDs {
		item, err := uc.items.GetByID(id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		items = append(items, item)
	}
	return items, nil
}

// payloadFor returns the URL a cell's QR code encodes. The stored QR URL wins;
// items saved before QR generation was enabled get one derived on the fly.
func (uc *ExportUseCase) payloadFor(item *entity.Item) string {
	if item.QRCodeURL != "" {
		return item.QRCodeURL
	}
	return qr.BuildURL(uc.settings.QRBaseURL(), item.Name)
}
