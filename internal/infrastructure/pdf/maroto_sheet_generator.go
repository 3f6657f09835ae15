// Package pdf renders the printable QR sticker sheets with Maroto v2.
//
// Page layout (A4):
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: titel + datum + aantal stickers    │
//	│  ┌────┐ ┌────┐ ┌────┐ ┌────┐ ┌────┐ ┌────┐  │
//	│  │ QR │ │ QR │ │ QR │ │ QR │ │ QR │ │ QR │  │
//	│  │naam│ │naam│ │naam│ │naam│ │naam│ │naam│  │
//	│  └────┘ └────┘ └────┘ └────┘ └────┘ └────┘  │
//	│  ... 6 rows of 6 (grid) or 3 rows of 2 ...  │
//	└─────────────────────────────────────────────┘
//
// Every page in the incoming SheetSpec becomes one PDF page; the break
// between pages is implicit, so no break trails the last item.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/application/export"
	"github.com/vtcwoerden/materiaal-api/internal/domain/sheet"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ export.SheetGenerator = (*MarotoSheetGenerator)(nil)

// MarotoSheetGenerator implements export.SheetGenerator using Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator builds the generator.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// Generate renders the laid-out sheet into a PDF document.
func (g *MarotoSheetGenerator) Generate(spec export.SheetSpec) (*dto.FileResponse, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(spec.Title, true).
		Build()

	m := maroto.New(cfg)

	total := 0
	for _, p := range spec.Pages {
		total += len(p)
	}

	for i, pageItems := range spec.Pages {
		pg := page.New()
		if i == 0 {
			pg.Add(headerRows(spec.Title, total)...)
		}
		for _, cells := range sheet.Rows(pageItems, spec.Geometry.Columns) {
			pg.Add(stickerRow(cells, spec.Geometry))
		}
		m.AddPages(pg)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate sheet: %w", err)
	}
	return &dto.FileResponse{
		Filename:    fmt.Sprintf("vtc_qr_sheet_%s.pdf", time.Now().Format("2006-01-02_15-04-05")),
		ContentType: "application/pdf",
		Data:        doc.GetBytes(),
	}, nil
}

// headerRows: title left, generation date and sticker count right.
func headerRows(title string, total int) []core.Row {
	return []core.Row{
		row.New(12).Add(
			col.New(8).Add(
				text.New(title, props.Text{
					Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
				}),
			),
			col.New(4).Add(
				text.New(time.Now().Format("02-01-2006"), props.Text{
					Size: 8, Align: align.Right, Top: 1, Color: colorGray,
				}),
				text.New(fmt.Sprintf("%d stickers", total), props.Text{
					Size: 8, Align: align.Right, Top: 6, Color: colorGray,
				}),
			),
		),
		line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.4}),
	}
}

// stickerRow renders one row of QR cells. The 12-column grid divides evenly
// for both layouts (6 cells of span 2, 2 cells of span 6).
func stickerRow(cells []sheet.Item, geo sheet.Geometry) core.Row {
	span := 12 / geo.Columns
	height := float64(42)
	if geo.Columns == 2 {
		height = 85
	}

	cols := make([]core.Col, 0, geo.Columns)
	for _, cell := range cells {
		label := cell.Name
		if geo.ShowQuantity {
			label = fmt.Sprintf("%s (%d)", cell.Name, cell.Quantity)
		}
		cols = append(cols, col.New(span).Add(
			code.NewQr(cell.QRPayload, props.Rect{
				Percent: 70,
				Center:  true,
			}),
			text.New(label, props.Text{
				Size:  8,
				Align: align.Center,
				Top:   height - 10,
			}),
		))
	}
	// Pad short rows so the grid stays aligned.
	for len(cols) < geo.Columns {
		cols = append(cols, col.New(span))
	}
	return row.New(height).Add(cols...)
}
