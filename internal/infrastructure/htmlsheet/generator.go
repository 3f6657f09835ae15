// Package htmlsheet is the degrade path for sticker sheets: a printable HTML
// page with externally rendered QR images, served when PDF generation fails.
package htmlsheet

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/application/export"
	"github.com/vtcwoerden/materiaal-api/internal/domain/qr"
	"github.com/vtcwoerden/materiaal-api/internal/domain/sheet"
)

var _ export.SheetGenerator = (*Generator)(nil)

// Generator implements export.SheetGenerator with html/template.
type Generator struct {
	tmpl *template.Template
}

// New parses the sheet template.
func New() *Generator {
	return &Generator{tmpl: template.Must(template.New("sheet").Parse(sheetTemplate))}
}

type cellView struct {
	Label    string
	ImageURL string
	SizePx   int
}

type pageView struct {
	Rows [][]cellView
	// Break is set on every page but the last: a break never follows the
	// final item.
	Break bool
}

type sheetView struct {
	Title   string
	Date    string
	Total   int
	Columns int
	CellPct float64
	Pages   []pageView
}

// Generate renders the laid-out sheet into a printable HTML document.
func (g *Generator) Generate(spec export.SheetSpec) (*dto.FileResponse, error) {
	view := sheetView{
		Title:   spec.Title,
		Date:    time.Now().Format("02-01-2006"),
		Columns: spec.Geometry.Columns,
		CellPct: 100.0 / float64(spec.Geometry.Columns),
	}
	for i, pageItems := range spec.Pages {
		view.Total += len(pageItems)
		pv := pageView{Break: i < len(spec.Pages)-1}
		for _, rowItems := range sheet.Rows(pageItems, spec.Geometry.Columns) {
			cells := make([]cellView, 0, len(rowItems))
			for _, cell := range rowItems {
				label := cell.Name
				if spec.Geometry.ShowQuantity {
					label = fmt.Sprintf("%s (%d)", cell.Name, cell.Quantity)
				}
				cells = append(cells, cellView{
					Label:    label,
					ImageURL: qr.FallbackImageURL(cell.QRPayload, spec.Geometry.QRSizePx),
					SizePx:   spec.Geometry.QRSizePx,
				})
			}
			pv.Rows = append(pv.Rows, cells)
		}
		view.Pages = append(view.Pages, pv)
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("htmlsheet: render: %w", err)
	}
	return &dto.FileResponse{
		Filename:    fmt.Sprintf("vtc_qr_sheet_%s.html", time.Now().Format("2006-01-02_15-04-05")),
		ContentType: "text/html; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

const sheetTemplate = `<!DOCTYPE html>
<html lang="nl">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: sans-serif; margin: 10mm; }
  header { display: flex; justify-content: space-between; border-bottom: 2px solid #005a3c; margin-bottom: 6mm; }
  h1 { color: #005a3c; font-size: 16pt; margin: 0 0 2mm 0; }
  .meta { color: #666; font-size: 9pt; text-align: right; }
  table { width: 100%; border-collapse: collapse; table-layout: fixed; }
  td { width: {{printf "%.2f" .CellPct}}%; text-align: center; padding: 3mm 1mm; vertical-align: top; }
  td img { display: block; margin: 0 auto 1mm auto; }
  .label { font-size: 8pt; word-wrap: break-word; }
  .page-break { page-break-after: always; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <div class="meta">{{.Date}}<br>{{.Total}} stickers</div>
</header>
{{range .Pages}}<table{{if .Break}} class="page-break"{{end}}>
{{range .Rows}}  <tr>
{{range .}}    <td><img src="{{.ImageURL}}" width="{{.SizePx}}" height="{{.SizePx}}" alt=""><div class="label">{{.Label}}</div></td>
{{end}}  </tr>
{{end}}</table>
{{end}}</body>
</html>
`
