// Package sheet is the pure layout engine for printable QR sticker sheets.
//
// A sheet places N selected items on fixed grids, one QR code per cell:
//
//	grid:  6 columns, 36 items per page, ~78px QR, name + quantity
//	large: 2 columns,  6 items per page, ~160px QR, name only
//
// A page break follows every full page except when the page ends with the
// last item of the selection (no trailing break). Rendering is done by the
// infrastructure generators; this package only decides geometry.
package sheet

// Layout selects one of the fixed sheet geometries.
type Layout string

const (
	LayoutGrid  Layout = "grid"
	LayoutLarge Layout = "large"
)

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	return l == LayoutGrid || l == LayoutLarge
}

// Geometry describes the fixed grid of a layout.
type Geometry struct {
	Columns      int
	ItemsPerPage int
	QRSizePx     int  // target render size of each QR code
	ShowQuantity bool // large stickers omit the quantity line
}

// GeometryFor returns the grid parameters of the given layout. Unknown layouts
// fall back to the standard grid, mirroring the default of the print surface.
func GeometryFor(l Layout) Geometry {
	if l == LayoutLarge {
		return Geometry{Columns: 2, ItemsPerPage: 6, QRSizePx: 160, ShowQuantity: false}
	}
	return Geometry{Columns: 6, ItemsPerPage: 36, QRSizePx: 78, ShowQuantity: true}
}

// Item is the slice of item state a sheet needs. QRPayload is the full URL
// the cell's QR code encodes.
type Item struct {
	ID        string
	Name      string
	Quantity  int
	QRPayload string
}

// Paginate splits items into pages of at most perPage entries, preserving
// order. The number of page breaks in the rendered document is exactly
// len(pages)-1: a break before every page but the first, which encodes the
// no-trailing-break rule (a break is never emitted after the last item).
func Paginate(items []Item, perPage int) [][]Item {
	if perPage <= 0 || len(items) == 0 {
		if len(items) == 0 {
			return nil
		}
		return [][]Item{items}
	}
	pages := make([][]Item, 0, (len(items)+perPage-1)/perPage)
	for start := 0; start < len(items); start += perPage {
		end := start + perPage
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages
}

// Rows splits one page into rows of at most columns cells, for renderers that
// lay pages out row by row.
func Rows(page []Item, columns int) [][]Item {
	if columns <= 0 {
		columns = 1
	}
	rows := make([][]Item, 0, (len(page)+columns-1)/columns)
	for start := 0; start < len(page); start += columns {
		end := start + columns
		if end > len(page) {
			end = len(page)
		}
		rows = append(rows, page[start:end])
	}
	return rows
}
