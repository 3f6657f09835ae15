package export

import (
	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/domain/sheet"
)

// SheetSpec is a fully laid-out sticker sheet handed to a renderer. Pages are
// already split by the layout engine; renderers emit one page per entry with
// a break between pages and none after the last.
type SheetSpec struct {
	Layout   sheet.Layout
	Geometry sheet.Geometry
	Pages    [][]sheet.Item
	Title    string
}

// SheetGenerator renders a laid-out sheet into a downloadable document.
// The pdf implementation is primary; the html one is the degrade path when
// pdf rendering fails.
type SheetGenerator interface {
	Generate(spec SheetSpec) (*dto.FileResponse, error)
}
