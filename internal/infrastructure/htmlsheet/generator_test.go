package htmlsheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtcwoerden/materiaal-api/internal/application/export"
	"github.com/vtcwoerden/materiaal-api/internal/domain/sheet"
)

func gridSpec(pages [][]sheet.Item) export.SheetSpec {
	return export.SheetSpec{
		Layout:   sheet.LayoutGrid,
		Geometry: sheet.GeometryFor(sheet.LayoutGrid),
		Pages:    pages,
		Title:    "Materiaaloverzicht",
	}
}

func TestGenerateSinglePageHasNoBreak(t *testing.T) {
	g := New()
	file, err := g.Generate(gridSpec([][]sheet.Item{
		{{ID: "a1", Name: "Kano", Quantity: 2, QRPayload: "https://vtcwoerden.nl/materiaal/?object=Kano"}},
	}))
	require.NoError(t, err)

	html := string(file.Data)
	assert.Equal(t, "text/html; charset=utf-8", file.ContentType)
	assert.NotContains(t, html, "page-break\"", "no break after the last page")
	assert.Contains(t, html, "Kano (2)", "grid layout shows quantities")
	assert.Contains(t, html, "chart.googleapis.com/chart?cht=qr&amp;chs=78x78")
}

func TestGenerateBreakBetweenPagesOnly(t *testing.T) {
	g := New()
	file, err := g.Generate(gridSpec([][]sheet.Item{
		{{ID: "a1", Name: "Kano", Quantity: 1}},
		{{ID: "a2", Name: "Pion", Quantity: 1}},
	}))
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(string(file.Data), `class="page-break"`))
}

func TestGenerateLargeLayoutOmitsQuantity(t *testing.T) {
	g := New()
	file, err := g.Generate(export.SheetSpec{
		Layout:   sheet.LayoutLarge,
		Geometry: sheet.GeometryFor(sheet.LayoutLarge),
		Pages:    [][]sheet.Item{{{ID: "a1", Name: "Kano", Quantity: 2}}},
		Title:    "Materiaaloverzicht",
	})
	require.NoError(t, err)

	html := string(file.Data)
	assert.Contains(t, html, ">Kano<")
	assert.NotContains(t, html, "Kano (2)")
	assert.Contains(t, html, "chs=160x160")
}
