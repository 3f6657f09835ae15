package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/application/export"
)

// ExportHandler serves the CSV export and the QR sticker sheets.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler builds the handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// ExportCSV godoc
// @Summary      Download the inventory as CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/export/csv [get]
func (h *ExportHandler) ExportCSV(c *fiber.Ctx) error {
	file, err := h.uc.ExportCSV()
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}

// GenerateSheet godoc
// @Summary      Generate a printable QR sticker sheet
// @Tags         export
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.SheetRequest  true  "Selection and layout"
// @Success      200   {file}    file
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/export/sheet [post]
func (h *ExportHandler) GenerateSheet(c *fiber.Ctx) error {
	var in dto.SheetRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	file, err := h.uc.GenerateSheet(in)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, file *dto.FileResponse) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, file.Filename))
	return c.Send(file.Data)
}
