package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vtcwoerden/materiaal-api/internal/application/migration"
)

// MigrationHandler exposes the legacy import operations (admin only).
type MigrationHandler struct {
	engine *migration.Engine
}

// NewMigrationHandler builds the handler.
func NewMigrationHandler(engine *migration.Engine) *MigrationHandler {
	return &MigrationHandler{engine: engine}
}

// Status godoc
// @Summary      Migration state and export file info
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MigrationStatusResponse
// @Router       /api/migration/status [get]
func (h *MigrationHandler) Status(c *fiber.Ctx) error {
	out, err := h.engine.Status()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Import the legacy JSON export
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ImportResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/migration/import [post]
func (h *MigrationHandler) Import(c *fiber.Ctx) error {
	out, err := h.engine.Import()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rollback godoc
// @Summary      Delete every imported item and reset migration state
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RollbackResultResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/migration/rollback [post]
func (h *MigrationHandler) Rollback(c *fiber.Ctx) error {
	out, err := h.engine.Rollback()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PreviewSweep godoc
// @Summary      List everything a sweep would delete
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SweepPreviewResponse
// @Router       /api/migration/sweep [get]
func (h *MigrationHandler) PreviewSweep(c *fiber.Ctx) error {
	out, err := h.engine.PreviewSweep()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sweep godoc
// @Summary      Delete the entire inventory
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SweepResultResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/migration/sweep [post]
func (h *MigrationHandler) Sweep(c *fiber.Ctx) error {
	out, err := h.engine.Sweep()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
