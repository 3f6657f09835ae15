package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/application/usecase"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
)

// ItemHandler handles the inventory item routes.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler builds the handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Create an inventory item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Item details"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get an item by id
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "Item id"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List and search items
// @Tags         items
// @Produce      json
// @Param        search     query  string  false  "Free-text filter"
// @Param        owner      query  string  false  "Owner term slug"
// @Param        condition  query  string  false  "Condition term slug"
// @Param        location   query  string  false  "Location term slug"
// @Param        limit      query  int     false  "Limit"
// @Param        offset     query  int     false  "Offset"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var in dto.SearchItemsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query parameters"})
	}
	out, err := h.uc.Search(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Lookup godoc
// @Summary      Resolve a QR payload to its item
// @Tags         items
// @Produce      json
// @Param        object  query  string  true  "Item name from the QR code"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lookup [get]
func (h *ItemHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.Lookup(c.Query("object"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no item with that name"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update an item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Item id"
// @Param        body  body  dto.UpdateItemRequest  true  "Fields to change"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete an item with its photos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Item id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "item deleted"})
}

// AddPhotos godoc
// @Summary      Attach photos to an item
// @Tags         items
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id      path      string  true  "Item id"
// @Param        photos  formData  file    true  "Image files"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/photos [post]
func (h *ItemHandler) AddPhotos(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "multipart form required"})
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "at least one photo is required"})
	}
	uploads := make([]usecase.PhotoUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "unreadable upload"})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "unreadable upload"})
		}
		uploads = append(uploads, usecase.PhotoUpload{Filename: fh.Filename, Data: data})
	}
	out, err := h.uc.AddPhotos(c.Params("id"), uploads)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found"})
	}
	return c.JSON(out)
}

// ListTerms godoc
// @Summary      List the terms of a taxonomy
// @Tags         taxonomies
// @Produce      json
// @Param        taxonomy  path  string  true  "owner | condition | location"
// @Success      200  {array}   dto.TermResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/taxonomies/{taxonomy}/terms [get]
func (h *ItemHandler) ListTerms(c *fiber.Ctx) error {
	out, err := h.uc.ListTerms(entity.Taxonomy(c.Params("taxonomy")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
