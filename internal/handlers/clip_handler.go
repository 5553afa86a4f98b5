package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"stylefeed/internal/models"
	"stylefeed/internal/services"
)

// ClipHandler handles HTTP requests for the clips feed.
type ClipHandler struct {
	content  *services.ContentService
	validate *validator.Validate
}

// NewClipHandler creates a new ClipHandler.
func NewClipHandler(content *services.ContentService) *ClipHandler {
	return &ClipHandler{
		content:  content,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the clips routes.
func (h *ClipHandler) RegisterRoutes(router fiber.Router) {
	clips := router.Group("/clips")
	clips.Get("/", h.HandleList)
	clips.Post("/", h.HandleCreate)
	clips.Delete("/:id", h.HandleDelete)
}

// HandleList returns one page of clips.
func (h *ClipHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.content.ListClips(c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleCreate adds a new clip.
func (h *ClipHandler) HandleCreate(c *fiber.Ctx) error {
	var clip models.Clip
	if err := c.BodyParser(&clip); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(clip); err != nil {
		return respondValidationError(c, err)
	}
	if err := h.content.CreateClip(&clip); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(clip)
}

// HandleDelete deletes a clip.
func (h *ClipHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.content.DeleteClip(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Clip deleted successfully"})
}
