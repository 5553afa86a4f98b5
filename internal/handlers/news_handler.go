package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"stylefeed/internal/models"
	"stylefeed/internal/services"
)

// NewsHandler handles HTTP requests for fashion news articles.
type NewsHandler struct {
	content  *services.ContentService
	validate *validator.Validate
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(content *services.ContentService) *NewsHandler {
	return &NewsHandler{
		content:  content,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the news routes.
func (h *NewsHandler) RegisterRoutes(router fiber.Router) {
	news := router.Group("/news")
	news.Post("/", h.HandleCreate)
	news.Get("/", h.HandleList)
	news.Get("/:id", h.HandleGetByID)
	news.Put("/:id", h.HandleUpdate)
	news.Delete("/:id", h.HandleDelete)
}

// HandleCreate adds a new article.
func (h *NewsHandler) HandleCreate(c *fiber.Ctx) error {
	var article models.NewsArticle
	if err := c.BodyParser(&article); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(article); err != nil {
		return respondValidationError(c, err)
	}
	if err := h.content.CreateArticle(&article); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// HandleList returns all articles, newest publication first.
func (h *NewsHandler) HandleList(c *fiber.Ctx) error {
	articles, err := h.content.GetArticles()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articles)
}

// HandleGetByID returns a single article.
func (h *NewsHandler) HandleGetByID(c *fiber.Ctx) error {
	article, err := h.content.GetArticleByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// HandleUpdate updates an existing article.
func (h *NewsHandler) HandleUpdate(c *fiber.Ctx) error {
	article, err := h.content.GetArticleByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var update models.NewsArticle
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	article.Title = update.Title
	article.Description = update.Description
	article.Image = update.Image
	article.URL = update.URL
	if !update.PublicationDate.IsZero() {
		article.PublicationDate = update.PublicationDate
	}
	if err := h.validate.Struct(article); err != nil {
		return respondValidationError(c, err)
	}
	if err := h.content.UpdateArticle(article); err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// HandleDelete deletes an article.
func (h *NewsHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.content.DeleteArticle(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
