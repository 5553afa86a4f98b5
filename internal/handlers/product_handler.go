package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"stylefeed/internal/middleware"
	"stylefeed/internal/models"
	"stylefeed/internal/services"
)

// ProductHandler handles HTTP requests for the catalog, the ranked feed and
// per-user interactions.
type ProductHandler struct {
	catalog      *services.CatalogService
	feed         *services.FeedService
	interactions *services.InteractionService
	validate     *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *services.CatalogService, feed *services.FeedService, interactions *services.InteractionService) *ProductHandler {
	return &ProductHandler{
		catalog:      catalog,
		feed:         feed,
		interactions: interactions,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the product routes. session guards the routes
// that act on behalf of a user; fixed paths must come before /:id.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, session fiber.Handler) {
	products := router.Group("/products")

	products.Get("/", session, h.HandleFeed)
	products.Post("/", h.HandleCreate)
	products.Get("/filters", h.HandleFilters)
	products.Get("/admin", h.HandleAdminList)
	products.Get("/like/:id", session, h.HandleToggleLike)
	products.Get("/dislike/:id", session, h.HandleToggleDislike)
	products.Get("/user/likes", session, h.HandleLikedProducts)
	products.Get("/user/cart", session, h.HandleCart)
	products.Get("/add-to-cart/:productId", session, h.HandleAddToCart)
	products.Delete("/user/clear-cart", session, h.HandleClearCart)
	products.Delete("/user/clear-likes", session, h.HandleClearLikes)
	products.Get("/:id", h.HandleGetByID)
	products.Put("/:id", h.HandleUpdate)
	products.Delete("/:id", h.HandleDelete)
}

// parseCategories splits a comma-separated category query value.
func parseCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	categories := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			categories = append(categories, p)
		}
	}
	return categories
}

// HandleFeed returns one ranked, paginated feed page for the session user.
func (h *ProductHandler) HandleFeed(c *fiber.Ctx) error {
	page, err := h.feed.GetFeed(services.FeedRequest{
		UserID:     middleware.UserID(c),
		Gender:     c.Query("gender"),
		Categories: parseCategories(c.Query("category")),
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 10),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleCreate ingests a new catalog product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return respondValidationError(c, err)
	}
	if err := h.catalog.CreateProduct(&product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleFilters returns the distinct category values for the filter UI.
func (h *ProductHandler) HandleFilters(c *fiber.Ctx) error {
	categories, err := h.catalog.FilterCategories(c.Query("gender"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleAdminList returns an unranked catalog page, newest first, without
// per-user exclusion.
func (h *ProductHandler) HandleAdminList(c *fiber.Ctx) error {
	page, err := h.catalog.AdminList(
		c.Query("gender"),
		parseCategories(c.Query("category")),
		c.QueryInt("page", 1),
		c.QueryInt("limit", 5),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleGetByID returns a single product.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.catalog.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleUpdate replaces a product's catalog fields.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")
	if err := h.validate.Struct(product); err != nil {
		return respondValidationError(c, err)
	}
	if err := h.catalog.UpdateProduct(&product); err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDelete deletes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// HandleToggleLike toggles the session user's like on a product.
func (h *ProductHandler) HandleToggleLike(c *fiber.Ctx) error {
	product, liked, err := h.interactions.ToggleLike(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Like status updated",
		"liked":   liked,
		"product": product,
	})
}

// HandleToggleDislike toggles the session user's dislike on a product.
func (h *ProductHandler) HandleToggleDislike(c *fiber.Ctx) error {
	product, disliked, err := h.interactions.ToggleDislike(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Dislike status updated",
		"disliked": disliked,
		"product":  product,
	})
}

// HandleLikedProducts returns one page of the session user's liked products.
func (h *ProductHandler) HandleLikedProducts(c *fiber.Ctx) error {
	page, err := h.interactions.LikedProducts(
		middleware.UserID(c),
		c.QueryInt("page", 1),
		c.QueryInt("limit", 10),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleAddToCart appends a product to the session user's cart.
func (h *ProductHandler) HandleAddToCart(c *fiber.Ctx) error {
	cart, err := h.interactions.AddToCart(middleware.UserID(c), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product added to cart",
		"cart":    cart,
	})
}

// HandleCart returns the session user's cart with product details.
func (h *ProductHandler) HandleCart(c *fiber.Ctx) error {
	cart, err := h.interactions.Cart(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleClearCart empties the session user's cart.
func (h *ProductHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.interactions.ClearCart(middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared successfully"})
}

// HandleClearLikes removes the session user from every product's like set.
func (h *ProductHandler) HandleClearLikes(c *fiber.Ctx) error {
	if err := h.interactions.ClearLikes(middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User likes cleared successfully"})
}
