package services

import (
	"github.com/rs/zerolog/log"

	"stylefeed/internal/models"
	"stylefeed/internal/repositories"
)

// InteractionService handles like/dislike toggles and cart mutations. The
// toggles delegate their mutual-exclusion guarantee to the repository's
// transactional primitives.
type InteractionService struct {
	products repositories.ProductRepository
	users    repositories.UserRepository
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(products repositories.ProductRepository, users repositories.UserRepository) *InteractionService {
	return &InteractionService{
		products: products,
		users:    users,
	}
}

// ToggleLike flips the user's like on a product. Reports the updated
// product and whether the user likes it after the call.
func (s *InteractionService) ToggleLike(userID, productID string) (*models.Product, bool, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, false, err
	}
	liked, err := s.products.ToggleLike(productID, userID)
	if err != nil {
		return nil, false, err
	}
	log.Debug().Str("user_id", userID).Str("product_id", productID).Bool("liked", liked).Msg("like toggled")
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, liked, err
	}
	return product, liked, nil
}

// ToggleDislike flips the user's dislike on a product.
func (s *InteractionService) ToggleDislike(userID, productID string) (*models.Product, bool, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, false, err
	}
	disliked, err := s.products.ToggleDislike(productID, userID)
	if err != nil {
		return nil, false, err
	}
	log.Debug().Str("user_id", userID).Str("product_id", productID).Bool("disliked", disliked).Msg("dislike toggled")
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, disliked, err
	}
	return product, disliked, nil
}

// LikedProducts returns one page of the user's liked products. An empty
// result is a normal outcome, not an error.
func (s *InteractionService) LikedProducts(userID string, page, limit int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	total, err := s.products.CountLiked(userID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return &FeedPage{
			Products:    []models.Product{},
			CurrentPage: page,
			Message:     "No liked products yet",
		}, nil
	}
	products, err := s.products.ListLiked(userID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return &FeedPage{
		Products:      products,
		CurrentPage:   page,
		TotalPages:    int((total + int64(limit) - 1) / int64(limit)),
		TotalProducts: total,
	}, nil
}

// AddToCart appends a product to the user's cart. Fails with a conflict if
// the product is already present, and not-found if either side is missing.
func (s *InteractionService) AddToCart(userID, productID string) ([]models.CartItem, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, err
	}
	if err := s.users.AddCartItem(userID, productID); err != nil {
		return nil, err
	}
	return s.users.CartItems(userID)
}

// Cart returns the user's cart with product details populated.
func (s *InteractionService) Cart(userID string) ([]models.CartItem, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, err
	}
	items, err := s.users.CartItems(userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// ClearCart empties the user's cart regardless of prior state.
func (s *InteractionService) ClearCart(userID string) error {
	if _, err := s.users.GetByID(userID); err != nil {
		return err
	}
	return s.users.ClearCart(userID)
}

// ClearLikes removes the user from every product's like set catalog-wide.
func (s *InteractionService) ClearLikes(userID string) error {
	if _, err := s.users.GetByID(userID); err != nil {
		return err
	}
	return s.products.ClearLikes(userID)
}
