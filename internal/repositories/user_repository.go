package repositories

import "stylefeed/internal/models"

// UserRepository defines the interface for user data access, including the
// embedded cart. Cart mutations are transactional so concurrent adds cannot
// create duplicate entries.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	Save(user *models.User) error

	// AddCartItem appends a product reference to the user's cart. Returns
	// apperr.ErrConflict if the product is already present.
	AddCartItem(userID, productID string) error
	// CartItems returns the cart in insertion order with product details
	// populated.
	CartItems(userID string) ([]models.CartItem, error)
	CartProductIDs(userID string) ([]string, error)
	// ClearCart unconditionally empties the cart.
	ClearCart(userID string) error
}
