package repositories

import (
	"stylefeed/internal/models"
)

// ProductFilter narrows catalog scans. Zero values mean "no constraint".
type ProductFilter struct {
	Gender      string
	Categories  []string
	ExcludeIDs  []string
	NewestFirst bool
}

// ProductRepository defines the interface for product data access.
// Toggle operations run inside a single transaction so that a user ID ends
// up in at most one of likes/dislikes for a product, matching the atomic
// single-document updates the data model relies on.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	Update(product *models.Product) error
	Delete(id string) error

	List(filter ProductFilter, offset, limit int) ([]models.Product, error)
	Count(filter ProductFilter) (int64, error)
	DistinctCategories(gender string) ([]string, error)

	// ListLiked returns products the user liked, oldest first. limit <= 0
	// returns all of them.
	ListLiked(userID string, offset, limit int) ([]models.Product, error)
	CountLiked(userID string) (int64, error)
	// InteractedBy returns products the user liked or disliked, oldest
	// first. Used for the gender-preference tally.
	InteractedBy(userID string) ([]models.Product, error)
	LikedIDs(userID string) ([]string, error)
	DislikedIDs(userID string) ([]string, error)

	// ToggleLike flips like membership for (productID, userID) and removes
	// any dislike in the same transaction. Reports whether the user likes
	// the product after the call.
	ToggleLike(productID, userID string) (bool, error)
	// ToggleDislike is the symmetric operation on the dislike set.
	ToggleDislike(productID, userID string) (bool, error)
	// ClearLikes removes the user from every product's like set.
	ClearLikes(userID string) error
}
