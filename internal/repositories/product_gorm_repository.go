package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stylefeed/internal/apperr"
	"stylefeed/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return apperr.Store("create product", err)
	}
	return nil
}

// GetByID retrieves a single product with its like/dislike sets.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Likes").Preload("Dislikes").First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product with ID %s", id)
		}
		return nil, apperr.Store("get product by ID", err)
	}
	return &product, nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Omit("Likes", "Dislikes").Save(product)
	if res.Error != nil {
		return apperr.Store("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for a missing row, so we
		// check RowsAffected.
		return apperr.NotFound("product with ID %s", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Store("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product with ID %s", id)
	}
	return nil
}

// applyFilter translates a ProductFilter into WHERE clauses.
func applyFilter(q *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if len(filter.Categories) > 0 {
		q = q.Where("category IN ?", filter.Categories)
	}
	if len(filter.ExcludeIDs) > 0 {
		q = q.Where("id NOT IN ?", filter.ExcludeIDs)
	}
	return q
}

// List retrieves one page of products matching the filter, with like/dislike
// sets loaded for scoring. Default order is oldest first so pagination is
// stable across requests.
func (r *GORMProductRepository) List(filter ProductFilter, offset, limit int) ([]models.Product, error) {
	var products []models.Product
	order := "created_at ASC"
	if filter.NewestFirst {
		order = "created_at DESC"
	}
	q := applyFilter(r.db.Model(&models.Product{}), filter).
		Preload("Likes").Preload("Dislikes").
		Order(order).Offset(offset).Limit(limit)
	if err := q.Find(&products).Error; err != nil {
		return nil, apperr.Store("list products", err)
	}
	return products, nil
}

// Count returns how many products match the filter.
func (r *GORMProductRepository) Count(filter ProductFilter) (int64, error) {
	var total int64
	if err := applyFilter(r.db.Model(&models.Product{}), filter).Count(&total).Error; err != nil {
		return 0, apperr.Store("count products", err)
	}
	return total, nil
}

// DistinctCategories returns the distinct category values in the catalog,
// optionally restricted to one gender.
func (r *GORMProductRepository) DistinctCategories(gender string) ([]string, error) {
	var categories []string
	q := r.db.Model(&models.Product{}).Where("category <> ''")
	if gender != "" {
		q = q.Where("gender = ?", gender)
	}
	if err := q.Distinct().Order("category").Pluck("category", &categories).Error; err != nil {
		return nil, apperr.Store("distinct categories", err)
	}
	return categories, nil
}

// ListLiked returns products liked by the user, oldest first.
func (r *GORMProductRepository) ListLiked(userID string, offset, limit int) ([]models.Product, error) {
	var products []models.Product
	q := r.db.Model(&models.Product{}).
		Joins("JOIN product_likes ON product_likes.product_id = products.id").
		Where("product_likes.user_id = ?", userID).
		Preload("Likes").Preload("Dislikes").
		Order("products.created_at ASC").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, apperr.Store("list liked products", err)
	}
	return products, nil
}

// CountLiked returns how many products the user has liked.
func (r *GORMProductRepository) CountLiked(userID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.ProductLike{}).Where("user_id = ?", userID).Count(&total).Error
	if err != nil {
		return 0, apperr.Store("count liked products", err)
	}
	return total, nil
}

// InteractedBy returns products the user has liked or disliked, oldest
// first. The stable order makes the gender-preference tie-break
// deterministic for a given store state.
func (r *GORMProductRepository) InteractedBy(userID string) ([]models.Product, error) {
	likedIDs, err := r.LikedIDs(userID)
	if err != nil {
		return nil, err
	}
	dislikedIDs, err := r.DislikedIDs(userID)
	if err != nil {
		return nil, err
	}
	ids := append(likedIDs, dislikedIDs...)
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err = r.db.Where("id IN ?", ids).Order("created_at ASC").Find(&products).Error
	if err != nil {
		return nil, apperr.Store("list interacted products", err)
	}
	return products, nil
}

// LikedIDs returns the IDs of every product the user has liked.
func (r *GORMProductRepository) LikedIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.ProductLike{}).Where("user_id = ?", userID).Pluck("product_id", &ids).Error
	if err != nil {
		return nil, apperr.Store("liked product IDs", err)
	}
	return ids, nil
}

// DislikedIDs returns the IDs of every product the user has disliked.
func (r *GORMProductRepository) DislikedIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.ProductDislike{}).Where("user_id = ?", userID).Pluck("product_id", &ids).Error
	if err != nil {
		return nil, apperr.Store("disliked product IDs", err)
	}
	return ids, nil
}

// ToggleLike flips like membership inside one transaction. If the like
// existed it is removed; otherwise it is created and any dislike by the same
// user is removed, so the user never ends up in both sets.
func (r *GORMProductRepository) ToggleLike(productID, userID string) (bool, error) {
	liked := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("product_id = ? AND user_id = ?", productID, userID).
			Delete(&models.ProductLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil // un-like
		}
		if err := tx.Where("product_id = ? AND user_id = ?", productID, userID).
			Delete(&models.ProductDislike{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.ProductLike{ProductID: productID, UserID: userID}).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, apperr.Store("toggle like", err)
	}
	return liked, nil
}

// ToggleDislike is the symmetric toggle on the dislike set.
func (r *GORMProductRepository) ToggleDislike(productID, userID string) (bool, error) {
	disliked := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("product_id = ? AND user_id = ?", productID, userID).
			Delete(&models.ProductDislike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil // un-dislike
		}
		if err := tx.Where("product_id = ? AND user_id = ?", productID, userID).
			Delete(&models.ProductLike{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.ProductDislike{ProductID: productID, UserID: userID}).Error; err != nil {
			return err
		}
		disliked = true
		return nil
	})
	if err != nil {
		return false, apperr.Store("toggle dislike", err)
	}
	return disliked, nil
}

// ClearLikes removes the user from every product's like set.
func (r *GORMProductRepository) ClearLikes(userID string) error {
	err := r.db.Where("user_id = ?", userID).Delete(&models.ProductLike{}).Error
	if err != nil {
		return apperr.Store("clear likes", err)
	}
	return nil
}
