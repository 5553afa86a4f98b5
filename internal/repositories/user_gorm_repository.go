package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stylefeed/internal/apperr"
	"stylefeed/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return apperr.Store("create user", err)
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user with ID %s", id)
		}
		return nil, apperr.Store("get user by ID", err)
	}
	return &user, nil
}

// GetByPhone retrieves a user by their phone number from the database.
func (r *GORMUserRepository) GetByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user with phone %s", phone)
		}
		return nil, apperr.Store("get user by phone", err)
	}
	return &user, nil
}

// Save persists changes to an existing user (OTP fields, verified flag).
func (r *GORMUserRepository) Save(user *models.User) error {
	res := r.db.Omit("Cart").Save(user)
	if res.Error != nil {
		return apperr.Store("save user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user with ID %s", user.ID)
	}
	return nil
}

// AddCartItem appends a product reference to the cart. The existence check
// and insert run in one transaction; the composite primary key backstops
// concurrent duplicates.
func (r *GORMUserRepository) AddCartItem(userID, productID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("product %s already in cart", productID)
		}
		return tx.Create(&models.CartItem{UserID: userID, ProductID: productID}).Error
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return err
		}
		return apperr.Store("add cart item", err)
	}
	return nil
}

// CartItems returns the cart in insertion order with product details.
func (r *GORMUserRepository) CartItems(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Store("list cart items", err)
	}
	return items, nil
}

// CartProductIDs returns the product IDs currently in the user's cart.
func (r *GORMUserRepository) CartProductIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Pluck("product_id", &ids).Error
	if err != nil {
		return nil, apperr.Store("cart product IDs", err)
	}
	return ids, nil
}

// ClearCart empties the user's cart regardless of prior state.
func (r *GORMUserRepository) ClearCart(userID string) error {
	err := r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	if err != nil {
		return apperr.Store("clear cart", err)
	}
	return nil
}
