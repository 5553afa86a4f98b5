package models

import (
	"time"

	"gorm.io/gorm"
)

// Gender values a product can carry. A user's derived gender preference is
// one of these, or empty when the user has no interactions yet.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Product represents a catalog item. Like/dislike membership is stored on
// the product side only (join tables) and is never duplicated onto User;
// "products liked by user X" is always a query.
type Product struct {
	ID                 string           `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name               string           `json:"name" validate:"required,min=2,max=200"`
	Description        string           `json:"description" validate:"required,max=2000"`
	Price              float64          `json:"price" validate:"required,gt=0"`
	DiscountPrice      *float64         `json:"discountPrice,omitempty" validate:"omitempty,gt=0,ltefield=Price"`
	Images             string           `json:"images" validate:"required,url"`
	Category           string           `json:"category" validate:"omitempty,max=100"`
	Brand              string           `json:"brand" validate:"omitempty,max=100"`
	Gender             string           `json:"gender" validate:"required,oneof=male female"`
	ProductWebsiteLink string           `json:"productWebsiteLink,omitempty" validate:"omitempty,url"`
	Likes              []ProductLike    `json:"likes" gorm:"constraint:OnDelete:CASCADE"`
	Dislikes           []ProductDislike `json:"dislikes" gorm:"constraint:OnDelete:CASCADE"`
	gorm.Model         // CreatedAt, UpdatedAt, DeletedAt
}

// ProductLike records that a user liked a product. The composite primary key
// makes duplicate likes impossible at the store level.
type ProductLike struct {
	ProductID string    `json:"-" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"-"`
}

// ProductDislike records that a user disliked a product. A user ID must never
// be present in both ProductLike and ProductDislike for the same product;
// the toggle transaction in the repository enforces this.
type ProductDislike struct {
	ProductID string    `json:"-" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"-"`
}
