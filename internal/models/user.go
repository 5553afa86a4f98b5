package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an app user. Users are created on the first OTP request
// for a phone number. The verification code is stored as a bcrypt hash,
// never in plaintext.
type User struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Phone              string     `json:"phone" gorm:"uniqueIndex;type:varchar(20)" validate:"required,min=7,max=16"`
	Username           string     `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	VerificationCode   string     `json:"-" gorm:"type:varchar(255)"`
	VerificationSentAt *time.Time `json:"-"`
	PhoneVerified      bool       `json:"phoneVerified"`
	Cart               []CartItem `json:"cart" gorm:"constraint:OnDelete:CASCADE"`
	gorm.Model         // CreatedAt, UpdatedAt, DeletedAt
}

// CartItem is one product reference in a user's cart. The composite primary
// key guarantees a product appears at most once per cart; insertion order is
// preserved through CreatedAt.
type CartItem struct {
	UserID    string    `json:"-" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"productId" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"-"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
