package models

import (
	"time"

	"gorm.io/gorm"
)

// NewsArticle is one fashion news entry.
type NewsArticle struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title           string    `json:"title" validate:"required,max=300"`
	Description     string    `json:"description" validate:"required"`
	Image           string    `json:"image" validate:"required,url"`
	PublicationDate time.Time `json:"publicationDate"`
	URL             string    `json:"url,omitempty" validate:"omitempty,url"`
	gorm.Model      // CreatedAt, UpdatedAt, DeletedAt
}
