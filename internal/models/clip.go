package models

import "gorm.io/gorm"

// Clip is one short-video entry in the clips feed.
type Clip struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	VideoURL    string `json:"videoURL" validate:"required,url"`
	Description string `json:"description" validate:"required,max=2000"`
	AccountURL  string `json:"accountURL" validate:"required,url"`
	ProductURL  string `json:"productURL,omitempty" validate:"omitempty,url"`
	gorm.Model  // CreatedAt, UpdatedAt, DeletedAt
}
