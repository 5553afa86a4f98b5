package repositories

import "stylefeed/internal/models"

// ClipRepository defines the interface for clips feed data access.
type ClipRepository interface {
	Create(clip *models.Clip) error
	List(offset, limit int) ([]models.Clip, error)
	Count() (int64, error)
	Delete(id string) error
}

// NewsRepository defines the interface for fashion news data access.
type NewsRepository interface {
	Create(article *models.NewsArticle) error
	GetByID(id string) (*models.NewsArticle, error)
	GetAll() ([]models.NewsArticle, error)
	Update(article *models.NewsArticle) error
	Delete(id string) error
}
