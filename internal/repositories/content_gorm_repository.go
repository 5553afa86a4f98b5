package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stylefeed/internal/apperr"
	"stylefeed/internal/models"
)

// GORMClipRepository is a GORM implementation of ClipRepository.
type GORMClipRepository struct {
	db *gorm.DB
}

// NewGORMClipRepository creates a new instance of GORMClipRepository.
func NewGORMClipRepository(db *gorm.DB) *GORMClipRepository {
	return &GORMClipRepository{
		db: db,
	}
}

// Create creates a new clip in the database.
func (r *GORMClipRepository) Create(clip *models.Clip) error {
	if clip.ID == "" {
		clip.ID = uuid.New().String()
	}
	if err := r.db.Create(clip).Error; err != nil {
		return apperr.Store("create clip", err)
	}
	return nil
}

// List retrieves one page of clips, oldest first.
func (r *GORMClipRepository) List(offset, limit int) ([]models.Clip, error) {
	var clips []models.Clip
	err := r.db.Order("created_at ASC").Offset(offset).Limit(limit).Find(&clips).Error
	if err != nil {
		return nil, apperr.Store("list clips", err)
	}
	return clips, nil
}

// Count returns the total number of clips.
func (r *GORMClipRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Clip{}).Count(&total).Error; err != nil {
		return 0, apperr.Store("count clips", err)
	}
	return total, nil
}

// Delete deletes a clip by its ID.
func (r *GORMClipRepository) Delete(id string) error {
	res := r.db.Delete(&models.Clip{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Store("delete clip", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("clip with ID %s", id)
	}
	return nil
}

// GORMNewsRepository is a GORM implementation of NewsRepository.
type GORMNewsRepository struct {
	db *gorm.DB
}

// NewGORMNewsRepository creates a new instance of GORMNewsRepository.
func NewGORMNewsRepository(db *gorm.DB) *GORMNewsRepository {
	return &GORMNewsRepository{
		db: db,
	}
}

// Create creates a new article. PublicationDate defaults to now.
func (r *GORMNewsRepository) Create(article *models.NewsArticle) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	if article.PublicationDate.IsZero() {
		article.PublicationDate = time.Now()
	}
	if err := r.db.Create(article).Error; err != nil {
		return apperr.Store("create article", err)
	}
	return nil
}

// GetByID retrieves a single article by its ID.
func (r *GORMNewsRepository) GetByID(id string) (*models.NewsArticle, error) {
	var article models.NewsArticle
	if err := r.db.First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("article with ID %s", id)
		}
		return nil, apperr.Store("get article by ID", err)
	}
	return &article, nil
}

// GetAll retrieves all articles, newest publication first.
func (r *GORMNewsRepository) GetAll() ([]models.NewsArticle, error) {
	var articles []models.NewsArticle
	if err := r.db.Order("publication_date DESC").Find(&articles).Error; err != nil {
		return nil, apperr.Store("list articles", err)
	}
	return articles, nil
}

// Update updates an existing article.
func (r *GORMNewsRepository) Update(article *models.NewsArticle) error {
	res := r.db.Save(article)
	if res.Error != nil {
		return apperr.Store("update article", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("article with ID %s", article.ID)
	}
	return nil
}

// Delete deletes an article by its ID.
func (r *GORMNewsRepository) Delete(id string) error {
	res := r.db.Delete(&models.NewsArticle{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Store("delete article", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("article with ID %s", id)
	}
	return nil
}
