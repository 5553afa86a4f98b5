package services

import (
	"stylefeed/internal/models"
	"stylefeed/internal/repositories"
)

// ClipPage is one page of the clips feed.
type ClipPage struct {
	Reels       []models.Clip `json:"reels"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
}

// ContentService handles the clips feed and fashion news CRUD. Both are
// plain passthrough over their repositories.
type ContentService struct {
	clips repositories.ClipRepository
	news  repositories.NewsRepository
}

// NewContentService creates a new ContentService.
func NewContentService(clips repositories.ClipRepository, news repositories.NewsRepository) *ContentService {
	return &ContentService{
		clips: clips,
		news:  news,
	}
}

// ListClips returns one page of clips with pagination metadata.
func (s *ContentService) ListClips(page, limit int) (*ClipPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	clips, err := s.clips.List((page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.clips.Count()
	if err != nil {
		return nil, err
	}
	if clips == nil {
		clips = []models.Clip{}
	}
	return &ClipPage{
		Reels:       clips,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// CreateClip adds a new clip to the feed.
func (s *ContentService) CreateClip(clip *models.Clip) error {
	return s.clips.Create(clip)
}

// DeleteClip deletes a clip by its ID.
func (s *ContentService) DeleteClip(id string) error {
	return s.clips.Delete(id)
}

// CreateArticle adds a new fashion news article.
func (s *ContentService) CreateArticle(article *models.NewsArticle) error {
	return s.news.Create(article)
}

// GetArticles returns all fashion news articles.
func (s *ContentService) GetArticles() ([]models.NewsArticle, error) {
	articles, err := s.news.GetAll()
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []models.NewsArticle{}
	}
	return articles, nil
}

// GetArticleByID returns a single article.
func (s *ContentService) GetArticleByID(id string) (*models.NewsArticle, error) {
	return s.news.GetByID(id)
}

// UpdateArticle updates an existing article.
func (s *ContentService) UpdateArticle(article *models.NewsArticle) error {
	return s.news.Update(article)
}

// DeleteArticle deletes an article by its ID.
func (s *ContentService) DeleteArticle(id string) error {
	return s.news.Delete(id)
}
