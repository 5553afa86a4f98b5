package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"stylefeed/internal/models"
	"stylefeed/internal/repositories"
)

const filterCacheTTL = 5 * time.Minute

// CatalogService handles admin-facing catalog CRUD, the unranked admin
// listing, and the distinct filter values for the client filter UI.
type CatalogService struct {
	products repositories.ProductRepository
	cache    *redis.Client // nil disables caching
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(products repositories.ProductRepository, cache *redis.Client) *CatalogService {
	return &CatalogService{
		products: products,
		cache:    cache,
	}
}

// CreateProduct ingests a new catalog item.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	return s.products.Create(product)
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.products.GetByID(id)
}

// UpdateProduct updates an existing product. Likes and dislikes are not
// touched here; they change only through the interaction toggles.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	return s.products.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id string) error {
	return s.products.Delete(id)
}

// AdminList returns one unranked page of the catalog, newest first, with no
// per-user exclusion. An empty page is a normal outcome.
func (s *CatalogService) AdminList(gender string, categories []string, page, limit int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}
	filter := repositories.ProductFilter{
		Gender:      gender,
		Categories:  categories,
		NewestFirst: true,
	}
	total, err := s.products.Count(filter)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(filter, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	result := &FeedPage{
		Products:      products,
		CurrentPage:   page,
		TotalPages:    int((total + int64(limit) - 1) / int64(limit)),
		TotalProducts: total,
	}
	if len(products) == 0 {
		result.Message = "No products found"
	}
	return result, nil
}

// FilterCategories returns the distinct category values for a gender,
// cached in Redis for a short TTL since the catalog changes rarely.
func (s *CatalogService) FilterCategories(gender string) ([]string, error) {
	cacheKey := "filters:categories:" + gender
	if s.cache != nil {
		cached, err := s.cache.Get(context.Background(), cacheKey).Bytes()
		if err == nil {
			var categories []string
			if err := json.Unmarshal(cached, &categories); err == nil {
				return categories, nil
			}
		}
	}

	categories, err := s.products.DistinctCategories(gender)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}

	if s.cache != nil {
		payload, err := json.Marshal(categories)
		if err == nil {
			if err := s.cache.Set(context.Background(), cacheKey, payload, filterCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("failed to cache filter categories")
			}
		}
	}
	return categories, nil
}
