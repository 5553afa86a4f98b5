package services

import (
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"stylefeed/internal/models"
	"stylefeed/internal/repositories"
)

// Scoring weights. The weighting is fixed, so scores are only comparable
// within one feed request where the preference snapshot is shared.
const (
	categoryWeight   = 3.0
	brandWeight      = 2.0
	genderBonus      = 2.0
	popularityWeight = 2.0
)

// PreferenceSnapshot holds the per-request signals derived from a user's
// past interactions. It is recomputed on every feed request and never
// persisted.
type PreferenceSnapshot struct {
	CategoryScores   map[string]int
	BrandScores      map[string]int
	GenderPreference string // empty means no preference
}

// FeedRequest carries the parameters of one feed page request.
type FeedRequest struct {
	UserID     string
	Gender     string
	Categories []string
	Page       int
	Limit      int
}

// FeedPage is one ranked page of the product feed plus pagination metadata.
type FeedPage struct {
	Products      []models.Product `json:"products"`
	CurrentPage   int              `json:"currentPage"`
	TotalPages    int              `json:"totalPages"`
	TotalProducts int64            `json:"totalProducts"`
	Message       string           `json:"message,omitempty"`
}

// FeedService assembles the ranked product feed: it resolves the user's
// exclusion set and preference snapshot, queries candidates, scores one page
// and reorders it.
type FeedService struct {
	products repositories.ProductRepository
	users    repositories.UserRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(products repositories.ProductRepository, users repositories.UserRepository) *FeedService {
	return &FeedService{
		products: products,
		users:    users,
	}
}

// ScoreProduct computes the heuristic score of one candidate against a
// preference snapshot. Pure function: no I/O, no mutation of its inputs.
//
// The discount term is 1 - discountPrice/price, which rewards SMALLER
// discounts (a higher discountPrice/price ratio scores lower). That polarity
// is intentional and must not be flipped.
func ScoreProduct(p *models.Product, prefs PreferenceSnapshot) float64 {
	score := float64(prefs.CategoryScores[p.Category]) * categoryWeight
	score += float64(prefs.BrandScores[p.Brand]) * brandWeight
	if prefs.GenderPreference != "" && p.Gender == prefs.GenderPreference {
		score += genderBonus
	}
	if p.DiscountPrice != nil && p.Price > 0 {
		score += 1 - *p.DiscountPrice/p.Price
	}
	likes := len(p.Likes)
	dislikes := len(p.Dislikes)
	if likes+dislikes > 0 {
		score += float64(likes) / float64(likes+dislikes) * popularityWeight
	}
	return score
}

// AggregatePreferences derives the preference snapshot for a user: category
// and brand counts over liked products, and the dominant gender over all
// products the user liked or disliked. Ties on the gender tally go to the
// first-encountered gender in the store's stable fetch order; a user with no
// interactions gets no preference.
func (s *FeedService) AggregatePreferences(userID string) (PreferenceSnapshot, error) {
	prefs := PreferenceSnapshot{
		CategoryScores: make(map[string]int),
		BrandScores:    make(map[string]int),
	}

	liked, err := s.products.ListLiked(userID, 0, 0)
	if err != nil {
		return prefs, err
	}
	for _, p := range liked {
		if p.Category != "" {
			prefs.CategoryScores[p.Category]++
		}
		if p.Brand != "" {
			prefs.BrandScores[p.Brand]++
		}
	}

	interacted, err := s.products.InteractedBy(userID)
	if err != nil {
		return prefs, err
	}
	genderCounts := make(map[string]int)
	var genderOrder []string
	for _, p := range interacted {
		if _, seen := genderCounts[p.Gender]; !seen {
			genderOrder = append(genderOrder, p.Gender)
		}
		genderCounts[p.Gender]++
	}
	best := 0
	for _, g := range genderOrder {
		if genderCounts[g] > best {
			best = genderCounts[g]
			prefs.GenderPreference = g
		}
	}
	return prefs, nil
}

// ResolveExclusions returns the product IDs hidden from the user's feed:
// everything already liked, disliked, or in the cart, duplicates collapsed.
// Fails with a not-found error when the user does not exist.
func (s *FeedService) ResolveExclusions(userID string) ([]string, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, err
	}
	likedIDs, err := s.products.LikedIDs(userID)
	if err != nil {
		return nil, err
	}
	dislikedIDs, err := s.products.DislikedIDs(userID)
	if err != nil {
		return nil, err
	}
	cartIDs, err := s.users.CartProductIDs(userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var excluded []string
	for _, ids := range [][]string{likedIDs, dislikedIDs, cartIDs} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			excluded = append(excluded, id)
		}
	}
	return excluded, nil
}

// GetFeed assembles one ranked page. Exclusion resolution and preference
// aggregation are independent and run concurrently. Scoring reorders only
// the fetched page, not the full candidate set; global top-K ranking across
// the catalog is a deliberate non-goal.
func (s *FeedService) GetFeed(req FeedRequest) (*FeedPage, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 10
	}

	var (
		excluded []string
		prefs    PreferenceSnapshot
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		excluded, err = s.ResolveExclusions(req.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		prefs, err = s.AggregatePreferences(req.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filter := repositories.ProductFilter{
		Gender:     req.Gender,
		Categories: req.Categories,
		ExcludeIDs: excluded,
	}
	total, err := s.products.Count(filter)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return &FeedPage{
			Products:    []models.Product{},
			CurrentPage: req.Page,
			Message:     "No more products to discover",
		}, nil
	}
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	page, err := s.products.List(filter, (req.Page-1)*req.Limit, req.Limit)
	if err != nil {
		return nil, err
	}
	if len(page) == 0 {
		// Page beyond range: a valid empty page, not an error.
		return &FeedPage{
			Products:      []models.Product{},
			CurrentPage:   req.Page,
			TotalPages:    totalPages,
			TotalProducts: total,
			Message:       "No more products on this page",
		}, nil
	}

	type scored struct {
		product models.Product
		score   float64
	}
	ranked := make([]scored, len(page))
	for i := range page {
		ranked[i] = scored{product: page[i], score: ScoreProduct(&page[i], prefs)}
	}
	// Stable sort keeps catalog order for ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	products := make([]models.Product, len(ranked))
	for i, r := range ranked {
		products[i] = r.product
	}

	log.Debug().
		Str("user_id", req.UserID).
		Int("page", req.Page).
		Int("candidates", len(products)).
		Int64("total", total).
		Msg("feed page assembled")

	return &FeedPage{
		Products:      products,
		CurrentPage:   req.Page,
		TotalPages:    totalPages,
		TotalProducts: total,
	}, nil
}
