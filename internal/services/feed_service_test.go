package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stylefeed/internal/apperr"
	"stylefeed/internal/models"
	"stylefeed/internal/repositories"
	"stylefeed/internal/services"
)

func floatPtr(v float64) *float64 { return &v }

func likesBy(users ...string) []models.ProductLike {
	likes := make([]models.ProductLike, len(users))
	for i, u := range users {
		likes[i] = models.ProductLike{UserID: u}
	}
	return likes
}

func TestScoreProduct_WorkedScenario(t *testing.T) {
	// Category "Tops" counted twice, brand "Zara" once, gender matches,
	// price 100 with discountPrice 80, 2 likes and 0 dislikes:
	// 2*3 + 1*2 + 2 + (1 - 80/100) + (2/2)*2 = 12.2
	product := &models.Product{
		Category:      "Tops",
		Brand:         "Zara",
		Gender:        models.GenderFemale,
		Price:         100,
		DiscountPrice: floatPtr(80),
		Likes:         likesBy("u1", "u2"),
	}
	prefs := services.PreferenceSnapshot{
		CategoryScores:   map[string]int{"Tops": 2},
		BrandScores:      map[string]int{"Zara": 1},
		GenderPreference: models.GenderFemale,
	}

	assert.InDelta(t, 12.2, services.ScoreProduct(product, prefs), 1e-9)
}

func TestScoreProduct_DeterministicAndPure(t *testing.T) {
	product := &models.Product{
		Category:      "Bottoms",
		Brand:         "Levi's",
		Gender:        models.GenderMale,
		Price:         50,
		DiscountPrice: floatPtr(40),
		Likes:         likesBy("u1"),
		Dislikes:      []models.ProductDislike{{UserID: "u2"}, {UserID: "u3"}},
	}
	prefs := services.PreferenceSnapshot{
		CategoryScores:   map[string]int{"Bottoms": 1},
		BrandScores:      map[string]int{"Levi's": 4},
		GenderPreference: models.GenderMale,
	}

	first := services.ScoreProduct(product, prefs)
	second := services.ScoreProduct(product, prefs)
	assert.Equal(t, first, second)

	// Inputs must not be mutated: absent keys stay absent.
	assert.Len(t, prefs.CategoryScores, 1)
	assert.Len(t, prefs.BrandScores, 1)
	assert.Equal(t, "Bottoms", product.Category)
}

func TestScoreProduct_NoPreferenceContributesZero(t *testing.T) {
	product := &models.Product{
		Category: "Tops",
		Brand:    "Zara",
		Gender:   models.GenderFemale,
		Price:    100,
	}
	prefs := services.PreferenceSnapshot{
		CategoryScores: map[string]int{},
		BrandScores:    map[string]int{},
	}

	// No preferences, no discount, no interactions: score is zero.
	assert.Zero(t, services.ScoreProduct(product, prefs))
}

func TestScoreProduct_SmallerDiscountScoresHigher(t *testing.T) {
	prefs := services.PreferenceSnapshot{
		CategoryScores: map[string]int{},
		BrandScores:    map[string]int{},
	}
	smallDiscount := &models.Product{Price: 100, DiscountPrice: floatPtr(95)}
	bigDiscount := &models.Product{Price: 100, DiscountPrice: floatPtr(50)}

	// The discount term rewards smaller discounts. This polarity is
	// intentional.
	assert.Less(t,
		services.ScoreProduct(smallDiscount, prefs),
		services.ScoreProduct(bigDiscount, prefs))
}

func TestAggregatePreferences(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewFeedService(mockProducts, mockUsers)

	liked := []models.Product{
		{Category: "Tops", Brand: "Zara", Gender: models.GenderFemale},
		{Category: "Tops", Brand: "Nike", Gender: models.GenderFemale},
		{Category: "Dresses", Brand: "Zara", Gender: models.GenderFemale},
	}
	interacted := append(liked, models.Product{Category: "Bottoms", Brand: "Puma", Gender: models.GenderMale})

	mockProducts.On("ListLiked", "u1", 0, 0).Return(liked, nil).Once()
	mockProducts.On("InteractedBy", "u1").Return(interacted, nil).Once()

	prefs, err := service.AggregatePreferences("u1")

	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"Tops": 2, "Dresses": 1}, prefs.CategoryScores)
	assert.Equal(t, map[string]int{"Zara": 2, "Nike": 1}, prefs.BrandScores)
	assert.Equal(t, models.GenderFemale, prefs.GenderPreference)
	mockProducts.AssertExpectations(t)
}

func TestAggregatePreferences_GenderTieKeepsFirstEncountered(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewFeedService(mockProducts, mockUsers)

	interacted := []models.Product{
		{Gender: models.GenderMale},
		{Gender: models.GenderFemale},
		{Gender: models.GenderFemale},
		{Gender: models.GenderMale},
	}
	mockProducts.On("ListLiked", "u1", 0, 0).Return([]models.Product{}, nil).Once()
	mockProducts.On("InteractedBy", "u1").Return(interacted, nil).Once()

	prefs, err := service.AggregatePreferences("u1")

	assert.NoError(t, err)
	assert.Equal(t, models.GenderMale, prefs.GenderPreference)
}

func TestAggregatePreferences_NoInteractionsMeansNoPreference(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewFeedService(mockProducts, mockUsers)

	mockProducts.On("ListLiked", "u1", 0, 0).Return([]models.Product{}, nil).Once()
	mockProducts.On("InteractedBy", "u1").Return([]models.Product{}, nil).Once()

	prefs, err := service.AggregatePreferences("u1")

	assert.NoError(t, err)
	assert.Empty(t, prefs.GenderPreference)
	assert.Empty(t, prefs.CategoryScores)
	assert.Empty(t, prefs.BrandScores)
}

func TestResolveExclusions(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewFeedService(mockProducts, mockUsers)

	mockUsers.On("GetByID", "u1").Return(&models.User{ID: "u1"}, nil).Once()
	mockProducts.On("LikedIDs", "u1").Return([]string{"a", "b"}, nil).Once()
	mockProducts.On("DislikedIDs", "u1").Return([]string{"b", "c"}, nil).Once()
	mockUsers.On("CartProductIDs", "u1").Return([]string{"c", "d"}, nil).Once()

	excluded, err := service.ResolveExclusions("u1")

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, excluded)
	mockProducts.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestResolveExclusions_UnknownUser(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewFeedService(mockProducts, mockUsers)

	mockUsers.On("GetByID", "ghost").Return(nil, apperr.NotFound("user with ID ghost")).Once()

	_, err := service.ResolveExclusions("ghost")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	mockProducts.AssertNotCalled(t, "LikedIDs", mock.Anything)
}

// feedMocks wires the repository calls GetFeed always makes.
func feedMocks(mockProducts *MockProductRepository, mockUsers *MockUserRepository, liked []models.Product, excluded []string) {
	mockUsers.On("GetByID", "u1").Return(&models.User{ID: "u1"}, nil)
	mockProducts.On("LikedIDs", "u1").Return(excluded, nil)
	mockProducts.On("DislikedIDs", "u1").Return([]string{}, nil)
	mockUsers.On("CartProductIDs", "u1").Return([]string{}, nil)
	mockProducts.On("ListLiked", "u1", 0, 0).Return(liked, nil)
	mockProducts.On("InteractedBy", "u1").Return(liked, nil)
}

func TestGetFeed_RanksPageByScore(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewFeedService(mockProducts, mockUsers)

	liked := []models.Product{{Category: "Tops", Brand: "Zara", Gender: models.GenderFemale}}
	feedMocks(mockProducts, mockUsers, liked, []string{"seen-1"})

	page := []models.Product{
		{ID: "low", Category: "Bottoms", Brand: "Puma", Gender: models.GenderMale, Price: 10},
		{ID: "high", Category: "Tops", Brand: "Zara", Gender: models.GenderFemale, Price: 10},
		{ID: "mid", Category: "Tops", Brand: "Puma", Gender: models.GenderMale, Price: 10},
	}
	matchExclusion := mock.MatchedBy(func(f repositories.ProductFilter) bool {
		return len(f.ExcludeIDs) == 1 && f.ExcludeIDs[0] == "seen-1"
	})
	mockProducts.On("Count", matchExclusion).Return(int64(3), nil).Once()
	mockProducts.On("List", matchExclusion, 0, 10).Return(page, nil).Once()

	result, err := service.GetFeed(services.FeedRequest{UserID: "u1", Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, int64(3), result.TotalProducts)
	ids := []string{result.Products[0].ID, result.Products[1].ID, result.Products[2].ID}
	assert.Equal(t, []string{"high", "mid", "low"}, ids)
	mockProducts.AssertExpectations(t)
}

func TestGetFeed_StableOrderForTies(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewFeedService(mockProducts, mockUsers)

	feedMocks(mockProducts, mockUsers, []models.Product{}, []string{})

	// Identical scores: catalog order must be preserved.
	page := []models.Product{
		{ID: "first", Price: 10},
		{ID: "second", Price: 10},
		{ID: "third", Price: 10},
	}
	mockProducts.On("Count", mock.Anything).Return(int64(3), nil).Once()
	mockProducts.On("List", mock.Anything, 0, 10).Return(page, nil).Once()

	result, err := service.GetFeed(services.FeedRequest{UserID: "u1", Page: 1, Limit: 10})

	assert.NoError(t, err)
	ids := []string{result.Products[0].ID, result.Products[1].ID, result.Products[2].ID}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestGetFeed_NoCandidates(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewFeedService(mockProducts, mockUsers)

	feedMocks(mockProducts, mockUsers, []models.Product{}, []string{})
	mockProducts.On("Count", mock.Anything).Return(int64(0), nil).Once()

	result, err := service.GetFeed(services.FeedRequest{UserID: "u1", Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Zero(t, result.TotalPages)
	assert.NotEmpty(t, result.Message)
	mockProducts.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetFeed_PageBeyondRange(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewFeedService(mockProducts, mockUsers)

	feedMocks(mockProducts, mockUsers, []models.Product{}, []string{})

	// 15 candidates with limit 10: totalPages is 2, page 3 is empty but valid.
	mockProducts.On("Count", mock.Anything).Return(int64(15), nil).Once()
	mockProducts.On("List", mock.Anything, 20, 10).Return([]models.Product{}, nil).Once()

	result, err := service.GetFeed(services.FeedRequest{UserID: "u1", Page: 3, Limit: 10})

	assert.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Equal(t, 3, result.CurrentPage)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, int64(15), result.TotalProducts)
	assert.NotEmpty(t, result.Message)
}

func TestGetFeed_AppliesGenderAndCategoryFilters(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewFeedService(mockProducts, mockUsers)

	feedMocks(mockProducts, mockUsers, []models.Product{}, []string{})

	matchFilter := mock.MatchedBy(func(f repositories.ProductFilter) bool {
		return f.Gender == models.GenderFemale &&
			len(f.Categories) == 2 &&
			f.Categories[0] == "Tops" && f.Categories[1] == "Dresses"
	})
	mockProducts.On("Count", matchFilter).Return(int64(1), nil).Once()
	mockProducts.On("List", matchFilter, 0, 10).Return([]models.Product{{ID: "p1", Price: 10}}, nil).Once()

	result, err := service.GetFeed(services.FeedRequest{
		UserID:     "u1",
		Gender:     models.GenderFemale,
		Categories: []string{"Tops", "Dresses"},
		Page:       1,
		Limit:      10,
	})

	assert.NoError(t, err)
	assert.Len(t, result.Products, 1)
	mockProducts.AssertExpectations(t)
}
