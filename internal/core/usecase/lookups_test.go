package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

type countingFacets struct {
	mu     sync.Mutex
	limits map[domain.FacetDimension]int
}

func (c *countingFacets) FacetBy(_ context.Context, dimension domain.FacetDimension, limit int) ([]domain.FacetCount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limits == nil {
		c.limits = make(map[domain.FacetDimension]int)
	}
	c.limits[dimension] = limit
	if dimension == domain.FacetByCity {
		return nil, nil
	}
	return []domain.FacetCount{{Label: string(dimension), Count: 1}}, nil
}

func TestFacetAggregator(t *testing.T) {
	repo := &countingFacets{}
	facets, err := NewFacetAggregator(repo).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[domain.FacetDimension]int{
		domain.FacetByCategory: 20,
		domain.FacetByCity:     20,
		domain.FacetByArea:     30,
	}, repo.limits)
	assert.Equal(t, []domain.FacetCount{{Label: "category", Count: 1}}, facets.Categories)
	assert.Nil(t, facets.Cities)
	assert.Equal(t, []domain.FacetCount{{Label: "area", Count: 1}}, facets.Areas)
}

func TestFacetAggregator_SeedCountsDistinctProfessionals(t *testing.T) {
	facets, err := NewFacetAggregator(seedStore(t)).Aggregate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.FacetCount{
		{Label: "Plumbing", Count: 2},
		{Label: "Cleaning", Count: 1},
		{Label: "Electrical", Count: 1},
		{Label: "Tutoring", Count: 1},
	}, facets.Categories)
	assert.Equal(t, []domain.FacetCount{
		{Label: "Bangalore", Count: 2},
		{Label: "Mumbai", Count: 2},
		{Label: "Chennai", Count: 1},
	}, facets.Cities)
}

func TestFacetAggregator_Error(t *testing.T) {
	facetErr := errors.New("boom")
	_, err := NewFacetAggregator(failingFacets{failOn: domain.FacetByCategory, err: facetErr}).Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, facetErr)
}

func TestGetProfessionalByID(t *testing.T) {
	uc := NewGetProfessionalByIDUseCase(seedStore(t))

	p, err := uc.Execute(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "anita-rao", p.Slug)
	assert.Equal(t, []string{"Whitefield", "Indiranagar"}, p.ServiceAreas)

	for _, id := range []int64{0, -1, 999} {
		_, err := uc.Execute(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrProfessionalNotFound, "id %d", id)
	}
}

func TestGetProfessionalBySlug(t *testing.T) {
	uc := NewGetProfessionalBySlugUseCase(seedStore(t))

	p, err := uc.Execute(context.Background(), " meera-iyer-tutor ")
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)

	for _, slug := range []string{"", "   ", "nobody"} {
		_, err := uc.Execute(context.Background(), slug)
		assert.ErrorIs(t, err, domain.ErrProfessionalNotFound, "slug %q", slug)
	}
}

type stubInfo struct {
	cities []string
	err    error
}

func (s stubInfo) GetByID(context.Context, int64) (*domain.Professional, error) {
	return nil, s.err
}

func (s stubInfo) GetBySlug(context.Context, string) (*domain.Professional, error) {
	return nil, s.err
}

func (s stubInfo) DistinctCities(context.Context) ([]string, error) {
	return s.cities, s.err
}

func TestGetDistinctCities(t *testing.T) {
	cities, err := NewGetDistinctCitiesUseCase(seedStore(t)).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bangalore", "Chennai", "Mumbai"}, cities)

	empty, err := NewGetDistinctCitiesUseCase(stubInfo{}).Execute(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	storeErr := errors.New("db down")
	_, err = NewGetDistinctCitiesUseCase(stubInfo{err: storeErr}).Execute(context.Background())
	assert.ErrorIs(t, err, storeErr)

	_, err = NewGetProfessionalByIDUseCase(stubInfo{err: storeErr}).Execute(context.Background(), 1)
	assert.ErrorIs(t, err, storeErr)
}

func TestGetDictionaries(t *testing.T) {
	uc := NewGetDictionariesUseCase(seedStore(t))
	ctx := context.Background()

	all, err := uc.ListSubcategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 9)

	categories, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cleaning", "Electrical", "Plumbing", "Tutoring"}, categories)

	plumbing, err := uc.ListSubcategoriesByCategory(ctx, " Plumbing ")
	require.NoError(t, err)
	assert.Len(t, plumbing, 3)
	for _, sub := range plumbing {
		assert.Equal(t, "Plumbing", sub.Category)
	}

	blank, err := uc.ListSubcategoriesByCategory(ctx, "  ")
	require.NoError(t, err)
	assert.NotNil(t, blank)
	assert.Empty(t, blank)
}
