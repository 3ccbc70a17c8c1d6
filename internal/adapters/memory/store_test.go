package memory

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

func ptr[T any](v T) *T { return &v }

func rating(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

func criteria(raw domain.RawSearchCriteria) domain.SearchCriteria {
	return domain.NormalizeCriteria(raw)
}

func ids(professionals []domain.Professional) []int64 {
	result := make([]int64, len(professionals))
	for i, p := range professionals {
		result[i] = p.ID
	}
	return result
}

func TestSearchMatching_FullTextRanksAboveFuzzyOnly(t *testing.T) {
	store := NewStore([]domain.Professional{
		{ID: 1, Headline: "Plumbr", Category: "Home Services"},
		{ID: 2, Headline: "Plumber", Category: "Home Services"},
		{ID: 3, Headline: "Electrician", Category: "Home Services"},
	}, nil)

	c := criteria(domain.RawSearchCriteria{Query: "plumber"})
	page, err := store.SearchMatching(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids(page))

	total, err := store.CountMatching(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestSearchMatching_FullTextUsesEnglishStems(t *testing.T) {
	store := NewStore([]domain.Professional{
		{ID: 1, Headline: "AC install and repair", Category: "Appliances"},
		{ID: 2, Headline: "Tutor", Category: "Tutoring"},
	}, nil)

	c := criteria(domain.RawSearchCriteria{Query: "installation"})
	page, err := store.SearchMatching(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(page))

	total, err := store.CountMatching(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSearchMatching_QueryMatchesSubcategoryAndBio(t *testing.T) {
	drain := domain.Subcategory{ID: 1, Name: "Drain Cleaning", Category: "Plumbing"}
	store := NewStore([]domain.Professional{
		{ID: 1, Headline: "Handyman", Subcategories: []domain.Subcategory{drain}},
		{ID: 2, Headline: "Handyman", Bio: "Drain cleaning and unclogging"},
		{ID: 3, Headline: "Handyman", Bio: "Painting"},
	}, []domain.Subcategory{drain})

	page, err := store.SearchMatching(context.Background(), criteria(domain.RawSearchCriteria{Query: "drain cleaning"}))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, ids(page))
}

func TestSearchMatching_Filters(t *testing.T) {
	drain := domain.Subcategory{ID: 1, Name: "Drain Cleaning", Category: "Plumbing"}
	wiring := domain.Subcategory{ID: 2, Name: "Wiring", Category: "Electrical"}
	store := NewStore([]domain.Professional{
		{ID: 1, Category: "Plumbing", City: "Bangalore", State: "Karnataka", Country: "India", IsAvailable: true,
			Subcategories: []domain.Subcategory{drain}, ServiceAreas: []string{"Indiranagar"}},
		{ID: 2, Category: "Electrical", City: "Mumbai", State: "Maharashtra", Country: "India", Remote: true,
			Subcategories: []domain.Subcategory{wiring}, ServiceAreas: []string{"Bandra"}},
		{ID: 3, Category: "Plumbing", City: "Chennai", State: "Tamil Nadu", Country: "India", IsAvailable: true,
			ServiceAreas: []string{"Adyar"}},
	}, []domain.Subcategory{drain, wiring})

	cases := []struct {
		name string
		raw  domain.RawSearchCriteria
		want []int64
	}{
		{"no filters returns everything", domain.RawSearchCriteria{}, []int64{1, 2, 3}},
		{"fuzzy city", domain.RawSearchCriteria{City: "Bangalor"}, []int64{1}},
		{"location alias", domain.RawSearchCriteria{Location: "mumbai"}, []int64{2}},
		{"state ignores case", domain.RawSearchCriteria{State: "TAMIL NADU"}, []int64{3}},
		{"country", domain.RawSearchCriteria{Country: "india"}, []int64{1, 2, 3}},
		{"remote", domain.RawSearchCriteria{Remote: ptr(true)}, []int64{2}},
		{"available", domain.RawSearchCriteria{Available: ptr(false)}, []int64{2}},
		{"first category only", domain.RawSearchCriteria{Categories: []string{"electrical", "Plumbing"}}, []int64{2}},
		{"area", domain.RawSearchCriteria{Area: "indira nagar"}, []int64{1}},
		{"subcategory any of", domain.RawSearchCriteria{Subcategories: []string{"drain cleaning", "WIRING"}}, []int64{1, 2}},
		{"skills alias", domain.RawSearchCriteria{Skills: []string{"Wiring"}}, []int64{2}},
		{"filters combine with AND", domain.RawSearchCriteria{Category: "Plumbing", City: "Chennai"}, []int64{3}},
		{"nothing matches", domain.RawSearchCriteria{City: "Delhi"}, []int64{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := store.SearchMatching(context.Background(), criteria(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(page))
		})
	}
}

func TestSearchMatching_OrderWithoutQuery(t *testing.T) {
	store := NewStore([]domain.Professional{
		{ID: 1},
		{ID: 2, Rating: rating(4.5)},
		{ID: 3, Rating: rating(4.9)},
		{ID: 4, Rating: rating(4.5)},
	}, nil)

	page, err := store.SearchMatching(context.Background(), criteria(domain.RawSearchCriteria{}))
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 4, 1}, ids(page))
}

func TestSearchMatching_Pagination(t *testing.T) {
	professionals := make([]domain.Professional, 0, 25)
	for i := 1; i <= 25; i++ {
		professionals = append(professionals, domain.Professional{ID: int64(i), Headline: fmt.Sprintf("Pro %d", i)})
	}
	store := NewStore(professionals, nil)
	ctx := context.Background()

	third, err := store.SearchMatching(ctx, criteria(domain.RawSearchCriteria{Page: 2, PageSize: 10}))
	require.NoError(t, err)
	assert.Equal(t, []int64{21, 22, 23, 24, 25}, ids(third))

	beyond, err := store.SearchMatching(ctx, criteria(domain.RawSearchCriteria{Page: 5, PageSize: 10}))
	require.NoError(t, err)
	assert.Empty(t, beyond)

	total, err := store.CountMatching(ctx, criteria(domain.RawSearchCriteria{Page: 5, PageSize: 10}))
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
}

func TestSearchMatching_CancelledContext(t *testing.T) {
	store := NewStore(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.SearchMatching(ctx, criteria(domain.RawSearchCriteria{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveAreaName(t *testing.T) {
	store := NewStore([]domain.Professional{
		{ID: 1, ServiceAreas: []string{"Indiranagar", "Koramangala"}},
		{ID: 2, ServiceAreas: []string{"Whitefield"}},
	}, nil)
	ctx := context.Background()

	area, err := store.ResolveAreaName(ctx, "indira nagar")
	require.NoError(t, err)
	require.NotNil(t, area)
	assert.Equal(t, "Indiranagar", *area)

	area, err = store.ResolveAreaName(ctx, "koramangla")
	require.NoError(t, err)
	require.NotNil(t, area)
	assert.Equal(t, "Koramangala", *area)

	area, err = store.ResolveAreaName(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, area)
}

func TestFacetBy(t *testing.T) {
	store := NewStore([]domain.Professional{
		{ID: 1, Category: "Plumbing", City: "Bangalore", ServiceAreas: []string{"Indiranagar", "Indiranagar"}},
		{ID: 2, Category: "Plumbing", City: "Mumbai", ServiceAreas: []string{"Bandra", "Indiranagar"}},
		{ID: 3, Category: "Cleaning", City: "Bangalore", ServiceAreas: []string{"Bandra"}},
		{ID: 4, Category: "Electrical", City: " "},
	}, nil)
	ctx := context.Background()

	categories, err := store.FacetBy(ctx, domain.FacetByCategory, 20)
	require.NoError(t, err)
	assert.Equal(t, []domain.FacetCount{
		{Label: "Plumbing", Count: 2},
		{Label: "Cleaning", Count: 1},
		{Label: "Electrical", Count: 1},
	}, categories)

	cities, err := store.FacetBy(ctx, domain.FacetByCity, 20)
	require.NoError(t, err)
	assert.Equal(t, []domain.FacetCount{
		{Label: "Bangalore", Count: 2},
		{Label: "Mumbai", Count: 1},
	}, cities)

	areas, err := store.FacetBy(ctx, domain.FacetByArea, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.FacetCount{{Label: "Bandra", Count: 2}}, areas)
}

func TestGetProfessional(t *testing.T) {
	store := NewStore([]domain.Professional{{ID: 7, Slug: "ravi-kumar"}}, nil)
	ctx := context.Background()

	p, err := store.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "ravi-kumar", p.Slug)

	p, err = store.GetBySlug(ctx, "ravi-kumar")
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)

	_, err = store.GetByID(ctx, 8)
	assert.ErrorIs(t, err, domain.ErrProfessionalNotFound)

	_, err = store.GetBySlug(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrProfessionalNotFound)
}

func TestSearchMatching_ReturnsSearchProjection(t *testing.T) {
	store := NewStore([]domain.Professional{{
		ID:          1,
		Headline:    "Plumber",
		Contact:     domain.ContactInfo{Email: "ravi@example.com"},
		Services:    []domain.ServiceOffering{{ID: 1, Title: "Leak repair"}},
		SocialLinks: []domain.SocialLink{{ID: 1, Platform: "instagram", URL: "https://instagram.com/ravi"}},
	}}, nil)
	ctx := context.Background()

	page, err := store.SearchMatching(ctx, criteria(domain.RawSearchCriteria{}))
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Empty(t, page[0].Contact.Email)
	assert.Nil(t, page[0].Services)
	assert.Nil(t, page[0].SocialLinks)

	full, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", full.Contact.Email)
	assert.Len(t, full.Services, 1)
	assert.Len(t, full.SocialLinks, 1)
}

func TestDistinctCities(t *testing.T) {
	store := NewStore([]domain.Professional{
		{ID: 1, City: "Mumbai"},
		{ID: 2, City: "Bangalore"},
		{ID: 3, City: "Mumbai"},
		{ID: 4},
	}, nil)

	cities, err := store.DistinctCities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bangalore", "Mumbai"}, cities)
}

func TestDictionaries(t *testing.T) {
	store := NewStore(nil, []domain.Subcategory{
		{ID: 1, Name: "Wiring", Category: "Electrical"},
		{ID: 2, Name: "Drain Cleaning", Category: "Plumbing"},
		{ID: 3, Name: "Pipe Repair", Category: "Plumbing"},
	})
	ctx := context.Background()

	all, err := store.ListSubcategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Drain Cleaning", all[0].Name)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Electrical", "Plumbing"}, categories)

	plumbing, err := store.ListSubcategoriesByCategory(ctx, "Plumbing")
	require.NoError(t, err)
	assert.Len(t, plumbing, 2)

	unknown, err := store.ListSubcategoriesByCategory(ctx, "Gardening")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestLoadSeed(t *testing.T) {
	t.Run("bundled seed file", func(t *testing.T) {
		store, err := LoadSeedFile("../../../seed/professionals.yaml")
		require.NoError(t, err)

		p, err := store.GetBySlug(context.Background(), "ravi-kumar-plumber")
		require.NoError(t, err)
		assert.True(t, p.Rating.Valid)
		assert.Equal(t, "4.8", p.Rating.Decimal.String())
		assert.True(t, p.IsAvailable)
		assert.Equal(t, []string{"Drain Cleaning", "Pipe Repair"}, p.SubcategoryNames())
		assert.Equal(t, "ravi.kumar@proconnect.example", p.Contact.Email)
		require.Len(t, p.Services, 2)
		assert.Equal(t, "600", p.Services[0].PriceMax.Decimal.String())
		assert.False(t, p.Services[1].PriceMax.Valid)
		require.Len(t, p.SocialLinks, 1)
		assert.Equal(t, "instagram", p.SocialLinks[0].Platform)
	})

	t.Run("service without title", func(t *testing.T) {
		_, err := LoadSeed(strings.NewReader(`
professionals:
  - id: 1
    services:
      - {priceMin: 100}
`))
		assert.ErrorContains(t, err, "service without title")
	})

	t.Run("unknown subcategory", func(t *testing.T) {
		_, err := LoadSeed(strings.NewReader(`
professionals:
  - id: 1
    subcategories: [Roofing]
`))
		assert.ErrorContains(t, err, "unknown subcategory")
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := LoadSeed(strings.NewReader(`
professionals:
  - id: 1
  - id: 1
`))
		assert.ErrorContains(t, err, "duplicate professional id")
	})
}
