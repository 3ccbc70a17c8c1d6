package domain

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rated(id int64, score float64, rating string) ScoredProfessional {
	p := Professional{ID: id}
	if rating != "" {
		p.Rating = decimal.NewNullDecimal(decimal.RequireFromString(rating))
	}
	return ScoredProfessional{Professional: p, Score: score}
}

func TestRankingPolicy_Less(t *testing.T) {
	items := []ScoredProfessional{
		rated(5, 0, ""),
		rated(4, 0, "4.2"),
		rated(3, 0.1, ""),
		rated(2, 0, "4.8"),
		rated(1, 0, "4.8"),
		rated(6, 0.5, "3.0"),
	}

	sort.SliceStable(items, func(i, j int) bool { return DefaultRankingPolicy.Less(items[i], items[j]) })

	got := make([]int64, len(items))
	for i, it := range items {
		got[i] = it.Professional.ID
	}
	// релевантность, затем рейтинг (NULL в конце), затем id
	assert.Equal(t, []int64{6, 3, 1, 2, 4, 5}, got)
}

func TestRankingPolicy_Score(t *testing.T) {
	assert.InDelta(t, 0.6, DefaultRankingPolicy.Score(0.1, 1.0), 1e-9)
	assert.InDelta(t, 0.0, DefaultRankingPolicy.Score(0, 0), 1e-9)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize), "total=%d pageSize=%d", tt.total, tt.pageSize)
	}
}

func TestAssembleSearchResult(t *testing.T) {
	original := NormalizeCriteria(RawSearchCriteria{Query: "plumber in Indiranagar", City: "Bangalore", Page: 1, PageSize: 2})

	result := AssembleSearchResult(original, nil, 3, Facets{Cities: []FacetCount{{Label: "Bangalore", Count: 2}}})

	assert.NotNil(t, result.Professionals)
	assert.Empty(t, result.Professionals)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.PageSize)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, "plumber in Indiranagar", *result.Query)
	assert.Equal(t, "Bangalore", *result.Location)
	assert.Equal(t, []FacetCount{{Label: "Bangalore", Count: 2}}, result.CityFacets)
	assert.NotNil(t, result.CategoryFacets)
	assert.NotNil(t, result.AreaFacets)
}

func TestFacetDimension_Limit(t *testing.T) {
	assert.Equal(t, 20, FacetByCategory.Limit())
	assert.Equal(t, 20, FacetByCity.Limit())
	assert.Equal(t, 30, FacetByArea.Limit())
}

func TestProfessional_Name(t *testing.T) {
	assert.Equal(t, "Sparkle Home Services", Professional{DisplayName: "Sparkle Home Services", FirstName: "X"}.Name())
	assert.Equal(t, "Ravi Kumar", Professional{FirstName: "Ravi", LastName: "Kumar"}.Name())
	assert.Equal(t, "Ravi", Professional{FirstName: "Ravi", DisplayName: "  "}.Name())
}
