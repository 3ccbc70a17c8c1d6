package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

func TestApplyCriteria_NoFilters(t *testing.T) {
	where, score, args := applyCriteria(domain.NormalizeCriteria(domain.RawSearchCriteria{}), domain.DefaultRankingPolicy)

	assert.Empty(t, where)
	assert.Equal(t, "0::float8", score)
	assert.Empty(t, args)
}

func TestApplyCriteria_TextQuery(t *testing.T) {
	criteria := domain.NormalizeCriteria(domain.RawSearchCriteria{Query: " plumber "})
	where, score, args := applyCriteria(criteria, domain.DefaultRankingPolicy)

	assert.Equal(t, []interface{}{"plumber"}, args)
	assert.Contains(t, where, "p.search_vector @@ plainto_tsquery('english', $1)")
	assert.Contains(t, where, "similarity(coalesce(p.headline, ''), $1) > 0.3")
	assert.Contains(t, where, "similarity(coalesce(p.bio, ''), $1) > 0.25")
	assert.Contains(t, where, "similarity(s.name, $1) > 0.3")
	assert.Equal(t,
		"(ts_rank(p.search_vector, plainto_tsquery('english', $1)) + 0.5 * similarity(coalesce(p.headline, ''), $1))::float8",
		score,
	)
}

func TestApplyCriteria_AllFilters(t *testing.T) {
	remote := true
	available := false
	criteria := domain.NormalizeCriteria(domain.RawSearchCriteria{
		Query:         "plumber",
		City:          "Bangalore",
		State:         "Karnataka",
		Country:       "India",
		Area:          "Indiranagar",
		Remote:        &remote,
		Available:     &available,
		Categories:    []string{"Plumbing", "Electrical"},
		Subcategories: []string{"Drain Cleaning", "drain cleaning", "Pipe Repair"},
	})

	where, _, args := applyCriteria(criteria, domain.DefaultRankingPolicy)

	assert.Equal(t, []interface{}{
		"plumber",
		"Bangalore",
		"Karnataka",
		"India",
		true,
		false,
		"Plumbing",
		"Indiranagar",
		[]string{"drain cleaning", "pipe repair"},
	}, args)

	assert.True(t, strings.HasPrefix(where, "WHERE "))
	assert.Contains(t, where, "similarity(coalesce(p.city, ''), $2) > 0.4")
	assert.Contains(t, where, "lower(p.state) = lower($3)")
	assert.Contains(t, where, "lower(p.country) = lower($4)")
	assert.Contains(t, where, "p.remote = $5")
	assert.Contains(t, where, "p.is_available = $6")
	assert.Contains(t, where, "lower(p.category) = lower($7)")
	assert.Contains(t, where, "similarity(sa.area_name, $8) > 0.3")
	assert.Contains(t, where, "lower(s.name) = ANY($9)")
}

func TestApplyCriteria_CountAndPageShareArguments(t *testing.T) {
	criteria := domain.NormalizeCriteria(domain.RawSearchCriteria{Query: "tutor", City: "Chennai", Page: 3})

	whereA, _, argsA := applyCriteria(criteria, domain.DefaultRankingPolicy)
	whereB, _, argsB := applyCriteria(criteria, domain.DefaultRankingPolicy)

	assert.Equal(t, whereA, whereB)
	assert.Equal(t, argsA, argsB)
	assert.Len(t, argsA, 2)
}
