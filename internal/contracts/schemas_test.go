package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "SearchPerformedEvent/1.0.0", generateKeyFromPath("events/search-performed/v1.json"))
	assert.Equal(t, "", generateKeyFromPath("events/broken.json"))
	assert.Equal(t, "", generateKeyFromPath("events/search-performed/latest.json"))
}

func TestValidateEvent(t *testing.T) {
	valid := `{
		"event_id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		"trace_id": "",
		"original_query": "plumber in indiranagar",
		"interpreted_query": "plumber",
		"resolved_area": null,
		"has_any_filter": true,
		"total": 3,
		"page": 0,
		"page_size": 10,
		"duration_ms": 12,
		"occurred_at": "2026-10-18T10:00:00Z"
	}`
	require.NoError(t, ValidateEvent("SearchPerformedEvent", "1.0.0", []byte(valid)))

	t.Run("unknown version", func(t *testing.T) {
		err := ValidateEvent("SearchPerformedEvent", "2.0.0", []byte(valid))
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("not json", func(t *testing.T) {
		err := ValidateEvent("SearchPerformedEvent", "1.0.0", []byte("{"))
		assert.ErrorContains(t, err, "not a valid JSON")
	})

	t.Run("negative total", func(t *testing.T) {
		err := ValidateEvent("SearchPerformedEvent", "1.0.0", []byte(`{
			"event_id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
			"has_any_filter": false,
			"total": -1,
			"page": 0,
			"page_size": 10,
			"duration_ms": 1,
			"occurred_at": "2026-10-18T10:00:00Z"
		}`))
		assert.ErrorContains(t, err, "validation failed")
	})

	t.Run("bad event id", func(t *testing.T) {
		err := ValidateEvent("SearchPerformedEvent", "1.0.0", []byte(`{
			"event_id": "not-a-uuid",
			"has_any_filter": false,
			"total": 0,
			"page": 0,
			"page_size": 10,
			"duration_ms": 1,
			"occurred_at": "2026-10-18T10:00:00Z"
		}`))
		assert.Error(t, err)
	})
}
