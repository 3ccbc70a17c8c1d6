package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

type fakeResolver struct {
	areas map[string]string
	err   error
	calls []string
}

func (f *fakeResolver) ResolveAreaName(_ context.Context, hint string) (*string, error) {
	f.calls = append(f.calls, hint)
	if f.err != nil {
		return nil, f.err
	}
	area, ok := f.areas[hint]
	if !ok {
		return nil, nil
	}
	return &area, nil
}

func strPtr(s string) *string { return &s }

func TestSplitLocationHint(t *testing.T) {
	tests := []struct {
		query   string
		keyword string
		hint    string
		ok      bool
	}{
		{"plumber in indiranagar", "plumber", "indiranagar", true},
		{"Electrician NEAR Whitefield", "Electrician", "Whitefield", true},
		{"tutor at adyar", "tutor", "adyar", true},
		{"deep cleaning around bandra west", "deep cleaning", "bandra west", true},
		{"plumber in in koramangala", "plumber", "in koramangala", true},
		{"plumber", "", "", false},
		{"in indiranagar", "", "", false},
		{"plumber in", "", "", false},
		{"maintenance", "", "", false},
		{"plumberinindiranagar", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			keyword, hint, ok := SplitLocationHint(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.keyword, keyword)
			assert.Equal(t, tt.hint, hint)
		})
	}
}

func TestQueryInterpreter_Resolved(t *testing.T) {
	resolver := &fakeResolver{areas: map[string]string{"indiranagar": "Indiranagar"}}
	qi := NewQueryInterpreter(resolver)

	original := domain.SearchCriteria{Query: strPtr("plumber in indiranagar"), PageSize: 10}
	interpreted, err := qi.Interpret(context.Background(), original)
	require.NoError(t, err)

	require.NotNil(t, interpreted.Query)
	assert.Equal(t, "plumber", *interpreted.Query)
	require.NotNil(t, interpreted.Area)
	assert.Equal(t, "Indiranagar", *interpreted.Area)

	// исходные критерии не меняются
	assert.Equal(t, "plumber in indiranagar", *original.Query)
	assert.Nil(t, original.Area)
}

func TestQueryInterpreter_UnresolvedHintIsDropped(t *testing.T) {
	resolver := &fakeResolver{}
	qi := NewQueryInterpreter(resolver)

	interpreted, err := qi.Interpret(context.Background(), domain.SearchCriteria{Query: strPtr("plumber in atlantis")})
	require.NoError(t, err)

	require.NotNil(t, interpreted.Query)
	assert.Equal(t, "plumber", *interpreted.Query)
	assert.Nil(t, interpreted.Area)
	assert.Nil(t, interpreted.City, "unresolved hint must not turn into a city filter")
	assert.Equal(t, []string{"atlantis"}, resolver.calls)
}

func TestQueryInterpreter_ExplicitAreaWins(t *testing.T) {
	resolver := &fakeResolver{areas: map[string]string{"indiranagar": "Indiranagar"}}
	qi := NewQueryInterpreter(resolver)

	criteria := domain.SearchCriteria{Query: strPtr("plumber in indiranagar"), Area: strPtr("Koramangala")}
	interpreted, err := qi.Interpret(context.Background(), criteria)
	require.NoError(t, err)

	assert.Equal(t, criteria, interpreted)
	assert.Empty(t, resolver.calls)
}

func TestQueryInterpreter_NoPattern(t *testing.T) {
	resolver := &fakeResolver{}
	qi := NewQueryInterpreter(resolver)

	for _, criteria := range []domain.SearchCriteria{
		{},
		{Query: strPtr("plumber")},
	} {
		interpreted, err := qi.Interpret(context.Background(), criteria)
		require.NoError(t, err)
		assert.Equal(t, criteria, interpreted)
	}
	assert.Empty(t, resolver.calls)
}

func TestQueryInterpreter_ResolverError(t *testing.T) {
	storeErr := errors.New("connection refused")
	qi := NewQueryInterpreter(&fakeResolver{err: storeErr})

	_, err := qi.Interpret(context.Background(), domain.SearchCriteria{Query: strPtr("plumber in indiranagar")})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}
