package service

import (
	"context"
	"testing"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/repository"

	"github.com/stretchr/testify/assert"
)

func TestParseSearchParams_Defaults(t *testing.T) {
	params, err := ParseSearchParams(dto.SearchQueryDTO{})

	assert.NoError(t, err)
	assert.Equal(t, repository.SortByName, params.SortBy)
	assert.Equal(t, "asc", params.SortOrder)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, defaultPageSize, params.Limit)
	assert.Nil(t, params.MinRating)
	assert.Nil(t, params.MaxRating)
	assert.Empty(t, params.Categories)
	assert.Empty(t, params.Locations)
}

func TestParseSearchParams_FullQuery(t *testing.T) {
	params, err := ParseSearchParams(dto.SearchQueryDTO{
		Query:     "  coffee  ",
		Category:  "Cafe, Bakery",
		Location:  "Downtown",
		MinRating: "3.5",
		MaxRating: "5",
		SortBy:    "rating",
		SortOrder: "desc",
		Page:      "2",
		Limit:     "24",
	})

	assert.NoError(t, err)
	assert.Equal(t, "coffee", params.Query)
	assert.Equal(t, []string{"Cafe", "Bakery"}, params.Categories)
	assert.Equal(t, []string{"Downtown"}, params.Locations)
	assert.Equal(t, 3.5, *params.MinRating)
	assert.Equal(t, 5.0, *params.MaxRating)
	assert.Equal(t, repository.SortByRating, params.SortBy)
	assert.Equal(t, "desc", params.SortOrder)
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 24, params.Limit)
}

func TestParseSearchParams_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		query dto.SearchQueryDTO
	}{
		{"malformed minRating", dto.SearchQueryDTO{MinRating: "abc"}},
		{"malformed maxRating", dto.SearchQueryDTO{MaxRating: "4,5"}},
		{"unknown sortBy", dto.SearchQueryDTO{SortBy: "price"}},
		{"unknown sortOrder", dto.SearchQueryDTO{SortOrder: "sideways"}},
		{"zero page", dto.SearchQueryDTO{Page: "0"}},
		{"negative page", dto.SearchQueryDTO{Page: "-1"}},
		{"non-numeric page", dto.SearchQueryDTO{Page: "one"}},
		{"zero limit", dto.SearchQueryDTO{Limit: "0"}},
		{"limit above ceiling", dto.SearchQueryDTO{Limit: "101"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSearchParams(tc.query)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestParseSearchParams_LimitCeiling(t *testing.T) {
	params, err := ParseSearchParams(dto.SearchQueryDTO{Limit: "100"})

	assert.NoError(t, err)
	assert.Equal(t, maxPageSize, params.Limit)
}

func TestSplitFacet(t *testing.T) {
	assert.Nil(t, splitFacet(""))
	assert.Equal(t, []string{"Cafe"}, splitFacet("Cafe"))
	assert.Equal(t, []string{"Cafe", "Bakery"}, splitFacet(" Cafe , Bakery "))
	assert.Empty(t, splitFacet(" , ,"))
}

func TestSuggestions_ShortPartial(t *testing.T) {
	s := &searchService{}

	for _, partial := range []string{"", "a", "  a  "} {
		resp, err := s.Suggestions(context.Background(), partial)
		assert.NoError(t, err)
		assert.Empty(t, resp.Suggestions)
	}
}

func TestAppendSuggestions_PositionalIDs(t *testing.T) {
	rows := []repository.SuggestionRow{{Text: "Cafe Roma", Count: 1}, {Text: "Cafe Blue", Count: 2}}
	out := appendSuggestions(nil, rows, "business")
	out = appendSuggestions(out, []repository.SuggestionRow{{Text: "Cafe", Count: 4}}, "category")

	assert.Equal(t, "business_0", out[0].ID)
	assert.Equal(t, "business_1", out[1].ID)
	// ids continue from the global position, not per type
	assert.Equal(t, "category_2", out[2].ID)
	assert.Equal(t, "category", out[2].Type)
}
