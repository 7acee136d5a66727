package dto

import "bizdir/internal/api/repository"

// SearchQueryDTO carries the raw query-string facets of GET
// /businesses/search. Numeric fields stay strings here; the service parses
// them and rejects malformed values instead of silently defaulting.
type SearchQueryDTO struct {
	Query     string `form:"q"`
	Category  string `form:"category"` // comma-separated
	Location  string `form:"location"` // comma-separated
	MinRating string `form:"minRating"`
	MaxRating string `form:"maxRating"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Page      string `form:"page"`
	Limit     string `form:"limit"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type RatingRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FilterOptions struct {
	Categories  []string    `json:"categories"`
	Locations   []string    `json:"locations"`
	RatingRange RatingRange `json:"ratingRange"`
}

type SearchResponse struct {
	Businesses []repository.BusinessSearchRow `json:"businesses"`
	Pagination Pagination                     `json:"pagination"`
	Filters    FilterOptions                  `json:"filters"`
}

type Suggestion struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type SuggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}
