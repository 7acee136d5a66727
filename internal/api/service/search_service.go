package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"bizdir/internal/api/dto"
	"bizdir/internal/api/repository"
	"bizdir/internal/cache"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100

	// Suggestion queries shorter than this return an empty result set.
	minSuggestionLength = 2

	maxNameSuggestions     = 3
	maxCategorySuggestions = 2
	maxLocationSuggestions = 2
)

type SearchService interface {
	Search(ctx context.Context, query dto.SearchQueryDTO) (*dto.SearchResponse, error)
	FilterOptions(ctx context.Context) (*dto.FilterOptions, error)
	Suggestions(ctx context.Context, partial string) (*dto.SuggestionsResponse, error)
}

type searchService struct {
	searchRepo   *repository.SearchRepo
	businessRepo *repository.BusinessRepo
	filterCache  *cache.FilterCache
}

func NewSearchService(searchRepo *repository.SearchRepo, businessRepo *repository.BusinessRepo, filterCache *cache.FilterCache) SearchService {
	return &searchService{
		searchRepo:   searchRepo,
		businessRepo: businessRepo,
		filterCache:  filterCache,
	}
}

// ParseSearchParams validates the raw facet inputs. Malformed numeric values
// are rejected with a Validation error rather than silently coerced.
func ParseSearchParams(query dto.SearchQueryDTO) (repository.SearchParams, error) {
	params := repository.SearchParams{
		Query:     strings.TrimSpace(query.Query),
		SortBy:    repository.SortByName,
		SortOrder: "asc",
		Page:      1,
		Limit:     defaultPageSize,
	}

	params.Categories = splitFacet(query.Category)
	params.Locations = splitFacet(query.Location)

	if query.MinRating != "" {
		v, err := strconv.ParseFloat(query.MinRating, 64)
		if err != nil {
			return params, fmt.Errorf("%w: minRating must be a number", ErrValidation)
		}
		params.MinRating = &v
	}
	if query.MaxRating != "" {
		v, err := strconv.ParseFloat(query.MaxRating, 64)
		if err != nil {
			return params, fmt.Errorf("%w: maxRating must be a number", ErrValidation)
		}
		params.MaxRating = &v
	}

	switch query.SortBy {
	case repository.SortByName, repository.SortByRating, repository.SortByRecent:
		params.SortBy = query.SortBy
	case "":
		// keep default
	default:
		return params, fmt.Errorf("%w: sortBy must be one of name, rating, recent", ErrValidation)
	}

	switch query.SortOrder {
	case "asc", "desc":
		params.SortOrder = query.SortOrder
	case "":
		// keep default
	default:
		return params, fmt.Errorf("%w: sortOrder must be asc or desc", ErrValidation)
	}

	if query.Page != "" {
		v, err := strconv.Atoi(query.Page)
		if err != nil || v < 1 {
			return params, fmt.Errorf("%w: page must be a positive integer", ErrValidation)
		}
		params.Page = v
	}
	if query.Limit != "" {
		v, err := strconv.Atoi(query.Limit)
		if err != nil || v < 1 || v > maxPageSize {
			return params, fmt.Errorf("%w: limit must be between 1 and %d", ErrValidation, maxPageSize)
		}
		params.Limit = v
	}

	return params, nil
}

func splitFacet(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *searchService) Search(ctx context.Context, query dto.SearchQueryDTO) (*dto.SearchResponse, error) {
	params, err := ParseSearchParams(query)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.searchRepo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	filters, err := s.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}

	pages := (total + int64(params.Limit) - 1) / int64(params.Limit)
	if rows == nil {
		rows = []repository.BusinessSearchRow{}
	}

	return &dto.SearchResponse{
		Businesses: rows,
		Pagination: dto.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
			Pages: pages,
		},
		Filters: *filters,
	}, nil
}

// FilterOptions returns the full universe of facet values, served from the
// redis cache when warm.
func (s *searchService) FilterOptions(ctx context.Context) (*dto.FilterOptions, error) {
	if opts, ok := s.filterCache.Get(ctx); ok {
		return opts, nil
	}

	categories, err := s.businessRepo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.businessRepo.Locations(ctx)
	if err != nil {
		return nil, err
	}
	ratingMin, ratingMax, err := s.businessRepo.RatingRange(ctx)
	if err != nil {
		return nil, err
	}

	opts := &dto.FilterOptions{
		Categories:  categories,
		Locations:   locations,
		RatingRange: dto.RatingRange{Min: ratingMin, Max: ratingMax},
	}
	s.filterCache.Set(ctx, opts)
	return opts, nil
}

// Suggestions produces typed autocomplete entries for a partial query.
// Each id is only unique within one response; it carries no meaning across
// calls.
func (s *searchService) Suggestions(ctx context.Context, partial string) (*dto.SuggestionsResponse, error) {
	partial = strings.TrimSpace(partial)
	if len(partial) < minSuggestionLength {
		return &dto.SuggestionsResponse{Suggestions: []dto.Suggestion{}}, nil
	}

	names, err := s.searchRepo.SuggestNames(ctx, partial, maxNameSuggestions)
	if err != nil {
		return nil, err
	}
	categories, err := s.searchRepo.SuggestCategories(ctx, partial, maxCategorySuggestions)
	if err != nil {
		return nil, err
	}
	locations, err := s.searchRepo.SuggestLocations(ctx, partial, maxLocationSuggestions)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.Suggestion, 0, len(names)+len(categories)+len(locations))
	suggestions = appendSuggestions(suggestions, names, "business")
	suggestions = appendSuggestions(suggestions, categories, "category")
	suggestions = appendSuggestions(suggestions, locations, "location")

	return &dto.SuggestionsResponse{Suggestions: suggestions}, nil
}

func appendSuggestions(dst []dto.Suggestion, rows []repository.SuggestionRow, kind string) []dto.Suggestion {
	for _, row := range rows {
		dst = append(dst, dto.Suggestion{
			ID:    fmt.Sprintf("%s_%d", kind, len(dst)),
			Text:  row.Text,
			Type:  kind,
			Count: row.Count,
		})
	}
	return dst
}
