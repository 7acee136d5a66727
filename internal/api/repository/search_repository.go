package repository

import (
	"context"
	"fmt"
	"strings"

	"bizdir/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort keys accepted by Search. "recent" uses the id as an insertion-order
// proxy, matching how the directory assigns identifiers.
const (
	SortByName   = "name"
	SortByRating = "rating"
	SortByRecent = "recent"
)

// SearchParams carries validated facet inputs. The service layer owns the
// parsing and validation of raw query-string values; by the time a
// SearchParams reaches the repository every field is well formed.
type SearchParams struct {
	Query      string
	Categories []string
	Locations  []string
	MinRating  *float64
	MaxRating  *float64
	SortBy     string
	SortOrder  string // "asc" or "desc"
	Page       int    // >= 1
	Limit      int    // bounded by the service
}

// BusinessSearchRow is one search hit enriched with the live aggregate stats
// of its review set.
type BusinessSearchRow struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Services    string             `json:"services"`
	ImageURL    string             `json:"image_url" gorm:"column:image_url"`
	Location    string             `json:"location"`
	Latitude    *float64           `json:"latitude,omitempty"`
	Longitude   *float64           `json:"longitude,omitempty"`
	Socials     models.SocialLinks `json:"socials" gorm:"type:text"`
	AvgRating   float64            `json:"rating" gorm:"column:avg_rating"`
	Reviews     int64              `json:"totalReviews" gorm:"column:review_count"`
}

type SearchRepo struct {
	db *gorm.DB
}

func NewSearchRepo(db *gorm.DB) *SearchRepo {
	return &SearchRepo{db: db}
}

// wherePredicates builds the composable WHERE conditions for a search. Each
// facet contributes one expression; facets combine with AND, values inside
// the category and location facets combine with OR (via IN).
func wherePredicates(p SearchParams) []clause.Expression {
	var exprs []clause.Expression

	if q := strings.TrimSpace(p.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		exprs = append(exprs, clause.Or(
			clause.Expr{SQL: "LOWER(businesses.name) LIKE ?", Vars: []interface{}{pattern}},
			clause.Expr{SQL: "LOWER(businesses.description) LIKE ?", Vars: []interface{}{pattern}},
			clause.Expr{SQL: "LOWER(businesses.category) LIKE ?", Vars: []interface{}{pattern}},
			clause.Expr{SQL: "LOWER(businesses.location) LIKE ?", Vars: []interface{}{pattern}},
		))
	}

	if len(p.Categories) > 0 {
		exprs = append(exprs, clause.IN{
			Column: clause.Column{Table: "businesses", Name: "category"},
			Values: toValues(p.Categories),
		})
	}

	if len(p.Locations) > 0 {
		exprs = append(exprs, clause.IN{
			Column: clause.Column{Table: "businesses", Name: "location"},
			Values: toValues(p.Locations),
		})
	}

	return exprs
}

func toValues(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// applyHaving adds the rating-bound conditions. They operate on the live
// average so they run after GROUP BY; a business with no reviews counts
// as 0 and therefore only passes a minRating <= 0.
func applyHaving(q *gorm.DB, p SearchParams) *gorm.DB {
	if p.MinRating != nil {
		q = q.Having("COALESCE(AVG(reviews.rating), 0) >= ?", *p.MinRating)
	}
	if p.MaxRating != nil {
		q = q.Having("COALESCE(AVG(reviews.rating), 0) <= ?", *p.MaxRating)
	}
	return q
}

func (r *SearchRepo) base(ctx context.Context, p SearchParams) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Business{}).
		Joins("LEFT JOIN reviews ON reviews.business_id = businesses.id").
		Group("businesses.id")
	if exprs := wherePredicates(p); len(exprs) > 0 {
		q = q.Clauses(clause.Where{Exprs: exprs})
	}
	return applyHaving(q, p)
}

// Search runs the faceted query and returns the page of matches plus the
// total match count across all pages.
func (r *SearchRepo) Search(ctx context.Context, p SearchParams) ([]BusinessSearchRow, int64, error) {
	orderCols := map[string]string{
		SortByName:   "businesses.name",
		SortByRating: "avg_rating",
		SortByRecent: "businesses.id",
	}
	sortCol, ok := orderCols[p.SortBy]
	if !ok {
		sortCol = "businesses.name"
	}
	direction := "ASC"
	if p.SortOrder == "desc" {
		direction = "DESC"
	}

	var rows []BusinessSearchRow
	err := r.base(ctx, p).
		Select("businesses.id, businesses.name, businesses.category, businesses.description, " +
			"businesses.services, businesses.image_url, businesses.location, " +
			"businesses.latitude, businesses.longitude, businesses.socials, " +
			"COALESCE(AVG(reviews.rating), 0) AS avg_rating, COUNT(reviews.id) AS review_count").
		Order(fmt.Sprintf("%s %s", sortCol, direction)).
		Order("businesses.id ASC"). // stable tie-break
		Limit(p.Limit).
		Offset((p.Page - 1) * p.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("search businesses: %w", err)
	}

	total, err := r.count(ctx, p)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// count applies the same WHERE and HAVING conditions as the page query so
// that the reported total always partitions exactly into the pages.
func (r *SearchRepo) count(ctx context.Context, p SearchParams) (int64, error) {
	matched := r.base(ctx, p).Select("businesses.id")
	var total int64
	if err := r.db.WithContext(ctx).Table("(?) AS matched", matched).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count search matches: %w", err)
	}
	return total, nil
}

// SuggestionRow is one autocomplete candidate with the number of rows that
// share its value.
type SuggestionRow struct {
	Text  string `json:"text"`
	Count int64  `json:"count"`
}

// SuggestNames returns up to limit distinct business names matching the
// partial string, case-insensitively.
func (r *SearchRepo) SuggestNames(ctx context.Context, partial string, limit int) ([]SuggestionRow, error) {
	return r.suggest(ctx, "name", partial, limit)
}

func (r *SearchRepo) SuggestCategories(ctx context.Context, partial string, limit int) ([]SuggestionRow, error) {
	return r.suggest(ctx, "category", partial, limit)
}

func (r *SearchRepo) SuggestLocations(ctx context.Context, partial string, limit int) ([]SuggestionRow, error) {
	return r.suggest(ctx, "location", partial, limit)
}

func (r *SearchRepo) suggest(ctx context.Context, column, partial string, limit int) ([]SuggestionRow, error) {
	pattern := "%" + strings.ToLower(partial) + "%"
	var rows []SuggestionRow
	err := r.db.WithContext(ctx).Model(&models.Business{}).
		Select(fmt.Sprintf("%s AS text, COUNT(*) AS count", column)).
		Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), pattern).
		Group(column).
		Order(column).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("suggest %s: %w", column, err)
	}
	return rows, nil
}
