// Package catalog turns storefront query parameters into a product filter and
// ordering. The same ProductQuery is evaluated in memory by Matches/Less and
// rendered to SQL by the Postgres product repository.
package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/goldendrops/storefront/internal/domain"
)

// SortKey selects the product ordering.
type SortKey string

const (
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps unknown or empty keys to SortNewest.
func ParseSortKey(raw string) SortKey {
	switch key := SortKey(strings.TrimSpace(raw)); key {
	case SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return key
	default:
		return SortNewest
	}
}

// Params are the raw, optional query string values.
type Params struct {
	CategoryID string
	Search     string
	Featured   string
	MinPrice   string
	MaxPrice   string
	Sort       string
}

// ProductQuery is a normalised filter plus ordering. Nil pointers mean the
// filter is not applied.
type ProductQuery struct {
	ActiveOnly bool
	CategoryID *string
	Search     string
	Featured   *bool
	MinPrice   *float64
	MaxPrice   *float64
	Sort       SortKey
}

// BuildProductQuery never fails; values that cannot be parsed are dropped.
func BuildProductQuery(p Params) ProductQuery {
	q := ProductQuery{
		ActiveOnly: true,
		Search:     strings.TrimSpace(p.Search),
		Sort:       ParseSortKey(p.Sort),
	}

	if id, err := uuid.Parse(strings.TrimSpace(p.CategoryID)); err == nil {
		s := id.String()
		q.CategoryID = &s
	}
	if featured, err := strconv.ParseBool(strings.TrimSpace(p.Featured)); err == nil {
		q.Featured = &featured
	}
	q.MinPrice = parsePrice(p.MinPrice)
	q.MaxPrice = parsePrice(p.MaxPrice)

	return q
}

// ForCategory lists the active products of one category in default order.
func ForCategory(categoryID string) ProductQuery {
	return BuildProductQuery(Params{CategoryID: categoryID})
}

func parsePrice(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Matches reports whether p passes every filter in q.
func (q ProductQuery) Matches(p domain.Product) bool {
	if q.ActiveOnly && !p.Active {
		return false
	}
	if q.CategoryID != nil && p.CategoryID != *q.CategoryID {
		return false
	}
	if q.Featured != nil && p.Featured != *q.Featured {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) &&
			!strings.Contains(strings.ToLower(p.Badge), term) {
			return false
		}
	}
	return true
}

// Less orders a before b. Ties fall back to newest first, then id.
func (q ProductQuery) Less(a, b domain.Product) bool {
	switch q.Sort {
	case SortPriceAsc:
		if a.Price != b.Price {
			return a.Price < b.Price
		}
	case SortPriceDesc:
		if a.Price != b.Price {
			return a.Price > b.Price
		}
	case SortRating:
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Apply filters and sorts products without modifying the input.
func (q ProductQuery) Apply(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q.Matches(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return q.Less(out[i], out[j]) })
	return out
}
