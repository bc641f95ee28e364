package domain

import (
	"math"
	"strconv"
	"strings"
)

// Filter is a validated catalog query.
type Filter struct {
	Page     int64
	Limit    int64
	Search   string
	Category string
	Sort     SortKey
	MinPrice float64
	MaxPrice float64
}

// RawFilter carries query-string values as received. Empty means "use the default".
type RawFilter struct {
	Page     string
	Limit    string
	Search   string
	Category string
	SortBy   string
	MinPrice string
	MaxPrice string
}

// DefaultFilter returns the filter used when no parameters are supplied.
func DefaultFilter() Filter {
	return Filter{
		Page:     DefaultPage,
		Limit:    DefaultLimit,
		Sort:     ParseSortKey(DefaultSortBy),
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
	}
}

// ParseFilter validates raw parameters and fills defaults.
// Page is coerced to at least 1 and limit is clamped to [1, MaxLimit];
// values that are not numbers, or pages past the representable offset,
// are rejected with a *ParamError.
func ParseFilter(raw RawFilter) (Filter, error) {
	f := DefaultFilter()

	page, err := parseInt("page", raw.Page, DefaultPage)
	if err != nil {
		return Filter{}, err
	}
	f.Page = max(page, 1)

	limit, err := parseInt("limit", raw.Limit, DefaultLimit)
	if err != nil {
		return Filter{}, err
	}
	f.Limit = min(max(limit, 1), MaxLimit)
	if !PageInRange(f.Page, f.Limit) {
		return Filter{}, PageOutOfRange()
	}

	f.Search = strings.TrimSpace(raw.Search)
	f.Category = strings.TrimSpace(raw.Category)

	if raw.SortBy != "" {
		f.Sort = ParseSortKey(raw.SortBy)
	}

	if f.MinPrice, err = parsePrice("minPrice", raw.MinPrice, DefaultMinPrice); err != nil {
		return Filter{}, err
	}
	if f.MaxPrice, err = parsePrice("maxPrice", raw.MaxPrice, DefaultMaxPrice); err != nil {
		return Filter{}, err
	}
	if f.MinPrice < 0 {
		return Filter{}, &ParamError{Param: "minPrice", Reason: "must not be negative"}
	}
	if f.MinPrice > f.MaxPrice {
		return Filter{}, &ParamError{Param: "minPrice", Reason: "must not exceed maxPrice"}
	}

	return f, nil
}

// Offset is the number of rows skipped: (page-1)*limit.
func (f Filter) Offset() int64 {
	return (f.Page - 1) * f.Limit
}

// PageInRange reports whether the offset (page-1)*limit of a page >= 1 fits in an int64.
func PageInRange(page, limit int64) bool {
	return limit <= 0 || page-1 <= math.MaxInt64/limit
}

// PageOutOfRange is the error for pages whose offset cannot be represented.
func PageOutOfRange() error {
	return &ParamError{Param: "page", Reason: "is out of range"}
}

// CategoryFilter returns the category to match and whether to match at all.
// The empty string and the "all" sentinel (any case) disable the filter.
func (f Filter) CategoryFilter() (string, bool) {
	if f.Category == "" || strings.EqualFold(f.Category, CategoryAll) {
		return "", false
	}
	return f.Category, true
}

func parseInt(param, s string, def int64) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &ParamError{Param: param, Reason: "must be an integer"}
	}
	return v, nil
}

func parsePrice(param, s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParamError{Param: param, Reason: "must be a number"}
	}
	return v, nil
}
