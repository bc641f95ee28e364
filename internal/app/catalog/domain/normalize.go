package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a stored price string to a number. Missing,
// unparseable or negative values become 0.
func ParsePrice(s *string) float64 {
	return parseDecimal(s).InexactFloat64()
}

func parseDecimal(s *string) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// NormalizeItem maps a storage row to a fully populated Item.
func NormalizeItem(r Row) Item {
	item := Item{
		ID:          r.ID,
		Name:        firstNonEmpty(FallbackName, r.Title),
		Price:       ParsePrice(r.VariantPrice),
		Category:    firstNonEmpty(FallbackCategory, r.ProductType),
		Image:       firstNonEmpty(PlaceholderImage, r.ImageSrc, r.VariantImage),
		Description: firstNonEmpty(FallbackDescription, r.BodyHTML),
	}
	item.Stock = stock(r.Quantity)
	return item
}

// NormalizeAdmin maps a row to the fields edited on the admin surface.
// The name comes from the title, falling back to the handle.
func NormalizeAdmin(r Row) ProductInput {
	return ProductInput{
		Name:     firstNonEmpty("", r.Title, r.Handle),
		Price:    parseDecimal(r.VariantPrice),
		Stock:    stock(r.Quantity),
		Category: firstNonEmpty(FallbackCategory, r.ProductType),
		Image:    firstNonEmpty(AdminPlaceholderImage, r.ImageSrc),
	}
}

func stock(q *int64) int64 {
	if q == nil || *q < 0 {
		return 0
	}
	return *q
}

// NormalizeShowcase maps a row to a showcase entry.
func NormalizeShowcase(r Row) ShowcaseImage {
	return ShowcaseImage{ID: r.ID, Image: firstNonEmpty(PlaceholderImage, r.ImageSrc)}
}

func firstNonEmpty(fallback string, values ...*string) string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return fallback
}
