package domain

import "time"

// Catalog defaults and display fallbacks.
const (
	DefaultPage     int64   = 1
	DefaultLimit    int64   = 9
	MaxLimit        int64   = 100
	DefaultMinPrice float64 = 0
	DefaultMaxPrice float64 = 1000

	// CategoryAll is the sentinel meaning "no category filter".
	CategoryAll = "all"

	// ShowcaseSize is the number of additional images returned with every page.
	ShowcaseSize = 5

	FallbackName        = "Unnamed Product"
	FallbackCategory    = "Uncategorized"
	FallbackDescription = "No description available"
	PlaceholderImage    = "/placeholder-product.png"

	// AdminPlaceholderImage is shown for products without an image on the admin surface.
	AdminPlaceholderImage = "/placeholder.svg"
)

// Row is a storage row of the inventory table. Nil pointers are NULL columns.
type Row struct {
	ID           int64
	Handle       *string
	Title        *string
	BodyHTML     *string
	ProductType  *string
	Tags         *string
	VariantPrice *string
	VariantImage *string
	ImageSrc     *string
	Quantity     *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Item is a catalog item as exposed to clients. Every field is populated.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	Sales       int64   `json:"sales"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// ShowcaseImage is one entry of the additional-images strip.
type ShowcaseImage struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// Page is the result of a catalog query.
type Page struct {
	Items       []Item
	Showcase    []ShowcaseImage
	Total       int64
	TotalPages  int64
	CurrentPage int64
}

// TotalPages returns ceil(total/limit). It is 0 when nothing matched.
func TotalPages(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
