package catalogclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
)

// Item is a catalog item after client-side normalization.
type Item struct {
	ID               int64
	Name             string
	Price            float64
	Stock            int64
	Sales            int64
	Image            string
	Category         string
	Description      string
	AdditionalImages []string
}

// ShowcaseImage is one entry of the additional-images strip.
type ShowcaseImage struct {
	ID    int64
	Image string
}

// Page is a validated catalog response. Slices are never nil.
type Page struct {
	Items       []Item
	Showcase    []ShowcaseImage
	Total       int64
	TotalPages  int64
	CurrentPage int64
}

// wirePage is the only accepted response shape. Pointers distinguish
// absent fields from zero values.
type wirePage struct {
	Products         *[]wireItem    `json:"products"`
	AdditionalImages []wireShowcase `json:"additionalImages"`
	TotalPages       *int64         `json:"totalPages"`
	CurrentPage      *int64         `json:"currentPage"`
	Total            *int64         `json:"total"`
}

type wireItem struct {
	ID               *int64          `json:"id"`
	Name             *string         `json:"name"`
	Price            json.RawMessage `json:"price"`
	Stock            *int64          `json:"stock"`
	Sales            *int64          `json:"sales"`
	Image            *string         `json:"image"`
	Category         *string         `json:"category"`
	Description      *string         `json:"description"`
	AdditionalImages []string        `json:"additionalImages"`
}

type wireShowcase struct {
	ID    int64   `json:"id"`
	Image *string `json:"image"`
}

// decodePage parses and validates a response body. A missing or null
// products array, a product without an id and negative counters are
// rejected; every other gap is filled with display defaults.
func decodePage(body []byte) (*Page, error) {
	var w wirePage
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if w.Products == nil {
		return nil, fmt.Errorf("%w: products missing", ErrMalformedResponse)
	}

	page := &Page{
		Items:       make([]Item, 0, len(*w.Products)),
		Showcase:    make([]ShowcaseImage, 0, len(w.AdditionalImages)),
		Total:       deref(w.Total),
		TotalPages:  deref(w.TotalPages),
		CurrentPage: deref(w.CurrentPage),
	}
	if page.Total < 0 || page.TotalPages < 0 || page.CurrentPage < 0 {
		return nil, fmt.Errorf("%w: negative counter", ErrMalformedResponse)
	}

	for i, wi := range *w.Products {
		if wi.ID == nil {
			return nil, fmt.Errorf("%w: product %d has no id", ErrMalformedResponse, i)
		}
		page.Items = append(page.Items, normalizeItem(wi))
	}
	for _, ws := range w.AdditionalImages {
		page.Showcase = append(page.Showcase, ShowcaseImage{
			ID:    ws.ID,
			Image: orDefault(ws.Image, domain.PlaceholderImage),
		})
	}
	return page, nil
}

func normalizeItem(w wireItem) Item {
	images := make([]string, 0, len(w.AdditionalImages))
	for _, img := range w.AdditionalImages {
		if strings.TrimSpace(img) != "" {
			images = append(images, img)
		}
	}
	return Item{
		ID:               *w.ID,
		Name:             orDefault(w.Name, domain.FallbackName),
		Price:            parsePrice(w.Price),
		Stock:            max(deref(w.Stock), 0),
		Sales:            max(deref(w.Sales), 0),
		Image:            orDefault(w.Image, domain.PlaceholderImage),
		Category:         orDefault(w.Category, domain.FallbackCategory),
		Description:      orDefault(w.Description, domain.FallbackDescription),
		AdditionalImages: images,
	}
}

// parsePrice accepts a JSON number or a numeric string. Anything else,
// including negative values, is 0.
func parsePrice(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}

func orDefault(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}

func deref(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
