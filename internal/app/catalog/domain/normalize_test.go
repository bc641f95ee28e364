package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want float64
	}{
		{"nil", nil, 0},
		{"empty", ptr(""), 0},
		{"integer", ptr("25"), 25},
		{"decimal", ptr("19.99"), 19.99},
		{"padded", ptr(" 7.50 "), 7.5},
		{"garbage", ptr("call us"), 0},
		{"negative", ptr("-3"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.in))
		})
	}
}

func TestNormalizeItem(t *testing.T) {
	t.Run("all fields present", func(t *testing.T) {
		item := NormalizeItem(Row{
			ID:           7,
			Title:        ptr("Blue Widget"),
			BodyHTML:     ptr("<p>Sturdy</p>"),
			ProductType:  ptr("Tools"),
			VariantPrice: ptr("12.50"),
			VariantImage: ptr("/variant.png"),
			ImageSrc:     ptr("/main.png"),
			Quantity:     ptr(int64(4)),
		})

		assert.Equal(t, Item{
			ID:          7,
			Name:        "Blue Widget",
			Price:       12.5,
			Stock:       4,
			Sales:       0,
			Image:       "/main.png",
			Category:    "Tools",
			Description: "<p>Sturdy</p>",
		}, item)
	})

	t.Run("missing fields fall back", func(t *testing.T) {
		item := NormalizeItem(Row{ID: 8})

		assert.Equal(t, FallbackName, item.Name)
		assert.Equal(t, 0.0, item.Price)
		assert.Equal(t, int64(0), item.Stock)
		assert.Equal(t, PlaceholderImage, item.Image)
		assert.Equal(t, FallbackCategory, item.Category)
		assert.Equal(t, FallbackDescription, item.Description)
	})

	t.Run("variant image used when image_src empty", func(t *testing.T) {
		item := NormalizeItem(Row{ID: 9, ImageSrc: ptr(""), VariantImage: ptr("/variant.png")})
		assert.Equal(t, "/variant.png", item.Image)
	})

	t.Run("negative quantity normalizes to zero", func(t *testing.T) {
		item := NormalizeItem(Row{ID: 10, Quantity: ptr(int64(-2))})
		assert.Equal(t, int64(0), item.Stock)
	})

	t.Run("blank category falls back", func(t *testing.T) {
		item := NormalizeItem(Row{ID: 11, ProductType: ptr("   ")})
		assert.Equal(t, FallbackCategory, item.Category)
	})
}

func TestNormalizeShowcase(t *testing.T) {
	assert.Equal(t, ShowcaseImage{ID: 3, Image: "/a.png"}, NormalizeShowcase(Row{ID: 3, ImageSrc: ptr("/a.png")}))
	assert.Equal(t, ShowcaseImage{ID: 4, Image: PlaceholderImage}, NormalizeShowcase(Row{ID: 4}))
}

func TestNormalizeAdmin(t *testing.T) {
	t.Run("title preferred over handle", func(t *testing.T) {
		in := NormalizeAdmin(Row{ID: 1, Title: ptr("Blue Widget"), Handle: ptr("blue-widget"), VariantPrice: ptr("4.20")})
		assert.Equal(t, "Blue Widget", in.Name)
		assert.Equal(t, "4.2", in.Price.String())
	})

	t.Run("handle used when title missing", func(t *testing.T) {
		in := NormalizeAdmin(Row{ID: 2, Handle: ptr("gear-set")})
		assert.Equal(t, "gear-set", in.Name)
		assert.Equal(t, FallbackCategory, in.Category)
		assert.Equal(t, AdminPlaceholderImage, in.Image)
		assert.True(t, in.Price.IsZero())
	})
}
