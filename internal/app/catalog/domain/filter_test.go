package domain

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter_Defaults(t *testing.T) {
	f, err := ParseFilter(RawFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.Page)
	assert.Equal(t, int64(9), f.Limit)
	assert.Equal(t, "", f.Search)
	assert.Equal(t, SortKey{Field: SortPrice}, f.Sort)
	assert.Equal(t, 0.0, f.MinPrice)
	assert.Equal(t, 1000.0, f.MaxPrice)
	assert.Equal(t, int64(0), f.Offset())
}

func TestParseFilter_Coercion(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawFilter
		wantPage  int64
		wantLimit int64
	}{
		{"page zero coerced to one", RawFilter{Page: "0"}, 1, 9},
		{"negative page coerced to one", RawFilter{Page: "-4"}, 1, 9},
		{"limit clamped to max", RawFilter{Limit: "5000"}, 1, 100},
		{"limit clamped to one", RawFilter{Limit: "0"}, 1, 1},
		{"whitespace tolerated", RawFilter{Page: " 3 ", Limit: " 12"}, 3, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantLimit, f.Limit)
		})
	}
}

func TestParseFilter_InvalidParameters(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawFilter
		wantParam string
	}{
		{"page not a number", RawFilter{Page: "two"}, "page"},
		{"page offset overflows", RawFilter{Page: "1024819115206086202"}, "page"},
		{"page offset overflows at max limit", RawFilter{Page: "92233720368547760", Limit: "100"}, "page"},
		{"limit not a number", RawFilter{Limit: "9.5"}, "limit"},
		{"minPrice not a number", RawFilter{MinPrice: "cheap"}, "minPrice"},
		{"maxPrice NaN", RawFilter{MaxPrice: "NaN"}, "maxPrice"},
		{"maxPrice infinite", RawFilter{MaxPrice: "Inf"}, "maxPrice"},
		{"negative minPrice", RawFilter{MinPrice: "-1"}, "minPrice"},
		{"min above max", RawFilter{MinPrice: "50", MaxPrice: "10"}, "minPrice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)

			var pe *ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantParam, pe.Param)
			assert.Contains(t, pe.Detail(), tt.wantParam+": ")
		})
	}
}

func TestFilter_Offset(t *testing.T) {
	for page := int64(1); page <= 5; page++ {
		f := Filter{Page: page, Limit: 9}
		assert.Equal(t, (page-1)*9, f.Offset())
	}
}

func TestPageInRange(t *testing.T) {
	assert.True(t, PageInRange(1, 9))
	assert.True(t, PageInRange(math.MaxInt64/9+1, 9))
	assert.False(t, PageInRange(math.MaxInt64/9+2, 9))
	assert.False(t, PageInRange(math.MaxInt64, 100))

	f, err := ParseFilter(RawFilter{Page: strconv.FormatInt(math.MaxInt64/9+1, 10)})
	require.NoError(t, err)
	assert.Equal(t, (f.Page-1)*9, f.Offset())
	assert.GreaterOrEqual(t, f.Offset(), int64(0))
}

func TestFilter_CategoryFilter(t *testing.T) {
	for _, category := range []string{"", "all", "ALL", "All"} {
		_, apply := Filter{Category: category}.CategoryFilter()
		assert.False(t, apply, "category %q must not filter", category)
	}

	value, apply := Filter{Category: "Tools"}.CategoryFilter()
	assert.True(t, apply)
	assert.Equal(t, "Tools", value)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int64
	}{
		{0, 9, 0},
		{1, 9, 1},
		{9, 9, 1},
		{10, 9, 2},
		{12, 9, 2},
		{18, 9, 2},
		{19, 9, 3},
		{250, 100, 3},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in    string
		want  SortKey
		known bool
	}{
		{"price-asc", SortKey{Field: SortPrice}, true},
		{"price-desc", SortKey{Field: SortPrice, Desc: true}, true},
		{"name-DESC", SortKey{Field: SortName, Desc: true}, true},
		{"stock-sideways", SortKey{Field: SortStock}, true},
		{"createdAt-desc", SortKey{Field: SortCreatedAt, Desc: true}, true},
		{"name", SortKey{Field: SortName}, true},
		{"popularity-desc", SortKey{Field: "popularity", Desc: true}, false},
		{"", SortKey{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseSortKey(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, got.Known())
		})
	}

	assert.Equal(t, "price-desc", SortKey{Field: SortPrice, Desc: true}.String())
}
