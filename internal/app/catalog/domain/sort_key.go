package domain

import "strings"

// DefaultSortBy is applied when the request carries no sortBy.
const DefaultSortBy = "price-asc"

// SortField is a sortable catalog attribute.
type SortField string

const (
	SortPrice     SortField = "price"
	SortName      SortField = "name"
	SortStock     SortField = "stock"
	SortCreatedAt SortField = "createdAt"
)

// SortKey is a parsed "<field>-<direction>" value.
type SortKey struct {
	Field SortField
	Desc  bool
}

// Known reports whether the field is one of the supported sort fields.
// Unknown fields produce no ordering at all.
func (k SortKey) Known() bool {
	switch k.Field {
	case SortPrice, SortName, SortStock, SortCreatedAt:
		return true
	}
	return false
}

// String renders the key back to "<field>-<direction>".
func (k SortKey) String() string {
	if k.Desc {
		return string(k.Field) + "-desc"
	}
	return string(k.Field) + "-asc"
}

// ParseSortKey splits s at its last '-'. Any direction other than "desc"
// (case-insensitive) sorts ascending.
func ParseSortKey(s string) SortKey {
	s = strings.TrimSpace(s)
	field, dir := s, ""
	if i := strings.LastIndex(s, "-"); i >= 0 {
		field, dir = s[:i], s[i+1:]
	}
	return SortKey{Field: SortField(field), Desc: strings.EqualFold(dir, "desc")}
}
