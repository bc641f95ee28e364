package repo

import (
	"strings"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/models/m_inventory"
)

// dataToRow converts database Data to a domain Row.
func dataToRow(data *m_inventory.Data) domain.Row {
	return domain.Row{
		ID:           data.ID,
		Handle:       stringPtr(data.Handle),
		Title:        stringPtr(data.Title),
		BodyHTML:     stringPtr(data.BodyHTML),
		ProductType:  stringPtr(data.ProductType),
		Tags:         stringPtr(data.Tags),
		VariantPrice: stringPtr(data.VariantPrice),
		VariantImage: stringPtr(data.VariantImage),
		ImageSrc:     stringPtr(data.ImageSrc),
		Quantity:     int64Ptr(data.Quantity),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// RowToDTO builds the admin view of a row.
func RowToDTO(row domain.Row) *contracts.ProductDTO {
	in := domain.NormalizeAdmin(row)
	return &contracts.ProductDTO{
		ID:        row.ID,
		Name:      in.Name,
		Price:     in.Price,
		Stock:     in.Stock,
		Category:  in.Category,
		Image:     in.Image,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func stringPtr(ns spanner.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.StringVal
	return &s
}

func int64Ptr(ni spanner.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

// nullString stores blank strings as NULL.
func nullString(s string) spanner.NullString {
	s = strings.TrimSpace(s)
	return spanner.NullString{StringVal: s, Valid: s != ""}
}
