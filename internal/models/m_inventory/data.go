package m_inventory

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the inventory table.
// Most columns are nullable because rows come from an external product feed.
type Data struct {
	ID           int64              `spanner:"id"`
	Handle       spanner.NullString `spanner:"handle"`
	Title        spanner.NullString `spanner:"title"`
	BodyHTML     spanner.NullString `spanner:"body_html"`
	Vendor       spanner.NullString `spanner:"vendor"`
	ProductType  spanner.NullString `spanner:"product_type"`
	Tags         spanner.NullString `spanner:"tags"`
	VariantPrice spanner.NullString `spanner:"variant_price"`
	VariantImage spanner.NullString `spanner:"variant_image"`
	ImageSrc     spanner.NullString `spanner:"image_src"`
	Quantity     spanner.NullInt64  `spanner:"quantity"`
	Version      int64              `spanner:"version"`
	CreatedAt    time.Time          `spanner:"created_at"`
	UpdatedAt    time.Time          `spanner:"updated_at"`
}
