package m_inventory

// Field name constants for the inventory table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "inventory"

	ID           = "id"
	Handle       = "handle"
	Title        = "title"
	BodyHTML     = "body_html"
	Vendor       = "vendor"
	ProductType  = "product_type"
	Tags         = "tags"
	VariantPrice = "variant_price"
	VariantImage = "variant_image"
	ImageSrc     = "image_src"
	Quantity     = "quantity"
	Version      = "version"
	CreatedAt    = "created_at"
	UpdatedAt    = "updated_at"
)

// AllColumns lists every column in table order.
var AllColumns = []string{
	ID,
	Handle,
	Title,
	BodyHTML,
	Vendor,
	ProductType,
	Tags,
	VariantPrice,
	VariantImage,
	ImageSrc,
	Quantity,
	Version,
	CreatedAt,
	UpdatedAt,
}
