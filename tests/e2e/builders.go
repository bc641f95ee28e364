//go:build integration

package e2e

// ProductBuilder helps create admin product bodies with a fluent interface
type ProductBuilder struct {
	name     string
	category string
	image    string
	price    string
	stock    int64
}

// NewProductBuilder creates a new builder with default values
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		name:     "Test Product",
		category: "Tools",
		image:    "/img/test.png",
		price:    "100.00",
		stock:    10,
	}
}

// WithName sets the product name
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.name = name
	return b
}

// WithCategory sets the product category
func (b *ProductBuilder) WithCategory(category string) *ProductBuilder {
	b.category = category
	return b
}

// WithImage sets the product image
func (b *ProductBuilder) WithImage(image string) *ProductBuilder {
	b.image = image
	return b
}

// WithPrice sets the price as decimal text
func (b *ProductBuilder) WithPrice(price string) *ProductBuilder {
	b.price = price
	return b
}

// WithStock sets the stock level
func (b *ProductBuilder) WithStock(stock int64) *ProductBuilder {
	b.stock = stock
	return b
}

// Build returns the JSON body for POST /api/products
func (b *ProductBuilder) Build() map[string]any {
	return map[string]any{
		"name":     b.name,
		"price":    b.price,
		"stock":    b.stock,
		"category": b.category,
		"image":    b.image,
	}
}
