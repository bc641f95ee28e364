package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field names for change tracking
const (
	FieldName     = "name"
	FieldPrice    = "price"
	FieldStock    = "stock"
	FieldCategory = "category"
	FieldImage    = "image"
)

// Product is the aggregate root for admin inventory management.
// The admin surface edits name, price, stock, category and image; feed
// columns such as body_html and tags are left untouched.
type Product struct {
	id        int64
	name      string
	price     decimal.Decimal
	stock     int64
	category  string
	image     string
	version   int64
	createdAt time.Time
	updatedAt time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// ProductInput carries admin-editable fields.
type ProductInput struct {
	Name     string
	Price    decimal.Decimal
	Stock    int64
	Category string
	Image    string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if in.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if in.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

// NewProduct creates a new Product aggregate (for creation).
func NewProduct(id int64, in ProductInput, now time.Time) (*Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &Product{
		id:        id,
		name:      strings.TrimSpace(in.Name),
		price:     in.Price,
		stock:     in.Stock,
		category:  strings.TrimSpace(in.Category),
		image:     strings.TrimSpace(in.Image),
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
	}
	for _, f := range []string{FieldName, FieldPrice, FieldStock, FieldCategory, FieldImage} {
		p.changes.MarkDirty(f)
	}

	p.recordEvent(&ProductCreatedEvent{
		ProductID: p.id,
		Name:      p.name,
		Price:     p.price,
		Stock:     p.stock,
		Category:  p.category,
		CreatedAt: now,
	})
	return p, nil
}

// ReconstructProduct reconstitutes a Product from storage.
func ReconstructProduct(id int64, in ProductInput, version int64, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:        id,
		name:      in.Name,
		price:     in.Price,
		stock:     in.Stock,
		category:  in.Category,
		image:     in.Image,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
		changes:   NewChangeTracker(),
	}
}

// Getters
func (p *Product) ID() int64                   { return p.id }
func (p *Product) Name() string                { return p.name }
func (p *Product) Price() decimal.Decimal      { return p.price }
func (p *Product) Stock() int64                { return p.stock }
func (p *Product) Category() string            { return p.category }
func (p *Product) Image() string               { return p.image }
func (p *Product) Version() int64              { return p.version }
func (p *Product) CreatedAt() time.Time        { return p.createdAt }
func (p *Product) UpdatedAt() time.Time        { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker     { return p.changes }
func (p *Product) DomainEvents() []DomainEvent { return p.events }

// Update replaces all admin-editable fields, marking only those that
// actually differ. It records one ProductUpdatedEvent when anything changed.
func (p *Product) Update(in ProductInput, now time.Time) error {
	if err := in.validate(); err != nil {
		return err
	}

	name := strings.TrimSpace(in.Name)
	if name != p.name {
		p.name = name
		p.changes.MarkDirty(FieldName)
	}
	if !in.Price.Equal(p.price) {
		p.price = in.Price
		p.changes.MarkDirty(FieldPrice)
	}
	if in.Stock != p.stock {
		p.stock = in.Stock
		p.changes.MarkDirty(FieldStock)
	}
	if category := strings.TrimSpace(in.Category); category != p.category {
		p.category = category
		p.changes.MarkDirty(FieldCategory)
	}
	if image := strings.TrimSpace(in.Image); image != p.image {
		p.image = image
		p.changes.MarkDirty(FieldImage)
	}

	if !p.changes.HasChanges() {
		return nil
	}
	p.updatedAt = now
	p.recordEvent(&ProductUpdatedEvent{
		ProductID:     p.id,
		ChangedFields: p.changes.DirtyFields(),
		UpdatedAt:     now,
	})
	return nil
}

// MarkDeleted records the deletion event. The row itself is removed by the repository.
func (p *Product) MarkDeleted(now time.Time) {
	p.recordEvent(&ProductDeletedEvent{ProductID: p.id, DeletedAt: now})
}

// recordEvent adds a domain event to the list of events.
func (p *Product) recordEvent(event DomainEvent) {
	p.events = append(p.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (p *Product) ClearEvents() {
	p.events = nil
}
