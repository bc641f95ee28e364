// Package memory is an in-process catalog read model with the same filter,
// sort and paging semantics as the Spanner statements.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/repo"
)

// ReadModel holds inventory rows in memory.
type ReadModel struct {
	mu   sync.RWMutex
	rows map[int64]domain.Row
	err  error
}

var _ contracts.ReadModel = (*ReadModel)(nil)

// NewReadModel creates a read model seeded with rows.
func NewReadModel(rows ...domain.Row) *ReadModel {
	rm := &ReadModel{rows: make(map[int64]domain.Row, len(rows))}
	rm.Put(rows...)
	return rm
}

// Put inserts or replaces rows by id.
func (rm *ReadModel) Put(rows ...domain.Row) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	for _, r := range rows {
		rm.rows[r.ID] = r
	}
}

// FailWith makes every subsequent read return err. Pass nil to recover.
func (rm *ReadModel) FailWith(err error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.err = err
}

// ListCatalog filters, sorts and pages the rows.
func (rm *ReadModel) ListCatalog(ctx context.Context, filter domain.Filter) ([]domain.Row, int64, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	if err := rm.check(ctx); err != nil {
		return nil, 0, err
	}

	matched := make([]domain.Row, 0, len(rm.rows))
	for _, r := range rm.sortedByID() {
		if matches(r, filter) {
			matched = append(matched, r)
		}
	}

	if filter.Sort.Known() {
		slices.SortStableFunc(matched, func(a, b domain.Row) int {
			c := compareBy(filter.Sort.Field, a, b)
			if filter.Sort.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
	}

	return page(matched, filter.Offset(), filter.Limit), int64(len(matched)), nil
}

// ListShowcase returns up to n rows with an image, newest id first.
func (rm *ReadModel) ListShowcase(ctx context.Context, n int64) ([]domain.Row, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	if err := rm.check(ctx); err != nil {
		return nil, err
	}

	rows := rm.sortedByID()
	slices.Reverse(rows)

	out := make([]domain.Row, 0, n)
	for _, r := range rows {
		if int64(len(out)) == n {
			break
		}
		if r.ImageSrc != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// GetProduct retrieves one product for the admin surface.
func (rm *ReadModel) GetProduct(ctx context.Context, id int64) (*contracts.ProductDTO, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	if err := rm.check(ctx); err != nil {
		return nil, err
	}

	r, ok := rm.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return repo.RowToDTO(r), nil
}

// ListProducts returns an id-ordered admin page.
func (rm *ReadModel) ListProducts(ctx context.Context, pageNum, limit int64) (*contracts.ProductList, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	if err := rm.check(ctx); err != nil {
		return nil, err
	}

	rows := rm.sortedByID()
	selected := page(rows, (pageNum-1)*limit, limit)

	data := make([]*contracts.ProductDTO, 0, len(selected))
	for _, r := range selected {
		data = append(data, repo.RowToDTO(r))
	}
	total := int64(len(rows))
	return &contracts.ProductList{
		Data: data,
		Pagination: contracts.Pagination{
			Total: total,
			Pages: domain.TotalPages(total, limit),
			Page:  pageNum,
			Limit: limit,
		},
	}, nil
}

func (rm *ReadModel) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return rm.err
}

func (rm *ReadModel) sortedByID() []domain.Row {
	rows := make([]domain.Row, 0, len(rm.rows))
	for _, r := range rm.rows {
		rows = append(rows, r)
	}
	slices.SortFunc(rows, func(a, b domain.Row) int { return cmp.Compare(a.ID, b.ID) })
	return rows
}

func matches(r domain.Row, f domain.Filter) bool {
	if r.Title == nil || *r.Title == "" {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !containsFold(r.Title, needle) && !containsFold(r.Tags, needle) && !containsFold(r.Handle, needle) {
			return false
		}
	}

	if category, ok := f.CategoryFilter(); ok {
		if r.ProductType == nil || !strings.EqualFold(*r.ProductType, category) {
			return false
		}
	}

	// Text that is not a number never matches a price range.
	price, ok := castPrice(r.VariantPrice)
	return ok && price >= f.MinPrice && price <= f.MaxPrice
}

func containsFold(v *string, lowerNeedle string) bool {
	return v != nil && strings.Contains(strings.ToLower(*v), lowerNeedle)
}

func castPrice(s *string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// compareBy orders NULLs first, as Spanner does for ascending keys.
func compareBy(field domain.SortField, a, b domain.Row) int {
	switch field {
	case domain.SortPrice:
		pa, okA := castPrice(a.VariantPrice)
		pb, okB := castPrice(b.VariantPrice)
		return compareNullable(pa, okA, pb, okB)
	case domain.SortName:
		return compareNullable(deref(a.Title), a.Title != nil, deref(b.Title), b.Title != nil)
	case domain.SortStock:
		return compareNullable(deref(a.Quantity), a.Quantity != nil, deref(b.Quantity), b.Quantity != nil)
	case domain.SortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return 0
}

func compareNullable[T cmp.Ordered](a T, okA bool, b T, okB bool) int {
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return cmp.Compare(a, b)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func page(rows []domain.Row, offset, limit int64) []domain.Row {
	if offset >= int64(len(rows)) {
		return []domain.Row{}
	}
	end := min(offset+limit, int64(len(rows)))
	return rows[offset:end]
}
