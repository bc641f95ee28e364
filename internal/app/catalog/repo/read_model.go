package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/models/m_inventory"
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
	}
}

// ListCatalog runs the page and count queries in one read-only snapshot.
func (rm *ReadModelImpl) ListCatalog(ctx context.Context, filter domain.Filter) ([]domain.Row, int64, error) {
	list, count := CatalogStatements(filter)
	return rm.pageAndCount(ctx, list, count, filter.Limit)
}

// ListShowcase returns up to n newest rows with an image.
func (rm *ReadModelImpl) ListShowcase(ctx context.Context, n int64) ([]domain.Row, error) {
	iter := rm.client.Single().Query(ctx, ShowcaseStatement(n))
	return collectRows(iter, n)
}

// GetProduct retrieves a product DTO by ID.
func (rm *ReadModelImpl) GetProduct(ctx context.Context, id int64) (*contracts.ProductDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_inventory.TableName, spanner.Key{id}, rowColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_inventory.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return RowToDTO(dataToRow(&data)), nil
}

// ListProducts returns an id-ordered admin page.
func (rm *ReadModelImpl) ListProducts(ctx context.Context, page, limit int64) (*contracts.ProductList, error) {
	list, count := AdminListStatements(page, limit)
	rows, total, err := rm.pageAndCount(ctx, list, count, limit)
	if err != nil {
		return nil, err
	}

	data := make([]*contracts.ProductDTO, 0, len(rows))
	for _, row := range rows {
		data = append(data, RowToDTO(row))
	}
	return &contracts.ProductList{
		Data: data,
		Pagination: contracts.Pagination{
			Total: total,
			Pages: domain.TotalPages(total, limit),
			Page:  page,
			Limit: limit,
		},
	}, nil
}

func (rm *ReadModelImpl) pageAndCount(ctx context.Context, list, count spanner.Statement, limit int64) ([]domain.Row, int64, error) {
	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	rows, err := collectRows(txn.Query(ctx, list), limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := countRows(txn.Query(ctx, count))
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func collectRows(iter *spanner.RowIterator, capacity int64) ([]domain.Row, error) {
	defer iter.Stop()

	rows := make([]domain.Row, 0, capacity)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate inventory: %w", err)
		}

		var data m_inventory.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse inventory row: %w", err)
		}
		rows = append(rows, dataToRow(&data))
	}
	return rows, nil
}

func countRows(iter *spanner.RowIterator) (int64, error) {
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count inventory: %w", err)
	}
	var total int64
	if err := row.Column(0, &total); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return total, nil
}
