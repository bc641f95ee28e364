package list_catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
)

// Request carries the raw query-string parameters.
type Request = domain.RawFilter

// Query handles the catalog listing use case.
type Query struct {
	readModel contracts.ReadModel
	logger    *zap.Logger
}

// NewQuery creates a new list catalog query.
func NewQuery(readModel contracts.ReadModel, logger *zap.Logger) *Query {
	return &Query{
		readModel: readModel,
		logger:    logger,
	}
}

// Execute validates the parameters and returns one normalized page.
// Invalid parameters return a *domain.ParamError; storage failures
// return an error matching domain.ErrQueryFailed and never a partial page.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Page, error) {
	// 1. Validate and default parameters
	filter, err := domain.ParseFilter(*req)
	if err != nil {
		return nil, err
	}
	if !filter.Sort.Known() {
		q.logger.Warn("unknown sort field, results are in storage order",
			zap.String("sort_by", req.SortBy))
	}

	// 2. Read page, count and showcase concurrently
	var (
		rows     []domain.Row
		total    int64
		showcase []domain.Row
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, total, err = q.readModel.ListCatalog(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		showcase, err = q.readModel.ListShowcase(gctx, domain.ShowcaseSize)
		return err
	})
	if err := g.Wait(); err != nil {
		q.logger.Error("catalog query failed",
			zap.Error(err),
			zap.Int64("page", filter.Page),
			zap.Int64("limit", filter.Limit),
			zap.String("search", filter.Search),
			zap.String("category", filter.Category),
			zap.String("sort_by", filter.Sort.String()))
		return nil, fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
	}

	// 3. Normalize
	page := &domain.Page{
		Items:       make([]domain.Item, 0, len(rows)),
		Showcase:    make([]domain.ShowcaseImage, 0, len(showcase)),
		Total:       total,
		TotalPages:  domain.TotalPages(total, filter.Limit),
		CurrentPage: filter.Page,
	}
	for _, r := range rows {
		page.Items = append(page.Items, domain.NormalizeItem(r))
	}
	for _, r := range showcase {
		page.Showcase = append(page.Showcase, domain.NormalizeShowcase(r))
	}

	return page, nil
}
