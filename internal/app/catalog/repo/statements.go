package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/models/m_inventory"
	"github.com/light-bringer/fulfillment-service/internal/pkg/query"
)

// rowColumns are the inventory columns read into a domain.Row.
var rowColumns = []string{
	m_inventory.ID,
	m_inventory.Handle,
	m_inventory.Title,
	m_inventory.BodyHTML,
	m_inventory.ProductType,
	m_inventory.Tags,
	m_inventory.VariantPrice,
	m_inventory.VariantImage,
	m_inventory.ImageSrc,
	m_inventory.Quantity,
	m_inventory.CreatedAt,
	m_inventory.UpdatedAt,
}

// sortColumns maps sort fields to the expression they order by.
var sortColumns = map[domain.SortField]string{
	domain.SortPrice:     query.SafeCastFloat64(m_inventory.VariantPrice),
	domain.SortName:      m_inventory.Title,
	domain.SortStock:     m_inventory.Quantity,
	domain.SortCreatedAt: m_inventory.CreatedAt,
}

// CatalogQuery returns the filtered builder shared by the page and count statements.
func CatalogQuery(filter domain.Filter) *query.Builder {
	q := query.From(m_inventory.TableName).
		Select(rowColumns...).
		Where(query.NotEmpty(m_inventory.Title))

	if filter.Search != "" {
		q = q.Where(query.Or(
			query.ContainsFold(m_inventory.Title, filter.Search),
			query.ContainsFold(m_inventory.Tags, filter.Search),
			query.ContainsFold(m_inventory.Handle, filter.Search),
		))
	}

	if category, ok := filter.CategoryFilter(); ok {
		q = q.Where(query.EqFold(m_inventory.ProductType, category))
	}

	return q.Where(query.Between(query.SafeCastFloat64(m_inventory.VariantPrice), filter.MinPrice, filter.MaxPrice))
}

// CatalogStatements builds the page query and its matching count query.
// Unknown sort fields produce no ORDER BY at all.
func CatalogStatements(filter domain.Filter) (list, count spanner.Statement) {
	q := CatalogQuery(filter)
	count = q.Count().Build()

	if column, ok := sortColumns[filter.Sort.Field]; ok {
		dir := query.Asc
		if filter.Sort.Desc {
			dir = query.Desc
		}
		q = q.OrderBy(column, dir).ThenBy(m_inventory.ID, query.Asc)
	}

	list = q.Limit(filter.Limit).Offset(filter.Offset()).Build()
	return list, count
}

// ShowcaseStatement selects the n newest rows that carry an image.
func ShowcaseStatement(n int64) spanner.Statement {
	return query.From(m_inventory.TableName).
		Select(m_inventory.ID, m_inventory.ImageSrc).
		Where(query.IsNotNull(m_inventory.ImageSrc)).
		OrderBy(m_inventory.ID, query.Desc).
		Limit(n).
		Build()
}

// AdminListStatements builds the id-ordered admin page and its count.
func AdminListStatements(page, limit int64) (list, count spanner.Statement) {
	q := query.From(m_inventory.TableName).Select(rowColumns...)
	count = q.Count().Build()
	list = q.OrderBy(m_inventory.ID, query.Asc).
		Limit(limit).
		Offset((page - 1) * limit).
		Build()
	return list, count
}
