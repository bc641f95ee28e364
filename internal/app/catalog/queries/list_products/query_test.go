package list_products

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/repo/memory"
)

func rows(n int) []domain.Row {
	out := make([]domain.Row, 0, n)
	for i := 1; i <= n; i++ {
		title := "Crate"
		out = append(out, domain.Row{ID: int64(i), Title: &title})
	}
	return out
}

func TestQuery_Execute(t *testing.T) {
	q := NewQuery(memory.NewReadModel(rows(3)...))

	list, err := q.Execute(context.Background(), &Request{Page: 0})
	require.NoError(t, err)
	assert.Len(t, list.Data, 3)
	assert.Equal(t, int64(1), list.Pagination.Page)
	assert.Equal(t, PageSize, list.Pagination.Limit)

	list, err = q.Execute(context.Background(), &Request{Page: 2})
	require.NoError(t, err)
	assert.Empty(t, list.Data)
}

func TestQuery_RejectsPagePastRepresentableOffset(t *testing.T) {
	q := NewQuery(memory.NewReadModel(rows(3)...))

	for _, page := range []int64{math.MaxInt64/PageSize + 2, math.MaxInt64} {
		_, err := q.Execute(context.Background(), &Request{Page: page})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidParameter)

		var pe *domain.ParamError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "page", pe.Param)
	}

	_, err := q.Execute(context.Background(), &Request{Page: math.MaxInt64/PageSize + 1})
	assert.NoError(t, err)
}
