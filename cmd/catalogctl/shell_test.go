package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/pkg/catalogclient"
)

// stockFetcher serves a fixed inventory, filtered by search term.
type stockFetcher struct {
	mu      sync.Mutex
	items   []catalogclient.Item
	err     error
	queries []catalogclient.Query
}

func (f *stockFetcher) Fetch(_ context.Context, q catalogclient.Query) (*catalogclient.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}

	items := []catalogclient.Item{}
	for _, it := range f.items {
		if q.Search == "" || strings.Contains(strings.ToLower(it.Name), strings.ToLower(q.Search)) {
			items = append(items, it)
		}
	}
	pages := int64(0)
	if len(items) > 0 {
		pages = 1
	}
	return &catalogclient.Page{
		Items:       items,
		Showcase:    []catalogclient.ShowcaseImage{},
		Total:       int64(len(items)),
		TotalPages:  pages,
		CurrentPage: q.Page,
	}, nil
}

func (f *stockFetcher) Queries() []catalogclient.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalogclient.Query(nil), f.queries...)
}

func runShell(t *testing.T, f catalogclient.Fetcher, script string) string {
	t.Helper()
	var out bytes.Buffer
	sh := newShell(&out, zap.NewNop())
	sh.poll = time.Millisecond
	sh.session = catalogclient.NewSession(f,
		catalogclient.WithDebounce(time.Millisecond),
		catalogclient.WithNotifier(sh))
	defer sh.session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sh.Run(ctx, strings.NewReader(script)))
	return out.String()
}

func TestShell_BrowseSearchAndOrder(t *testing.T) {
	f := &stockFetcher{items: []catalogclient.Item{
		{ID: 3, Name: "Blue Widget", Price: 3, Stock: 7, Category: "Tools", Description: `<p>Handy<script>x()</script></p>`},
		{ID: 5, Name: "Gadget", Price: 5, Category: "Tools"},
	}}

	out := runShell(t, f, "search widget\nshow 3\norder 3\nquit\nsearch never-read\n")

	assert.Contains(t, out, "total 2")
	assert.Contains(t, out, `search="widget"`)
	assert.Contains(t, out, "Blue Widget (#3)")
	assert.Contains(t, out, "<p>Handy</p>")
	assert.NotContains(t, out, "script")
	assert.Contains(t, out, "[success] "+catalogclient.MsgSearchCharged)
	assert.Contains(t, out, "[success] Ordered: Blue Widget")
	assert.Contains(t, out, "credits 98")

	queries := f.Queries()
	require.Len(t, queries, 2)
	assert.Equal(t, "widget", queries[1].Search)
}

func TestShell_FiltersAndEmptyResult(t *testing.T) {
	f := &stockFetcher{items: []catalogclient.Item{{ID: 1, Name: "Crate"}}}

	out := runShell(t, f, "category Storage\nsort name-desc\nprice 1 20\nsearch pallet\n")

	assert.Contains(t, out, catalogclient.MsgNoProducts)
	queries := f.Queries()
	require.Len(t, queries, 5)
	assert.Equal(t, "Storage", queries[1].Category)
	assert.Equal(t, "name-desc", queries[2].SortBy)
	assert.Equal(t, 1.0, queries[3].MinPrice)
	assert.Equal(t, 20.0, queries[3].MaxPrice)
	assert.Equal(t, "pallet", queries[4].Search)
}

func TestShell_Errors(t *testing.T) {
	f := &stockFetcher{err: errors.New("connection refused")}

	out := runShell(t, f, "dance\nprice 10\npage two\nshow 1\nhelp\n")

	assert.Contains(t, out, "[error] "+catalogclient.MsgLoadFailed)
	assert.Contains(t, out, errUsage.Error())
	assert.Contains(t, out, "usage: price <min> <max>")
	assert.Contains(t, out, "invalid page")
	assert.Contains(t, out, catalogclient.ErrUnknownItem.Error())
	assert.Contains(t, out, "commands:")
	assert.NotContains(t, out, catalogclient.MsgNoProducts, "failure is not reported as an empty result")
}
