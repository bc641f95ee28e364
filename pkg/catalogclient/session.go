package catalogclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
)

// Messages shown to the user.
const (
	MsgLoadFailed         = "Failed to load products"
	MsgNoProducts         = "No products found matching your criteria"
	MsgInsufficientCredit = "Insufficient credits for search"
	MsgSearchCharged      = "Search charge: 2 credits"
	MsgOrderedPrefix      = "Ordered: "
)

// DefaultDebounce is the quiet period before a search term is applied.
const DefaultDebounce = 500 * time.Millisecond

// Phase is what the view should render.
type Phase int

// View phases. Loading and Empty are never conflated.
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseEmpty
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseEmpty:
		return "empty"
	case PhaseReady:
		return "ready"
	default:
		return "idle"
	}
}

// View is a render-ready snapshot of the session.
type View struct {
	Phase       Phase
	Items       []Item
	Message     string
	Failed      bool
	SearchTerm  string
	Search      string
	Category    string
	SortBy      string
	MinPrice    float64
	MaxPrice    float64
	CurrentPage int64
	TotalPages  int64
	Total       int64
	Credits     int
}

// Detail is the quick-view of one item with sanitized description HTML.
type Detail struct {
	Item
	DescriptionHTML string
}

// ErrUnknownItem is returned for ids not on the current page.
var ErrUnknownItem = errors.New("item is not on the current page")

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock replaces the real clock used for debouncing.
func WithClock(clk clock.Clock) SessionOption {
	return func(s *Session) { s.clock = clk }
}

// WithDebounce sets the search debounce period.
func WithDebounce(d time.Duration) SessionOption {
	return func(s *Session) { s.debounce = d }
}

// WithNotifier sets where user notifications go.
func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) { s.notifier = n }
}

// WithSanitizer sets the description sanitizer.
func WithSanitizer(san Sanitizer) SessionOption {
	return func(s *Session) { s.sanitizer = san }
}

// WithCredits sets the starting search credit balance.
func WithCredits(n int) SessionOption {
	return func(s *Session) { s.credits.balance = n }
}

// WithPageSize sets the number of items per page.
func WithPageSize(n int64) SessionOption {
	return func(s *Session) { s.limit = n }
}

// WithSessionLogger sets the logger.
func WithSessionLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// Session is the stateful browsing loop. Every effective filter change
// issues exactly one fetch; only the most recently triggered fetch may
// update the state.
type Session struct {
	fetcher   Fetcher
	clock     clock.Clock
	notifier  Notifier
	sanitizer Sanitizer
	logger    *zap.Logger
	debounce  time.Duration
	limit     int64

	mu         sync.Mutex
	searchTerm string
	search     string
	category   string
	sortBy     string
	minPrice   float64
	maxPrice   float64
	page       int64
	totalPages int64
	total      int64
	items      []Item
	loading    bool
	started    bool
	failed     bool
	credits    credits

	timer       clock.Timer
	debounceGen uint64
	generation  uint64
	cancel      context.CancelFunc
	inflight    sync.WaitGroup
}

// NewSession creates an idle session. Call Start to load the first page.
func NewSession(fetcher Fetcher, opts ...SessionOption) *Session {
	q := DefaultQuery()
	s := &Session{
		fetcher:   fetcher,
		clock:     clock.NewRealClock(),
		notifier:  NotifierFunc(func(Severity, string) {}),
		sanitizer: NewHTMLSanitizer(),
		logger:    zap.NewNop(),
		debounce:  DefaultDebounce,
		limit:     q.Limit,
		category:  q.Category,
		sortBy:    q.SortBy,
		minPrice:  q.MinPrice,
		maxPrice:  q.MaxPrice,
		page:      1,
		credits:   credits{balance: DefaultCredits},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start issues the initial fetch. Later calls do nothing.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.triggerLocked()
}

// Type records a keystroke. Only the term still present once the
// debounce period passes without further keystrokes is searched.
func (s *Session) Type(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.typeLocked(term)
}

func (s *Session) typeLocked(term string) {
	s.searchTerm = term
	if s.timer != nil {
		s.timer.Stop()
	}
	s.debounceGen++
	gen := s.debounceGen
	s.timer = s.clock.AfterFunc(s.debounce, func() { s.settleSearch(gen) })
}

// settleSearch applies the typed term. A callback that fired while a newer
// keystroke was being recorded finds a newer gen and does nothing.
func (s *Session) settleSearch(gen uint64) {
	var notes []note

	s.mu.Lock()
	if gen != s.debounceGen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	if s.searchTerm == s.search {
		s.mu.Unlock()
		return
	}
	s.search = s.searchTerm
	if s.search != "" {
		if s.credits.charge(SearchCost) {
			notes = append(notes, note{SeveritySuccess, MsgSearchCharged})
		} else {
			notes = append(notes, note{SeverityError, MsgInsufficientCredit})
		}
	}
	s.page = 1
	// Before Start the term is only recorded; Start fetches with it.
	if s.started {
		s.triggerLocked()
	}
	s.mu.Unlock()

	s.notify(notes)
}

// SetCategory filters by category. "all" removes the filter.
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == s.category {
		return
	}
	s.category = category
	s.page = 1
	s.triggerLocked()
}

// SetSort changes the sort key, e.g. "name-desc".
func (s *Session) SetSort(sortBy string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sortBy == s.sortBy {
		return
	}
	s.sortBy = sortBy
	s.page = 1
	s.triggerLocked()
}

// SetPriceRange changes the inclusive price bounds.
func (s *Session) SetPriceRange(minPrice, maxPrice float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if minPrice == s.minPrice && maxPrice == s.maxPrice {
		return
	}
	s.minPrice, s.maxPrice = minPrice, maxPrice
	s.page = 1
	s.triggerLocked()
}

// SetPage moves to page. Pages below 1 or past the last known page are ignored.
func (s *Session) SetPage(page int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page == s.page || page < 1 || (s.totalPages > 0 && page > s.totalPages) {
		return
	}
	s.page = page
	s.triggerLocked()
}

// triggerLocked supersedes any in-flight fetch and starts a new one.
func (s *Session) triggerLocked() {
	s.generation++
	gen := s.generation
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true
	s.failed = false
	s.items = nil

	q := s.queryLocked()
	s.inflight.Add(1)
	go s.fetch(ctx, gen, q)
}

func (s *Session) queryLocked() Query {
	return Query{
		Page:     s.page,
		Limit:    s.limit,
		Search:   s.search,
		Category: s.category,
		SortBy:   s.sortBy,
		MinPrice: s.minPrice,
		MaxPrice: s.maxPrice,
	}
}

func (s *Session) fetch(ctx context.Context, gen uint64, q Query) {
	defer s.inflight.Done()

	page, err := s.fetcher.Fetch(ctx, q)

	var notes []note
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("discarding superseded catalog response", zap.Uint64("generation", gen))
		return
	}
	s.loading = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if err != nil {
		s.logger.Warn("catalog fetch failed", zap.Error(err), zap.String("query", q.Key()))
		s.failed = true
		s.items = []Item{}
		s.total = 0
		s.totalPages = 0
		notes = append(notes, note{SeverityError, MsgLoadFailed})
	} else {
		s.items = page.Items
		s.total = page.Total
		s.totalPages = page.TotalPages
		if page.CurrentPage > 0 {
			s.page = page.CurrentPage
		}
	}
	s.mu.Unlock()

	s.notify(notes)
}

// View returns a snapshot for rendering. While loading, no items are reported.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Failed:      s.failed,
		SearchTerm:  s.searchTerm,
		Search:      s.search,
		Category:    s.category,
		SortBy:      s.sortBy,
		MinPrice:    s.minPrice,
		MaxPrice:    s.maxPrice,
		CurrentPage: s.page,
		TotalPages:  s.totalPages,
		Total:       s.total,
		Credits:     s.credits.balance,
	}
	switch {
	case !s.started:
		v.Phase = PhaseIdle
	case s.loading:
		v.Phase = PhaseLoading
	case len(s.items) == 0:
		v.Phase = PhaseEmpty
		v.Message = MsgNoProducts
		v.Items = []Item{}
	default:
		v.Phase = PhaseReady
		v.Items = append([]Item(nil), s.items...)
	}
	return v
}

// Select returns the quick-view for an item on the current page.
func (s *Session) Select(id int64) (Detail, error) {
	item, ok := s.find(id)
	if !ok {
		return Detail{}, ErrUnknownItem
	}
	return Detail{Item: item, DescriptionHTML: s.sanitizer.Sanitize(item.Description)}, nil
}

// Order acknowledges an order for an item on the current page. It has
// no effect beyond the notification.
func (s *Session) Order(id int64) error {
	item, ok := s.find(id)
	if !ok {
		return ErrUnknownItem
	}
	s.notifier.Notify(SeveritySuccess, MsgOrderedPrefix+item.Name)
	return nil
}

func (s *Session) find(id int64) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return Item{}, false
	}
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Pending reports whether a typed search term is still waiting out the
// debounce period.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Wait blocks until every fetch started so far has returned.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Close stops the debounce timer and cancels the in-flight fetch.
func (s *Session) Close() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.debounceGen++
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.Wait()
}

type note struct {
	severity Severity
	message  string
}

// notify runs outside the lock so notifiers may call back into the session.
func (s *Session) notify(notes []note) {
	for _, n := range notes {
		s.notifier.Notify(n.severity, n.message)
	}
}
