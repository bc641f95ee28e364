package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/pkg/catalogclient"
)

const usage = `commands:
  search [term]       search titles, tags and handles (empty clears)
  category <name>     filter by category, "all" clears
  sort <field-dir>    price-asc, price-desc, name-asc, stock-desc, createdAt-desc
  price <min> <max>   inclusive price range
  page <n> | next | prev
  show <id>           quick view of an item on this page
  order <id>          order an item on this page
  view                redraw
  help
  quit`

var errUsage = errors.New("unknown command, type help")

// shell reads one command per line and redraws the session after each.
// It is also the session's Notifier.
type shell struct {
	session *catalogclient.Session
	log     *catalogclient.LogNotifier
	poll    time.Duration

	mu  sync.Mutex
	out io.Writer
}

func newShell(out io.Writer, logger *zap.Logger) *shell {
	return &shell{
		out:  out,
		log:  catalogclient.NewLogNotifier(logger),
		poll: 10 * time.Millisecond,
	}
}

// Notify prints a toast line.
func (sh *shell) Notify(severity catalogclient.Severity, message string) {
	sh.log.Notify(severity, message)
	sh.printf("[%s] %s\n", severity, message)
}

// Run loads the first page and serves commands until quit, EOF or ctx ends.
func (sh *shell) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	sh.session.Start()
	if sh.settle(ctx) != nil {
		return nil
	}
	sh.render()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			quit, err := sh.exec(ctx, strings.TrimSpace(line))
			if err != nil {
				sh.printf("error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

func (sh *shell) exec(ctx context.Context, line string) (bool, error) {
	if line == "" {
		return false, nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	s := sh.session

	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true, nil
	case "help":
		sh.printf("%s\n", usage)
		return false, nil
	case "view":
	case "search":
		s.Type(rest)
	case "category":
		if rest == "" {
			return false, errors.New("category name required")
		}
		s.SetCategory(rest)
	case "sort":
		if rest == "" {
			return false, errors.New("sort key required")
		}
		s.SetSort(rest)
	case "price":
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return false, errors.New("usage: price <min> <max>")
		}
		minPrice, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return false, fmt.Errorf("invalid min price: %w", err)
		}
		maxPrice, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return false, fmt.Errorf("invalid max price: %w", err)
		}
		s.SetPriceRange(minPrice, maxPrice)
	case "page":
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid page: %w", err)
		}
		s.SetPage(n)
	case "next":
		s.SetPage(s.View().CurrentPage + 1)
	case "prev":
		s.SetPage(s.View().CurrentPage - 1)
	case "show":
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid id: %w", err)
		}
		d, err := s.Select(id)
		if err != nil {
			return false, err
		}
		sh.renderDetail(d)
		return false, nil
	case "order":
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid id: %w", err)
		}
		return false, s.Order(id)
	default:
		return false, errUsage
	}

	if sh.settle(ctx) != nil {
		return true, nil
	}
	sh.render()
	return false, nil
}

// settle waits out the search debounce and the resulting fetch.
func (sh *shell) settle(ctx context.Context) error {
	for sh.session.Pending() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sh.poll):
		}
	}
	sh.session.Wait()
	return nil
}

func (sh *shell) render() {
	v := sh.session.View()

	sh.mu.Lock()
	defer sh.mu.Unlock()

	fmt.Fprintf(sh.out, "page %d/%d  total %d  credits %d  search=%q category=%s sort=%s price=%g..%g\n",
		v.CurrentPage, v.TotalPages, v.Total, v.Credits, v.Search, v.Category, v.SortBy, v.MinPrice, v.MaxPrice)

	switch v.Phase {
	case catalogclient.PhaseIdle, catalogclient.PhaseLoading:
		fmt.Fprintln(sh.out, "loading...")
	case catalogclient.PhaseEmpty:
		if !v.Failed {
			fmt.Fprintln(sh.out, v.Message)
		}
	case catalogclient.PhaseReady:
		tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY")
		for _, it := range v.Items {
			fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\t%s\n", it.ID, it.Name, it.Price, it.Stock, it.Category)
		}
		_ = tw.Flush()
	}
}

func (sh *shell) renderDetail(d catalogclient.Detail) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	fmt.Fprintf(sh.out, "%s (#%d)\n", d.Name, d.ID)
	fmt.Fprintf(sh.out, "  price:    %.2f\n", d.Price)
	fmt.Fprintf(sh.out, "  stock:    %d\n", d.Stock)
	fmt.Fprintf(sh.out, "  category: %s\n", d.Category)
	fmt.Fprintf(sh.out, "  image:    %s\n", d.Image)
	for _, img := range d.AdditionalImages {
		fmt.Fprintf(sh.out, "            %s\n", img)
	}
	fmt.Fprintf(sh.out, "  %s\n", d.DescriptionHTML)
}

func (sh *shell) printf(format string, args ...any) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	fmt.Fprintf(sh.out, format, args...)
}
