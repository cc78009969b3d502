// Package liststate holds the list-page controller shared by every master data
// screen: it owns the full dataset of one list, derives the filtered, sorted and
// paged view, and mediates status toggles against the API.
package liststate

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

// DefaultPageSize matches the page size used by every master data screen.
const DefaultPageSize = 5

// Status values shared by the master data entities.
const (
	StatusActive   = "Aktif"
	StatusInactive = "Tidak Aktif"
	StatusAll      = "Semua"
)

// State is the controller lifecycle state.
type State int

const (
	Idle State = iota
	Loading
	Ready
	LoadFailed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case LoadFailed:
		return "load_failed"
	default:
		return "idle"
	}
}

// Query carries the filter hints passed to the API on load.
type Query struct {
	Sort   string
	Search string
	Status string
}

// ViewState is the user-controlled selection that drives derivation.
type ViewState struct {
	Search  string
	SortKey string
	Status  string
	Page    int
}

// Loader fetches the complete dataset for a query.
type Loader[R any] func(ctx context.Context, q Query) ([]R, error)

// Config parameterises a controller for one entity list.
type Config[R any] struct {
	Name         string
	Load         Loader[R]
	ID           func(R) string
	SearchFields []func(R) string
	// Status reads the status field; nil disables the status predicate.
	Status        func(R) string
	AllStatus     string
	DefaultStatus string
	Sorts         []SortOption[R]
	Project       func(no int, r R) RowView
	PageSize      int
	Toggles       map[string]Toggle[R]
	// LoadFailure is the notification used when the error carries no message.
	LoadFailure string

	Confirmer Confirmer
	Notifier  Notifier
	Observer  Observer
	Logger    *slog.Logger
}

// Controller owns a Dataset and ViewState. Methods are safe for concurrent use;
// the lock is never held across a call to the API.
type Controller[R any] struct {
	cfg Config[R]

	mu      sync.Mutex
	state   State
	dataset []R
	view    ViewState
	lastErr error
}

// New builds a controller in the Idle state with an empty dataset.
func New[R any](cfg Config[R]) *Controller[R] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = discardNotifier{}
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	view := ViewState{Status: cfg.DefaultStatus, Page: 1}
	if len(cfg.Sorts) > 0 {
		view.SortKey = cfg.Sorts[0].Key
	}
	return &Controller[R]{cfg: cfg, state: Idle, view: view}
}

// Name returns the list identifier.
func (c *Controller[R]) Name() string { return c.cfg.Name }

// PageSize returns the configured page size.
func (c *Controller[R]) PageSize() int { return c.cfg.PageSize }

// Sorts exposes the configured sort options for filter widgets.
func (c *Controller[R]) Sorts() []SortOption[R] { return c.cfg.Sorts }

// State reports the lifecycle state.
func (c *Controller[R]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns a copy of the current ViewState.
func (c *Controller[R]) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Err returns the error of the last failed load, if the controller is in LoadFailed.
func (c *Controller[R]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Len returns the size of the resident dataset.
func (c *Controller[R]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dataset)
}

// SetSearch replaces the search term and resets the page.
func (c *Controller[R]) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Search = term
	c.view.Page = 1
}

// SetStatusFilter replaces the status filter and resets the page.
func (c *Controller[R]) SetStatusFilter(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Status = status
	c.view.Page = 1
}

// SetSort replaces the sort key. The page is kept.
func (c *Controller[R]) SetSort(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SortKey = key
}

// SetPage moves to page n when it lies within the filtered range and reports
// whether it did.
func (c *Controller[R]) SetPage(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := len(c.filteredLocked())
	pages := pageCount(total, c.cfg.PageSize)
	if n < 1 || n > pages {
		return false
	}
	c.view.Page = n
	return true
}

// ApplySearch sets the search term and reloads from the API.
func (c *Controller[R]) ApplySearch(ctx context.Context, term string, opts ...CallOption) error {
	c.SetSearch(term)
	return c.Load(ctx, opts...)
}

// ApplyFilter sets sort and status together and reloads from the API.
func (c *Controller[R]) ApplyFilter(ctx context.Context, sortKey, status string, opts ...CallOption) error {
	c.mu.Lock()
	c.view.SortKey = sortKey
	c.view.Status = status
	c.view.Page = 1
	c.mu.Unlock()
	return c.Load(ctx, opts...)
}

// Load fetches the dataset using the current ViewState as filter hints.
func (c *Controller[R]) Load(ctx context.Context, opts ...CallOption) error {
	c.mu.Lock()
	q := Query{Sort: c.view.SortKey, Search: c.view.Search, Status: c.view.Status}
	c.mu.Unlock()
	return c.LoadWith(ctx, q, opts...)
}

// LoadWith fetches the dataset for q. On success the dataset is replaced and the
// page reset; on failure the dataset is emptied and one error notification fires.
// Concurrent loads are not coalesced: the last one to resolve wins.
func (c *Controller[R]) LoadWith(ctx context.Context, q Query, opts ...CallOption) error {
	call := c.newCall(opts)

	c.mu.Lock()
	c.state = Loading
	c.mu.Unlock()

	start := time.Now()
	records, err := c.cfg.Load(ctx, q)
	c.cfg.Observer.ObserveLoad(c.cfg.Name, time.Since(start), err)

	c.mu.Lock()
	if err != nil {
		c.dataset = nil
		c.state = LoadFailed
		c.lastErr = err
		c.view.Page = 1
		c.mu.Unlock()
		c.cfg.Logger.Warn("list load failed", slog.String("list", c.cfg.Name), slog.Any("error", err))
		call.notifier.NotifyError(ctx, shared.UserMessage(err, c.cfg.LoadFailure))
		return err
	}
	c.dataset = records
	c.state = Ready
	c.lastErr = nil
	c.view.Page = 1
	c.mu.Unlock()
	c.cfg.Logger.Debug("list loaded", slog.String("list", c.cfg.Name), slog.Int("records", len(records)))
	return nil
}

// Find returns the resident record with the given id.
func (c *Controller[R]) Find(id string) (R, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.findLocked(id)
}

func (c *Controller[R]) findLocked(id string) (R, bool) {
	var zero R
	if c.cfg.ID == nil {
		return zero, false
	}
	id = strings.TrimSpace(id)
	for _, r := range c.dataset {
		if c.cfg.ID(r) == id {
			return r, true
		}
	}
	return zero, false
}

func pageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
