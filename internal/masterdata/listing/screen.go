// Package listing serves list-state controllers over HTTP. Each master data
// entity describes its screen once; this package keeps one controller per
// session and list, maps query parameters onto controller operations, and
// renders the derived page.
package listing

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/shared"
	"github.com/odyssey-erp/hrportal/internal/view"
)

// Query parameters understood by list pages.
const (
	ParamSearch  = "q"
	ParamSort    = "sort"
	ParamStatus  = "status"
	ParamPage    = "page"
	ParamRefresh = "refresh"
)

// Deps are the collaborators shared by every list screen.
type Deps struct {
	Logger      *slog.Logger
	Templates   *view.Engine
	CSRF        *shared.CSRFManager
	Codec       *shared.IDCodec
	Audit       *shared.AuditLogger
	Idempotency *shared.IdempotencyStore
	Observer    liststate.Observer
	PageSize    int
	IdleTTL     time.Duration
}

// Column is a table header.
type Column struct {
	Label string
	Align liststate.Align
}

// Scope narrows a list to one parent record, such as the benefits of a golongan.
type Scope struct {
	ID    string
	Token string
	Label string
}

// Crumb is one breadcrumb entry; an empty URL renders as plain text.
type Crumb struct {
	Label string
	URL   string
}

// Screen describes one entity list.
type Screen[R any] struct {
	Name       string
	Title      string
	Path       string
	Columns    []Column
	Statuses   []string
	CreatePerm string
	EditPerm   string
	Breadcrumb []Crumb
	// Scope resolves the parent record; nil for top-level lists.
	Scope func(r *http.Request) (Scope, error)
	// Base returns the list URL for a scope; nil means Path.
	Base func(scope Scope) string
	// ParentPath is where scope failures redirect.
	ParentPath string
	// Detail returns the detail URL of a row; nil hides the action.
	Detail func(base, token string) string
	// Config builds the controller configuration for one session.
	Config func(sess auth.Session, scope Scope) liststate.Config[R]
}

// Handler serves one Screen.
type Handler[R any] struct {
	screen Screen[R]
	deps   Deps
	reg    *liststate.Registry[R]
}

// New constructs a Handler.
func New[R any](screen Screen[R], deps Deps) *Handler[R] {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.IdleTTL <= 0 {
		deps.IdleTTL = 15 * time.Minute
	}
	return &Handler[R]{screen: screen, deps: deps, reg: liststate.NewRegistry[R](deps.IdleTTL)}
}

// Registry exposes the controller registry so the caller can run its sweeper.
func (h *Handler[R]) Registry() *liststate.Registry[R] { return h.reg }

// Screen returns the screen description.
func (h *Handler[R]) Screen() Screen[R] { return h.screen }

// MountRoutes registers list and toggle routes.
func (h *Handler[R]) MountRoutes(r chi.Router) {
	r.Get("/", h.index)
	r.Get("/data.json", h.data)
	r.Get("/{token}/toggle/{column}", h.showToggle)
	r.Post("/{token}/toggle/{column}", h.commitToggle)
}

// Controller returns the controller of the requesting session, creating it on
// first use.
func (h *Handler[R]) Controller(r *http.Request) (*liststate.Controller[R], Scope, error) {
	sess, _ := auth.FromContext(r.Context())
	var scope Scope
	if h.screen.Scope != nil {
		var err error
		scope, err = h.screen.Scope(r)
		if err != nil {
			return nil, Scope{}, err
		}
	}
	key := sess.Fingerprint() + ":" + h.screen.Name
	if scope.ID != "" {
		key += ":" + scope.ID
	}
	ctrl, _ := h.reg.Get(key, func() *liststate.Controller[R] {
		cfg := h.screen.Config(sess, scope)
		if cfg.Name == "" {
			cfg.Name = h.screen.Name
		}
		if cfg.PageSize <= 0 {
			cfg.PageSize = h.deps.PageSize
		}
		if cfg.Observer == nil {
			cfg.Observer = h.deps.Observer
		}
		if cfg.Logger == nil {
			cfg.Logger = h.deps.Logger
		}
		return liststate.New(cfg)
	})
	return ctrl, scope, nil
}

// BaseURL returns the list URL for scope.
func (h *Handler[R]) BaseURL(scope Scope) string {
	if h.screen.Base != nil {
		return h.screen.Base(scope)
	}
	return h.screen.Path
}

func (h *Handler[R]) index(w http.ResponseWriter, r *http.Request) {
	ctrl, scope, err := h.Controller(r)
	if err != nil {
		h.scopeFailed(w, r, err)
		return
	}
	notifier := FlashNotifier{Session: shared.SessionFromContext(r.Context()), Inline: true}
	h.apply(r.Context(), ctrl, r.URL.Query(), liststate.WithNotifier(notifier))

	sess, _ := auth.FromContext(r.Context())
	data := h.pageData(sess, ctrl, scope)
	h.deps.Render(w, r, http.StatusOK, "pages/list.html", h.screen.Title, data)
}

// apply maps query parameters onto the controller. Search and status changes
// re-fetch from the API; sort and page changes re-derive the resident dataset.
func (h *Handler[R]) apply(ctx context.Context, ctrl *liststate.Controller[R], q url.Values, opts ...liststate.CallOption) {
	current := ctrl.View()
	search, status, sortKey := current.Search, current.Status, current.SortKey
	if q.Has(ParamSearch) {
		search = strings.TrimSpace(q.Get(ParamSearch))
	}
	if q.Has(ParamStatus) && slices.Contains(h.screen.Statuses, q.Get(ParamStatus)) {
		status = q.Get(ParamStatus)
	}
	if q.Has(ParamSort) && hasSort(ctrl.Sorts(), q.Get(ParamSort)) {
		sortKey = q.Get(ParamSort)
	}

	reload := ctrl.State() == liststate.Idle || q.Get(ParamRefresh) == "1"
	if sortKey != current.SortKey {
		ctrl.SetSort(sortKey)
	}
	if search != current.Search {
		ctrl.SetSearch(search)
		reload = true
	}
	if status != current.Status {
		ctrl.SetStatusFilter(status)
		reload = true
	}
	if reload {
		_ = ctrl.Load(ctx, opts...)
	}
	if n, err := strconv.Atoi(q.Get(ParamPage)); err == nil {
		ctrl.SetPage(n)
	}
}

func (h *Handler[R]) scopeFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.deps.Logger.Warn("list scope unresolved", slog.String("list", h.screen.Name), slog.Any("error", err))
	target := h.screen.ParentPath
	if target == "" {
		target = auth.HomePath
	}
	RedirectWithFlash(w, r, target, "error", shared.UserMessage(err, "Data induk tidak ditemukan."))
}

func hasSort[R any](sorts []liststate.SortOption[R], key string) bool {
	return slices.ContainsFunc(sorts, func(o liststate.SortOption[R]) bool { return o.Key == key })
}

// ListURL builds a list link preserving the view selection.
func ListURL(base string, v liststate.ViewState, page int) string {
	q := url.Values{}
	q.Set(ParamSearch, v.Search)
	q.Set(ParamSort, v.SortKey)
	q.Set(ParamStatus, v.Status)
	if page > 0 {
		q.Set(ParamPage, strconv.Itoa(page))
	}
	return base + "?" + q.Encode()
}

// RefreshURL builds a link that forces a reload.
func RefreshURL(base string) string {
	return base + "?" + ParamRefresh + "=1"
}
