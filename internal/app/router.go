package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/masterdata"
	"github.com/odyssey-erp/hrportal/internal/observability"
	"github.com/odyssey-erp/hrportal/internal/platform/httpx"
	"github.com/odyssey-erp/hrportal/internal/rbac"
	"github.com/odyssey-erp/hrportal/internal/shared"
	"github.com/odyssey-erp/hrportal/internal/view"
	"github.com/odyssey-erp/hrportal/web"
)

// PermissionsPath shows the permissions of the signed-in user.
const PermissionsPath = "/pages/hak-akses"

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Templates          *view.Engine
	SessionManager     *shared.SessionManager
	CSRFManager        *shared.CSRFManager
	AuthCookies        *auth.Cookies
	AuthHandler        *auth.Handler
	MasterDataHandler  *masterdata.Handler
	PermissionsHandler *rbac.PermissionsHandler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with HR portal defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.Guard(params.Logger, params.AuthCookies))

		r.Get(auth.RootPath, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
		})
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Get(auth.HomePath, homeHandler(params))
		if params.PermissionsHandler != nil {
			r.Route(PermissionsPath, params.PermissionsHandler.MountRoutes)
		}
		if params.MasterDataHandler != nil {
			params.MasterDataHandler.MountRoutes(r)
		}
	})

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
// Static assets are cached for 1 hour in browser.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
