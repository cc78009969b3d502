package rbac

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/shared"
	"github.com/odyssey-erp/hrportal/internal/view"
)

// PermissionsHandler shows which master data permissions the signed-in user holds.
type PermissionsHandler struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewPermissionsHandler builds PermissionsHandler instance.
func NewPermissionsHandler(logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager) *PermissionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PermissionsHandler{logger: logger, templates: templates, csrf: csrf}
}

// MountRoutes registers permission routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Get("/", h.listPermissions)
}

// PermissionRow is one line of the permissions page.
type PermissionRow struct {
	Name    string
	Granted bool
}

func (h *PermissionsHandler) listPermissions(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.FromContext(r.Context())
	scopes := shared.MasterDataScopes()
	granted := Granted(sess, scopes)
	rows := make([]PermissionRow, 0, len(scopes))
	for _, name := range scopes {
		rows = append(rows, PermissionRow{Name: name, Granted: granted[name]})
	}
	var extra []string
	if sess.Profile != nil {
		for _, p := range sess.Profile.Permissions {
			if !slices.Contains(scopes, p) {
				extra = append(extra, p)
			}
		}
	}
	h.render(w, r, "pages/permissions.html", map[string]any{"Permissions": rows, "Other": extra, "Profile": sess.Profile}, http.StatusOK)
}

func (h *PermissionsHandler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	if err := h.templates.Page(w, r, h.csrf, status, template, "Hak Akses", data); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}
