package golongan

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/rbac"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

const formTemplate = "pages/golongan_form.html"

type Handler struct {
	logger  *slog.Logger
	service *Service
	deps    listing.Deps
	list    *listing.Handler[Golongan]
	rbac    rbac.Middleware
}

func NewHandler(service *Service, deps listing.Deps, rbac rbac.Middleware) *Handler {
	list := listing.New(Screen(service), deps)
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Handler{logger: deps.Logger, service: service, deps: deps, list: list, rbac: rbac}
}

// List exposes the list handler so its registry can be swept.
func (h *Handler) List() *listing.Handler[Golongan] { return h.list }

// MountRoutes registers golongan routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.list.MountRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermGolonganCreate))
		r.Get("/new", h.showCreate)
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermGolonganEdit))
		r.Get("/{token}/edit", h.showEdit)
		r.Post("/{token}/edit", h.update)
	})
}

func (h *Handler) showCreate(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, listing.FormPage{
		Title:          "Tambah Golongan",
		Action:         Path,
		Form:           Input{},
		Errors:         map[string]string{},
		IdempotencyKey: listing.NewFormKey(),
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	in := Input{Desc: r.PostFormValue("golonganDesc")}
	release, err := h.deps.Once(r.Context(), r, "golongan.create")
	if err != nil {
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
		return
	}
	sess, _ := auth.FromContext(r.Context())
	if err := h.service.Create(r.Context(), sess, in); err != nil {
		release()
		h.logger.Info("create golongan failed", slog.Any("error", err))
		h.renderForm(w, r, listing.FormStatus(err), listing.FormPage{
			Title:          "Tambah Golongan",
			Action:         Path,
			Form:           in,
			Errors:         listing.FormErrors(err, "Data gagal disimpan."),
			IdempotencyKey: r.PostFormValue(shared.IdempotencyFormField),
		})
		return
	}
	h.deps.RecordAudit(r.Context(), shared.AuditLog{Actor: sess.Actor(), Action: "create", Entity: "golongan", EntityID: in.Desc})
	listing.RedirectWithFlash(w, r, listing.RefreshURL(Path), "success", "Data golongan berhasil disimpan.")
}

func (h *Handler) showEdit(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	id, err := h.deps.DecodeToken(token)
	if err != nil {
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
		return
	}
	sess, _ := auth.FromContext(r.Context())
	g, err := h.service.Get(r.Context(), sess, id)
	if err != nil {
		h.logger.Warn("get golongan failed", slog.String("id", id), slog.Any("error", err))
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, "Gagal memuat data golongan."))
		return
	}
	h.renderForm(w, r, http.StatusOK, listing.FormPage{
		Title:  "Edit Golongan",
		Action: Path + "/" + token + "/edit",
		Edit:   true,
		Form:   Input{Desc: g.Desc.String()},
		Errors: map[string]string{},
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	id, err := h.deps.DecodeToken(token)
	if err != nil {
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	in := Input{Desc: r.PostFormValue("golonganDesc")}
	sess, _ := auth.FromContext(r.Context())
	if err := h.service.Update(r.Context(), sess, id, in); err != nil {
		if errors.Is(err, shared.ErrEmptyResult) {
			listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
			return
		}
		h.logger.Info("update golongan failed", slog.String("id", id), slog.Any("error", err))
		h.renderForm(w, r, listing.FormStatus(err), listing.FormPage{
			Title:  "Edit Golongan",
			Action: Path + "/" + token + "/edit",
			Edit:   true,
			Form:   in,
			Errors: listing.FormErrors(err, "Terjadi kesalahan. Silakan coba lagi."),
		})
		return
	}
	h.deps.RecordAudit(r.Context(), shared.AuditLog{Actor: sess.Actor(), Action: "update", Entity: "golongan", EntityID: id})
	listing.RedirectWithFlash(w, r, listing.RefreshURL(Path), "success", "Data golongan berhasil diperbarui.")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, page listing.FormPage) {
	page.BackURL = Path
	page.Breadcrumb = []listing.Crumb{
		{Label: "Beranda", URL: auth.HomePath},
		{Label: "Golongan", URL: Path},
		{Label: page.Title},
	}
	h.deps.Render(w, r, status, formTemplate, page.Title, page)
}
