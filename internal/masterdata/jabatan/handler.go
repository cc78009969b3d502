package jabatan

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

const (
	formTemplate   = "pages/jabatan_form.html"
	detailTemplate = "pages/jabatan_detail.html"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	deps    listing.Deps
	list    *listing.Handler[Jabatan]
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
func (h *Handler) List() *listing.Handler[Jabatan] { return h.list }

// MountRoutes registers jabatan routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.list.MountRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermJabatanCreate))
		r.Get("/new", h.showCreate)
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermJabatanEdit))
		r.Get("/{token}/edit", h.showEdit)
		r.Post("/{token}/edit", h.update)
	})
	r.Get("/{token}", h.show)
}

// DetailPage is the template model of the detail page.
type DetailPage struct {
	Jabatan    Detail
	EditURL    string
	BackURL    string
	Breadcrumb []listing.Crumb
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	d, ok := h.load(w, r, token)
	if !ok {
		return
	}
	sess, _ := auth.FromContext(r.Context())
	page := DetailPage{
		Jabatan: d,
		BackURL: Path,
		Breadcrumb: []listing.Crumb{
			{Label: "Beranda", URL: auth.HomePath},
			{Label: "Jabatan", URL: Path},
			{Label: "Detail"},
		},
	}
	if sess.Can(shared.PermJabatanEdit) {
		page.EditURL = Path + "/" + token + "/edit"
	}
	h.deps.Render(w, r, http.StatusOK, detailTemplate, "Detail Jabatan", page)
}

func (h *Handler) showCreate(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, listing.FormPage{
		Title:          "Tambah Jabatan",
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
	in := Input{Deskripsi: r.PostFormValue("jabatanDeskripsi")}
	release, err := h.deps.Once(r.Context(), r, "jabatan.create")
	if err != nil {
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
		return
	}
	sess, _ := auth.FromContext(r.Context())
	if err := h.service.Create(r.Context(), sess, in); err != nil {
		release()
		h.logger.Info("create jabatan failed", slog.Any("error", err))
		h.renderForm(w, r, listing.FormStatus(err), listing.FormPage{
			Title:          "Tambah Jabatan",
			Action:         Path,
			Form:           in,
			Errors:         listing.FormErrors(err, "Data gagal disimpan."),
			IdempotencyKey: r.PostFormValue(shared.IdempotencyFormField),
		})
		return
	}
	h.deps.RecordAudit(r.Context(), shared.AuditLog{Actor: sess.Actor(), Action: "create", Entity: "jabatan", EntityID: in.Deskripsi})
	listing.RedirectWithFlash(w, r, listing.RefreshURL(Path), "success", "Data jabatan berhasil ditambahkan.")
}

func (h *Handler) showEdit(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	d, ok := h.load(w, r, token)
	if !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, listing.FormPage{
		Title:  "Edit Jabatan",
		Action: Path + "/" + token + "/edit",
		Edit:   true,
		Form:   Input{Deskripsi: d.Desc.String()},
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
	in := Input{Deskripsi: r.PostFormValue("jabatanDeskripsi")}
	sess, _ := auth.FromContext(r.Context())
	if err := h.service.Update(r.Context(), sess, id, in); err != nil {
		if errors.Is(err, shared.ErrEmptyResult) {
			listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
			return
		}
		h.logger.Info("update jabatan failed", slog.String("id", id), slog.Any("error", err))
		h.renderForm(w, r, listing.FormStatus(err), listing.FormPage{
			Title:  "Edit Jabatan",
			Action: Path + "/" + token + "/edit",
			Edit:   true,
			Form:   in,
			Errors: listing.FormErrors(err, "Gagal memperbarui data."),
		})
		return
	}
	h.deps.RecordAudit(r.Context(), shared.AuditLog{Actor: sess.Actor(), Action: "update", Entity: "jabatan", EntityID: id})
	listing.RedirectWithFlash(w, r, listing.RefreshURL(Path), "success", "Data jabatan berhasil diperbarui!")
}

// load decodes token and fetches the record, redirecting to the list on failure.
func (h *Handler) load(w http.ResponseWriter, r *http.Request, token string) (Detail, bool) {
	id, err := h.deps.DecodeToken(token)
	if err != nil {
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
		return Detail{}, false
	}
	sess, _ := auth.FromContext(r.Context())
	d, err := h.service.Get(r.Context(), sess, id)
	if err != nil {
		h.logger.Warn("get jabatan failed", slog.String("id", id), slog.Any("error", err))
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, "Gagal memuat data jabatan."))
		return Detail{}, false
	}
	return d, true
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, page listing.FormPage) {
	page.BackURL = Path
	page.Breadcrumb = []listing.Crumb{
		{Label: "Beranda", URL: auth.HomePath},
		{Label: "Jabatan", URL: Path},
		{Label: page.Title},
	}
	h.deps.Render(w, r, status, formTemplate, page.Title, page)
}
