package jenisizin

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

const formTemplate = "pages/jenis_izin_form.html"

type Handler struct {
	logger  *slog.Logger
	service *Service
	deps    listing.Deps
	list    *listing.Handler[JenisIzin]
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
func (h *Handler) List() *listing.Handler[JenisIzin] { return h.list }

// MountRoutes registers jenis izin routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.list.MountRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermJenisIzinCreate))
		r.Get("/new", h.showCreate)
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermJenisIzinEdit))
		r.Get("/{token}/edit", h.showEdit)
		r.Post("/{token}/edit", h.update)
	})
}

func formInput(r *http.Request) Input {
	return Input{
		Nama:          r.PostFormValue("jeiNama"),
		Desc:          r.PostFormValue("jeiDesc"),
		JumlahIjinDay: r.PostFormValue("jeiJumlahIjinDay"),
		JumlahPlusDay: r.PostFormValue("jeiJumlahPlusDay"),
		ValidFrom:     r.PostFormValue("jeiValidFrom"),
		ValidUntil:    r.PostFormValue("jeiValidUntil"),
	}
}

func (h *Handler) showCreate(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, listing.FormPage{
		Title:          "Tambah Jenis Izin",
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
	in := formInput(r)
	release, err := h.deps.Once(r.Context(), r, "jenis_izin.create")
	if err != nil {
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
		return
	}
	sess, _ := auth.FromContext(r.Context())
	if err := h.service.Create(r.Context(), sess, in); err != nil {
		release()
		h.logger.Info("create jenis izin failed", slog.Any("error", err))
		h.renderForm(w, r, listing.FormStatus(err), listing.FormPage{
			Title:          "Tambah Jenis Izin",
			Action:         Path,
			Form:           in,
			Errors:         listing.FormErrors(err, "Data gagal disimpan."),
			IdempotencyKey: r.PostFormValue(shared.IdempotencyFormField),
		})
		return
	}
	h.deps.RecordAudit(r.Context(), shared.AuditLog{Actor: sess.Actor(), Action: "create", Entity: "jenis_izin", EntityID: in.Nama})
	listing.RedirectWithFlash(w, r, listing.RefreshURL(Path), "success", "Jenis izin berhasil ditambahkan.")
}

func (h *Handler) showEdit(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	id, err := h.deps.DecodeToken(token)
	if err != nil {
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
		return
	}
	sess, _ := auth.FromContext(r.Context())
	j, err := h.service.Get(r.Context(), sess, id)
	if err != nil {
		h.logger.Warn("get jenis izin failed", slog.String("id", id), slog.Any("error", err))
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, "Gagal memuat data jenis izin."))
		return
	}
	h.renderForm(w, r, http.StatusOK, listing.FormPage{
		Title:  "Edit Jenis Izin",
		Action: Path + "/" + token + "/edit",
		Edit:   true,
		Form:   InputOf(j),
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
	in := formInput(r)
	sess, _ := auth.FromContext(r.Context())
	if err := h.service.Update(r.Context(), sess, id, in); err != nil {
		if errors.Is(err, shared.ErrEmptyResult) {
			listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
			return
		}
		h.logger.Info("update jenis izin failed", slog.String("id", id), slog.Any("error", err))
		h.renderForm(w, r, listing.FormStatus(err), listing.FormPage{
			Title:  "Edit Jenis Izin",
			Action: Path + "/" + token + "/edit",
			Edit:   true,
			Form:   in,
			Errors: listing.FormErrors(err, "Gagal memperbarui data."),
		})
		return
	}
	h.deps.RecordAudit(r.Context(), shared.AuditLog{Actor: sess.Actor(), Action: "update", Entity: "jenis_izin", EntityID: id})
	listing.RedirectWithFlash(w, r, listing.RefreshURL(Path), "success", "Data berhasil diperbarui!")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, page listing.FormPage) {
	page.BackURL = Path
	page.Breadcrumb = []listing.Crumb{
		{Label: "Beranda", URL: auth.HomePath},
		{Label: "Jenis Izin", URL: Path},
		{Label: page.Title},
	}
	h.deps.Render(w, r, status, formTemplate, page.Title, page)
}
