package struktur

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/rbac"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

const formTemplate = "pages/struktur_form.html"

type Handler struct {
	logger  *slog.Logger
	service *Service
	deps    listing.Deps
	list    *listing.Handler[Struktur]
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
func (h *Handler) List() *listing.Handler[Struktur] { return h.list }

// MountRoutes registers struktur routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.list.MountRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermStrukturCreate))
		r.Get("/new", h.showCreate)
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermStrukturEdit))
		r.Get("/{token}/edit", h.showEdit)
		r.Post("/{token}/edit", h.update)
	})
}

func formInput(r *http.Request) Input {
	return Input{
		Desc:         r.PostFormValue("strDesc"),
		ParentID:     r.PostFormValue("parentId"),
		TanggalFrom:  r.PostFormValue("tanggalFrom"),
		TanggalUntil: r.PostFormValue("tanggalUntil"),
		Status:       r.PostFormValue("strStatus"),
	}
}

// options builds the parent and status selects.
func options(parents []Struktur, in Input) map[string][]listing.Option {
	parentOpts := []listing.Option{{Value: "", Label: "Tanpa Induk", Selected: in.ParentID == ""}}
	for _, p := range parents {
		parentOpts = append(parentOpts, listing.Option{Value: p.key(), Label: p.Desc.String(), Selected: p.key() == in.ParentID})
	}
	status := in.Status
	if status == "" {
		status = liststate.StatusActive
	}
	return map[string][]listing.Option{
		"parentId": parentOpts,
		"strStatus": listing.SelectOptions(status,
			[2]string{liststate.StatusActive, liststate.StatusActive},
			[2]string{liststate.StatusInactive, liststate.StatusInactive},
		),
	}
}

// parents loads parent candidates for a form re-render; failure leaves the
// select with only the empty choice.
func (h *Handler) parents(r *http.Request, sess auth.Session, self string) []Struktur {
	parents, err := h.service.Parents(r.Context(), sess, self)
	if err != nil {
		h.logger.Warn("load struktur parents failed", slog.Any("error", err))
		return nil
	}
	return parents
}

func (h *Handler) showCreate(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.FromContext(r.Context())
	in := Input{}
	h.renderForm(w, r, http.StatusOK, listing.FormPage{
		Title:          "Tambah Struktur",
		Action:         Path,
		Form:           in,
		Errors:         map[string]string{},
		IdempotencyKey: listing.NewFormKey(),
		Options:        options(h.parents(r, sess, ""), in),
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	in := formInput(r)
	release, err := h.deps.Once(r.Context(), r, "struktur.create")
	if err != nil {
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
		return
	}
	sess, _ := auth.FromContext(r.Context())
	if err := h.service.Create(r.Context(), sess, in); err != nil {
		release()
		h.logger.Info("create struktur failed", slog.Any("error", err))
		h.renderForm(w, r, listing.FormStatus(err), listing.FormPage{
			Title:          "Tambah Struktur",
			Action:         Path,
			Form:           in,
			Errors:         listing.FormErrors(err, "Data gagal disimpan."),
			IdempotencyKey: r.PostFormValue(shared.IdempotencyFormField),
			Options:        options(h.parents(r, sess, ""), in),
		})
		return
	}
	h.deps.RecordAudit(r.Context(), shared.AuditLog{Actor: sess.Actor(), Action: "create", Entity: "struktur", EntityID: in.Desc})
	listing.RedirectWithFlash(w, r, listing.RefreshURL(Path), "success", "Data struktur berhasil disimpan.")
}

func (h *Handler) showEdit(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	id, err := h.deps.DecodeToken(token)
	if err != nil {
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, ""))
		return
	}
	sess, _ := auth.FromContext(r.Context())
	s, parents, err := h.service.EditView(r.Context(), sess, id)
	if err != nil {
		h.logger.Warn("get struktur failed", slog.String("id", id), slog.Any("error", err))
		listing.RedirectWithFlash(w, r, Path, "error", shared.UserMessage(err, "Gagal memuat data struktur."))
		return
	}
	in := InputOf(s)
	h.renderForm(w, r, http.StatusOK, listing.FormPage{
		Title:   "Edit Struktur",
		Action:  Path + "/" + token + "/edit",
		Edit:    true,
		Form:    in,
		Errors:  map[string]string{},
		Options: options(parents, in),
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
		h.logger.Info("update struktur failed", slog.String("id", id), slog.Any("error", err))
		h.renderForm(w, r, listing.FormStatus(err), listing.FormPage{
			Title:   "Edit Struktur",
			Action:  Path + "/" + token + "/edit",
			Edit:    true,
			Form:    in,
			Errors:  listing.FormErrors(err, "Gagal memperbarui data."),
			Options: options(h.parents(r, sess, id), in),
		})
		return
	}
	h.deps.RecordAudit(r.Context(), shared.AuditLog{Actor: sess.Actor(), Action: "update", Entity: "struktur", EntityID: id})
	listing.RedirectWithFlash(w, r, listing.RefreshURL(Path), "success", "Data struktur berhasil diperbarui.")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, page listing.FormPage) {
	page.BackURL = Path
	page.Breadcrumb = []listing.Crumb{
		{Label: "Beranda", URL: auth.HomePath},
		{Label: "Struktur", URL: Path},
		{Label: page.Title},
	}
	h.deps.Render(w, r, status, formTemplate, page.Title, page)
}
