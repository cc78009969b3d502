package benefit

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/masterdata/golongan"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/rbac"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

const formTemplate = "pages/benefit_form.html"

type Handler struct {
	logger  *slog.Logger
	service *Service
	deps    listing.Deps
	list    *listing.Handler[Benefit]
	rbac    rbac.Middleware
}

func NewHandler(service *Service, golongans *golongan.Service, deps listing.Deps, rbac rbac.Middleware) *Handler {
	list := listing.New(Screen(service, golongans, deps.Codec), deps)
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Handler{logger: deps.Logger, service: service, deps: deps, list: list, rbac: rbac}
}

// List exposes the list handler so its registry can be swept.
func (h *Handler) List() *listing.Handler[Benefit] { return h.list }

// MountRoutes registers benefit routes below a golongan.
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

func formInput(r *http.Request) Input {
	return Input{
		PlafonObat:       r.PostFormValue("benPlafonObat"),
		PlafonLensaMono:  r.PostFormValue("benPlafonLensaMono"),
		PlafonLensaBi:    r.PostFormValue("benPlafonLensaBi"),
		PlafonRangka:     r.PostFormValue("benPlafonRangka"),
		StatusPernikahan: r.PostFormValue("benStatusPernikahan"),
		ValidFrom:        r.PostFormValue("benValidDateFrom"),
		ValidUntil:       r.PostFormValue("benValidDateUntil"),
	}
}

func options(in Input) map[string][]listing.Option {
	return map[string][]listing.Option{
		"benStatusPernikahan": listing.SelectOptions(in.StatusPernikahan,
			[2]string{"", "Pilih status nikah"},
			[2]string{Lajang, Lajang},
			[2]string{Menikah, Menikah},
		),
	}
}

// scope resolves the golongan of the route, redirecting to the golongan list
// when it cannot be found.
func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (listing.Scope, bool) {
	scope, err := h.list.Screen().Scope(r)
	if err != nil {
		h.logger.Warn("benefit scope unresolved", slog.Any("error", err))
		listing.RedirectWithFlash(w, r, golongan.Path, "error", shared.UserMessage(err, "Golongan tidak ditemukan."))
		return listing.Scope{}, false
	}
	return scope, true
}

func (h *Handler) showCreate(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, scope, http.StatusOK, listing.FormPage{
		Title:          "Tambah Benefit",
		Action:         Base(scope.Token),
		Form:           Input{},
		Errors:         map[string]string{},
		IdempotencyKey: listing.NewFormKey(),
		Options:        options(Input{}),
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	base := Base(scope.Token)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	in := formInput(r)
	release, err := h.deps.Once(r.Context(), r, "benefit.create")
	if err != nil {
		listing.RedirectWithFlash(w, r, base, "error", shared.UserMessage(err, ""))
		return
	}
	sess, _ := auth.FromContext(r.Context())
	if err := h.service.Create(r.Context(), sess, scope.ID, in); err != nil {
		release()
		h.logger.Info("create benefit failed", slog.String("golongan", scope.ID), slog.Any("error", err))
		h.renderForm(w, r, scope, listing.FormStatus(err), listing.FormPage{
			Title:          "Tambah Benefit",
			Action:         base,
			Form:           in,
			Errors:         listing.FormErrors(err, "Data gagal disimpan."),
			IdempotencyKey: r.PostFormValue(shared.IdempotencyFormField),
			Options:        options(in),
		})
		return
	}
	h.deps.RecordAudit(r.Context(), shared.AuditLog{Actor: sess.Actor(), Action: "create", Entity: "benefit", EntityID: scope.ID})
	listing.RedirectWithFlash(w, r, listing.RefreshURL(base), "success", "Benefit berhasil ditambahkan.")
}

func (h *Handler) showEdit(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	base := Base(scope.Token)
	token := chi.URLParam(r, "token")
	id, err := h.deps.DecodeToken(token)
	if err != nil {
		listing.RedirectWithFlash(w, r, base, "error", shared.UserMessage(err, ""))
		return
	}
	sess, _ := auth.FromContext(r.Context())
	b, err := h.service.Get(r.Context(), sess, id)
	if err != nil {
		h.logger.Warn("get benefit failed", slog.String("id", id), slog.Any("error", err))
		listing.RedirectWithFlash(w, r, base, "error", shared.UserMessage(err, "Gagal memuat data benefit."))
		return
	}
	in := InputOf(b)
	h.renderForm(w, r, scope, http.StatusOK, listing.FormPage{
		Title:   "Edit Benefit",
		Action:  base + "/" + token + "/edit",
		Edit:    true,
		Form:    in,
		Errors:  map[string]string{},
		Options: options(in),
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	base := Base(scope.Token)
	token := chi.URLParam(r, "token")
	id, err := h.deps.DecodeToken(token)
	if err != nil {
		listing.RedirectWithFlash(w, r, base, "error", shared.UserMessage(err, ""))
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
			listing.RedirectWithFlash(w, r, base, "error", shared.UserMessage(err, ""))
			return
		}
		h.logger.Info("update benefit failed", slog.String("id", id), slog.Any("error", err))
		h.renderForm(w, r, scope, listing.FormStatus(err), listing.FormPage{
			Title:   "Edit Benefit",
			Action:  base + "/" + token + "/edit",
			Edit:    true,
			Form:    in,
			Errors:  listing.FormErrors(err, "Gagal memperbarui data."),
			Options: options(in),
		})
		return
	}
	h.deps.RecordAudit(r.Context(), shared.AuditLog{Actor: sess.Actor(), Action: "update", Entity: "benefit", EntityID: id})
	listing.RedirectWithFlash(w, r, listing.RefreshURL(base), "success", "Benefit berhasil diperbarui.")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, scope listing.Scope, status int, page listing.FormPage) {
	base := Base(scope.Token)
	page.BackURL = base
	page.Breadcrumb = []listing.Crumb{
		{Label: "Beranda", URL: auth.HomePath},
		{Label: "Golongan", URL: golongan.Path},
		{Label: scope.Label, URL: base},
		{Label: page.Title},
	}
	h.deps.Render(w, r, status, formTemplate, page.Title, page)
}
