package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/hrportal/internal/shared"
	"github.com/odyssey-erp/hrportal/internal/view"
)

// HomePath is where a signed-in user lands after SSO selection.
const HomePath = "/pages/beranda"

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
	cookies   *Cookies
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager, cookies *Cookies) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		csrf:      csrf,
		validator: validator.New(),
		cookies:   cookies,
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Get("/sso", h.showSSO)
	r.Post("/logout", h.handleLogout)
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=4"`
}

type loginPageData struct {
	Form   loginForm
	Errors map[string]string
}

type ssoPageData struct {
	Profile *Profile
	SSO     *SSOData
	Next    string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, loginPageData{})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	errs := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				errs[fieldErr.Field()] = fieldMessage(fieldErr)
			}
		}
	}

	if len(errs) == 0 {
		sess, err := h.service.Authenticate(r.Context(), form.Username, form.Password)
		switch {
		case err == nil:
			if err := h.cookies.Write(w, sess); err != nil {
				h.logger.Error("write auth cookies", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if web := shared.SessionFromContext(r.Context()); web != nil {
				web.Renew()
			}
			h.logger.Info("user signed in", slog.String("user", sess.Actor()), slog.String("session", sess.Fingerprint()))
			http.Redirect(w, r, SSOPath, http.StatusSeeOther)
			return
		case errors.Is(err, shared.ErrInvalidCredentials):
			errs["general"] = "Username atau password tidak valid"
		default:
			h.logger.Warn("login failed", slog.Any("error", err))
			errs["general"] = shared.UserMessage(err, "Gagal masuk. Coba lagi.")
		}
	}

	form.Password = ""
	h.renderLogin(w, r, http.StatusBadRequest, loginPageData{Form: form, Errors: errs})
}

func (h *Handler) showSSO(w http.ResponseWriter, r *http.Request) {
	sess, _ := FromContext(r.Context())
	if sess.Profile == nil {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "pages/sso.html", "Pilih Aplikasi", ssoPageData{
		Profile: sess.Profile,
		SSO:     sess.SSO,
		Next:    HomePath,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := FromContext(r.Context()); ok {
		h.logger.Info("user signed out", slog.String("user", sess.Actor()), slog.String("session", sess.Fingerprint()))
	}
	h.cookies.Clear(w)
	if web := shared.SessionFromContext(r.Context()); web != nil {
		web.Renew()
		web.AddFlash(shared.FlashMessage{Kind: "success", Message: "Anda telah keluar"})
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data loginPageData) {
	h.render(w, r, status, "pages/login.html", "Masuk", data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	if err := h.templates.Page(w, r, h.csrf, status, name, title, data); err != nil {
		h.logger.Error("render auth page", slog.String("template", name), slog.Any("error", err))
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Wajib diisi"
	case "min":
		return "Minimal " + fe.Param() + " karakter"
	default:
		return "Tidak valid"
	}
}

// ShowLoginForTest exposes the GET handler for tests.
func (h *Handler) ShowLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.showLogin(w, r)
}

// HandleLoginForTest exposes the POST handler for tests.
func (h *Handler) HandleLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r)
}
