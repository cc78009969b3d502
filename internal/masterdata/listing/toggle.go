package listing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// TogglePageData is the template model of the confirmation page.
type TogglePageData struct {
	Prompt    liststate.Prompt
	ActionURL string
	CancelURL string
}

func (h *Handler[R]) showToggle(w http.ResponseWriter, r *http.Request) {
	ctrl, scope, id, ok := h.toggleTarget(w, r)
	if !ok {
		return
	}
	base := h.BaseURL(scope)
	prompt, err := ctrl.Prompt(id, chi.URLParam(r, "column"))
	if err != nil {
		RedirectWithFlash(w, r, ListURL(base, ctrl.View(), 0), "error", shared.UserMessage(err, "Data tidak ditemukan."))
		return
	}
	h.deps.Render(w, r, http.StatusOK, "pages/toggle.html", prompt.Title, TogglePageData{
		Prompt:    prompt,
		ActionURL: r.URL.Path,
		CancelURL: ListURL(base, ctrl.View(), ctrl.View().Page),
	})
}

func (h *Handler[R]) commitToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	ctrl, scope, id, ok := h.toggleTarget(w, r)
	if !ok {
		return
	}
	column := chi.URLParam(r, "column")
	notifier := &heldErrors{FlashNotifier: FlashNotifier{Session: shared.SessionFromContext(r.Context())}}
	err := ctrl.Toggle(r.Context(), id, column,
		liststate.WithConfirmer(FormConfirmer(r.PostFormValue(ConfirmField))),
		liststate.WithNotifier(notifier))
	// A failed reload is shown by the list banner after the redirect.
	if ctrl.State() != liststate.LoadFailed {
		notifier.flush(r.Context())
	}
	switch {
	case err == nil:
		sess, _ := auth.FromContext(r.Context())
		h.deps.RecordAudit(r.Context(), shared.AuditLog{
			Actor:    sess.Actor(),
			Action:   "toggle." + column,
			Entity:   h.screen.Name,
			EntityID: id,
		})
	case errors.Is(err, shared.ErrToggleDeclined):
	default:
		h.deps.Logger.Info("toggle not applied", slog.String("list", h.screen.Name), slog.String("id", id), slog.Any("error", err))
	}
	v := ctrl.View()
	http.Redirect(w, r, ListURL(h.BaseURL(scope), v, v.Page), http.StatusSeeOther)
}

// toggleTarget resolves the controller and record id and enforces the edit
// permission. It writes the response itself when ok is false.
func (h *Handler[R]) toggleTarget(w http.ResponseWriter, r *http.Request) (ctrl *liststate.Controller[R], scope Scope, id string, ok bool) {
	sess, _ := auth.FromContext(r.Context())
	if h.screen.EditPerm != "" && !sess.Can(h.screen.EditPerm) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return nil, Scope{}, "", false
	}
	ctrl, scope, err := h.Controller(r)
	if err != nil {
		h.scopeFailed(w, r, err)
		return nil, Scope{}, "", false
	}
	id, err = h.deps.Codec.Decode(chi.URLParam(r, "token"))
	if err != nil {
		RedirectWithFlash(w, r, h.BaseURL(scope), "error", shared.UserMessage(err, ""))
		return nil, Scope{}, "", false
	}
	if ctrl.State() == liststate.Idle {
		notifier := FlashNotifier{Session: shared.SessionFromContext(r.Context())}
		_ = ctrl.Load(r.Context(), liststate.WithNotifier(notifier))
	}
	return ctrl, scope, id, true
}

// heldErrors queues successes right away and keeps errors until the caller
// knows whether the list page will show them itself.
type heldErrors struct {
	FlashNotifier
	errs []string
}

func (n *heldErrors) NotifyError(_ context.Context, message string) {
	n.errs = append(n.errs, message)
}

func (n *heldErrors) flush(ctx context.Context) {
	for _, msg := range n.errs {
		n.FlashNotifier.NotifyError(ctx, msg)
	}
	n.errs = nil
}
