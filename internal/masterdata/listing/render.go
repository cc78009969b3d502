package listing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Render executes a page template inside the shared layout data.
func (d Deps) Render(w http.ResponseWriter, r *http.Request, status int, template, title string, data any) {
	if err := d.Templates.Page(w, r, d.CSRF, status, template, title, data); err != nil {
		d.logger().Error("render template", slog.String("template", template), slog.Any("error", err))
	}
}

// RedirectWithFlash queues a flash message and redirects to location.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil && message != "" {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// DecodeToken opens a URL id token.
func (d Deps) DecodeToken(token string) (string, error) {
	if d.Codec == nil {
		return "", shared.ErrInvalidID
	}
	return d.Codec.Decode(token)
}

// EncodeID seals a record id for use in URLs.
func (d Deps) EncodeID(id string) string {
	if d.Codec == nil {
		return ""
	}
	return d.Codec.MustEncode(id)
}

// NewFormKey returns a fresh idempotency key for a create form.
func NewFormKey() string {
	return uuid.NewString()
}

// Once claims the idempotency key submitted with a create form. Forms without
// a key and deployments without a store are let through.
func (d Deps) Once(ctx context.Context, r *http.Request, module string) (release func(), err error) {
	key := strings.TrimSpace(r.PostFormValue(shared.IdempotencyFormField))
	if d.Idempotency == nil || key == "" {
		return func() {}, nil
	}
	free, err := d.Idempotency.Claim(ctx, module, key)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := free(context.WithoutCancel(ctx)); err != nil {
			d.logger().Warn("release idempotency key", slog.String("module", module), slog.Any("error", err))
		}
	}, nil
}

// RecordAudit writes an audit entry and logs failures.
func (d Deps) RecordAudit(ctx context.Context, log shared.AuditLog) {
	if d.Audit == nil {
		return
	}
	if err := d.Audit.Record(ctx, log); err != nil {
		d.logger().Warn("audit", slog.Any("error", err))
	}
}

// FormErrors converts a save error into per-field messages for the form.
// Field errors keep their own keys; everything else lands on "general".
func FormErrors(err error, fallback string) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		for k, v := range validationErr.Fields {
			out[k] = v
		}
		out["general"] = shared.UserMessage(err, fallback)
		return out
	}
	out["general"] = shared.UserMessage(err, fallback)
	return out
}

// ParseDate reads an HTML date input; blank yields the zero time.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	return apiclient.ParseDate(value)
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
