// Package view renders the portal's embedded HTML templates.
package view

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/odyssey-erp/hrportal/internal/shared"
	"github.com/odyssey-erp/hrportal/web"
)

// Engine renders named templates. A page is executed into a buffer first so a
// failing template never leaves half a document on the wire.
type Engine struct {
	templates *template.Template
	buffers   sync.Pool
}

// TemplateData is what every page receives; Data carries the page model.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flashes     []shared.FlashMessage
	CurrentPath string
	Data        any
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate":     shared.FormatDate,
		"formatDateLong": shared.FormatDateLong,
		"orDash":         shared.OrPlaceholder,
		"hasPrefix":      strings.HasPrefix,
		"add":            func(a, b int) int { return a + b },
	}
}

// NewEngine parses the embedded layouts, partials and pages.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(Funcs()).ParseFS(web.Templates,
		"templates/layouts/*.html",
		"templates/partials/*.html",
		"templates/pages/*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Engine{
		templates: tpl,
		buffers:   sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}, nil
}

// Has reports whether a template named name was parsed.
func (e *Engine) Has(name string) bool {
	return e != nil && e.templates.Lookup(name) != nil
}

// Render executes name with data and copies the result to w.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return errors.New("view: engine not initialised")
	}
	buf := e.buffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer e.buffers.Put(buf)

	if err := e.templates.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("view: render %s: %w", name, err)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	_, err := io.Copy(w, buf)
	return err
}

// Page renders name with status for r. The CSRF token and every pending
// flash come from the request session; a render failure becomes a 500.
func (e *Engine) Page(w http.ResponseWriter, r *http.Request, csrf *shared.CSRFManager, status int, name, title string, data any) error {
	td := TemplateData{Title: title, CurrentPath: r.URL.Path, Data: data}
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		if csrf != nil {
			token, err := csrf.EnsureToken(r.Context(), sess)
			if err != nil {
				return err
			}
			td.CSRFToken = token
		}
		td.Flashes = sess.PopFlashes()
	}
	rec := &statusWriter{ResponseWriter: w, status: status}
	if err := e.Render(rec, name, td); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	return nil
}

// statusWriter defers the status line until Render has a complete document.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(w.status)
	}
	return w.ResponseWriter.Write(p)
}
