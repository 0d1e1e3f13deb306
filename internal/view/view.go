// Package view renders the server-side HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"dealership/internal/auth"
	"dealership/internal/flash"
	"dealership/internal/models"
)

//go:embed templates
var templateFS embed.FS

// Page is the data every template receives.
type Page struct {
	Title   string
	Nav     []models.Classification
	Notices []string
	Errors  []string
	Account *models.Claims
	// Form echoes submitted values back into a re-rendered form.
	Form map[string]string
	Data any
}

// Renderer holds one parsed template set per page, each joined with the
// shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page under templates/. Page names are paths without the
// extension, e.g. "account/login".
func New() (*Renderer, error) {
	layout, err := fs.ReadFile(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("view.New: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}

	err = fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path == "templates/layout.html" {
			return err
		}

		body, err := fs.ReadFile(templateFS, path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		t, err := template.New("layout").Funcs(funcs).Parse(string(layout))
		if err != nil {
			return err
		}
		if _, err := t.New(name).Parse(string(body)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("view.New: %w", err)
	}

	return r, nil
}

// Has reports whether a page exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render writes page name with the given status. Pending notices and the
// request identity are filled in here.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view.Render: unknown page %q", name)
	}

	if p.Account == nil {
		p.Account = auth.ClaimsFrom(req.Context())
	}
	pending := flash.Drain(req.Context())
	p.Notices = append(append([]string{}, pending...), p.Notices...)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		flash.Restore(req.Context(), pending)
		return fmt.Errorf("view.Render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
