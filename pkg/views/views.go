package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed templates
var embedded embed.FS

const layoutFile = "layout.html"

// Renderer renders a named template against a data context
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// TemplateRenderer renders html/template pages wrapped in a shared layout.
// Page names are paths relative to the template root without the .html
// extension, e.g. "fruits/index".
type TemplateRenderer struct {
	fsys fs.FS

	mu    sync.RWMutex
	pages map[string]*template.Template
}

var _ Renderer = (*TemplateRenderer)(nil)

// New parses every page found in fsys
func New(fsys fs.FS) (*TemplateRenderer, error) {
	r := &TemplateRenderer{fsys: fsys}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Embedded returns a renderer over the templates compiled into the binary
func Embedded() (*TemplateRenderer, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, err
	}
	return New(sub)
}

// Reload re-parses all pages. On failure the previous set is kept.
func (r *TemplateRenderer) Reload() error {
	pages, err := parsePages(r.fsys)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

// Names returns the names of all parsed pages
func (r *TemplateRenderer) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	return names
}

// Render executes the layout with the named page as its content
func (r *TemplateRenderer) Render(w io.Writer, name string, data any) error {
	r.mu.RLock()
	tmpl, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	layout, err := fs.ReadFile(fsys, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", layoutFile, err)
	}

	pages := make(map[string]*template.Template)
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == layoutFile || path.Ext(p) != ".html" {
			return nil
		}

		body, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(p, ".html")
		tmpl, err := template.New(name).Parse(string(layout))
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", layoutFile, err)
		}
		if _, err := tmpl.Parse(string(body)); err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}
		pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}
