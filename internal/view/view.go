// Package view renders storefront pages server-side. Pages are pure functions
// of their props: nothing here talks to the network.
package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"sync"

	"CasaMoreno/internal/model"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates
var embeddedTemplates embed.FS

// Site holds shop-wide labels shown in the layout.
type Site struct {
	Name    string
	Tagline string
}

// DefaultSite is the Casa Moreno branding.
var DefaultSite = Site{Name: "Casa Moreno", Tagline: "A melhor loja do mundo"}

// Renderer executes the page templates with a resolved theme.
type Renderer struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	theme     ThemeContext
	site      Site
}

// Option configures a Renderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	templates fs.FS
	site      Site
}

// WithTemplates overrides the embedded templates.
func WithTemplates(fsys fs.FS) Option {
	return func(c *rendererConfig) { c.templates = fsys }
}

// WithSite overrides the shop labels.
func WithSite(s Site) Option {
	return func(c *rendererConfig) { c.site = s }
}

// New builds a renderer for the theme selection.
func New(selector *Themes, themeName, variant string, opts ...Option) (*Renderer, error) {
	if selector == nil {
		return nil, errors.New("view: theme selector is nil")
	}
	cfg := &rendererConfig{site: DefaultSite}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.templates == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("view: open embedded templates: %w", err)
		}
		cfg.templates = sub
	}

	sel, err := selector.Select(themeName, variant)
	if err != nil {
		return nil, fmt.Errorf("view: select theme: %w", err)
	}
	if err := registerFilters(); err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}

	return &Renderer{
		set:       pongo2.NewSet("storefront", pongo2.NewFSLoader(cfg.templates)),
		templates: make(map[string]*pongo2.Template),
		theme:     Resolve(sel),
		site:      cfg.site,
	}, nil
}

// Theme returns the resolved theme.
func (r *Renderer) Theme() ThemeContext { return r.theme }

// Home renders the homepage.
func (r *Renderer) Home(w io.Writer, props model.HomeProps) error {
	return r.render(w, "home.html", pongo2.Context{"props": props})
}

// Listing renders a product listing (category page, offers page).
func (r *Renderer) Listing(w io.Writer, title string, props model.ListingProps) error {
	return r.render(w, "listing.html", pongo2.Context{"props": props, "title": title})
}

// Error renders the generic error page for an HTTP status.
func (r *Renderer) Error(w io.Writer, status int) error {
	return r.render(w, "error.html", pongo2.Context{
		"status":  status,
		"message": http.StatusText(status),
	})
}

// Stylesheet renders the theme stylesheet.
func (r *Renderer) Stylesheet(w io.Writer) error {
	return r.render(w, "theme.css", nil)
}

func (r *Renderer) render(w io.Writer, name string, data pongo2.Context) error {
	tpl, err := r.template(name)
	if err != nil {
		return err
	}
	ctx := pongo2.Context{
		"site":       r.site,
		"theme":      r.theme,
		"stylesheet": r.theme.AssetURL("stylesheet"),
		"hero":       r.theme.AssetURL("hero"),
	}
	ctx.Update(data)

	// рендерим в буфер: при ошибке шаблона ответ не должен быть записан наполовину
	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(ctx, &buf); err != nil {
		return fmt.Errorf("view: execute %q: %w", name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.RLock()
	tpl, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.templates[name]; ok {
		return tpl, nil
	}
	tpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("view: load template %q: %w", name, err)
	}
	r.templates[name] = tpl
	return tpl, nil
}
