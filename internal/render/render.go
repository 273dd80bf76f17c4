// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site and
// the admin dashboard. Pages render into memory first so the handlers can
// hand the finished bytes to the page cache.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"beltway/internal/markdown"
	"beltway/internal/models"
	"beltway/internal/sitemap"
)

//go:embed templates/site/*.html
var siteFS embed.FS

// PageData holds all data passed to site templates.
type PageData struct {
	Title string            // Page title for <title> tag
	Nav   []models.Category // Categories (with subcategories) for the header nav
	Data  map[string]any    // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
}

// New creates a Renderer by parsing all site templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	funcMap := template.FuncMap{
		// deref safely dereferences a string pointer for use in templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		// articleHTML converts an article body from Markdown.
		"articleHTML": func(source string) (template.HTML, error) {
			out, err := markdown.ToHTML(source)
			if err != nil {
				return "", err
			}
			return template.HTML(out), nil
		},
		// articlePath is the canonical dated URL for an article.
		"articlePath": func(a *models.Article) string {
			return sitemap.ArticlePath(a)
		},
		// longDate formats a timestamp like "January 2, 2006".
		"longDate": func(t time.Time) string {
			return t.UTC().Format("January 2, 2006")
		},
		"year": func() int {
			return time.Now().UTC().Year()
		},
	}

	entries, err := siteFS.ReadDir("templates/site")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			siteFS, "templates/site/base.html", "templates/site/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		tmplName := name[:len(name)-len(filepath.Ext(name))]
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Render executes a page template into memory and returns the HTML.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a template straight to the response writer. Template
// failures surface as a plain 500; the page cache never sees them.
func (rn *Renderer) Page(w http.ResponseWriter, name string, data *PageData) {
	body, err := rn.Render(name, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
