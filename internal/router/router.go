// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains. Route
// precedence matters on the public side: static paths and the admin
// subtree register before the catch-all slug routes, and chi matches
// more specific patterns first, so a category named like a static page
// can never shadow it (the reserved-slug rule blocks creating one
// anyway).
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"beltway/internal/handlers"
	"beltway/internal/middleware"
	"beltway/web"
)

// publicRateLimit allows this many requests per IP per minute.
const publicRateLimit = 300

// New creates and returns the configured chi router with all middleware
// and route groups wired up. adminIPs is the allow-list guarding /admin.
func New(admin *handlers.Admin, public *handlers.Public, adminIPs []string) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	limiter := middleware.NewRateLimiter(publicRateLimit, time.Minute)
	r.Use(limiter.Middleware)

	// Health check for the load balancer.
	r.Get("/health", healthHandler)

	// Embedded static assets.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Admin subtree. The IP allow-list is the only gate; there is no
	// session login.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.IPAllowlist(adminIPs))

		r.Get("/", admin.Dashboard)

		r.Route("/api", func(r chi.Router) {
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoryList)
				r.Post("/", admin.CategoryCreate)
				r.Get("/{id}", admin.CategoryGet)
				r.Put("/{id}", admin.CategoryUpdate)
				r.Delete("/{id}", admin.CategoryDelete)
			})

			r.Route("/subcategories", func(r chi.Router) {
				r.Get("/", admin.SubcategoryList)
				r.Post("/", admin.SubcategoryCreate)
				r.Get("/{id}", admin.SubcategoryGet)
				r.Put("/{id}", admin.SubcategoryUpdate)
				r.Delete("/{id}", admin.SubcategoryDelete)
			})

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", admin.ArticleList)
				r.Post("/", admin.ArticleCreate)
				r.Get("/{id}", admin.ArticleGet)
				r.Put("/{id}", admin.ArticleUpdate)
				r.Delete("/{id}", admin.ArticleDelete)
			})

			r.Route("/socialusers", func(r chi.Router) {
				r.Get("/", admin.SocialUserList)
				r.Post("/", admin.SocialUserCreate)
				r.Get("/{id}", admin.SocialUserGet)
				r.Put("/{id}", admin.SocialUserUpdate)
				r.Delete("/{id}", admin.SocialUserDelete)
			})

			r.Route("/socialcontents", func(r chi.Router) {
				r.Get("/", admin.SocialContentList)
				r.Post("/", admin.SocialContentCreate)
				r.Get("/{id}", admin.SocialContentGet)
				r.Put("/{id}", admin.SocialContentUpdate)
				r.Delete("/{id}", admin.SocialContentDelete)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/category-image", admin.CategoryImageGet)
				r.Post("/category-image", admin.CategoryImageSet)
			})

			r.Route("/media", func(r chi.Router) {
				r.Post("/", admin.MediaUpload)
				r.Delete("/", admin.MediaDelete)
			})
		})
	})

	// Public site. Fixed paths first, then the slug routes from most to
	// least specific.
	r.Get("/", public.Home)
	r.Get("/search", public.Search)
	r.Get("/about", public.StaticPage("about"))
	r.Get("/privacy", public.StaticPage("privacy"))
	r.Get("/disclaimer", public.StaticPage("disclaimer"))
	r.Get("/contact", public.StaticPage("contact"))
	r.Get("/terms", public.StaticPage("terms"))
	r.Get("/sitemap.xml", public.Sitemap)
	r.Get("/test", public.Test)

	// Legacy article URLs by bare slug.
	r.Get("/article/{slug}", public.Article)

	// Canonical dated article URLs. Only the terminal slug identifies
	// the row; the date and category segments are informational.
	r.Get("/{category}/{year:[0-9]{4}}/{month:[0-9]{2}}/{day:[0-9]{2}}/{slug}", public.Article)

	r.Get("/{category}/{subcategory}", public.Subcategory)
	r.Get("/{category}", public.Category)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
