// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"beltway/internal/cache"
	"beltway/internal/homepage"
	"beltway/internal/models"
	"beltway/internal/render"
	"beltway/internal/sitemap"
	"beltway/internal/store"
)

// homeSocialLimit caps the social rail on the homepage.
const homeSocialLimit = 5

// listingLimit caps category, subcategory, and search listings.
const listingLimit = 50

// relatedLimit caps the related-articles block under an article.
const relatedLimit = 4

// Public groups handlers for the reader-facing site. Every page checks
// the Valkey page cache before touching the database and stores the
// rendered result on miss.
type Public struct {
	renderer      *render.Renderer
	pageCache     *cache.PageCache
	baseURL       string
	categories    *store.CategoryStore
	subcategories *store.SubcategoryStore
	articles      *store.ArticleStore
	socialContent *store.SocialContentStore
	settings      *store.CategorySettingStore
}

// NewPublic creates a new Public handler group.
func NewPublic(
	renderer *render.Renderer,
	pageCache *cache.PageCache,
	baseURL string,
	categories *store.CategoryStore,
	subcategories *store.SubcategoryStore,
	articles *store.ArticleStore,
	socialContent *store.SocialContentStore,
	settings *store.CategorySettingStore,
) *Public {
	return &Public{
		renderer:      renderer,
		pageCache:     pageCache,
		baseURL:       baseURL,
		categories:    categories,
		subcategories: subcategories,
		articles:      articles,
		socialContent: socialContent,
		settings:      settings,
	}
}

// categoryBlock is the view model for one homepage category section.
type categoryBlock struct {
	Category   models.Category
	Articles   []models.Article
	ShowImages bool
}

// nav loads the header navigation: all categories with their subcategories.
func (p *Public) nav() ([]models.Category, error) {
	return p.categories.ListWithSubcategories()
}

// servePage runs the cache-or-render cycle shared by all public HTML pages.
func (p *Public) servePage(w http.ResponseWriter, r *http.Request, build func() ([]byte, error)) {
	ctx := r.Context()
	key := cache.PathKey(r.URL.Path, r.URL.RawQuery)

	if cached, ok := p.pageCache.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(cached)
		return
	}

	body, err := build()
	if err != nil {
		slog.Error("page render failed", "path", r.URL.Path, "error", err)
		p.errorPage(w, http.StatusInternalServerError, "An error occurred while loading the page.")
		return
	}

	p.pageCache.Set(ctx, key, body)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

// errorPage renders the error template without caching it.
func (p *Public) errorPage(w http.ResponseWriter, status int, message string) {
	nav, err := p.nav()
	if err != nil {
		// If even the nav query fails, fall back to a plain response.
		http.Error(w, message, status)
		return
	}

	body, err := p.renderer.Render("error", &render.PageData{
		Title: fmt.Sprintf("%d", status),
		Nav:   nav,
		Data:  map[string]any{"Status": status, "Message": message},
	})
	if err != nil {
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// notFound renders the shared 404 page.
func (p *Public) notFound(w http.ResponseWriter) {
	p.errorPage(w, http.StatusNotFound, "The requested page does not exist.")
}

// Home renders the front page from the aggregated placement buckets.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	p.servePage(w, r, func() ([]byte, error) {
		nav, err := p.nav()
		if err != nil {
			return nil, err
		}

		articles, err := p.articles.List(0)
		if err != nil {
			return nil, err
		}
		page := homepage.Aggregate(articles)

		visibility, err := p.settings.ImageVisibility()
		if err != nil {
			return nil, err
		}

		// Blocks follow the nav's category order so the section layout
		// is stable across requests.
		var blocks []categoryBlock
		for _, cat := range nav {
			items, ok := page.CategoryBlocks[cat.Slug]
			if !ok {
				continue
			}
			show := true
			if v, ok := visibility[cat.ID]; ok {
				show = v
			}
			blocks = append(blocks, categoryBlock{Category: cat, Articles: items, ShowImages: show})
		}

		social, err := p.socialContent.List()
		if err != nil {
			return nil, err
		}
		if len(social) > homeSocialLimit {
			social = social[:homeSocialLimit]
		}

		return p.renderer.Render("home", &render.PageData{
			Title: "Breaking News, Latest Headlines",
			Nav:   nav,
			Data: map[string]any{
				"Featured": page.Featured,
				"Opinion":  page.Opinion,
				"Main":     page.Main,
				"Trending": page.Trending,
				"Blocks":   blocks,
				"Social":   social,
			},
		})
	})
}

// Category renders a category listing page.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "category")

	nav, err := p.nav()
	if err != nil {
		slog.Error("load navigation failed", "error", err)
		p.errorPage(w, http.StatusInternalServerError, "An error occurred while loading the page.")
		return
	}

	// The nav already carries every category with its subcategories.
	var category *models.Category
	for i := range nav {
		if nav[i].Slug == slugParam {
			category = &nav[i]
			break
		}
	}
	if category == nil {
		p.notFound(w)
		return
	}

	p.servePage(w, r, func() ([]byte, error) {
		articles, err := p.articles.ListByCategory(category.ID, listingLimit)
		if err != nil {
			return nil, err
		}
		total, err := p.articles.CountByCategory(category.ID)
		if err != nil {
			return nil, err
		}
		return p.renderer.Render("category", &render.PageData{
			Title: category.Name,
			Nav:   nav,
			Data:  map[string]any{"Category": category, "Articles": articles, "Total": total},
		})
	})
}

// Subcategory renders a subcategory listing page. Both the category and
// subcategory slugs must match.
func (p *Public) Subcategory(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "category")
	subcategorySlug := chi.URLParam(r, "subcategory")

	sub, err := p.subcategories.FindBySlug(categorySlug, subcategorySlug)
	if err != nil {
		slog.Error("find subcategory failed", "error", err, "slug", subcategorySlug)
		p.errorPage(w, http.StatusInternalServerError, "An error occurred while loading the page.")
		return
	}
	if sub == nil {
		p.notFound(w)
		return
	}

	p.servePage(w, r, func() ([]byte, error) {
		nav, err := p.nav()
		if err != nil {
			return nil, err
		}
		articles, err := p.articles.ListBySubcategory(sub.ID, listingLimit)
		if err != nil {
			return nil, err
		}
		total, err := p.articles.CountBySubcategory(sub.ID)
		if err != nil {
			return nil, err
		}
		return p.renderer.Render("subcategory", &render.PageData{
			Title: sub.Name,
			Nav:   nav,
			Data:  map[string]any{"Subcategory": sub, "Articles": articles, "Total": total},
		})
	})
}

// Article renders an article page. The slug alone identifies the row, so
// the dated route and the legacy /article/{slug} route share this handler;
// the date and category path segments are informational only.
func (p *Public) Article(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	article, err := p.articles.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find article failed", "error", err, "slug", slugParam)
		p.errorPage(w, http.StatusInternalServerError, "An error occurred while loading the page.")
		return
	}
	if article == nil {
		p.notFound(w)
		return
	}

	p.servePage(w, r, func() ([]byte, error) {
		nav, err := p.nav()
		if err != nil {
			return nil, err
		}
		related, err := p.articles.ListRelated(article, relatedLimit)
		if err != nil {
			return nil, err
		}
		return p.renderer.Render("article", &render.PageData{
			Title: article.Headline,
			Nav:   nav,
			Data:  map[string]any{"Article": article, "Related": related},
		})
	})
}

// Search renders full-text search results for the q query parameter.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	p.servePage(w, r, func() ([]byte, error) {
		nav, err := p.nav()
		if err != nil {
			return nil, err
		}

		var articles []models.Article
		if query != "" {
			articles, err = p.articles.Search(query, listingLimit)
			if err != nil {
				return nil, err
			}
		}

		return p.renderer.Render("search", &render.PageData{
			Title: "Search",
			Nav:   nav,
			Data:  map[string]any{"Query": query, "Articles": articles},
		})
	})
}

// staticPages holds the body copy for the fixed informational pages.
var staticPages = map[string]struct {
	Title string
	Body  template.HTML
}{
	"about": {"About", template.HTML(`<p>The Beltway Times covers national politics, business, and technology
with original reporting and analysis.</p>`)},
	"privacy": {"Privacy Policy", template.HTML(`<p>We collect no personal information from readers beyond standard
server logs, which are retained for thirty days.</p>`)},
	"disclaimer": {"Disclaimer", template.HTML(`<p>Opinion pieces reflect the views of their authors and not those of
the newsroom.</p>`)},
	"contact": {"Contact", template.HTML(`<p>Reach the newsroom at <a href="mailto:tips@beltwaytimes.example">tips@beltwaytimes.example</a>.</p>`)},
	"terms": {"Terms of Use", template.HTML(`<p>Content may not be republished without written permission.</p>`)},
}

// StaticPage returns a handler rendering one of the fixed pages.
func (p *Public) StaticPage(name string) http.HandlerFunc {
	page := staticPages[name]
	return func(w http.ResponseWriter, r *http.Request) {
		p.servePage(w, r, func() ([]byte, error) {
			nav, err := p.nav()
			if err != nil {
				return nil, err
			}
			return p.renderer.Render("static", &render.PageData{
				Title: page.Title,
				Nav:   nav,
				Data:  map[string]any{"Heading": page.Title, "Body": page.Body},
			})
		})
	}
}

// Test is a plain-text liveness route used during deploys.
func (p *Public) Test(w http.ResponseWriter, r *http.Request) {
	count, err := p.articles.Count()
	if err != nil {
		http.Error(w, "database unreachable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ok: %d articles\n", count)
}

// Sitemap serves the sitemap XML document.
func (p *Public) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := cache.PathKey(r.URL.Path, "")

	if cached, ok := p.pageCache.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "application/xml")
		w.Write(cached)
		return
	}

	categories, err := p.categories.ListWithSubcategories()
	if err != nil {
		slog.Error("sitemap categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	articles, err := p.articles.List(0)
	if err != nil {
		slog.Error("sitemap articles failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	body, err := sitemap.Generate(p.baseURL, categories, articles)
	if err != nil {
		slog.Error("sitemap generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, body)
	w.Header().Set("Content-Type", "application/xml")
	w.Write(body)
}
