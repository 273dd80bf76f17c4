// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"beltway/internal/models"
	"beltway/internal/slug"
)

// defaultReadTime is the estimate used when the editor leaves it blank.
const defaultReadTime = 5

// articleRequest is the JSON payload for article create/update. Pointer
// fields distinguish "absent" from "set to zero"; updates apply the patch
// to the loaded row before validation, so the exclusivity rule always
// sees the resulting state.
type articleRequest struct {
	Slug          *string         `json:"slug"`
	Headline      *string         `json:"headline"`
	Excerpt       *string         `json:"excerpt"`
	Content       *string         `json:"content"`
	Author        *string         `json:"author"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	SubcategoryID *uuid.UUID      `json:"subcategory_id"`
	PublishedAt   *time.Time      `json:"published_at"`
	ImageURL      *string         `json:"image_url"`
	ReadTime      *int            `json:"read_time"`
	Tags          json.RawMessage `json:"tags"`
	Featured      *bool           `json:"featured"`
	IsOpinion     *bool           `json:"is_opinion"`
	Main          *bool           `json:"main"`
	Trending      *bool           `json:"trending"`
	CategoryBlock *bool           `json:"categoryblock"`
}

// apply patches the request onto an article. Returns a message on invalid
// field values, or "".
func (req *articleRequest) apply(a *models.Article) string {
	if req.Slug != nil {
		a.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Headline != nil {
		a.Headline = strings.TrimSpace(*req.Headline)
	}
	if req.Excerpt != nil {
		a.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Author != nil {
		a.Author = strings.TrimSpace(*req.Author)
	}
	if req.CategoryID != nil {
		a.CategoryID = *req.CategoryID
	}
	if req.SubcategoryID != nil {
		if *req.SubcategoryID == uuid.Nil {
			a.SubcategoryID = nil
		} else {
			a.SubcategoryID = req.SubcategoryID
		}
	}
	if req.PublishedAt != nil {
		a.PublishedAt = *req.PublishedAt
	}
	if req.ImageURL != nil {
		if *req.ImageURL == "" {
			a.ImageURL = nil
		} else {
			a.ImageURL = req.ImageURL
		}
	}
	if req.ReadTime != nil {
		a.ReadTime = *req.ReadTime
	}
	if req.Tags != nil {
		tags, ok := parseTags(req.Tags)
		if !ok {
			return "Tags must be a string array or a comma-separated string."
		}
		a.Tags = tags
	}
	if req.Featured != nil {
		a.Featured = *req.Featured
	}
	if req.IsOpinion != nil {
		a.IsOpinion = *req.IsOpinion
	}
	if req.Main != nil {
		a.Main = *req.Main
	}
	if req.Trending != nil {
		a.Trending = *req.Trending
	}
	if req.CategoryBlock != nil {
		a.CategoryBlock = *req.CategoryBlock
	}
	return ""
}

// validateArticle checks the resulting article state shared by create and
// update.
func (a *Admin) validateArticle(article *models.Article) (string, error) {
	switch {
	case article.Headline == "":
		return "Headline is required.", nil
	case article.Slug == "":
		return "Slug is required.", nil
	case article.Content == "":
		return "Content is required.", nil
	case article.Author == "":
		return "Author is required.", nil
	case article.CategoryID == uuid.Nil:
		return "Category id is required.", nil
	}

	if msg := validateExclusiveFlags(article); msg != "" {
		return msg, nil
	}

	parent, err := a.categories.FindByID(article.CategoryID)
	if err != nil {
		return "", err
	}
	if parent == nil {
		return "Owning category does not exist.", nil
	}

	if article.SubcategoryID != nil {
		sub, err := a.subcategories.FindByID(*article.SubcategoryID)
		if err != nil {
			return "", err
		}
		if sub == nil {
			return "Owning subcategory does not exist.", nil
		}
		if sub.CategoryID != article.CategoryID {
			return "Subcategory belongs to a different category.", nil
		}
	}

	return "", nil
}

// ArticleList returns the newest articles. ?limit= caps the result.
func (a *Admin) ArticleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "Invalid limit.")
			return
		}
		limit = n
	}

	articles, err := a.articles.List(limit)
	if err != nil {
		storeError(w, "list articles failed", err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

// ArticleGet returns one article by id.
func (a *Admin) ArticleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid article id.")
		return
	}
	article, err := a.articles.FindByID(id)
	if err != nil {
		storeError(w, "find article failed", err)
		return
	}
	if article == nil {
		jsonError(w, http.StatusNotFound, "Article not found.")
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// ArticleCreate creates an article. The slug defaults to a slugified
// headline, publish time to now, and read time to the default estimate.
func (a *Admin) ArticleCreate(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	article := &models.Article{
		PublishedAt: time.Now(),
		ReadTime:    defaultReadTime,
	}
	if msg := req.apply(article); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	if article.Slug == "" && article.Headline != "" {
		article.Slug = slug.Generate(article.Headline)
	}

	msg, err := a.validateArticle(article)
	if err != nil {
		storeError(w, "validate article failed", err)
		return
	}
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.articles.Create(article)
	if err != nil {
		storeError(w, "create article failed", err)
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusCreated, created)
}

// ArticleUpdate patches an article. Validation runs against the merged
// resulting state, so a patch that sets a second placement flag fails
// even when the flags arrive in separate requests.
func (a *Admin) ArticleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid article id.")
		return
	}

	existing, err := a.articles.FindByID(id)
	if err != nil {
		storeError(w, "find article failed", err)
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "Article not found.")
		return
	}

	var req articleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.apply(existing); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	msg, err := a.validateArticle(existing)
	if err != nil {
		storeError(w, "validate article failed", err)
		return
	}
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := a.articles.Update(existing)
	if err != nil {
		storeError(w, "update article failed", err)
		return
	}
	if updated == nil {
		jsonError(w, http.StatusNotFound, "Article not found.")
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusOK, updated)
}

// ArticleDelete removes an article.
func (a *Admin) ArticleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid article id.")
		return
	}

	deleted, err := a.articles.Delete(id)
	if err != nil {
		storeError(w, "delete article failed", err)
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "Article not found.")
		return
	}

	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}
