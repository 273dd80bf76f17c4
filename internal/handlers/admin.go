// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"beltway/internal/cache"
	"beltway/internal/models"
	"beltway/internal/render"
	"beltway/internal/slug"
	"beltway/internal/storage"
	"beltway/internal/store"
)

// Admin groups the dashboard and the JSON CRUD API under /admin. The IP
// allow-list middleware guards the whole subtree; these handlers assume
// the caller is already authorized.
type Admin struct {
	renderer      *render.Renderer
	pageCache     *cache.PageCache
	storageClient *storage.Client
	categories    *store.CategoryStore
	subcategories *store.SubcategoryStore
	articles      *store.ArticleStore
	socialUsers   *store.SocialUserStore
	socialContent *store.SocialContentStore
	settings      *store.CategorySettingStore
}

// NewAdmin creates a new Admin handler group. storageClient may be nil if
// S3 is not configured; media uploads then return 503.
func NewAdmin(
	renderer *render.Renderer,
	pageCache *cache.PageCache,
	storageClient *storage.Client,
	categories *store.CategoryStore,
	subcategories *store.SubcategoryStore,
	articles *store.ArticleStore,
	socialUsers *store.SocialUserStore,
	socialContent *store.SocialContentStore,
	settings *store.CategorySettingStore,
) *Admin {
	return &Admin{
		renderer:      renderer,
		pageCache:     pageCache,
		storageClient: storageClient,
		categories:    categories,
		subcategories: subcategories,
		articles:      articles,
		socialUsers:   socialUsers,
		socialContent: socialContent,
		settings:      settings,
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// jsonError writes a JSON error payload.
func jsonError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a request body into dst, rejecting unknown syntax.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// idParam parses the {id} chi URL parameter as a UUID.
func idParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// isUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// storeError maps a store failure to a response: unique violations become
// 409, everything else a logged 500.
func storeError(w http.ResponseWriter, op string, err error) {
	if isUniqueViolation(err) {
		jsonError(w, http.StatusConflict, "A record with the same unique value already exists.")
		return
	}
	slog.Error(op, "error", err)
	jsonError(w, http.StatusInternalServerError, "Internal server error.")
}

// invalidate clears the full-page cache after any admin write. Any edit
// can move an article between homepage buckets or alter the sitemap, so
// everything cached is suspect.
func (a *Admin) invalidate(r *http.Request) {
	a.pageCache.InvalidateAll(r.Context())
}

// Dashboard renders the admin landing page with entity counts.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	type stats struct {
		Articles      int
		Categories    int
		Subcategories int
		SocialUsers   int
	}

	var s stats
	var err error
	if s.Articles, err = a.articles.Count(); err == nil {
		if s.Categories, err = a.categories.Count(); err == nil {
			if s.Subcategories, err = a.subcategories.Count(); err == nil {
				s.SocialUsers, err = countSocialUsers(a.socialUsers)
			}
		}
	}
	if err != nil {
		slog.Error("dashboard stats failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, "dashboard", &render.PageData{
		Title: "Admin Dashboard",
		Data:  map[string]any{"Stats": s},
	})
}

func countSocialUsers(s *store.SocialUserStore) (int, error) {
	users, err := s.List()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// --- Categories ---

// categoryRequest is the JSON payload for category create/update. Pointer
// fields distinguish "absent" from "set to zero" so updates can patch.
type categoryRequest struct {
	Slug        *string `json:"slug"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// CategoryList returns all categories with their subcategories.
func (a *Admin) CategoryList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.ListWithSubcategories()
	if err != nil {
		storeError(w, "list categories failed", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// CategoryGet returns one category by id.
func (a *Admin) CategoryGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid category id.")
		return
	}
	category, err := a.categories.FindByID(id)
	if err != nil {
		storeError(w, "find category failed", err)
		return
	}
	if category == nil {
		jsonError(w, http.StatusNotFound, "Category not found.")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// CategoryCreate creates a category. The slug defaults to a slugified
// name when absent and may never collide with a static route.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		jsonError(w, http.StatusBadRequest, "Name is required.")
		return
	}

	catSlug := ""
	if req.Slug != nil {
		catSlug = strings.TrimSpace(*req.Slug)
	}
	if catSlug == "" {
		catSlug = slug.Generate(*req.Name)
	}
	if msg := validateCategorySlug(catSlug); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.categories.Create(&models.Category{
		Slug:        catSlug,
		Name:        strings.TrimSpace(*req.Name),
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		storeError(w, "create category failed", err)
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate patches a category. Absent fields keep their prior value.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid category id.")
		return
	}

	existing, err := a.categories.FindByID(id)
	if err != nil {
		storeError(w, "find category failed", err)
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "Category not found.")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Slug != nil {
		existing.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.Color != nil {
		existing.Color = req.Color
	}

	// The reserved-slug rule applies to renames too.
	if msg := validateCategorySlug(existing.Slug); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	if existing.Name == "" {
		jsonError(w, http.StatusBadRequest, "Name is required.")
		return
	}

	updated, err := a.categories.Update(existing)
	if err != nil {
		storeError(w, "update category failed", err)
		return
	}
	if updated == nil {
		jsonError(w, http.StatusNotFound, "Category not found.")
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusOK, updated)
}

// CategoryDelete removes a category unless subcategories or articles
// still reference it.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid category id.")
		return
	}

	subs, arts, err := a.categories.ReferenceCounts(id)
	if err != nil {
		storeError(w, "category reference counts failed", err)
		return
	}
	if subs > 0 || arts > 0 {
		jsonError(w, http.StatusConflict, fmt.Sprintf(
			"Category is still referenced by %d subcategories and %d articles.", subs, arts))
		return
	}

	deleted, err := a.categories.Delete(id)
	if err != nil {
		storeError(w, "delete category failed", err)
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "Category not found.")
		return
	}

	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

// --- Subcategories ---

type subcategoryRequest struct {
	Slug        *string    `json:"slug"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// SubcategoryList returns all subcategories with their owning categories.
func (a *Admin) SubcategoryList(w http.ResponseWriter, r *http.Request) {
	subcategories, err := a.subcategories.List()
	if err != nil {
		storeError(w, "list subcategories failed", err)
		return
	}
	writeJSON(w, http.StatusOK, subcategories)
}

// SubcategoryGet returns one subcategory by id.
func (a *Admin) SubcategoryGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid subcategory id.")
		return
	}
	sub, err := a.subcategories.FindByID(id)
	if err != nil {
		storeError(w, "find subcategory failed", err)
		return
	}
	if sub == nil {
		jsonError(w, http.StatusNotFound, "Subcategory not found.")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// SubcategoryCreate creates a subcategory under an existing category.
func (a *Admin) SubcategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req subcategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		jsonError(w, http.StatusBadRequest, "Name is required.")
		return
	}
	if req.CategoryID == nil {
		jsonError(w, http.StatusBadRequest, "Category id is required.")
		return
	}

	parent, err := a.categories.FindByID(*req.CategoryID)
	if err != nil {
		storeError(w, "find category failed", err)
		return
	}
	if parent == nil {
		jsonError(w, http.StatusBadRequest, "Owning category does not exist.")
		return
	}

	subSlug := ""
	if req.Slug != nil {
		subSlug = strings.TrimSpace(*req.Slug)
	}
	if subSlug == "" {
		subSlug = slug.Generate(*req.Name)
	}

	created, err := a.subcategories.Create(&models.Subcategory{
		Slug:        subSlug,
		Name:        strings.TrimSpace(*req.Name),
		Description: req.Description,
		CategoryID:  *req.CategoryID,
	})
	if err != nil {
		storeError(w, "create subcategory failed", err)
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusCreated, created)
}

// SubcategoryUpdate patches a subcategory.
func (a *Admin) SubcategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid subcategory id.")
		return
	}

	existing, err := a.subcategories.FindByID(id)
	if err != nil {
		storeError(w, "find subcategory failed", err)
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "Subcategory not found.")
		return
	}

	var req subcategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Slug != nil {
		existing.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.CategoryID != nil {
		parent, err := a.categories.FindByID(*req.CategoryID)
		if err != nil {
			storeError(w, "find category failed", err)
			return
		}
		if parent == nil {
			jsonError(w, http.StatusBadRequest, "Owning category does not exist.")
			return
		}
		existing.CategoryID = *req.CategoryID
	}

	if existing.Slug == "" || existing.Name == "" {
		jsonError(w, http.StatusBadRequest, "Slug and name are required.")
		return
	}

	updated, err := a.subcategories.Update(existing)
	if err != nil {
		storeError(w, "update subcategory failed", err)
		return
	}
	if updated == nil {
		jsonError(w, http.StatusNotFound, "Subcategory not found.")
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusOK, updated)
}

// SubcategoryDelete removes a subcategory unless articles still reference it.
func (a *Admin) SubcategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid subcategory id.")
		return
	}

	count, err := a.subcategories.ArticleCount(id)
	if err != nil {
		storeError(w, "subcategory article count failed", err)
		return
	}
	if count > 0 {
		jsonError(w, http.StatusConflict, fmt.Sprintf(
			"Subcategory is still referenced by %d articles.", count))
		return
	}

	deleted, err := a.subcategories.Delete(id)
	if err != nil {
		storeError(w, "delete subcategory failed", err)
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "Subcategory not found.")
		return
	}

	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}
