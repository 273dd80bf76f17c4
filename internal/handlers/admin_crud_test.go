// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"beltway/internal/models"
)

// --- Dashboard ---

func TestDashboard_Returns200(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	env.Admin.Dashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Dashboard: got status %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Dashboard: Content-Type = %q, want text/html", ct)
	}
}

// --- Categories ---

func TestCategoryCreate_ValidData_Returns201(t *testing.T) {
	env := newTestEnv(t)

	slug := "newsroom-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM categories WHERE slug = $1", slug)
	})

	body := fmt.Sprintf(`{"name":"Newsroom","slug":%q}`, slug)
	req := httptest.NewRequest(http.MethodPost, "/admin/api/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Admin.CategoryCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("CategoryCreate: got status %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created models.Category
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created category: %v", err)
	}
	if created.Slug != slug {
		t.Errorf("slug: got %q, want %q", created.Slug, slug)
	}
	if created.ID == uuid.Nil {
		t.Error("created category has no id")
	}
}

func TestCategoryCreate_ReservedSlug_Returns400(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/categories",
		strings.NewReader(`{"name":"Admin","slug":"admin"}`))
	rec := httptest.NewRecorder()
	env.Admin.CategoryCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("reserved slug: got status %d, want 400", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if !strings.Contains(resp["error"], "reserved") {
		t.Errorf("error message: got %q, want mention of reserved", resp["error"])
	}
}

func TestCategoryCreate_DuplicateSlug_Returns409(t *testing.T) {
	env := newTestEnv(t)
	existing := seedCategory(t, env, "dupes")

	body := fmt.Sprintf(`{"name":"Dupes Again","slug":%q}`, existing.Slug)
	req := httptest.NewRequest(http.MethodPost, "/admin/api/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Admin.CategoryCreate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate slug: got status %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestCategoryUpdate_ReservedSlug_Returns400(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "renameable")

	req := httptest.NewRequest(http.MethodPut, "/admin/api/categories/"+cat.ID.String(),
		strings.NewReader(`{"slug":"search"}`))
	req = withChiURLParam(req, "id", cat.ID.String())
	rec := httptest.NewRecorder()
	env.Admin.CategoryUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("reserved slug on update: got status %d, want 400", rec.Code)
	}
}

func TestCategoryDelete_WithArticles_Returns409(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "occupied")
	seedArticle(t, env, cat.ID, nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/api/categories/"+cat.ID.String(), nil)
	req = withChiURLParam(req, "id", cat.ID.String())
	rec := httptest.NewRecorder()
	env.Admin.CategoryDelete(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("delete with articles: got status %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestCategoryDelete_Empty_Returns204(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "vacant")

	req := httptest.NewRequest(http.MethodDelete, "/admin/api/categories/"+cat.ID.String(), nil)
	req = withChiURLParam(req, "id", cat.ID.String())
	rec := httptest.NewRecorder()
	env.Admin.CategoryDelete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete empty category: got status %d, want 204: %s", rec.Code, rec.Body.String())
	}
}

func TestCategoryGet_Missing_Returns404(t *testing.T) {
	env := newTestEnv(t)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/categories/"+id, nil)
	req = withChiURLParam(req, "id", id)
	rec := httptest.NewRecorder()
	env.Admin.CategoryGet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing category: got status %d, want 404", rec.Code)
	}
}

// --- Articles ---

func TestArticleCreate_TwoPlacementFlags_Returns400(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "flags")

	body := fmt.Sprintf(`{
		"headline": "Two Flags",
		"content": "Body.",
		"author": "Staff Writer",
		"category_id": %q,
		"featured": true,
		"trending": true
	}`, cat.ID)
	req := httptest.NewRequest(http.MethodPost, "/admin/api/articles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Admin.ArticleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("two placement flags: got status %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestArticleCreate_SlugDefaultsFromHeadline(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "autoslug")

	headline := "Budget Vote Slips " + uuid.NewString()[:8]
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM articles WHERE headline = $1", headline)
	})

	body := fmt.Sprintf(`{
		"headline": %q,
		"content": "Body.",
		"author": "Staff Writer",
		"category_id": %q
	}`, headline, cat.ID)
	req := httptest.NewRequest(http.MethodPost, "/admin/api/articles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Admin.ArticleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("ArticleCreate: got status %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created models.Article
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created article: %v", err)
	}
	if !strings.HasPrefix(created.Slug, "budget-vote-slips") {
		t.Errorf("slug: got %q, want derived from headline", created.Slug)
	}
	if created.ReadTime != defaultReadTime {
		t.Errorf("read time: got %d, want default %d", created.ReadTime, defaultReadTime)
	}
}

func TestArticleUpdate_PatchAddsSecondFlag_Returns400(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "patchflags")
	art := seedArticle(t, env, cat.ID, func(a *models.Article) {
		a.Featured = true
	})

	// The stored row already has featured=true; patching trending=true
	// must fail against the merged state even though the request body
	// carries only one flag.
	req := httptest.NewRequest(http.MethodPut, "/admin/api/articles/"+art.ID.String(),
		strings.NewReader(`{"trending": true}`))
	req = withChiURLParam(req, "id", art.ID.String())
	rec := httptest.NewRecorder()
	env.Admin.ArticleUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("merged-state exclusivity: got status %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestArticleUpdate_SwapPlacementFlag_Succeeds(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "swapflags")
	art := seedArticle(t, env, cat.ID, func(a *models.Article) {
		a.Featured = true
	})

	req := httptest.NewRequest(http.MethodPut, "/admin/api/articles/"+art.ID.String(),
		strings.NewReader(`{"featured": false, "trending": true}`))
	req = withChiURLParam(req, "id", art.ID.String())
	rec := httptest.NewRecorder()
	env.Admin.ArticleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("swap flags: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var updated models.Article
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated article: %v", err)
	}
	if updated.Featured || !updated.Trending {
		t.Errorf("flags after swap: featured=%v trending=%v", updated.Featured, updated.Trending)
	}
}

func TestArticleCreate_SubcategoryFromOtherCategory_Returns400(t *testing.T) {
	env := newTestEnv(t)
	catA := seedCategory(t, env, "owner-a")
	catB := seedCategory(t, env, "owner-b")

	sub, err := env.Subcategories.Create(&models.Subcategory{
		Slug:       "stray-" + uuid.NewString()[:8],
		Name:       "Stray",
		CategoryID: catB.ID,
	})
	if err != nil {
		t.Fatalf("seed subcategory: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM subcategories WHERE id = $1", sub.ID)
	})

	body := fmt.Sprintf(`{
		"headline": "Mismatched Parent",
		"content": "Body.",
		"author": "Staff Writer",
		"category_id": %q,
		"subcategory_id": %q
	}`, catA.ID, sub.ID)
	req := httptest.NewRequest(http.MethodPost, "/admin/api/articles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Admin.ArticleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("cross-category subcategory: got status %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestArticleCreate_TagsAsCommaString(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "tagged")

	slug := "tagged-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM articles WHERE slug = $1", slug)
	})

	body := fmt.Sprintf(`{
		"headline": "Tagged Story",
		"slug": %q,
		"content": "Body.",
		"author": "Staff Writer",
		"category_id": %q,
		"tags": "congress, budget"
	}`, slug, cat.ID)
	req := httptest.NewRequest(http.MethodPost, "/admin/api/articles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Admin.ArticleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("tags as string: got status %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created models.Article
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created article: %v", err)
	}
	if len(created.Tags) != 2 || created.Tags[0] != "congress" || created.Tags[1] != "budget" {
		t.Errorf("tags: got %v, want [congress budget]", created.Tags)
	}
}

// --- Social users ---

func TestSocialUserDelete_WithContent_Returns409(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.SocialUsers.Create(&models.SocialUser{
		Handle:      "pundit-" + uuid.NewString()[:8],
		DisplayName: "Pundit",
	})
	if err != nil {
		t.Fatalf("seed social user: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM social_users WHERE id = $1", user.ID)
	})

	content, err := env.SocialContent.Create(&models.SocialContent{
		UserID: user.ID,
		Text:   "Hot take of the day.",
	})
	if err != nil {
		t.Fatalf("seed social content: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM social_contents WHERE id = $1", content.ID)
	})

	req := httptest.NewRequest(http.MethodDelete, "/admin/api/socialusers/"+user.ID.String(), nil)
	req = withChiURLParam(req, "id", user.ID.String())
	rec := httptest.NewRecorder()
	env.Admin.SocialUserDelete(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("delete user with content: got status %d, want 409: %s", rec.Code, rec.Body.String())
	}

	// The user row must survive the blocked delete.
	remaining, err := env.SocialUsers.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find social user: %v", err)
	}
	if remaining == nil {
		t.Error("social user deleted despite referencing content")
	}
}

func TestSocialUserDelete_WithoutContent_Returns204(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.SocialUsers.Create(&models.SocialUser{
		Handle:      "quiet-" + uuid.NewString()[:8],
		DisplayName: "Quiet Account",
	})
	if err != nil {
		t.Fatalf("seed social user: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM social_users WHERE id = $1", user.ID)
	})

	req := httptest.NewRequest(http.MethodDelete, "/admin/api/socialusers/"+user.ID.String(), nil)
	req = withChiURLParam(req, "id", user.ID.String())
	rec := httptest.NewRecorder()
	env.Admin.SocialUserDelete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete user without content: got status %d, want 204: %s", rec.Code, rec.Body.String())
	}
}

// --- Settings ---

func TestCategoryImageSet_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "imagery")
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM category_settings WHERE category_id = $1", cat.ID)
	})

	body := fmt.Sprintf(`{"categoryId":%q,"visible":false}`, cat.ID)
	req := httptest.NewRequest(http.MethodPost, "/admin/api/settings/category-image", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Admin.CategoryImageSet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("CategoryImageSet: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/admin/api/settings/category-image", nil)
	getRec := httptest.NewRecorder()
	env.Admin.CategoryImageGet(getRec, getReq)

	var settings map[string]bool
	if err := json.NewDecoder(getRec.Body).Decode(&settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if v, ok := settings[cat.ID.String()]; !ok || v {
		t.Errorf("visibility for %s: got %v present=%v, want false", cat.ID, v, ok)
	}
}

func TestCategoryImageSet_UnknownCategory_Returns404(t *testing.T) {
	env := newTestEnv(t)

	body := fmt.Sprintf(`{"categoryId":%q,"visible":true}`, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/admin/api/settings/category-image", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Admin.CategoryImageSet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown category: got status %d, want 404", rec.Code)
	}
}

// --- Media (storage not configured in tests) ---

func TestMediaUpload_NoStorage_Returns503(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/media", nil)
	rec := httptest.NewRecorder()
	env.Admin.MediaUpload(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("media without storage: got status %d, want 503", rec.Code)
	}
}
