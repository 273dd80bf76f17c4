// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"beltway/internal/cache"
	"beltway/internal/database"
	"beltway/internal/models"
	"beltway/internal/render"
	"beltway/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "beltway")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "beltway")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "page:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Renderer      *render.Renderer
	Categories    *store.CategoryStore
	Subcategories *store.SubcategoryStore
	Articles      *store.ArticleStore
	SocialUsers   *store.SocialUserStore
	SocialContent *store.SocialContentStore
	Settings      *store.CategorySettingStore
	PageCache     *cache.PageCache
	Admin         *Admin
	Public        *Public
}

// newTestEnv creates a complete test environment with all handler
// dependencies. Object storage stays nil; media handlers return 503.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	categories := store.NewCategoryStore(db)
	subcategories := store.NewSubcategoryStore(db)
	articles := store.NewArticleStore(db)
	socialUsers := store.NewSocialUserStore(db)
	socialContent := store.NewSocialContentStore(db)
	settings := store.NewCategorySettingStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	admin := NewAdmin(renderer, pageCache, nil,
		categories, subcategories, articles, socialUsers, socialContent, settings)
	public := NewPublic(renderer, pageCache, "http://localhost:8080",
		categories, subcategories, articles, socialContent, settings)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Renderer:      renderer,
		Categories:    categories,
		Subcategories: subcategories,
		Articles:      articles,
		SocialUsers:   socialUsers,
		SocialContent: socialContent,
		Settings:      settings,
		PageCache:     pageCache,
		Admin:         admin,
		Public:        public,
	}
}

// withChiURLParam adds chi URL parameters to a request, given as
// alternating key/value pairs.
func withChiURLParam(r *http.Request, pairs ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(pairs); i += 2 {
		rctx.URLParams.Add(pairs[i], pairs[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// seedCategory creates a category with a unique slug and registers cleanup.
func seedCategory(t *testing.T, env *testEnv, name string) *models.Category {
	t.Helper()
	created, err := env.Categories.Create(&models.Category{
		Slug: name + "-" + uuid.NewString()[:8],
		Name: name,
	})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM categories WHERE id = $1", created.ID)
	})
	return created
}

// seedArticle creates a minimal article in the given category.
func seedArticle(t *testing.T, env *testEnv, categoryID uuid.UUID, mutate func(*models.Article)) *models.Article {
	t.Helper()
	a := &models.Article{
		Slug:        "story-" + uuid.NewString()[:8],
		Headline:    "Test Headline",
		Excerpt:     "Short standfirst.",
		Content:     "Body copy.",
		Author:      "Staff Writer",
		CategoryID:  categoryID,
		PublishedAt: time.Now(),
		ReadTime:    3,
	}
	if mutate != nil {
		mutate(a)
	}
	created, err := env.Articles.Create(a)
	if err != nil {
		t.Fatalf("seed article: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM articles WHERE id = $1", created.ID)
	})
	return created
}
