// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"beltway/internal/models"
)

// ArticleStore handles all article-related database operations.
// Every query joins the owning category and subcategory so the returned
// articles carry a fully populated entity graph — no lazy loading, no
// follow-up per-row queries.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// placementColumns maps placement flags to their column names. Flag queries
// go through this map so a flag name can never reach the SQL text directly.
var placementColumns = map[models.PlacementFlag]string{
	models.PlacementFeatured:      "featured",
	models.PlacementMain:          "main",
	models.PlacementTrending:      "trending",
	models.PlacementCategoryBlock: "categoryblock",
}

// articleColumns is the join projection shared by every article query.
const articleColumns = `
	a.id, a.slug, a.headline, a.excerpt, a.content, a.author,
	a.category_id, a.subcategory_id, a.published_at, a.image_url,
	a.read_time, a.tags, a.featured, a.is_opinion, a.main, a.trending,
	a.categoryblock, a.created_at, a.updated_at,
	c.id, c.slug, c.name, c.description, c.color, c.created_at, c.updated_at,
	s.id, s.slug, s.name, s.description, s.category_id, s.created_at, s.updated_at`

const articleFrom = `
	FROM articles a
	JOIN categories c ON c.id = a.category_id
	LEFT JOIN subcategories s ON s.id = a.subcategory_id`

// scanArticle maps one joined row into an Article with Category and
// (when present) Subcategory attached.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	a := &models.Article{}
	cat := &models.Category{}
	var tagsRaw []byte
	var (
		subID         uuid.NullUUID
		subSlug       sql.NullString
		subName       sql.NullString
		subDesc       sql.NullString
		subCategoryID uuid.NullUUID
		subCreated    sql.NullTime
		subUpdated    sql.NullTime
	)

	err := scanner.Scan(
		&a.ID, &a.Slug, &a.Headline, &a.Excerpt, &a.Content, &a.Author,
		&a.CategoryID, &a.SubcategoryID, &a.PublishedAt, &a.ImageURL,
		&a.ReadTime, &tagsRaw, &a.Featured, &a.IsOpinion, &a.Main, &a.Trending,
		&a.CategoryBlock, &a.CreatedAt, &a.UpdatedAt,
		&cat.ID, &cat.Slug, &cat.Name, &cat.Description, &cat.Color, &cat.CreatedAt, &cat.UpdatedAt,
		&subID, &subSlug, &subName, &subDesc, &subCategoryID, &subCreated, &subUpdated,
	)
	if err != nil {
		return nil, err
	}

	if len(tagsRaw) > 0 {
		if err := json.Unmarshal(tagsRaw, &a.Tags); err != nil {
			return nil, fmt.Errorf("decode article tags: %w", err)
		}
	}

	a.Category = cat
	if subID.Valid {
		sub := &models.Subcategory{
			ID:         subID.UUID,
			Slug:       subSlug.String,
			Name:       subName.String,
			CategoryID: subCategoryID.UUID,
			CreatedAt:  subCreated.Time,
			UpdatedAt:  subUpdated.Time,
		}
		if subDesc.Valid {
			sub.Description = &subDesc.String
		}
		a.Subcategory = sub
	}
	return a, nil
}

// collectArticles drains a result set through scanArticle.
func collectArticles(rows *sql.Rows) ([]models.Article, error) {
	defer rows.Close()
	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// encodeTags marshals a tag list to JSONB, or nil for an empty list.
func encodeTags(tags []string) (any, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode article tags: %w", err)
	}
	return raw, nil
}

// List returns articles ordered by publish date descending. A limit <= 0
// returns all articles.
func (s *ArticleStore) List(limit int) ([]models.Article, error) {
	query := `SELECT ` + articleColumns + articleFrom + ` ORDER BY a.published_at DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.Query(query+` LIMIT $1`, limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return collectArticles(rows)
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(
		`SELECT `+articleColumns+articleFrom+` WHERE a.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// FindBySlug retrieves an article by its globally unique slug. Returns nil
// if not found. Dated public URLs resolve through this as well — only the
// terminal slug segment identifies the row.
func (s *ArticleStore) FindBySlug(slug string) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(
		`SELECT `+articleColumns+articleFrom+` WHERE a.slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}

// ListByFlag returns the newest articles with the given placement flag set.
func (s *ArticleStore) ListByFlag(flag models.PlacementFlag, limit int) ([]models.Article, error) {
	col, ok := placementColumns[flag]
	if !ok {
		return nil, fmt.Errorf("unknown placement flag %q", flag)
	}
	rows, err := s.db.Query(
		`SELECT `+articleColumns+articleFrom+` WHERE a.`+col+` ORDER BY a.published_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list articles by flag %s: %w", flag, err)
	}
	return collectArticles(rows)
}

// ListOpinion returns the newest opinion articles.
func (s *ArticleStore) ListOpinion(limit int) ([]models.Article, error) {
	rows, err := s.db.Query(
		`SELECT `+articleColumns+articleFrom+` WHERE a.is_opinion ORDER BY a.published_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list opinion articles: %w", err)
	}
	return collectArticles(rows)
}

// ListByCategory returns the newest articles in a category.
func (s *ArticleStore) ListByCategory(categoryID uuid.UUID, limit int) ([]models.Article, error) {
	rows, err := s.db.Query(
		`SELECT `+articleColumns+articleFrom+` WHERE a.category_id = $1 ORDER BY a.published_at DESC LIMIT $2`,
		categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("list articles by category: %w", err)
	}
	return collectArticles(rows)
}

// ListBySubcategory returns the newest articles in a subcategory.
func (s *ArticleStore) ListBySubcategory(subcategoryID uuid.UUID, limit int) ([]models.Article, error) {
	rows, err := s.db.Query(
		`SELECT `+articleColumns+articleFrom+` WHERE a.subcategory_id = $1 ORDER BY a.published_at DESC LIMIT $2`,
		subcategoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("list articles by subcategory: %w", err)
	}
	return collectArticles(rows)
}

// Search returns articles whose headline, excerpt, content, or tags match
// the query as a case-insensitive substring.
func (s *ArticleStore) Search(q string, limit int) ([]models.Article, error) {
	pattern := "%" + q + "%"
	rows, err := s.db.Query(
		`SELECT `+articleColumns+articleFrom+`
		WHERE a.headline ILIKE $1
		   OR a.excerpt ILIKE $1
		   OR a.content ILIKE $1
		   OR a.tags::text ILIKE $1
		ORDER BY a.published_at DESC
		LIMIT $2`,
		pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return collectArticles(rows)
}

// ListRelated returns the newest articles sharing the article's category or
// subcategory, excluding the article itself.
func (s *ArticleStore) ListRelated(a *models.Article, limit int) ([]models.Article, error) {
	rows, err := s.db.Query(
		`SELECT `+articleColumns+articleFrom+`
		WHERE a.id != $1
		  AND (a.category_id = $2 OR ($3::uuid IS NOT NULL AND a.subcategory_id = $3))
		ORDER BY a.published_at DESC
		LIMIT $4`,
		a.ID, a.CategoryID, a.SubcategoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("list related articles: %w", err)
	}
	return collectArticles(rows)
}

// Create inserts a new article and returns it with the generated ID,
// joined category, and timestamps.
func (s *ArticleStore) Create(a *models.Article) (*models.Article, error) {
	tags, err := encodeTags(a.Tags)
	if err != nil {
		return nil, err
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO articles (slug, headline, excerpt, content, author,
		                      category_id, subcategory_id, published_at, image_url,
		                      read_time, tags, featured, is_opinion, main, trending, categoryblock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`, a.Slug, a.Headline, a.Excerpt, a.Content, a.Author,
		a.CategoryID, a.SubcategoryID, a.PublishedAt, a.ImageURL,
		a.ReadTime, tags, a.Featured, a.IsOpinion, a.Main, a.Trending, a.CategoryBlock,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an existing article. Returns nil if the id doesn't exist.
func (s *ArticleStore) Update(a *models.Article) (*models.Article, error) {
	tags, err := encodeTags(a.Tags)
	if err != nil {
		return nil, err
	}

	res, err := s.db.Exec(`
		UPDATE articles SET
			slug = $1, headline = $2, excerpt = $3, content = $4, author = $5,
			category_id = $6, subcategory_id = $7, published_at = $8, image_url = $9,
			read_time = $10, tags = $11, featured = $12, is_opinion = $13,
			main = $14, trending = $15, categoryblock = $16, updated_at = NOW()
		WHERE id = $17
	`, a.Slug, a.Headline, a.Excerpt, a.Content, a.Author,
		a.CategoryID, a.SubcategoryID, a.PublishedAt, a.ImageURL,
		a.ReadTime, tags, a.Featured, a.IsOpinion, a.Main, a.Trending, a.CategoryBlock,
		a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update article rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindByID(a.ID)
}

// Delete removes an article by ID. Returns false if no row was deleted.
func (s *ArticleStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete article rows affected: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of articles. Used by the admin dashboard.
func (s *ArticleStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// CountByCategory returns the number of articles in a category. Listing
// pages show it alongside the capped article list.
func (s *ArticleStore) CountByCategory(categoryID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM articles WHERE category_id = $1`, categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count articles by category: %w", err)
	}
	return count, nil
}

// CountBySubcategory returns the number of articles in a subcategory.
func (s *ArticleStore) CountBySubcategory(subcategoryID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM articles WHERE subcategory_id = $1`, subcategoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count articles by subcategory: %w", err)
	}
	return count, nil
}
