// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the typed query layer over PostgreSQL. One store
// type per entity; all row-to-entity mapping is eager and explicit.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"beltway/internal/models"
)

// CategoryStore handles all category-related database operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories ordered by name, without subcategories.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT id, slug, name, description, color, created_at, updated_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// ListWithSubcategories returns all categories ordered by name, each with
// its subcategories populated. Used for navigation and the sitemap. The
// subcategories are fetched in one query and grouped in memory, avoiding
// the per-category loop query pattern.
func (s *CategoryStore) ListWithSubcategories() ([]models.Category, error) {
	categories, err := s.List()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, slug, name, description, category_id, created_at, updated_at
		FROM subcategories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	bySub := make(map[uuid.UUID][]models.Subcategory)
	for rows.Next() {
		var sub models.Subcategory
		if err := rows.Scan(&sub.ID, &sub.Slug, &sub.Name, &sub.Description, &sub.CategoryID, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		bySub[sub.CategoryID] = append(bySub[sub.CategoryID], sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range categories {
		categories[i].Subcategories = bySub[categories[i].ID]
	}
	return categories, nil
}

// FindByID retrieves a category by its UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, slug, name, description, color, created_at, updated_at
		FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by its slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, slug, name, description, color, created_at, updated_at
		FROM categories WHERE slug = $1
	`, slug).Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it with the generated ID and
// timestamps.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	result := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (slug, name, description, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, slug, name, description, color, created_at, updated_at
	`, c.Slug, c.Name, c.Description, c.Color).Scan(
		&result.ID, &result.Slug, &result.Name, &result.Description, &result.Color,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category. Returns nil if the id doesn't exist.
func (s *CategoryStore) Update(c *models.Category) (*models.Category, error) {
	result := &models.Category{}
	err := s.db.QueryRow(`
		UPDATE categories SET
			slug = $1, name = $2, description = $3, color = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, slug, name, description, color, created_at, updated_at
	`, c.Slug, c.Name, c.Description, c.Color, c.ID).Scan(
		&result.ID, &result.Slug, &result.Name, &result.Description, &result.Color,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return result, nil
}

// Delete removes a category by ID. Returns false if no row was deleted.
func (s *CategoryStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category rows affected: %w", err)
	}
	return n > 0, nil
}

// ReferenceCounts returns how many subcategories and articles reference the
// category. Deletion is blocked while either count is non-zero.
func (s *CategoryStore) ReferenceCounts(id uuid.UUID) (subcategories, articles int, err error) {
	err = s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM subcategories WHERE category_id = $1),
			(SELECT COUNT(*) FROM articles WHERE category_id = $1)
	`, id).Scan(&subcategories, &articles)
	if err != nil {
		return 0, 0, fmt.Errorf("category reference counts: %w", err)
	}
	return subcategories, articles, nil
}

// Count returns the number of categories. Used by the admin dashboard.
func (s *CategoryStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}
