// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"beltway/internal/models"
)

// SubcategoryStore handles all subcategory-related database operations.
type SubcategoryStore struct {
	db *sql.DB
}

// NewSubcategoryStore creates a new SubcategoryStore with the given database connection.
func NewSubcategoryStore(db *sql.DB) *SubcategoryStore {
	return &SubcategoryStore{db: db}
}

// subcategoryColumns is the join projection shared by every subcategory
// query. The owning category is always populated.
const subcategoryColumns = `
	s.id, s.slug, s.name, s.description, s.category_id, s.created_at, s.updated_at,
	c.id, c.slug, c.name, c.description, c.color, c.created_at, c.updated_at`

// scanSubcategory maps one joined row into a Subcategory with its Category attached.
func scanSubcategory(scanner interface{ Scan(...any) error }) (*models.Subcategory, error) {
	sub := &models.Subcategory{}
	cat := &models.Category{}
	err := scanner.Scan(
		&sub.ID, &sub.Slug, &sub.Name, &sub.Description, &sub.CategoryID, &sub.CreatedAt, &sub.UpdatedAt,
		&cat.ID, &cat.Slug, &cat.Name, &cat.Description, &cat.Color, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.Category = cat
	return sub, nil
}

// List returns all subcategories ordered by name, each with its owning
// category populated.
func (s *SubcategoryStore) List() ([]models.Subcategory, error) {
	rows, err := s.db.Query(`
		SELECT ` + subcategoryColumns + `
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		ORDER BY s.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var items []models.Subcategory
	for rows.Next() {
		sub, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		items = append(items, *sub)
	}
	return items, rows.Err()
}

// FindByID retrieves a subcategory by its UUID. Returns nil if not found.
func (s *SubcategoryStore) FindByID(id uuid.UUID) (*models.Subcategory, error) {
	sub, err := scanSubcategory(s.db.QueryRow(`
		SELECT `+subcategoryColumns+`
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subcategory by id: %w", err)
	}
	return sub, nil
}

// FindBySlug retrieves a subcategory by the owning category's slug and its
// own slug. Both must match; a subcategory reached under the wrong category
// path is a routing miss, not a redirect.
func (s *SubcategoryStore) FindBySlug(categorySlug, subcategorySlug string) (*models.Subcategory, error) {
	sub, err := scanSubcategory(s.db.QueryRow(`
		SELECT `+subcategoryColumns+`
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE c.slug = $1 AND s.slug = $2
	`, categorySlug, subcategorySlug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subcategory by slug: %w", err)
	}
	return sub, nil
}

// Create inserts a new subcategory and returns it with the generated ID.
func (s *SubcategoryStore) Create(sub *models.Subcategory) (*models.Subcategory, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO subcategories (slug, name, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, sub.Slug, sub.Name, sub.Description, sub.CategoryID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an existing subcategory. Returns nil if the id doesn't exist.
func (s *SubcategoryStore) Update(sub *models.Subcategory) (*models.Subcategory, error) {
	res, err := s.db.Exec(`
		UPDATE subcategories SET
			slug = $1, name = $2, description = $3, category_id = $4, updated_at = NOW()
		WHERE id = $5
	`, sub.Slug, sub.Name, sub.Description, sub.CategoryID, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("update subcategory: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update subcategory rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindByID(sub.ID)
}

// Delete removes a subcategory by ID. Returns false if no row was deleted.
func (s *SubcategoryStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete subcategory: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete subcategory rows affected: %w", err)
	}
	return n > 0, nil
}

// ArticleCount returns how many articles reference the subcategory.
// Deletion is blocked while the count is non-zero.
func (s *SubcategoryStore) ArticleCount(id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE subcategory_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("subcategory article count: %w", err)
	}
	return count, nil
}

// Count returns the number of subcategories. Used by the admin dashboard.
func (s *SubcategoryStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM subcategories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count subcategories: %w", err)
	}
	return count, nil
}
