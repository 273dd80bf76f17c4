// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CategorySettingStore persists per-category admin settings. The image
// visibility toggle used to live in process memory and was lost on every
// restart; it is now a plain upserted row.
type CategorySettingStore struct {
	db *sql.DB
}

// NewCategorySettingStore returns a new CategorySettingStore backed by the given database.
func NewCategorySettingStore(db *sql.DB) *CategorySettingStore {
	return &CategorySettingStore{db: db}
}

// ImageVisibility returns the image visibility flag for every category that
// has a setting row, as a map keyed by category ID. Categories absent from
// the map default to visible.
func (s *CategorySettingStore) ImageVisibility() (map[uuid.UUID]bool, error) {
	rows, err := s.db.Query(`SELECT category_id, image_visible FROM category_settings`)
	if err != nil {
		return nil, fmt.Errorf("list category settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		var visible bool
		if err := rows.Scan(&id, &visible); err != nil {
			return nil, fmt.Errorf("scan category setting: %w", err)
		}
		settings[id] = visible
	}
	return settings, rows.Err()
}

// SetImageVisibility upserts the image visibility flag for a category.
func (s *CategorySettingStore) SetImageVisibility(categoryID uuid.UUID, visible bool) error {
	_, err := s.db.Exec(`
		INSERT INTO category_settings (category_id, image_visible, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (category_id)
		DO UPDATE SET image_visible = EXCLUDED.image_visible, updated_at = EXCLUDED.updated_at`,
		categoryID, visible, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set category image visibility: %w", err)
	}
	return nil
}
