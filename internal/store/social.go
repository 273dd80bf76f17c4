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

// SocialUserStore handles social user database operations.
type SocialUserStore struct {
	db *sql.DB
}

// NewSocialUserStore creates a new SocialUserStore with the given database connection.
func NewSocialUserStore(db *sql.DB) *SocialUserStore {
	return &SocialUserStore{db: db}
}

// List returns all social users ordered by handle.
func (s *SocialUserStore) List() ([]models.SocialUser, error) {
	rows, err := s.db.Query(`
		SELECT id, handle, display_name, profile_picture_url
		FROM social_users
		ORDER BY handle ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list social users: %w", err)
	}
	defer rows.Close()

	var items []models.SocialUser
	for rows.Next() {
		var u models.SocialUser
		if err := rows.Scan(&u.ID, &u.Handle, &u.DisplayName, &u.ProfilePictureURL); err != nil {
			return nil, fmt.Errorf("scan social user: %w", err)
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

// FindByID retrieves a social user by its UUID. Returns nil if not found.
func (s *SocialUserStore) FindByID(id uuid.UUID) (*models.SocialUser, error) {
	u := &models.SocialUser{}
	err := s.db.QueryRow(`
		SELECT id, handle, display_name, profile_picture_url
		FROM social_users WHERE id = $1
	`, id).Scan(&u.ID, &u.Handle, &u.DisplayName, &u.ProfilePictureURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find social user by id: %w", err)
	}
	return u, nil
}

// Create inserts a new social user and returns it with the generated ID.
func (s *SocialUserStore) Create(u *models.SocialUser) (*models.SocialUser, error) {
	result := &models.SocialUser{}
	err := s.db.QueryRow(`
		INSERT INTO social_users (handle, display_name, profile_picture_url)
		VALUES ($1, $2, $3)
		RETURNING id, handle, display_name, profile_picture_url
	`, u.Handle, u.DisplayName, u.ProfilePictureURL).Scan(
		&result.ID, &result.Handle, &result.DisplayName, &result.ProfilePictureURL,
	)
	if err != nil {
		return nil, fmt.Errorf("create social user: %w", err)
	}
	return result, nil
}

// Update modifies an existing social user. Returns nil if the id doesn't exist.
func (s *SocialUserStore) Update(u *models.SocialUser) (*models.SocialUser, error) {
	result := &models.SocialUser{}
	err := s.db.QueryRow(`
		UPDATE social_users SET handle = $1, display_name = $2, profile_picture_url = $3
		WHERE id = $4
		RETURNING id, handle, display_name, profile_picture_url
	`, u.Handle, u.DisplayName, u.ProfilePictureURL, u.ID).Scan(
		&result.ID, &result.Handle, &result.DisplayName, &result.ProfilePictureURL,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update social user: %w", err)
	}
	return result, nil
}

// ContentCount returns how many content rows still reference the user.
// Callers check this before Delete so a referenced user surfaces as a
// conflict instead of a raw foreign-key failure.
func (s *SocialUserStore) ContentCount(id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM social_contents WHERE user_id = $1`, id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("social user content count: %w", err)
	}
	return count, nil
}

// Delete removes a social user by ID. Returns false if no row was deleted.
func (s *SocialUserStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM social_users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete social user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete social user rows affected: %w", err)
	}
	return n > 0, nil
}

// SocialContentStore handles social content database operations. Content
// rows always carry their author, joined eagerly.
type SocialContentStore struct {
	db *sql.DB
}

// NewSocialContentStore creates a new SocialContentStore with the given database connection.
func NewSocialContentStore(db *sql.DB) *SocialContentStore {
	return &SocialContentStore{db: db}
}

const socialContentColumns = `
	sc.id, sc.user_id, sc.text, sc.source, sc.posted_at,
	su.id, su.handle, su.display_name, su.profile_picture_url`

// scanSocialContent maps one joined row into a SocialContent with its User attached.
func scanSocialContent(scanner interface{ Scan(...any) error }) (*models.SocialContent, error) {
	c := &models.SocialContent{}
	u := &models.SocialUser{}
	err := scanner.Scan(
		&c.ID, &c.UserID, &c.Text, &c.Source, &c.PostedAt,
		&u.ID, &u.Handle, &u.DisplayName, &u.ProfilePictureURL,
	)
	if err != nil {
		return nil, err
	}
	c.User = u
	return c, nil
}

// List returns all social content ordered by posting time descending.
func (s *SocialContentStore) List() ([]models.SocialContent, error) {
	rows, err := s.db.Query(`
		SELECT ` + socialContentColumns + `
		FROM social_contents sc
		JOIN social_users su ON su.id = sc.user_id
		ORDER BY sc.posted_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list social contents: %w", err)
	}
	defer rows.Close()

	var items []models.SocialContent
	for rows.Next() {
		c, err := scanSocialContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan social content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a social content item by its UUID. Returns nil if not found.
func (s *SocialContentStore) FindByID(id uuid.UUID) (*models.SocialContent, error) {
	c, err := scanSocialContent(s.db.QueryRow(`
		SELECT `+socialContentColumns+`
		FROM social_contents sc
		JOIN social_users su ON su.id = sc.user_id
		WHERE sc.id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find social content by id: %w", err)
	}
	return c, nil
}

// Create inserts a new social content item and returns it with the
// generated ID and joined author.
func (s *SocialContentStore) Create(c *models.SocialContent) (*models.SocialContent, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO social_contents (user_id, text, source)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.UserID, c.Text, c.Source).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create social content: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an existing social content item. Returns nil if the id
// doesn't exist.
func (s *SocialContentStore) Update(c *models.SocialContent) (*models.SocialContent, error) {
	res, err := s.db.Exec(`
		UPDATE social_contents SET user_id = $1, text = $2, source = $3
		WHERE id = $4
	`, c.UserID, c.Text, c.Source, c.ID)
	if err != nil {
		return nil, fmt.Errorf("update social content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update social content rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindByID(c.ID)
}

// Delete removes a social content item by ID. Returns false if no row was deleted.
func (s *SocialContentStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM social_contents WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete social content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete social content rows affected: %w", err)
	}
	return n > 0, nil
}
