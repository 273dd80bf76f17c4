package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: a couple of
// categories with subcategories and a handful of flagged articles so the
// homepage sections render out of the box. No-op if categories exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	categories := []struct {
		slug, name, description string
	}{
		{"business", "Business", "Markets, companies, and the economy"},
		{"politics", "Politics", "Government, elections, and policy"},
		{"technology", "Technology", "Software, hardware, and the industry"},
	}

	catIDs := make(map[string]string)
	for _, c := range categories {
		var id string
		if err := tx.QueryRow(`
			INSERT INTO categories (slug, name, description)
			VALUES ($1, $2, $3)
			RETURNING id
		`, c.slug, c.name, c.description).Scan(&id); err != nil {
			return fmt.Errorf("seed insert category %s: %w", c.slug, err)
		}
		catIDs[c.slug] = id
	}

	var subID string
	if err := tx.QueryRow(`
		INSERT INTO subcategories (slug, name, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "markets", "Markets", "Equities, bonds, and commodities", catIDs["business"]).Scan(&subID); err != nil {
		return fmt.Errorf("seed insert subcategory: %w", err)
	}

	articles := []struct {
		slug, headline, category                string
		featured, main, trending, categoryblock bool
		opinion                                 bool
	}{
		{slug: "markets-open-higher", headline: "Markets Open Higher After Quiet Week", category: "business", featured: true},
		{slug: "budget-vote-delayed", headline: "Budget Vote Delayed Until Next Session", category: "politics", main: true},
		{slug: "chip-shortage-easing", headline: "Chip Shortage Shows Signs of Easing", category: "technology", trending: true},
		{slug: "rate-cut-unlikely", headline: "Why a Rate Cut Is Unlikely This Quarter", category: "business", categoryblock: true},
		{slug: "on-civic-duty", headline: "On Civic Duty and the Long Game", category: "politics", opinion: true},
	}

	for i, a := range articles {
		var sub any
		if a.category == "business" {
			sub = subID
		}
		if _, err := tx.Exec(`
			INSERT INTO articles (slug, headline, excerpt, content, author,
			                      category_id, subcategory_id, published_at,
			                      featured, main, trending, categoryblock, is_opinion)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW() - make_interval(hours => $8),
			        $9, $10, $11, $12, $13)
		`, a.slug, a.headline, "Seeded development article.",
			"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
			"Newsroom Staff", catIDs[a.category], sub, i+1,
			a.featured, a.main, a.trending, a.categoryblock, a.opinion,
		); err != nil {
			return fmt.Errorf("seed insert article %s: %w", a.slug, err)
		}
	}

	var socialUserID string
	if err := tx.QueryRow(`
		INSERT INTO social_users (handle, display_name)
		VALUES ($1, $2)
		RETURNING id
	`, "beltwaydesk", "Beltway Desk").Scan(&socialUserID); err != nil {
		return fmt.Errorf("seed insert social user: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO social_contents (user_id, text, source)
		VALUES ($1, $2, $3)
	`, socialUserID, "Watching the floor vote live — updates to follow.", "newsroom"); err != nil {
		return fmt.Errorf("seed insert social content: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with development content",
		"categories", len(categories),
		"articles", len(articles),
	)
	return nil
}
