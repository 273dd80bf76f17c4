// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PlacementFlag names one of the mutually exclusive homepage placement
// booleans on an Article. IsOpinion is deliberately not a placement flag.
type PlacementFlag string

const (
	PlacementFeatured      PlacementFlag = "featured"
	PlacementMain          PlacementFlag = "main"
	PlacementTrending      PlacementFlag = "trending"
	PlacementCategoryBlock PlacementFlag = "categoryblock"
)

// Article is a published news story. At most one of Featured, Main,
// Trending, and CategoryBlock may be true at any time; the admin API
// enforces this at write time.
type Article struct {
	ID            uuid.UUID  `json:"id"`
	Slug          string     `json:"slug"`
	Headline      string     `json:"headline"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	Author        string     `json:"author"`
	CategoryID    uuid.UUID  `json:"category_id"`
	SubcategoryID *uuid.UUID `json:"subcategory_id,omitempty"`
	PublishedAt   time.Time  `json:"published_at"`
	ImageURL      *string    `json:"image_url,omitempty"`
	ReadTime      int        `json:"read_time"`
	Tags          []string   `json:"tags,omitempty"`
	Featured      bool       `json:"featured"`
	IsOpinion     bool       `json:"is_opinion"`
	Main          bool       `json:"main"`
	Trending      bool       `json:"trending"`
	CategoryBlock bool       `json:"categoryblock"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Virtual fields populated eagerly by the article store's join mapper.
	Category    *Category    `json:"category,omitempty"`
	Subcategory *Subcategory `json:"subcategory,omitempty"`
}

// CategorySlug returns the owning category's slug, or "" when the
// category reference could not be resolved.
func (a *Article) CategorySlug() string {
	if a.Category == nil {
		return ""
	}
	return a.Category.Slug
}

// PlacementCount returns how many of the mutually exclusive placement
// flags are set on the article.
func (a *Article) PlacementCount() int {
	n := 0
	for _, set := range []bool{a.Featured, a.Main, a.Trending, a.CategoryBlock} {
		if set {
			n++
		}
	}
	return n
}
