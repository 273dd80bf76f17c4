// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package homepage partitions articles into the front-page presentation
// buckets. Aggregation is a pure function over an already-fetched article
// list; it performs no queries of its own.
package homepage

import (
	"github.com/google/uuid"

	"beltway/internal/models"
)

// Bucket capacities. The category blocks are uncapped.
const (
	maxFeatured = 5
	maxOpinion  = 5
	maxMain     = 10
	maxTrending = 5
)

// Page holds the five homepage buckets. No article appears in more than
// one bucket; articles with no matching flag appear in none.
type Page struct {
	Featured       []models.Article
	Opinion        []models.Article
	Main           []models.Article
	Trending       []models.Article
	CategoryBlocks map[string][]models.Article
}

// Aggregate partitions articles into buckets. The input order is preserved
// within each bucket, so callers should pass articles sorted by publish
// time descending.
//
// Featured is filled first in its own pass and every article taken is
// marked processed by identity. The second pass assigns each remaining
// article to the first flag that matches, in priority order: opinion,
// main, trending, category block. The processed set guarantees no
// duplicate placement even if a row violates the one-flag-per-article
// rule at the data layer.
func Aggregate(articles []models.Article) Page {
	page := Page{
		CategoryBlocks: make(map[string][]models.Article),
	}
	processed := make(map[uuid.UUID]bool, len(articles))

	for _, a := range articles {
		if len(page.Featured) == maxFeatured {
			break
		}
		if a.Featured {
			page.Featured = append(page.Featured, a)
			processed[a.ID] = true
		}
	}

	for _, a := range articles {
		if processed[a.ID] {
			continue
		}
		switch {
		case a.IsOpinion && len(page.Opinion) < maxOpinion:
			page.Opinion = append(page.Opinion, a)
		case a.Main && len(page.Main) < maxMain:
			page.Main = append(page.Main, a)
		case a.Trending && len(page.Trending) < maxTrending:
			page.Trending = append(page.Trending, a)
		case a.CategoryBlock:
			// Articles with a dangling category reference cannot be
			// grouped and are left off the page.
			if a.Category == nil {
				continue
			}
			slug := a.Category.Slug
			page.CategoryBlocks[slug] = append(page.CategoryBlocks[slug], a)
		default:
			continue
		}
		processed[a.ID] = true
	}

	return page
}
