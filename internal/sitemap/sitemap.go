// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sitemap renders the sitemap 0.9 XML document from the current
// content state. Generation is deterministic for a given input.
package sitemap

import (
	"encoding/xml"
	"fmt"

	"beltway/internal/models"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// fallbackCategory is the path segment used for articles whose category
// reference could not be resolved. They stay in the sitemap rather than
// silently disappearing from it.
const fallbackCategory = "uncategorized"

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// staticPages are the fixed entries at the top of the document.
var staticPages = []urlEntry{
	{Loc: "/", ChangeFreq: "daily", Priority: "1.0"},
	{Loc: "/about", ChangeFreq: "monthly", Priority: "0.8"},
	{Loc: "/privacy", ChangeFreq: "yearly", Priority: "0.5"},
	{Loc: "/disclaimer", ChangeFreq: "yearly", Priority: "0.5"},
	{Loc: "/contact", ChangeFreq: "yearly", Priority: "0.4"},
}

// ArticlePath returns the canonical public path for an article:
// /{category}/{YYYY}/{MM}/{DD}/{slug}. Date components come from the
// publish timestamp in UTC so the path never shifts with DST.
func ArticlePath(a *models.Article) string {
	slug := a.CategorySlug()
	if slug == "" {
		slug = fallbackCategory
	}
	t := a.PublishedAt.UTC()
	return fmt.Sprintf("/%s/%04d/%02d/%02d/%s", slug, t.Year(), int(t.Month()), t.Day(), a.Slug)
}

// Generate renders the full sitemap document. Categories are expected with
// their subcategories populated; articles carry their joined category.
func Generate(baseURL string, categories []models.Category, articles []models.Article) ([]byte, error) {
	set := urlSet{Xmlns: xmlns}

	for _, page := range staticPages {
		page.Loc = baseURL + page.Loc
		set.URLs = append(set.URLs, page)
	}

	for _, cat := range categories {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        baseURL + "/" + cat.Slug,
			ChangeFreq: "weekly",
			Priority:   "0.9",
		})
		for _, sub := range cat.Subcategories {
			set.URLs = append(set.URLs, urlEntry{
				Loc:        baseURL + "/" + cat.Slug + "/" + sub.Slug,
				ChangeFreq: "weekly",
				Priority:   "0.8",
			})
		}
	}

	for i := range articles {
		a := &articles[i]
		set.URLs = append(set.URLs, urlEntry{
			Loc:        baseURL + ArticlePath(a),
			LastMod:    a.PublishedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "never",
			Priority:   "0.7",
		})
	}

	body, err := xml.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
