// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation and the reserved-slug
// check that keeps category slugs from colliding with static routes.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// reserved is the set of first path segments claimed by static routes.
// A category created with one of these slugs would shadow (or be shadowed
// by) a static page, so category writes reject them.
var reserved = map[string]bool{
	"admin":       true,
	"article":     true,
	"search":      true,
	"about":       true,
	"privacy":     true,
	"disclaimer":  true,
	"contact":     true,
	"sitemap.xml": true,
	"test":        true,
	"terms":       true,
}

// Generate creates a URL-friendly slug from the given string.
// Example: "Markets Rally, Again! 2026" → "markets-rally-again-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Reserved reports whether s collides with a static route. The check is
// case-insensitive since slugs are lowercased on the way in.
func Reserved(s string) bool {
	return reserved[strings.ToLower(s)]
}
