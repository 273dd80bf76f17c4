// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"beltway/internal/models"
	"beltway/internal/slug"
)

// validateExclusiveFlags checks the one-placement-per-article rule on the
// resulting article state. Returns a message naming the rule, or "".
func validateExclusiveFlags(a *models.Article) string {
	if a.PlacementCount() > 1 {
		return "At most one of featured, main, trending, and categoryblock may be set."
	}
	return ""
}

// validateCategorySlug rejects empty and reserved category slugs. Reserved
// slugs would shadow the static routes.
func validateCategorySlug(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Slug is required."
	}
	if slug.Reserved(s) {
		return "Slug " + strconv.Quote(s) + " is reserved and cannot be used."
	}
	return ""
}

// parseTags accepts the tags field as either a JSON string array or a
// single comma-separated string, matching what the admin UI historically
// sent. Returns ok=false if the value is neither.
func parseTags(raw json.RawMessage) (tags []string, ok bool) {
	if len(raw) == 0 {
		return nil, true
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimTags(list), true
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return trimTags(strings.Split(joined, ",")), true
	}

	return nil, false
}

func trimTags(in []string) []string {
	var out []string
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
