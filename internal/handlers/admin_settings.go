// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// categoryImageSetting is the wire form of one visibility entry. The
// camelCase keys match what the dashboard JavaScript has always sent.
type categoryImageSetting struct {
	CategoryID string `json:"categoryId"`
	Visible    *bool  `json:"visible"`
}

// CategoryImageGet returns the image visibility flag per category id.
// Categories without an entry default to visible and are omitted.
func (a *Admin) CategoryImageGet(w http.ResponseWriter, r *http.Request) {
	visibility, err := a.settings.ImageVisibility()
	if err != nil {
		storeError(w, "load category image settings failed", err)
		return
	}

	out := make(map[string]bool, len(visibility))
	for id, visible := range visibility {
		out[id.String()] = visible
	}
	writeJSON(w, http.StatusOK, out)
}

// CategoryImageSet stores the image visibility flag for one category.
// The setting is persisted, so it survives restarts.
func (a *Admin) CategoryImageSet(w http.ResponseWriter, r *http.Request) {
	var req categoryImageSetting
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := uuid.Parse(req.CategoryID)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid category id.")
		return
	}
	if req.Visible == nil {
		jsonError(w, http.StatusBadRequest, "Visible flag is required.")
		return
	}

	category, err := a.categories.FindByID(id)
	if err != nil {
		storeError(w, "find category failed", err)
		return
	}
	if category == nil {
		jsonError(w, http.StatusNotFound, "Category not found.")
		return
	}

	if err := a.settings.SetImageVisibility(id, *req.Visible); err != nil {
		storeError(w, "set category image visibility failed", err)
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"categoryId": id.String(),
		"visible":    *req.Visible,
	})
}
