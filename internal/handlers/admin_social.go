// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"beltway/internal/models"
)

type socialUserRequest struct {
	Handle            *string `json:"handle"`
	DisplayName       *string `json:"display_name"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// SocialUserList returns all social users.
func (a *Admin) SocialUserList(w http.ResponseWriter, r *http.Request) {
	users, err := a.socialUsers.List()
	if err != nil {
		storeError(w, "list social users failed", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// SocialUserGet returns one social user by id.
func (a *Admin) SocialUserGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid social user id.")
		return
	}
	user, err := a.socialUsers.FindByID(id)
	if err != nil {
		storeError(w, "find social user failed", err)
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "Social user not found.")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// SocialUserCreate creates a social user. Duplicate handles surface as 409.
func (a *Admin) SocialUserCreate(w http.ResponseWriter, r *http.Request) {
	var req socialUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Handle == nil || strings.TrimSpace(*req.Handle) == "" {
		jsonError(w, http.StatusBadRequest, "Handle is required.")
		return
	}
	if req.DisplayName == nil || strings.TrimSpace(*req.DisplayName) == "" {
		jsonError(w, http.StatusBadRequest, "Display name is required.")
		return
	}

	created, err := a.socialUsers.Create(&models.SocialUser{
		Handle:            strings.TrimSpace(*req.Handle),
		DisplayName:       strings.TrimSpace(*req.DisplayName),
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		storeError(w, "create social user failed", err)
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusCreated, created)
}

// SocialUserUpdate patches a social user.
func (a *Admin) SocialUserUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid social user id.")
		return
	}

	existing, err := a.socialUsers.FindByID(id)
	if err != nil {
		storeError(w, "find social user failed", err)
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "Social user not found.")
		return
	}

	var req socialUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Handle != nil {
		existing.Handle = strings.TrimSpace(*req.Handle)
	}
	if req.DisplayName != nil {
		existing.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.ProfilePictureURL != nil {
		if *req.ProfilePictureURL == "" {
			existing.ProfilePictureURL = nil
		} else {
			existing.ProfilePictureURL = req.ProfilePictureURL
		}
	}

	if existing.Handle == "" || existing.DisplayName == "" {
		jsonError(w, http.StatusBadRequest, "Handle and display name are required.")
		return
	}

	updated, err := a.socialUsers.Update(existing)
	if err != nil {
		storeError(w, "update social user failed", err)
		return
	}
	if updated == nil {
		jsonError(w, http.StatusNotFound, "Social user not found.")
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusOK, updated)
}

// SocialUserDelete removes a social user unless content rows still
// reference it.
func (a *Admin) SocialUserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid social user id.")
		return
	}

	count, err := a.socialUsers.ContentCount(id)
	if err != nil {
		storeError(w, "social user content count failed", err)
		return
	}
	if count > 0 {
		jsonError(w, http.StatusConflict, fmt.Sprintf(
			"Social user is still referenced by %d content items.", count))
		return
	}

	deleted, err := a.socialUsers.Delete(id)
	if err != nil {
		storeError(w, "delete social user failed", err)
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "Social user not found.")
		return
	}

	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

type socialContentRequest struct {
	UserID *uuid.UUID `json:"user_id"`
	Text   *string    `json:"text"`
	Source *string    `json:"source"`
}

// SocialContentList returns all social content, newest first.
func (a *Admin) SocialContentList(w http.ResponseWriter, r *http.Request) {
	contents, err := a.socialContent.List()
	if err != nil {
		storeError(w, "list social contents failed", err)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

// SocialContentGet returns one social content item by id.
func (a *Admin) SocialContentGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid social content id.")
		return
	}
	content, err := a.socialContent.FindByID(id)
	if err != nil {
		storeError(w, "find social content failed", err)
		return
	}
	if content == nil {
		jsonError(w, http.StatusNotFound, "Social content not found.")
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// SocialContentCreate creates a social content item for an existing user.
func (a *Admin) SocialContentCreate(w http.ResponseWriter, r *http.Request) {
	var req socialContentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		jsonError(w, http.StatusBadRequest, "Text is required.")
		return
	}
	if req.UserID == nil {
		jsonError(w, http.StatusBadRequest, "User id is required.")
		return
	}

	user, err := a.socialUsers.FindByID(*req.UserID)
	if err != nil {
		storeError(w, "find social user failed", err)
		return
	}
	if user == nil {
		jsonError(w, http.StatusBadRequest, "Social user does not exist.")
		return
	}

	created, err := a.socialContent.Create(&models.SocialContent{
		UserID: *req.UserID,
		Text:   *req.Text,
		Source: req.Source,
	})
	if err != nil {
		storeError(w, "create social content failed", err)
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusCreated, created)
}

// SocialContentUpdate patches a social content item.
func (a *Admin) SocialContentUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid social content id.")
		return
	}

	existing, err := a.socialContent.FindByID(id)
	if err != nil {
		storeError(w, "find social content failed", err)
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "Social content not found.")
		return
	}

	var req socialContentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Text != nil {
		existing.Text = *req.Text
	}
	if req.Source != nil {
		if *req.Source == "" {
			existing.Source = nil
		} else {
			existing.Source = req.Source
		}
	}
	if req.UserID != nil {
		user, err := a.socialUsers.FindByID(*req.UserID)
		if err != nil {
			storeError(w, "find social user failed", err)
			return
		}
		if user == nil {
			jsonError(w, http.StatusBadRequest, "Social user does not exist.")
			return
		}
		existing.UserID = *req.UserID
	}

	if strings.TrimSpace(existing.Text) == "" {
		jsonError(w, http.StatusBadRequest, "Text is required.")
		return
	}

	updated, err := a.socialContent.Update(existing)
	if err != nil {
		storeError(w, "update social content failed", err)
		return
	}
	if updated == nil {
		jsonError(w, http.StatusNotFound, "Social content not found.")
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusOK, updated)
}

// SocialContentDelete removes a social content item.
func (a *Admin) SocialContentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid social content id.")
		return
	}

	deleted, err := a.socialContent.Delete(id)
	if err != nil {
		storeError(w, "delete social content failed", err)
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "Social content not found.")
		return
	}

	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}
