// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxUploadSize is the maximum allowed image upload size (20 MB).
const maxUploadSize = 20 << 20

// allowedImageTypes defines MIME types accepted for article images.
var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// MediaUpload handles a multipart image upload to object storage and
// returns the public URL for use as an article image.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		jsonError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 20 MB.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "A file field is required.")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		jsonError(w, http.StatusBadRequest, "Unsupported file type.")
		return
	}

	// Key layout: articles/2026/01/<uuid>.<ext> — date-bucketed so the
	// bucket listing stays navigable.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	now := time.Now().UTC()
	key := fmt.Sprintf("articles/%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.NewString(), ext)

	if err := a.storageClient.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		storeError(w, "media upload failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"key": key,
		"url": a.storageClient.FileURL(key),
	})
}

// MediaDelete removes an uploaded image by its URL. Only URLs belonging
// to the configured storage are accepted.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		jsonError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, ok := a.storageClient.ExtractKey(req.URL)
	if !ok {
		jsonError(w, http.StatusBadRequest, "URL does not belong to this storage.")
		return
	}

	if err := a.storageClient.Delete(r.Context(), key); err != nil {
		storeError(w, "media delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
