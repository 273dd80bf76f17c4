// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialUser is an author of social-media-style content blocks shown in
// the article sidebar. Handles are unique.
type SocialUser struct {
	ID                uuid.UUID `json:"id"`
	Handle            string    `json:"handle"`
	DisplayName       string    `json:"display_name"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
}

// SocialContent is a single social-style post owned by a SocialUser.
type SocialContent struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Text     string    `json:"text"`
	Source   *string   `json:"source,omitempty"`
	PostedAt time.Time `json:"posted_at"`

	// Virtual field populated by store methods.
	User *SocialUser `json:"user,omitempty"`
}
