// Package model defines the entities the organizer stores.
// These are plain structs with JSON tags; persistence details live in
// internal/repository/sqlite.
package model

// ProfileID is the fixed primary key of the singleton profile row.
const ProfileID int64 = 1

// DefaultProfileName is shown until the user sets a name.
const DefaultProfileName = "使用者名稱"

// UserProfile is the single user's display name and avatar.
//
// Exactly one row exists, keyed by ProfileID. It is created during
// initialization (or lazily on the home page) and never deleted.
type UserProfile struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}
