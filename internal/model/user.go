package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// VisibilityFlags controls which sections of a user's profile are shown
// to other viewers. Each flag is independent; the owner always sees their
// own data regardless of flag state.
type VisibilityFlags struct {
	Statistics   bool
	Activity     bool
	OnlineStatus bool
}

// User represents a community member
type User struct {
	ID          UserID
	Username    string // login username (immutable)
	DisplayName string

	Visibility     VisibilityFlags
	PrivateProfile bool // when set, only the owner may view the full profile

	LastSeenAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Credentials holds authentication data for a user
// Stored separately so password hashes never travel with profile data
type Credentials struct {
	UserID       UserID
	Username     string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
