package model

import "time"

// GameProfileID uniquely identifies a game profile
type GameProfileID string

// GameProfile is a user's profile for a single game. At most one profile
// per user may be the main profile; the gameprofile service enforces this.
type GameProfile struct {
	ID          GameProfileID
	OwnerID     UserID
	Game        string // game title, e.g. "League of Legends"
	InGameName  string
	SkillRating int
	IsMain      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SelectionID implements selection.Item
func (p *GameProfile) SelectionID() string {
	return string(p.ID)
}

// Primary implements selection.Item
func (p *GameProfile) Primary() bool {
	return p.IsMain
}

// SetPrimary implements selection.Item
func (p *GameProfile) SetPrimary(primary bool) {
	p.IsMain = primary
}
