package model

import (
	"slices"
	"time"
)

// TeamID uniquely identifies a team
type TeamID string

// Team represents a group of users playing together
type Team struct {
	ID        TeamID
	Name      string
	Tag       string // short tag shown next to member names
	JoinCode  string // code new members use to join
	OwnerID   UserID // team creator
	Members   []UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether the given user is on the team
func (t *Team) HasMember(id UserID) bool {
	return slices.Contains(t.Members, id)
}

// AddMember appends a user to the member list if not already present
func (t *Team) AddMember(id UserID) bool {
	if t.HasMember(id) {
		return false
	}
	t.Members = append(t.Members, id)
	return true
}

// RemoveMember removes a user from the member list
func (t *Team) RemoveMember(id UserID) bool {
	before := len(t.Members)
	t.Members = slices.DeleteFunc(t.Members, func(m UserID) bool {
		return m == id
	})
	return len(t.Members) != before
}
