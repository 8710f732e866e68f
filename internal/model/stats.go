package model

import "time"

// PlayerStatistics aggregates a user's match results
type PlayerStatistics struct {
	UserID        UserID
	MatchesPlayed int
	MatchesWon    int
	UpdatedAt     time.Time
}

// WinRate returns the fraction of matches won, or 0 with no matches
func (s *PlayerStatistics) WinRate() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return float64(s.MatchesWon) / float64(s.MatchesPlayed)
}

// ActivityEntry is one event in a user's activity feed. It carries JSON
// tags because it is embedded in ProfileBundle encodings.
type ActivityEntry struct {
	Kind       string    `json:"kind"` // e.g. "match_played", "team_joined", "profile_created"
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}
