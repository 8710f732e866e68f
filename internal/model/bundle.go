package model

// Achievement is a public accolade shown on every profile view
type Achievement struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// TeamSummary is the public view of a team membership
type TeamSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// BundleStatistics is the statistics section of a profile bundle
type BundleStatistics struct {
	MatchesPlayed int     `json:"matches_played"`
	MatchesWon    int     `json:"matches_won"`
	WinRate       float64 `json:"win_rate"`
}

// BundleActivity is the activity feed section of a profile bundle
type BundleActivity struct {
	Entries []ActivityEntry `json:"entries"`
}

// ProfileBundle is the assembled profile data returned to a viewer.
// Identity fields and the public collections are always present. The
// conditional sections are pointers with omitempty so that a section the
// viewer may not see is absent from the JSON encoding entirely, never null:
// callers can distinguish "omitted because private" from "present but empty".
type ProfileBundle struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`

	Achievements []Achievement `json:"achievements"`
	Teams        []TeamSummary `json:"teams"`

	Statistics   *BundleStatistics `json:"statistics,omitempty"`
	ActivityFeed *BundleActivity   `json:"activity_feed,omitempty"`
	IsOnline     *bool             `json:"is_online,omitempty"`
}
