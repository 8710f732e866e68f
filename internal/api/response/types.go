package response

import (
	"time"

	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/services/account"
)

// User represents a user in API responses
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:          string(u.ID),
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

// PrivacySettings represents a user's privacy settings
type PrivacySettings struct {
	ShowStatistics   bool `json:"show_statistics"`
	ShowActivity     bool `json:"show_activity"`
	ShowOnlineStatus bool `json:"show_online_status"`
	PrivateProfile   bool `json:"private_profile"`
}

// PrivacySettingsFromModel converts a user's flags to response PrivacySettings
func PrivacySettingsFromModel(u *model.User) PrivacySettings {
	return PrivacySettings{
		ShowStatistics:   u.Visibility.Statistics,
		ShowActivity:     u.Visibility.Activity,
		ShowOnlineStatus: u.Visibility.OnlineStatus,
		PrivateProfile:   u.PrivateProfile,
	}
}

// Account is the owner's view of their own account
type Account struct {
	User    User            `json:"user"`
	Privacy PrivacySettings `json:"privacy"`
}

// AccountFromModel converts a model.User to the owner's account view
func AccountFromModel(u *model.User) Account {
	return Account{
		User:    UserFromModel(u),
		Privacy: PrivacySettingsFromModel(u),
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *account.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(&s.User),
		SessionToken: s.Token,
	}
}

// GameProfile represents a game profile in API responses
type GameProfile struct {
	ID          string    `json:"id"`
	Game        string    `json:"game"`
	InGameName  string    `json:"in_game_name"`
	SkillRating int       `json:"skill_rating"`
	IsMain      bool      `json:"is_main"`
	CreatedAt   time.Time `json:"created_at"`
}

// GameProfileFromModel converts model.GameProfile
func GameProfileFromModel(p *model.GameProfile) GameProfile {
	return GameProfile{
		ID:          string(p.ID),
		Game:        p.Game,
		InGameName:  p.InGameName,
		SkillRating: p.SkillRating,
		IsMain:      p.IsMain,
		CreatedAt:   p.CreatedAt,
	}
}

// GameProfilesFromModel converts a display-ordered profile list
func GameProfilesFromModel(profiles []*model.GameProfile) []GameProfile {
	out := make([]GameProfile, len(profiles))
	for i, p := range profiles {
		out[i] = GameProfileFromModel(p)
	}
	return out
}

// PaymentMethod represents a payment method in API responses
type PaymentMethod struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Label     string    `json:"label"`
	IsDefault bool      `json:"is_default"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentMethodFromModel converts model.PaymentMethod
func PaymentMethodFromModel(m *model.PaymentMethod) PaymentMethod {
	return PaymentMethod{
		ID:        string(m.ID),
		Kind:      m.Kind,
		Label:     m.Label,
		IsDefault: m.IsDefault,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// PaymentMethodsFromModel converts a display-ordered method list
func PaymentMethodsFromModel(methods []*model.PaymentMethod) []PaymentMethod {
	out := make([]PaymentMethod, len(methods))
	for i, m := range methods {
		out[i] = PaymentMethodFromModel(m)
	}
	return out
}

// Team represents a team in API responses. The join code is only included
// for team members.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tag       string    `json:"tag"`
	JoinCode  string    `json:"join_code,omitempty"`
	OwnerID   string    `json:"owner_id"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamFromModel converts model.Team. Set includeJoinCode when the
// requesting user is a member.
func TeamFromModel(t *model.Team, includeJoinCode bool) Team {
	members := make([]string, len(t.Members))
	for i, m := range t.Members {
		members[i] = string(m)
	}
	resp := Team{
		ID:        string(t.ID),
		Name:      t.Name,
		Tag:       t.Tag,
		OwnerID:   string(t.OwnerID),
		Members:   members,
		CreatedAt: t.CreatedAt,
	}
	if includeJoinCode {
		resp.JoinCode = t.JoinCode
	}
	return resp
}

// TeamsFromModel converts a team list for the given viewer
func TeamsFromModel(teams []*model.Team, viewer model.UserID) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = TeamFromModel(t, t.HasMember(viewer))
	}
	return out
}

// Statistics represents a user's match statistics
type Statistics struct {
	MatchesPlayed int     `json:"matches_played"`
	MatchesWon    int     `json:"matches_won"`
	WinRate       float64 `json:"win_rate"`
}

// StatisticsFromModel converts model.PlayerStatistics
func StatisticsFromModel(s *model.PlayerStatistics) Statistics {
	return Statistics{
		MatchesPlayed: s.MatchesPlayed,
		MatchesWon:    s.MatchesWon,
		WinRate:       s.WinRate(),
	}
}
