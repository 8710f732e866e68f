package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Account:
		o.printAccount(v)
	case PrivacySettings:
		o.printPrivacy(v)
	case Statistics:
		o.printStatistics(v)
	case GameProfile:
		o.printGameProfile(v)
	case []GameProfile:
		o.printGameProfiles(v)
	case PaymentMethod:
		o.printPaymentMethod(v)
	case []PaymentMethod:
		o.printPaymentMethods(v)
	case Team:
		o.printTeam(v)
	case []Team:
		o.printTeams(v)
	case ProfileView:
		o.printProfileView(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// PrivacySettings response type
type PrivacySettings struct {
	ShowStatistics   bool `json:"show_statistics"`
	ShowActivity     bool `json:"show_activity"`
	ShowOnlineStatus bool `json:"show_online_status"`
	PrivateProfile   bool `json:"private_profile"`
}

// Account response type
type Account struct {
	User    User            `json:"user"`
	Privacy PrivacySettings `json:"privacy"`
}

// Statistics response type
type Statistics struct {
	MatchesPlayed int     `json:"matches_played"`
	MatchesWon    int     `json:"matches_won"`
	WinRate       float64 `json:"win_rate"`
}

// GameProfile response type
type GameProfile struct {
	ID          string    `json:"id"`
	Game        string    `json:"game"`
	InGameName  string    `json:"in_game_name"`
	SkillRating int       `json:"skill_rating"`
	IsMain      bool      `json:"is_main"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaymentMethod response type
type PaymentMethod struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Label     string    `json:"label"`
	IsDefault bool      `json:"is_default"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Team response type
type Team struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Tag      string   `json:"tag"`
	JoinCode string   `json:"join_code,omitempty"`
	OwnerID  string   `json:"owner_id"`
	Members  []string `json:"members"`
}

// Achievement response type
type Achievement struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// TeamSummary response type
type TeamSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// ActivityEntry response type
type ActivityEntry struct {
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityFeed response type
type ActivityFeed struct {
	Entries []ActivityEntry `json:"entries"`
}

// ProfileView is the assembled profile of a user as the server allows this
// viewer to see it. The conditional sections are pointers because the
// server omits the keys the viewer may not see.
type ProfileView struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`

	Achievements []Achievement `json:"achievements"`
	Teams        []TeamSummary `json:"teams"`

	Statistics   *Statistics   `json:"statistics,omitempty"`
	ActivityFeed *ActivityFeed `json:"activity_feed,omitempty"`
	IsOnline     *bool         `json:"is_online,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.DisplayName, u.ID)
	fmt.Printf("Username: %s\n", u.Username)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printAccount(a Account) {
	o.printUser(a.User)
	o.printPrivacy(a.Privacy)
}

func (o *Output) printPrivacy(p PrivacySettings) {
	fmt.Printf("Privacy:\n")
	fmt.Printf("  Show statistics: %s\n", yesNo(p.ShowStatistics))
	fmt.Printf("  Show activity: %s\n", yesNo(p.ShowActivity))
	fmt.Printf("  Show online status: %s\n", yesNo(p.ShowOnlineStatus))
	fmt.Printf("  Private profile: %s\n", yesNo(p.PrivateProfile))
}

func (o *Output) printStatistics(s Statistics) {
	fmt.Printf("Matches played: %d\n", s.MatchesPlayed)
	fmt.Printf("Matches won: %d\n", s.MatchesWon)
	fmt.Printf("Win rate: %.1f%%\n", s.WinRate*100)
}

func (o *Output) printGameProfile(p GameProfile) {
	mainStr := ""
	if p.IsMain {
		mainStr = " [main]"
	}
	fmt.Printf("%s: %s (rating %d)%s\n", p.Game, p.InGameName, p.SkillRating, mainStr)
	fmt.Printf("ID: %s\n", p.ID)
}

func (o *Output) printGameProfiles(profiles []GameProfile) {
	if len(profiles) == 0 {
		fmt.Println("No game profiles")
		return
	}
	for _, p := range profiles {
		mainStr := ""
		if p.IsMain {
			mainStr = " [main]"
		}
		fmt.Printf("  - %s: %s (rating %d)%s - %s\n", p.Game, p.InGameName, p.SkillRating, mainStr, p.ID)
	}
}

func (o *Output) printPaymentMethod(m PaymentMethod) {
	fmt.Printf("%s: %s\n", m.Kind, m.Label)
	fmt.Printf("ID: %s\n", m.ID)
	fmt.Printf("Default: %s\n", yesNo(m.IsDefault))
	fmt.Printf("Active: %s\n", yesNo(m.IsActive))
}

func (o *Output) printPaymentMethods(methods []PaymentMethod) {
	if len(methods) == 0 {
		fmt.Println("No payment methods")
		return
	}
	for _, m := range methods {
		flags := []string{}
		if m.IsDefault {
			flags = append(flags, "default")
		}
		if !m.IsActive {
			flags = append(flags, "inactive")
		}
		flagStr := ""
		if len(flags) > 0 {
			flagStr = " [" + strings.Join(flags, ", ") + "]"
		}
		fmt.Printf("  - %s: %s%s - %s\n", m.Kind, m.Label, flagStr, m.ID)
	}
}

func (o *Output) printTeam(t Team) {
	fmt.Printf("Team: %s [%s]\n", t.Name, t.Tag)
	fmt.Printf("ID: %s\n", t.ID)
	if t.JoinCode != "" {
		fmt.Printf("Join code: %s\n", t.JoinCode)
	}
	fmt.Printf("Members (%d):\n", len(t.Members))
	for _, m := range t.Members {
		ownerStr := ""
		if m == t.OwnerID {
			ownerStr = " [owner]"
		}
		fmt.Printf("  - %s%s\n", m, ownerStr)
	}
}

func (o *Output) printTeams(teams []Team) {
	if len(teams) == 0 {
		fmt.Println("No teams")
		return
	}
	for _, t := range teams {
		fmt.Printf("  - %s [%s] (%d members) - %s\n", t.Name, t.Tag, len(t.Members), t.ID)
	}
}

func (o *Output) printProfileView(p ProfileView) {
	fmt.Printf("Profile: %s (@%s)\n", p.DisplayName, p.Username)
	if p.IsOnline != nil {
		status := "offline"
		if *p.IsOnline {
			status = "online"
		}
		fmt.Printf("Status: %s\n", status)
	}

	if len(p.Achievements) > 0 {
		fmt.Println("Achievements:")
		for _, a := range p.Achievements {
			if a.Detail != "" {
				fmt.Printf("  - %s: %s\n", a.Title, a.Detail)
			} else {
				fmt.Printf("  - %s\n", a.Title)
			}
		}
	}

	if len(p.Teams) > 0 {
		fmt.Println("Teams:")
		for _, t := range p.Teams {
			fmt.Printf("  - %s [%s]\n", t.Name, t.Tag)
		}
	}

	if p.Statistics != nil {
		fmt.Println("Statistics:")
		fmt.Printf("  Matches played: %d\n", p.Statistics.MatchesPlayed)
		fmt.Printf("  Matches won: %d\n", p.Statistics.MatchesWon)
		fmt.Printf("  Win rate: %.1f%%\n", p.Statistics.WinRate*100)
	}

	if p.ActivityFeed != nil {
		fmt.Printf("Recent activity (%d):\n", len(p.ActivityFeed.Entries))
		for _, e := range p.ActivityFeed.Entries {
			fmt.Printf("  - %s\n", e.Message)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
