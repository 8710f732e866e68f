package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdatePrivacyRequest is the request body for updating privacy settings
type UpdatePrivacyRequest struct {
	ShowStatistics   bool `json:"show_statistics"`
	ShowActivity     bool `json:"show_activity"`
	ShowOnlineStatus bool `json:"show_online_status"`
	PrivateProfile   bool `json:"private_profile"`
}

// RecordMatchRequest is the request body for recording a match result
type RecordMatchRequest struct {
	Won bool `json:"won"`
}

// CreateGameProfileRequest is the request body for creating a game profile
type CreateGameProfileRequest struct {
	Game        string `json:"game"`
	InGameName  string `json:"in_game_name"`
	SkillRating int    `json:"skill_rating"`
	AsMain      bool   `json:"as_main,omitempty"`
}

// AddPaymentMethodRequest is the request body for adding a payment method
type AddPaymentMethodRequest struct {
	Kind      string `json:"kind"`
	Label     string `json:"label"`
	AsDefault bool   `json:"as_default,omitempty"`
}

// CreateTeamRequest is the request body for creating a team
type CreateTeamRequest struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// JoinTeamRequest is the request body for joining a team by code
type JoinTeamRequest struct {
	JoinCode string `json:"join_code"`
}
