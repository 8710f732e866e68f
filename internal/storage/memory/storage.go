package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	credentials   map[model.UserID]*model.Credentials

	gameProfiles   map[model.UserID][]*model.GameProfile
	paymentMethods map[model.UserID][]*model.PaymentMethod

	statistics   map[model.UserID]*model.PlayerStatistics
	activity     map[model.UserID][]model.ActivityEntry
	achievements map[model.UserID][]model.Achievement

	teams         map[model.TeamID]*model.Team
	joinCodeIndex map[string]model.TeamID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:          make(map[model.UserID]*model.User),
		usernameIndex:  make(map[string]model.UserID),
		credentials:    make(map[model.UserID]*model.Credentials),
		gameProfiles:   make(map[model.UserID][]*model.GameProfile),
		paymentMethods: make(map[model.UserID][]*model.PaymentMethod),
		statistics:     make(map[model.UserID]*model.PlayerStatistics),
		activity:       make(map[model.UserID][]model.ActivityEntry),
		achievements:   make(map[model.UserID][]model.Achievement),
		teams:          make(map[model.TeamID]*model.Team),
		joinCodeIndex:  make(map[string]model.TeamID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *user
	s.users[user.ID] = &stored
	s.usernameIndex[user.Username] = user.ID
	return nil
}

// GetUser returns a copy; callers mutate and re-save rather than writing
// through the stored pointer
func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		delete(s.usernameIndex, user.Username)
	}
	delete(s.users, id)
	delete(s.credentials, id)
	return nil
}

// Credentials operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[creds.UserID] = creds
	return nil
}

func (s *Storage) GetCredentials(ctx context.Context, userID model.UserID) (*model.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.credentials[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return creds, nil
}

// Game profile operations

func (s *Storage) ListGameProfiles(ctx context.Context, ownerID model.UserID) ([]*model.GameProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProfiles(s.gameProfiles[ownerID]), nil
}

func (s *Storage) UpdateGameProfiles(ctx context.Context, ownerID model.UserID, mutate func([]*model.GameProfile) ([]*model.GameProfile, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mutate a copy so a failed update leaves the stored collection intact
	updated, err := mutate(cloneProfiles(s.gameProfiles[ownerID]))
	if err != nil {
		return err
	}
	s.gameProfiles[ownerID] = updated
	return nil
}

// Payment method operations

func (s *Storage) ListPaymentMethods(ctx context.Context, ownerID model.UserID) ([]*model.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMethods(s.paymentMethods[ownerID]), nil
}

func (s *Storage) UpdatePaymentMethods(ctx context.Context, ownerID model.UserID, mutate func([]*model.PaymentMethod) ([]*model.PaymentMethod, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := mutate(cloneMethods(s.paymentMethods[ownerID]))
	if err != nil {
		return err
	}
	s.paymentMethods[ownerID] = updated
	return nil
}

// Statistics operations

func (s *Storage) SaveStatistics(ctx context.Context, stats *model.PlayerStatistics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statistics[stats.UserID] = stats
	return nil
}

func (s *Storage) GetStatistics(ctx context.Context, userID model.UserID) (*model.PlayerStatistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.statistics[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return stats, nil
}

// Activity feed operations

func (s *Storage) AppendActivity(ctx context.Context, userID model.UserID, entry model.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first
	s.activity[userID] = append([]model.ActivityEntry{entry}, s.activity[userID]...)
	return nil
}

func (s *Storage) ListActivity(ctx context.Context, userID model.UserID, limit int) ([]model.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.activity[userID]
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]model.ActivityEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// Achievement operations

func (s *Storage) SaveAchievements(ctx context.Context, userID model.UserID, achievements []model.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Achievement, len(achievements))
	copy(out, achievements)
	s.achievements[userID] = out
	return nil
}

func (s *Storage) ListAchievements(ctx context.Context, userID model.UserID) ([]model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	achievements := s.achievements[userID]
	out := make([]model.Achievement, len(achievements))
	copy(out, achievements)
	return out, nil
}

// Team operations

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[team.ID] = team
	if team.JoinCode != "" {
		s.joinCodeIndex[team.JoinCode] = team.ID
	}
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return team, nil
}

func (s *Storage) GetTeamByJoinCode(ctx context.Context, code string) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.joinCodeIndex[code]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return team, nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if team, ok := s.teams[id]; ok {
		delete(s.joinCodeIndex, team.JoinCode)
	}
	delete(s.teams, id)
	return nil
}

func (s *Storage) ListTeamsByMember(ctx context.Context, userID model.UserID) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var teams []*model.Team
	for _, team := range s.teams {
		if team.HasMember(userID) {
			teams = append(teams, team)
		}
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].ID < teams[j].ID
		}
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})
	return teams, nil
}

func cloneProfiles(profiles []*model.GameProfile) []*model.GameProfile {
	out := make([]*model.GameProfile, len(profiles))
	for i, p := range profiles {
		clone := *p
		out[i] = &clone
	}
	return out
}

func cloneMethods(methods []*model.PaymentMethod) []*model.PaymentMethod {
	out := make([]*model.PaymentMethod, len(methods))
	for i, m := range methods {
		clone := *m
		out[i] = &clone
	}
	return out
}
