package team

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/eytgaming/eytgaming/internal/dependencies/clock"
	"github.com/eytgaming/eytgaming/internal/dependencies/random"
	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/storage"
)

const (
	// JoinCodeLength is the length of generated join codes
	JoinCodeLength = 6
	// JoinCodeAlphabet is the characters used in join codes (avoids
	// confusing chars)
	JoinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Service manages teams and membership
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new team service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// Create creates a team with the given user as its first member
func (s *Service) Create(ctx context.Context, ownerID model.UserID, name, tag string) (*model.Team, error) {
	if _, err := s.storage.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	// Generate an unused join code
	var code string
	for {
		code = s.random.String(JoinCodeLength, JoinCodeAlphabet)
		_, err := s.storage.GetTeamByJoinCode(ctx, code)
		if errors.Is(err, model.ErrTeamNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	team := &model.Team{
		ID:        model.TeamID("t_" + uuid.NewString()),
		Name:      name,
		Tag:       tag,
		JoinCode:  code,
		OwnerID:   ownerID,
		Members:   []model.UserID{ownerID},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Get retrieves a team by id
func (s *Service) Get(ctx context.Context, id model.TeamID) (*model.Team, error) {
	return s.storage.GetTeam(ctx, id)
}

// Join adds the user to the team identified by the join code
func (s *Service) Join(ctx context.Context, userID model.UserID, joinCode string) (*model.Team, error) {
	if _, err := s.storage.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	team, err := s.storage.GetTeamByJoinCode(ctx, joinCode)
	if err != nil {
		if errors.Is(err, model.ErrTeamNotFound) {
			return nil, model.ErrInvalidJoinCode
		}
		return nil, err
	}

	if !team.AddMember(userID) {
		return nil, model.ErrAlreadyInTeam
	}
	team.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveTeam(ctx, team); err != nil {
		return nil, err
	}

	entry := model.ActivityEntry{
		Kind:       "team_joined",
		Message:    "Joined team " + team.Name,
		OccurredAt: team.UpdatedAt,
	}
	if err := s.storage.AppendActivity(ctx, userID, entry); err != nil {
		s.logger.Warn("failed to record team activity",
			slog.String("user_id", string(userID)),
			slog.String("error", err.Error()),
		)
	}

	return team, nil
}

// Leave removes the user from the team. The last member leaving deletes
// the team.
func (s *Service) Leave(ctx context.Context, userID model.UserID, teamID model.TeamID) error {
	team, err := s.storage.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}

	if !team.RemoveMember(userID) {
		return model.ErrNotInTeam
	}

	if len(team.Members) == 0 {
		return s.storage.DeleteTeam(ctx, teamID)
	}

	// Ownership passes to the longest-standing remaining member
	if team.OwnerID == userID {
		team.OwnerID = team.Members[0]
	}
	team.UpdatedAt = s.clock.Now()

	return s.storage.SaveTeam(ctx, team)
}

// ListForUser returns the teams the user belongs to
func (s *Service) ListForUser(ctx context.Context, userID model.UserID) ([]*model.Team, error) {
	return s.storage.ListTeamsByMember(ctx, userID)
}

// Mutual returns the teams two users share
func (s *Service) Mutual(ctx context.Context, a, b model.UserID) ([]*model.Team, error) {
	teamsA, err := s.storage.ListTeamsByMember(ctx, a)
	if err != nil {
		return nil, err
	}

	var mutual []*model.Team
	for _, team := range teamsA {
		if team.HasMember(b) {
			mutual = append(mutual, team)
		}
	}
	return mutual, nil
}
