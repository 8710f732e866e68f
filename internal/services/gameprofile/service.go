package gameprofile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/eytgaming/eytgaming/internal/dependencies/clock"
	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/selection"
	"github.com/eytgaming/eytgaming/internal/storage"
)

// Service manages a user's game profile collection, including the
// at-most-one-main invariant
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new game profile service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Create adds a game profile for the owner. When asMain is set, every
// existing main profile is demoted in the same atomic update before the
// new profile is inserted as main.
func (s *Service) Create(ctx context.Context, ownerID model.UserID, game, inGameName string, skillRating int, asMain bool) (*model.GameProfile, error) {
	if _, err := s.storage.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	profile := &model.GameProfile{
		ID:          model.GameProfileID("gp_" + uuid.NewString()),
		OwnerID:     ownerID,
		Game:        game,
		InGameName:  inGameName,
		SkillRating: skillRating,
		IsMain:      asMain,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.storage.UpdateGameProfiles(ctx, ownerID, func(profiles []*model.GameProfile) ([]*model.GameProfile, error) {
		if asMain {
			selection.DemoteAll(profiles)
		}
		return append(profiles, profile), nil
	})
	if err != nil {
		return nil, err
	}

	entry := model.ActivityEntry{
		Kind:       "profile_created",
		Message:    "Created a " + game + " profile",
		OccurredAt: now,
	}
	if err := s.storage.AppendActivity(ctx, ownerID, entry); err != nil {
		s.logger.Warn("failed to record profile activity",
			slog.String("user_id", string(ownerID)),
			slog.String("error", err.Error()),
		)
	}

	return profile, nil
}

// SetMain marks the given profile as the owner's sole main profile.
// The previous main is demoted before the target is promoted, all within
// one atomic storage update, so no reader ever observes two mains.
func (s *Service) SetMain(ctx context.Context, ownerID model.UserID, profileID model.GameProfileID) error {
	return s.storage.UpdateGameProfiles(ctx, ownerID, func(profiles []*model.GameProfile) ([]*model.GameProfile, error) {
		if !selection.Promote(profiles, string(profileID)) {
			return nil, model.ErrGameProfileNotFound
		}
		for _, p := range profiles {
			if p.ID == profileID {
				p.UpdatedAt = s.clock.Now()
			}
		}
		return profiles, nil
	})
}

// Delete removes a profile. Deleting the main profile leaves the owner
// with no main; another profile is never promoted automatically, since a
// silently changing default would surprise the owner.
func (s *Service) Delete(ctx context.Context, ownerID model.UserID, profileID model.GameProfileID) error {
	return s.storage.UpdateGameProfiles(ctx, ownerID, func(profiles []*model.GameProfile) ([]*model.GameProfile, error) {
		for i, p := range profiles {
			if p.ID == profileID {
				return append(profiles[:i], profiles[i+1:]...), nil
			}
		}
		return nil, model.ErrGameProfileNotFound
	})
}

// Get retrieves a single profile owned by the given user
func (s *Service) Get(ctx context.Context, ownerID model.UserID, profileID model.GameProfileID) (*model.GameProfile, error) {
	profiles, err := s.storage.ListGameProfiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.ID == profileID {
			return p, nil
		}
	}
	return nil, model.ErrGameProfileNotFound
}

// GetMain returns the owner's main profile. Observing more than one main
// is a data-integrity bug and is surfaced, never papered over by picking
// one.
func (s *Service) GetMain(ctx context.Context, ownerID model.UserID) (*model.GameProfile, error) {
	profiles, err := s.storage.ListGameProfiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	main, ok, violation := selection.Primary(profiles)
	if violation {
		s.logger.Error("multiple main game profiles observed",
			slog.String("user_id", string(ownerID)),
		)
		return nil, model.ErrIntegrityViolation
	}
	if !ok {
		return nil, model.ErrGameProfileNotFound
	}
	return main, nil
}

// List returns the owner's profiles in display order: main first, then by
// descending skill rating, insertion order for equal ratings
func (s *Service) List(ctx context.Context, ownerID model.UserID) ([]*model.GameProfile, error) {
	profiles, err := s.storage.ListGameProfiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return selection.Order(profiles, func(a, b *model.GameProfile) bool {
		return a.SkillRating > b.SkillRating
	}), nil
}
