package bundle

import (
	"context"
	"errors"
	"log/slog"

	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/services/account"
	"github.com/eytgaming/eytgaming/internal/storage"
)

// ActivityFeedLimit is how many activity entries a bundle carries
const ActivityFeedLimit = 20

// Service assembles the unfiltered ProfileBundle for a user. It only
// gathers data; deciding what a viewer may see is the visibility gate's
// job, applied by the caller.
type Service struct {
	storage storage.Storage
	account *account.Service
	logger  *slog.Logger
}

// New creates a new bundle assembler
func New(storage storage.Storage, account *account.Service, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		account: account,
		logger:  logger,
	}
}

// Assemble builds the full bundle for the given user. Every section is
// populated; conditional sections that the owner has no data for are
// present but empty, so filtering (key absence) stays distinguishable
// from emptiness.
func (s *Service) Assemble(ctx context.Context, user *model.User) (*model.ProfileBundle, error) {
	bundle := &model.ProfileBundle{
		UserID:      string(user.ID),
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}

	achievements, err := s.storage.ListAchievements(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if achievements == nil {
		achievements = []model.Achievement{}
	}
	bundle.Achievements = achievements

	teams, err := s.storage.ListTeamsByMember(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.TeamSummary, len(teams))
	for i, t := range teams {
		summaries[i] = model.TeamSummary{
			ID:   string(t.ID),
			Name: t.Name,
			Tag:  t.Tag,
		}
	}
	bundle.Teams = summaries

	stats, err := s.storage.GetStatistics(ctx, user.ID)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}
	bundleStats := &model.BundleStatistics{}
	if stats != nil {
		bundleStats.MatchesPlayed = stats.MatchesPlayed
		bundleStats.MatchesWon = stats.MatchesWon
		bundleStats.WinRate = stats.WinRate()
	}
	bundle.Statistics = bundleStats

	entries, err := s.storage.ListActivity(ctx, user.ID, ActivityFeedLimit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.ActivityEntry{}
	}
	bundle.ActivityFeed = &model.BundleActivity{Entries: entries}

	online := s.account.IsOnline(user)
	bundle.IsOnline = &online

	return bundle, nil
}
