package storage

import (
	"context"

	"github.com/eytgaming/eytgaming/internal/model"
)

// Storage defines the interface for data persistence.
//
// UpdateGameProfiles and UpdatePaymentMethods are atomic read-modify-write
// operations over one owner's whole collection: the mutate callback receives
// the current collection and returns the replacement. Implementations must
// apply the replacement all-or-nothing, and must return model.ErrConflict
// when a concurrent writer to the same collection makes the update unsafe.
// A mutate error aborts the update with no changes applied.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	DeleteUser(ctx context.Context, id model.UserID) error

	// Credentials operations
	SaveCredentials(ctx context.Context, creds *model.Credentials) error
	GetCredentials(ctx context.Context, userID model.UserID) (*model.Credentials, error)

	// Game profile operations
	ListGameProfiles(ctx context.Context, ownerID model.UserID) ([]*model.GameProfile, error)
	UpdateGameProfiles(ctx context.Context, ownerID model.UserID, mutate func([]*model.GameProfile) ([]*model.GameProfile, error)) error

	// Payment method operations
	ListPaymentMethods(ctx context.Context, ownerID model.UserID) ([]*model.PaymentMethod, error)
	UpdatePaymentMethods(ctx context.Context, ownerID model.UserID, mutate func([]*model.PaymentMethod) ([]*model.PaymentMethod, error)) error

	// Statistics operations
	SaveStatistics(ctx context.Context, stats *model.PlayerStatistics) error
	GetStatistics(ctx context.Context, userID model.UserID) (*model.PlayerStatistics, error)

	// Activity feed operations
	AppendActivity(ctx context.Context, userID model.UserID, entry model.ActivityEntry) error
	ListActivity(ctx context.Context, userID model.UserID, limit int) ([]model.ActivityEntry, error)

	// Achievement operations
	SaveAchievements(ctx context.Context, userID model.UserID, achievements []model.Achievement) error
	ListAchievements(ctx context.Context, userID model.UserID) ([]model.Achievement, error)

	// Team operations
	SaveTeam(ctx context.Context, team *model.Team) error
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	GetTeamByJoinCode(ctx context.Context, code string) (*model.Team, error)
	DeleteTeam(ctx context.Context, id model.TeamID) error
	ListTeamsByMember(ctx context.Context, userID model.UserID) ([]*model.Team, error)
}
