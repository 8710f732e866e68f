package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, userKey(id))
	pipe.Del(ctx, usernameIndexKey(user.Username))
	pipe.Del(ctx, credentialsKey(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Credentials operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, credentialsKey(creds.UserID), data, 0).Err()
}

func (s *Storage) GetCredentials(ctx context.Context, userID model.UserID) (*model.Credentials, error) {
	data, err := s.client.Get(ctx, credentialsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var creds model.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Game profile operations
//
// An owner's game profiles are stored as a single JSON array so the
// demote-then-promote sequence of a set-main update is applied in one
// write. WATCH detects concurrent writers to the same collection.

func (s *Storage) ListGameProfiles(ctx context.Context, ownerID model.UserID) ([]*model.GameProfile, error) {
	var profiles []*model.GameProfile
	if err := s.getJSON(ctx, gameProfilesKey(ownerID), &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *Storage) UpdateGameProfiles(ctx context.Context, ownerID model.UserID, mutate func([]*model.GameProfile) ([]*model.GameProfile, error)) error {
	key := gameProfilesKey(ownerID)
	return s.updateCollection(ctx, key, func(tx *redis.Tx) (any, error) {
		var profiles []*model.GameProfile
		if err := getJSONTx(ctx, tx, key, &profiles); err != nil {
			return nil, err
		}
		return mutate(profiles)
	})
}

// Payment method operations

func (s *Storage) ListPaymentMethods(ctx context.Context, ownerID model.UserID) ([]*model.PaymentMethod, error) {
	var methods []*model.PaymentMethod
	if err := s.getJSON(ctx, paymentMethodsKey(ownerID), &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

func (s *Storage) UpdatePaymentMethods(ctx context.Context, ownerID model.UserID, mutate func([]*model.PaymentMethod) ([]*model.PaymentMethod, error)) error {
	key := paymentMethodsKey(ownerID)
	return s.updateCollection(ctx, key, func(tx *redis.Tx) (any, error) {
		var methods []*model.PaymentMethod
		if err := getJSONTx(ctx, tx, key, &methods); err != nil {
			return nil, err
		}
		return mutate(methods)
	})
}

// updateCollection runs an optimistic WATCH transaction against a single
// collection key. The load function reads the current value inside the
// transaction and returns the replacement. Retries TxRetries times when a
// concurrent writer invalidates the watch, then surfaces model.ErrConflict.
func (s *Storage) updateCollection(ctx context.Context, key string, load func(tx *redis.Tx) (any, error)) error {
	retries := s.cfg.TxRetries
	if retries < 1 {
		retries = 1
	}

	txFn := func(tx *redis.Tx) error {
		updated, err := load(tx)
		if err != nil {
			return err
		}

		data, err := json.Marshal(updated)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, txFn, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return model.ErrConflict
}

// Statistics operations

func (s *Storage) SaveStatistics(ctx context.Context, stats *model.PlayerStatistics) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statisticsKey(stats.UserID), data, 0).Err()
}

func (s *Storage) GetStatistics(ctx context.Context, userID model.UserID) (*model.PlayerStatistics, error) {
	data, err := s.client.Get(ctx, statisticsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var stats model.PlayerStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Activity feed operations

func (s *Storage) AppendActivity(ctx context.Context, userID model.UserID, entry model.ActivityEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	key := activityKey(userID)
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, key, data)
	if s.cfg.ActivityFeedCap > 0 {
		pipe.LTrim(ctx, key, 0, int64(s.cfg.ActivityFeedCap-1))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListActivity(ctx context.Context, userID model.UserID, limit int) ([]model.ActivityEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	items, err := s.client.LRange(ctx, activityKey(userID), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.ActivityEntry, 0, len(items))
	for _, item := range items {
		var entry model.ActivityEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Achievement operations

func (s *Storage) SaveAchievements(ctx context.Context, userID model.UserID, achievements []model.Achievement) error {
	data, err := json.Marshal(achievements)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, achievementsKey(userID), data, 0).Err()
}

func (s *Storage) ListAchievements(ctx context.Context, userID model.UserID) ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := s.getJSON(ctx, achievementsKey(userID), &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

// Team operations

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	data, err := json.Marshal(team)
	if err != nil {
		return err
	}

	// Diff against the stored membership to keep the per-user index sets
	// in sync
	old, err := s.GetTeam(ctx, team.ID)
	if err != nil && !errors.Is(err, model.ErrTeamNotFound) {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, teamKey(team.ID), data, 0)
	if team.JoinCode != "" {
		pipe.Set(ctx, joinCodeIndexKey(team.JoinCode), string(team.ID), 0)
	}

	current := make(map[model.UserID]bool, len(team.Members))
	for _, member := range team.Members {
		current[member] = true
		pipe.SAdd(ctx, teamsForUserIndexKey(member), string(team.ID))
	}
	if old != nil {
		for _, member := range old.Members {
			if !current[member] {
				pipe.SRem(ctx, teamsForUserIndexKey(member), string(team.ID))
			}
		}
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	data, err := s.client.Get(ctx, teamKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}

	var team model.Team
	if err := json.Unmarshal(data, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Storage) GetTeamByJoinCode(ctx context.Context, code string) (*model.Team, error) {
	id, err := s.client.Get(ctx, joinCodeIndexKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}
	return s.GetTeam(ctx, model.TeamID(id))
}

func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTeamNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, teamKey(id))
	pipe.Del(ctx, joinCodeIndexKey(team.JoinCode))
	for _, member := range team.Members {
		pipe.SRem(ctx, teamsForUserIndexKey(member), string(id))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListTeamsByMember(ctx context.Context, userID model.UserID) ([]*model.Team, error) {
	ids, err := s.client.SMembers(ctx, teamsForUserIndexKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	teams := make([]*model.Team, 0, len(ids))
	for _, id := range ids {
		team, err := s.GetTeam(ctx, model.TeamID(id))
		if err != nil {
			if errors.Is(err, model.ErrTeamNotFound) {
				// Stale index entry
				continue
			}
			return nil, err
		}
		teams = append(teams, team)
	}

	sort.Slice(teams, func(i, j int) bool {
		if teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].ID < teams[j].ID
		}
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})
	return teams, nil
}

// getJSON loads a JSON value into dest, leaving dest untouched when the
// key does not exist
func (s *Storage) getJSON(ctx context.Context, key string, dest any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// getJSONTx is getJSON against a WATCH transaction connection
func getJSONTx(ctx context.Context, tx *redis.Tx, key string, dest any) error {
	data, err := tx.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, dest)
}
