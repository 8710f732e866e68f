package redis

import (
	"fmt"

	"github.com/eytgaming/eytgaming/internal/model"
)

// Key prefix for all community data
const keyPrefix = "eyt"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// credentialsKey returns the Redis key for a user's Credentials
func credentialsKey(userID model.UserID) string {
	return fmt.Sprintf("%s:credentials:%s", keyPrefix, userID)
}

// gameProfilesKey returns the Redis key for a user's whole game profile
// collection. The collection is stored as one value so the demote/promote
// sequence can be applied atomically with WATCH.
func gameProfilesKey(ownerID model.UserID) string {
	return fmt.Sprintf("%s:game_profiles:%s", keyPrefix, ownerID)
}

// paymentMethodsKey returns the Redis key for a user's whole payment
// method collection
func paymentMethodsKey(ownerID model.UserID) string {
	return fmt.Sprintf("%s:payment_methods:%s", keyPrefix, ownerID)
}

// statisticsKey returns the Redis key for a user's PlayerStatistics
func statisticsKey(userID model.UserID) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, userID)
}

// activityKey returns the Redis key for a user's activity feed LIST
func activityKey(userID model.UserID) string {
	return fmt.Sprintf("%s:activity:%s", keyPrefix, userID)
}

// achievementsKey returns the Redis key for a user's achievements
func achievementsKey(userID model.UserID) string {
	return fmt.Sprintf("%s:achievements:%s", keyPrefix, userID)
}

// teamKey returns the Redis key for a Team
func teamKey(id model.TeamID) string {
	return fmt.Sprintf("%s:team:%s", keyPrefix, id)
}

// joinCodeIndexKey returns the Redis key for the join_code -> team_id index
func joinCodeIndexKey(code string) string {
	return fmt.Sprintf("%s:idx:join_code:%s", keyPrefix, code)
}

// teamsForUserIndexKey returns the Redis key for the SET of teams a user
// belongs to
func teamsForUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:teams_for_user:%s", keyPrefix, userID)
}
