package redis

import (
	"fmt"

	"github.com/mcoot/cluegame-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "cluegame"

// lobbyKey returns the Redis key for the single match lobby
func lobbyKey() string {
	return fmt.Sprintf("%s:lobby", keyPrefix)
}

// summaryKey returns the Redis key for a finished game summary
func summaryKey(id model.GameID) string {
	return fmt.Sprintf("%s:summary:%s", keyPrefix, id)
}

// summariesByTimeIndexKey returns the Redis key for the ZSET of summaries
// scored by completion time
func summariesByTimeIndexKey() string {
	return fmt.Sprintf("%s:idx:summaries_by_time", keyPrefix)
}
