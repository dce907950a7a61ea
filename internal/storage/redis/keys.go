package redis

import "fmt"

// Key prefix for all auction-related data
const keyPrefix = "auction"

// poolKey returns the Redis key for a named player pool
func poolKey(name string) string {
	return fmt.Sprintf("%s:pool:%s", keyPrefix, name)
}

// poolIndexKey returns the Redis key for the SET of stored pool names
func poolIndexKey() string {
	return fmt.Sprintf("%s:idx:pools", keyPrefix)
}
