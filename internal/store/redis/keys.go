package redis

import "strings"

const (
	// KeyPrefixPayload is the prefix for cached provider bodies
	KeyPrefixPayload = "icebreaker:payload:"
	// KeyUsage is the hash of generation outcome counters
	KeyUsage = "icebreaker:usage"
)

// PayloadKey returns the Redis key for a cached provider body.
// Example: "profile:jane" -> "icebreaker:payload:profile:jane"
func PayloadKey(key string) string {
	return KeyPrefixPayload + strings.ToLower(key)
}

// UsageKey returns the key of the usage counters hash
func UsageKey() string {
	return KeyUsage
}
