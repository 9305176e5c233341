// Package customdict keeps user-added dictionary words in a Redis set.
package customdict

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis key of the word set.
const DefaultKey = "ngramspell:custom_words"

// CustomDict wraps a Redis client to store custom dictionary words.
type CustomDict struct {
	client redis.Cmdable
	key    string
}

// New creates a new CustomDict with the provided Redis client.
func New(client redis.Cmdable) *CustomDict {
	return &CustomDict{client: client, key: DefaultKey}
}

// WithKey returns a CustomDict storing its words under key.
func (cd *CustomDict) WithKey(key string) *CustomDict {
	return &CustomDict{client: cd.client, key: key}
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Add inserts a word into the custom dictionary.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	return cd.client.SAdd(ctx, cd.key, normalize(word)).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	return cd.client.SRem(ctx, cd.key, normalize(word)).Err()
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key).Result()
}

// Ping checks the connection.
func (cd *CustomDict) Ping(ctx context.Context) error {
	return cd.client.Ping(ctx).Err()
}
