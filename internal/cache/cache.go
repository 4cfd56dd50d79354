// Package cache provides an optional Redis-backed cache for merged,
// normalized search results. Cached values are always pre-filter: the
// exclusion filter runs per request against the requesting user's
// blacklist, so one user's exclusions never shape another user's cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mgarcia/jobscout/internal/types"
)

// DefaultTTL is how long a cached search result stays fresh.
const DefaultTTL = 10 * time.Minute

const keyPrefix = "jobscout:search:"

// NewClient parses redisURL and verifies connectivity.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// ResultCache stores search results in Redis with a TTL.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New builds a cache over an existing client. A non-positive ttl falls back
// to DefaultTTL.
func New(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Get returns the cached postings for the query, with ok reporting whether
// there was a hit.
func (c *ResultCache) Get(ctx context.Context, query types.SearchQuery) ([]types.Posting, bool, error) {
	data, err := c.client.Get(ctx, Key(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}

	var postings []types.Posting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, false, fmt.Errorf("cache entry corrupt: %w", err)
	}
	return postings, true, nil
}

// Set stores the postings for the query until the TTL expires.
func (c *ResultCache) Set(ctx context.Context, query types.SearchQuery, postings []types.Posting) error {
	data, err := json.Marshal(postings)
	if err != nil {
		return fmt.Errorf("failed to marshal postings: %w", err)
	}
	if err := c.client.Set(ctx, Key(query), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// Key derives a stable cache key from the query. Platform order does not
// matter: {A,B} and {B,A} are the same search.
func Key(query types.SearchQuery) string {
	platforms := make([]string, 0, len(query.Platforms))
	for _, p := range query.Platforms {
		platforms = append(platforms, p.String())
	}
	sort.Strings(platforms)

	payload := strings.Join([]string{
		query.JobTitle,
		query.Location,
		strings.Join(platforms, ","),
	}, "\x00")

	sum := sha256.Sum256([]byte(payload))
	return keyPrefix + hex.EncodeToString(sum[:])
}
