package dictionary

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the sorted set read when no key is configured.
const DefaultRedisKey = "wordbench:dictionary"

// RedisSource reads a sorted set where each member is a word and its
// score the word's frequency.
type RedisSource struct {
	Client *redis.Client
	Key    string
}

// NewRedisClient connects to the server at url and verifies it with a ping.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		url = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return client, nil
}

// Load reads the whole sorted set.
func (s RedisSource) Load(ctx context.Context) ([]Entry, error) {
	key := s.Key
	if key == "" {
		key = DefaultRedisKey
	}

	members, err := s.Client.ZRangeWithScores(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read redis dictionary %s: %w", key, err)
	}

	entries := make([]Entry, 0, len(members))
	for _, z := range members {
		raw, ok := z.Member.(string)
		if !ok {
			log.Warnf("Skipping redis member of type %T", z.Member)
			continue
		}
		if z.Score < 0 || math.IsNaN(z.Score) {
			log.Warnf("Skipping redis member %q with invalid score %v", raw, z.Score)
			continue
		}
		word := Normalize(raw)
		if word == "" {
			continue
		}
		entries = append(entries, Entry{Word: word, Frequency: int(min(z.Score, math.MaxInt32))})
	}
	log.Debugf("Loaded %d entries from redis key: %s", len(entries), key)
	return entries, nil
}

// StoreRedis writes entries into the sorted set key, replacing scores of
// existing members.
func StoreRedis(ctx context.Context, client *redis.Client, key string, entries []Entry) error {
	if key == "" {
		key = DefaultRedisKey
	}
	if len(entries) == 0 {
		return nil
	}

	members := make([]redis.Z, len(entries))
	for i, e := range entries {
		members[i] = redis.Z{Score: float64(e.Frequency), Member: e.Word}
	}
	if err := client.ZAdd(ctx, key, members...).Err(); err != nil {
		return fmt.Errorf("failed to store redis dictionary %s: %w", key, err)
	}
	return nil
}
