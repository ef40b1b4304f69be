package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis store configuration
type RedisConfig struct {
	// Addr is the Redis server address (host:port)
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key
	Prefix string
	// TTL is how long a run's entries are kept after its last entry
	TTL time.Duration
}

// DefaultRedisConfig returns the default configuration
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:   "localhost:6379",
		Prefix: "mozaik:journal:",
		TTL:    7 * 24 * time.Hour,
	}
}

// RedisStore keeps each run as a list of JSON entries, plus a sorted set
// of run ids scored by start time
type RedisStore struct {
	client *redis.Client
	config RedisConfig
}

// NewRedisStore connects to Redis and checks the connection
func NewRedisStore(ctx context.Context, config RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to journal redis at %s: %w", config.Addr, err)
	}

	return NewRedisStoreWithClient(client, config), nil
}

// NewRedisStoreWithClient creates a store on an existing client
func NewRedisStoreWithClient(client *redis.Client, config RedisConfig) *RedisStore {
	return &RedisStore{client: client, config: config}
}

func (r *RedisStore) runKey(runID string) string {
	return r.config.Prefix + "run:" + runID
}

func (r *RedisStore) runsKey() string {
	return r.config.Prefix + "runs"
}

// Append adds an entry to the end of its run and refreshes the run's TTL
func (r *RedisStore) Append(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding journal entry: %w", err)
	}

	key := r.runKey(entry.RunID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		if r.config.TTL > 0 {
			pipe.Expire(ctx, key, r.config.TTL)
		}
		pipe.ZAddNX(ctx, r.runsKey(), redis.Z{
			Score:  float64(entry.Time.Unix()),
			Member: entry.RunID,
		})
		return nil
	})
	return err
}

// Entries returns the entries of a run
func (r *RedisStore) Entries(ctx context.Context, runID string) ([]Entry, error) {
	values, err := r.client.LRange(ctx, r.runKey(runID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrRunNotFound
	}

	entries := make([]Entry, 0, len(values))
	for _, v := range values {
		var entry Entry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			return nil, fmt.Errorf("decoding journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Runs returns up to limit runs, most recent first. Runs whose entries
// have expired are dropped from the index.
func (r *RedisStore) Runs(ctx context.Context, limit int) ([]Run, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	members, err := r.client.ZRevRangeWithScores(ctx, r.runsKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	runs := make([]Run, 0, len(members))
	for _, m := range members {
		id, ok := m.Member.(string)
		if !ok {
			continue
		}
		exists, err := r.client.Exists(ctx, r.runKey(id)).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			if err := r.client.ZRem(ctx, r.runsKey(), id).Err(); err != nil {
				return nil, err
			}
			continue
		}
		runs = append(runs, Run{ID: id, Started: time.Unix(int64(m.Score), 0).UTC()})
	}
	return runs, nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}
