package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pausenhof-backend/internal/config"
	"pausenhof-backend/internal/models"
)

const (
	keySnapshot     = "pausenhof:snapshot"
	keyTransaction  = "pausenhof:tx:%s"
	keyTransactions = "pausenhof:txlog"
	keyRateLimit    = "pausenhof:ratelimit:%s:%s"

	ttlTransaction = 30 * 24 * time.Hour
)

// RedisPersister stores the full snapshot under a single key and keeps a
// capped transaction log in a sorted set.
type RedisPersister struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisPersister(cfg *config.Config) (*RedisPersister, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisPersister{client: client, ctx: ctx}, nil
}

func (p *RedisPersister) LoadAll() (*Snapshot, error) {
	data, err := p.client.Get(p.ctx, keySnapshot).Result()
	if err == redis.Nil {
		return NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %v", err)
	}
	return &snap, nil
}

func (p *RedisPersister) SaveAll(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %v", err)
	}
	return p.client.Set(p.ctx, keySnapshot, data, 0).Err()
}

func (p *RedisPersister) AppendTransaction(tx *models.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %v", err)
	}

	txKey := fmt.Sprintf(keyTransaction, tx.ID)
	if err := p.client.Set(p.ctx, txKey, data, ttlTransaction).Err(); err != nil {
		return fmt.Errorf("failed to save transaction: %v", err)
	}

	if err := p.client.ZAdd(p.ctx, keyTransactions, redis.Z{
		Score:  float64(tx.CreatedAt),
		Member: tx.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to index transaction: %v", err)
	}

	// Keep only the most recent 1000 entries.
	p.client.ZRemRangeByRank(p.ctx, keyTransactions, 0, -1001)

	return nil
}

// Allow implements the middleware rate limiter: a fixed-window counter
// per account and action, with the expiry armed on the first hit.
func (p *RedisPersister) Allow(account, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(keyRateLimit, account, action)

	count, err := p.client.Incr(p.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}
	if count == 1 {
		p.client.Expire(p.ctx, key, window)
	}
	return count <= int64(limit), nil
}

func (p *RedisPersister) Close() error {
	return p.client.Close()
}
