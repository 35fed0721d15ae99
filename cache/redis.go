package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"geohash-codec/config"
	"geohash-codec/models"
)

const keyPrefix = "geohash:"

// Cache keeps codec results in Redis. Results are pure functions of their
// key, so entries never need invalidation; the TTL only bounds memory.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New wraps an existing client.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// InitializeRedis connects to Redis and checks the connection.
func InitializeRedis(ctx context.Context, cfg config.RedisConfig) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Connected to Redis at %s.", cfg.Addr)
	return New(rdb, cfg.TTL), nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}

func decodeKey(hash string) string {
	return keyPrefix + "decode:" + hash
}

func encodeKey(lat, lon, precision float64, length int) string {
	return keyPrefix + "encode:" +
		strconv.FormatFloat(lat, 'g', -1, 64) + ":" +
		strconv.FormatFloat(lon, 'g', -1, 64) + ":" +
		strconv.FormatFloat(precision, 'g', -1, 64) + ":" +
		strconv.Itoa(length)
}

// GetDecoded returns the cached decoding of hash, if any.
func (c *Cache) GetDecoded(ctx context.Context, hash string) (*models.Coordinate, bool, error) {
	var coord models.Coordinate
	ok, err := c.get(ctx, decodeKey(hash), &coord)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &coord, true, nil
}

func (c *Cache) SetDecoded(ctx context.Context, coord *models.Coordinate) error {
	return c.set(ctx, decodeKey(coord.Hash), coord)
}

// GetEncoded returns the cached encoding of the given inputs, if any.
// length is zero for precision based requests.
func (c *Cache) GetEncoded(ctx context.Context, lat, lon, precision float64, length int) (*models.EncodeResult, bool, error) {
	var res models.EncodeResult
	ok, err := c.get(ctx, encodeKey(lat, lon, precision, length), &res)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &res, true, nil
}

func (c *Cache) SetEncoded(ctx context.Context, precision float64, length int, res *models.EncodeResult) error {
	return c.set(ctx, encodeKey(res.Latitude, res.Longitude, precision, length), res)
}

func (c *Cache) get(ctx context.Context, key string, v interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
