package mem

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	resp "itinera/internal/models/response_models"
)

const (
	keyPrefix = "itinerary:detail:"
	genPrefix = "itinerary:gen:"
)

var errStaleFill = errors.New("itinerary invalidated during cache fill")

// RedisItineraryCache shares rendered itineraries between instances. Redis
// failures degrade to cache misses.
type RedisItineraryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisItineraryCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisItineraryCache {
	return &RedisItineraryCache{client: client, ttl: ttl, log: log}
}

func key(itineraryID uuid.UUID) string {
	return keyPrefix + itineraryID.String()
}

func genKey(itineraryID uuid.UUID) string {
	return genPrefix + itineraryID.String()
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter, itineraryID uuid.UUID) (uint64, error) {
	gen, err := cmd.Get(ctx, genKey(itineraryID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisItineraryCache) Get(ctx context.Context, itineraryID uuid.UUID) (*resp.ItineraryDetailResponse, bool) {
	payload, err := c.client.Get(ctx, key(itineraryID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("redis get", zap.String("itinerary_id", itineraryID.String()), zap.Error(err))
		}
		return nil, false
	}
	return decode(c.log, payload)
}

// Generation falls back to a value no Set can match when Redis is down, so
// the fill is skipped rather than risking a stale entry.
func (c *RedisItineraryCache) Generation(ctx context.Context, itineraryID uuid.UUID) uint64 {
	gen, err := readGeneration(ctx, c.client, itineraryID)
	if err != nil {
		c.log.Warn("redis get generation", zap.String("itinerary_id", itineraryID.String()), zap.Error(err))
		return math.MaxUint64
	}
	return gen
}

// Set watches the generation key so an Invalidate racing the fill aborts it.
func (c *RedisItineraryCache) Set(ctx context.Context, itineraryID uuid.UUID, generation uint64, detail *resp.ItineraryDetailResponse) {
	payload, err := json.Marshal(detail)
	if err != nil {
		c.log.Warn("encoding itinerary for cache", zap.Error(err))
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, itineraryID)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(itineraryID), payload, c.ttl)
			return nil
		})
		return err
	}, genKey(itineraryID))

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.log.Debug("skipping stale itinerary cache fill", zap.String("itinerary_id", itineraryID.String()))
	default:
		c.log.Warn("redis set", zap.String("itinerary_id", itineraryID.String()), zap.Error(err))
	}
}

func (c *RedisItineraryCache) Invalidate(ctx context.Context, itineraryID uuid.UUID) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(itineraryID))
		pipe.Del(ctx, key(itineraryID))
		return nil
	})
	if err != nil {
		c.log.Warn("redis invalidate", zap.String("itinerary_id", itineraryID.String()), zap.Error(err))
	}
}
