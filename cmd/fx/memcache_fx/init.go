package memcache_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"itinera/internal/config"
	mem "itinera/pkg/memcache"
)

var Module = fx.Provide(provideItineraryCache)

// provideItineraryCache shares the cache through Redis when REDIS_URL is set
// and keeps it in process otherwise.
func provideItineraryCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (mem.ItineraryCache, error) {
	if cfg.RedisURL == "" {
		log.Info("using in-memory itinerary cache")
		return mem.NewInMemoryItineraryCache(cfg.CacheTTL, log), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	log.Info("using redis itinerary cache", zap.String("addr", opts.Addr))
	return mem.NewRedisItineraryCache(client, cfg.CacheTTL, log), nil
}
