package infra_redis_init

import (
	"errors"
	"fmt"
	"net"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/popchoice/internal/config"
	"github.com/rs/zerolog"
)

var ErrUnreachable = errors.New("redis is unreachable")

func Addr(cfg config.RedisCache) string {
	return net.JoinHostPort(cfg.Host, cfg.Port)
}

// EstablishConn returns a client that has answered a ping. The client is
// closed when the ping fails.
func EstablishConn(cfg config.RedisCache) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     Addr(cfg),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	return client, nil
}

func MustEstablishConn(cfg config.RedisCache, logger zerolog.Logger) *redis.Client {
	client, err := EstablishConn(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", Addr(cfg)).Int("db", cfg.DB).Msg("failed to connect to redis")
	}
	return client
}
