package app

import (
	"context"
	"time"

	"github.com/humanbelnik/popchoice/internal/config"
	http_flow "github.com/humanbelnik/popchoice/internal/delivery/http/flow"
	http_init "github.com/humanbelnik/popchoice/internal/delivery/http/init"
	ws_flow "github.com/humanbelnik/popchoice/internal/delivery/ws/flow"
	infra_embedder "github.com/humanbelnik/popchoice/internal/infra/embedder"
	infra_memory "github.com/humanbelnik/popchoice/internal/infra/memory"
	infra_recommender "github.com/humanbelnik/popchoice/internal/infra/recommender"
	infra_redis_flow "github.com/humanbelnik/popchoice/internal/infra/redis/flow"
	infra_redis_init "github.com/humanbelnik/popchoice/internal/infra/redis/init"
	infra_tmdb "github.com/humanbelnik/popchoice/internal/infra/tmdb"
	"github.com/humanbelnik/popchoice/internal/logger"
	"github.com/humanbelnik/popchoice/internal/service/embedding_reducer"
	usecase_flow "github.com/humanbelnik/popchoice/internal/usecase/flow"
	usecase_match "github.com/humanbelnik/popchoice/internal/usecase/match"
	"github.com/rs/zerolog"
)

const (
	flowKey       = "popchoice:flow"
	posterTimeout = 5 * time.Second
	loadingMargin = 30 * time.Second
)

func Go(cfg *config.Config) {
	log := logger.New(cfg.Log)

	hub := ws_flow.NewHub(ws_flow.WithHubLogger(log.With().Str("component", "ws").Logger()))

	opts := []usecase_flow.Option{
		usecase_flow.WithLogger(log.With().Str("component", "flow").Logger()),
		usecase_flow.WithNotifier(hub),
		usecase_flow.WithLoadingTimeout(cfg.Recommender.Timeout + loadingMargin),
	}
	if cfg.TMDB.Enabled() {
		posters := infra_tmdb.New(cfg.TMDB.BaseURL, cfg.TMDB.Token, cfg.TMDB.Timeout,
			infra_tmdb.WithLogger(log.With().Str("component", "tmdb").Logger()))
		opts = append(opts, usecase_flow.WithPosterLookup(posters, posterTimeout))
	} else {
		log.Warn().Msg("TMDB token not set, posters are disabled")
	}
	if !cfg.Flow.PosterWorker {
		opts = append(opts, usecase_flow.WithSyncPosters())
	}

	flowUC := usecase_flow.New(
		MustFlowStore(cfg, log),
		MustRecommender(cfg, log),
		opts...,
	)

	controllerPool := http_init.NewControllerPool(log)
	controllerPool.Add(http_flow.New(flowUC, http_flow.WithLogger(log)))
	controllerPool.Add(ws_flow.New(flowUC, hub, ws_flow.WithLogger(log)))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}

func MustFlowStore(cfg *config.Config, log zerolog.Logger) usecase_flow.FlowStore {
	if !cfg.Redis.Enabled() {
		log.Info().Dur("ttl", cfg.Flow.TTL).Msg("keeping flows in memory")
		return infra_memory.NewFlowStore(cfg.Flow.TTL)
	}
	log.Info().Str("host", cfg.Redis.Host).Msg("keeping flows in redis")
	return infra_redis_flow.New(infra_redis_init.MustEstablishConn(cfg.Redis, log), flowKey, cfg.Flow.TTL)
}

func MustRecommender(cfg *config.Config, log zerolog.Logger) usecase_flow.Recommender {
	if cfg.Recommender.Mode != config.RecommenderSemantic {
		return infra_recommender.New(cfg.Recommender.URL, cfg.Recommender.Timeout,
			infra_recommender.WithLogger(log.With().Str("component", "recommender").Logger()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return usecase_match.New(
		infra_embedder.New(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model),
		MustVectorStore(ctx, cfg),
		embedding_reducer.New(),
		cfg.VectorStore.MatchThreshold,
		cfg.VectorStore.MatchCount,
		usecase_match.WithLogger(log.With().Str("component", "match").Logger()),
	)
}
