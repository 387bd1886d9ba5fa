package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/humanbelnik/popchoice/internal/app"
	"github.com/humanbelnik/popchoice/internal/config"
	infra_embedder "github.com/humanbelnik/popchoice/internal/infra/embedder"
	"github.com/humanbelnik/popchoice/internal/logger"
	usecase_catalog "github.com/humanbelnik/popchoice/internal/usecase/catalog"
)

func main() {
	file := flag.String("file", "movies.json", "JSON array of {title, releaseYear, content}")
	parallelism := flag.Int("parallelism", 4, "concurrent embedding requests")
	cfg := config.Load()
	log := logger.New(cfg.Log)

	if cfg.OpenAI.APIKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY is required to embed the catalog")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to open movies file")
	}
	movies, err := usecase_catalog.LoadMovies(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read movies")
	}

	catalog := usecase_catalog.New(
		infra_embedder.New(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model),
		app.MustVectorStore(ctx, cfg),
		*parallelism,
		usecase_catalog.WithLogger(log),
	)

	log.Info().Int("movies", len(movies)).Str("store", cfg.VectorStore.Kind).Msg("seeding catalog")
	stored, err := catalog.Seed(ctx, movies)
	if err != nil {
		log.Fatal().Err(err).Int("stored", stored).Msg("seeding failed")
	}

	total, err := catalog.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count catalog")
	}
	log.Info().Int("stored", stored).Int("total", total).Msg("catalog seeded")
}
