package app

import (
	"context"

	"github.com/humanbelnik/popchoice/internal/config"
	infra_pg_init "github.com/humanbelnik/popchoice/internal/infra/postgres/init"
	infra_postgres_vector "github.com/humanbelnik/popchoice/internal/infra/postgres/vector"
	infra_qdrant "github.com/humanbelnik/popchoice/internal/infra/qdrant"
	"github.com/humanbelnik/popchoice/internal/model"
)

// VectorStore is the movie catalog as both the matcher and the seeder see it.
type VectorStore interface {
	Store(ctx context.Context, m model.CatalogMovie, e model.Embedding) error
	Match(ctx context.Context, e model.Embedding, threshold float32, count int) ([]model.CatalogMovie, error)
	Count(ctx context.Context) (int, error)
}

// MustVectorStore connects to the configured store and makes sure its schema
// exists.
func MustVectorStore(ctx context.Context, cfg *config.Config) VectorStore {
	switch cfg.VectorStore.Kind {
	case config.VectorStoreQdrant:
		repo := infra_qdrant.New(infra_qdrant.MustEstablishConn(cfg.Qdrant), cfg.Qdrant.Collection)
		if err := repo.EnsureCollection(ctx); err != nil {
			panic(err)
		}
		return repo
	default:
		db := infra_pg_init.MustEstablishConn(cfg.Postgres)
		if err := infra_pg_init.Migrate(ctx, db); err != nil {
			panic(err)
		}
		return infra_postgres_vector.New(db)
	}
}
