package infra_postgres_vector

import (
	"github.com/google/uuid"
	"github.com/humanbelnik/popchoice/internal/model"
)

type MovieDB struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	ReleaseYear int       `db:"releaseyear"`
	Content     string    `db:"content"`
	Similarity  float64   `db:"similarity"`
}

func (m *MovieDB) ToDomain() model.CatalogMovie {
	return model.CatalogMovie{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Content:     m.Content,
	}
}
