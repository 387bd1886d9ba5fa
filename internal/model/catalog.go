package model

import (
	"database/sql/driver"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	EmbeddingDimension = 1536

	DefaultMatchThreshold float32 = 0.02
	DefaultMatchCount             = 1
)

var catalogNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("popchoice/catalog"))

// CatalogID is stable for a title and year, so seeding the same movie twice
// overwrites it in every store.
func CatalogID(title string, releaseYear int) uuid.UUID {
	return uuid.NewSHA1(catalogNamespace, []byte(title+"|"+strconv.Itoa(releaseYear)))
}

type CatalogMovie struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	ReleaseYear int       `json:"releaseYear"`
	Content     string    `json:"content"`
}

func (m CatalogMovie) Record() RecommendationRecord {
	return RecommendationRecord{
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Synopsis:    m.Content,
	}
}

type Embedding []float32

// Value renders the pgvector text literal, e.g. [0.1,0.2].
func (e Embedding) Value() (driver.Value, error) {
	var b strings.Builder
	b.Grow(len(e) * 10)
	b.WriteByte('[')
	for i, v := range e {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String(), nil
}
