package embedding_reducer

import (
	"errors"

	"github.com/humanbelnik/popchoice/internal/model"
)

var (
	ErrNoData           = errors.New("no embeddings to reduce")
	ErrDimensionsDiffer = errors.New("embeddings have different dimensions")
)

type EmbeddingReducer struct{}

func New() *EmbeddingReducer {
	return &EmbeddingReducer{}
}

// Reduce averages the vectors component-wise into one group vector.
func (r *EmbeddingReducer) Reduce(embs []model.Embedding) (model.Embedding, error) {
	if len(embs) == 0 || len(embs[0]) == 0 {
		return nil, ErrNoData
	}

	for i := 1; i < len(embs); i++ {
		if len(embs[i-1]) != len(embs[i]) {
			return nil, ErrDimensionsDiffer
		}
	}

	e := make(model.Embedding, len(embs[0]))
	n := float32(len(embs))
	for i := range len(embs[0]) {
		for k := range len(embs) {
			e[i] += embs[k][i]
		}
		e[i] /= n
	}

	return e, nil
}
