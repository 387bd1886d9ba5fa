package wizard

import "github.com/humanbelnik/popchoice/internal/model"

// RecommendationBrowser pages forward through a non-empty recommendation set.
type RecommendationBrowser struct {
	Records []model.RecommendationRecord `json:"records"`
	Index   int                          `json:"index"`
}

func NewRecommendationBrowser(records []model.RecommendationRecord) (RecommendationBrowser, error) {
	if len(records) == 0 {
		return RecommendationBrowser{}, ErrEmptyRecommendations
	}
	owned := make([]model.RecommendationRecord, len(records))
	copy(owned, records)

	return RecommendationBrowser{Records: owned}, nil
}

func (b RecommendationBrowser) Len() int {
	return len(b.Records)
}

func (b RecommendationBrowser) Current() (model.RecommendationRecord, bool) {
	if b.Index < 0 || b.Index >= len(b.Records) {
		return model.RecommendationRecord{}, false
	}
	return b.Records[b.Index], true
}

func (b RecommendationBrowser) HasNext() bool {
	return b.Index < len(b.Records)-1
}

func (b RecommendationBrowser) CanRestart() bool {
	return len(b.Records) > 0 && b.Index == len(b.Records)-1
}

// Next moves to the following record and drops its cached poster so the
// lookup runs again for it.
func (b *RecommendationBrowser) Next() error {
	if !b.HasNext() {
		return ErrNoNextRecommendation
	}
	b.Index++
	b.Records[b.Index].PosterPath = ""
	return nil
}

// SetPoster applies a poster only while index is still the displayed record.
func (b *RecommendationBrowser) SetPoster(index int, path string) bool {
	if index != b.Index || index < 0 || index >= len(b.Records) {
		return false
	}
	b.Records[index].PosterPath = path
	return true
}
