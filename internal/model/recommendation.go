package model

const PosterBaseURL = "https://image.tmdb.org/t/p/original"

type RecommendationRecord struct {
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear"`
	Synopsis    string `json:"synopsis"`
	PosterPath  string `json:"posterPath,omitempty"`
}

func (r RecommendationRecord) HasPoster() bool {
	return r.PosterPath != ""
}

func (r RecommendationRecord) PosterURL() string {
	if !r.HasPoster() {
		return ""
	}
	return PosterBaseURL + r.PosterPath
}

type RecommendationStatus string

const (
	RecommendationOK      RecommendationStatus = "ok"
	RecommendationNoMatch RecommendationStatus = "no_match"
)

// RecommendationResult is what a recommender settles with when the call itself
// succeeded. A failed call is reported through the error return instead.
type RecommendationResult struct {
	Status  RecommendationStatus   `json:"status"`
	Records []RecommendationRecord `json:"records,omitempty"`
}

func Recommendations(records ...RecommendationRecord) RecommendationResult {
	return RecommendationResult{Status: RecommendationOK, Records: records}
}

func NoMatch() RecommendationResult {
	return RecommendationResult{Status: RecommendationNoMatch}
}
