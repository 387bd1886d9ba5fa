package usecase_flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/popchoice/internal/metrics"
	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/humanbelnik/popchoice/internal/service/wizard"
	"github.com/rs/zerolog"
)

var (
	ErrFlowNotFound         = errors.New("flow not found")
	ErrRecommendationFailed = errors.New("recommendation failed")
	ErrInternal             = errors.New("internal error")
)

type FlowStore interface {
	Save(ctx context.Context, f *wizard.Flow) error
	Load(ctx context.Context, id string) (*wizard.Flow, error)
	Delete(ctx context.Context, id string) error
}

//go:generate mockery --name=Recommender --output=./mocks/flow/recommender --filename=recommender.go
type Recommender interface {
	Name() string
	Recommend(ctx context.Context, responses model.CollectedResponses) (model.RecommendationResult, error)
}

//go:generate mockery --name=PosterLookup --output=./mocks/flow/poster --filename=poster.go
type PosterLookup interface {
	PosterPath(ctx context.Context, title string, year int) (string, error)
}

//go:generate mockery --name=Notifier --output=./mocks/flow/notifier --filename=notifier.go
type Notifier interface {
	FlowUpdated(v wizard.View)
}

type Usecase struct {
	store       FlowStore
	recommender Recommender
	posters     PosterLookup
	notifier    Notifier
	logger      zerolog.Logger

	posterTimeout  time.Duration
	syncPosters    bool
	loadingTimeout time.Duration
	now            func() time.Time

	locks *keyedMutex
	wg    sync.WaitGroup
}

type Option func(*Usecase)

func WithLogger(logger zerolog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

// WithPosterLookup enables poster enrichment of the displayed record.
func WithPosterLookup(posters PosterLookup, timeout time.Duration) Option {
	return func(u *Usecase) {
		u.posters = posters
		if timeout > 0 {
			u.posterTimeout = timeout
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(u *Usecase) {
		u.notifier = n
	}
}

// WithSyncPosters resolves posters before returning instead of on a
// background goroutine.
func WithSyncPosters() Option {
	return func(u *Usecase) {
		u.syncPosters = true
	}
}

// WithLoadingTimeout bounds how long a flow may wait for recommendations.
// Older pending requests are treated as lost and the last turn reopens.
func WithLoadingTimeout(timeout time.Duration) Option {
	return func(u *Usecase) {
		u.loadingTimeout = timeout
	}
}

func New(store FlowStore, recommender Recommender, opts ...Option) *Usecase {
	u := &Usecase{
		store:          store,
		recommender:    recommender,
		logger:         zerolog.Nop(),
		posterTimeout:  10 * time.Second,
		loadingTimeout: 2 * time.Minute,
		now:            time.Now,
		locks:          newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) Start(ctx context.Context) (*wizard.Flow, error) {
	f := wizard.NewFlow(uuid.NewString())
	if err := u.store.Save(ctx, f); err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	metrics.FlowsStartedTotal.Inc()
	u.logger.Info().Str("flow_id", f.ID).Msg("flow started")
	return f, nil
}

func (u *Usecase) Get(ctx context.Context, id string) (*wizard.Flow, error) {
	return u.load(ctx, id)
}

func (u *Usecase) Delete(ctx context.Context, id string) error {
	unlock := u.locks.Lock(id)
	defer unlock()

	if _, err := u.load(ctx, id); err != nil {
		return err
	}
	if err := u.store.Delete(ctx, id); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) SubmitSetup(ctx context.Context, id, rawGroupSize, timeAvailable string) (*wizard.Flow, error) {
	return u.mutate(ctx, id, func(f *wizard.Flow) error {
		return f.SubmitSetup(rawGroupSize, timeAvailable)
	})
}

func (u *Usecase) EditForm(ctx context.Context, id string, edit func(form *wizard.PreferenceForm) error) (*wizard.Flow, error) {
	return u.mutate(ctx, id, func(f *wizard.Flow) error {
		return f.EditForm(edit)
	})
}

// SubmitAnswer closes the current participant's turn. On the last turn it
// also calls the recommender and waits for the outcome; the flow lock is not
// held during that call.
func (u *Usecase) SubmitAnswer(ctx context.Context, id string) (*wizard.Flow, error) {
	var req *wizard.Request
	f, err := u.mutate(ctx, id, func(f *wizard.Flow) error {
		var err error
		req, err = f.SubmitAnswer(u.now())
		return err
	})
	if err != nil || req == nil {
		return f, err
	}

	log := u.logger.With().Str("flow_id", id).Str("recommender", u.recommender.Name()).Logger()
	log.Info().Int("people", len(req.Payload.PerPerson)).Msg("requesting recommendations")

	start := time.Now()
	result, recErr := u.recommender.Recommend(ctx, req.Payload)
	took := time.Since(start)

	outcome := metrics.OutcomeError
	if recErr == nil {
		outcome = string(result.Status)
	}

	var resolveErr error
	f, err = u.mutate(context.WithoutCancel(ctx), id, func(f *wizard.Flow) error {
		if recErr != nil {
			return f.Fail(req.Ticket, recErr)
		}
		resolveErr = f.Resolve(req.Ticket, result)
		if errors.Is(resolveErr, wizard.ErrStaleTicket) {
			return resolveErr
		}
		return nil
	})
	switch {
	case errors.Is(err, wizard.ErrStaleTicket):
		metrics.RecordRecommendation(u.recommender.Name(), metrics.OutcomeStale, took)
		log.Warn().Msg("dropping stale recommendation result")
		return u.load(ctx, id)
	case err != nil:
		return nil, err
	}

	if recErr == nil && resolveErr != nil {
		recErr = resolveErr
		outcome = metrics.OutcomeError
	}
	metrics.RecordRecommendation(u.recommender.Name(), outcome, took)

	if recErr != nil {
		log.Error().Err(recErr).Dur("took", took).Msg("recommendation failed")
		return f, fmt.Errorf("%w: %w", ErrRecommendationFailed, recErr)
	}

	log.Info().Str("status", string(result.Status)).Int("records", len(result.Records)).Dur("took", took).Msg("recommendations ready")
	return u.withPoster(ctx, f)
}

func (u *Usecase) Next(ctx context.Context, id string) (*wizard.Flow, error) {
	f, err := u.mutate(ctx, id, func(f *wizard.Flow) error {
		return f.Next()
	})
	if err != nil {
		return f, err
	}
	return u.withPoster(ctx, f)
}

func (u *Usecase) Restart(ctx context.Context, id string) (*wizard.Flow, error) {
	return u.mutate(ctx, id, func(f *wizard.Flow) error {
		return f.Restart()
	})
}

// Wait blocks until background poster lookups have finished.
func (u *Usecase) Wait() {
	u.wg.Wait()
}

// ResolvePoster looks up the poster of the displayed record and applies it
// if the flow still shows that record afterwards.
func (u *Usecase) ResolvePoster(ctx context.Context, id string) (*wizard.Flow, error) {
	unlock := u.locks.Lock(id)
	f, err := u.load(ctx, id)
	unlock()
	if err != nil {
		return nil, err
	}

	ticket, record, ok := f.PosterTicket()
	if !ok || u.posters == nil {
		return f, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, u.posterTimeout)
	path, lookupErr := u.posters.PosterPath(lookupCtx, record.Title, record.ReleaseYear)
	cancel()

	log := u.logger.With().Str("flow_id", id).Str("title", record.Title).Logger()
	switch {
	case lookupErr != nil:
		metrics.RecordPosterLookup(metrics.PosterError)
		log.Debug().Err(lookupErr).Msg("poster unavailable")
		return f, nil
	case path == "":
		metrics.RecordPosterLookup(metrics.PosterMissing)
		log.Debug().Msg("poster not found")
		return f, nil
	}
	metrics.RecordPosterLookup(metrics.PosterFound)

	applied := false
	updated, err := u.mutate(ctx, id, func(f *wizard.Flow) error {
		applied = f.ApplyPoster(ticket, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		log.Debug().Msg("dropping poster for a record no longer displayed")
	}
	return updated, nil
}

func (u *Usecase) withPoster(ctx context.Context, f *wizard.Flow) (*wizard.Flow, error) {
	if u.posters == nil {
		return f, nil
	}
	if _, _, ok := f.PosterTicket(); !ok {
		return f, nil
	}

	if u.syncPosters {
		updated, err := u.ResolvePoster(ctx, f.ID)
		if err != nil {
			return f, nil
		}
		return updated, nil
	}

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		if _, err := u.ResolvePoster(context.Background(), f.ID); err != nil {
			u.logger.Debug().Err(err).Str("flow_id", f.ID).Msg("poster lookup skipped")
		}
	}()
	return f, nil
}

// mutate runs fn on the stored flow under its lock. The flow is saved and
// published only when fn succeeds.
func (u *Usecase) mutate(ctx context.Context, id string, fn func(f *wizard.Flow) error) (*wizard.Flow, error) {
	unlock := u.locks.Lock(id)
	defer unlock()

	f, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(f); err != nil {
		return nil, err
	}

	if err := u.store.Save(ctx, f); err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if u.notifier != nil {
		u.notifier.FlowUpdated(f.View())
	}
	return f, nil
}

func (u *Usecase) load(ctx context.Context, id string) (*wizard.Flow, error) {
	f, err := u.store.Load(ctx, id)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if f == nil {
		return nil, ErrFlowNotFound
	}
	if f.ExpireLoading(u.now().Add(-u.loadingTimeout)) {
		u.logger.Warn().Str("flow_id", id).Msg("pending recommendation request expired")
	}
	return f, nil
}
