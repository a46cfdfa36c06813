// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/capsule/internal/adapters/classify"
	candidatequeue "github.com/okian/capsule/internal/adapters/mq/queue"
	workerpool "github.com/okian/capsule/internal/adapters/mq/worker"
	"github.com/okian/capsule/internal/adapters/repository"
	"github.com/okian/capsule/internal/domain/calendar"
	"github.com/okian/capsule/internal/domain/combinator"
	"github.com/okian/capsule/internal/domain/model"
	"github.com/okian/capsule/internal/domain/ranker"
	"github.com/okian/capsule/internal/domain/scoring"
	"github.com/okian/capsule/pkg/logger"
	"github.com/okian/capsule/pkg/metrics"
)

// Service wires the wardrobe store, combinator, scoring pipeline, and
// calendar builder into the capsule generation engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	wardrobe   repository.Store
	scorer     scoring.Scorer
	combiner   *combinator.Combinator
	builder    *calendar.Builder
	classifier classify.Classifier // optional remote classification

	// Configuration
	days         int
	weights      scoring.Weights
	candidateCap int
	workerCount  int
	queueSize    int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithDays sets the default calendar length.
func WithDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.days = days
		}
	}
}

// WithWeights sets the composite scoring weights.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithCandidateCap caps the candidates enumerated per skeleton.
func WithCandidateCap(maxPerSkeleton int) Option {
	return func(s *Service) {
		if maxPerSkeleton > 0 {
			s.candidateCap = maxPerSkeleton
		}
	}
}

// WithWorkerCount sets the number of scoring workers per generation pass.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the candidate queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithClassifier sets the external classification client.
func WithClassifier(c classify.Classifier) Option {
	return func(s *Service) {
		s.classifier = c
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		days:         calendar.DefaultDays,
		weights:      scoring.DefaultWeights(),
		candidateCap: combinator.DefaultMaxPerSkeleton,
		workerCount:  runtime.NumCPU(),
		queueSize:    4096,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components. It fails with
// scoring.ErrInvalidWeights when the configured weights are unusable.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	scorer, err := scoring.NewOutfitScorer(scoring.WithWeights(s.weights))
	if err != nil {
		return err
	}
	s.scorer = scorer
	s.wardrobe = repository.NewMemStore()
	s.combiner = combinator.New(combinator.WithMaxPerSkeleton(s.candidateCap))
	s.builder = calendar.NewBuilder(calendar.WithDays(s.days))

	s.started = true
	s.logger.Info(ctx, "capsule service started",
		logger.Int("days", s.days),
		logger.Int("workers", s.workerCount),
		logger.Int("candidateCap", s.candidateCap),
		logger.Float64("colorWeight", s.weights.Color),
		logger.Float64("styleWeight", s.weights.Style),
		logger.Bool("remoteClassifier", s.classifier != nil),
	)

	return nil
}

// Stop shuts down the service. Generation passes are synchronous, so there
// is nothing long-running to drain.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "capsule service stopped")
}

// AddItem registers an already-classified item in the wardrobe.
func (s *Service) AddItem(ctx context.Context, item model.Item) error {
	if err := s.wardrobe.Add(ctx, item); err != nil {
		return err
	}
	s.logger.Debug(ctx, "item registered",
		logger.String("id", item.ID),
		logger.String("category", string(item.Category)),
		logger.String("colorGroup", string(item.ColorGroup)),
	)
	return nil
}

// ClassifyAndAdd classifies an image via the external service and registers
// the resulting item under the given id.
func (s *Service) ClassifyAndAdd(ctx context.Context, id, imageRef, categoryHint string) (model.Item, error) {
	if s.classifier == nil {
		return model.Item{}, ErrNoClassifier
	}

	rec, err := s.classifier.Classify(ctx, imageRef, categoryHint)
	if err != nil {
		return model.Item{}, fmt.Errorf("classify %s: %w", imageRef, err)
	}

	item := model.Item{
		ID:         id,
		Category:   rec.Category,
		ColorGroup: rec.ColorGroup,
		Embedding:  rec.Embedding,
	}
	if err := s.AddItem(ctx, item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// Items returns a snapshot of the wardrobe. An empty wardrobe yields
// repository.ErrEmptyWardrobe.
func (s *Service) Items(ctx context.Context) ([]model.Item, error) {
	return s.wardrobe.Snapshot(ctx)
}

// Count returns the number of registered items.
func (s *Service) Count(ctx context.Context) int {
	return s.wardrobe.Count(ctx)
}

// ClearWardrobe removes every registered item.
func (s *Service) ClearWardrobe(ctx context.Context) {
	s.wardrobe.Clear(ctx)
	s.logger.Info(ctx, "wardrobe cleared")
}

// GenerateCapsule runs one full generation pass over an immutable wardrobe
// snapshot: enumerate, score in parallel, rank, build the calendar.
// A non-positive days value uses the configured default. The calendar is
// returned alongside calendar.ErrInsufficientWardrobe when day-slots had to
// be left empty.
func (s *Service) GenerateCapsule(ctx context.Context, days int) (model.Calendar, error) {
	start := time.Now()

	snapshot, err := s.wardrobe.Snapshot(ctx)
	if err != nil {
		return model.Calendar{}, err
	}

	candidates, err := s.combiner.Enumerate(ctx, snapshot)
	if err != nil {
		return model.Calendar{}, err
	}

	scored, err := s.scorePipeline(ctx, candidates)
	if err != nil {
		return model.Calendar{}, err
	}
	ranker.Sort(scored)

	builder := s.builder
	if days > 0 && days != s.days {
		builder = calendar.NewBuilder(calendar.WithDays(days))
	}

	cal, buildErr := builder.Build(ctx, scored, len(snapshot))

	metrics.RecordCalendarGenerated()
	metrics.RecordGenerationDuration(float64(time.Since(start).Milliseconds()))
	if len(cal.Days) > 0 {
		metrics.UpdateCalendarFillRatio(float64(cal.Filled()) / float64(len(cal.Days)))
	}

	s.logger.Info(ctx, "capsule generated",
		logger.Int("items", len(snapshot)),
		logger.Int("candidates", len(candidates)),
		logger.Int("days", len(cal.Days)),
		logger.Int("filled", cal.Filled()),
		logger.Duration("took", time.Since(start)),
	)

	return cal, buildErr
}

// scorePipeline fans candidates through the scoring worker pool and merges
// the results. The merged set is identical to what serial scoring would
// produce; ordering is restored by the ranker afterwards.
func (s *Service) scorePipeline(ctx context.Context, candidates []model.Candidate) ([]model.Candidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	q := candidatequeue.NewInMemoryQueue(candidatequeue.WithCapacity(s.queueSize))
	pool := workerpool.NewPool(s.workerCount, q, s.scorer)
	pool.Start(ctx)

	go func() {
		defer func() { _ = q.Close() }()
		for _, cand := range candidates {
			if !q.Enqueue(ctx, cand) {
				return
			}
		}
	}()

	scored := make([]model.Candidate, 0, len(candidates))
	for cand := range pool.Results() {
		scored = append(scored, cand)
	}
	if err := pool.Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generation cancelled: %w", err)
	}

	return scored, nil
}

// Stats is a point-in-time snapshot of the engine's configuration and
// wardrobe state, exposed for monitoring.
type Stats struct {
	Started      bool    `json:"started"`
	Days         int     `json:"days"`
	WorkerCount  int     `json:"worker_count"`
	CandidateCap int     `json:"candidate_cap"`
	ColorWeight  float64 `json:"color_weight"`
	StyleWeight  float64 `json:"style_weight"`
	WardrobeSize int     `json:"wardrobe_size"`
}

// GetStats returns the current service snapshot. The wardrobe size is zero
// until the service has started.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Started:      s.started,
		Days:         s.days,
		WorkerCount:  s.workerCount,
		CandidateCap: s.candidateCap,
		ColorWeight:  s.weights.Color,
		StyleWeight:  s.weights.Style,
	}

	if s.started {
		stats.WardrobeSize = s.wardrobe.Count(context.Background())
	}

	return stats
}
