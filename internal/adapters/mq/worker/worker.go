// Package worker runs the parallel scoring stage of a generation pass.
//
// Candidate scoring is embarrassingly parallel: every candidate is scored
// independently from an immutable snapshot, so workers share nothing beyond
// the queue they read from and the results channel they write to. The final
// merge-and-sort happens in the caller; the pipeline output is the same set
// of scored candidates a serial pass would produce.
package worker

import (
	"context"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/capsule/internal/domain/model"
	"github.com/okian/capsule/internal/domain/scoring"
	"github.com/okian/capsule/pkg/logger"
	"github.com/okian/capsule/pkg/metrics"
)

// Candidate is what workers read off the queue and emit scored.
type Candidate = model.Candidate

// Queue defines how workers receive candidates.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Candidate
}

// Worker scores candidates from the queue until it drains.
type Worker struct {
	queue   Queue
	scorer  scoring.Scorer
	results chan<- Candidate
	name    string
	logger  logger.Logger
}

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(log logger.Logger) Option {
	return func(w *Worker) {
		if log != nil {
			w.logger = log
		}
	}
}

// NewWorker creates a scoring worker.
func NewWorker(queue Queue, scorer scoring.Scorer, results chan<- Candidate, opts ...Option) *Worker {
	w := &Worker{
		queue:   queue,
		scorer:  scorer,
		results: results,
		name:    "worker",
		logger:  logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run scores candidates until the queue drains or ctx is cancelled.
// The first scoring error is reported through report; later errors for the
// same pass are logged and dropped, since the pass already failed.
func (w *Worker) Run(ctx context.Context, report func(error)) {
	for cand := range w.queue.Dequeue(ctx) {
		scored, err := w.score(ctx, cand)
		if err != nil {
			metrics.RecordScoringError()
			w.logger.Error(ctx, "scoring candidate failed",
				logger.String("worker", w.name),
				logger.String("skeleton", cand.Skeleton),
				logger.Error(err),
			)
			report(err)
			continue
		}
		select {
		case w.results <- scored:
		case <-ctx.Done():
			return
		}
	}
}

// score computes and attaches the scores for one candidate.
func (w *Worker) score(ctx context.Context, cand Candidate) (Candidate, error) {
	start := time.Now()
	res, err := w.scorer.Score(ctx, scoring.Input{Items: cand.Items})
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return Candidate{}, err
	}
	cand.ColorScore = res.Color
	cand.StyleScore = res.Style
	cand.CompositeScore = res.Composite
	return cand, nil
}

// Pool fans candidate scoring out over multiple workers for one pass.
type Pool struct {
	workers []*Worker
	results chan Candidate

	wg    sync.WaitGroup
	errMu sync.Mutex
	err   error

	logger logger.Logger
}

// NewPool creates a worker pool reading from queue. A non-positive
// workerCount defaults to the number of CPUs.
func NewPool(workerCount int, queue Queue, scorer scoring.Scorer) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		results: make(chan Candidate, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}

	p.workers = make([]*Worker, workerCount)
	for i := 0; i < workerCount; i++ {
		p.workers[i] = NewWorker(
			queue,
			scorer,
			p.results,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return p
}

// Start launches the workers. Results closes once every worker finishes,
// which happens when the queue is closed and drained.
func (p *Pool) Start(ctx context.Context) {
	p.wg.Add(len(p.workers))
	for _, w := range p.workers {
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx, p.reportErr)
		}(w)
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}

// Results returns the scored candidate channel.
func (p *Pool) Results() <-chan Candidate {
	return p.results
}

// Err returns the first scoring error seen during the pass, if any.
// Valid once Results has closed.
func (p *Pool) Err() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.err
}

func (p *Pool) reportErr(err error) {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	if p.err == nil {
		p.err = err
	}
}
