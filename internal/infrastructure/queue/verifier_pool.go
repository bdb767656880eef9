package queue

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironguard/inventory-server/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

var ErrPoolStopped = errors.New("verifier pool stopped")

// VerifyFunc compares a plaintext password with a stored hash.
type VerifyFunc func(plaintext, hash string) bool

type verifyJob struct {
	plaintext string
	hash      string
	result    chan bool
}

// VerifierPool runs password comparisons on a fixed set of workers so that
// slow hashing is bounded and never runs on the caller's goroutine.
type VerifierPool struct {
	jobs    chan verifyJob
	workers int
	verify  VerifyFunc
	done    chan struct{}
	log     zerolog.Logger
}

// NewVerifierPool creates a pool with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewVerifierPool(numWorkers int, verify VerifyFunc, log zerolog.Logger) *VerifierPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &VerifierPool{
		jobs:    make(chan verifyJob, channelBuffer),
		workers: numWorkers,
		verify:  verify,
		done:    make(chan struct{}),
		log:     log,
	}
}

// Start launches the workers. They stop when ctx is cancelled.
func (p *VerifierPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		close(p.done)
	}()
}

// Verify queues a comparison and waits for its result. If ctx ends first the
// call returns ctx.Err(); a comparison already running still finishes and its
// result is dropped.
func (p *VerifierPool) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	job := verifyJob{plaintext: plaintext, hash: hash, result: make(chan bool, 1)}

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-p.done:
		return false, ErrPoolStopped
	case p.jobs <- job:
		metrics.VerifierQueueDepth.Set(float64(len(p.jobs)))
	}

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-p.done:
		return false, ErrPoolStopped
	case ok := <-job.result:
		return ok, nil
	}
}

func (p *VerifierPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			metrics.VerifierQueueDepth.Set(float64(len(p.jobs)))
			start := time.Now()
			ok := p.verify(job.plaintext, job.hash)
			metrics.PasswordVerifyDuration.Observe(time.Since(start).Seconds())
			job.result <- ok
			p.log.Trace().Int("worker_id", id).Msg("password verification done")
		}
	}
}
