package auth

import (
	"context"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	queueBuffer    = 64
)

type hashJob struct {
	plaintext string
	reply     chan hashResult
}

type verifyJob struct {
	plaintext string
	digest    string
	reply     chan bool
}

type hashResult struct {
	digest string
	err    error
}

// Hasher schedules bcrypt work on a fixed pool of workers so that CPU-heavy
// hashing never blocks the handling of unrelated in-flight requests. Callers
// await the result on a reply channel and honour context cancellation.
type Hasher struct {
	numWorkers int
	hashJobs   chan hashJob
	verifyJobs chan verifyJob
	cost       int
	log        zerolog.Logger
}

// NewHasher creates a Hasher with numWorkers workers hashing at the given
// bcrypt cost. If numWorkers <= 0, defaultWorkers is used.
func NewHasher(numWorkers, cost int, log zerolog.Logger) *Hasher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Hasher{
		numWorkers: numWorkers,
		hashJobs:   make(chan hashJob, queueBuffer),
		verifyJobs: make(chan verifyJob, queueBuffer),
		cost:       cost,
		log:        log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (h *Hasher) Start(ctx context.Context) {
	for i := 0; i < h.numWorkers; i++ {
		go h.runWorker(ctx)
	}
}

// Hash computes a bcrypt digest on a pool worker and waits for the result or
// context cancellation, whichever comes first.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	reply := make(chan hashResult, 1)
	select {
	case h.hashJobs <- hashJob{plaintext: plaintext, reply: reply}:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case res := <-reply:
		return res.digest, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Verify compares plaintext against digest on a pool worker. A cancelled
// context counts as a failed verification.
func (h *Hasher) Verify(ctx context.Context, plaintext, digest string) bool {
	reply := make(chan bool, 1)
	select {
	case h.verifyJobs <- verifyJob{plaintext: plaintext, digest: digest, reply: reply}:
	case <-ctx.Done():
		return false
	}

	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

func (h *Hasher) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-h.hashJobs:
			digest, err := HashPassword(job.plaintext, h.cost)
			if err != nil {
				h.log.Error().Err(err).Msg("password hashing failed")
			}
			job.reply <- hashResult{digest: digest, err: err}
		case job := <-h.verifyJobs:
			job.reply <- VerifyPassword(job.plaintext, job.digest)
		}
	}
}
