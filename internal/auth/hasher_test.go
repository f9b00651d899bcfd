package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func startHasher(t *testing.T, workers int) *Hasher {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHasher(workers, bcrypt.MinCost, zerolog.Nop())
	h.Start(ctx)
	return h
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := startHasher(t, 2)

	digest, err := h.Hash(context.Background(), "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.True(t, h.Verify(context.Background(), "s3cret", digest))
	assert.False(t, h.Verify(context.Background(), "wrong", digest))
}

func TestHasher_ConcurrentRequests(t *testing.T) {
	h := startHasher(t, 2)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			digest, err := h.Hash(context.Background(), "concurrent")
			assert.NoError(t, err)
			assert.True(t, h.Verify(context.Background(), "concurrent", digest))
		}()
	}
	wg.Wait()
}

func TestHasher_CancelledContext(t *testing.T) {
	h := startHasher(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "s3cret")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, h.Verify(ctx, "s3cret", "whatever"))
}

func TestHasher_DefaultWorkerCount(t *testing.T) {
	h := NewHasher(0, bcrypt.MinCost, zerolog.Nop())
	assert.Equal(t, defaultWorkers, h.numWorkers)
}
