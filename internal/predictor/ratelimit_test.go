package predictor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/biblio/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Burst(t *testing.T) {
	rl := newRateLimiter(3)
	defer rl.stop()

	assert.True(t, rl.tryAcquire())
	assert.True(t, rl.tryAcquire())
	assert.True(t, rl.tryAcquire())
	assert.False(t, rl.tryAcquire())
}

func TestRateLimiter_WaitCanceled(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.stop()
	require.True(t, rl.tryAcquire())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := rl.wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := newRateLimiter(1200) // one token every 50ms
	defer rl.stop()

	rl.mu.Lock()
	rl.tokens = 0
	rl.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	require.NoError(t, rl.wait(ctx))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := newRateLimiter(10)
	rl.stop()
	assert.NotPanics(t, rl.stop)
}

func TestClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"category": "Romance", "confidenceScore": 0.9}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, RequestsPerMinute: 1})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Classify(context.Background(), "", "Une histoire d'amour")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Classify(ctx, "", "Une autre histoire d'amour")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNetwork)
}
