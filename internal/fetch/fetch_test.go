package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdata-tw/foreclosure-notices/internal/config"
)

// testConfig returns a configuration with zero retry delays so tests run
// without waiting.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.RetryAttempts = 3
	cfg.RetryMinDelay = 0
	cfg.RetryMaxDelay = 0
	return cfg
}

func TestFetchTempSuccess(t *testing.T) {
	payload := []byte("%PDF-1.4 test document body")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	d := NewDownloader(testConfig())
	path, cleanup, err := d.FetchTemp(context.Background(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, cleanup)

	assert.True(t, strings.HasSuffix(path, ".pdf"), "scratch file should carry the pdf extension, got %s", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "cleanup should remove the scratch file")
}

func TestFetchTempSendsUserAgent(t *testing.T) {
	var gotAgent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent.Store(r.Header.Get("User-Agent"))
		w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	cfg := testConfig()
	d := NewDownloader(cfg)
	_, cleanup, err := d.FetchTemp(context.Background(), server.URL)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, cfg.UserAgent, gotAgent.Load())
}

func TestFetchTempRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	d := NewDownloader(testConfig())
	path, cleanup, err := d.FetchTemp(context.Background(), server.URL)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, int32(3), hits.Load())
	assert.NotEmpty(t, path)
}

func TestFetchTempClientErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d := NewDownloader(testConfig())
	_, _, err := d.FetchTemp(context.Background(), server.URL)
	require.Error(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetchTempExhaustsRetries(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	d := NewDownloader(testConfig())
	_, _, err := d.FetchTemp(context.Background(), server.URL)
	require.Error(t, err)

	assert.Equal(t, int32(3), hits.Load())
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestFetchTempCanceledContext(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDownloader(testConfig())
	_, _, err := d.FetchTemp(ctx, server.URL)
	require.Error(t, err)

	assert.Equal(t, int32(0), hits.Load(), "canceled context should not be retried")
}

func TestJitter(t *testing.T) {
	min := 2 * time.Second
	max := 4 * time.Second

	for i := 0; i < 100; i++ {
		d := Jitter(min, max)
		assert.GreaterOrEqual(t, d, min)
		assert.LessOrEqual(t, d, max)
	}

	assert.Equal(t, min, Jitter(min, min))
	assert.Equal(t, min, Jitter(min, time.Second))
}

func TestSleepHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sleep(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)

	assert.NoError(t, Sleep(context.Background(), 0))
}
