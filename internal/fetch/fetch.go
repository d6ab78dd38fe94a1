// Package fetch downloads notice PDFs to scratch files with bounded
// retries.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/courtdata-tw/foreclosure-notices/internal/config"
)

// DefaultTimeout bounds one download attempt.
const DefaultTimeout = 60 * time.Second

// Downloader fetches notice PDFs over HTTP. Attempts that fail with a
// transient error are retried after a randomized delay inside the
// configured window; client errors are returned immediately.
type Downloader struct {
	client        *http.Client
	userAgent     string
	attempts      int
	retryMinDelay time.Duration
	retryMaxDelay time.Duration
}

// NewDownloader creates a Downloader from the pipeline configuration.
func NewDownloader(cfg *config.Config) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(request *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		userAgent:     cfg.UserAgent,
		attempts:      cfg.RetryAttempts,
		retryMinDelay: cfg.RetryMinDelay,
		retryMaxDelay: cfg.RetryMaxDelay,
	}
}

// FetchTemp downloads url into a scratch file and returns the file's path
// together with a cleanup function that removes it. On failure no file is
// left behind.
func (d *Downloader) FetchTemp(ctx context.Context, url string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "notice-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("create scratch file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()

	attempts := d.attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := Sleep(ctx, Jitter(d.retryMinDelay, d.retryMaxDelay)); err != nil {
				os.Remove(path)
				return "", nil, err
			}
		}

		err := d.fetchAttempt(ctx, url, path)
		if err == nil {
			return path, func() { os.Remove(path) }, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			os.Remove(path)
			return "", nil, err
		}
	}

	os.Remove(path)
	return "", nil, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

// fetchAttempt performs a single download attempt, rewriting path.
func (d *Downloader) fetchAttempt(ctx context.Context, url, path string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("User-Agent", d.userAgent)

	response, err := d.client.Do(request)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 500 {
		return &retryableHTTPError{StatusCode: response.StatusCode, URL: url}
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d for %s", response.StatusCode, url)
	}

	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file %s: %w", path, err)
	}
	if _, err := io.Copy(outputFile, response.Body); err != nil {
		outputFile.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return outputFile.Close()
}

// retryableHTTPError represents an HTTP error that should trigger a retry.
type retryableHTTPError struct {
	StatusCode int
	URL        string
}

func (e *retryableHTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// isRetryableError returns true if the error warrants a retry attempt.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Retry on 5xx HTTP errors
	var httpErr *retryableHTTPError
	if errors.As(err, &httpErr) {
		return true
	}

	// Retry on network errors (connection reset, timeout, etc.)
	errMsg := err.Error()
	retryablePatterns := []string{
		"connection reset",
		"connection refused",
		"timeout",
		"EOF",
		"broken pipe",
		"temporary failure",
	}
	for _, pattern := range retryablePatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}

// Jitter returns a uniform random duration in [min, max].
func Jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}

// Sleep waits for the duration unless the context ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
