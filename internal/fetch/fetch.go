// Package fetch downloads recitation audio and timing assets over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"
)

const (
	downloadTimeout = 10 * time.Minute
	userAgent       = "recitesync/1.0"
)

// ProgressFunc is called with (bytesRead, totalBytes) during download.
// totalBytes is -1 when the server does not report a length.
type ProgressFunc func(bytesRead, totalBytes int64)

// progressReader wraps an io.Reader and reports progress.
type progressReader struct {
	reader   io.Reader
	total    int64
	read     int64
	callback ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.read += int64(n)
	if pr.callback != nil {
		pr.callback(pr.read, pr.total)
	}
	return n, err
}

// Options configures a download.
type Options struct {
	MaxRetries      int
	RateLimitPerMin int
	Backoff         time.Duration // first retry delay, doubled per attempt
	Client          *http.Client
	Progress        ProgressFunc
}

// StatusError reports a non-200 response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Status)
}

// retryable reports whether another attempt could succeed.
func (e *StatusError) retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Download fetches url into dest, retrying transient failures with
// exponential backoff. The file is written to a temporary sibling and
// renamed into place only once complete.
func Download(ctx context.Context, url, dest string, opts Options) (int64, error) {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: downloadTimeout}
	}
	limit := rate.Inf
	if opts.RateLimitPerMin > 0 {
		limit = rate.Limit(float64(opts.RateLimitPerMin) / 60.0)
	}
	limiter := rate.NewLimiter(limit, 1)

	var lastErr error
	for attempt := 0; attempt < opts.MaxRetries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("rate limiter: %w", err)
		}

		n, err := downloadOnce(ctx, url, dest, opts)
		if err == nil {
			slog.Info("download complete", "url", url, "bytes", n, "path", dest)
			return n, nil
		}
		lastErr = err

		var se *StatusError
		if errors.As(err, &se) && !se.retryable() {
			return 0, err
		}
		if attempt < opts.MaxRetries-1 {
			backoff := opts.Backoff << uint(attempt)
			slog.Warn("download failed, retrying",
				"url", url,
				"attempt", attempt+1,
				"backoff", backoff,
				"err", err)

			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return 0, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return 0, fmt.Errorf("download %s failed after %d attempts: %w", url, opts.MaxRetries, lastErr)
}

func downloadOnce(ctx context.Context, url, dest string, opts Options) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := opts.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return 0, &StatusError{URL: url, Status: resp.StatusCode}
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	body := &progressReader{reader: resp.Body, total: resp.ContentLength, callback: opts.Progress}
	n, err := io.Copy(tmp, body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", dest, err)
	}
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		return 0, fmt.Errorf("short body: got %d of %d bytes", n, resp.ContentLength)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, fmt.Errorf("rename into place: %w", err)
	}
	return n, nil
}
