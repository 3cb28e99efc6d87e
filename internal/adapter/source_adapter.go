package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/avast/retry-go/v4"

	m "modecitation.dev/pkg/modecitation/internal/model"
)

const (
	// DefaultFetchTimeout bounds a single HTTP attempt.
	DefaultFetchTimeout = 30 * time.Second
	// DefaultFetchAttempts is the number of HTTP attempts before giving up.
	DefaultFetchAttempts uint = 3
	// DefaultFetchDelay is the base backoff delay between attempts.
	DefaultFetchDelay = 500 * time.Millisecond
	// DefaultMaxDocumentBytes caps the size of a fetched document.
	DefaultMaxDocumentBytes int64 = 64 << 20
)

// ErrDocumentTooLarge is returned when a document exceeds the configured size cap.
var ErrDocumentTooLarge = errors.New("document exceeds size limit")

// DocumentSource reads the raw bytes of a source document.
type DocumentSource interface {
	Read(ctx context.Context, source m.Source) ([]byte, error)
}

// SourceOption configures a LocalDocumentSource.
type SourceOption func(*LocalDocumentSource)

// WithHTTPClient replaces the HTTP client used for remote sources.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(s *LocalDocumentSource) {
		s.client = client
	}
}

// WithFetchTimeout sets the per-attempt timeout of remote fetches.
func WithFetchTimeout(timeout time.Duration) SourceOption {
	return func(s *LocalDocumentSource) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithFetchAttempts sets how many times a remote fetch is attempted.
func WithFetchAttempts(attempts uint) SourceOption {
	return func(s *LocalDocumentSource) {
		if attempts > 0 {
			s.attempts = attempts
		}
	}
}

// WithFetchDelay sets the base delay between remote fetch attempts.
func WithFetchDelay(delay time.Duration) SourceOption {
	return func(s *LocalDocumentSource) {
		s.delay = delay
	}
}

// WithMaxDocumentBytes caps the number of bytes read from any source.
func WithMaxDocumentBytes(limit int64) SourceOption {
	return func(s *LocalDocumentSource) {
		if limit > 0 {
			s.maxBytes = limit
		}
	}
}

// LocalDocumentSource reads documents from the filesystem or over HTTP(S).
type LocalDocumentSource struct {
	client   *http.Client
	timeout  time.Duration
	attempts uint
	delay    time.Duration
	maxBytes int64
}

// NewLocalDocumentSource constructs a LocalDocumentSource.
func NewLocalDocumentSource(opts ...SourceOption) *LocalDocumentSource {
	s := &LocalDocumentSource{
		client:   http.DefaultClient,
		timeout:  DefaultFetchTimeout,
		attempts: DefaultFetchAttempts,
		delay:    DefaultFetchDelay,
		maxBytes: DefaultMaxDocumentBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Read returns the content of source.
func (s *LocalDocumentSource) Read(ctx context.Context, source m.Source) ([]byte, error) {
	if source.IsRemote() {
		return s.fetch(ctx, string(source))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - sources are operator supplied
	f, err := os.Open(string(source))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", source, err)
	}
	defer f.Close()

	return s.readLimited(f, string(source))
}

func (s *LocalDocumentSource) fetch(ctx context.Context, url string) ([]byte, error) {
	data, err := retry.DoWithData(
		func() ([]byte, error) {
			return s.fetchOnce(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("fetch failed, retrying", "url", url, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	return data, nil
}

func (s *LocalDocumentSource) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}

	req.Header.Set("Accept", "application/xml, text/xml;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		return nil, retry.Unrecoverable(fmt.Errorf("unexpected status %s", resp.Status))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := s.readLimited(resp.Body, url)
	if errors.Is(err, ErrDocumentTooLarge) {
		return nil, retry.Unrecoverable(err)
	}

	return data, err
}

func (s *LocalDocumentSource) readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%s: %w (%d bytes)", name, ErrDocumentTooLarge, s.maxBytes)
	}

	return data, nil
}
