package fetch_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/seaward/citetrack"
	"github.com/seaward/citetrack/fetch"
	citehttp "github.com/seaward/citetrack/http"
	"github.com/seaward/citetrack/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDelays() []time.Duration { return []time.Duration{} }

func refs(urls ...string) []*citetrack.Citation {
	out := make([]*citetrack.Citation, len(urls))
	for i, u := range urls {
		out[i] = &citetrack.Citation{DocPath: "doc.pdf", URL: u}
	}
	return out
}

func TestEngine_FetchAll(t *testing.T) {
	t.Parallel()

	t.Run("fetches and stores cleaned content with domain prefix", func(t *testing.T) {
		t.Parallel()

		e := &fetch.Engine{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html><body>La embarcación fue sancionada.</body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*citetrack.ExtractResult, error) {
					return &citetrack.ExtractResult{Text: "La embarcación fue sancionada."}, nil
				},
			},
			RetryDelays: noDelays(),
		}

		var persisted []*citetrack.Citation
		persist := func(_ int, citations []*citetrack.Citation) error {
			persisted = append(persisted, citations...)
			return nil
		}

		result, err := e.FetchAll(context.Background(), refs("https://news.example.pe/nota/1"), persist, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Fetched)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, 1, result.Batches)
		require.Len(t, persisted, 1)
		assert.Equal(t, "[Source: news.example.pe] La embarcación fue sancionada.", persisted[0].Content)
		assert.Equal(t, "doc.pdf", persisted[0].DocPath)
		assert.False(t, persisted[0].FetchedAt.IsZero())
	})

	t.Run("records marker content for failed URLs and keeps going", func(t *testing.T) {
		t.Parallel()

		e := &fetch.Engine{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if strings.Contains(url, "broken") {
						return "", &citehttp.StatusError{URL: url, StatusCode: 404}
					}
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*citetrack.ExtractResult, error) {
					return &citetrack.ExtractResult{Text: "ok"}, nil
				},
			},
			RetryDelays: noDelays(),
		}

		var persisted []*citetrack.Citation
		persist := func(_ int, citations []*citetrack.Citation) error {
			persisted = append(persisted, citations...)
			return nil
		}

		result, err := e.FetchAll(context.Background(),
			refs("https://a.example.com/ok", "https://b.example.com/broken"), persist, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Fetched)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, persisted, 2)
		assert.Equal(t, "Error: HTTP 404", persisted[1].Content)
		assert.True(t, persisted[1].Failed())
	})

	t.Run("splits work into batches and persists each one", func(t *testing.T) {
		t.Parallel()

		e := &fetch.Engine{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*citetrack.ExtractResult, error) {
					return &citetrack.ExtractResult{Text: "t"}, nil
				},
			},
			Config:      citetrack.Config{BatchSize: 2, Workers: 2},
			RetryDelays: noDelays(),
		}

		var mu sync.Mutex
		batchSizes := map[int]int{}
		persist := func(batch int, citations []*citetrack.Citation) error {
			mu.Lock()
			defer mu.Unlock()
			batchSizes[batch] = len(citations)
			return nil
		}

		urls := make([]string, 5)
		for i := range urls {
			urls[i] = fmt.Sprintf("https://example.com/%d", i)
		}
		result, err := e.FetchAll(context.Background(), refs(urls...), persist, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Batches)
		assert.Equal(t, map[int]int{1: 2, 2: 2, 3: 1}, batchSizes)
	})

	t.Run("preserves input order within a batch", func(t *testing.T) {
		t.Parallel()

		e := &fetch.Engine{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					// Make earlier URLs finish later.
					if strings.HasSuffix(url, "/0") {
						time.Sleep(20 * time.Millisecond)
					}
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*citetrack.ExtractResult, error) {
					return &citetrack.ExtractResult{Text: "t"}, nil
				},
			},
			Config:      citetrack.Config{Workers: 4},
			RetryDelays: noDelays(),
		}

		var persisted []*citetrack.Citation
		persist := func(_ int, citations []*citetrack.Citation) error {
			persisted = append(persisted, citations...)
			return nil
		}

		urls := []string{"https://example.com/0", "https://example.com/1", "https://example.com/2"}
		_, err := e.FetchAll(context.Background(), refs(urls...), persist, nil)

		require.NoError(t, err)
		require.Len(t, persisted, 3)
		for i, c := range persisted {
			assert.Equal(t, urls[i], c.URL)
		}
	})

	t.Run("stops when persist fails", func(t *testing.T) {
		t.Parallel()

		e := &fetch.Engine{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*citetrack.ExtractResult, error) {
					return &citetrack.ExtractResult{Text: "t"}, nil
				},
			},
			Config:      citetrack.Config{BatchSize: 1},
			RetryDelays: noDelays(),
		}

		persist := func(batch int, _ []*citetrack.Citation) error {
			if batch == 2 {
				return errors.New("disk full")
			}
			return nil
		}

		result, err := e.FetchAll(context.Background(),
			refs("https://example.com/1", "https://example.com/2", "https://example.com/3"), persist, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "persist batch 2")
		assert.Equal(t, 2, result.Batches)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		e := &fetch.Engine{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*citetrack.ExtractResult, error) {
					return &citetrack.ExtractResult{Text: "t"}, nil
				},
			},
			Config:      citetrack.Config{Workers: 1},
			RetryDelays: noDelays(),
		}

		var mu sync.Mutex
		var events []fetch.ProgressType
		progress := func(event fetch.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event.Type)
		}

		_, err := e.FetchAll(context.Background(), refs("https://example.com/1"), nil, progress)

		require.NoError(t, err)
		assert.Equal(t, []fetch.ProgressType{fetch.ProgressStarted, fetch.ProgressCompleted, fetch.ProgressFinished}, events)
	})

	t.Run("waits on the domain limiter before fetching", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		e := &fetch.Engine{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*citetrack.ExtractResult, error) {
					return &citetrack.ExtractResult{Text: "t"}, nil
				},
			},
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					mu.Lock()
					defer mu.Unlock()
					domains = append(domains, domain)
					return nil
				},
			},
			Config:      citetrack.Config{Workers: 1},
			RetryDelays: noDelays(),
		}

		_, err := e.FetchAll(context.Background(), refs("https://news.example.pe/nota/1"), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"news.example.pe"}, domains)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		e := &fetch.Engine{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, _ string) (string, error) {
					return "", ctx.Err()
				},
			},
			Extractor:   &mock.Extractor{},
			RetryDelays: noDelays(),
		}

		_, err := e.FetchAll(ctx, refs("https://example.com/1"), nil, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBuildContent(t *testing.T) {
	t.Parallel()

	t.Run("prefixes the source domain", func(t *testing.T) {
		t.Parallel()
		got := fetch.BuildContent("andina.pe", "texto de la nota", 5000)
		assert.Equal(t, "[Source: andina.pe] texto de la nota", got)
	})

	t.Run("truncates text to the character budget", func(t *testing.T) {
		t.Parallel()
		got := fetch.BuildContent("andina.pe", strings.Repeat("a", 6000), 5000)
		assert.Equal(t, "[Source: andina.pe] "+strings.Repeat("a", 5000), got)
	})

	t.Run("truncates on rune boundaries", func(t *testing.T) {
		t.Parallel()
		got := fetch.BuildContent("andina.pe", "ñañañ", 3)
		assert.Equal(t, "[Source: andina.pe] ñañ", got)
	})
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "context deadline exceeded (Client.Timeout exceeded)" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return false }

var _ net.Error = timeoutError{}

func TestMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "http status",
			err:  &citehttp.StatusError{URL: "https://example.com", StatusCode: 503},
			want: "Error: HTTP 503",
		},
		{
			name: "wrapped http status",
			err:  fmt.Errorf("fetch: %w", &citehttp.StatusError{StatusCode: 404}),
			want: "Error: HTTP 404",
		},
		{
			name: "timeout",
			err:  timeoutError{},
			want: "Error: Request timed out",
		},
		{
			name: "context deadline",
			err:  fmt.Errorf("fetch: %w", context.DeadlineExceeded),
			want: "Error: Request timed out",
		},
		{
			name: "too many redirects",
			err:  errors.New(`Get "https://example.com": stopped after 10 redirects`),
			want: "Error: Too many redirects",
		},
		{
			name: "generic failure",
			err:  errors.New("connection refused"),
			want: "Error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fetch.Marker(tt.err))
		})
	}
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns immediately on success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, err := fetch.FetchWithRetry(context.Background(), "https://example.com",
			func(_ context.Context, _ string) (string, error) {
				calls++
				return "<html></html>", nil
			}, fetch.DefaultRetryDelays())

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until a delay remains", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := fetch.FetchWithRetry(context.Background(), "https://example.com",
			func(_ context.Context, _ string) (string, error) {
				calls++
				return "", errors.New("boom")
			}, []time.Duration{0, 0, 0})

		require.Error(t, err)
		assert.Equal(t, 4, calls)
	})

	t.Run("recovers after transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, err := fetch.FetchWithRetry(context.Background(), "https://example.com",
			func(_ context.Context, _ string) (string, error) {
				calls++
				if calls < 3 {
					return "", errors.New("boom")
				}
				return "ok", nil
			}, []time.Duration{0, 0, 0})

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetch.FetchWithRetry(ctx, "https://example.com",
			func(_ context.Context, _ string) (string, error) {
				return "", errors.New("boom")
			}, []time.Duration{time.Second})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("spaces out requests to the same domain", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(50)

		start := time.Now()
		for range 3 {
			require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		}
		// Burst of 1: second and third waits each take ~20ms at 50 rps.
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("does not couple different domains", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(1)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))
		require.NoError(t, limiter.Wait(context.Background(), "b.example.com"))
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("non-positive rate disables limiting", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(0)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(0.001)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.Error(t, limiter.Wait(ctx, "example.com"))
	})
}
