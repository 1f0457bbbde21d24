package apiclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	internal_errors "github.com/SergeyShmatok/postagg/shared/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/semaphore"
)

// Response is a completed HTTP exchange with the body fully read.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// FetchObserver is notified once per typed load.
type FetchObserver interface {
	ObserveFetch(resource, outcome string, duration time.Duration)
}

type Options struct {
	// ConnectTimeout bounds connection establishment only; reading the response has no deadline.
	ConnectTimeout        time.Duration
	MaxConcurrentRequests int
	Observer              FetchObserver
}

// APIClient talks to the posts service. It is shared read-only by all concurrent loads.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client

	sem      *semaphore.Weighted
	observer FetchObserver
}

// New creates a client for interacting with the posts service.
func New(baseURL string, opts Options) *APIClient {
	if opts.MaxConcurrentRequests < 1 {
		opts.MaxConcurrentRequests = 64
	}

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   opts.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        opts.MaxConcurrentRequests,
		MaxIdleConnsPerHost: opts.MaxConcurrentRequests,
		IdleConnTimeout:     90 * time.Second,
	}

	return &APIClient{
		BaseURL: baseURL,
		HttpClient: &http.Client{
			Transport: otelhttp.NewTransport(&loggingTransport{next: base}),
		},
		sem:      semaphore.NewWeighted(int64(opts.MaxConcurrentRequests)),
		observer: opts.Observer,
	}
}

// Enqueue issues one GET in the background and calls exactly one of the handlers
// when it completes.
func (c *APIClient) Enqueue(ctx context.Context, url string, onResponse func(*Response), onFailure func(error)) {
	go func() {
		resp, err := c.get(ctx, url)
		if err != nil {
			onFailure(err)
			return
		}
		onResponse(resp)
	}()
}

// Fetch performs one GET and returns once the transport has signalled completion.
// Transport failures are reported as *errors.TransportError.
func (c *APIClient) Fetch(ctx context.Context, url string) (*Response, error) {
	type outcome struct {
		resp *Response
		err  error
	}
	done := make(chan outcome, 1)
	var once sync.Once
	resume := func(o outcome) {
		once.Do(func() { done <- o })
	}

	c.Enqueue(ctx, url,
		func(resp *Response) { resume(outcome{resp: resp}) },
		func(err error) { resume(outcome{err: &internal_errors.TransportError{URL: url, Err: err}}) },
	)

	o := <-done
	return o.resp, o.err
}

func (c *APIClient) get(ctx context.Context, url string) (*Response, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}, nil
}
