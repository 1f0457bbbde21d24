package apiclient

import (
	"net/http"
	"time"

	"github.com/SergeyShmatok/postagg/shared/logger"
)

// loggingTransport logs every exchange at debug level.
type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.Log.Debug("http request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err,
			"duration", time.Since(start),
		)
		return nil, err
	}

	logger.Log.Debug("http request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"content_length", resp.ContentLength,
		"duration", time.Since(start),
	)
	return resp, nil
}
