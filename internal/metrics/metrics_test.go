package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	c := New()

	c.ObserveFetch("author", "ok", 10*time.Millisecond)
	c.ObserveFetch("author", "ok", 20*time.Millisecond)
	c.ObserveFetch("author", "request_failed", time.Millisecond)
	c.ObserveFetch("posts", "ok", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.fetchesTotal.WithLabelValues("author", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fetchesTotal.WithLabelValues("author", "request_failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fetchesTotal.WithLabelValues("posts", "ok")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.fetchDuration))
}

func TestObserveRun(t *testing.T) {
	c := New()

	c.ObserveRun("Completed", 3, time.Second)
	c.ObserveRun("Failed", 0, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("Completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("Failed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.aggregatesTotal))
}

func TestPush(t *testing.T) {
	var gotPath, gotBody string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	c := New()
	c.ObserveRun("Completed", 1, time.Second)

	require.NoError(t, c.Push(context.Background(), gateway.URL, "post_aggregator"))
	assert.Equal(t, "/metrics/job/post_aggregator", gotPath)
	assert.Contains(t, gotBody, "postagg_runs_total")
}

func TestPushGatewayError(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer gateway.Close()

	assert.Error(t, New().Push(context.Background(), gateway.URL, "post_aggregator"))
}
