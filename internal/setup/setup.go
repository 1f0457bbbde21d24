package setup

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SergeyShmatok/postagg/internal/apiclient"
	"github.com/SergeyShmatok/postagg/internal/fixture"
	"github.com/SergeyShmatok/postagg/internal/handler"
	"github.com/SergeyShmatok/postagg/internal/metrics"
	"github.com/SergeyShmatok/postagg/internal/router"
	"github.com/SergeyShmatok/postagg/internal/service"
	"github.com/SergeyShmatok/postagg/shared/config"
	"github.com/SergeyShmatok/postagg/shared/logger"
)

// Dependencies struct to hold all initialized dependencies of the aggregator.
// Everything is built once and shared by reference.
type Dependencies struct {
	Config     *config.Config
	Client     *apiclient.APIClient
	Metrics    *metrics.Collector
	Aggregator *service.Aggregator

	shutdownTracing func(context.Context) error
}

// SetupDependencies initializes all dependencies required for one pipeline run.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	shutdown, err := initTracing(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	collector := metrics.New()
	client := apiclient.New(cfg.BaseURL, apiclient.Options{
		ConnectTimeout:        cfg.ConnectTimeout,
		MaxConcurrentRequests: cfg.MaxConcurrentRequests,
		Observer:              collector,
	})

	return &Dependencies{
		Config:          cfg,
		Client:          client,
		Metrics:         collector,
		Aggregator:      service.NewAggregator(client, collector),
		shutdownTracing: shutdown,
	}, nil
}

// Cleanup pushes metrics when a Pushgateway is configured and flushes traces.
func (d *Dependencies) Cleanup(ctx context.Context) error {
	var errs []error
	if url := d.Config.Metrics.PushgatewayURL; url != "" {
		if err := d.Metrics.Push(ctx, url, d.Config.Metrics.Job); err != nil {
			errs = append(errs, fmt.Errorf("push metrics: %w", err))
		} else {
			logger.Log.Debug("metrics pushed", "url", url, "job", d.Config.Metrics.Job)
		}
	}
	if d.shutdownTracing != nil {
		if err := d.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
	}
	d.Client.HttpClient.CloseIdleConnections()
	return errors.Join(errs...)
}

// SetupSlowAPI builds the fixture server handler.
func SetupSlowAPI(cfg *config.Config) (http.Handler, error) {
	store, err := fixture.Load(cfg.SlowAPI.FixturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}

	h := handler.New(store, cfg.SlowAPI.Delay)
	return router.New(h, router.Options{
		AllowedOrigins: cfg.SlowAPI.AllowedOrigins,
		Registry:       prometheus.NewRegistry(),
	}), nil
}
