package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/SergeyShmatok/postagg/internal/setup"
	"github.com/SergeyShmatok/postagg/shared/config"
	"github.com/SergeyShmatok/postagg/shared/domain"
	internal_errors "github.com/SergeyShmatok/postagg/shared/errors"
	"github.com/SergeyShmatok/postagg/shared/logger"
)

const cleanupTimeout = 5 * time.Second

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	logger.Initialize(cfg.Log.Level, cfg.Log.JSON)

	os.Exit(run(cfg, os.Stdout, os.Stderr))
}

// run executes the pipeline once and waits for it to finish.
func run(cfg *config.Config, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "setup failed: %v\n", err)
		return 1
	}
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()
		if err := deps.Cleanup(cleanupCtx); err != nil {
			logger.Log.Warn("cleanup failed", "error", err)
		}
	}()

	posts, err := deps.Aggregator.Run(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "pipeline failed (%s): %v\n", internal_errors.Kind(err), err)
		return 1
	}
	if err := printResult(stdout, posts); err != nil {
		fmt.Fprintf(stderr, "cannot print result: %v\n", err)
		return 1
	}
	return 0
}

func printResult(w io.Writer, posts []domain.PostWithComments) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(posts)
}
