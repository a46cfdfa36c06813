// Command gen-wardrobe registers a synthetic wardrobe against a running
// capsule service, fetches a calendar, and verifies the result.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/capsule/internal/wardrobegen"
	"github.com/okian/capsule/pkg/logger"
)

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:9080", "base URL of the capsule service")
	numItems := flag.Int("items", wardrobegen.DefaultNumItems, "number of synthetic items to register")
	embeddingDim := flag.Int("dim", wardrobegen.DefaultEmbeddingDim, "style embedding dimension")
	days := flag.Int("days", wardrobegen.DefaultDays, "calendar length to request")
	timeout := flag.Duration("timeout", wardrobegen.DefaultTimeout, "per-request timeout")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	cfg := wardrobegen.NewConfig(*baseURL)
	cfg.NumItems = *numItems
	cfg.EmbeddingDim = *embeddingDim
	cfg.Days = *days
	cfg.Timeout = *timeout

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	runner := wardrobegen.NewRunner(cfg)
	if err := runner.Run(ctx); err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "run succeeded")
}
