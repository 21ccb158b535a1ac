package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mordilloSan/runlog/internal/config"
	"github.com/mordilloSan/runlog/logger"
)

// Example program for runlog. Usage:
//
//	./runlog [-config runlog.toml] [-workers 4]
func main() {
	configPath := flag.String("config", "runlog.toml", "Path to configuration file")
	workers := flag.Int("workers", 4, "Number of goroutines logging concurrently")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New(cfg.Options(os.Stdout)...)
	if cfg.Logger.BasePath == "" {
		// Show paths relative to this module by default.
		if _, file, _, ok := runtime.Caller(0); ok {
			log.SetBasePath(filepath.Dir(file))
		}
	}
	if cfg.Logger.File {
		if err := log.Initialize(); err != nil {
			log.Warningf("file logging disabled: %v", err)
		} else {
			log.Info("logging to file "+log.FilePath(), logger.Here())
		}
	}
	defer log.Close()
	logger.SetDefault(log)

	log.Debugf("starting at %v", time.Now())
	log.Info("hello world", logger.Here())
	log.Warning("be careful", logger.Here())
	log.Todo("wire the real workload", logger.Here())

	// Default-logger functions capture the call site themselves.
	logger.Status(200, "GET /api/users")
	logger.Status(404, "GET /api/missing")
	logger.Status(503, "GET /api/upstream")

	if err := run(context.Background(), log, *workers); err != nil {
		ferr := log.Fatalf("workers failed: %v", err)
		log.Close()
		os.Exit(exitCode(ferr))
	}
}

// exitCode turns the signal returned by a FATAL record into a process exit
// status: 1 for unrecoverable conditions, 0 for nil, 2 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, logger.ErrUnrecoverable):
		return 1
	default:
		return 2
	}
}

// run starts n workers that each log a few records concurrently.
func run(ctx context.Context, log *logger.Logger, n int) error {
	g, ctx := errgroup.WithContext(ctx)
	for id := range n {
		g.Go(func() error {
			for step := range 3 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				log.Infof("worker %d step %d", id, step)
			}
			return nil
		})
	}
	return g.Wait()
}
