package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-blog/cmd/internal/bootstrap"
	"github.com/goliatone/go-blog/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	opts := bootstrap.RegisterFlags(fs)
	addr := fs.String("addr", "", "Listen address (overrides BLOG_HTTP_ADDR)")
	basePath := fs.String("base-path", "", "Path prefix for the API routes (defaults to /api)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := bootstrap.LoadConfig(*opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if value := strings.TrimSpace(*addr); value != "" {
		cfg.HTTP.Addr = value
	}
	if value := strings.TrimSpace(*basePath); value != "" {
		cfg.HTTP.BasePath = value
	}

	module, err := bootstrap.NewModule(cfg)
	if err != nil {
		return err
	}
	handler, err := module.HTTPHandler()
	if err != nil {
		return err
	}

	logger := logging.HTTPLogger(module.LoggerProvider())
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http.server.started", "addr", cfg.HTTP.Addr, "remote", module.RemoteEnabled())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("http.server.stopping")
	return server.Shutdown(shutdownCtx)
}
