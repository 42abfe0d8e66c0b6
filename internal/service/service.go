// Package service carries the startup boilerplate shared by every binary:
// flag parsing, .env loading, and graceful HTTP serving.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Flags holds the standard service CLI surface.
type Flags struct {
	Host string
	Port int
}

// ParseFlags reads --host/--port (every service accepts the same pair) and
// loads a .env file when present.
func ParseFlags(defaultPort int) Flags {
	host := pflag.String("host", "0.0.0.0", "interface to bind")
	port := pflag.Int("port", defaultPort, "port to listen on")
	pflag.Parse()

	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	return Flags{Host: *host, Port: *port}
}

// Addr renders the listen address.
func (f Flags) Addr() string { return fmt.Sprintf("%s:%d", f.Host, f.Port) }

// Serve runs the engine until SIGINT/SIGTERM, then drains in-flight requests.
func Serve(r *gin.Engine, flags Flags, logger *zap.Logger) error {
	srv := &http.Server{Addr: flags.Addr(), Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", flags.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("service: listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("service: shutdown: %w", err)
	}
	return nil
}
