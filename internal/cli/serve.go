package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newServeCmd creates the serve command, a small static file server for
// browsing generated plots. Interactive HTML plots need to be served over
// HTTP for the zoom script to work in some browsers' local-file sandboxes.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve generated plots over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// runServe blocks until the context is canceled or the listener fails.
func runServe(ctx context.Context, dir, addr string) error {
	logger := loggerFromContext(ctx)

	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Handle("/*", http.FileServer(http.Dir(dir)))

	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("Serving %s on %s", dir, addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger tags every request with a UUID and logs method, path, and
// elapsed time at debug level.
func requestLogger(logger *charmlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request",
				"id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"elapsed", time.Since(start).Round(time.Millisecond))
		})
	}
}
