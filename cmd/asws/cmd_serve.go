package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbkclanna/asws/internal/location"
	"github.com/fbkclanna/asws/internal/workspace"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve project and build information over HTTP",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:8750)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	addr := e.cfg.Serve.Addr
	if cmd.Flags().Changed("addr") {
		addr, _ = cmd.Flags().GetString("addr")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n := e.ws.UpdateProjects(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newServeMux(e),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info("server starting", zap.String("addr", addr), zap.Int("projects", n))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	e.log.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newServeMux(e *env) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintln(w, "OK")
	})
	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		projects := e.ws.Projects(r.Context())
		if projects == nil {
			projects = []*workspace.Project{}
		}
		respondJSON(w, e.log, http.StatusOK, projects)
	})
	mux.HandleFunc("POST /scan", func(w http.ResponseWriter, r *http.Request) {
		n := e.ws.UpdateProjects(r.Context())
		respondJSON(w, e.log, http.StatusOK, map[string]any{"projects": n, "scan_id": e.ws.ScanID()})
	})
	mux.HandleFunc("GET /cbuild", func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("path")
		if raw == "" {
			respondError(w, e.log, http.StatusBadRequest, "missing path parameter")
			return
		}
		loc, err := location.Abs(raw)
		if err != nil {
			respondError(w, e.log, http.StatusBadRequest, err.Error())
			return
		}
		info := e.ws.CBuildInformation(r.Context(), loc)
		if info == nil {
			respondError(w, e.log, http.StatusNotFound, "no build information for "+loc.String())
			return
		}
		respondJSON(w, e.log, http.StatusOK, info)
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(e.reg, promhttp.HandlerOpts{}))
	return mux
}

func respondJSON(w http.ResponseWriter, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := writeJSON(w, v); err != nil {
		log.Warn("failed to write response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, log *zap.Logger, status int, msg string) {
	respondJSON(w, log, status, map[string]string{"error": msg})
}
