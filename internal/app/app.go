package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/orgball2608/insta-engagement-ingest/internal/ingest"
	"github.com/orgball2608/insta-engagement-ingest/internal/ingest/ingestimpl"
	"github.com/orgball2608/insta-engagement-ingest/internal/instagram/instagramimpl"
	"github.com/orgball2608/insta-engagement-ingest/internal/legacy/legacypg"
	"github.com/orgball2608/insta-engagement-ingest/internal/metrics"
	"github.com/orgball2608/insta-engagement-ingest/internal/ratelimit"
	"github.com/orgball2608/insta-engagement-ingest/internal/report"
	repositories "github.com/orgball2608/insta-engagement-ingest/internal/repositories/fx"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/post"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/profile"
	"github.com/orgball2608/insta-engagement-ingest/internal/telegram/telegramimpl"
	"github.com/orgball2608/insta-engagement-ingest/internal/timeline/timelineimpl"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"github.com/orgball2608/insta-engagement-ingest/pkg/mongodb"
	"go.uber.org/fx"
)

// Core wires the clients, the document store and the ingest service.
var Core = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		mongodb.New,
		report.New,
	),
	ratelimit.Module,
	instagramimpl.Module,
	timelineimpl.Module,
	telegramimpl.Module,
	repositories.Module,
	ingestimpl.Module,
	fx.Invoke(ensureIndexes),
)

// Legacy adds the relational source and the migrator on top of Core.
var Legacy = fx.Options(
	Core,
	legacypg.Module,
)

// Serve runs the schedule and the health and metrics endpoints until stopped.
var Serve = fx.Options(
	Core,
	fx.Invoke(serve),
)

func ensureIndexes(lc fx.Lifecycle, log logger.Logger, profiles profile.Repository, posts post.Repository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := profiles.EnsureIndexes(ctx); err != nil {
				return err
			}
			if err := posts.EnsureIndexes(ctx); err != nil {
				return err
			}
			log.Debug("Indexes ensured")
			return nil
		},
	})
}

func serve(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, svc ingest.Service) {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           NewMux(log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("Starting server", "addr", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server failed", "error", err)
				}
			}()

			err := svc.Schedule(ctx)
			if errors.Is(err, ingestimpl.ErrNoSchedule) {
				log.Warn("INGEST_CRON not set, serving without a schedule")
				return nil
			}
			return err
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return server.Shutdown(stopCtx)
		},
	})
}

// NewMux serves /healthz and the prometheus /metrics endpoint.
func NewMux(log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, log logger.Logger) {
	log.Debug("Health check request received", "method", r.Method, "url", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		log.Error("Failed to write response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
