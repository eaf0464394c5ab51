package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/Sketch/internal/adapters/http"
	wssignal "github.com/dkeye/Sketch/internal/adapters/signal"
	"github.com/dkeye/Sketch/internal/app"
	"github.com/dkeye/Sketch/internal/app/orch"
	"github.com/dkeye/Sketch/internal/config"
	"github.com/dkeye/Sketch/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	store := core.NewStore(ctx, cfg.RoomTTL, cfg.ReapInterval)
	defer store.Stop()

	reg := app.NewRegistry()
	cast := &app.Broadcaster{Registry: reg}

	o := &orch.Orchestrator{
		Registry: reg,
		Rooms:    store,
	}
	ctrl := wssignal.NewController(o, cast, cfg)

	r := router.SetupRouter(ctx, cfg, o, ctrl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Sketch relay started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
