package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ph2006/sistema-orbit-sub006/internal/config"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/calendar"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/feasibility"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/planning"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/report"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage/mysql"
	redisstore "github.com/Ph2006/sistema-orbit-sub006/internal/storage/redis"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env, errorLogFile)

	storage, err := mysql.New(*cfg)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Migrate {
		if err := storage.Migrate(ctx); err != nil {
			log.Error("failed to migrate db", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var localeHolidays calendar.HolidaySet
	if cfg.Holidays.File != "" {
		locale, set, err := calendar.LoadHolidaysFile(cfg.Holidays.File)
		if err != nil {
			log.Error("failed to load holidays", slog.String("file", cfg.Holidays.File), slog.String("error", err.Error()))
			os.Exit(1)
		}
		localeHolidays = set
		log.Info("holidays loaded", slog.String("locale", locale), slog.Int("count", set.Len()))
	}

	var (
		workload feasibility.WorkloadProvider
		writer   planning.WorkloadWriter
	)
	switch cfg.Workload.Source {
	case config.WorkloadSimulated:
		workload = feasibility.NewSimulatedWorkload(cfg.Workload.Seed)
	case config.WorkloadMySQL:
		workload, writer = storage, storage
	case config.WorkloadRedis:
		src, err := redisstore.New(ctx, cfg.Redis, log)
		if err != nil {
			log.Error("failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer src.Close()
		workload, writer = src, src
	}
	log.Info("workload source selected", slog.String("source", cfg.Workload.Source))

	svc := planning.New(log, storage, workload,
		planning.WithLocaleHolidays(localeHolidays),
		planning.WithWorkloadWriter(writer),
		planning.WithBusinessDaySuggestion(cfg.Feasibility.BusinessDaySuggestion),
	)
	reports := report.NewService(storage)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, svc, reports),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed start server", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
