package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmsalcedo/obrakit/internal/api"
	"github.com/jmsalcedo/obrakit/internal/config"
	"github.com/jmsalcedo/obrakit/internal/domain/apu"
	"github.com/jmsalcedo/obrakit/internal/domain/equipment"
	"github.com/jmsalcedo/obrakit/internal/domain/materials"
	"github.com/jmsalcedo/obrakit/internal/domain/personnel"
	"github.com/jmsalcedo/obrakit/internal/domain/projects"
	"github.com/jmsalcedo/obrakit/internal/domain/takeoff"
	"github.com/jmsalcedo/obrakit/internal/domain/units"
	"github.com/jmsalcedo/obrakit/internal/infra/db"
	httpx "github.com/jmsalcedo/obrakit/internal/infra/http"
	"github.com/jmsalcedo/obrakit/internal/infra/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	unitStore := units.NewRepo(pool)
	registry := units.NewRegistry(unitStore, units.NewUsageRepo(pool))
	materialRepo := materials.NewRepo(pool)

	router := api.NewRouter(api.Deps{
		Log:       log,
		Units:     registry,
		Takeoffs:  takeoff.NewRepo(pool),
		Materials: materialRepo,
		Stock:     materials.NewService(materialRepo, registry),
		Projects:  projects.NewRepo(pool),
		Recipes:   apu.NewRepo(pool),
		Equipment: equipment.NewRepo(pool),
		Workers:   personnel.NewRepo(pool),
	})

	srv := httpx.New(cfg.HTTP.Addr, router, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
