// Package app assembles the syncd binary: configuration, storage, the
// authority connection, and the trigger HTTP server, with graceful
// shutdown releasing every owned resource.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mvoronin/authgate/internal/authority"
	"github.com/mvoronin/authgate/internal/cache"
	"github.com/mvoronin/authgate/internal/config"
	"github.com/mvoronin/authgate/internal/logging"
	"github.com/mvoronin/authgate/internal/shadow"
	"github.com/mvoronin/authgate/internal/trigger"
)

type App struct {
	cfg    *config.Config
	logger logging.Logger

	db    *sql.DB
	conn  *authority.Conn
	redis *cache.Redis
	srv   *http.Server
}

// NewApp validates cfg and wires every component. Missing required
// settings fail here, before anything dials out.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := shadow.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var store cache.Cache
	var redisCache *cache.Redis
	if cfg.RedisURL != "" {
		redisCache, err = cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		store = redisCache
	} else {
		store = cache.NewMemory()
	}

	authCfg := authority.Config{
		Host:           cfg.AuthorityHost,
		ServiceName:    cfg.ServiceName,
		SubServiceName: cfg.SubServiceName,
		RootCertPath:   cfg.RootCertPath,
	}
	conn, err := authority.NewConn(authCfg, logger)
	if err != nil {
		return nil, err
	}

	client := authority.NewClient(conn, authCfg, store, cfg.CacheTTL, logger)
	syncer := shadow.NewSyncer(db, client, logger)

	handler := trigger.NewHandler(trigger.AccessConfig{
		TrustedIP:     cfg.TrustedIP,
		TrustedOrigin: cfg.TrustedOrigin,
		SharedSecret:  cfg.SharedSecret,
	}, syncer, logger)

	srv := &http.Server{
		Addr:    cfg.TriggerAddr,
		Handler: trigger.NewRouter(handler),
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		db:     db,
		conn:   conn,
		redis:  redisCache,
		srv:    srv,
	}, nil
}

// Run serves the trigger endpoint until the context is cancelled or an
// OS signal arrives, then shuts down and releases owned resources.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "trigger endpoint listening", "addr", a.cfg.TriggerAddr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close(ctx)
		return err
	case <-ctx.Done():
	}

	a.logger.Info(ctx, "shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error(ctx, "http shutdown error", "error", err)
	}

	a.close(ctx)
	return nil
}

func (a *App) close(ctx context.Context) {
	if err := a.conn.Close(); err != nil {
		a.logger.Error(ctx, "authority connection close error", "error", err)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error(ctx, "redis close error", "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error(ctx, "db close error", "error", err)
	}
}
