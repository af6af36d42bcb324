package main

//	@title			timeasy API
//	@version		1.0
//	@description	Projects and time entries of the calling user.
//	@schemes		http https
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer access token (e.g., "Bearer eyJhbGci...")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/timeasy-io/timeasy/internal/bootstrap"
	"github.com/timeasy-io/timeasy/internal/config"
	"github.com/timeasy-io/timeasy/internal/infra/cache"
	dbpkg "github.com/timeasy-io/timeasy/internal/infra/db"
	"github.com/timeasy-io/timeasy/internal/middleware"
	"github.com/timeasy-io/timeasy/internal/modules/handler"
	"github.com/timeasy-io/timeasy/internal/modules/service"
	"github.com/timeasy-io/timeasy/internal/router"
	"github.com/timeasy-io/timeasy/internal/telemetry"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	db := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)

	// Setup OpenTelemetry tracing before the instrumented clients are used
	tp, err := telemetry.SetupTracing(context.Background(), cfg.App, cfg.Telemetry)
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if tp != nil {
		log.Sugar().Infow("OpenTelemetry tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				log.Sugar().Errorw("failed to shutdown tracer", "err", err)
			}
		}()

		if db != nil {
			if err := dbpkg.RegisterOpenTelemetryPlugin(db); err != nil {
				log.Sugar().Warnw("failed to register GORM OpenTelemetry plugin", "err", err)
			}
		}
		if rdb != nil {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				log.Sugar().Warnw("failed to register Redis OpenTelemetry plugin", "err", err)
			}
		}
	}

	if db == nil {
		log.Sugar().Warnw("using in-memory store, data is lost on exit", "driver", cfg.Database.Driver)
	}

	// init gin
	gin.SetMode(cfg.App.Env)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	limiter := do.MustInvoke[*middleware.RateLimiter](inj)
	go limiter.Run(ctx, time.Minute)

	engine := router.NewRouter(router.RouterDeps{
		Config:           cfg,
		Log:              log,
		Verifier:         do.MustInvoke[*middleware.TokenVerifier](inj),
		RateLimiter:      limiter,
		Ready:            ready(db, rdb),
		ProjectHandler:   do.MustInvoke[*handler.ProjectHandler](inj),
		TimeEntryHandler: do.MustInvoke[*handler.TimeEntryHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}

	if c, ok := do.MustInvoke[service.ChangeNotifier](inj).(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			log.Sugar().Warnw("close change publisher", "err", err)
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	log.Sugar().Info("server exited")
}

// ready reports whether the configured backing stores answer.
func ready(db *gorm.DB, rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	}
}
