package bootstrap

import (
	"context"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/timeasy-io/timeasy/internal/config"
	"github.com/timeasy-io/timeasy/internal/infra/blob"
	"github.com/timeasy-io/timeasy/internal/infra/cache"
	"github.com/timeasy-io/timeasy/internal/infra/db"
	"github.com/timeasy-io/timeasy/internal/infra/httpclient"
	"github.com/timeasy-io/timeasy/internal/infra/logger"
	"github.com/timeasy-io/timeasy/internal/infra/queue"
	"github.com/timeasy-io/timeasy/internal/middleware"
	"github.com/timeasy-io/timeasy/internal/modules/handler"
	"github.com/timeasy-io/timeasy/internal/modules/model"
	"github.com/timeasy-io/timeasy/internal/modules/repo"
	"github.com/timeasy-io/timeasy/internal/modules/service"
	"github.com/timeasy-io/timeasy/internal/pkg/identity"
)

const driverMemory = "memory"

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB, nil for the memory driver
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Database.Driver == driverMemory {
			return nil, nil
		}
		return db.New(cfg, do.MustInvoke[*zap.Logger](i))
	})

	// Redis, nil when the cache is disabled
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.Redis.Enabled {
			return nil, nil
		}
		rdb := cache.New(cfg.Redis)
		if err := cache.Ping(context.Background(), rdb); err != nil {
			_ = rdb.Close()
			return nil, err
		}
		return rdb, nil
	})

	// change notifier
	do.Provide(inj, func(i *do.Injector) (service.ChangeNotifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return service.NoopNotifier{}, nil
		}
		return queue.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
	})

	// S3, a nil Blob disables exports
	do.Provide(inj, func(i *do.Injector) (service.Blob, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.S3.Bucket == "" {
			return nil, nil
		}
		s3, err := blob.NewS3(context.Background(), cfg.S3)
		if err != nil {
			return nil, err
		}
		return s3, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		cfg := do.MustInvoke[*config.Config](i)
		var r repo.ProjectRepo
		if d := do.MustInvoke[*gorm.DB](i); d != nil {
			r = repo.NewProjectRepo(d, cfg.Database.LockTimeout())
		} else {
			r = repo.NewMemoryStore[model.Project, *model.Project](cfg.Database.LockTimeout())
		}
		if rdb := do.MustInvoke[*redis.Client](i); rdb != nil {
			r = repo.NewCachedStore(r, rdb, cfg.Redis.CacheTTL(), cfg.Redis.Prefix, do.MustInvoke[*zap.Logger](i))
		}
		return r, nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TimeEntryRepo, error) {
		cfg := do.MustInvoke[*config.Config](i)
		var r repo.TimeEntryRepo
		if d := do.MustInvoke[*gorm.DB](i); d != nil {
			r = repo.NewTimeEntryRepo(d, cfg.Database.LockTimeout())
		} else {
			r = repo.NewMemoryStore[model.TimeEntry, *model.TimeEntry](cfg.Database.LockTimeout())
		}
		if rdb := do.MustInvoke[*redis.Client](i); rdb != nil {
			r = repo.NewCachedStore(r, rdb, cfg.Redis.CacheTTL(), cfg.Redis.Prefix, do.MustInvoke[*zap.Logger](i))
		}
		return r, nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			service.WithNotifier(do.MustInvoke[service.ChangeNotifier](i)),
			service.WithLogger(do.MustInvoke[*zap.Logger](i)),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TimeEntryService, error) {
		return service.NewTimeEntryService(
			do.MustInvoke[repo.TimeEntryRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			service.WithNotifier(do.MustInvoke[service.ChangeNotifier](i)),
			service.WithLogger(do.MustInvoke[*zap.Logger](i)),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ExportService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewExportService(
			do.MustInvoke[service.TimeEntryService](i),
			do.MustInvoke[service.Blob](i),
			cfg.S3.PresignExpire(),
		), nil
	})

	// auth
	do.Provide(inj, func(i *do.Injector) (*middleware.TokenVerifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)

		var jwks jwt.Keyfunc
		if cfg.Auth.Issuer != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			doc, err := httpclient.NewOIDCClient(cfg.Auth.Issuer, log).Discover(ctx)
			if err != nil {
				return nil, err
			}
			set, err := keyfunc.Get(doc.JWKSURI, keyfunc.Options{
				RefreshInterval:   time.Hour,
				RefreshTimeout:    10 * time.Second,
				RefreshUnknownKID: true,
				RefreshErrorHandler: func(err error) {
					log.Sugar().Warnw("jwks refresh failed", "url", doc.JWKSURI, "err", err)
				},
			})
			if err != nil {
				return nil, err
			}
			jwks = set.Keyfunc
		}
		return middleware.NewTokenVerifier(
			cfg.Auth.HMACSecret,
			jwks,
			cfg.Auth.Issuer,
			cfg.Auth.Audience,
			identity.NewResolver(cfg.Auth.AdminRole),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*middleware.RateLimiter, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(
			do.MustInvoke[service.ProjectService](i),
			do.MustInvoke[service.TimeEntryService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TimeEntryHandler, error) {
		return handler.NewTimeEntryHandler(
			do.MustInvoke[service.TimeEntryService](i),
			do.MustInvoke[service.ExportService](i),
		), nil
	})

	return inj
}
