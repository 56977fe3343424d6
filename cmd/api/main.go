package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"starbyte/internal/api/handler"
	"starbyte/internal/interfaces"
	"starbyte/internal/pkg/caching"
	"starbyte/internal/pkg/limiter"
	"starbyte/internal/pkg/locker"
	"starbyte/internal/pkg/logger"
	"starbyte/internal/pkg/mailer"
	"starbyte/internal/services"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	vs, err := env.EnvsRequired(
		"JWT_SECRET",
		"DB_DSN",
		"SMTP_HOST",
		"SMTP_USERNAME",
		"SMTP_PASSWORD",
	)
	if err != nil {
		log.Fatal(err)
	}

	container := NewContainer(vs)

	app := &cli.App{
		Name: "api",
		Commands: []*cli.Command{
			commandServer(container),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandServer(container *do.Injector) *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "start the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: "0.0.0.0:8080",
				Usage: "serve address",
			},
		},
		Action: func(c *cli.Context) error {
			vs := do.MustInvokeNamed[map[string]string](container, "envs")

			sync, err := logger.Init(vs["API_MODE"])
			if err != nil {
				return err
			}
			defer sync()

			router, err := handler.New(&handler.Config{
				Container: container,
				Mode:      vs["API_MODE"],
				Origins:   strings.Split(vs["API_ORIGINS"], ","),
			})
			if err != nil {
				zap.L().Error("build router", zap.Error(err))
				return err
			}

			srv := &http.Server{
				Addr:              c.String("addr"),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errWg, errCtx := errgroup.WithContext(ctx)

			errWg.Go(func() error {
				zap.L().Info("ListenAndServe", zap.String("addr", c.String("addr")), zap.String("mode", vs["API_MODE"]))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					zap.L().Error("ListenAndServe", zap.Error(err))
					return err
				}
				return nil
			})

			errWg.Go(func() error {
				<-errCtx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return errWg.Wait()
		},
	}
}

func NewContainer(vs map[string]string) *do.Injector {
	injector := do.New()
	for _, key := range []string{
		"API_MODE",
		"API_ORIGINS",
		"SMTP_PORT",
		"BASE_URL",
		"RECEIPT_LOGO_PATH",
		"FETCH_TIMEOUT",
		"DEBIT_POLICY",
		"RECEIPT_POLICY",
		"CHECKOUT_RATE_PER_MINUTE",
	} {
		vs[key] = os.Getenv(key)
	}

	if vs["API_MODE"] == "" {
		vs["API_MODE"] = "production"
	}
	if vs["API_ORIGINS"] == "" {
		vs["API_ORIGINS"] = "*"
	}
	if vs["SMTP_PORT"] == "" {
		vs["SMTP_PORT"] = "587"
	}
	if vs["BASE_URL"] == "" {
		vs["BASE_URL"] = "http://localhost:3000"
	}
	if vs["RECEIPT_LOGO_PATH"] == "" {
		vs["RECEIPT_LOGO_PATH"] = "public/icons/icon512_maskable.png"
	}

	do.ProvideNamedValue(injector, "envs", vs)

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(os.Getenv("DB_DSN")),
			pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.ProvideNamed(injector, "db-readonly", func(i *do.Injector) (*bun.DB, error) {
		dsn := os.Getenv("DB_DSN_READONLY")
		password := os.Getenv("DB_PASSWORD_READONLY")
		if dsn == "" {
			dsn = os.Getenv("DB_DSN")
			password = os.Getenv("DB_PASSWORD")
		}

		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(dsn),
			pgdriver.WithPassword(password),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.ProvideNamed(injector, "redis-db", redisProvider("CLUSTER_REDIS_DB", "REDIS_DB"))
	do.ProvideNamed(injector, "redis-cache", redisProvider("CLUSTER_REDIS_CACHE", "REDIS_CACHE"))
	do.ProvideNamed(injector, "redis-limiter", redisProvider("CLUSTER_REDIS_LIMITER", "REDIS_LIMITER"))
	do.ProvideNamed(injector, "redis-mutex", redisProvider("CLUSTER_REDIS_MUTEX", "REDIS_MUTEX"))

	do.ProvideNamed(injector, "redis-cache-readonly", func(i *do.Injector) (redis.UniversalClient, error) {
		var clusterOpts *redis.ClusterOptions
		var err error
		clusterCacheRedisReadOnlyURL := os.Getenv("CLUSTER_REDIS_CACHE_READONLY")
		if clusterCacheRedisReadOnlyURL != "" {
			clusterOpts, err = redis.ParseClusterURL(clusterCacheRedisReadOnlyURL)
		} else if clusterCacheRedisURL := os.Getenv("CLUSTER_REDIS_CACHE"); clusterCacheRedisURL != "" {
			clusterOpts, err = redis.ParseClusterURL(clusterCacheRedisURL)
		}

		if err != nil {
			return nil, err
		}
		if clusterOpts != nil {
			clusterOpts.ReadOnly = true
			return redis.NewClusterClient(clusterOpts), nil
		}

		url := os.Getenv("REDIS_CACHE_READONLY")
		if url == "" {
			url = os.Getenv("REDIS_CACHE")
		}
		return db.InitRedis(&db.RedisConfig{
			URL: url,
		})
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (caching.ReadOnlyCache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache-readonly")
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-limiter")
		if err != nil {
			return nil, err
		}

		return limiter.NewLimiterRedis(dbRedis)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Locker, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-mutex")
		if err != nil {
			return nil, err
		}

		fetchTimeout, err := services.ParseFetchTimeout(vs["FETCH_TIMEOUT"])
		if err != nil {
			return nil, err
		}

		return locker.NewLockerRedis(dbRedis, services.CheckoutLockExpiry(fetchTimeout))
	})

	do.Provide(injector, func(i *do.Injector) (mailer.Dialer, error) {
		port, err := strconv.Atoi(vs["SMTP_PORT"])
		if err != nil {
			return nil, err
		}

		return mailer.NewDialer(mailer.Config{
			Host:     vs["SMTP_HOST"],
			Port:     port,
			Username: vs["SMTP_USERNAME"],
			Password: vs["SMTP_PASSWORD"],
		}), nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.Authentication, error) {
		return services.NewAuthentication(vs["JWT_SECRET"])
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceConfig, error) {
		return services.NewServiceConfig(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceStar, error) {
		return services.NewServiceStar(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceReward, error) {
		return services.NewServiceReward(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceStardust, error) {
		return services.NewServiceStardust(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceDelivery, error) {
		return services.NewServiceDelivery(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceReceipt, error) {
		return services.NewServiceReceipt(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceLeaderboard, error) {
		return services.NewServiceLeaderboard(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceCheckout, error) {
		return services.NewServiceCheckout(injector)
	})

	return injector
}

func redisProvider(clusterKey, key string) do.Provider[redis.UniversalClient] {
	return func(i *do.Injector) (redis.UniversalClient, error) {
		clusterRedisURL := os.Getenv(clusterKey)
		if clusterRedisURL != "" {
			clusterOpts, err := redis.ParseClusterURL(clusterRedisURL)
			if err != nil {
				return nil, err
			}
			return redis.NewClusterClient(clusterOpts), nil
		}

		return db.InitRedis(&db.RedisConfig{
			URL: os.Getenv(key),
		})
	}
}
