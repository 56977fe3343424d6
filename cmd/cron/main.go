package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"starbyte/internal/pkg/caching"
	"starbyte/internal/pkg/logger"
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

type CronJob interface {
	Start(cronRunner *cron.Cron)
}

func main() {
	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob() *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			sync, err := logger.Init(os.Getenv("API_MODE"))
			if err != nil {
				return err
			}
			defer sync()

			db, err := getDb()
			if err != nil {
				return err
			}
			container, err := newContainer(db)
			if err != nil {
				return err
			}

			serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](container)
			if err != nil {
				return err
			}

			cronRunner := cron.New()

			jobs := []CronJob{
				NewLeaderboardJob(serviceLeaderboard, db),
			}
			for _, job := range jobs {
				job.Start(cronRunner)
			}

			zap.L().Info("Start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}

// newContainer wires only what the leaderboard rebuild needs.
func newContainer(db *bun.DB) (*do.Injector, error) {
	redisDB, err := getRedis("CLUSTER_REDIS_DB", "REDIS_DB")
	if err != nil {
		return nil, err
	}
	redisCache, err := getRedis("CLUSTER_REDIS_CACHE", "REDIS_CACHE")
	if err != nil {
		return nil, err
	}
	cache, err := caching.NewCacheRedis(redisCache, false)
	if err != nil {
		return nil, err
	}

	injector := do.New()
	do.ProvideNamedValue(injector, "db-readonly", db)
	do.ProvideNamedValue(injector, "redis-db", redisDB)
	do.ProvideNamedValue(injector, "redis-cache", redisCache)
	do.ProvideValue[caching.Cache](injector, cache)
	do.ProvideValue[caching.ReadOnlyCache](injector, cache)

	do.Provide(injector, func(i *do.Injector) (*services.ServiceConfig, error) {
		return services.NewServiceConfig(i)
	})
	do.Provide(injector, func(i *do.Injector) (*services.ServiceLeaderboard, error) {
		return services.NewServiceLeaderboard(i)
	})

	return injector, nil
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}

func getRedis(clusterKey, key string) (redis.UniversalClient, error) {
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
