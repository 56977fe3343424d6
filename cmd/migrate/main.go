package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"

	"starbyte/internal/datastore"
	"starbyte/internal/models"
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
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandSetConfig(),
			commandSeedDemo(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			// order matters, reward and transaction reference star
			err = datastore.CreateTableStar(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableReward(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableStardustTransaction(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreatePurchaseProcedures(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			log.Println("Migrated")
			return nil
		},
	}
}

func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate-config",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			configs := []models.Config{
				{
					Key:   services.CONFIG_STARDUST_LEADERBOARD_LIMIT,
					Value: fmt.Sprint(services.STARDUST_LEADERBOARD_DEFAULT_LIMIT),
				},
				{
					Key:   services.CONFIG_CRONJOB_TIME_LEADERBOARD,
					Value: "@every 1h",
				},
			}

			for _, config := range configs {
				err := datastore.UpsertConfig(ctx, db, config)
				if err != nil {
					log.Println(config.Key, err)
				}
			}

			log.Println("Config migrated")
			return nil
		},
	}
}

func commandSetConfig() *cli.Command {
	return &cli.Command{
		Name:  "set-config",
		Usage: "change a runtime tunable, cached values expire within 5 minutes",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Required: true},
			&cli.StringFlag{Name: "value", Required: true},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			config, err := datastore.GetConfigByKey(ctx, db, c.String("key"))
			if err != nil {
				log.Fatal(c.String("key"), err)
			}

			config.Value = c.String("value")
			config, err = datastore.EditConfig(ctx, db, config)
			if err != nil {
				log.Fatal(err)
			}

			log.Println(config.Key, "=", config.Value)
			return nil
		},
	}
}

// commandSeedDemo creates a lister with one code reward and a buyer who can
// afford it. Used for local end to end checks.
func commandSeedDemo() *cli.Command {
	return &cli.Command{
		Name: "seed-demo",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "stardust",
				Value: 50,
				Usage: "buyer starting balance",
			},
			&cli.StringFlag{
				Name:  "code",
				Value: "WELCOME20",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			suffix := time.Now().Format("20060102150405")
			err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				lister, err := datastore.CreateStar(ctx, tx, &models.Star{
					StarName:    "lister-" + suffix,
					DisplayName: "Demo Lister",
				})
				if err != nil {
					return err
				}

				buyer, err := datastore.CreateStar(ctx, tx, &models.Star{
					StarName:    "buyer-" + suffix,
					DisplayName: "Demo Buyer",
					Email:       os.Getenv("SEED_BUYER_EMAIL"),
					Stardust:    c.Int64("stardust"),
				})
				if err != nil {
					return err
				}

				data, err := json.Marshal([]string{c.String("code")})
				if err != nil {
					return err
				}

				reward, err := datastore.CreateReward(ctx, tx, &models.Reward{
					ListerID:     lister.ID,
					Title:        "Welcome bonus",
					ImageURL:     []string{},
					Price:        20,
					DeliveryType: models.DeliveryTypeCode,
					UsageType:    models.UsageTypeMultiUse,
					DeliveryData: data,
					IsActive:     true,
					StockTotal:   100,
				})
				if err != nil {
					return err
				}

				log.Println("lister:", lister.ID, "buyer:", buyer.ID, "reward:", reward.ID)

				if secret := os.Getenv("JWT_SECRET"); secret != "" {
					authentication, err := services.NewAuthentication(secret)
					if err != nil {
						return err
					}
					token, err := authentication.CreateToken(buyer, 24*time.Hour)
					if err != nil {
						return err
					}
					log.Println("buyer token:", token)
				}
				return nil
			})
			if err != nil {
				log.Fatal(err)
			}
			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
