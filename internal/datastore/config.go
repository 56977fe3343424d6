package datastore

import (
	"context"

	"github.com/uptrace/bun"

	"starbyte/internal/models"
)

func CreateTableConfig(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Config)(nil)).IfNotExists().Exec(ctx)
	return err
}

// UpsertConfig seeds a tunable without overwriting an operator's value.
func UpsertConfig(ctx context.Context, db bun.IDB, config models.Config) error {
	_, err := db.NewInsert().Model(&config).On("CONFLICT (key) DO NOTHING").Exec(ctx)
	return err
}

func GetConfigByKey(ctx context.Context, db bun.IDB, key string) (*models.Config, error) {
	var config models.Config
	err := db.NewSelect().Model(&config).Where("key = ?", key).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func EditConfig(ctx context.Context, db bun.IDB, config *models.Config) (*models.Config, error) {
	_, err := db.NewUpdate().Model(config).
		Column("value").
		Set("updated_at = current_timestamp").
		WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return config, nil
}
