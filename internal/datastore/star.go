package datastore

import (
	"context"

	"github.com/uptrace/bun"

	"starbyte/internal/models"
)

func CreateTableStar(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Star)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Star)(nil)).Index("index_star_stardust").IfNotExists().ColumnExpr("stardust DESC").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewRaw(`
		alter table "star"
			drop constraint if exists star_stardust_check;
		alter table "star"
			add constraint star_stardust_check check (stardust >= 0);`).Exec(ctx)
	return err
}

func FindStarByID(ctx context.Context, db bun.IDB, id string) (*models.Star, error) {
	var star models.Star
	err := db.NewSelect().Model(&star).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &star, nil
}

func GetStarsByIDs(ctx context.Context, db bun.IDB, ids []string) ([]*models.Star, error) {
	stars := make([]*models.Star, 0, len(ids))
	if len(ids) == 0 {
		return stars, nil
	}

	err := db.NewSelect().Model(&stars).Where("id IN (?)", bun.In(ids)).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return stars, nil
}

// GetStarsPage lists stars by id so pages stay stable while balances move.
func GetStarsPage(ctx context.Context, db bun.IDB, offset, limit int) ([]*models.Star, error) {
	stars := make([]*models.Star, 0, limit)
	err := db.NewSelect().Model(&stars).
		Column("id", "star_name", "avatar", "stardust").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return stars, nil
}

func CreateStar(ctx context.Context, db bun.IDB, star *models.Star) (*models.Star, error) {
	_, err := db.NewInsert().Model(star).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return star, nil
}
