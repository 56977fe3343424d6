package datastore

import (
	"context"

	"github.com/uptrace/bun"

	"starbyte/internal/models"
)

func CreateTableReward(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Reward)(nil)).IfNotExists().
		ForeignKey(`(lister_id) REFERENCES "star" (id) ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Reward)(nil)).Index("index_reward_lister_id").IfNotExists().Column("lister_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Reward)(nil)).Index("index_reward_active_created_at").IfNotExists().Column("is_active", "created_at").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewRaw(`
		alter table "reward"
			drop constraint if exists reward_delivery_type_check;
		alter table "reward"
			add constraint reward_delivery_type_check check (delivery_type in ('code', 'link', 'fetch'));
		alter table "reward"
			drop constraint if exists reward_usage_type_check;
		alter table "reward"
			add constraint reward_usage_type_check check (usage_type in ('single_use', 'multi_use'));
		alter table "reward"
			drop constraint if exists reward_stock_check;
		alter table "reward"
			add constraint reward_stock_check check (used_total >= 0 and used_total <= stock_total);`).Exec(ctx)
	return err
}

func selectReward(db bun.IDB) *bun.SelectQuery {
	return db.NewSelect().
		Model((*models.Reward)(nil)).
		ColumnExpr("r.*").
		ColumnExpr("s.star_name AS lister_star_name").
		ColumnExpr("s.display_name AS lister_display_name").
		ColumnExpr("s.avatar AS lister_avatar_url").
		Join(`LEFT JOIN "star" AS s ON s.id = r.lister_id`)
}

func GetActiveRewards(ctx context.Context, db bun.IDB, offset, limit int) ([]*models.Reward, error) {
	rewards := make([]*models.Reward, 0)
	err := selectReward(db).
		Where("r.is_active = ?", true).
		Order("r.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(ctx, &rewards)
	if err != nil {
		return nil, err
	}

	for _, reward := range rewards {
		reward.OutOfStock = reward.IsOutOfStock()
	}
	return rewards, nil
}

func FindRewardByID(ctx context.Context, db bun.IDB, id string) (*models.Reward, error) {
	var reward models.Reward
	err := selectReward(db).Where("r.id = ?", id).Scan(ctx, &reward)
	if err != nil {
		return nil, err
	}

	reward.OutOfStock = reward.IsOutOfStock()
	return &reward, nil
}

func CreateReward(ctx context.Context, db bun.IDB, reward *models.Reward) (*models.Reward, error) {
	_, err := db.NewInsert().Model(reward).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return reward, nil
}
