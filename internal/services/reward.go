package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"

	"starbyte/internal/datastore"
	"starbyte/internal/models"
	"starbyte/internal/pkg/caching"
)

type ServiceReward struct {
	container          *do.Injector
	redisDBCache       redis.UniversalClient
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceReward(container *do.Injector) (*ServiceReward, error) {
	dbRedisCache, err := do.InvokeNamed[redis.UniversalClient](container, "redis-cache")
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceReward{container, dbRedisCache, postgresDB, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceReward) GetRewards(ctx context.Context, page, limit int) ([]*models.Reward, error) {
	page, limit = normalizePage(page, limit)

	callback := func() ([]*models.Reward, error) {
		return datastore.GetActiveRewards(ctx, service.readonlyPostgresDB, (page-1)*limit, limit)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyRewards(page, limit), CACHE_TTL_1_MIN, callback)
}

func (service *ServiceReward) GetReward(ctx context.Context, id string) (*models.Reward, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errorx.Wrap(ErrInvalidID, errorx.Invalid)
	}

	callback := func() (*models.Reward, error) {
		reward, err := datastore.FindRewardByID(ctx, service.readonlyPostgresDB, id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(errors.New("reward not found"), errorx.NotExist)
		}
		return reward, err
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyReward(id), CACHE_TTL_15_SECONDS, callback)
}

// ClearRewardCache drops the reward detail and every cached catalog page.
func (service *ServiceReward) ClearRewardCache(ctx context.Context, id string) error {
	if err := service.cache.Delete(ctx, DBKeyReward(id)); err != nil {
		return err
	}
	return caching.DeleteKeys(ctx, service.redisDBCache, DBKeyRewardsPattern())
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DEFAULT_PAGE_LIMIT
	}
	if limit > MAX_PAGE_LIMIT {
		limit = MAX_PAGE_LIMIT
	}
	return page, limit
}
