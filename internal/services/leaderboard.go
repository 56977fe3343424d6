package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"

	"starbyte/internal/datastore"
	"starbyte/internal/datastore/redis_store"
	"starbyte/internal/models"
	"starbyte/internal/pkg/caching"
)

type ServiceLeaderboard struct {
	container          *do.Injector
	redisDB            redis.UniversalClient
	redisDBCache       redis.UniversalClient
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache

	serviceConfig *ServiceConfig
}

func NewServiceLeaderboard(container *do.Injector) (*ServiceLeaderboard, error) {
	db, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	dbRedisCache, err := do.InvokeNamed[redis.UniversalClient](container, "redis-cache")
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

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLeaderboard{container, db, dbRedisCache, readonlyPostgresDB, cache, readonlyCache, serviceConfig}, nil
}

func (service *ServiceLeaderboard) GetStardustLeaderboard(ctx context.Context, session *models.Session) (*models.LeaderboardResponse, error) {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_STARDUST_LEADERBOARD_LIMIT, STARDUST_LEADERBOARD_DEFAULT_LIMIT)
	return service.getLeaderboard(ctx, session, LEADERBOARD_STARDUST, limit)
}

// SetStardustScore records a new balance for a star.
func (service *ServiceLeaderboard) SetStardustScore(ctx context.Context, starID string, balance int64) error {
	_, err := redis_store.SetLeaderboard(ctx, service.redisDB, LEADERBOARD_STARDUST, &models.LeaderboardItem{
		StarID: starID,
		Score:  float64(balance),
	})
	if err != nil {
		return err
	}

	return service.ClearLeaderboardCache(ctx, LEADERBOARD_STARDUST)
}

func (service *ServiceLeaderboard) ClearLeaderboardCache(ctx context.Context, leaderboardName string) error {
	return caching.DeleteKeys(ctx, service.redisDBCache, fmt.Sprintf("leaderboard_by_star:%s*", leaderboardName))
}

func (service *ServiceLeaderboard) getLeaderboard(ctx context.Context, session *models.Session, leaderboardName string, limit int) (*models.LeaderboardResponse, error) {
	callback := func() (*models.LeaderboardResponse, error) {
		leaderboard, err := redis_store.GetLeaderboard(ctx, service.redisDB, leaderboardName, limit)
		if err != nil {
			return nil, err
		}

		ids := make([]string, 0, len(leaderboard)+1)
		for _, item := range leaderboard {
			ids = append(ids, item.StarID)
		}
		ids = append(ids, session.StarID)

		stars, err := datastore.GetStarsByIDs(ctx, service.readonlyPostgresDB, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*models.Star, len(stars))
		for _, star := range stars {
			byID[star.ID] = star
		}

		for _, item := range leaderboard {
			if star, ok := byID[item.StarID]; ok {
				item.StarName = star.StarName
				item.Avatar = star.Avatar
			}
		}

		me := &models.LeaderboardItem{StarID: session.StarID, StarName: session.StarName}
		if star, ok := byID[session.StarID]; ok {
			me.Avatar = star.Avatar
		}

		rank, err := redis_store.GetRankWithScore(ctx, service.redisDB, leaderboardName, session.StarID)
		switch {
		case err == redis.Nil:
			// not ranked yet
		case err != nil:
			return nil, err
		default:
			me.Rank = int(rank.Rank + 1)
			me.Score = rank.Score
		}

		return &models.LeaderboardResponse{Leaderboard: leaderboard, Me: me}, nil
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyLeaderboardByStar(leaderboardName, session.StarID, limit), CACHE_TTL_1_MIN, callback)
}

// RebuildStardustLeaderboard reloads every balance from postgres in pages and
// swaps the result in at once.
func (service *ServiceLeaderboard) RebuildStardustLeaderboard(ctx context.Context, pageSize int) (int, error) {
	if pageSize <= 0 {
		pageSize = MAX_PAGE_LIMIT
	}

	total := 0
	for offset := 0; ; offset += pageSize {
		stars, err := datastore.GetStarsPage(ctx, service.readonlyPostgresDB, offset, pageSize)
		if err != nil {
			return total, err
		}

		items := make([]*models.LeaderboardItem, 0, len(stars))
		for _, star := range stars {
			items = append(items, &models.LeaderboardItem{StarID: star.ID, Score: float64(star.Stardust)})
		}
		if err := redis_store.SetLeaderboardBatch(ctx, service.redisDB, LEADERBOARD_STARDUST, items); err != nil {
			return total, err
		}

		total += len(stars)
		if len(stars) < pageSize {
			break
		}
	}

	if err := redis_store.SwapLeaderboard(ctx, service.redisDB, LEADERBOARD_STARDUST); err != nil {
		return total, err
	}
	return total, service.ClearLeaderboardCache(ctx, LEADERBOARD_STARDUST)
}
