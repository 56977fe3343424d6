package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"

	"starbyte/internal/datastore"
	"starbyte/internal/models"
	"starbyte/internal/pkg/caching"
)

type ServiceStar struct {
	container          *do.Injector
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceStar(container *do.Injector) (*ServiceStar, error) {
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

	return &ServiceStar{container, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceStar) FindStarByID(ctx context.Context, id string) (*models.Star, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errorx.Wrap(ErrInvalidID, errorx.Invalid)
	}

	callback := func() (*models.Star, error) {
		star, err := datastore.FindStarByID(ctx, service.readonlyPostgresDB, id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(errors.New("star not found"), errorx.NotExist)
		}
		return star, err
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyStar(id), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceStar) ClearStarCache(ctx context.Context, id string) error {
	return service.cache.Delete(ctx, DBKeyStar(id))
}

// ToStarLite falls back to the session snapshot when the profile could not
// be loaded.
func ToStarLite(star *models.Star, session *models.Session) models.StarLite {
	if star != nil {
		return star.Lite()
	}
	if session == nil {
		return models.StarLite{}
	}
	return (&models.Star{StarName: session.StarName, Email: session.Email}).Lite()
}
