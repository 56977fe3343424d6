package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"

	"starbyte/internal/datastore"
	"starbyte/internal/datastore/redis_store"
	"starbyte/internal/models"
)

// ServiceStardust is the purchase authority. Stock and balance checks run in
// the purchase_reward procedure so they hold under concurrent buyers.
type ServiceStardust struct {
	container          *do.Injector
	redisDB            redis.UniversalClient
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
}

func NewServiceStardust(container *do.Injector) (*ServiceStardust, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
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

	return &ServiceStardust{container, redisDB, postgresDB, readonlyPostgresDB}, nil
}

func (service *ServiceStardust) PurchaseReward(ctx context.Context, buyerID, rewardID string) (*models.PurchaseResult, error) {
	if _, err := uuid.Parse(buyerID); err != nil {
		return nil, errorx.Wrap(ErrInvalidID, errorx.Invalid)
	}
	if _, err := uuid.Parse(rewardID); err != nil {
		return nil, errorx.Wrap(ErrInvalidID, errorx.Invalid)
	}

	result, err := datastore.PurchaseReward(ctx, service.postgresDB, buyerID, rewardID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return result, nil
}

// RefundPurchase reverses one of starID's purchases. A receipt of another
// star is answered like a missing one.
func (service *ServiceStardust) RefundPurchase(ctx context.Context, starID, receiptID string) (*models.RefundResult, error) {
	if _, err := uuid.Parse(starID); err != nil {
		return nil, errorx.Wrap(ErrInvalidID, errorx.Invalid)
	}
	if _, err := uuid.Parse(receiptID); err != nil {
		return nil, errorx.Wrap(ErrInvalidID, errorx.Invalid)
	}

	result, err := datastore.RefundPurchase(ctx, service.postgresDB, starID, receiptID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return result, nil
}

func (service *ServiceStardust) GetTransactions(ctx context.Context, starID string, page, limit int) ([]*models.StardustTransaction, error) {
	page, limit = normalizePage(page, limit)
	return datastore.GetTransactionsByStar(ctx, service.readonlyPostgresDB, starID, (page-1)*limit, limit)
}

func (service *ServiceStardust) SaveDelivery(ctx context.Context, stored *models.StoredDelivery) error {
	return redis_store.SaveDelivery(ctx, service.redisDB, stored)
}

func (service *ServiceStardust) GetDelivery(ctx context.Context, receiptID string) (*models.StoredDelivery, error) {
	stored, err := redis_store.GetDelivery(ctx, service.redisDB, receiptID)
	if errors.Is(err, redis.Nil) {
		return nil, errorx.Wrap(errors.New("delivery not found"), errorx.NotExist)
	}
	return stored, err
}

// GetReceiptDelivery returns the stored delivery of one of the caller's
// receipts. It is never re-resolved.
func (service *ServiceStardust) GetReceiptDelivery(ctx context.Context, session *models.Session, receiptID string) (*models.StoredDelivery, error) {
	if _, err := uuid.Parse(receiptID); err != nil {
		return nil, errorx.Wrap(ErrInvalidID, errorx.Invalid)
	}

	stored, err := service.GetDelivery(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if stored.StarID != session.StarID {
		// same answer as a missing receipt
		return nil, errorx.Wrap(ErrReceiptNotOwned, errorx.NotExist)
	}
	return stored, nil
}
