package interfaces

import (
	"context"

	"github.com/go-redis/redis_rate/v10"

	"starbyte/internal/models"
)

//go:generate mockgen -source=main.go -package=mocks -destination=mocks/main.mock.go

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

type Locker interface {
	TryLock(ctx context.Context, key string) (func(), error)
}

// PurchaseAuthority owns the atomic stock and balance checks. Rejections are
// reported through PurchaseResult, errors mean the authority was unreachable.
type PurchaseAuthority interface {
	PurchaseReward(ctx context.Context, buyerID, rewardID string) (*models.PurchaseResult, error)
	RefundPurchase(ctx context.Context, starID, receiptID string) (*models.RefundResult, error)
}

type DeliveryResolver interface {
	Resolve(ctx context.Context, purchase *models.PurchaseResult, star models.StarLite) *models.ResolvedDelivery
}

type ReceiptNotifier interface {
	SendReceipt(ctx context.Context, receipt *models.Receipt) *models.NotifyResult
}

type RewardCatalog interface {
	GetReward(ctx context.Context, id string) (*models.Reward, error)
	ClearRewardCache(ctx context.Context, id string) error
}

type DeliveryStore interface {
	SaveDelivery(ctx context.Context, stored *models.StoredDelivery) error
	GetDelivery(ctx context.Context, receiptID string) (*models.StoredDelivery, error)
}

type StarDirectory interface {
	FindStarByID(ctx context.Context, id string) (*models.Star, error)
	ClearStarCache(ctx context.Context, id string) error
}

type ScoreBoard interface {
	SetStardustScore(ctx context.Context, starID string, balance int64) error
}
