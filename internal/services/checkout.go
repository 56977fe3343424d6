package services

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"go.uber.org/zap"

	"starbyte/internal/interfaces"
	"starbyte/internal/models"
	"starbyte/internal/pkg/limiter"
	"starbyte/internal/pkg/locker"
)

var reInsufficient = regexp.MustCompile(`(?i)insufficient`)

type ServiceCheckout struct {
	authority  interfaces.PurchaseAuthority
	resolver   interfaces.DeliveryResolver
	notifier   interfaces.ReceiptNotifier
	catalog    interfaces.RewardCatalog
	stars      interfaces.StarDirectory
	deliveries interfaces.DeliveryStore
	scores     interfaces.ScoreBoard
	limiter    interfaces.Limiter
	locker     interfaces.Locker

	policy models.CheckoutPolicy
	rate   redis_rate.Limit
}

func NewServiceCheckout(container *do.Injector) (*ServiceCheckout, error) {
	vs, err := do.InvokeNamed[map[string]string](container, "envs")
	if err != nil {
		return nil, err
	}

	serviceStardust, err := do.Invoke[*ServiceStardust](container)
	if err != nil {
		return nil, err
	}

	serviceDelivery, err := do.Invoke[*ServiceDelivery](container)
	if err != nil {
		return nil, err
	}

	serviceReceipt, err := do.Invoke[*ServiceReceipt](container)
	if err != nil {
		return nil, err
	}

	serviceReward, err := do.Invoke[*ServiceReward](container)
	if err != nil {
		return nil, err
	}

	serviceStar, err := do.Invoke[*ServiceStar](container)
	if err != nil {
		return nil, err
	}

	serviceLeaderboard, err := do.Invoke[*ServiceLeaderboard](container)
	if err != nil {
		return nil, err
	}

	checkoutLimiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	checkoutLocker, err := do.Invoke[interfaces.Locker](container)
	if err != nil {
		return nil, err
	}

	perMinute := CHECKOUT_DEFAULT_RATE_PER_MINUTE
	if v, err := strconv.Atoi(vs["CHECKOUT_RATE_PER_MINUTE"]); err == nil && v > 0 {
		perMinute = v
	}

	return NewServiceCheckoutFromDeps(CheckoutDeps{
		Authority:  serviceStardust,
		Resolver:   serviceDelivery,
		Notifier:   serviceReceipt,
		Catalog:    serviceReward,
		Stars:      serviceStar,
		Deliveries: serviceStardust,
		Scores:     serviceLeaderboard,
		Limiter:    checkoutLimiter,
		Locker:     checkoutLocker,
		Policy:     models.ParseCheckoutPolicy(vs["DEBIT_POLICY"], vs["RECEIPT_POLICY"]),
		Rate:       redis_rate.PerMinute(perMinute),
	}), nil
}

// Checkout buys one reward for the session's star, resolves what was bought
// and mails a receipt. Purchase rejections come back as a failed result, not
// an error.
func (service *ServiceCheckout) Checkout(ctx context.Context, session *models.Session, rewardID string) (*models.CheckoutResult, error) {
	if session == nil || session.StarID == "" {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}
	if _, err := uuid.Parse(rewardID); err != nil {
		return nil, errorx.Wrap(ErrInvalidID, errorx.Invalid)
	}

	if err := service.limiter.Allow(ctx, LimitKeyStarCheckout(session.StarID), service.rate); err != nil {
		if errors.Is(err, limiter.ErrRateLimited) {
			return nil, errorx.Wrap(err, errorx.RateLimiting)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	unlock, err := service.locker.TryLock(ctx, LockKeyStarCheckout(session.StarID))
	if err != nil {
		if errors.Is(err, locker.ErrLocked) {
			return nil, errorx.Wrap(ErrCheckoutLock, errorx.Invalid)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}
	defer unlock()

	reward, err := service.catalog.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	result := &models.CheckoutResult{State: models.CheckoutStatePurchasing, Reward: reward}

	purchase, err := service.authority.PurchaseReward(ctx, session.StarID, rewardID)
	if err != nil {
		checkoutTotal.WithLabelValues(string(models.CheckoutStateFailed)).Inc()
		return nil, err
	}

	if !purchase.Success {
		message := purchase.Error
		if message == "" {
			message = MESSAGE_PURCHASE_FAILED
		}
		result.State = models.CheckoutStateFailed
		result.Message = message
		result.InsufficientFunds = reInsufficient.MatchString(message)
		checkoutTotal.WithLabelValues(string(result.State)).Inc()
		return result, nil
	}

	result.State = models.CheckoutStateResolving
	result.ReceiptID = purchase.ReceiptID

	star, err := service.stars.FindStarByID(ctx, session.StarID)
	if err != nil {
		zap.L().Warn("load buyer profile failed", zap.String("star_id", session.StarID), zap.Error(err))
	}

	fulfillment, err := service.fulfill(ctx, session.StarID, purchase, ToStarLite(star, session), reward.Lite())
	if err != nil {
		return nil, err
	}

	result.Delivery = fulfillment.Delivery
	result.Receipt = fulfillment.Receipt
	result.Refunded = fulfillment.Refunded
	if fulfillment.Delivery.OK {
		result.State = models.CheckoutStateResolved
	} else {
		result.State = models.CheckoutStateFailed
		result.Message = fulfillment.Delivery.Message
	}

	service.refresh(ctx, session.StarID, rewardID, purchase, fulfillment, result)

	checkoutTotal.WithLabelValues(string(result.State)).Inc()
	return result, nil
}

// refresh reloads the reward counters, the buyer's cached profile and
// leaderboard score. Failures are logged only, the purchase already happened.
func (service *ServiceCheckout) refresh(ctx context.Context, starID, rewardID string, purchase *models.PurchaseResult, fulfillment *models.Fulfillment, result *models.CheckoutResult) {
	if err := service.catalog.ClearRewardCache(ctx, rewardID); err != nil {
		zap.L().Warn("clear reward cache failed", zap.String("reward_id", rewardID), zap.Error(err))
	}
	if fresh, err := service.catalog.GetReward(ctx, rewardID); err == nil {
		result.Reward = fresh
	}

	if err := service.stars.ClearStarCache(ctx, starID); err != nil {
		zap.L().Warn("clear star cache failed", zap.String("star_id", starID), zap.Error(err))
	}

	balance := purchase.Balance
	if fulfillment.RefundBalance != nil {
		balance = fulfillment.RefundBalance
	}
	if balance == nil {
		return
	}
	if err := service.scores.SetStardustScore(ctx, starID, *balance); err != nil {
		zap.L().Warn("update stardust score failed", zap.String("star_id", starID), zap.Error(err))
	}
}

// Fulfill resolves a purchase handed in by a client and mails its receipt.
// Nothing about the purchase is trusted beyond its delivery data, so it is
// never refunded nor stored under its receipt id.
func (service *ServiceCheckout) Fulfill(ctx context.Context, purchase *models.PurchaseResult, star models.StarLite, reward *models.RewardLite) (*models.Fulfillment, error) {
	return service.fulfill(ctx, "", purchase, star, reward)
}

// fulfill runs everything that follows a successful purchase: resolution,
// the debit policy, the receipt policy and storing the delivery for its
// owner. starID is set only for a purchase the authority just made for that
// star, the debit policy and the delivery store apply to those alone.
func (service *ServiceCheckout) fulfill(ctx context.Context, starID string, purchase *models.PurchaseResult, star models.StarLite, reward *models.RewardLite) (*models.Fulfillment, error) {
	if purchase == nil || !purchase.Success {
		return nil, errorx.Wrap(errors.New(MESSAGE_INVALID_PURCHASE), errorx.Invalid)
	}

	delivery := service.resolver.Resolve(ctx, purchase, star)
	if delivery == nil {
		delivery = models.ResolveFailed(MESSAGE_RESOLVE_EXCEPTION)
	}
	fulfillment := &models.Fulfillment{Delivery: delivery}

	if !delivery.OK && service.policy.Debit == models.DebitPolicyRefund && starID != "" && purchase.ReceiptID != "" {
		refund, err := service.authority.RefundPurchase(ctx, starID, purchase.ReceiptID)
		switch {
		case err != nil:
			zap.L().Error("refund after failed delivery", zap.String("receipt_id", purchase.ReceiptID), zap.Error(err))
		case !refund.Success:
			zap.L().Warn("refund rejected", zap.String("receipt_id", purchase.ReceiptID), zap.String("error", refund.Error))
		default:
			fulfillment.Refunded = true
			fulfillment.RefundBalance = refund.Balance
		}
	}

	if service.shouldSendReceipt(star, delivery, fulfillment) {
		fulfillment.Receipt = service.notifier.SendReceipt(ctx, buildReceipt(purchase, star, reward, delivery))
	}

	if starID != "" && purchase.ReceiptID != "" {
		err := service.deliveries.SaveDelivery(ctx, &models.StoredDelivery{
			StarID:    starID,
			ReceiptID: purchase.ReceiptID,
			Delivery:  delivery,
		})
		if err != nil {
			zap.L().Warn("store delivery failed", zap.String("receipt_id", purchase.ReceiptID), zap.Error(err))
		}
	}

	return fulfillment, nil
}

func (service *ServiceCheckout) shouldSendReceipt(star models.StarLite, delivery *models.ResolvedDelivery, fulfillment *models.Fulfillment) bool {
	if star.EmailAddress() == "" || fulfillment.Refunded {
		return false
	}
	return service.policy.Receipt == models.ReceiptPolicyAlways || delivery.OK
}

func buildReceipt(purchase *models.PurchaseResult, star models.StarLite, reward *models.RewardLite, delivery *models.ResolvedDelivery) *models.Receipt {
	product := models.ReceiptProduct{
		Title:        "Reward",
		RewardDetail: delivery.Detail(),
	}
	if reward != nil {
		if reward.Title != "" {
			product.Title = reward.Title
		}
		product.Description = reward.Description
		product.Price = reward.Price
		product.ImageURL = reward.ImageURL
		product.DeliveryInstructions = reward.DeliveryInstructions
	}
	// the authority's price is what was actually debited
	if purchase.Price != nil {
		product.Price = *purchase.Price
	}

	return &models.Receipt{
		To:       star.EmailAddress(),
		Name:     star.Greeting(),
		OrderID:  purchase.ReceiptID,
		Date:     time.Now(),
		Total:    product.Price,
		Products: []models.ReceiptProduct{product},
	}
}

type CheckoutDeps struct {
	Authority  interfaces.PurchaseAuthority
	Resolver   interfaces.DeliveryResolver
	Notifier   interfaces.ReceiptNotifier
	Catalog    interfaces.RewardCatalog
	Stars      interfaces.StarDirectory
	Deliveries interfaces.DeliveryStore
	Scores     interfaces.ScoreBoard
	Limiter    interfaces.Limiter
	Locker     interfaces.Locker
	Policy     models.CheckoutPolicy
	Rate       redis_rate.Limit
}

// NewServiceCheckoutFromDeps wires a checkout without the injector.
func NewServiceCheckoutFromDeps(deps CheckoutDeps) *ServiceCheckout {
	return &ServiceCheckout{
		authority:  deps.Authority,
		resolver:   deps.Resolver,
		notifier:   deps.Notifier,
		catalog:    deps.Catalog,
		stars:      deps.Stars,
		deliveries: deps.Deliveries,
		scores:     deps.Scores,
		limiter:    deps.Limiter,
		locker:     deps.Locker,
		policy:     deps.Policy,
		rate:       deps.Rate,
	}
}
