package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"starbyte/internal/interfaces/mocks"
	"starbyte/internal/models"
	"starbyte/internal/pkg/limiter"
	"starbyte/internal/pkg/locker"
)

const (
	testBuyerID  = "6f1c2a5e-1d7b-4a57-9a55-0d7e1f3b8c11"
	testRewardID = "0b8e4d7a-52c4-4c43-8f3e-9a0c7c1d2e33"
)

type checkoutMocks struct {
	authority  *mocks.MockPurchaseAuthority
	resolver   *mocks.MockDeliveryResolver
	notifier   *mocks.MockReceiptNotifier
	catalog    *mocks.MockRewardCatalog
	stars      *mocks.MockStarDirectory
	deliveries *mocks.MockDeliveryStore
	scores     *mocks.MockScoreBoard
	limiter    *mocks.MockLimiter
	locker     *mocks.MockLocker
}

func newCheckoutMocks(ctrl *gomock.Controller) checkoutMocks {
	return checkoutMocks{
		authority:  mocks.NewMockPurchaseAuthority(ctrl),
		resolver:   mocks.NewMockDeliveryResolver(ctrl),
		notifier:   mocks.NewMockReceiptNotifier(ctrl),
		catalog:    mocks.NewMockRewardCatalog(ctrl),
		stars:      mocks.NewMockStarDirectory(ctrl),
		deliveries: mocks.NewMockDeliveryStore(ctrl),
		scores:     mocks.NewMockScoreBoard(ctrl),
		limiter:    mocks.NewMockLimiter(ctrl),
		locker:     mocks.NewMockLocker(ctrl),
	}
}

func (m checkoutMocks) service(policy models.CheckoutPolicy) *ServiceCheckout {
	return NewServiceCheckoutFromDeps(CheckoutDeps{
		Authority:  m.authority,
		Resolver:   m.resolver,
		Notifier:   m.notifier,
		Catalog:    m.catalog,
		Stars:      m.stars,
		Deliveries: m.deliveries,
		Scores:     m.scores,
		Limiter:    m.limiter,
		Locker:     m.locker,
		Policy:     policy,
		Rate:       redis_rate.PerMinute(CHECKOUT_DEFAULT_RATE_PER_MINUTE),
	})
}

// admit lets the request through the rate limiter and the per-star lock.
func (m checkoutMocks) admit() {
	m.limiter.EXPECT().Allow(gomock.Any(), LimitKeyStarCheckout(testBuyerID), gomock.Any()).Return(nil)
	m.locker.EXPECT().TryLock(gomock.Any(), LockKeyStarCheckout(testBuyerID)).Return(func() {}, nil)
}

func welcomeReward(usedTotal int) *models.Reward {
	return &models.Reward{
		ID:           testRewardID,
		Title:        "Welcome bonus",
		Price:        20,
		DeliveryType: models.DeliveryTypeCode,
		IsActive:     true,
		StockTotal:   100,
		UsedTotal:    usedTotal,
	}
}

func welcomePurchase() *models.PurchaseResult {
	balance := int64(30)
	return &models.PurchaseResult{
		Success:   true,
		Type:      models.DeliveryTypeCode,
		Data:      &models.DeliveryData{Code: "WELCOME20"},
		ReceiptID: "r1",
		Balance:   &balance,
	}
}

func buyer() *models.Star {
	return &models.Star{
		ID:          testBuyerID,
		StarName:    "nova",
		DisplayName: "Nova",
		Email:       "nova@example.com",
		Stardust:    30,
	}
}

func testSession() *models.Session {
	return &models.Session{StarID: testBuyerID, StarName: "nova", Email: "nova@example.com"}
}

func TestServiceCheckout_Checkout(t *testing.T) {
	defaultPolicy := models.ParseCheckoutPolicy("", "")

	testCases := []struct {
		name     string
		session  *models.Session
		rewardID string
		policy   models.CheckoutPolicy
		mock     func(m checkoutMocks)
		wantErr  bool
		want     func(t *testing.T, result *models.CheckoutResult)
	}{
		{
			name:     "code reward resolved and mailed",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock: func(m checkoutMocks) {
				m.admit()
				gomock.InOrder(
					m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(0), nil),
					m.authority.EXPECT().PurchaseReward(gomock.Any(), testBuyerID, testRewardID).Return(welcomePurchase(), nil),
					m.stars.EXPECT().FindStarByID(gomock.Any(), testBuyerID).Return(buyer(), nil),
					m.resolver.EXPECT().Resolve(gomock.Any(), welcomePurchase(), buyer().Lite()).Return(models.ResolvedCode("WELCOME20")),
					m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt *models.Receipt) *models.NotifyResult {
						assert.Equal(t, "nova@example.com", receipt.To)
						assert.Equal(t, "Nova", receipt.Name)
						assert.Equal(t, "r1", receipt.OrderID)
						assert.Equal(t, int64(20), receipt.Total)
						require.Len(t, receipt.Products, 1)
						assert.Equal(t, "Welcome bonus", receipt.Products[0].Title)
						assert.Equal(t, &models.RewardDetail{Code: "WELCOME20"}, receipt.Products[0].RewardDetail)
						return &models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT}
					}),
					m.deliveries.EXPECT().SaveDelivery(gomock.Any(), &models.StoredDelivery{
						StarID:    testBuyerID,
						ReceiptID: "r1",
						Delivery:  models.ResolvedCode("WELCOME20"),
					}).Return(nil),
					m.catalog.EXPECT().ClearRewardCache(gomock.Any(), testRewardID).Return(nil),
					m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(1), nil),
					m.stars.EXPECT().ClearStarCache(gomock.Any(), testBuyerID).Return(nil),
					m.scores.EXPECT().SetStardustScore(gomock.Any(), testBuyerID, int64(30)).Return(nil),
				)
			},
			want: func(t *testing.T, result *models.CheckoutResult) {
				assert.Equal(t, models.CheckoutStateResolved, result.State)
				assert.Equal(t, "r1", result.ReceiptID)
				assert.Equal(t, models.ResolvedCode("WELCOME20"), result.Delivery)
				assert.Equal(t, &models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT}, result.Receipt)
				assert.Equal(t, 1, result.Reward.UsedTotal)
				assert.False(t, result.Refunded)
				assert.False(t, result.InsufficientFunds)
			},
		},
		{
			name:     "receipt carries the debited price",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock: func(m checkoutMocks) {
				m.admit()
				charged := int64(25)
				purchase := welcomePurchase()
				purchase.Price = &charged
				m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(0), nil).Times(2)
				m.authority.EXPECT().PurchaseReward(gomock.Any(), testBuyerID, testRewardID).Return(purchase, nil)
				m.stars.EXPECT().FindStarByID(gomock.Any(), testBuyerID).Return(buyer(), nil)
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.ResolvedCode("WELCOME20"))
				m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt *models.Receipt) *models.NotifyResult {
					assert.Equal(t, int64(25), receipt.Total)
					assert.Equal(t, int64(25), receipt.Products[0].Price)
					return &models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT}
				})
				m.deliveries.EXPECT().SaveDelivery(gomock.Any(), gomock.Any()).Return(nil)
				m.catalog.EXPECT().ClearRewardCache(gomock.Any(), testRewardID).Return(nil)
				m.stars.EXPECT().ClearStarCache(gomock.Any(), testBuyerID).Return(nil)
				m.scores.EXPECT().SetStardustScore(gomock.Any(), testBuyerID, int64(30)).Return(nil)
			},
			want: func(t *testing.T, result *models.CheckoutResult) {
				assert.Equal(t, models.CheckoutStateResolved, result.State)
			},
		},
		{
			name:     "insufficient stardust stops before resolution",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock: func(m checkoutMocks) {
				m.admit()
				m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(0), nil)
				m.authority.EXPECT().PurchaseReward(gomock.Any(), testBuyerID, testRewardID).Return(&models.PurchaseResult{
					Error: "Insufficient stardust",
				}, nil)
			},
			want: func(t *testing.T, result *models.CheckoutResult) {
				assert.Equal(t, models.CheckoutStateFailed, result.State)
				assert.Equal(t, "Insufficient stardust", result.Message)
				assert.True(t, result.InsufficientFunds)
				assert.Nil(t, result.Delivery)
				assert.Nil(t, result.Receipt)
			},
		},
		{
			name:     "out of stock is not an insufficient funds failure",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock: func(m checkoutMocks) {
				m.admit()
				m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(100), nil)
				m.authority.EXPECT().PurchaseReward(gomock.Any(), testBuyerID, testRewardID).Return(&models.PurchaseResult{
					Error: "Out of stock",
				}, nil)
			},
			want: func(t *testing.T, result *models.CheckoutResult) {
				assert.Equal(t, models.CheckoutStateFailed, result.State)
				assert.Equal(t, "Out of stock", result.Message)
				assert.False(t, result.InsufficientFunds)
			},
		},
		{
			name:     "rejection without a message",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock: func(m checkoutMocks) {
				m.admit()
				m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(0), nil)
				m.authority.EXPECT().PurchaseReward(gomock.Any(), testBuyerID, testRewardID).Return(&models.PurchaseResult{}, nil)
			},
			want: func(t *testing.T, result *models.CheckoutResult) {
				assert.Equal(t, models.CheckoutStateFailed, result.State)
				assert.Equal(t, MESSAGE_PURCHASE_FAILED, result.Message)
			},
		},
		{
			name:     "failed delivery is refunded and no receipt is sent",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   models.ParseCheckoutPolicy("refund", ""),
			mock: func(m checkoutMocks) {
				m.admit()
				refunded := int64(50)
				m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(0), nil).Times(2)
				m.authority.EXPECT().PurchaseReward(gomock.Any(), testBuyerID, testRewardID).Return(welcomePurchase(), nil)
				m.stars.EXPECT().FindStarByID(gomock.Any(), testBuyerID).Return(buyer(), nil)
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.ResolveFailed(MESSAGE_FETCH_FAILED))
				m.authority.EXPECT().RefundPurchase(gomock.Any(), testBuyerID, "r1").Return(&models.RefundResult{Success: true, Balance: &refunded}, nil)
				m.deliveries.EXPECT().SaveDelivery(gomock.Any(), gomock.Any()).Return(nil)
				m.catalog.EXPECT().ClearRewardCache(gomock.Any(), testRewardID).Return(nil)
				m.stars.EXPECT().ClearStarCache(gomock.Any(), testBuyerID).Return(nil)
				m.scores.EXPECT().SetStardustScore(gomock.Any(), testBuyerID, int64(50)).Return(nil)
			},
			want: func(t *testing.T, result *models.CheckoutResult) {
				assert.Equal(t, models.CheckoutStateFailed, result.State)
				assert.Equal(t, MESSAGE_FETCH_FAILED, result.Message)
				assert.True(t, result.Refunded)
				assert.Nil(t, result.Receipt)
			},
		},
		{
			name:     "failed delivery keeps the debit and still mails a receipt",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock: func(m checkoutMocks) {
				m.admit()
				m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(0), nil).Times(2)
				m.authority.EXPECT().PurchaseReward(gomock.Any(), testBuyerID, testRewardID).Return(welcomePurchase(), nil)
				m.stars.EXPECT().FindStarByID(gomock.Any(), testBuyerID).Return(buyer(), nil)
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.ResolveFailed(MESSAGE_NO_FETCH_URL))
				m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt *models.Receipt) *models.NotifyResult {
					assert.Nil(t, receipt.Products[0].RewardDetail)
					return &models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT}
				})
				m.deliveries.EXPECT().SaveDelivery(gomock.Any(), gomock.Any()).Return(nil)
				m.catalog.EXPECT().ClearRewardCache(gomock.Any(), testRewardID).Return(nil)
				m.stars.EXPECT().ClearStarCache(gomock.Any(), testBuyerID).Return(nil)
				m.scores.EXPECT().SetStardustScore(gomock.Any(), testBuyerID, int64(30)).Return(nil)
			},
			want: func(t *testing.T, result *models.CheckoutResult) {
				assert.Equal(t, models.CheckoutStateFailed, result.State)
				assert.Equal(t, MESSAGE_NO_FETCH_URL, result.Message)
				assert.False(t, result.Refunded)
				assert.True(t, result.Receipt.Success)
			},
		},
		{
			name:     "profile lookup failure falls back to the session",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock: func(m checkoutMocks) {
				m.admit()
				m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(0), nil).Times(2)
				m.authority.EXPECT().PurchaseReward(gomock.Any(), testBuyerID, testRewardID).Return(welcomePurchase(), nil)
				m.stars.EXPECT().FindStarByID(gomock.Any(), testBuyerID).Return(nil, errors.New("db down"))
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.ResolvedCode("WELCOME20"))
				m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt *models.Receipt) *models.NotifyResult {
					assert.Equal(t, "nova@example.com", receipt.To)
					assert.Equal(t, "nova", receipt.Name)
					return &models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT}
				})
				m.deliveries.EXPECT().SaveDelivery(gomock.Any(), gomock.Any()).Return(nil)
				m.catalog.EXPECT().ClearRewardCache(gomock.Any(), testRewardID).Return(nil)
				m.stars.EXPECT().ClearStarCache(gomock.Any(), testBuyerID).Return(nil)
				m.scores.EXPECT().SetStardustScore(gomock.Any(), testBuyerID, int64(30)).Return(nil)
			},
			want: func(t *testing.T, result *models.CheckoutResult) {
				assert.Equal(t, models.CheckoutStateResolved, result.State)
			},
		},
		{
			name:     "authority unreachable",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock: func(m checkoutMocks) {
				m.admit()
				m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(0), nil)
				m.authority.EXPECT().PurchaseReward(gomock.Any(), testBuyerID, testRewardID).Return(nil, errors.New("connection reset"))
			},
			wantErr: true,
		},
		{
			name:     "rate limited",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock: func(m checkoutMocks) {
				m.limiter.EXPECT().Allow(gomock.Any(), LimitKeyStarCheckout(testBuyerID), gomock.Any()).Return(limiter.ErrRateLimited)
			},
			wantErr: true,
		},
		{
			name:     "checkout already running for the star",
			session:  testSession(),
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock: func(m checkoutMocks) {
				m.limiter.EXPECT().Allow(gomock.Any(), LimitKeyStarCheckout(testBuyerID), gomock.Any()).Return(nil)
				m.locker.EXPECT().TryLock(gomock.Any(), LockKeyStarCheckout(testBuyerID)).Return(nil, locker.ErrLocked)
			},
			wantErr: true,
		},
		{
			name:     "malformed reward id",
			session:  testSession(),
			rewardID: "reward-1",
			policy:   defaultPolicy,
			mock:     func(m checkoutMocks) {},
			wantErr:  true,
		},
		{
			name:     "no session",
			rewardID: testRewardID,
			policy:   defaultPolicy,
			mock:     func(m checkoutMocks) {},
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newCheckoutMocks(ctrl)
			tc.mock(m)

			result, err := m.service(tc.policy).Checkout(context.Background(), tc.session, tc.rewardID)
			if tc.wantErr {
				require.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			tc.want(t, result)
		})
	}
}

func TestServiceCheckout_FulfillCheckoutPurchase(t *testing.T) {
	email := "nova@example.com"
	star := models.StarLite{StarName: strPtr("nova"), Email: &email}

	testCases := []struct {
		name     string
		starID   string
		purchase *models.PurchaseResult
		star     models.StarLite
		reward   *models.RewardLite
		policy   models.CheckoutPolicy
		mock     func(m checkoutMocks)
		wantErr  bool
		want     func(t *testing.T, f *models.Fulfillment)
	}{
		{
			name:     "unknown buyer is not stored",
			purchase: welcomePurchase(),
			star:     star,
			reward:   welcomeReward(0).Lite(),
			policy:   models.ParseCheckoutPolicy("", ""),
			mock: func(m checkoutMocks) {
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), star).Return(models.ResolvedCode("WELCOME20"))
				m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).Return(&models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT})
			},
			want: func(t *testing.T, f *models.Fulfillment) {
				assert.True(t, f.Delivery.OK)
				assert.True(t, f.Receipt.Success)
			},
		},
		{
			name:     "unknown buyer is never refunded",
			purchase: welcomePurchase(),
			star:     star,
			reward:   welcomeReward(0).Lite(),
			policy:   models.ParseCheckoutPolicy("refund", ""),
			mock: func(m checkoutMocks) {
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), star).Return(models.ResolveFailed(MESSAGE_FETCH_FAILED))
				m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).Return(&models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT})
			},
			want: func(t *testing.T, f *models.Fulfillment) {
				assert.False(t, f.Delivery.OK)
				assert.False(t, f.Refunded)
			},
		},
		{
			name:     "missing reward summary",
			starID:   testBuyerID,
			purchase: welcomePurchase(),
			star:     star,
			policy:   models.ParseCheckoutPolicy("", ""),
			mock: func(m checkoutMocks) {
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), star).Return(models.ResolvedCode("WELCOME20"))
				m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt *models.Receipt) *models.NotifyResult {
					assert.Equal(t, "Reward", receipt.Products[0].Title)
					assert.Equal(t, int64(0), receipt.Total)
					assert.Equal(t, "nova", receipt.Name)
					return &models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT}
				})
				m.deliveries.EXPECT().SaveDelivery(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: func(t *testing.T, f *models.Fulfillment) {
				assert.True(t, f.Delivery.OK)
			},
		},
		{
			name:     "no email means no receipt",
			starID:   testBuyerID,
			purchase: welcomePurchase(),
			star:     models.StarLite{StarName: strPtr("nova")},
			reward:   welcomeReward(0).Lite(),
			policy:   models.ParseCheckoutPolicy("", ""),
			mock: func(m checkoutMocks) {
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.ResolvedCode("WELCOME20"))
				m.deliveries.EXPECT().SaveDelivery(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: func(t *testing.T, f *models.Fulfillment) {
				assert.Nil(t, f.Receipt)
			},
		},
		{
			name:     "resolved-only receipts skip failed deliveries",
			starID:   testBuyerID,
			purchase: welcomePurchase(),
			star:     star,
			reward:   welcomeReward(0).Lite(),
			policy:   models.ParseCheckoutPolicy("", "resolved"),
			mock: func(m checkoutMocks) {
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.ResolveFailed(MESSAGE_FETCH_FAILED))
				m.deliveries.EXPECT().SaveDelivery(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: func(t *testing.T, f *models.Fulfillment) {
				assert.False(t, f.Delivery.OK)
				assert.Nil(t, f.Receipt)
			},
		},
		{
			name:     "rejected refund still mails the receipt",
			starID:   testBuyerID,
			purchase: welcomePurchase(),
			star:     star,
			reward:   welcomeReward(0).Lite(),
			policy:   models.ParseCheckoutPolicy("refund", ""),
			mock: func(m checkoutMocks) {
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.ResolveFailed(MESSAGE_FETCH_FAILED))
				m.authority.EXPECT().RefundPurchase(gomock.Any(), testBuyerID, "r1").Return(&models.RefundResult{Error: "Already refunded"}, nil)
				m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).Return(&models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT})
				m.deliveries.EXPECT().SaveDelivery(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: func(t *testing.T, f *models.Fulfillment) {
				assert.False(t, f.Refunded)
				assert.Nil(t, f.RefundBalance)
				assert.NotNil(t, f.Receipt)
			},
		},
		{
			name:     "resolver returning nothing is a failed delivery",
			starID:   testBuyerID,
			purchase: welcomePurchase(),
			star:     models.StarLite{},
			reward:   welcomeReward(0).Lite(),
			policy:   models.ParseCheckoutPolicy("", ""),
			mock: func(m checkoutMocks) {
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.deliveries.EXPECT().SaveDelivery(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			want: func(t *testing.T, f *models.Fulfillment) {
				assert.Equal(t, models.ResolveFailed(MESSAGE_RESOLVE_EXCEPTION), f.Delivery)
			},
		},
		{
			name:     "unsuccessful purchase",
			purchase: &models.PurchaseResult{Error: "Out of stock"},
			policy:   models.ParseCheckoutPolicy("", ""),
			mock:     func(m checkoutMocks) {},
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newCheckoutMocks(ctrl)
			tc.mock(m)

			f, err := m.service(tc.policy).fulfill(context.Background(), tc.starID, tc.purchase, tc.star, tc.reward)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.want(t, f)
		})
	}
}

func TestServiceCheckout_Fulfill(t *testing.T) {
	email := "nova@example.com"
	star := models.StarLite{StarName: strPtr("nova"), Email: &email}
	price := int64(20)

	testCases := []struct {
		name     string
		purchase *models.PurchaseResult
		policy   models.CheckoutPolicy
		mock     func(m checkoutMocks)
		want     *models.ResolvedDelivery
	}{
		{
			name: "failed fetch of a client purchase is not refunded",
			purchase: &models.PurchaseResult{
				Success:   true,
				Type:      models.DeliveryTypeFetch,
				Data:      &models.DeliveryData{Fetch: &models.FetchDescriptor{URL: "http://127.0.0.1:1/"}},
				ReceiptID: "11111111-2222-3333-4444-555555555555",
			},
			policy: models.ParseCheckoutPolicy("refund", ""),
			mock: func(m checkoutMocks) {
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), star).Return(models.ResolveFailed("dial tcp: refused"))
				m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).Return(&models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT})
			},
			want: models.ResolveFailed("dial tcp: refused"),
		},
		{
			name: "resolved client purchase is not stored",
			purchase: &models.PurchaseResult{
				Success:   true,
				Type:      models.DeliveryTypeCode,
				Data:      &models.DeliveryData{Code: "WELCOME20"},
				ReceiptID: "r1",
				Price:     &price,
			},
			policy: models.ParseCheckoutPolicy("", ""),
			mock: func(m checkoutMocks) {
				m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), star).Return(models.ResolvedCode("WELCOME20"))
				m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt *models.Receipt) *models.NotifyResult {
					assert.Equal(t, int64(20), receipt.Total)
					return &models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT}
				})
			},
			want: models.ResolvedCode("WELCOME20"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newCheckoutMocks(ctrl)
			tc.mock(m)

			f, err := m.service(tc.policy).Fulfill(context.Background(), tc.purchase, star, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.Delivery)
			assert.False(t, f.Refunded)
		})
	}
}

// The code path never touches the network, so the real resolver can stand in
// for the mock in a full checkout.
func TestServiceCheckout_WithDeliveryResolver(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newCheckoutMocks(ctrl)
	m.admit()
	m.catalog.EXPECT().GetReward(gomock.Any(), testRewardID).Return(welcomeReward(0), nil).Times(2)
	m.authority.EXPECT().PurchaseReward(gomock.Any(), testBuyerID, testRewardID).Return(welcomePurchase(), nil)
	m.stars.EXPECT().FindStarByID(gomock.Any(), testBuyerID).Return(buyer(), nil)
	m.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).Return(&models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT})
	m.deliveries.EXPECT().SaveDelivery(gomock.Any(), gomock.Any()).Return(nil)
	m.catalog.EXPECT().ClearRewardCache(gomock.Any(), testRewardID).Return(nil)
	m.stars.EXPECT().ClearStarCache(gomock.Any(), testBuyerID).Return(errors.New("redis down"))
	m.scores.EXPECT().SetStardustScore(gomock.Any(), testBuyerID, int64(30)).Return(nil)

	service := NewServiceCheckoutFromDeps(CheckoutDeps{
		Authority: m.authority,
		Resolver: newServiceDelivery(doerFunc(func(req *http.Request) (*http.Response, error) {
			t.Fatalf("unexpected request to %s", req.URL)
			return nil, nil
		}), time.Second),
		Notifier:   m.notifier,
		Catalog:    m.catalog,
		Stars:      m.stars,
		Deliveries: m.deliveries,
		Scores:     m.scores,
		Limiter:    m.limiter,
		Locker:     m.locker,
		Policy:     models.ParseCheckoutPolicy("", ""),
		Rate:       redis_rate.PerMinute(CHECKOUT_DEFAULT_RATE_PER_MINUTE),
	})

	result, err := service.Checkout(context.Background(), testSession(), testRewardID)
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStateResolved, result.State)
	assert.Equal(t, "WELCOME20", result.Delivery.Code)
}
