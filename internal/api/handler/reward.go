package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"starbyte/internal/models"
	"starbyte/internal/services"
)

type groupReward struct {
	container *do.Injector
}

func (gr *groupReward) GetRewards(c echo.Context) error {
	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var q pageQuery
	if err := c.Bind(&q); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err := c.Validate(&q); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	rewards, err := serviceReward.GetRewards(c.Request().Context(), q.Page, q.Limit)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, rewards, nil)
}

func (gr *groupReward) GetReward(c echo.Context) error {
	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var p idParam
	if err := c.Bind(&p); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err := c.Validate(&p); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	reward, err := serviceReward.GetReward(c.Request().Context(), p.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, reward, nil)
}

func (gr *groupReward) Purchase(c echo.Context) error {
	serviceCheckout, err := do.Invoke[*services.ServiceCheckout](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var p idParam
	if err := c.Bind(&p); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err := c.Validate(&p); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result, err := serviceCheckout.Checkout(ctx, session, p.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

type resolveRequest struct {
	Purchase *models.PurchaseResult `json:"purchase"`
	Star     models.StarLite        `json:"star"`
	Reward   *resolveReward         `json:"reward"`
}

// resolveReward accepts image_url as a single url or a list of urls.
type resolveReward struct {
	ID                   string          `json:"id"`
	Title                string          `json:"title"`
	Description          *string         `json:"description"`
	ImageURL             json.RawMessage `json:"image_url"`
	DeliveryInstructions *string         `json:"delivery_instructions"`
	Price                int64           `json:"price"`
}

func (r *resolveReward) lite() *models.RewardLite {
	if r == nil {
		return nil
	}

	lite := &models.RewardLite{
		ID:                   r.ID,
		Title:                r.Title,
		Description:          r.Description,
		DeliveryInstructions: r.DeliveryInstructions,
		Price:                r.Price,
	}

	image := gjson.ParseBytes(r.ImageURL)
	if image.IsArray() {
		image = image.Get("0")
	}
	if image.Type == gjson.String && image.Str != "" {
		lite.ImageURL = &image.Str
	}
	return lite
}

// Resolve answers with the bare delivery shape instead of the usual envelope:
// 400 for a bad or unsuccessful purchase, 500 when fulfillment itself broke,
// 200 otherwise, including a resolution that failed with a message.
func (gr *groupReward) Resolve(c echo.Context) error {
	serviceCheckout, err := do.Invoke[*services.ServiceCheckout](gr.container)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ResolveFailed(err.Error()))
	}

	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ResolveFailed(services.MESSAGE_INVALID_PURCHASE))
	}

	if req.Purchase == nil || !req.Purchase.Success {
		message := services.MESSAGE_INVALID_PURCHASE
		if req.Purchase != nil && req.Purchase.Error != "" {
			message = req.Purchase.Error
		}
		return c.JSON(http.StatusBadRequest, models.ResolveFailed(message))
	}
	if err := req.Purchase.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ResolveFailed(services.MESSAGE_INVALID_PURCHASE))
	}

	ctx := c.Request().Context()

	fulfillment, err := serviceCheckout.Fulfill(ctx, req.Purchase, req.Star, req.Reward.lite())
	if err != nil {
		zap.L().Error("resolve purchase", zap.String("receipt_id", req.Purchase.ReceiptID), zap.Error(err))
		message := err.Error()
		if message == "" {
			message = services.MESSAGE_RESOLVE_EXCEPTION
		}
		return c.JSON(http.StatusInternalServerError, models.ResolveFailed(message))
	}

	return c.JSON(http.StatusOK, fulfillment.Delivery)
}
