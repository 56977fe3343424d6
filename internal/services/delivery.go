package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/samber/do"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"starbyte/internal/models"
)

// responses larger than this are not inspected for a code or link
const maxFetchResponseBytes = 1 << 20

type ServiceDelivery struct {
	*ServiceHTTP
}

func NewServiceDelivery(container *do.Injector) (*ServiceDelivery, error) {
	vs, err := do.InvokeNamed[map[string]string](container, "envs")
	if err != nil {
		return nil, err
	}

	timeout, err := ParseFetchTimeout(vs["FETCH_TIMEOUT"])
	if err != nil {
		return nil, err
	}

	return newServiceDelivery(nil, timeout), nil
}

// ParseFetchTimeout reads FETCH_TIMEOUT, empty means the default.
func ParseFetchTimeout(v string) (time.Duration, error) {
	if v == "" {
		return DEFAULT_FETCH_TIMEOUT, nil
	}
	return time.ParseDuration(v)
}

func newServiceDelivery(doer heimdall.Doer, timeout time.Duration) *ServiceDelivery {
	return &ServiceDelivery{&ServiceHTTP{doer: doer, timeout: timeout}}
}

// Resolve turns a successful purchase into something the buyer can use. It
// never returns an error: every failure is reported as ok=false with a
// message.
func (service *ServiceDelivery) Resolve(ctx context.Context, purchase *models.PurchaseResult, star models.StarLite) *models.ResolvedDelivery {
	if purchase == nil || !purchase.Success {
		message := MESSAGE_INVALID_PURCHASE
		if purchase != nil && purchase.Error != "" {
			message = purchase.Error
		}
		return models.ResolveFailed(message)
	}

	data := purchase.Data
	if data == nil {
		data = &models.DeliveryData{}
	}

	var resolved *models.ResolvedDelivery
	switch purchase.Type {
	case models.DeliveryTypeCode:
		resolved = models.ResolvedCode(data.Code)
	case models.DeliveryTypeLink:
		resolved = models.ResolvedLink(data.Link)
	case models.DeliveryTypeFetch:
		resolved = service.resolveFetch(ctx, data.Fetch, star)
	default:
		resolved = models.ResolveFailed(MESSAGE_UNKNOWN_DELIVERY)
	}

	observeDelivery(string(purchase.Type), resolved.OK)
	return resolved
}

type fetchPayload struct {
	StarName *string `json:"starName"`
	Email    *string `json:"email"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio"`
}

func (service *ServiceDelivery) resolveFetch(ctx context.Context, descriptor *models.FetchDescriptor, star models.StarLite) *models.ResolvedDelivery {
	if descriptor == nil || descriptor.URL == "" {
		return models.ResolveFailed(MESSAGE_NO_FETCH_URL)
	}

	method := strings.ToUpper(descriptor.Method)
	if method == "" {
		method = http.MethodPost
	}

	var body io.Reader
	if method != http.MethodGet {
		b, err := json.Marshal(fetchPayload{
			StarName: star.Name(),
			Email:    star.Email,
			Avatar:   star.Avatar,
			Bio:      star.Bio,
		})
		if err != nil {
			return fetchFailed(err)
		}
		body = bytes.NewReader(b)
	}

	if service.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, service.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, descriptor.URL, body)
	if err != nil {
		return fetchFailed(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range descriptor.Headers {
		req.Header.Set(k, v)
	}

	resp, err := service.httpClient(0).Do(req)
	if err != nil {
		// a transport error on one attempt followed by a 5xx on a retry comes
		// back as an error with a response
		if resp != nil {
			resp.Body.Close()
		}
		return fetchFailed(err)
	}
	// 5xx without a transport error is not an error for heimdall, its body
	// is inspected like any other
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchResponseBytes))
	if err != nil {
		return fetchFailed(err)
	}

	if !gjson.ValidBytes(b) {
		zap.L().Debug("fetch delivery returned a non-json body",
			zap.String("url", descriptor.URL),
			zap.Int("status", resp.StatusCode))
		return models.ResolvedFetch(MESSAGE_FETCH_PROCESSED)
	}

	if code := lookupString(b, "data.code", "code"); code != "" {
		return models.ResolvedCode(code)
	}
	if link := lookupString(b, "data.link", "link"); link != "" {
		return models.ResolvedLink(link)
	}
	return models.ResolvedFetch(MESSAGE_FETCH_PROCESSED)
}

// lookupString reads the nested path first and falls back to the top-level
// one when the nested value is absent or null. Only string values count.
func lookupString(b []byte, nested, top string) string {
	res := gjson.GetBytes(b, nested)
	if !res.Exists() || res.Type == gjson.Null {
		res = gjson.GetBytes(b, top)
	}
	if res.Type != gjson.String {
		return ""
	}
	return res.Str
}

func fetchFailed(err error) *models.ResolvedDelivery {
	zap.L().Warn("fetch delivery failed", zap.Error(err))

	message := MESSAGE_FETCH_FAILED
	if errors.Is(err, context.DeadlineExceeded) {
		message = context.DeadlineExceeded.Error()
	} else if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return models.ResolveFailed(message)
}
