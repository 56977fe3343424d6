package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"starbyte/internal/models"
)

type ctxKey string

var ctxKeyAuthSession ctxKey = "AUTH_SESSION"

func Authn(verifier interface {
	Validate(token string) (*models.Session, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if len(token) == 0 {
				return next(c)
			}

			session, err := verifier.Validate(token)
			if err != nil {
				zap.L().Debug("reject access token", zap.Error(err))
				// although it's a client error, we don't want to detailed information
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid access token"), errorx.Authn), -1)
				return nil
			}

			ctx := context.WithValue(c.Request().Context(), ctxKeyAuthSession, session)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// ResolveSession returns the snapshot stored by Authn. Handlers get a copy so
// nothing downstream can mutate the request's identity.
func ResolveSession(ctx context.Context) (*models.Session, error) {
	session, ok := ctx.Value(ctxKeyAuthSession).(*models.Session)
	if !ok || session == nil {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	snapshot := *session
	return &snapshot, nil
}
