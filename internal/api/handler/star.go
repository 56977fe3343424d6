package handler

import (
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"starbyte/internal/services"
)

type groupStar struct {
	container *do.Injector
}

func (gr *groupStar) Me(c echo.Context) error {
	serviceStar, err := do.Invoke[*services.ServiceStar](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	star, err := serviceStar.FindStarByID(ctx, session.StarID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, star, nil)
}

func (gr *groupStar) GetTransactions(c echo.Context) error {
	serviceStardust, err := do.Invoke[*services.ServiceStardust](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var q pageQuery
	if err := c.Bind(&q); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err := c.Validate(&q); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	txs, err := serviceStardust.GetTransactions(ctx, session.StarID, q.Page, q.Limit)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, txs, nil)
}
