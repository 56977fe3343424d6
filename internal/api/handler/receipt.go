package handler

import (
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"starbyte/internal/services"
)

type groupReceipt struct {
	container *do.Injector
}

func (gr *groupReceipt) GetDelivery(c echo.Context) error {
	serviceStardust, err := do.Invoke[*services.ServiceStardust](gr.container)
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

	stored, err := serviceStardust.GetReceiptDelivery(ctx, session, p.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, stored, nil)
}
