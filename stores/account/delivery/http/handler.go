package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/delivery"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/account"
	"github.com/aurabay/goapi/middleware"
)

type handler struct {
	au account.Usecase
}

func New(e *echo.Echo, au account.Usecase) {
	h := &handler{au}

	g := e.Group("/account")
	g.GET("/:account", h.getAccount, middleware.IsValidAddress("account"))
}

func (h *handler) getAccount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := domain.Address(c.Param("account"))

	if res, err := h.au.Get(ctx, address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
