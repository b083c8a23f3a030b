package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/delivery"
	"github.com/aurabay/goapi/domain"
	authMiddleware "github.com/aurabay/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	payToken domain.PayTokenUseCase
}

func New(e *echo.Echo, payToken domain.PayTokenUseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{payToken}

	g := e.Group("/paytoken")
	g.GET("", h.get)
	g.PUT("", h.set, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := h.payToken.Get(ctx); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) set(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &domain.PayToken{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.payToken.Set(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
