package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/delivery"
	"github.com/aurabay/goapi/base/metrics"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/launchpad"
	"github.com/aurabay/goapi/middleware"
	authMiddleware "github.com/aurabay/goapi/stores/auth/delivery/http/middleware"
)

var met metrics.Service

type handler struct {
	launchpad launchpad.UseCase
}

func New(e *echo.Echo, lp launchpad.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	met = metrics.New("launchpad")

	h := &handler{lp}

	e.POST("/launchpads", h.create, authMiddleware.Auth())

	g := e.Group("/launchpad/:collection", middleware.IsValidAddress("collection"))

	g.GET("", h.getInfo, middleware.CacheHttp(30*time.Second))
	g.GET("/mintable", h.mintable, authMiddleware.Auth())

	g.POST("/activate", h.activate, authMiddleware.Auth())
	g.POST("/withdraw", h.withdraw, authMiddleware.Auth())
	g.POST("/mint", h.mint, authMiddleware.Auth())

	g.POST("/phases", h.addPhase, authMiddleware.Auth())
	g.PUT("/phase/:phaseId", h.updatePhase, authMiddleware.Auth())
	g.DELETE("/phase/:phaseId", h.removePhase, authMiddleware.Auth())
	g.POST("/phase/:phaseId/whitelist", h.addWhitelist, authMiddleware.Auth())
	g.DELETE("/phase/:phaseId/whitelist", h.removeWhitelist, authMiddleware.Auth())
}

func phaseId(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("phaseId"), 10, 64)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &launchpad.CreateParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	if res, err := h.launchpad.Create(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) activate(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		Active bool `json:"active"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	sender := c.Get("address").(domain.Address)
	collection := domain.Address(c.Param("collection"))

	if err := h.launchpad.Activate(ctx, sender, collection, p.Active); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &launchpad.WithdrawParams{
		Sender:     c.Get("address").(domain.Address),
		Collection: domain.Address(c.Param("collection")),
	}

	if msgs, err := h.launchpad.Withdraw(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, msgs)
	}
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &launchpad.MintParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Collection = domain.Address(c.Param("collection"))
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	met.BumpSum("mint", 1, "collection", p.Collection.ToLowerStr())

	if msgs, err := h.launchpad.Mint(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, msgs)
	}
}

func (h *handler) addPhase(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &launchpad.AddPhaseParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Collection = domain.Address(c.Param("collection"))
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	if res, err := h.launchpad.AddPhase(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) updatePhase(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := phaseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid phase id")
	}

	p := &launchpad.UpdatePhaseParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Collection = domain.Address(c.Param("collection"))
	p.PhaseId = id
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	if res, err := h.launchpad.UpdatePhase(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) removePhase(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := phaseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid phase id")
	}

	p := &launchpad.RemovePhaseParams{
		Sender:     c.Get("address").(domain.Address),
		Collection: domain.Address(c.Param("collection")),
		PhaseId:    id,
	}

	if err := h.launchpad.RemovePhase(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) addWhitelist(c echo.Context) error {
	return h.editWhitelist(c, h.launchpad.AddWhitelist)
}

func (h *handler) removeWhitelist(c echo.Context) error {
	return h.editWhitelist(c, h.launchpad.RemoveWhitelist)
}

func (h *handler) editWhitelist(c echo.Context, edit func(ctx.Ctx, *launchpad.WhitelistParams) error) error {
	context := c.Get("ctx").(ctx.Ctx)

	id, err := phaseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid phase id")
	}

	p := &launchpad.WhitelistParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Collection = domain.Address(c.Param("collection"))
	p.PhaseId = id
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	if err := edit(context, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getInfo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	collection := domain.Address(c.Param("collection"))

	if res, err := h.launchpad.GetInfo(ctx, collection); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) mintable(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	collection := domain.Address(c.Param("collection"))
	address := c.Get("address").(domain.Address)

	if res, err := h.launchpad.Mintable(ctx, collection, address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, map[string]uint64{"mintable": res})
	}
}
