package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/delivery"
	"github.com/aurabay/goapi/base/metrics"
	"github.com/aurabay/goapi/base/pricefmt"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/order"
	"github.com/aurabay/goapi/middleware"
	authMiddleware "github.com/aurabay/goapi/stores/auth/delivery/http/middleware"
)

var met metrics.Service

type handler struct {
	marketplace order.UseCase
}

func New(e *echo.Echo, marketplace order.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	met = metrics.New("marketplace")

	h := &handler{marketplace}

	g := e.Group("/marketplace")

	g.POST("/listings", h.listNft, authMiddleware.Auth())
	g.DELETE("/listing/:collection/:tokenId", h.cancel, middleware.IsValidAddress("collection"), authMiddleware.Auth())
	g.POST("/buy", h.buy, authMiddleware.Auth())
	g.GET("/listing/:collection/:tokenId", h.getListing, middleware.IsValidAddress("collection"))
	g.GET("/listings/:collection", h.getListings, middleware.IsValidAddress("collection"), middleware.CacheHttp(30*time.Second))

	g.POST("/offers", h.offerNft, authMiddleware.Auth())
	g.POST("/offers/accept", h.acceptOffer, authMiddleware.Auth())
	g.POST("/offers/cancel", h.cancelOffers, authMiddleware.Auth())
	g.GET("/offer/:offerer/:collection/:tokenId", h.getOffer, middleware.IsValidAddress("offerer"), middleware.IsValidAddress("collection"))
	g.GET("/offers/:collection/:tokenId", h.getNftOffers, middleware.IsValidAddress("collection"))
	g.GET("/user/:account/offers", h.getUserOffers, middleware.IsValidAddress("account"))

	g.POST("/auctions", h.auctionNft, authMiddleware.Auth())
	g.POST("/auctions/bid", h.bidAuction, authMiddleware.Auth())
	g.POST("/auctions/settle", h.settleAuction, authMiddleware.Auth())
	g.GET("/auction/:collection/:tokenId", h.getAuction, middleware.IsValidAddress("collection"))
	g.GET("/auction/:collection/:tokenId/bidPrice", h.getValidBidPrice, middleware.IsValidAddress("collection"))
	g.GET("/user/:account/auctions", h.getUserAuctions, middleware.IsValidAddress("account"))
}

// pageParams are the shared cursor params of all order list queries
type pageParams struct {
	Limit              int32          `query:"limit"`
	StartAfterActor    domain.Address `query:"startAfterActor"`
	StartAfterTokenId  domain.TokenId `query:"startAfterTokenId"`
	StartAfterContract domain.Address `query:"startAfterCollection"`
}

func (p *pageParams) startAfter() *order.Key {
	if p.StartAfterActor.IsEmpty() {
		return nil
	}
	return &order.Key{
		Actor:      p.StartAfterActor,
		Collection: p.StartAfterContract,
		TokenId:    p.StartAfterTokenId,
	}
}

func (h *handler) listNft(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &order.ListNftParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	if res, err := h.marketplace.ListNft(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &order.BuyParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	met.BumpSum("buy", 1, "collection", p.Collection.ToLowerStr())

	if msgs, err := h.marketplace.Buy(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, msgs)
	}
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &order.CancelParams{
		Sender:     c.Get("address").(domain.Address),
		Collection: domain.Address(c.Param("collection")),
		TokenId:    domain.TokenId(c.Param("tokenId")),
	}

	if err := h.marketplace.Cancel(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) offerNft(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &order.OfferNftParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	if res, err := h.marketplace.OfferNft(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) acceptOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &order.AcceptNftOfferParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	if msgs, err := h.marketplace.AcceptNftOffer(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, msgs)
	}
}

func (h *handler) cancelOffers(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		Keys []order.Key `json:"keys" validate:"required,min=1"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	sender := c.Get("address").(domain.Address)

	if err := h.marketplace.CancelOffers(ctx, sender, p.Keys); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) auctionNft(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &order.AuctionNftParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	if msgs, err := h.marketplace.AuctionNft(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, msgs)
	}
}

func (h *handler) bidAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &order.BidAuctionParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	met.BumpSum("bid", 1, "collection", p.Collection.ToLowerStr())

	if msgs, err := h.marketplace.BidAuction(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, msgs)
	}
}

func (h *handler) settleAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &order.SettleAuctionParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Sender = c.Get("address").(domain.Address)

	if res, err := h.marketplace.SettleAuction(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	collection := domain.Address(c.Param("collection"))
	tokenId := domain.TokenId(c.Param("tokenId"))

	if res, err := h.marketplace.GetListing(ctx, collection, tokenId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) getListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &pageParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	collection := domain.Address(c.Param("collection"))

	if res, err := h.marketplace.GetListingsByCollection(ctx, collection, p.startAfter(), p.Limit); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) getOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	offerer := domain.Address(c.Param("offerer"))
	collection := domain.Address(c.Param("collection"))
	tokenId := domain.TokenId(c.Param("tokenId"))

	if res, err := h.marketplace.GetOffer(ctx, offerer, collection, tokenId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) getNftOffers(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &pageParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	collection := domain.Address(c.Param("collection"))
	tokenId := domain.TokenId(c.Param("tokenId"))

	if res, err := h.marketplace.GetNftOffers(ctx, collection, tokenId, p.startAfter(), p.Limit); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) getUserOffers(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &pageParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	offerer := domain.Address(c.Param("account"))

	if res, err := h.marketplace.GetUserOffers(ctx, offerer, p.startAfter(), p.Limit); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	collection := domain.Address(c.Param("collection"))
	tokenId := domain.TokenId(c.Param("tokenId"))

	if res, err := h.marketplace.GetAuction(ctx, collection, tokenId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// uaura carries 6 decimals
const nativeDecimals = int32(6)

func (h *handler) getValidBidPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	collection := domain.Address(c.Param("collection"))
	tokenId := domain.TokenId(c.Param("tokenId"))

	res, err := h.marketplace.GetValidBidPrice(ctx, collection, tokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	display, err := pricefmt.FormatAmount(res.Amount, nativeDecimals)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"price":   res,
		"display": display,
	})
}

func (h *handler) getUserAuctions(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		pageParams
		Side string `query:"side"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	account := domain.Address(c.Param("account"))

	var res interface{}
	var err error
	if p.Side == "buyer" {
		res, err = h.marketplace.GetBuyerAuctions(ctx, account, p.startAfter(), p.Limit)
	} else {
		res, err = h.marketplace.GetOwnerAuctions(ctx, account, p.startAfter(), p.Limit)
	}
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
