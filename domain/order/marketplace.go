package order

import (
	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chainmsg"
)

// MaxBatchCancelSize bounds one CancelOffers call
const MaxBatchCancelSize = 50

// QueryLimit caps page sizes on all order queries
const QueryLimit = int32(30)

type ListNftParams struct {
	Sender     domain.Address     `json:"-"`
	Collection domain.Address     `json:"collection" validate:"required"`
	TokenId    domain.TokenId     `json:"tokenId" validate:"required"`
	Price      asset.PaymentAsset `json:"price" validate:"required"`
	StartTime  *domain.Expiration `json:"startTime,omitempty"`
	EndTime    *domain.Expiration `json:"endTime,omitempty"`
}

type BuyParams struct {
	Sender     domain.Address       `json:"-"`
	Collection domain.Address       `json:"collection" validate:"required"`
	TokenId    domain.TokenId       `json:"tokenId" validate:"required"`
	Funds      []asset.PaymentAsset `json:"funds"`
}

type CancelParams struct {
	Sender     domain.Address `json:"-"`
	Collection domain.Address `json:"collection" validate:"required"`
	TokenId    domain.TokenId `json:"tokenId" validate:"required"`
}

type OfferNftParams struct {
	Sender     domain.Address     `json:"-"`
	Collection domain.Address     `json:"collection" validate:"required"`
	TokenId    domain.TokenId     `json:"tokenId" validate:"required"`
	Price      string             `json:"price" validate:"required"`
	EndTime    *domain.Expiration `json:"endTime" validate:"required"`
}

type AcceptNftOfferParams struct {
	Sender     domain.Address `json:"-"`
	Offerer    domain.Address `json:"offerer" validate:"required"`
	Collection domain.Address `json:"collection" validate:"required"`
	TokenId    domain.TokenId `json:"tokenId" validate:"required"`
}

type AuctionNftParams struct {
	Sender      domain.Address     `json:"-"`
	Collection  domain.Address     `json:"collection" validate:"required"`
	TokenId     domain.TokenId     `json:"tokenId" validate:"required"`
	AuctionType AuctionType        `json:"auctionType" validate:"required"`
	StartPrice  asset.PaymentAsset `json:"startPrice" validate:"required"`
	StartTime   *domain.Expiration `json:"startTime,omitempty"`
	EndTime     *domain.Expiration `json:"endTime" validate:"required"`
	// english options
	StepPercentage *uint64 `json:"stepPercentage,omitempty"`
	BuyoutPrice    *string `json:"buyoutPrice,omitempty"`
	// dutch options
	EndPrice *string `json:"endPrice,omitempty"`
}

type BidAuctionParams struct {
	Sender     domain.Address       `json:"-"`
	Collection domain.Address       `json:"collection" validate:"required"`
	TokenId    domain.TokenId       `json:"tokenId" validate:"required"`
	Price      string               `json:"price" validate:"required"`
	Funds      []asset.PaymentAsset `json:"funds"`
}

type SettleAuctionParams struct {
	Sender     domain.Address `json:"-"`
	Collection domain.Address `json:"collection" validate:"required"`
	TokenId    domain.TokenId `json:"tokenId" validate:"required"`
}

type SettleStatus string

const (
	SettleStatusSuccess SettleStatus = "success"
	SettleStatusFailure SettleStatus = "failure"
)

type SettleResult struct {
	Status SettleStatus   `json:"status"`
	Msgs   []chainmsg.Msg `json:"msgs"`
}

// UseCase is the marketplace state machine. Every execute method
// validates against chain state, persists the outcome and returns the
// ordered outbound instructions the caller must broadcast.
type UseCase interface {
	ListNft(c ctx.Ctx, p *ListNftParams) (*Order, error)
	Buy(c ctx.Ctx, p *BuyParams) ([]chainmsg.Msg, error)
	Cancel(c ctx.Ctx, p *CancelParams) error
	OfferNft(c ctx.Ctx, p *OfferNftParams) (*Order, error)
	AcceptNftOffer(c ctx.Ctx, p *AcceptNftOfferParams) ([]chainmsg.Msg, error)
	CancelOffers(c ctx.Ctx, sender domain.Address, keys []Key) error
	AuctionNft(c ctx.Ctx, p *AuctionNftParams) ([]chainmsg.Msg, error)
	BidAuction(c ctx.Ctx, p *BidAuctionParams) ([]chainmsg.Msg, error)
	SettleAuction(c ctx.Ctx, p *SettleAuctionParams) (*SettleResult, error)

	GetListing(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*Order, error)
	GetListingsByCollection(c ctx.Ctx, collection domain.Address, startAfter *Key, limit int32) ([]*Order, error)
	GetOffer(c ctx.Ctx, offerer, collection domain.Address, tokenId domain.TokenId) (*Order, error)
	GetNftOffers(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, startAfter *Key, limit int32) ([]*Order, error)
	GetUserOffers(c ctx.Ctx, offerer domain.Address, startAfter *Key, limit int32) ([]*Order, error)
	GetAuction(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*Order, error)
	GetOwnerAuctions(c ctx.Ctx, owner domain.Address, startAfter *Key, limit int32) ([]*Order, error)
	GetBuyerAuctions(c ctx.Ctx, buyer domain.Address, startAfter *Key, limit int32) ([]*Order, error)
	// GetValidBidPrice returns the lowest next acceptable english bid,
	// or the current dutch price for dutch auctions
	GetValidBidPrice(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*asset.PaymentAsset, error)

	// SweepExpired removes orders whose end time passed, used by the
	// janitor. Returns the number of removed orders.
	SweepExpired(c ctx.Ctx, typ Type) (int, error)
}
