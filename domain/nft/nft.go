package nft

import (
	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
)

// RoyaltyInfo is the cw2981 royalty answer for one (token, sale price)
// pair. Amount is already scaled to the sale price, floor rounded.
type RoyaltyInfo struct {
	Address domain.Address `json:"address"`
	Amount  string         `json:"royalty_amount"`
}

// Querier reads nft contract state from the chain
type Querier interface {
	// OwnerOf returns the current owner of the token
	OwnerOf(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.Address, error)

	// HasNeverExpiringApproval reports whether operator holds an
	// approval on the token that never expires
	HasNeverExpiringApproval(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, operator domain.Address) (bool, error)

	// RoyaltyInfo queries the cw2981 royalty extension. Contracts
	// without the extension yield an error, callers treat that as no
	// royalty due.
	RoyaltyInfo(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, salePrice string) (*RoyaltyInfo, error)
}
