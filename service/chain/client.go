package chain

import (
	"errors"
	"net/http"
	"time"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/nft"
	"github.com/aurabay/goapi/domain/token"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrEmptyResponse   = errors.New("empty response data")
)

// Client talks to a chain LCD endpoint. It backs chain.Client,
// nft.Querier and token.Querier with REST smart queries.
type Client interface {
	LatestBlock(c ctx.Ctx) (domain.BlockInfo, error)

	OwnerOf(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.Address, error)
	HasNeverExpiringApproval(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, operator domain.Address) (bool, error)
	RoyaltyInfo(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, salePrice string) (*nft.RoyaltyInfo, error)

	Allowance(c ctx.Ctx, contract, owner, spender domain.Address) (*token.Allowance, error)
	BankBalance(c ctx.Ctx, owner domain.Address, denom domain.Denom) (string, error)
}

type ClientCfg struct {
	LcdUrl     string
	HttpClient http.Client
	Timeout    time.Duration
}
