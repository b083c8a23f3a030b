package token

import (
	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
)

// Allowance is the cw20 allowance granted by an owner to a spender
type Allowance struct {
	Amount  string            `json:"allowance"`
	Expires domain.Expiration `json:"expires"`
}

// Querier reads fungible token state from the chain
type Querier interface {
	// Allowance returns the cw20 allowance owner granted to spender
	Allowance(c ctx.Ctx, contract, owner, spender domain.Address) (*Allowance, error)

	// BankBalance returns the native coin balance of an address
	BankBalance(c ctx.Ctx, owner domain.Address, denom domain.Denom) (string, error)
}
