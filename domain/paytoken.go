package domain

import (
	"github.com/aurabay/goapi/base/ctx"
)

// PayToken is the cw20 token offers are denominated in. There is a
// single configured pay token, admins may repoint it.
type PayToken struct {
	Name     string  `json:"name" bson:"name"`
	Symbol   string  `json:"symbol" bson:"symbol"`
	Decimals int32   `json:"decimals" bson:"decimals"`
	Address  Address `json:"address" bson:"address"`
}

type PayTokenRepo interface {
	Get(ctx.Ctx) (*PayToken, error)
	Set(ctx.Ctx, *PayToken) error
}

type PayTokenUseCase interface {
	Get(ctx.Ctx) (*PayToken, error)
	// Set replaces the configured pay token, admin only
	Set(ctx.Ctx, *PayToken) error
}
