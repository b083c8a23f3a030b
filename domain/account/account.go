package account

import (
	"time"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
)

// Account is a user record created lazily on first token issuance
type Account struct {
	Address   domain.Address `json:"address" bson:"address"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt,omitempty"`
}

type Repo interface {
	Get(c ctx.Ctx, address domain.Address) (*Account, error)
	Insert(c ctx.Ctx, account *Account) error
}

type Usecase interface {
	Get(c ctx.Ctx, address domain.Address) (*Account, error)
	Create(c ctx.Ctx, address domain.Address) (*Account, error)
}
