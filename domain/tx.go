package domain

import (
	"github.com/aurabay/goapi/base/ctx"
)

// TxRunner executes a function inside one storage transaction so
// multi-document writes commit or roll back together.
type TxRunner interface {
	RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error
}
