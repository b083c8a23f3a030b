package chain

import (
	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
)

// Client reads chain head state. Handlers grab one BlockInfo per call
// and evaluate every deadline against it.
type Client interface {
	LatestBlock(c ctx.Ctx) (domain.BlockInfo, error)
}
