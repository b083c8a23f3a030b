package settlement

import (
	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chainmsg"
)

// UseCase routes a sale payment between the token creator and the
// payee according to the collection's royalty config.
type UseCase interface {
	// PaymentWithRoyalty splits the payment. Royalty lookup failures,
	// an empty creator address, a zero royalty and creator == payee
	// all collapse to a single full transfer to the payee. Otherwise
	// the creator cut goes out first, then the checked remainder.
	PaymentWithRoyalty(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, payment asset.PaymentAsset, payer, payee domain.Address) ([]chainmsg.Msg, error)
}
