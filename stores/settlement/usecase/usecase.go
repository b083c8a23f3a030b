package usecase

import (
	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chainmsg"
	"github.com/aurabay/goapi/domain/nft"
	"github.com/aurabay/goapi/domain/settlement"
)

type SettlementUseCaseCfg struct {
	NftQuerier nft.Querier
}

type impl struct {
	nftQuerier nft.Querier
}

func New(cfg *SettlementUseCaseCfg) settlement.UseCase {
	return &impl{
		nftQuerier: cfg.NftQuerier,
	}
}

func (im *impl) PaymentWithRoyalty(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, payment asset.PaymentAsset, payer, payee domain.Address) ([]chainmsg.Msg, error) {
	price, err := payment.AmountBig()
	if err != nil {
		return nil, err
	}

	full := []chainmsg.Msg{chainmsg.Pay(payment, payer, payee)}

	royalty, err := im.nftQuerier.RoyaltyInfo(c, collection, tokenId, payment.Amount)
	if err != nil {
		// collections without a royalty config settle in full
		c.WithFields(log.Fields{
			"collection": collection,
			"tokenId":    tokenId,
			"err":        err,
		}).Info("royalty lookup failed, paying in full")
		return full, nil
	}

	if royalty.Address.IsEmpty() || royalty.Address.Equals(payee) {
		return full, nil
	}

	royaltyAmount, err := domain.ToBigInt(royalty.Amount)
	if err != nil {
		return nil, err
	}
	if royaltyAmount.Sign() == 0 {
		return full, nil
	}
	if royaltyAmount.Cmp(price) > 0 {
		return nil, domain.ErrRoyaltyExceedsPrice
	}

	remainder := price.Sub(price, royaltyAmount)
	return []chainmsg.Msg{
		chainmsg.Pay(payment.WithAmount(royaltyAmount), payer, royalty.Address),
		chainmsg.Pay(payment.WithAmount(remainder), payer, payee),
	}, nil
}
