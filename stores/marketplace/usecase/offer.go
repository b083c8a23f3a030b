package usecase

import (
	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chainmsg"
	"github.com/aurabay/goapi/domain/order"
)

func (im *impl) OfferNft(c ctx.Ctx, p *order.OfferNftParams) (*order.Order, error) {
	price, err := positiveAmount(p.Price)
	if err != nil {
		return nil, err
	}
	if p.Collection.IsEmpty() || p.TokenId == "" {
		return nil, domain.ErrCollectionOfferUnsupported
	}

	payToken, err := im.payTokenRepo.Get(c)
	if err != nil {
		return nil, err
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}
	// offers must carry a real deadline sitting in the future
	if p.EndTime == nil || p.EndTime.IsNever() || p.EndTime.IsExpired(block) {
		return nil, domain.ErrInvalidTimeRange
	}

	owner, err := im.nftQuerier.OwnerOf(c, p.Collection, p.TokenId)
	if err != nil {
		return nil, err
	}
	if owner.Equals(p.Sender) {
		return nil, domain.ErrUnauthorized
	}

	if err := im.requireAllowance(c, payToken.Address, p.Sender, price, block); err != nil {
		return nil, err
	}

	// re-offering the same nft replaces the previous offer
	o := &order.Order{
		Type: order.TypeOffer,
		Key: order.Key{
			Actor:      p.Sender,
			Collection: p.Collection,
			TokenId:    p.TokenId,
		}.ToLower(),
		Offerer: p.Sender,
		Offer: order.Item{
			Asset:       asset.NewCw20(payToken.Address, p.Price),
			StartAmount: p.Price,
			EndAmount:   p.Price,
		},
		Consideration: order.ConsiderationItem{
			Item: order.Item{
				Asset: asset.NewNft(p.Collection, p.TokenId),
			},
			Recipient: p.Sender.ToLower(),
		},
		EndTime:   p.EndTime,
		CreatedAt: block.Time,
	}
	if err := im.orderRepo.Upsert(c, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (im *impl) AcceptNftOffer(c ctx.Ctx, p *order.AcceptNftOfferParams) ([]chainmsg.Msg, error) {
	key := order.Key{
		Actor:      p.Offerer,
		Collection: p.Collection,
		TokenId:    p.TokenId,
	}.ToLower()
	offer, err := im.orderRepo.FindOne(c, order.TypeOffer, key)
	if err != nil {
		return nil, err
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}
	if offer.IsExpired(block) {
		return nil, domain.ErrOrderExpired
	}

	if err := im.requireOwnerWithApproval(c, p.Sender, p.Collection, p.TokenId); err != nil {
		return nil, err
	}

	payment, err := offer.Offer.Asset.ToPayment()
	if err != nil {
		return nil, err
	}
	amount, err := domain.ToBigInt(payment.Amount)
	if err != nil {
		return nil, err
	}
	if err := im.requireAllowance(c, payment.Contract, offer.Offerer, amount, block); err != nil {
		return nil, err
	}

	msgs, err := im.settlement.PaymentWithRoyalty(c, p.Collection, p.TokenId, payment, offer.Offerer, p.Sender)
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, chainmsg.NftTransfer(p.Collection, offer.Offerer, p.TokenId))

	// the offer and any stale listing for the nft go together
	err = im.txRunner.RunWithTransaction(c, func(tc ctx.Ctx) error {
		if err := im.orderRepo.Remove(tc, order.TypeOffer, key); err != nil {
			return err
		}
		listingKey := im.marketKey(p.Collection, p.TokenId)
		if err := im.orderRepo.Remove(tc, order.TypeListing, listingKey); err != nil && err != domain.ErrNotFound {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (im *impl) CancelOffers(c ctx.Ctx, sender domain.Address, keys []order.Key) error {
	if len(keys) == 0 {
		return domain.ErrBadParamInput
	}
	if len(keys) > order.MaxBatchCancelSize {
		return domain.ErrTooManyOrders
	}

	// all or nothing, one missing offer rolls the batch back
	return im.txRunner.RunWithTransaction(c, func(tc ctx.Ctx) error {
		for _, key := range keys {
			if !key.Actor.Equals(sender) {
				return domain.ErrUnauthorized
			}
			if err := im.orderRepo.Remove(tc, order.TypeOffer, key.ToLower()); err != nil {
				return err
			}
		}
		return nil
	})
}
