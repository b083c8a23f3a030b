package usecase

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chainmsg"
	"github.com/aurabay/goapi/domain/order"
	"github.com/aurabay/goapi/domain/token"
)

var payTokenAddr = domain.Address("aura1vaura")

func (s *MarketplaceTestSuite) givenPayToken() {
	s.payTokenRepo.On("Get", mock.Anything).
		Return(&domain.PayToken{Name: "Wrapped Aura", Symbol: "vAURA", Decimals: 6, Address: payTokenAddr}, nil)
}

func (s *MarketplaceTestSuite) givenTxRunner() {
	s.txRunner.On("RunWithTransaction", mock.Anything, mock.Anything).
		Return(func(c ctx.Ctx, run func(ctx.Ctx) error) error {
			return run(c)
		})
}

func offerKey() order.Key {
	return order.Key{Actor: buyer, Collection: collection, TokenId: tokenId}
}

func cw20Offer(amount string) *order.Order {
	return &order.Order{
		Type:    order.TypeOffer,
		Key:     offerKey(),
		Offerer: buyer,
		Offer: order.Item{
			Asset:       asset.NewCw20(payTokenAddr, amount),
			StartAmount: amount,
			EndAmount:   amount,
		},
		Consideration: order.ConsiderationItem{
			Item: order.Item{
				Asset: asset.NewNft(collection, tokenId),
			},
			Recipient: buyer,
		},
		EndTime:   atTime(blockTime.Add(time.Hour)),
		CreatedAt: blockTime,
	}
}

func (s *MarketplaceTestSuite) TestOfferNftStoresOrder() {
	s.givenPayToken()
	s.givenBlock(blockTime)
	s.nftQuerier.On("OwnerOf", mock.Anything, collection, tokenId).Return(seller, nil)
	s.tokenQuerier.On("Allowance", mock.Anything, payTokenAddr, buyer, market).
		Return(&token.Allowance{Amount: "100", Expires: domain.NeverExpires()}, nil)
	saved := s.captureUpsert()

	res, err := s.im.OfferNft(mockCtx, &order.OfferNftParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "100",
		EndTime:    atTime(blockTime.Add(time.Hour)),
	})
	s.NoError(err)
	s.Equal(*saved, res)
	s.Equal(order.TypeOffer, res.Type)
	s.Equal(offerKey(), res.Key)
	s.Equal(asset.NewCw20(payTokenAddr, "100"), res.Offer.Asset)
	s.Equal(buyer, res.Consideration.Recipient)
}

func (s *MarketplaceTestSuite) TestOfferNftRejectsOwner() {
	s.givenPayToken()
	s.givenBlock(blockTime)
	s.nftQuerier.On("OwnerOf", mock.Anything, collection, tokenId).Return(buyer, nil)

	_, err := s.im.OfferNft(mockCtx, &order.OfferNftParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "100",
		EndTime:    atTime(blockTime.Add(time.Hour)),
	})
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *MarketplaceTestSuite) TestOfferNftRequiresFutureDeadline() {
	s.givenPayToken()
	s.givenBlock(blockTime)

	_, err := s.im.OfferNft(mockCtx, &order.OfferNftParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "100",
	})
	s.ErrorIs(err, domain.ErrInvalidTimeRange)

	_, err = s.im.OfferNft(mockCtx, &order.OfferNftParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "100",
		EndTime:    atTime(blockTime.Add(-time.Minute)),
	})
	s.ErrorIs(err, domain.ErrInvalidTimeRange)
}

func (s *MarketplaceTestSuite) TestOfferNftRejectsShortAllowance() {
	s.givenPayToken()
	s.givenBlock(blockTime)
	s.nftQuerier.On("OwnerOf", mock.Anything, collection, tokenId).Return(seller, nil)
	s.tokenQuerier.On("Allowance", mock.Anything, payTokenAddr, buyer, market).
		Return(&token.Allowance{Amount: "50", Expires: domain.NeverExpires()}, nil)

	_, err := s.im.OfferNft(mockCtx, &order.OfferNftParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "100",
		EndTime:    atTime(blockTime.Add(time.Hour)),
	})
	s.ErrorIs(err, domain.ErrInsufficientAllowance)
}

func (s *MarketplaceTestSuite) TestOfferNftWithoutPayToken() {
	s.payTokenRepo.On("Get", mock.Anything).Return(nil, domain.ErrPayTokenNotSet)

	_, err := s.im.OfferNft(mockCtx, &order.OfferNftParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "100",
		EndTime:    atTime(blockTime.Add(time.Hour)),
	})
	s.ErrorIs(err, domain.ErrPayTokenNotSet)
}

func (s *MarketplaceTestSuite) TestAcceptNftOfferSettlesAndCleansUp() {
	offer := cw20Offer("100")
	payment := asset.PaymentAsset{Kind: asset.KindCw20, Contract: payTokenAddr, Amount: "100"}
	s.orderRepo.On("FindOne", mock.Anything, order.TypeOffer, offerKey()).Return(offer, nil)
	s.givenBlock(blockTime)
	s.givenOwnerWithApproval(seller)
	s.tokenQuerier.On("Allowance", mock.Anything, payTokenAddr, buyer, market).
		Return(&token.Allowance{Amount: "100", Expires: domain.NeverExpires()}, nil)
	s.settlement.On("PaymentWithRoyalty", mock.Anything, collection, tokenId, payment, buyer, seller).
		Return([]chainmsg.Msg{chainmsg.Cw20TransferFrom(payTokenAddr, buyer, seller, "100")}, nil)
	s.givenTxRunner()
	s.orderRepo.On("Remove", mock.Anything, order.TypeOffer, offerKey()).Return(nil)
	// a stale listing may or may not exist, a miss is fine
	s.orderRepo.On("Remove", mock.Anything, order.TypeListing, marketplaceKey()).Return(domain.ErrNotFound)

	msgs, err := s.im.AcceptNftOffer(mockCtx, &order.AcceptNftOfferParams{
		Sender:     seller,
		Offerer:    buyer,
		Collection: collection,
		TokenId:    tokenId,
	})
	s.NoError(err)
	s.Equal([]chainmsg.Msg{
		chainmsg.Cw20TransferFrom(payTokenAddr, buyer, seller, "100"),
		chainmsg.NftTransfer(collection, buyer, tokenId),
	}, msgs)
	s.orderRepo.AssertExpectations(s.T())
}

func (s *MarketplaceTestSuite) TestAcceptNftOfferRejectsExpired() {
	offer := cw20Offer("100")
	offer.EndTime = atTime(blockTime.Add(-time.Minute))
	s.orderRepo.On("FindOne", mock.Anything, order.TypeOffer, offerKey()).Return(offer, nil)
	s.givenBlock(blockTime)

	_, err := s.im.AcceptNftOffer(mockCtx, &order.AcceptNftOfferParams{
		Sender:     seller,
		Offerer:    buyer,
		Collection: collection,
		TokenId:    tokenId,
	})
	s.ErrorIs(err, domain.ErrOrderExpired)
}

func (s *MarketplaceTestSuite) TestCancelOffersRejectsOversizedBatch() {
	keys := make([]order.Key, order.MaxBatchCancelSize+1)
	for i := range keys {
		keys[i] = order.Key{Actor: buyer, Collection: collection, TokenId: domain.TokenId(rune('a' + i))}
	}

	err := s.im.CancelOffers(mockCtx, buyer, keys)
	s.ErrorIs(err, domain.ErrTooManyOrders)
}

func (s *MarketplaceTestSuite) TestCancelOffersRejectsForeignKey() {
	s.givenTxRunner()

	err := s.im.CancelOffers(mockCtx, buyer, []order.Key{
		{Actor: seller, Collection: collection, TokenId: tokenId},
	})
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *MarketplaceTestSuite) TestCancelOffersAllOrNothing() {
	s.givenTxRunner()
	first := order.Key{Actor: buyer, Collection: collection, TokenId: "1"}
	second := order.Key{Actor: buyer, Collection: collection, TokenId: "2"}
	s.orderRepo.On("Remove", mock.Anything, order.TypeOffer, first).Return(nil)
	s.orderRepo.On("Remove", mock.Anything, order.TypeOffer, second).Return(domain.ErrNotFound)

	err := s.im.CancelOffers(mockCtx, buyer, []order.Key{first, second})
	s.ErrorIs(err, domain.ErrNotFound)
}
