package usecase

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/ptr"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chainmsg"
	"github.com/aurabay/goapi/domain/order"
)

func englishAuction(current string) *order.Order {
	return &order.Order{
		Type:      order.TypeAuction,
		Key:       marketplaceKey(),
		Offerer:   seller,
		Recipient: seller,
		Offer: order.Item{
			Asset: asset.NewNft(collection, tokenId),
		},
		Consideration: order.ConsiderationItem{
			Item: order.Item{
				Asset:       asset.NewNative("uaura", current),
				StartAmount: current,
			},
			Recipient: seller,
		},
		StartTime: atTime(blockTime.Add(-time.Hour)),
		EndTime:   atTime(blockTime.Add(time.Hour)),
		Auction: &order.AuctionConfig{
			Type:           order.AuctionTypeEnglish,
			StepPercentage: order.DefaultStepPercentage,
		},
		CreatedAt: blockTime.Add(-time.Hour),
	}
}

func dutchAuction(start, floor, step string) *order.Order {
	o := englishAuction(start)
	o.Consideration.EndAmount = floor
	o.Auction = &order.AuctionConfig{
		Type:       order.AuctionTypeDutch,
		StepAmount: step,
	}
	return o
}

func (s *MarketplaceTestSuite) TestAuctionNftEscrowsNft() {
	s.givenBlock(blockTime)
	s.givenOwnerWithApproval(seller)
	saved := s.captureUpsert()

	msgs, err := s.im.AuctionNft(mockCtx, &order.AuctionNftParams{
		Sender:      seller,
		Collection:  collection,
		TokenId:     tokenId,
		AuctionType: order.AuctionTypeEnglish,
		StartPrice:  asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "100"},
		EndTime:     atTime(blockTime.Add(time.Hour)),
	})
	s.NoError(err)
	s.Equal([]chainmsg.Msg{chainmsg.NftTransfer(collection, market, tokenId)}, msgs)

	o := *saved
	s.Equal(order.TypeAuction, o.Type)
	s.Equal(order.DefaultStepPercentage, o.Auction.StepPercentage)
	// no bid yet, the offerer holds the recipient slot
	s.Equal(o.Offerer, o.Recipient)
	// start defaults to just after the current block
	s.Equal(atTime(blockTime.Add(time.Second)), o.StartTime)
}

func (s *MarketplaceTestSuite) TestAuctionNftRejectsCw20StartPrice() {
	_, err := s.im.AuctionNft(mockCtx, &order.AuctionNftParams{
		Sender:      seller,
		Collection:  collection,
		TokenId:     tokenId,
		AuctionType: order.AuctionTypeEnglish,
		StartPrice:  asset.PaymentAsset{Kind: asset.KindCw20, Contract: payTokenAddr, Amount: "100"},
		EndTime:     atTime(blockTime.Add(time.Hour)),
	})
	s.ErrorIs(err, domain.ErrInvalidAuctionConfig)
}

func (s *MarketplaceTestSuite) TestAuctionNftDutchComputesStep() {
	s.givenBlock(blockTime)
	s.givenOwnerWithApproval(seller)
	saved := s.captureUpsert()

	// 600 over 60 minutes, 10 per minute
	_, err := s.im.AuctionNft(mockCtx, &order.AuctionNftParams{
		Sender:      seller,
		Collection:  collection,
		TokenId:     tokenId,
		AuctionType: order.AuctionTypeDutch,
		StartPrice:  asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "1000"},
		StartTime:   atTime(blockTime.Add(time.Minute)),
		EndTime:     atTime(blockTime.Add(61 * time.Minute)),
		EndPrice:    ptr.String("400"),
	})
	s.NoError(err)
	s.Equal("10", (*saved).Auction.StepAmount)
	s.Equal("400", (*saved).Consideration.EndAmount)
}

func (s *MarketplaceTestSuite) TestAuctionNftDutchRejectsFloorAboveStart() {
	s.givenBlock(blockTime)
	s.givenOwnerWithApproval(seller)

	_, err := s.im.AuctionNft(mockCtx, &order.AuctionNftParams{
		Sender:      seller,
		Collection:  collection,
		TokenId:     tokenId,
		AuctionType: order.AuctionTypeDutch,
		StartPrice:  asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "1000"},
		StartTime:   atTime(blockTime.Add(time.Minute)),
		EndTime:     atTime(blockTime.Add(61 * time.Minute)),
		EndPrice:    ptr.String("1000"),
	})
	s.ErrorIs(err, domain.ErrInvalidAuctionConfig)
}

func (s *MarketplaceTestSuite) TestBidAuctionFirstBidMustClearStartPrice() {
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).
		Return(func(c ctx.Ctx, typ order.Type, key order.Key) *order.Order { return englishAuction("100") }, nil)
	s.givenBlock(blockTime)

	_, err := s.im.BidAuction(mockCtx, &order.BidAuctionParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "99",
		Funds:      []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "99"}},
	})
	s.ErrorIs(err, domain.ErrBidTooLow)

	saved := s.captureUpsert()
	msgs, err := s.im.BidAuction(mockCtx, &order.BidAuctionParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "100",
		Funds:      []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "100"}},
	})
	s.NoError(err)
	s.Empty(msgs)
	s.Equal(buyer, (*saved).Recipient)
	s.Equal("100", (*saved).Consideration.Asset.Amount)
}

func (s *MarketplaceTestSuite) TestBidAuctionOutbidRefundsPrevious() {
	previous := domain.Address("aura1previous")
	auction := englishAuction("100")
	auction.Recipient = previous
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime)

	// step is 5 percent, 104 misses the 105 floor
	_, err := s.im.BidAuction(mockCtx, &order.BidAuctionParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "104",
		Funds:      []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "104"}},
	})
	s.ErrorIs(err, domain.ErrBidTooLow)

	saved := s.captureUpsert()
	msgs, err := s.im.BidAuction(mockCtx, &order.BidAuctionParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "105",
		Funds:      []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "105"}},
	})
	s.NoError(err)
	s.Equal([]chainmsg.Msg{chainmsg.BankSend(previous, "uaura", "100")}, msgs)
	s.Equal(buyer, (*saved).Recipient)
	s.Equal("105", (*saved).Consideration.Asset.Amount)
}

func (s *MarketplaceTestSuite) TestBidAuctionAntiSnipe() {
	auction := englishAuction("100")
	auction.EndTime = atTime(blockTime.Add(5 * time.Minute))
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime)
	saved := s.captureUpsert()

	_, err := s.im.BidAuction(mockCtx, &order.BidAuctionParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "100",
		Funds:      []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "100"}},
	})
	s.NoError(err)
	// five minutes left, the clock jumps to now plus ten
	s.Equal(atTime(blockTime.Add(10*time.Minute)), (*saved).EndTime)
}

func (s *MarketplaceTestSuite) TestBidAuctionKeepsDistantDeadline() {
	auction := englishAuction("100")
	auction.EndTime = atTime(blockTime.Add(30 * time.Minute))
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime)
	saved := s.captureUpsert()

	_, err := s.im.BidAuction(mockCtx, &order.BidAuctionParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "100",
		Funds:      []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "100"}},
	})
	s.NoError(err)
	s.Equal(atTime(blockTime.Add(30*time.Minute)), (*saved).EndTime)
}

func (s *MarketplaceTestSuite) TestBidAuctionBuyoutSettlesImmediately() {
	auction := englishAuction("100")
	auction.Auction.BuyoutPrice = "200"
	payment := asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "200"}
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime)
	s.settlement.On("PaymentWithRoyalty", mock.Anything, collection, tokenId, payment, market, seller).
		Return([]chainmsg.Msg{chainmsg.BankSend(seller, "uaura", "200")}, nil)
	s.orderRepo.On("Remove", mock.Anything, order.TypeAuction, marketplaceKey()).Return(nil)

	msgs, err := s.im.BidAuction(mockCtx, &order.BidAuctionParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "200",
		Funds:      []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "200"}},
	})
	s.NoError(err)
	s.Equal([]chainmsg.Msg{
		chainmsg.BankSend(seller, "uaura", "200"),
		chainmsg.NftTransfer(collection, buyer, tokenId),
	}, msgs)
	s.orderRepo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *MarketplaceTestSuite) TestBidAuctionRejectsOwnAuction() {
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).
		Return(englishAuction("100"), nil)
	s.givenBlock(blockTime)

	_, err := s.im.BidAuction(mockCtx, &order.BidAuctionParams{
		Sender:     seller,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "100",
		Funds:      []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "100"}},
	})
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *MarketplaceTestSuite) TestBidAuctionRejectsDutch() {
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).
		Return(dutchAuction("1000", "400", "10"), nil)

	_, err := s.im.BidAuction(mockCtx, &order.BidAuctionParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Price:      "1000",
		Funds:      []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "1000"}},
	})
	s.ErrorIs(err, domain.ErrInvalidAuctionConfig)
}

func (s *MarketplaceTestSuite) TestSettleAuctionNoBidReturnsNft() {
	auction := englishAuction("100")
	auction.EndTime = atTime(blockTime.Add(-time.Minute))
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime)
	s.orderRepo.On("Remove", mock.Anything, order.TypeAuction, marketplaceKey()).Return(nil)

	res, err := s.im.SettleAuction(mockCtx, &order.SettleAuctionParams{
		Sender:     seller,
		Collection: collection,
		TokenId:    tokenId,
	})
	s.NoError(err)
	s.Equal(order.SettleStatusFailure, res.Status)
	s.Equal([]chainmsg.Msg{chainmsg.NftTransfer(collection, seller, tokenId)}, res.Msgs)
	s.settlement.AssertNotCalled(s.T(), "PaymentWithRoyalty",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *MarketplaceTestSuite) TestSettleAuctionPaysFromEscrow() {
	auction := englishAuction("100")
	auction.Recipient = buyer
	auction.Consideration.Asset = asset.NewNative("uaura", "105")
	auction.EndTime = atTime(blockTime.Add(-time.Minute))
	payment := asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "105"}
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime)
	s.settlement.On("PaymentWithRoyalty", mock.Anything, collection, tokenId, payment, market, seller).
		Return([]chainmsg.Msg{chainmsg.BankSend(seller, "uaura", "105")}, nil)
	s.orderRepo.On("Remove", mock.Anything, order.TypeAuction, marketplaceKey()).Return(nil)

	res, err := s.im.SettleAuction(mockCtx, &order.SettleAuctionParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
	})
	s.NoError(err)
	s.Equal(order.SettleStatusSuccess, res.Status)
	s.Equal([]chainmsg.Msg{
		chainmsg.BankSend(seller, "uaura", "105"),
		chainmsg.NftTransfer(collection, buyer, tokenId),
	}, res.Msgs)
}

func (s *MarketplaceTestSuite) TestSettleAuctionRejectsEarly() {
	auction := englishAuction("100")
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime)

	_, err := s.im.SettleAuction(mockCtx, &order.SettleAuctionParams{
		Sender:     seller,
		Collection: collection,
		TokenId:    tokenId,
	})
	s.ErrorIs(err, domain.ErrOrderNotExpired)
}

func (s *MarketplaceTestSuite) TestSettleAuctionRejectsStranger() {
	auction := englishAuction("100")
	auction.EndTime = atTime(blockTime.Add(-time.Minute))
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)

	_, err := s.im.SettleAuction(mockCtx, &order.SettleAuctionParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
	})
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *MarketplaceTestSuite) TestGetValidBidPriceEnglish() {
	auction := englishAuction("100")
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime)

	// no bid yet, the start price clears
	price, err := s.im.GetValidBidPrice(mockCtx, collection, tokenId)
	s.NoError(err)
	s.Equal("100", price.Amount)

	s.SetupTest()
	auction = englishAuction("100")
	auction.Recipient = buyer
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime)

	price, err = s.im.GetValidBidPrice(mockCtx, collection, tokenId)
	s.NoError(err)
	s.Equal("105", price.Amount)
}

func (s *MarketplaceTestSuite) TestGetValidBidPriceDutch() {
	auction := dutchAuction("1000", "400", "10")
	auction.StartTime = atTime(blockTime)
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime.Add(30 * time.Minute))

	price, err := s.im.GetValidBidPrice(mockCtx, collection, tokenId)
	s.NoError(err)
	s.Equal("700", price.Amount)
}

func (s *MarketplaceTestSuite) TestGetValidBidPriceDutchClampsAtFloor() {
	auction := dutchAuction("1000", "400", "10")
	auction.StartTime = atTime(blockTime)
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime.Add(90 * time.Minute))

	price, err := s.im.GetValidBidPrice(mockCtx, collection, tokenId)
	s.NoError(err)
	s.Equal("400", price.Amount)
}

func (s *MarketplaceTestSuite) TestGetValidBidPriceDutchBeforeStart() {
	auction := dutchAuction("1000", "400", "10")
	auction.StartTime = atTime(blockTime.Add(time.Hour))
	s.orderRepo.On("FindOne", mock.Anything, order.TypeAuction, marketplaceKey()).Return(auction, nil)
	s.givenBlock(blockTime)

	price, err := s.im.GetValidBidPrice(mockCtx, collection, tokenId)
	s.NoError(err)
	s.Equal("1000", price.Amount)
}
