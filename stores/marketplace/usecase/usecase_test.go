package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chainmsg"
	mChain "github.com/aurabay/goapi/domain/chain/mocks"
	mDomain "github.com/aurabay/goapi/domain/mocks"
	mNft "github.com/aurabay/goapi/domain/nft/mocks"
	"github.com/aurabay/goapi/domain/order"
	mOrder "github.com/aurabay/goapi/domain/order/mocks"
	mSettlement "github.com/aurabay/goapi/domain/settlement/mocks"
	"github.com/aurabay/goapi/domain/token"
	mToken "github.com/aurabay/goapi/domain/token/mocks"
)

var (
	mockCtx    = ctx.Background()
	market     = domain.Address("aura1market")
	seller     = domain.Address("aura1seller")
	buyer      = domain.Address("aura1buyer")
	collection = domain.Address("aura1collection")
	tokenId    = domain.TokenId("7")
	blockTime  = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func atTime(t time.Time) *domain.Expiration {
	e := domain.ExpiresAtTime(t)
	return &e
}

type MarketplaceTestSuite struct {
	suite.Suite

	orderRepo    *mOrder.Repo
	payTokenRepo *mDomain.PayTokenRepo
	settlement   *mSettlement.UseCase
	nftQuerier   *mNft.Querier
	tokenQuerier *mToken.Querier
	chainClient  *mChain.Client
	txRunner     *mDomain.TxRunner
	im           order.UseCase
}

func (s *MarketplaceTestSuite) SetupTest() {
	s.orderRepo = &mOrder.Repo{}
	s.payTokenRepo = &mDomain.PayTokenRepo{}
	s.settlement = &mSettlement.UseCase{}
	s.nftQuerier = &mNft.Querier{}
	s.tokenQuerier = &mToken.Querier{}
	s.chainClient = &mChain.Client{}
	s.txRunner = &mDomain.TxRunner{}
	s.im = New(&MarketplaceUseCaseCfg{
		OrderRepo:     s.orderRepo,
		PayTokenRepo:  s.payTokenRepo,
		Settlement:    s.settlement,
		NftQuerier:    s.nftQuerier,
		TokenQuerier:  s.tokenQuerier,
		ChainClient:   s.chainClient,
		TxRunner:      s.txRunner,
		MarketAddress: market,
	})
}

func (s *MarketplaceTestSuite) givenBlock(t time.Time) {
	s.chainClient.On("LatestBlock", mock.Anything).
		Return(domain.BlockInfo{Height: 1000, Time: t}, nil)
}

func (s *MarketplaceTestSuite) givenOwnerWithApproval(owner domain.Address) {
	s.nftQuerier.On("OwnerOf", mock.Anything, collection, tokenId).Return(owner, nil)
	s.nftQuerier.On("HasNeverExpiringApproval", mock.Anything, collection, tokenId, market).
		Return(true, nil)
}

// captureUpsert stubs orderRepo.Upsert and hands back a pointer that
// will hold the saved order
func (s *MarketplaceTestSuite) captureUpsert() **order.Order {
	var saved *order.Order
	s.orderRepo.On("Upsert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*order.Order)
		}).
		Return(nil)
	return &saved
}

func marketplaceKey() order.Key {
	return order.Key{Actor: market, Collection: collection, TokenId: tokenId}
}

func nativeListing(amount string) *order.Order {
	return &order.Order{
		Type:    order.TypeListing,
		Key:     marketplaceKey(),
		Offerer: seller,
		Offer: order.Item{
			Asset: asset.NewNft(collection, tokenId),
		},
		Consideration: order.ConsiderationItem{
			Item: order.Item{
				Asset:       asset.NewNative("uaura", amount),
				StartAmount: amount,
				EndAmount:   amount,
			},
			Recipient: seller,
		},
		CreatedAt: blockTime,
	}
}

func (s *MarketplaceTestSuite) TestListNftStoresOrder() {
	s.givenBlock(blockTime)
	s.givenOwnerWithApproval(seller)
	saved := s.captureUpsert()

	res, err := s.im.ListNft(mockCtx, &order.ListNftParams{
		Sender:     seller,
		Collection: collection,
		TokenId:    tokenId,
		Price:      asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "100"},
		EndTime:    atTime(blockTime.Add(time.Hour)),
	})
	s.NoError(err)
	s.Equal(*saved, res)
	s.Equal(order.TypeListing, res.Type)
	s.Equal(marketplaceKey(), res.Key)
	s.Equal(seller, res.Offerer)
	s.Equal("100", res.Consideration.Asset.Amount)
}

func (s *MarketplaceTestSuite) TestListNftRejectsNonOwner() {
	s.givenBlock(blockTime)
	s.nftQuerier.On("OwnerOf", mock.Anything, collection, tokenId).Return(buyer, nil)

	_, err := s.im.ListNft(mockCtx, &order.ListNftParams{
		Sender:     seller,
		Collection: collection,
		TokenId:    tokenId,
		Price:      asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "100"},
	})
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *MarketplaceTestSuite) TestListNftRejectsMissingApproval() {
	s.givenBlock(blockTime)
	s.nftQuerier.On("OwnerOf", mock.Anything, collection, tokenId).Return(seller, nil)
	s.nftQuerier.On("HasNeverExpiringApproval", mock.Anything, collection, tokenId, market).
		Return(false, nil)

	_, err := s.im.ListNft(mockCtx, &order.ListNftParams{
		Sender:     seller,
		Collection: collection,
		TokenId:    tokenId,
		Price:      asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "100"},
	})
	s.ErrorIs(err, domain.ErrMissingApproval)
}

func (s *MarketplaceTestSuite) TestListNftRejectsZeroPrice() {
	_, err := s.im.ListNft(mockCtx, &order.ListNftParams{
		Sender:     seller,
		Collection: collection,
		TokenId:    tokenId,
		Price:      asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "0"},
	})
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *MarketplaceTestSuite) TestListNftRejectsInvalidWindow() {
	s.givenBlock(blockTime)

	// deadline already passed
	_, err := s.im.ListNft(mockCtx, &order.ListNftParams{
		Sender:     seller,
		Collection: collection,
		TokenId:    tokenId,
		Price:      asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "100"},
		EndTime:    atTime(blockTime.Add(-time.Hour)),
	})
	s.ErrorIs(err, domain.ErrInvalidTimeRange)

	// start after end
	_, err = s.im.ListNft(mockCtx, &order.ListNftParams{
		Sender:     seller,
		Collection: collection,
		TokenId:    tokenId,
		Price:      asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "100"},
		StartTime:  atTime(blockTime.Add(2 * time.Hour)),
		EndTime:    atTime(blockTime.Add(time.Hour)),
	})
	s.ErrorIs(err, domain.ErrInvalidTimeRange)
}

func (s *MarketplaceTestSuite) TestBuyPaysSellerAndTransfersNft() {
	listing := nativeListing("100")
	payment := asset.PaymentAsset{Kind: asset.KindNative, Denom: "uaura", Amount: "100"}
	s.orderRepo.On("FindOne", mock.Anything, order.TypeListing, marketplaceKey()).Return(listing, nil)
	s.givenBlock(blockTime)
	s.settlement.On("PaymentWithRoyalty", mock.Anything, collection, tokenId, payment, buyer, seller).
		Return([]chainmsg.Msg{chainmsg.BankSend(seller, "uaura", "100")}, nil)
	s.orderRepo.On("Remove", mock.Anything, order.TypeListing, marketplaceKey()).Return(nil)

	msgs, err := s.im.Buy(mockCtx, &order.BuyParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Funds:      []asset.PaymentAsset{payment},
	})
	s.NoError(err)
	s.Equal([]chainmsg.Msg{
		chainmsg.BankSend(seller, "uaura", "100"),
		chainmsg.NftTransfer(collection, buyer, tokenId),
	}, msgs)
}

func (s *MarketplaceTestSuite) TestBuyRejectsFundsMismatch() {
	listing := nativeListing("100")
	s.orderRepo.On("FindOne", mock.Anything, order.TypeListing, marketplaceKey()).Return(listing, nil)
	s.givenBlock(blockTime)

	tests := []struct {
		desc  string
		funds []asset.PaymentAsset
	}{
		{desc: "no funds", funds: nil},
		{desc: "short amount", funds: []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "99"}}},
		{desc: "wrong denom", funds: []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uother", Amount: "100"}}},
	}
	for _, t := range tests {
		_, err := s.im.Buy(mockCtx, &order.BuyParams{
			Sender:     buyer,
			Collection: collection,
			TokenId:    tokenId,
			Funds:      t.funds,
		})
		s.ErrorIs(err, domain.ErrInsufficientFunds, t.desc)
	}
}

func (s *MarketplaceTestSuite) TestBuyRejectsExpiredListing() {
	listing := nativeListing("100")
	listing.EndTime = atTime(blockTime.Add(-time.Minute))
	s.orderRepo.On("FindOne", mock.Anything, order.TypeListing, marketplaceKey()).Return(listing, nil)
	s.givenBlock(blockTime)

	_, err := s.im.Buy(mockCtx, &order.BuyParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
		Funds:      []asset.PaymentAsset{{Kind: asset.KindNative, Denom: "uaura", Amount: "100"}},
	})
	s.ErrorIs(err, domain.ErrOrderExpired)
}

func (s *MarketplaceTestSuite) TestBuyChecksCw20Allowance() {
	listing := nativeListing("100")
	listing.Consideration.Asset = asset.NewCw20("aura1vaura", "100")
	s.orderRepo.On("FindOne", mock.Anything, order.TypeListing, marketplaceKey()).Return(listing, nil)
	s.givenBlock(blockTime)
	s.tokenQuerier.On("Allowance", mock.Anything, domain.Address("aura1vaura"), buyer, market).
		Return(&token.Allowance{Amount: "50", Expires: domain.NeverExpires()}, nil)

	_, err := s.im.Buy(mockCtx, &order.BuyParams{
		Sender:     buyer,
		Collection: collection,
		TokenId:    tokenId,
	})
	s.ErrorIs(err, domain.ErrInsufficientAllowance)
}

func (s *MarketplaceTestSuite) TestCancelBySeller() {
	listing := nativeListing("100")
	listing.EndTime = atTime(blockTime.Add(time.Hour))
	s.orderRepo.On("FindOne", mock.Anything, order.TypeListing, marketplaceKey()).Return(listing, nil)
	s.givenBlock(blockTime)
	s.orderRepo.On("Remove", mock.Anything, order.TypeListing, marketplaceKey()).Return(nil)

	err := s.im.Cancel(mockCtx, &order.CancelParams{Sender: seller, Collection: collection, TokenId: tokenId})
	s.NoError(err)
	s.orderRepo.AssertExpectations(s.T())
}

func (s *MarketplaceTestSuite) TestCancelByStrangerRejectedWhileLive() {
	listing := nativeListing("100")
	listing.EndTime = atTime(blockTime.Add(time.Hour))
	s.orderRepo.On("FindOne", mock.Anything, order.TypeListing, marketplaceKey()).Return(listing, nil)
	s.givenBlock(blockTime)

	err := s.im.Cancel(mockCtx, &order.CancelParams{Sender: buyer, Collection: collection, TokenId: tokenId})
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *MarketplaceTestSuite) TestCancelByAnyoneAfterExpiry() {
	listing := nativeListing("100")
	listing.EndTime = atTime(blockTime.Add(-time.Hour))
	s.orderRepo.On("FindOne", mock.Anything, order.TypeListing, marketplaceKey()).Return(listing, nil)
	s.givenBlock(blockTime)
	s.orderRepo.On("Remove", mock.Anything, order.TypeListing, marketplaceKey()).Return(nil)

	err := s.im.Cancel(mockCtx, &order.CancelParams{Sender: buyer, Collection: collection, TokenId: tokenId})
	s.NoError(err)
}

func (s *MarketplaceTestSuite) TestSweepExpiredRemovesOrders() {
	first := nativeListing("100")
	second := nativeListing("200")
	second.Key.TokenId = "8"
	s.orderRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*order.Order{first, second}, nil)
	s.orderRepo.On("Remove", mock.Anything, order.TypeListing, first.Key).Return(nil)
	s.orderRepo.On("Remove", mock.Anything, order.TypeListing, second.Key).Return(domain.ErrNotFound)

	removed, err := s.im.SweepExpired(mockCtx, order.TypeListing)
	s.NoError(err)
	s.Equal(2, removed)
}

func (s *MarketplaceTestSuite) TestClampLimitDefaultsToCeiling() {
	s.Equal(order.QueryLimit, clampLimit(0))
	s.Equal(order.QueryLimit, clampLimit(-1))
	s.Equal(order.QueryLimit, clampLimit(order.QueryLimit+1))
	s.Equal(int32(5), clampLimit(5))
}

func (s *MarketplaceTestSuite) TestPageOptsDefaultLimit() {
	opts, err := order.GetFindAllOptions(pageOpts(nil, 0)...)
	s.Require().NoError(err)
	s.Require().NotNil(opts.Limit)
	s.Equal(order.QueryLimit, *opts.Limit)
}

func TestMarketplaceTestSuite(t *testing.T) {
	suite.Run(t, new(MarketplaceTestSuite))
}
