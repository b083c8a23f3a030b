package usecase

import (
	"math/big"
	"time"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/order"
)

// clampLimit resolves the page size. An unset limit defaults to the
// QueryLimit ceiling.
func clampLimit(limit int32) int32 {
	if limit <= 0 {
		return order.QueryLimit
	}
	if limit > order.QueryLimit {
		return order.QueryLimit
	}
	return limit
}

func pageOpts(startAfter *order.Key, limit int32) []order.FindAllOptionsFunc {
	opts := []order.FindAllOptionsFunc{
		order.WithSortDescKey(),
		order.WithPagination(0, clampLimit(limit)),
	}
	if startAfter != nil {
		opts = append(opts, order.WithStartAfter(*startAfter))
	}
	return opts
}

func (im *impl) GetListing(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*order.Order, error) {
	return im.orderRepo.FindOne(c, order.TypeListing, im.marketKey(collection, tokenId))
}

func (im *impl) GetListingsByCollection(c ctx.Ctx, collection domain.Address, startAfter *order.Key, limit int32) ([]*order.Order, error) {
	opts := append([]order.FindAllOptionsFunc{
		order.WithType(order.TypeListing),
		order.WithCollection(collection),
	}, pageOpts(startAfter, limit)...)
	return im.orderRepo.FindAll(c, opts...)
}

func (im *impl) GetOffer(c ctx.Ctx, offerer, collection domain.Address, tokenId domain.TokenId) (*order.Order, error) {
	key := order.Key{Actor: offerer, Collection: collection, TokenId: tokenId}
	return im.orderRepo.FindOne(c, order.TypeOffer, key)
}

func (im *impl) GetNftOffers(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, startAfter *order.Key, limit int32) ([]*order.Order, error) {
	opts := append([]order.FindAllOptionsFunc{
		order.WithType(order.TypeOffer),
		order.WithCollection(collection),
		order.WithTokenId(tokenId),
	}, pageOpts(startAfter, limit)...)
	return im.orderRepo.FindAll(c, opts...)
}

func (im *impl) GetUserOffers(c ctx.Ctx, offerer domain.Address, startAfter *order.Key, limit int32) ([]*order.Order, error) {
	opts := append([]order.FindAllOptionsFunc{
		order.WithType(order.TypeOffer),
		order.WithActor(offerer),
	}, pageOpts(startAfter, limit)...)
	return im.orderRepo.FindAll(c, opts...)
}

func (im *impl) GetAuction(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*order.Order, error) {
	return im.orderRepo.FindOne(c, order.TypeAuction, im.marketKey(collection, tokenId))
}

func (im *impl) GetOwnerAuctions(c ctx.Ctx, owner domain.Address, startAfter *order.Key, limit int32) ([]*order.Order, error) {
	opts := append([]order.FindAllOptionsFunc{
		order.WithType(order.TypeAuction),
		order.WithOfferer(owner),
	}, pageOpts(startAfter, limit)...)
	return im.orderRepo.FindAll(c, opts...)
}

func (im *impl) GetBuyerAuctions(c ctx.Ctx, buyer domain.Address, startAfter *order.Key, limit int32) ([]*order.Order, error) {
	opts := append([]order.FindAllOptionsFunc{
		order.WithType(order.TypeAuction),
		order.WithRecipient(buyer),
	}, pageOpts(startAfter, limit)...)
	return im.orderRepo.FindAll(c, opts...)
}

func (im *impl) GetValidBidPrice(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*asset.PaymentAsset, error) {
	auction, err := im.orderRepo.FindOne(c, order.TypeAuction, im.marketKey(collection, tokenId))
	if err != nil {
		return nil, err
	}
	if auction.Auction == nil {
		return nil, domain.ErrInvalidAuctionConfig
	}

	payment, err := auction.Consideration.Asset.ToPayment()
	if err != nil {
		return nil, err
	}
	current, err := domain.ToBigInt(payment.Amount)
	if err != nil {
		return nil, err
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}

	switch auction.Auction.Type {
	case order.AuctionTypeEnglish:
		if auction.Recipient.Equals(auction.Offerer) {
			res := payment.WithAmount(current)
			return &res, nil
		}
		step := new(big.Int).Mul(current, new(big.Int).SetUint64(auction.Auction.StepPercentage))
		step.Quo(step, domain.Big100)
		res := payment.WithAmount(current.Add(current, step))
		return &res, nil
	case order.AuctionTypeDutch:
		price, err := dutchPrice(auction, block)
		if err != nil {
			return nil, err
		}
		res := payment.WithAmount(price)
		return &res, nil
	default:
		return nil, domain.ErrInvalidAuctionConfig
	}
}

// dutchPrice derives the current dutch price: the start price minus one
// step per fully elapsed minute, never below the floor
func dutchPrice(auction *order.Order, block domain.BlockInfo) (*big.Int, error) {
	start, err := domain.ToBigInt(auction.Consideration.StartAmount)
	if err != nil {
		return nil, err
	}
	floor, err := domain.ToBigInt(auction.Consideration.EndAmount)
	if err != nil {
		return nil, err
	}
	step, err := domain.ToBigInt(auction.Auction.StepAmount)
	if err != nil {
		return nil, err
	}

	if auction.StartTime == nil || auction.StartTime.Kind != domain.ExpirationAtTime {
		return nil, domain.ErrInvalidAuctionConfig
	}
	if block.Time.Before(auction.StartTime.Time) {
		return start, nil
	}

	elapsed := big.NewInt(int64(block.Time.Sub(auction.StartTime.Time) / time.Minute))
	price := new(big.Int).Sub(start, elapsed.Mul(elapsed, step))
	if price.Cmp(floor) < 0 {
		return floor, nil
	}
	return price, nil
}
