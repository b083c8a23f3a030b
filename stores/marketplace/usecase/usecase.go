package usecase

import (
	"math/big"
	"time"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chain"
	"github.com/aurabay/goapi/domain/chainmsg"
	"github.com/aurabay/goapi/domain/nft"
	"github.com/aurabay/goapi/domain/order"
	"github.com/aurabay/goapi/domain/settlement"
	"github.com/aurabay/goapi/domain/token"
)

type MarketplaceUseCaseCfg struct {
	OrderRepo    order.Repo
	PayTokenRepo domain.PayTokenRepo
	Settlement   settlement.UseCase
	NftQuerier   nft.Querier
	TokenQuerier token.Querier
	ChainClient  chain.Client
	TxRunner     domain.TxRunner
	// MarketAddress is the order actor for listings and auctions and
	// the operator nft approvals must name
	MarketAddress domain.Address
}

type impl struct {
	orderRepo     order.Repo
	payTokenRepo  domain.PayTokenRepo
	settlement    settlement.UseCase
	nftQuerier    nft.Querier
	tokenQuerier  token.Querier
	chainClient   chain.Client
	txRunner      domain.TxRunner
	marketAddress domain.Address
}

func New(cfg *MarketplaceUseCaseCfg) order.UseCase {
	return &impl{
		orderRepo:     cfg.OrderRepo,
		payTokenRepo:  cfg.PayTokenRepo,
		settlement:    cfg.Settlement,
		nftQuerier:    cfg.NftQuerier,
		tokenQuerier:  cfg.TokenQuerier,
		chainClient:   cfg.ChainClient,
		txRunner:      cfg.TxRunner,
		marketAddress: cfg.MarketAddress.ToLower(),
	}
}

func (im *impl) marketKey(collection domain.Address, tokenId domain.TokenId) order.Key {
	return order.Key{
		Actor:      im.marketAddress,
		Collection: collection,
		TokenId:    tokenId,
	}.ToLower()
}

// requireOwnerWithApproval checks sender owns the token and the market
// holds a never expiring approval on it
func (im *impl) requireOwnerWithApproval(c ctx.Ctx, sender, collection domain.Address, tokenId domain.TokenId) error {
	owner, err := im.nftQuerier.OwnerOf(c, collection, tokenId)
	if err != nil {
		c.WithFields(log.Fields{
			"collection": collection,
			"tokenId":    tokenId,
			"err":        err,
		}).Error("nftQuerier.OwnerOf failed")
		return err
	}
	if !owner.Equals(sender) {
		return domain.ErrUnauthorized
	}

	approved, err := im.nftQuerier.HasNeverExpiringApproval(c, collection, tokenId, im.marketAddress)
	if err != nil {
		return err
	}
	if !approved {
		return domain.ErrMissingApproval
	}
	return nil
}

// validateWindow checks an optional listing window against the block.
// The end must sit in the future and after the start.
func validateWindow(start, end *domain.Expiration, block domain.BlockInfo) error {
	if end != nil && !end.IsNever() {
		if end.IsExpired(block) {
			return domain.ErrInvalidTimeRange
		}
		if start != nil && start.Kind == end.Kind {
			switch start.Kind {
			case domain.ExpirationAtTime:
				if !start.Time.Before(end.Time) {
					return domain.ErrInvalidTimeRange
				}
			case domain.ExpirationAtHeight:
				if start.Height >= end.Height {
					return domain.ErrInvalidTimeRange
				}
			}
		}
	}
	return nil
}

func positiveAmount(amount string) (*big.Int, error) {
	n, err := domain.ToBigInt(amount)
	if err != nil {
		return nil, err
	}
	if n.Sign() == 0 {
		return nil, domain.ErrBadParamInput
	}
	return n, nil
}

// requireExactFunds checks the attached native funds carry exactly the
// required payment
func requireExactFunds(funds []asset.PaymentAsset, required asset.PaymentAsset) error {
	if len(funds) != 1 {
		return domain.ErrInsufficientFunds
	}
	if funds[0].Kind != asset.KindNative || funds[0].Denom != required.Denom {
		return domain.ErrInsufficientFunds
	}
	got, err := domain.ToBigInt(funds[0].Amount)
	if err != nil {
		return err
	}
	want, err := domain.ToBigInt(required.Amount)
	if err != nil {
		return err
	}
	if got.Cmp(want) != 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// requireAllowance checks the spender allowance covers the amount and
// has not lapsed
func (im *impl) requireAllowance(c ctx.Ctx, contract, owner domain.Address, amount *big.Int, block domain.BlockInfo) error {
	allowance, err := im.tokenQuerier.Allowance(c, contract, owner, im.marketAddress)
	if err != nil {
		c.WithFields(log.Fields{
			"contract": contract,
			"owner":    owner,
			"err":      err,
		}).Error("tokenQuerier.Allowance failed")
		return err
	}
	if allowance.Expires.IsExpired(block) {
		return domain.ErrInsufficientAllowance
	}
	granted, err := domain.ToBigInt(allowance.Amount)
	if err != nil {
		return err
	}
	if granted.Cmp(amount) < 0 {
		return domain.ErrInsufficientAllowance
	}
	return nil
}

func (im *impl) ListNft(c ctx.Ctx, p *order.ListNftParams) (*order.Order, error) {
	if _, err := positiveAmount(p.Price.Amount); err != nil {
		return nil, err
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}
	if err := validateWindow(p.StartTime, p.EndTime, block); err != nil {
		return nil, err
	}
	if err := im.requireOwnerWithApproval(c, p.Sender, p.Collection, p.TokenId); err != nil {
		return nil, err
	}

	// an existing listing for the nft is replaced outright, the newest
	// seller wins
	o := &order.Order{
		Type:    order.TypeListing,
		Key:     im.marketKey(p.Collection, p.TokenId),
		Offerer: p.Sender,
		Offer: order.Item{
			Asset: asset.NewNft(p.Collection, p.TokenId),
		},
		Consideration: order.ConsiderationItem{
			Item: order.Item{
				Asset:       p.Price.ToAsset(),
				StartAmount: p.Price.Amount,
				EndAmount:   p.Price.Amount,
			},
			Recipient: p.Sender.ToLower(),
		},
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		CreatedAt: block.Time,
	}
	if err := im.orderRepo.Upsert(c, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (im *impl) Buy(c ctx.Ctx, p *order.BuyParams) ([]chainmsg.Msg, error) {
	key := im.marketKey(p.Collection, p.TokenId)
	listing, err := im.orderRepo.FindOne(c, order.TypeListing, key)
	if err != nil {
		return nil, err
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}
	if !listing.IsStarted(block) {
		return nil, domain.ErrOrderNotStarted
	}
	if listing.IsExpired(block) {
		return nil, domain.ErrOrderExpired
	}

	payment, err := listing.Consideration.Asset.ToPayment()
	if err != nil {
		return nil, err
	}
	switch payment.Kind {
	case asset.KindNative:
		if err := requireExactFunds(p.Funds, payment); err != nil {
			return nil, err
		}
	case asset.KindCw20:
		amount, err := domain.ToBigInt(payment.Amount)
		if err != nil {
			return nil, err
		}
		if err := im.requireAllowance(c, payment.Contract, p.Sender, amount, block); err != nil {
			return nil, err
		}
	}

	msgs, err := im.settlement.PaymentWithRoyalty(c, p.Collection, p.TokenId, payment, p.Sender, listing.Consideration.Recipient)
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, chainmsg.NftTransfer(p.Collection, p.Sender, p.TokenId))

	if err := im.orderRepo.Remove(c, order.TypeListing, key); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (im *impl) Cancel(c ctx.Ctx, p *order.CancelParams) error {
	key := im.marketKey(p.Collection, p.TokenId)
	listing, err := im.orderRepo.FindOne(c, order.TypeListing, key)
	if err != nil {
		return err
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return err
	}
	// the seller may cancel any time, anyone may clear an expired
	// listing
	if !listing.Offerer.Equals(p.Sender) && !listing.IsExpired(block) {
		return domain.ErrUnauthorized
	}

	return im.orderRepo.Remove(c, order.TypeListing, key)
}

func (im *impl) SweepExpired(c ctx.Ctx, typ order.Type) (int, error) {
	now := time.Now().UTC()
	expired, err := im.orderRepo.FindAll(c,
		order.WithType(typ),
		order.WithEndTimeLT(now),
	)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, o := range expired {
		if err := im.orderRepo.Remove(c, o.Type, o.Key); err != nil && err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"key": o.Key,
				"err": err,
			}).Error("orderRepo.Remove failed")
			continue
		}
		removed++
	}
	return removed, nil
}
