package usecase

import (
	"math/big"
	"time"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chainmsg"
	"github.com/aurabay/goapi/domain/order"
)

// antiSnipeWindow extends an english auction whenever a bid lands with
// this little time left on the clock
const antiSnipeWindow = 10 * time.Minute

func (im *impl) AuctionNft(c ctx.Ctx, p *order.AuctionNftParams) ([]chainmsg.Msg, error) {
	// escrow refunds leave the market as bank sends, so only native
	// start prices are accepted
	if p.StartPrice.Kind != asset.KindNative {
		return nil, domain.ErrInvalidAuctionConfig
	}
	startAmount, err := positiveAmount(p.StartPrice.Amount)
	if err != nil {
		return nil, err
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}

	startTime := p.StartTime
	if startTime == nil {
		st := domain.ExpiresAtTime(block.Time.Add(time.Second))
		startTime = &st
	}
	// the window must open in the future and close at a real deadline
	if startTime.IsExpired(block) {
		return nil, domain.ErrInvalidTimeRange
	}
	if p.EndTime == nil || p.EndTime.IsNever() {
		return nil, domain.ErrInvalidTimeRange
	}
	if err := validateWindow(startTime, p.EndTime, block); err != nil {
		return nil, err
	}

	if err := im.requireOwnerWithApproval(c, p.Sender, p.Collection, p.TokenId); err != nil {
		return nil, err
	}

	cfg := &order.AuctionConfig{Type: p.AuctionType}
	endAmount := ""
	switch p.AuctionType {
	case order.AuctionTypeEnglish:
		step := order.DefaultStepPercentage
		if p.StepPercentage != nil {
			if *p.StepPercentage == 0 {
				return nil, domain.ErrInvalidAuctionConfig
			}
			step = *p.StepPercentage
		}
		cfg.StepPercentage = step

		if p.BuyoutPrice != nil {
			buyout, err := positiveAmount(*p.BuyoutPrice)
			if err != nil {
				return nil, err
			}
			if buyout.Cmp(startAmount) <= 0 {
				return nil, domain.ErrInvalidAuctionConfig
			}
			cfg.BuyoutPrice = *p.BuyoutPrice
			endAmount = *p.BuyoutPrice
		}
	case order.AuctionTypeDutch:
		if p.EndPrice == nil {
			return nil, domain.ErrInvalidAuctionConfig
		}
		endPrice, err := domain.ToBigInt(*p.EndPrice)
		if err != nil {
			return nil, err
		}
		if endPrice.Cmp(startAmount) >= 0 {
			return nil, domain.ErrInvalidAuctionConfig
		}
		// the per minute decrement needs a timestamp window
		if startTime.Kind != domain.ExpirationAtTime || p.EndTime.Kind != domain.ExpirationAtTime {
			return nil, domain.ErrInvalidAuctionConfig
		}
		minutes := int64(p.EndTime.Time.Sub(startTime.Time) / time.Minute)
		if minutes <= 0 {
			return nil, domain.ErrInvalidAuctionConfig
		}
		step := new(big.Int).Sub(startAmount, endPrice)
		step.Quo(step, big.NewInt(minutes))
		cfg.StepAmount = step.String()
		endAmount = *p.EndPrice
	default:
		return nil, domain.ErrInvalidAuctionConfig
	}

	// recipient starts out as the offerer, the no bid sentinel
	o := &order.Order{
		Type:      order.TypeAuction,
		Key:       im.marketKey(p.Collection, p.TokenId),
		Offerer:   p.Sender,
		Recipient: p.Sender,
		Offer: order.Item{
			Asset: asset.NewNft(p.Collection, p.TokenId),
		},
		Consideration: order.ConsiderationItem{
			Item: order.Item{
				Asset:       p.StartPrice.ToAsset(),
				StartAmount: p.StartPrice.Amount,
				EndAmount:   endAmount,
			},
			Recipient: p.Sender.ToLower(),
		},
		StartTime: startTime,
		EndTime:   p.EndTime,
		Auction:   cfg,
		CreatedAt: block.Time,
	}
	if err := im.orderRepo.Upsert(c, o); err != nil {
		return nil, err
	}

	// the nft moves into market escrow right away
	return []chainmsg.Msg{chainmsg.NftTransfer(p.Collection, im.marketAddress, p.TokenId)}, nil
}

func (im *impl) BidAuction(c ctx.Ctx, p *order.BidAuctionParams) ([]chainmsg.Msg, error) {
	key := im.marketKey(p.Collection, p.TokenId)
	auction, err := im.orderRepo.FindOne(c, order.TypeAuction, key)
	if err != nil {
		return nil, err
	}
	if auction.Auction == nil || auction.Auction.Type != order.AuctionTypeEnglish {
		return nil, domain.ErrInvalidAuctionConfig
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}
	if !auction.IsStarted(block) {
		return nil, domain.ErrOrderNotStarted
	}
	if auction.IsExpired(block) {
		return nil, domain.ErrOrderExpired
	}
	if p.Sender.Equals(auction.Offerer) {
		return nil, domain.ErrUnauthorized
	}

	bid, err := positiveAmount(p.Price)
	if err != nil {
		return nil, err
	}
	payment, err := auction.Consideration.Asset.ToPayment()
	if err != nil {
		return nil, err
	}
	if err := requireExactFunds(p.Funds, payment.WithAmount(bid)); err != nil {
		return nil, err
	}
	current, err := domain.ToBigInt(payment.Amount)
	if err != nil {
		return nil, err
	}

	msgs := []chainmsg.Msg{}
	if !auction.Recipient.Equals(auction.Offerer) {
		// outbid rule: at least the standing bid plus the step cut,
		// truncating percent arithmetic
		step := new(big.Int).Mul(current, new(big.Int).SetUint64(auction.Auction.StepPercentage))
		step.Quo(step, domain.Big100)
		min := new(big.Int).Add(current, step)
		if bid.Cmp(min) < 0 {
			return nil, domain.ErrBidTooLow
		}
		// the displaced bidder gets the escrowed funds back
		msgs = append(msgs, chainmsg.BankSend(auction.Recipient, payment.Denom, payment.Amount))
	} else if bid.Cmp(current) < 0 {
		return nil, domain.ErrBidTooLow
	}

	auction.Recipient = p.Sender.ToLower()
	auction.Consideration.Asset = payment.WithAmount(bid).ToAsset()

	if auction.Auction.BuyoutPrice != "" {
		buyout, err := domain.ToBigInt(auction.Auction.BuyoutPrice)
		if err != nil {
			return nil, err
		}
		if bid.Cmp(buyout) >= 0 {
			// buyout ends the auction on the spot
			settleMsgs, err := im.settlement.PaymentWithRoyalty(c, p.Collection, p.TokenId, payment.WithAmount(bid), im.marketAddress, auction.Offerer)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, settleMsgs...)
			msgs = append(msgs, chainmsg.NftTransfer(p.Collection, p.Sender, p.TokenId))
			if err := im.orderRepo.Remove(c, order.TypeAuction, key); err != nil {
				return nil, err
			}
			return msgs, nil
		}
	}

	// anti snipe, judged against the pre bid deadline so the window
	// cannot stretch forever
	cutoff := block.Time.Add(antiSnipeWindow)
	if auction.EndTime != nil && auction.EndTime.Kind == domain.ExpirationAtTime && !auction.EndTime.Time.After(cutoff) {
		extended := domain.ExpiresAtTime(cutoff)
		auction.EndTime = &extended
	}

	if err := im.orderRepo.Upsert(c, auction); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (im *impl) SettleAuction(c ctx.Ctx, p *order.SettleAuctionParams) (*order.SettleResult, error) {
	key := im.marketKey(p.Collection, p.TokenId)
	auction, err := im.orderRepo.FindOne(c, order.TypeAuction, key)
	if err != nil {
		return nil, err
	}

	if !p.Sender.Equals(auction.Offerer) && !p.Sender.Equals(auction.Recipient) {
		return nil, domain.ErrUnauthorized
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}
	if !auction.IsExpired(block) {
		return nil, domain.ErrOrderNotExpired
	}

	// no bid ever landed, the nft goes back and nobody pays
	if auction.Recipient.Equals(auction.Offerer) {
		if err := im.orderRepo.Remove(c, order.TypeAuction, key); err != nil {
			return nil, err
		}
		return &order.SettleResult{
			Status: order.SettleStatusFailure,
			Msgs:   []chainmsg.Msg{chainmsg.NftTransfer(p.Collection, auction.Offerer, p.TokenId)},
		}, nil
	}

	payment, err := auction.Consideration.Asset.ToPayment()
	if err != nil {
		return nil, err
	}
	// the winning funds sit in market escrow, so the market pays
	msgs, err := im.settlement.PaymentWithRoyalty(c, p.Collection, p.TokenId, payment, im.marketAddress, auction.Offerer)
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, chainmsg.NftTransfer(p.Collection, auction.Recipient, p.TokenId))

	if err := im.orderRepo.Remove(c, order.TypeAuction, key); err != nil {
		return nil, err
	}
	return &order.SettleResult{Status: order.SettleStatusSuccess, Msgs: msgs}, nil
}
