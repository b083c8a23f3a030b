package usecase

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chainmsg"
	"github.com/aurabay/goapi/domain/launchpad"
)

// randomProvider is a deterministic sha256 chain. Seeded from the
// persisted campaign seed plus a per-call key, every draw is
// reproducible from stored state.
type randomProvider struct {
	state [sha256.Size]byte
}

func newRandomProvider(seed []byte, key string) *randomProvider {
	h := sha256.New()
	h.Write(seed)
	h.Write([]byte(key))
	p := &randomProvider{}
	copy(p.state[:], h.Sum(nil))
	return p
}

// Provide advances the chain and returns the next 32 bytes
func (p *randomProvider) Provide() []byte {
	p.state = sha256.Sum256(p.state[:])
	out := make([]byte, sha256.Size)
	copy(out, p.state[:])
	return out
}

func intInRange(randomness []byte, n uint64) uint64 {
	return binary.BigEndian.Uint64(randomness[:8]) % n
}

func (im *impl) Mint(c ctx.Ctx, p *launchpad.MintParams) ([]chainmsg.Msg, error) {
	if p.Amount == 0 {
		return nil, domain.ErrBadParamInput
	}
	if p.Amount > launchpad.MaxMintPerCall {
		return nil, domain.ErrTooManyNfts
	}

	lp, err := im.repo.FindOne(c, p.Collection)
	if err != nil {
		return nil, err
	}
	if !lp.Active {
		return nil, domain.ErrLaunchpadInactive
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}
	phase, err := im.openPhase(c, lp.Collection, block)
	if err != nil {
		return nil, err
	}

	wl, err := im.whitelistRepo.FindOne(c, lp.Collection, phase.PhaseId, p.Sender)
	if err == domain.ErrNotFound {
		if !phase.IsPublic {
			return nil, domain.ErrNotWhitelisted
		}
		wl = &launchpad.Whitelist{
			Collection: lp.Collection,
			PhaseId:    phase.PhaseId,
			Address:    p.Sender.ToLower(),
		}
	} else if err != nil {
		return nil, err
	}

	if lp.MintedCount+p.Amount > lp.MaxSupply {
		return nil, domain.ErrMaxSupplyReached
	}
	if phase.MaxSupply > 0 && phase.MintedCount+p.Amount > phase.MaxSupply {
		return nil, domain.ErrMaxSupplyReached
	}
	if wl.MintedCount+p.Amount > phase.MaxNftsPerAddress {
		return nil, domain.ErrMintLimitExceeded
	}

	total, err := im.checkMintFunds(phase.Price, p.Amount, p.Funds)
	if err != nil {
		return nil, err
	}

	msgs := []chainmsg.Msg{}
	err = im.txRunner.RunWithTransaction(c, func(tc ctx.Ctx) error {
		for i := uint64(0); i < p.Amount; i++ {
			tokenId, err := im.drawTokenId(tc, lp, p.Sender, block.Time)
			if err != nil {
				return err
			}
			lp.MintedCount++

			id := strconv.FormatUint(tokenId, 10)
			uri := lp.UriPrefix + id + lp.UriSuffix
			msgs = append(msgs, chainmsg.Mint(lp.Collection, p.Sender, domain.TokenId(id), uri))
		}

		phase.MintedCount += p.Amount
		if err := im.phaseRepo.Upsert(tc, phase); err != nil {
			return err
		}

		wl.MintedCount += p.Amount
		if err := im.whitelistRepo.Upsert(tc, wl); err != nil {
			return err
		}

		if total.Sign() > 0 {
			raised, err := domain.ToBigInt(lp.Raised)
			if err != nil {
				return err
			}
			lp.Raised = raised.Add(raised, total).String()
			lp.RaisedDenom = phase.Price.Denom
		}
		return im.repo.Upsert(tc, lp)
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// checkMintFunds verifies the attached native funds cover price times
// amount exactly and returns the total
func (im *impl) checkMintFunds(price asset.PaymentAsset, amount uint64, funds []asset.PaymentAsset) (*big.Int, error) {
	unit, err := domain.ToBigInt(price.Amount)
	if err != nil {
		return nil, err
	}
	total := new(big.Int).Mul(unit, new(big.Int).SetUint64(amount))
	if total.Sign() == 0 {
		return total, nil
	}

	if len(funds) != 1 || funds[0].Kind != asset.KindNative || funds[0].Denom != price.Denom {
		return nil, domain.ErrInsufficientFunds
	}
	got, err := domain.ToBigInt(funds[0].Amount)
	if err != nil {
		return nil, err
	}
	if got.Cmp(total) != 0 {
		return nil, domain.ErrInsufficientFunds
	}
	return total, nil
}

// drawTokenId draws one uniformly random unminted token id and
// advances the persisted seed so replays stay deterministic
func (im *impl) drawTokenId(c ctx.Ctx, lp *launchpad.Launchpad, sender domain.Address, blockTime time.Time) (uint64, error) {
	key := fmt.Sprintf("%s%d", sender.ToLowerStr(), blockTime.UnixNano())
	provider := newRandomProvider(lp.RandomSeed, key)
	lp.RandomSeed = provider.Provide()
	randomness := provider.Provide()

	remaining := lp.MaxSupply - lp.MintedCount
	position := uint64(0)
	if remaining > 1 {
		position = intInRange(randomness, remaining)
	}
	return im.takeSlot(c, lp.Collection, position, remaining)
}

// takeSlot resolves a position through the lazily materialized
// swap-to-end table. Untouched positions hold position+1, the consumed
// slot inherits the last live slot's id and the live range shrinks.
func (im *impl) takeSlot(c ctx.Ctx, collection domain.Address, position, remaining uint64) (uint64, error) {
	tokenId := position + 1
	if slot, err := im.slotRepo.FindOne(c, collection, position); err == nil {
		tokenId = slot.TokenId
	} else if err != domain.ErrNotFound {
		return 0, err
	}

	last := remaining
	if slot, err := im.slotRepo.FindOne(c, collection, remaining-1); err == nil {
		last = slot.TokenId
	} else if err != domain.ErrNotFound {
		return 0, err
	}

	err := im.slotRepo.Upsert(c, &launchpad.MintSlot{
		Collection: collection,
		Position:   position,
		TokenId:    last,
	})
	if err != nil {
		return 0, err
	}
	return tokenId, nil
}
