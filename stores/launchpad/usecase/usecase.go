package usecase

import (
	"crypto/rand"
	"math/big"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/chain"
	"github.com/aurabay/goapi/domain/chainmsg"
	"github.com/aurabay/goapi/domain/launchpad"
	"github.com/aurabay/goapi/domain/token"
)

type LaunchpadUseCaseCfg struct {
	Repo          launchpad.Repo
	PhaseRepo     launchpad.PhaseRepo
	WhitelistRepo launchpad.WhitelistRepo
	SlotRepo      launchpad.SlotRepo
	TokenQuerier  token.Querier
	ChainClient   chain.Client
	TxRunner      domain.TxRunner
	// MarketAddress holds the raised funds until withdraw
	MarketAddress domain.Address
	// FeeCollector receives the market cut on withdraw
	FeeCollector domain.Address
}

type impl struct {
	repo          launchpad.Repo
	phaseRepo     launchpad.PhaseRepo
	whitelistRepo launchpad.WhitelistRepo
	slotRepo      launchpad.SlotRepo
	tokenQuerier  token.Querier
	chainClient   chain.Client
	txRunner      domain.TxRunner
	marketAddress domain.Address
	feeCollector  domain.Address
}

func New(cfg *LaunchpadUseCaseCfg) launchpad.UseCase {
	return &impl{
		repo:          cfg.Repo,
		phaseRepo:     cfg.PhaseRepo,
		whitelistRepo: cfg.WhitelistRepo,
		slotRepo:      cfg.SlotRepo,
		tokenQuerier:  cfg.TokenQuerier,
		chainClient:   cfg.ChainClient,
		txRunner:      cfg.TxRunner,
		marketAddress: cfg.MarketAddress.ToLower(),
		feeCollector:  cfg.FeeCollector.ToLower(),
	}
}

func (im *impl) Create(c ctx.Ctx, p *launchpad.CreateParams) (*launchpad.Launchpad, error) {
	if p.MaxSupply == 0 || p.FeePercent >= 100 {
		return nil, domain.ErrBadParamInput
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}

	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}

	lp := &launchpad.Launchpad{
		Collection:  p.Collection.ToLower(),
		Creator:     p.Sender.ToLower(),
		MaxSupply:   p.MaxSupply,
		UriPrefix:   p.UriPrefix,
		UriSuffix:   p.UriSuffix,
		FeePercent:  p.FeePercent,
		NextPhaseId: launchpad.SentinelPhaseId + 1,
		LastPhaseId: launchpad.SentinelPhaseId,
		Raised:      "0",
		RandomSeed:  seed,
		CreatedAt:   block.Time,
	}
	// the sentinel heads the phase list from day one
	sentinel := &launchpad.Phase{
		Collection: lp.Collection,
		PhaseId:    launchpad.SentinelPhaseId,
	}

	err = im.txRunner.RunWithTransaction(c, func(tc ctx.Ctx) error {
		if err := im.repo.Create(tc, lp); err != nil {
			return err
		}
		return im.phaseRepo.Upsert(tc, sentinel)
	})
	if err != nil {
		return nil, err
	}
	return lp, nil
}

func (im *impl) Activate(c ctx.Ctx, sender, collection domain.Address, active bool) error {
	lp, err := im.repo.FindOne(c, collection)
	if err != nil {
		return err
	}
	if !lp.Creator.Equals(sender) {
		return domain.ErrUnauthorized
	}
	if lp.Active == active {
		if active {
			return domain.ErrLaunchpadActive
		}
		return domain.ErrLaunchpadInactive
	}

	lp.Active = active
	return im.repo.Upsert(c, lp)
}

func (im *impl) Withdraw(c ctx.Ctx, p *launchpad.WithdrawParams) ([]chainmsg.Msg, error) {
	lp, err := im.repo.FindOne(c, p.Collection)
	if err != nil {
		return nil, err
	}
	if !lp.Creator.Equals(p.Sender) {
		return nil, domain.ErrUnauthorized
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}
	lastPhase, err := im.phaseRepo.FindOne(c, lp.Collection, lp.LastPhaseId)
	if err != nil {
		return nil, err
	}
	if lastPhase.EndTime.After(block.Time) {
		return nil, domain.ErrLastPhaseNotFinished
	}

	raised, err := domain.ToBigInt(lp.Raised)
	if err != nil {
		return nil, err
	}
	if raised.Sign() == 0 {
		return []chainmsg.Msg{}, nil
	}

	// sanity check the escrow really holds what the books say
	balance, err := im.tokenQuerier.BankBalance(c, im.marketAddress, lp.RaisedDenom)
	if err != nil {
		return nil, err
	}
	held, err := domain.ToBigInt(balance)
	if err != nil {
		return nil, err
	}
	if held.Cmp(raised) < 0 {
		c.WithFields(log.Fields{
			"collection": lp.Collection,
			"raised":     lp.Raised,
			"held":       balance,
		}).Error("escrow balance below raised amount")
		return nil, domain.ErrInsufficientFunds
	}

	// creator gets floor(raised * (100 - fee) / 100), the rest is the
	// market cut
	creatorCut := new(big.Int).Mul(raised, new(big.Int).SetUint64(100-lp.FeePercent))
	creatorCut.Quo(creatorCut, domain.Big100)
	feeCut := new(big.Int).Sub(raised, creatorCut)

	msgs := []chainmsg.Msg{chainmsg.BankSend(lp.Creator, lp.RaisedDenom, creatorCut.String())}
	if feeCut.Sign() > 0 {
		msgs = append(msgs, chainmsg.BankSend(im.feeCollector, lp.RaisedDenom, feeCut.String()))
	}

	lp.Raised = "0"
	if err := im.repo.Upsert(c, lp); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (im *impl) GetInfo(c ctx.Ctx, collection domain.Address) (*launchpad.Info, error) {
	lp, err := im.repo.FindOne(c, collection)
	if err != nil {
		return nil, err
	}
	phases, err := im.phasesInOrder(c, lp.Collection)
	if err != nil {
		return nil, err
	}
	return &launchpad.Info{Launchpad: lp, Phases: phases}, nil
}

// phasesInOrder walks the phase list from the sentinel and returns the
// real phases in list order
func (im *impl) phasesInOrder(c ctx.Ctx, collection domain.Address) ([]*launchpad.Phase, error) {
	rows, err := im.phaseRepo.FindAll(c, collection)
	if err != nil {
		return nil, err
	}
	byId := map[uint64]*launchpad.Phase{}
	for _, p := range rows {
		byId[p.PhaseId] = p
	}

	phases := []*launchpad.Phase{}
	sentinel, ok := byId[launchpad.SentinelPhaseId]
	if !ok {
		return phases, nil
	}
	for id := sentinel.NextPhaseId; id != launchpad.SentinelPhaseId; {
		p, ok := byId[id]
		if !ok {
			c.WithFields(log.Fields{
				"collection": collection,
				"phaseId":    id,
			}).Error("phase list points at missing phase")
			return nil, domain.ErrInternalServerError
		}
		phases = append(phases, p)
		id = p.NextPhaseId
	}
	return phases, nil
}

func (im *impl) Mintable(c ctx.Ctx, collection, address domain.Address) (uint64, error) {
	lp, err := im.repo.FindOne(c, collection)
	if err != nil {
		return 0, err
	}
	if !lp.Active {
		return 0, nil
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return 0, err
	}
	phase, err := im.openPhase(c, lp.Collection, block)
	if err == domain.ErrPhaseNotStarted {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	remaining := lp.MaxSupply - lp.MintedCount
	if phase.MaxSupply > 0 && phase.MaxSupply-phase.MintedCount < remaining {
		remaining = phase.MaxSupply - phase.MintedCount
	}

	minted := uint64(0)
	wl, err := im.whitelistRepo.FindOne(c, lp.Collection, phase.PhaseId, address)
	if err == nil {
		minted = wl.MintedCount
	} else if err != domain.ErrNotFound {
		return 0, err
	} else if !phase.IsPublic {
		return 0, nil
	}

	if phase.MaxNftsPerAddress-minted < remaining {
		remaining = phase.MaxNftsPerAddress - minted
	}
	return remaining, nil
}

// openPhase returns the phase whose window covers the current block
func (im *impl) openPhase(c ctx.Ctx, collection domain.Address, block domain.BlockInfo) (*launchpad.Phase, error) {
	phases, err := im.phasesInOrder(c, collection)
	if err != nil {
		return nil, err
	}
	for _, p := range phases {
		if p.InWindow(block.Time) {
			return p, nil
		}
	}
	return nil, domain.ErrPhaseNotStarted
}
