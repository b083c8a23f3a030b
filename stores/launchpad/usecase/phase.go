package usecase

import (
	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/launchpad"
)

// isStarted reports whether the campaign is locked against phase edits.
// A launchpad counts as started once the first real phase window opened
// or the creator flipped it active.
func (im *impl) isStarted(c ctx.Ctx, lp *launchpad.Launchpad, block domain.BlockInfo) (bool, error) {
	if lp.Active {
		return true, nil
	}
	sentinel, err := im.phaseRepo.FindOne(c, lp.Collection, launchpad.SentinelPhaseId)
	if err != nil {
		return false, err
	}
	if sentinel.NextPhaseId == launchpad.SentinelPhaseId {
		return false, nil
	}
	first, err := im.phaseRepo.FindOne(c, lp.Collection, sentinel.NextPhaseId)
	if err != nil {
		return false, err
	}
	return !block.Time.Before(first.StartTime), nil
}

func (im *impl) requireEditable(c ctx.Ctx, sender domain.Address, collection domain.Address) (*launchpad.Launchpad, error) {
	lp, err := im.repo.FindOne(c, collection)
	if err != nil {
		return nil, err
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}
	started, err := im.isStarted(c, lp, block)
	if err != nil {
		return nil, err
	}
	if started {
		return nil, domain.ErrLaunchpadStarted
	}

	if !lp.Creator.Equals(sender) {
		return nil, domain.ErrUnauthorized
	}
	return lp, nil
}

// verifyPhaseWindow checks the window fits strictly between its
// neighbors. prev is never nil, the sentinel fills in for "no
// predecessor". next is nil at the tail.
func verifyPhaseWindow(cfg launchpad.PhaseConfig, prev, next *launchpad.Phase, block domain.BlockInfo) error {
	if cfg.EndTime.Before(cfg.StartTime) {
		return domain.ErrInvalidPhaseTime
	}
	// whatever phase ends up first in the list cannot start in the past,
	// including a new head inserted in front of existing phases
	if prev.IsSentinel() && cfg.StartTime.Before(block.Time) {
		return domain.ErrInvalidPhaseTime
	}
	if !prev.IsSentinel() && cfg.StartTime.Before(prev.EndTime) {
		return domain.ErrInvalidPhaseTime
	}
	if next != nil && cfg.EndTime.After(next.StartTime) {
		return domain.ErrInvalidPhaseTime
	}
	return nil
}

func (im *impl) AddPhase(c ctx.Ctx, p *launchpad.AddPhaseParams) (*launchpad.Phase, error) {
	lp, err := im.requireEditable(c, p.Sender, p.Collection)
	if err != nil {
		return nil, err
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}

	// nil appends at the tail, otherwise insert after the named phase
	prevId := lp.LastPhaseId
	if p.AfterPhaseId != nil {
		prevId = *p.AfterPhaseId
	}
	prev, err := im.phaseRepo.FindOne(c, lp.Collection, prevId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrInvalidPhaseId
	} else if err != nil {
		return nil, err
	}

	var next *launchpad.Phase
	if prev.NextPhaseId != launchpad.SentinelPhaseId {
		if next, err = im.phaseRepo.FindOne(c, lp.Collection, prev.NextPhaseId); err != nil {
			return nil, err
		}
	}

	if err := verifyPhaseWindow(p.Config, prev, next, block); err != nil {
		return nil, err
	}

	phase := &launchpad.Phase{
		Collection:      lp.Collection,
		PhaseId:         lp.NextPhaseId,
		PreviousPhaseId: prev.PhaseId,
		NextPhaseId:     prev.NextPhaseId,
		PhaseConfig:     p.Config,
	}
	prev.NextPhaseId = phase.PhaseId
	lp.NextPhaseId++
	if next == nil {
		lp.LastPhaseId = phase.PhaseId
	}

	// all four pointer updates land or none do
	err = im.txRunner.RunWithTransaction(c, func(tc ctx.Ctx) error {
		if err := im.phaseRepo.Upsert(tc, phase); err != nil {
			return err
		}
		if err := im.phaseRepo.Upsert(tc, prev); err != nil {
			return err
		}
		if next != nil {
			next.PreviousPhaseId = phase.PhaseId
			if err := im.phaseRepo.Upsert(tc, next); err != nil {
				return err
			}
		}
		return im.repo.Upsert(tc, lp)
	})
	if err != nil {
		return nil, err
	}
	return phase, nil
}

func (im *impl) UpdatePhase(c ctx.Ctx, p *launchpad.UpdatePhaseParams) (*launchpad.Phase, error) {
	lp, err := im.requireEditable(c, p.Sender, p.Collection)
	if err != nil {
		return nil, err
	}
	if p.PhaseId == launchpad.SentinelPhaseId {
		return nil, domain.ErrInvalidPhaseId
	}

	phase, err := im.phaseRepo.FindOne(c, lp.Collection, p.PhaseId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrInvalidPhaseId
	} else if err != nil {
		return nil, err
	}

	block, err := im.chainClient.LatestBlock(c)
	if err != nil {
		return nil, err
	}
	prev, err := im.phaseRepo.FindOne(c, lp.Collection, phase.PreviousPhaseId)
	if err != nil {
		return nil, err
	}
	var next *launchpad.Phase
	if phase.NextPhaseId != launchpad.SentinelPhaseId {
		if next, err = im.phaseRepo.FindOne(c, lp.Collection, phase.NextPhaseId); err != nil {
			return nil, err
		}
	}
	if err := verifyPhaseWindow(p.Config, prev, next, block); err != nil {
		return nil, err
	}

	minted := phase.MintedCount
	phase.PhaseConfig = p.Config
	phase.MintedCount = minted
	if err := im.phaseRepo.Upsert(c, phase); err != nil {
		return nil, err
	}
	return phase, nil
}

func (im *impl) RemovePhase(c ctx.Ctx, p *launchpad.RemovePhaseParams) error {
	lp, err := im.requireEditable(c, p.Sender, p.Collection)
	if err != nil {
		return err
	}
	if p.PhaseId == launchpad.SentinelPhaseId {
		return domain.ErrInvalidPhaseId
	}

	phase, err := im.phaseRepo.FindOne(c, lp.Collection, p.PhaseId)
	if err == domain.ErrNotFound {
		return domain.ErrInvalidPhaseId
	} else if err != nil {
		return err
	}

	prev, err := im.phaseRepo.FindOne(c, lp.Collection, phase.PreviousPhaseId)
	if err != nil {
		return err
	}

	return im.txRunner.RunWithTransaction(c, func(tc ctx.Ctx) error {
		if lp.LastPhaseId == phase.PhaseId {
			// removing the tail pulls last_phase_id back
			prev.NextPhaseId = launchpad.SentinelPhaseId
			lp.LastPhaseId = phase.PreviousPhaseId
			if err := im.repo.Upsert(tc, lp); err != nil {
				return err
			}
		} else {
			next, err := im.phaseRepo.FindOne(tc, lp.Collection, phase.NextPhaseId)
			if err != nil {
				return err
			}
			prev.NextPhaseId = next.PhaseId
			next.PreviousPhaseId = prev.PhaseId
			if err := im.phaseRepo.Upsert(tc, next); err != nil {
				return err
			}
		}
		if err := im.phaseRepo.Upsert(tc, prev); err != nil {
			return err
		}
		return im.phaseRepo.Remove(tc, lp.Collection, phase.PhaseId)
	})
}

func (im *impl) AddWhitelist(c ctx.Ctx, p *launchpad.WhitelistParams) error {
	lp, err := im.requireEditable(c, p.Sender, p.Collection)
	if err != nil {
		return err
	}
	if p.PhaseId == launchpad.SentinelPhaseId {
		return domain.ErrInvalidPhaseId
	}
	if _, err := im.phaseRepo.FindOne(c, lp.Collection, p.PhaseId); err == domain.ErrNotFound {
		return domain.ErrInvalidPhaseId
	} else if err != nil {
		return err
	}

	return im.txRunner.RunWithTransaction(c, func(tc ctx.Ctx) error {
		for _, address := range p.Addresses {
			_, err := im.whitelistRepo.FindOne(tc, lp.Collection, p.PhaseId, address)
			if err == nil {
				// already whitelisted, the minted count stays
				continue
			}
			if err != domain.ErrNotFound {
				return err
			}
			w := &launchpad.Whitelist{
				Collection: lp.Collection,
				PhaseId:    p.PhaseId,
				Address:    address,
			}
			if err := im.whitelistRepo.Upsert(tc, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func (im *impl) RemoveWhitelist(c ctx.Ctx, p *launchpad.WhitelistParams) error {
	lp, err := im.requireEditable(c, p.Sender, p.Collection)
	if err != nil {
		return err
	}

	return im.txRunner.RunWithTransaction(c, func(tc ctx.Ctx) error {
		for _, address := range p.Addresses {
			err := im.whitelistRepo.Remove(tc, lp.Collection, p.PhaseId, address)
			if err != nil && err != domain.ErrNotFound {
				return err
			}
		}
		return nil
	})
}
