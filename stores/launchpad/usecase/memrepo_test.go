package usecase

import (
	"fmt"
	"sort"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/launchpad"
)

// in memory repos backing the stateful flows, mongo semantics without
// mongo

type memStore struct {
	lps    map[domain.Address]launchpad.Launchpad
	phases map[string]launchpad.Phase
	wls    map[string]launchpad.Whitelist
	slots  map[string]launchpad.MintSlot
}

func newMemStore() *memStore {
	return &memStore{
		lps:    map[domain.Address]launchpad.Launchpad{},
		phases: map[string]launchpad.Phase{},
		wls:    map[string]launchpad.Whitelist{},
		slots:  map[string]launchpad.MintSlot{},
	}
}

func phaseKey(collection domain.Address, phaseId uint64) string {
	return fmt.Sprintf("%s/%d", collection.ToLowerStr(), phaseId)
}

func wlKey(collection domain.Address, phaseId uint64, address domain.Address) string {
	return fmt.Sprintf("%s/%d/%s", collection.ToLowerStr(), phaseId, address.ToLowerStr())
}

func slotKey(collection domain.Address, position uint64) string {
	return fmt.Sprintf("%s/%d", collection.ToLowerStr(), position)
}

type memLaunchpadRepo struct{ s *memStore }

func (r *memLaunchpadRepo) FindOne(c ctx.Ctx, collection domain.Address) (*launchpad.Launchpad, error) {
	lp, ok := r.s.lps[collection.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &lp, nil
}

func (r *memLaunchpadRepo) FindAll(c ctx.Ctx) ([]*launchpad.Launchpad, error) {
	res := []*launchpad.Launchpad{}
	for _, lp := range r.s.lps {
		lp := lp
		res = append(res, &lp)
	}
	return res, nil
}

func (r *memLaunchpadRepo) Create(c ctx.Ctx, lp *launchpad.Launchpad) error {
	if _, ok := r.s.lps[lp.Collection.ToLower()]; ok {
		return domain.ErrConflict
	}
	r.s.lps[lp.Collection.ToLower()] = *lp
	return nil
}

func (r *memLaunchpadRepo) Upsert(c ctx.Ctx, lp *launchpad.Launchpad) error {
	r.s.lps[lp.Collection.ToLower()] = *lp
	return nil
}

type memPhaseRepo struct{ s *memStore }

func (r *memPhaseRepo) FindOne(c ctx.Ctx, collection domain.Address, phaseId uint64) (*launchpad.Phase, error) {
	p, ok := r.s.phases[phaseKey(collection, phaseId)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memPhaseRepo) FindAll(c ctx.Ctx, collection domain.Address) ([]*launchpad.Phase, error) {
	res := []*launchpad.Phase{}
	for _, p := range r.s.phases {
		if p.Collection.Equals(collection) {
			p := p
			res = append(res, &p)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].PhaseId < res[j].PhaseId })
	return res, nil
}

func (r *memPhaseRepo) Upsert(c ctx.Ctx, p *launchpad.Phase) error {
	r.s.phases[phaseKey(p.Collection, p.PhaseId)] = *p
	return nil
}

func (r *memPhaseRepo) Remove(c ctx.Ctx, collection domain.Address, phaseId uint64) error {
	key := phaseKey(collection, phaseId)
	if _, ok := r.s.phases[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.phases, key)
	return nil
}

type memWhitelistRepo struct{ s *memStore }

func (r *memWhitelistRepo) FindOne(c ctx.Ctx, collection domain.Address, phaseId uint64, address domain.Address) (*launchpad.Whitelist, error) {
	w, ok := r.s.wls[wlKey(collection, phaseId, address)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (r *memWhitelistRepo) Upsert(c ctx.Ctx, w *launchpad.Whitelist) error {
	r.s.wls[wlKey(w.Collection, w.PhaseId, w.Address)] = *w
	return nil
}

func (r *memWhitelistRepo) Remove(c ctx.Ctx, collection domain.Address, phaseId uint64, address domain.Address) error {
	key := wlKey(collection, phaseId, address)
	if _, ok := r.s.wls[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.wls, key)
	return nil
}

type memSlotRepo struct{ s *memStore }

func (r *memSlotRepo) FindOne(c ctx.Ctx, collection domain.Address, position uint64) (*launchpad.MintSlot, error) {
	sl, ok := r.s.slots[slotKey(collection, position)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sl, nil
}

func (r *memSlotRepo) Upsert(c ctx.Ctx, sl *launchpad.MintSlot) error {
	r.s.slots[slotKey(sl.Collection, sl.Position)] = *sl
	return nil
}

type memTxRunner struct{}

func (memTxRunner) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	return run(c)
}
