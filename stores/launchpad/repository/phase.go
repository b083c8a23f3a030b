package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/launchpad"
	"github.com/aurabay/goapi/service/query"
)

type phaseRepo struct {
	q query.Mongo
}

func NewPhaseRepo(q query.Mongo) launchpad.PhaseRepo {
	return &phaseRepo{q}
}

func phaseSelector(collection domain.Address, phaseId uint64) bson.M {
	return bson.M{
		"collection": collection.ToLower(),
		"phaseId":    phaseId,
	}
}

func (im *phaseRepo) FindOne(c ctx.Ctx, collection domain.Address, phaseId uint64) (*launchpad.Phase, error) {
	res := &launchpad.Phase{}
	if err := im.q.FindOne(c, domain.TableMintPhases, phaseSelector(collection, phaseId), res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collection,
			"phaseId":    phaseId,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *phaseRepo) FindAll(c ctx.Ctx, collection domain.Address) ([]*launchpad.Phase, error) {
	res := []*launchpad.Phase{}
	q := bson.M{"collection": collection.ToLower()}
	if err := im.q.SearchNSorts(c, domain.TableMintPhases, 0, 0, []string{"phaseId"}, q, &res); err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collection,
		}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (im *phaseRepo) Upsert(c ctx.Ctx, p *launchpad.Phase) error {
	p.Collection = p.Collection.ToLower()
	if err := im.q.Upsert(c, domain.TableMintPhases, phaseSelector(p.Collection, p.PhaseId), p); err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": p.Collection,
			"phaseId":    p.PhaseId,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *phaseRepo) Remove(c ctx.Ctx, collection domain.Address, phaseId uint64) error {
	if err := im.q.Remove(c, domain.TableMintPhases, phaseSelector(collection, phaseId)); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collection,
			"phaseId":    phaseId,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
