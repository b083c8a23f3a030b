package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/launchpad"
	"github.com/aurabay/goapi/service/query"
)

type whitelistRepo struct {
	q query.Mongo
}

func NewWhitelistRepo(q query.Mongo) launchpad.WhitelistRepo {
	return &whitelistRepo{q}
}

func whitelistSelector(collection domain.Address, phaseId uint64, address domain.Address) bson.M {
	return bson.M{
		"collection": collection.ToLower(),
		"phaseId":    phaseId,
		"address":    address.ToLower(),
	}
}

func (im *whitelistRepo) FindOne(c ctx.Ctx, collection domain.Address, phaseId uint64, address domain.Address) (*launchpad.Whitelist, error) {
	res := &launchpad.Whitelist{}
	if err := im.q.FindOne(c, domain.TableWhitelists, whitelistSelector(collection, phaseId, address), res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collection,
			"phaseId":    phaseId,
			"address":    address,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *whitelistRepo) Upsert(c ctx.Ctx, w *launchpad.Whitelist) error {
	w.Collection = w.Collection.ToLower()
	w.Address = w.Address.ToLower()
	if err := im.q.Upsert(c, domain.TableWhitelists, whitelistSelector(w.Collection, w.PhaseId, w.Address), w); err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": w.Collection,
			"phaseId":    w.PhaseId,
			"address":    w.Address,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *whitelistRepo) Remove(c ctx.Ctx, collection domain.Address, phaseId uint64, address domain.Address) error {
	if err := im.q.Remove(c, domain.TableWhitelists, whitelistSelector(collection, phaseId, address)); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collection,
			"phaseId":    phaseId,
			"address":    address,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
