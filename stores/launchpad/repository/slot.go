package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/launchpad"
	"github.com/aurabay/goapi/service/query"
)

type slotRepo struct {
	q query.Mongo
}

func NewSlotRepo(q query.Mongo) launchpad.SlotRepo {
	return &slotRepo{q}
}

func slotSelector(collection domain.Address, position uint64) bson.M {
	return bson.M{
		"collection": collection.ToLower(),
		"position":   position,
	}
}

func (im *slotRepo) FindOne(c ctx.Ctx, collection domain.Address, position uint64) (*launchpad.MintSlot, error) {
	res := &launchpad.MintSlot{}
	if err := im.q.FindOne(c, domain.TableMintSlots, slotSelector(collection, position), res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collection,
			"position":   position,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *slotRepo) Upsert(c ctx.Ctx, s *launchpad.MintSlot) error {
	s.Collection = s.Collection.ToLower()
	if err := im.q.Upsert(c, domain.TableMintSlots, slotSelector(s.Collection, s.Position), s); err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": s.Collection,
			"position":   s.Position,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
