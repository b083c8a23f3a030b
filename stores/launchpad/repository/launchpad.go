package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/launchpad"
	"github.com/aurabay/goapi/service/query"
)

type launchpadRepo struct {
	q query.Mongo
}

func NewLaunchpadRepo(q query.Mongo) launchpad.Repo {
	return &launchpadRepo{q}
}

func launchpadSelector(collection domain.Address) bson.M {
	return bson.M{"collection": collection.ToLower()}
}

func (im *launchpadRepo) FindOne(c ctx.Ctx, collection domain.Address) (*launchpad.Launchpad, error) {
	res := &launchpad.Launchpad{}
	if err := im.q.FindOne(c, domain.TableLaunchpads, launchpadSelector(collection), res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collection,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *launchpadRepo) FindAll(c ctx.Ctx) ([]*launchpad.Launchpad, error) {
	res := []*launchpad.Launchpad{}
	if err := im.q.SearchNSorts(c, domain.TableLaunchpads, 0, 0, []string{"collection"}, bson.M{}, &res); err != nil {
		c.WithFields(log.Fields{"err": err}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (im *launchpadRepo) Create(c ctx.Ctx, lp *launchpad.Launchpad) error {
	lp.Collection = lp.Collection.ToLower()
	lp.Creator = lp.Creator.ToLower()
	if err := im.q.Insert(c, domain.TableLaunchpads, lp); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": lp.Collection,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *launchpadRepo) Upsert(c ctx.Ctx, lp *launchpad.Launchpad) error {
	lp.Collection = lp.Collection.ToLower()
	lp.Creator = lp.Creator.ToLower()
	if err := im.q.Upsert(c, domain.TableLaunchpads, launchpadSelector(lp.Collection), lp); err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": lp.Collection,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
