package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/order"
	"github.com/aurabay/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) order.Repo {
	return &impl{q}
}

func makeKeySelector(typ order.Type, key order.Key) bson.M {
	key = key.ToLower()
	return bson.M{
		"type":           typ,
		"key.actor":      key.Actor,
		"key.collection": key.Collection,
		"key.tokenID":    key.TokenId,
	}
}

func makeQuery(options order.FindAllOptions) bson.M {
	query := bson.M{}

	if options.Type != nil {
		query["type"] = *options.Type
	}

	if options.Actor != nil {
		query["key.actor"] = *options.Actor
	}

	if options.Collection != nil {
		query["key.collection"] = *options.Collection
	}

	if options.TokenId != nil {
		query["key.tokenID"] = *options.TokenId
	}

	if options.Offerer != nil {
		query["offerer"] = *options.Offerer
	}

	if options.Recipient != nil {
		query["recipient"] = *options.Recipient
	}

	if options.EndTimeLT != nil {
		query["endTime.kind"] = domain.ExpirationAtTime
		query["endTime.time"] = bson.M{"$lt": *options.EndTimeLT}
	}

	if options.StartAfter != nil {
		// resume a descending scan strictly below the cursor key
		k := *options.StartAfter
		query["$or"] = bson.A{
			bson.M{"key.actor": bson.M{"$lt": k.Actor}},
			bson.M{"key.actor": k.Actor, "key.collection": bson.M{"$lt": k.Collection}},
			bson.M{"key.actor": k.Actor, "key.collection": k.Collection, "key.tokenID": bson.M{"$lt": k.TokenId}},
		}
	}

	return query
}

func (im *impl) FindOne(c ctx.Ctx, typ order.Type, key order.Key) (*order.Order, error) {
	res := &order.Order{}
	if err := im.q.FindOne(c, domain.TableOrders, makeKeySelector(typ, key), res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...order.FindAllOptionsFunc) ([]*order.Order, error) {
	options, err := order.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	q := makeQuery(options)

	offset := 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}

	limit := 0
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	sortFields := []string{"key.actor", "key.collection", "key.tokenID"}
	if options.SortDescKey {
		sortFields = []string{"-key.actor", "-key.collection", "-key.tokenID"}
	}

	res := []*order.Order{}
	if err := im.q.SearchNSorts(c, domain.TableOrders, offset, limit, sortFields, q, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": q,
		}).Error("q.SearchNSorts failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) Upsert(c ctx.Ctx, o *order.Order) error {
	o.LowerCase()
	selector := makeKeySelector(o.Type, o.Key)
	if err := im.q.Upsert(c, domain.TableOrders, selector, o); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"order": o,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, typ order.Type, key order.Key) error {
	if err := im.q.Remove(c, domain.TableOrders, makeKeySelector(typ, key)); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
