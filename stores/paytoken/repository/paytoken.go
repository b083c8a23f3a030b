package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/service/query"
)

const docKey = "paytoken"

// single config document, replaced in place
type payTokenDoc struct {
	Key             string `bson:"key"`
	domain.PayToken `bson:"inline"`
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) domain.PayTokenRepo {
	return &impl{q}
}

func (im *impl) Get(c ctx.Ctx) (*domain.PayToken, error) {
	res := &payTokenDoc{}
	if err := im.q.FindOne(c, domain.TablePayTokens, bson.M{"key": docKey}, res); err == query.ErrNotFound {
		return nil, domain.ErrPayTokenNotSet
	} else if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("q.FindOne failed")
		return nil, err
	}
	return &res.PayToken, nil
}

func (im *impl) Set(c ctx.Ctx, payToken *domain.PayToken) error {
	payToken.Address = payToken.Address.ToLower()
	doc := &payTokenDoc{Key: docKey, PayToken: *payToken}
	if err := im.q.Upsert(c, domain.TablePayTokens, bson.M{"key": docKey}, doc); err != nil {
		c.WithFields(log.Fields{"err": err, "payToken": payToken}).Error("q.Upsert failed")
		return err
	}
	return nil
}
