package order

import (
	"time"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
)

type Type string

const (
	TypeListing Type = "listing"
	TypeOffer   Type = "offer"
	TypeAuction Type = "auction"
)

type AuctionType string

const (
	AuctionTypeEnglish AuctionType = "english"
	AuctionTypeDutch   AuctionType = "dutch"
)

// DefaultStepPercentage is the minimum raise for english auctions when
// the seller does not pick one
const DefaultStepPercentage = uint64(5)

// Key identifies an order. Actor comes first, the compound index over
// (actor, collection, tokenID) drives prefix scans and the descending
// pagination order. Listings and auctions use the market address as
// actor so each nft carries at most one of each; offers use the
// offerer address.
type Key struct {
	Actor      domain.Address `json:"actor" bson:"actor"`
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenID"`
}

func (k Key) ToLower() Key {
	return Key{
		Actor:      k.Actor.ToLower(),
		Collection: k.Collection.ToLower(),
		TokenId:    k.TokenId,
	}
}

type Item struct {
	asset.Asset `bson:"inline"`
	// StartAmount and EndAmount bound the fungible amount over the
	// order lifetime. Fixed price orders carry the same value in
	// both. For english auctions EndAmount holds the buyout price if
	// any, for dutch auctions it is the floor price. The standing bid
	// of an english auction lives in Asset.Amount.
	StartAmount string `json:"startAmount,omitempty" bson:"startAmount,omitempty"`
	EndAmount   string `json:"endAmount,omitempty" bson:"endAmount,omitempty"`
}

type ConsiderationItem struct {
	Item      `bson:"inline"`
	Recipient domain.Address `json:"recipient" bson:"recipient"`
}

type AuctionConfig struct {
	Type AuctionType `json:"type" bson:"type"`
	// english only
	StepPercentage uint64 `json:"stepPercentage,omitempty" bson:"stepPercentage,omitempty"`
	BuyoutPrice    string `json:"buyoutPrice,omitempty" bson:"buyoutPrice,omitempty"`
	// dutch only, price decrement applied per elapsed minute
	StepAmount string `json:"stepAmount,omitempty" bson:"stepAmount,omitempty"`
}

type Order struct {
	Type    Type           `json:"type" bson:"type"`
	Key     Key            `json:"key" bson:"key"`
	Offerer domain.Address `json:"offerer" bson:"offerer"`
	// Recipient is the standing counterparty. For english auctions it
	// is the highest bidder; while no bid has landed it holds the
	// offerer itself, the no-winner sentinel settle checks against.
	Recipient     domain.Address     `json:"recipient,omitempty" bson:"recipient,omitempty"`
	Offer         Item               `json:"offer" bson:"offer"`
	Consideration ConsiderationItem  `json:"consideration" bson:"consideration"`
	StartTime     *domain.Expiration `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime       *domain.Expiration `json:"endTime,omitempty" bson:"endTime,omitempty"`
	Auction       *AuctionConfig     `json:"auction,omitempty" bson:"auction,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

func (o *Order) LowerCase() {
	o.Key = o.Key.ToLower()
	o.Offerer = o.Offerer.ToLower()
	o.Recipient = o.Recipient.ToLower()
}

// IsStarted reports whether the order window opened at the given block
func (o *Order) IsStarted(block domain.BlockInfo) bool {
	if o.StartTime == nil || o.StartTime.IsNever() {
		return true
	}
	return o.StartTime.IsExpired(block)
}

// IsExpired reports whether the order window closed at the given block
func (o *Order) IsExpired(block domain.BlockInfo) bool {
	if o.EndTime == nil {
		return false
	}
	return o.EndTime.IsExpired(block)
}

type FindAllOptions struct {
	Type       *Type
	Actor      *domain.Address
	Collection *domain.Address
	TokenId    *domain.TokenId
	Offerer    *domain.Address
	Recipient  *domain.Address
	// StartAfter resumes a descending scan below the given key
	StartAfter  *Key
	EndTimeLT   *time.Time
	Offset      *int32
	Limit       *int32
	SortDescKey bool
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithType(typ Type) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Type = &typ
		return nil
	}
}

func WithActor(actor domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Actor = actor.ToLowerPtr()
		return nil
	}
}

func WithCollection(collection domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Collection = collection.ToLowerPtr()
		return nil
	}
}

func WithTokenId(tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func WithOfferer(offerer domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offerer = offerer.ToLowerPtr()
		return nil
	}
}

func WithRecipient(recipient domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Recipient = recipient.ToLowerPtr()
		return nil
	}
}

func WithStartAfter(key Key) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		k := key.ToLower()
		options.StartAfter = &k
		return nil
	}
}

func WithEndTimeLT(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndTimeLT = &t
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSortDescKey() FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortDescKey = true
		return nil
	}
}

type Repo interface {
	FindOne(c ctx.Ctx, typ Type, key Key) (*Order, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Order, error)
	Upsert(c ctx.Ctx, o *Order) error
	Remove(c ctx.Ctx, typ Type, key Key) error
}
