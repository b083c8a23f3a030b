package launchpad

import (
	"time"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
	"github.com/aurabay/goapi/domain/chainmsg"
)

// SentinelPhaseId is the immutable head of every phase list. It carries
// no mintable window, real phases link after it.
const SentinelPhaseId = uint64(0)

// MaxMintPerCall bounds the amount of one Mint call
const MaxMintPerCall = uint64(10)

// Launchpad is the per-collection mint campaign aggregate
type Launchpad struct {
	Collection  domain.Address `json:"collection" bson:"collection"`
	Creator     domain.Address `json:"creator" bson:"creator"`
	MaxSupply   uint64         `json:"maxSupply" bson:"maxSupply"`
	MintedCount uint64         `json:"mintedCount" bson:"mintedCount"`
	UriPrefix   string         `json:"uriPrefix" bson:"uriPrefix"`
	UriSuffix   string         `json:"uriSuffix" bson:"uriSuffix"`
	// FeePercent is the market cut taken from raised funds on withdraw
	FeePercent  uint64 `json:"feePercent" bson:"feePercent"`
	Active      bool   `json:"active" bson:"active"`
	NextPhaseId uint64 `json:"nextPhaseId" bson:"nextPhaseId"`
	LastPhaseId uint64 `json:"lastPhaseId" bson:"lastPhaseId"`
	// Raised accumulates mint payments, zeroed by Withdraw
	Raised      string       `json:"raised" bson:"raised"`
	RaisedDenom domain.Denom `json:"raisedDenom" bson:"raisedDenom"`
	// RandomSeed drives the deterministic token id draw
	RandomSeed []byte    `json:"-" bson:"randomSeed"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

type PhaseConfig struct {
	StartTime time.Time `json:"startTime" bson:"startTime"`
	EndTime   time.Time `json:"endTime" bson:"endTime"`
	// MaxSupply caps mints inside this phase, 0 means no phase cap
	MaxSupply         uint64             `json:"maxSupply" bson:"maxSupply"`
	MaxNftsPerAddress uint64             `json:"maxNftsPerAddress" bson:"maxNftsPerAddress"`
	Price             asset.PaymentAsset `json:"price" bson:"price"`
	// IsPublic phases skip the whitelist check
	IsPublic bool `json:"isPublic" bson:"isPublic"`
}

// Phase is one node of the per-collection phase list. The list is kept
// as arena rows linked by phase ids, phase 0 is the sentinel.
type Phase struct {
	Collection      domain.Address `json:"collection" bson:"collection"`
	PhaseId         uint64         `json:"phaseId" bson:"phaseId"`
	PreviousPhaseId uint64         `json:"previousPhaseId" bson:"previousPhaseId"`
	NextPhaseId     uint64         `json:"nextPhaseId" bson:"nextPhaseId"`
	MintedCount     uint64         `json:"mintedCount" bson:"mintedCount"`
	PhaseConfig     `bson:"inline"`
}

func (p *Phase) IsSentinel() bool {
	return p.PhaseId == SentinelPhaseId
}

// InWindow reports whether the phase window covers the given time
func (p *Phase) InWindow(t time.Time) bool {
	return !t.Before(p.StartTime) && t.Before(p.EndTime)
}

// Whitelist is one whitelisted address for one phase, carrying how
// many tokens it minted inside that phase
type Whitelist struct {
	Collection  domain.Address `json:"collection" bson:"collection"`
	PhaseId     uint64         `json:"phaseId" bson:"phaseId"`
	Address     domain.Address `json:"address" bson:"address"`
	MintedCount uint64         `json:"mintedCount" bson:"mintedCount"`
}

// MintSlot is one entry of the lazily materialized swap-to-end token
// id table. Absent positions default to position+1.
type MintSlot struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	Position   uint64         `json:"position" bson:"position"`
	TokenId    uint64         `json:"tokenId" bson:"tokenId"`
}

type Repo interface {
	FindOne(c ctx.Ctx, collection domain.Address) (*Launchpad, error)
	FindAll(c ctx.Ctx) ([]*Launchpad, error)
	Create(c ctx.Ctx, lp *Launchpad) error
	Upsert(c ctx.Ctx, lp *Launchpad) error
}

type PhaseRepo interface {
	FindOne(c ctx.Ctx, collection domain.Address, phaseId uint64) (*Phase, error)
	// FindAll returns every phase of the collection, sentinel included,
	// in ascending phase id order
	FindAll(c ctx.Ctx, collection domain.Address) ([]*Phase, error)
	Upsert(c ctx.Ctx, p *Phase) error
	Remove(c ctx.Ctx, collection domain.Address, phaseId uint64) error
}

type WhitelistRepo interface {
	FindOne(c ctx.Ctx, collection domain.Address, phaseId uint64, address domain.Address) (*Whitelist, error)
	Upsert(c ctx.Ctx, w *Whitelist) error
	Remove(c ctx.Ctx, collection domain.Address, phaseId uint64, address domain.Address) error
}

type SlotRepo interface {
	FindOne(c ctx.Ctx, collection domain.Address, position uint64) (*MintSlot, error)
	Upsert(c ctx.Ctx, s *MintSlot) error
}

type CreateParams struct {
	Sender     domain.Address `json:"-"`
	Collection domain.Address `json:"collection" validate:"required"`
	MaxSupply  uint64         `json:"maxSupply" validate:"required"`
	UriPrefix  string         `json:"uriPrefix" validate:"required"`
	UriSuffix  string         `json:"uriSuffix"`
	FeePercent uint64         `json:"feePercent"`
}

type AddPhaseParams struct {
	Sender     domain.Address `json:"-"`
	Collection domain.Address `json:"collection" validate:"required"`
	// AfterPhaseId picks the insertion point, nil appends at the tail
	AfterPhaseId *uint64     `json:"afterPhaseId,omitempty"`
	Config       PhaseConfig `json:"config" validate:"required"`
}

type UpdatePhaseParams struct {
	Sender     domain.Address `json:"-"`
	Collection domain.Address `json:"collection" validate:"required"`
	PhaseId    uint64         `json:"phaseId" validate:"required"`
	Config     PhaseConfig    `json:"config" validate:"required"`
}

type RemovePhaseParams struct {
	Sender     domain.Address `json:"-"`
	Collection domain.Address `json:"collection" validate:"required"`
	PhaseId    uint64         `json:"phaseId" validate:"required"`
}

type WhitelistParams struct {
	Sender     domain.Address   `json:"-"`
	Collection domain.Address   `json:"collection" validate:"required"`
	PhaseId    uint64           `json:"phaseId" validate:"required"`
	Addresses  []domain.Address `json:"addresses" validate:"required,min=1"`
}

type MintParams struct {
	Sender     domain.Address       `json:"-"`
	Collection domain.Address       `json:"collection" validate:"required"`
	Amount     uint64               `json:"amount" validate:"required,min=1"`
	Funds      []asset.PaymentAsset `json:"funds"`
}

type WithdrawParams struct {
	Sender     domain.Address `json:"-"`
	Collection domain.Address `json:"collection" validate:"required"`
}

type Info struct {
	Launchpad *Launchpad `json:"launchpad"`
	// Phases excludes the sentinel, in list order
	Phases []*Phase `json:"phases"`
}

type UseCase interface {
	Create(c ctx.Ctx, p *CreateParams) (*Launchpad, error)
	AddPhase(c ctx.Ctx, p *AddPhaseParams) (*Phase, error)
	UpdatePhase(c ctx.Ctx, p *UpdatePhaseParams) (*Phase, error)
	RemovePhase(c ctx.Ctx, p *RemovePhaseParams) error
	AddWhitelist(c ctx.Ctx, p *WhitelistParams) error
	RemoveWhitelist(c ctx.Ctx, p *WhitelistParams) error
	Mint(c ctx.Ctx, p *MintParams) ([]chainmsg.Msg, error)
	Activate(c ctx.Ctx, sender, collection domain.Address, active bool) error
	Withdraw(c ctx.Ctx, p *WithdrawParams) ([]chainmsg.Msg, error)

	GetInfo(c ctx.Ctx, collection domain.Address) (*Info, error)
	// Mintable returns how many tokens the address may still mint in
	// the currently open phase
	Mintable(c ctx.Ctx, collection, address domain.Address) (uint64, error)
}
