package domain

import (
	"math/big"
	"strings"
	"time"
)

var (
	Big100 = big.NewInt(100)
)

type Address string

const EmptyAddress = Address("")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// Denom is a native coin denomination, ex: uaura
type Denom string

func (d Denom) String() string {
	return string(d)
}

// BlockInfo is a point-in-time snapshot of chain head state. Handlers
// fetch it once per call so every check inside one call sees the same
// height and timestamp.
type BlockInfo struct {
	Height uint64    `json:"height"`
	Time   time.Time `json:"time"`
}

type ExpirationKind string

const (
	ExpirationNever    ExpirationKind = "never"
	ExpirationAtHeight ExpirationKind = "at_height"
	ExpirationAtTime   ExpirationKind = "at_time"
)

// Expiration mirrors the cw-utils expiration scheme: a deadline is
// either unbounded, a block height, or a timestamp.
type Expiration struct {
	Kind   ExpirationKind `json:"kind" bson:"kind"`
	Height uint64         `json:"height,omitempty" bson:"height,omitempty"`
	Time   time.Time      `json:"time,omitempty" bson:"time,omitempty"`
}

func NeverExpires() Expiration {
	return Expiration{Kind: ExpirationNever}
}

func ExpiresAtHeight(height uint64) Expiration {
	return Expiration{Kind: ExpirationAtHeight, Height: height}
}

func ExpiresAtTime(t time.Time) Expiration {
	return Expiration{Kind: ExpirationAtTime, Time: t}
}

// IsExpired reports whether the expiration passed at the given block.
// A "never" expiration is never expired. Boundary is inclusive, the
// deadline block itself counts as expired.
func (e Expiration) IsExpired(block BlockInfo) bool {
	switch e.Kind {
	case ExpirationAtHeight:
		return block.Height >= e.Height
	case ExpirationAtTime:
		return !block.Time.Before(e.Time)
	default:
		return false
	}
}

func (e Expiration) IsNever() bool {
	return e.Kind == ExpirationNever || e.Kind == ""
}

// ToBigInt parses a non-negative base-10 integer string the way the
// chain parses Uint128 values.
func ToBigInt(num string) (*big.Int, error) {
	bn, ok := new(big.Int).SetString(num, 10)
	if !ok || bn.Sign() < 0 {
		return nil, ErrInvalidNumberFormat
	}
	return bn, nil
}
