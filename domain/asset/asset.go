package asset

import (
	"math/big"

	"github.com/aurabay/goapi/domain"
)

type Kind string

const (
	KindNative Kind = "native"
	KindCw20   Kind = "cw20"
	KindNft    Kind = "nft"
)

// Asset is a tagged union over the three transferable things in the
// market: native coins, cw20 coins and a single nft.
type Asset struct {
	Kind     Kind           `json:"kind" bson:"kind"`
	Denom    domain.Denom   `json:"denom,omitempty" bson:"denom,omitempty"`
	Contract domain.Address `json:"contract,omitempty" bson:"contract,omitempty"`
	TokenId  domain.TokenId `json:"tokenId,omitempty" bson:"tokenID,omitempty"`
	// Amount is a base-10 Uint128 string, empty for nft
	Amount string `json:"amount,omitempty" bson:"amount,omitempty"`
}

func NewNative(denom domain.Denom, amount string) Asset {
	return Asset{Kind: KindNative, Denom: denom, Amount: amount}
}

func NewCw20(contract domain.Address, amount string) Asset {
	return Asset{Kind: KindCw20, Contract: contract.ToLower(), Amount: amount}
}

func NewNft(contract domain.Address, tokenId domain.TokenId) Asset {
	return Asset{Kind: KindNft, Contract: contract.ToLower(), TokenId: tokenId}
}

func (a Asset) IsNft() bool {
	return a.Kind == KindNft
}

// PaymentAsset is the fungible subset of Asset
type PaymentAsset struct {
	Kind     Kind           `json:"kind" bson:"kind"`
	Denom    domain.Denom   `json:"denom,omitempty" bson:"denom,omitempty"`
	Contract domain.Address `json:"contract,omitempty" bson:"contract,omitempty"`
	Amount   string         `json:"amount" bson:"amount"`
}

// ToPayment converts the asset into its fungible form. Nft assets have
// no payment form and yield ErrNotPaymentAsset.
func (a Asset) ToPayment() (PaymentAsset, error) {
	switch a.Kind {
	case KindNative:
		return PaymentAsset{Kind: KindNative, Denom: a.Denom, Amount: a.Amount}, nil
	case KindCw20:
		return PaymentAsset{Kind: KindCw20, Contract: a.Contract, Amount: a.Amount}, nil
	default:
		return PaymentAsset{}, domain.ErrNotPaymentAsset
	}
}

func (p PaymentAsset) ToAsset() Asset {
	return Asset{Kind: p.Kind, Denom: p.Denom, Contract: p.Contract, Amount: p.Amount}
}

// SameToken reports whether two payment assets denote the same fungible
// token, ignoring amounts.
func (p PaymentAsset) SameToken(o PaymentAsset) bool {
	if p.Kind != o.Kind {
		return false
	}
	if p.Kind == KindNative {
		return p.Denom == o.Denom
	}
	return p.Contract.Equals(o.Contract)
}

func (p PaymentAsset) AmountBig() (*big.Int, error) {
	return domain.ToBigInt(p.Amount)
}

// WithAmount returns a copy carrying the given amount
func (p PaymentAsset) WithAmount(amount *big.Int) PaymentAsset {
	p.Amount = amount.String()
	return p
}
