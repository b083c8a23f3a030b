package asset

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aurabay/goapi/domain"
)

type AssetTestSuite struct {
	suite.Suite
}

func (s *AssetTestSuite) TestToPayment() {
	tests := []struct {
		desc   string
		asset  Asset
		expErr error
		exp    PaymentAsset
	}{
		{
			desc:  "native asset",
			asset: NewNative("uaura", "1000"),
			exp:   PaymentAsset{Kind: KindNative, Denom: "uaura", Amount: "1000"},
		},
		{
			desc:  "cw20 asset",
			asset: NewCw20("aura1token", "5"),
			exp:   PaymentAsset{Kind: KindCw20, Contract: "aura1token", Amount: "5"},
		},
		{
			desc:   "nft asset is not a payment",
			asset:  NewNft("aura1collection", "42"),
			expErr: domain.ErrNotPaymentAsset,
		},
	}
	for _, t := range tests {
		p, err := t.asset.ToPayment()
		if t.expErr != nil {
			s.ErrorIs(err, t.expErr, t.desc)
			continue
		}
		s.NoError(err, t.desc)
		s.Equal(t.exp, p, t.desc)
	}
}

func (s *AssetTestSuite) TestSameToken() {
	s.True(PaymentAsset{Kind: KindNative, Denom: "uaura"}.SameToken(PaymentAsset{Kind: KindNative, Denom: "uaura", Amount: "9"}))
	s.False(PaymentAsset{Kind: KindNative, Denom: "uaura"}.SameToken(PaymentAsset{Kind: KindNative, Denom: "uatom"}))
	s.True(PaymentAsset{Kind: KindCw20, Contract: "aura1ABC"}.SameToken(PaymentAsset{Kind: KindCw20, Contract: "aura1abc"}))
	s.False(PaymentAsset{Kind: KindCw20, Contract: "aura1abc"}.SameToken(PaymentAsset{Kind: KindNative, Denom: "uaura"}))
}

func (s *AssetTestSuite) TestAmountBig() {
	_, err := PaymentAsset{Amount: "not-a-number"}.AmountBig()
	s.ErrorIs(err, domain.ErrInvalidNumberFormat)

	_, err = PaymentAsset{Amount: "-5"}.AmountBig()
	s.ErrorIs(err, domain.ErrInvalidNumberFormat)

	n, err := PaymentAsset{Amount: "340282366920938463463374607431768211455"}.AmountBig()
	s.NoError(err)
	s.Equal("340282366920938463463374607431768211455", n.String())
}

func TestAssetTestSuite(t *testing.T) {
	suite.Run(t, new(AssetTestSuite))
}
