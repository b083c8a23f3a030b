package chainmsg

import (
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/asset"
)

type Type string

const (
	TypeBankSend         Type = "bank_send"
	TypeCw20Transfer     Type = "cw20_transfer"
	TypeCw20TransferFrom Type = "cw20_transfer_from"
	TypeNftTransfer      Type = "nft_transfer"
	TypeMint             Type = "mint"
)

// Msg is one outbound chain instruction. Handlers never broadcast,
// they return the ordered instruction list to the caller.
type Msg struct {
	Type     Type           `json:"type"`
	Contract domain.Address `json:"contract,omitempty"`
	From     domain.Address `json:"from,omitempty"`
	To       domain.Address `json:"to"`
	Denom    domain.Denom   `json:"denom,omitempty"`
	Amount   string         `json:"amount,omitempty"`
	TokenId  domain.TokenId `json:"tokenId,omitempty"`
	TokenUri string         `json:"tokenUri,omitempty"`
}

func BankSend(to domain.Address, denom domain.Denom, amount string) Msg {
	return Msg{Type: TypeBankSend, To: to, Denom: denom, Amount: amount}
}

func Cw20Transfer(contract, to domain.Address, amount string) Msg {
	return Msg{Type: TypeCw20Transfer, Contract: contract, To: to, Amount: amount}
}

func Cw20TransferFrom(contract, from, to domain.Address, amount string) Msg {
	return Msg{Type: TypeCw20TransferFrom, Contract: contract, From: from, To: to, Amount: amount}
}

func NftTransfer(contract, to domain.Address, tokenId domain.TokenId) Msg {
	return Msg{Type: TypeNftTransfer, Contract: contract, To: to, TokenId: tokenId}
}

func Mint(contract, to domain.Address, tokenId domain.TokenId, tokenUri string) Msg {
	return Msg{Type: TypeMint, Contract: contract, To: to, TokenId: tokenId, TokenUri: tokenUri}
}

// Pay builds the instruction moving a payment asset from `from` to
// `to`. Native coins move with a bank send, cw20 coins move with a
// transfer_from against the payer's allowance.
func Pay(p asset.PaymentAsset, from, to domain.Address) Msg {
	if p.Kind == asset.KindNative {
		return BankSend(to, p.Denom, p.Amount)
	}
	return Cw20TransferFrom(p.Contract, from, to, p.Amount)
}
