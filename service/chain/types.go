package chain

import (
	"strconv"
	"time"

	"github.com/aurabay/goapi/domain"
)

type blockResponse struct {
	Block struct {
		Header struct {
			Height string    `json:"height"`
			Time   time.Time `json:"time"`
		} `json:"header"`
	} `json:"block"`
}

type ownerOfResponse struct {
	Owner string `json:"owner"`
}

// cwExpiration is the cw-utils expiration wire form, at_time carries
// nanoseconds as a string
type cwExpiration struct {
	Never    *struct{} `json:"never,omitempty"`
	AtHeight *uint64   `json:"at_height,omitempty"`
	AtTime   *string   `json:"at_time,omitempty"`
}

func (e cwExpiration) toDomain() (domain.Expiration, error) {
	switch {
	case e.AtHeight != nil:
		return domain.ExpiresAtHeight(*e.AtHeight), nil
	case e.AtTime != nil:
		nanos, err := strconv.ParseInt(*e.AtTime, 10, 64)
		if err != nil {
			return domain.Expiration{}, domain.ErrInvalidNumberFormat
		}
		return domain.ExpiresAtTime(time.Unix(0, nanos).UTC()), nil
	default:
		return domain.NeverExpires(), nil
	}
}

func (e cwExpiration) isNever() bool {
	return e.AtHeight == nil && e.AtTime == nil
}

type approvalResponse struct {
	Approval *struct {
		Spender string       `json:"spender"`
		Expires cwExpiration `json:"expires"`
	} `json:"approval"`
}

type royaltyInfoResponse struct {
	Address       string `json:"address"`
	RoyaltyAmount string `json:"royalty_amount"`
}

type checkRoyaltiesResponse struct {
	RoyaltyPayments bool `json:"royalty_payments"`
}

type allowanceResponse struct {
	Allowance string       `json:"allowance"`
	Expires   cwExpiration `json:"expires"`
}

type balanceResponse struct {
	Balance struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	} `json:"balance"`
}
