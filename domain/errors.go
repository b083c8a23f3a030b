package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidAddress      = errors.New("Invalid address")

	// ErrUnauthorized will throw if the caller is not allowed to act on the resource
	ErrUnauthorized = errors.New("unauthorized")

	// order errors
	ErrInsufficientFunds          = errors.New("insufficient funds")
	ErrInsufficientAllowance      = errors.New("insufficient allowance")
	ErrInvalidTimeRange           = errors.New("invalid time range")
	ErrInvalidAuctionConfig       = errors.New("invalid auction config")
	ErrBidTooLow                  = errors.New("bid price too low")
	ErrOrderExpired               = errors.New("order expired")
	ErrOrderNotStarted            = errors.New("order not started yet")
	ErrOrderNotExpired            = errors.New("order not expired yet")
	ErrNotPaymentAsset            = errors.New("asset cannot be used as payment")
	ErrPayTokenNotSet             = errors.New("pay token is not configured")
	ErrCollectionOfferUnsupported = errors.New("collection level offer is not supported")
	ErrRoyaltyExceedsPrice        = errors.New("royalty amount exceeds sale price")
	ErrMissingApproval            = errors.New("missing never expiring approval")
	ErrTooManyOrders              = errors.New("too many orders in one batch")

	// launchpad errors
	ErrLaunchpadStarted      = errors.New("launchpad already started")
	ErrLaunchpadActive       = errors.New("launchpad is active")
	ErrLaunchpadInactive     = errors.New("launchpad is not active")
	ErrInvalidPhaseTime      = errors.New("invalid phase time window")
	ErrInvalidPhaseId        = errors.New("invalid phase id")
	ErrMaxSupplyReached      = errors.New("max supply reached")
	ErrMintLimitExceeded     = errors.New("mint limit exceeded")
	ErrLastPhaseNotFinished  = errors.New("last mint phase is not finished")
	ErrTooManyNfts           = errors.New("too many nfts in one mint")
	ErrNotWhitelisted        = errors.New("address is not whitelisted for phase")
	ErrPhaseNotStarted       = errors.New("mint phase has not started")
)
