package data

import "errors"

// validation errors surfaced while building transactions and operations
var (
	ErrInvalidAssetCode     = errors.New("asset code must be 1 to 12 alphanumeric characters")
	ErrInvalidAsset         = errors.New("invalid asset")
	ErrPoolShareNotAllowed  = errors.New("pool share asset not valid in this context")
	ErrAssetsNotOrdered     = errors.New("pool assets must be distinct and in canonical order")
	ErrInvalidPoolFee       = errors.New("pool fee must be 30 basis points")
	ErrInvalidPrice         = errors.New("price terms must be positive")
	ErrNonPositiveAmount    = errors.New("amount must be strictly positive")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrMemoTextTooLong      = errors.New("memo text exceeds 28 bytes")
	ErrPathTooLong          = errors.New("payment path carries at most 5 hops")
	ErrNoClaimants          = errors.New("claimable balance needs at least one claimant")
	ErrTooManyClaimants     = errors.New("claimable balance supports at most 10 claimants")
	ErrInvalidPredicate     = errors.New("invalid claim predicate")
	ErrPredicateTooDeep     = errors.New("claim predicate nested too deeply")
	ErrHomeDomainTooLong    = errors.New("home domain exceeds 32 bytes")
	ErrWeightOutOfRange     = errors.New("weights and thresholds must be 255 or less")
	ErrInvalidDataEntry     = errors.New("data entry name must be 1 to 64 bytes with a value of at most 64 bytes")
	ErrTargetAlreadySet     = errors.New("revoke sponsorship target already set")
	ErrNoTarget             = errors.New("revoke sponsorship needs exactly one target")
	ErrInvalidAuthorizeFlag = errors.New("authorize flag out of range")
	ErrInvalidTrustFlags    = errors.New("trustline flags overlap or exceed the known set")
	ErrInvalidAccountFlags  = errors.New("account flags exceed the known set")
	ErrNativeNotAllowed     = errors.New("native asset not valid in this context")
	ErrInvalidSignerPayload = errors.New("signer payload must be 1 to 64 bytes")
	ErrInvalidSignerWeight  = errors.New("signer weight must be 255 or less")
	ErrNoOperations         = errors.New("transaction needs at least one operation")
	ErrTooManyOperations    = errors.New("transaction supports at most 100 operations")
	ErrInsufficientFee      = errors.New("fee below base fee times operation count")
	ErrFeeOverflow          = errors.New("total fee exceeds uint32 range")
	ErrSequenceOverflow     = errors.New("sequence number would overflow")
	ErrInnerNotV1           = errors.New("fee bump wraps only v1 envelopes")
	ErrInvalidOfferID       = errors.New("offer id must not be negative")
	ErrInvalidTimeBounds    = errors.New("time bounds end before they begin")
	ErrInvalidLedgerBounds  = errors.New("ledger bounds end before they begin")
	ErrTooManyExtraSigners  = errors.New("preconditions support at most 2 extra signers")
	ErrNegativeSequence     = errors.New("sequence number must not be negative")
	ErrInvalidSymbol        = errors.New("symbol must be 1 to 32 characters")
	ErrTooManySignatures    = errors.New("envelope supports at most 20 signatures")
	ErrPreimageTooLong      = errors.New("hash preimage exceeds 64 bytes")
	ErrInvalidLedgerKey     = errors.New("ledger key body does not match its type")
	ErrMissingUnionBody     = errors.New("union arm not populated for its type")
)
