// internal/services/errors.go
package services

import "errors"

// Resource-state and amount errors surfaced by the orchestrators and
// relays. Access errors live in authz, shape errors in license and
// royalty; external-service failures propagate opaquely.
var (
	ErrCollectionNotCreated = errors.New("asset collection has not been created")
	ErrCollectionExists     = errors.New("asset collection already exists")
	ErrAssetNotFound        = errors.New("asset is not registered with this gateway")
	ErrNoParents            = errors.New("derivative requires at least one parent asset")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrFeeTooHigh           = errors.New("platform fee exceeds the caller's ceiling")
	ErrFeeAboveLimit        = errors.New("platform fee may not exceed 10%")
	ErrNoRoyaltyVault       = errors.New("target asset has no deployed royalty vault")
)
