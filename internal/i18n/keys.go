// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication / authorization
	KeyAuthRequired      = "auth.required"
	KeyAuthInvalidToken  = "auth.invalid_token"
	KeyAuthTokenExpired  = "auth.token_expired"
	KeyOwnerAccessDenied = "auth.owner_access_denied"
	KeyAuthorNotAllowed  = "auth.author_not_allowed"
	KeySystemPaused      = "system.paused"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Registration
	KeyRegistrationSuccess   = "registration.success"
	KeyDerivativeSuccess     = "registration.derivative_success"
	KeyCollectionCreated     = "collection.created"
	KeyCollectionNotCreated  = "collection.not_created"
	KeyCollectionExists      = "collection.exists"
	KeyAssetNotFound         = "asset.not_found"

	// Payments
	KeyTipSuccess          = "payment.tip_success"
	KeyRoyaltyPaidSuccess  = "payment.royalty_success"
	KeyClaimSuccess        = "payment.claim_success"
	KeyInvalidAmount       = "payment.invalid_amount"
	KeyFeeTooHigh          = "payment.fee_too_high"
	KeyNoRoyaltyVault      = "payment.no_royalty_vault"

	// Admin
	KeyAuthorizationUpdated = "admin.authorization_updated"
	KeyPauseUpdated         = "admin.pause_updated"
	KeyPlatformFeeUpdated   = "admin.platform_fee_updated"
	KeyOwnerTransferred     = "admin.owner_transferred"
)
