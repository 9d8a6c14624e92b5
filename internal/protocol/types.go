// internal/protocol/types.go
package protocol

import (
	"context"

	"github.com/google/uuid"

	"github.com/inklight/bookip-backend/internal/license"
	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/royalty"
)

// The external protocol is reached through one narrow interface per
// collaborator so each can be mocked independently. The gateway holds
// these at construction time and never reaches past them.

// RootRegistration is the single composite request for minting,
// registering, license attachment, and royalty-token distribution.
type RootRegistration struct {
	Collection      string             `json:"collection"`
	Recipient       models.Principal   `json:"recipient"`
	MetadataURI     string             `json:"metadata_uri"`
	MetadataHash    string             `json:"metadata_hash"`
	Policies        []license.Policy   `json:"policies"`
	Shares          royalty.ShareSet   `json:"shares"`
	AllowDuplicates bool               `json:"allow_duplicates"`
	IdempotencyKey  uuid.UUID          `json:"idempotency_key"`
}

type RootResult struct {
	AssetID        string   `json:"asset_id"`
	TokenID        uint64   `json:"token_id"`
	LicenseTermIDs []string `json:"license_term_ids"`
}

// DerivativeRegistration carries the caller's fee and share ceilings
// verbatim; they are the caller's only protection against parent-policy
// changes racing the registration.
type DerivativeRegistration struct {
	Collection           string           `json:"collection"`
	Recipient            models.Principal `json:"recipient"`
	MetadataURI          string           `json:"metadata_uri"`
	MetadataHash         string           `json:"metadata_hash"`
	ParentAssetIDs       []string         `json:"parent_asset_ids"`
	ParentLicenseTermIDs []string         `json:"parent_license_term_ids"`
	MaxMintingFee        models.Amount    `json:"max_minting_fee"`
	MaxRoyaltyTokens     models.Amount    `json:"max_royalty_tokens"`
	MaxRevenueShare      uint32           `json:"max_revenue_share"`
	Shares               royalty.ShareSet `json:"shares"`
	AllowDuplicates      bool             `json:"allow_duplicates"`
	IdempotencyKey       uuid.UUID        `json:"idempotency_key"`
}

type DerivativeResult struct {
	AssetID string `json:"asset_id"`
	TokenID uint64 `json:"token_id"`
}

// Registrar mints and registers root assets.
type Registrar interface {
	CreateCollection(ctx context.Context, name, symbol string) (string, error)
	RegisterRoot(ctx context.Context, req RootRegistration) (*RootResult, error)
}

// DerivativeRegistrar registers child assets against their parents.
type DerivativeRegistrar interface {
	RegisterDerivative(ctx context.Context, req DerivativeRegistration) (*DerivativeResult, error)
}

// RoyaltyClient fronts the royalty vault and claim services. VaultOf
// returns the zero principal when no vault has been deployed.
type RoyaltyClient interface {
	VaultOf(ctx context.Context, assetID string) (models.Principal, error)
	PayOnBehalf(ctx context.Context, parentAssetID, payerAssetID string, currency models.Principal, amount models.Amount) error
	ClaimAllRevenue(ctx context.Context, assetID string, claimant models.Principal, sources []models.Principal) ([]models.Amount, error)
}

// Currency is the fungible transfer primitive used by the payment relay.
type Currency interface {
	TransferFrom(ctx context.Context, payer, recipient models.Principal, amount models.Amount) error
}
