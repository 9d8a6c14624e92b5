// internal/license/builder.go
package license

import (
	"errors"
	"fmt"

	"github.com/inklight/bookip-backend/internal/models"
)

var (
	ErrInvalidLicenseKind    = errors.New("license kind outside the supported set")
	ErrInvalidLicenseTypes   = errors.New("between 1 and 3 license kinds are required")
	ErrDuplicateLicenseKind  = errors.New("license kinds must not repeat")
	ErrRevenueShareOverScale = errors.New("revenue share percentage exceeds 100%")
)

// MaxKindsPerAsset caps the policies one registration may attach: at
// most one of each kind.
const MaxKindsPerAsset = 3

// Policy is a fully parameterized license descriptor ready to hand to
// the external licensing service.
type Policy struct {
	Kind            models.LicenseKind `json:"kind"`
	MintingFee      models.Amount      `json:"minting_fee"`
	RevSharePercent uint32             `json:"rev_share_percent"`
	RoyaltyPolicy   models.Principal   `json:"royalty_policy"`
	Currency        models.Principal   `json:"currency"`
}

// Defaults carries the protocol-level fallback parameters.
type Defaults struct {
	CommercialFee      models.Amount
	CommercialRevShare uint32
	AttributionFee     models.Amount
	AttributionRevShare uint32
	RoyaltyPolicy      models.Principal
	Currency           models.Principal
}

// BuildPolicies maps license kinds plus optional caller overrides into
// policy descriptors. Only CommercialRemix honors the overrides;
// NonCommercialRemix is forced to zero fee and zero revenue share, and
// AttributionOnly always takes the attribution defaults. Pure function.
func BuildPolicies(d Defaults, kinds []models.LicenseKind, customFee models.Amount, customRevShare uint32) ([]Policy, error) {
	if len(kinds) == 0 || len(kinds) > MaxKindsPerAsset {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLicenseTypes, len(kinds))
	}
	if customRevShare > models.PercentScale {
		return nil, fmt.Errorf("%w: %d", ErrRevenueShareOverScale, customRevShare)
	}

	seen := make(map[models.LicenseKind]bool, len(kinds))
	policies := make([]Policy, 0, len(kinds))

	for _, kind := range kinds {
		if seen[kind] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLicenseKind, kind)
		}
		seen[kind] = true

		policy := Policy{
			Kind:          kind,
			RoyaltyPolicy: d.RoyaltyPolicy,
			Currency:      d.Currency,
		}

		switch kind {
		case models.LicenseCommercialRemix:
			policy.MintingFee = d.CommercialFee
			if !customFee.IsZero() {
				policy.MintingFee = customFee
			}
			policy.RevSharePercent = d.CommercialRevShare
			if customRevShare > 0 {
				policy.RevSharePercent = customRevShare
			}

		case models.LicenseNonCommercialRemix:
			// Caller overrides are ignored: non-commercial terms are
			// always free with no revenue share.
			policy.MintingFee = models.Amount{}
			policy.RevSharePercent = 0

		case models.LicenseAttributionOnly:
			policy.MintingFee = d.AttributionFee
			policy.RevSharePercent = d.AttributionRevShare

		default:
			return nil, fmt.Errorf("%w: %d", ErrInvalidLicenseKind, kind)
		}

		policies = append(policies, policy)
	}

	return policies, nil
}
