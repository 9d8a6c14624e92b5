// internal/services/registration_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inklight/bookip-backend/internal/authz"
	"github.com/inklight/bookip-backend/internal/config"
	"github.com/inklight/bookip-backend/internal/license"
	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/protocol"
	"github.com/inklight/bookip-backend/internal/royalty"
	"github.com/inklight/bookip-backend/internal/utils"
)

// RegistrationService orchestrates root and derivative registrations:
// it validates everything locally, issues exactly one protocol call,
// and records the result. No partial state survives a failed call.
type RegistrationService struct {
	store       GatewayStore
	gate        *authz.Gate
	registrar   protocol.Registrar
	derivatives protocol.DerivativeRegistrar
	royalties   protocol.RoyaltyClient
	events      *EventRecorder
	cfg         *config.Config
}

func NewRegistrationService(
	store GatewayStore,
	gate *authz.Gate,
	registrar protocol.Registrar,
	derivatives protocol.DerivativeRegistrar,
	royalties protocol.RoyaltyClient,
	events *EventRecorder,
	cfg *config.Config,
) *RegistrationService {
	return &RegistrationService{
		store:       store,
		gate:        gate,
		registrar:   registrar,
		derivatives: derivatives,
		royalties:   royalties,
		events:      events,
		cfg:         cfg,
	}
}

// ShareInputs carries the three caller-supplied royalty shapes the
// resolver picks from.
type ShareInputs struct {
	SingleAuthor    string           `json:"single_author,omitempty" validate:"omitempty,principal"`
	CoAuthors       []string         `json:"co_authors,omitempty" validate:"omitempty,dive,principal"`
	CoAuthorWeights []uint32         `json:"co_author_weights,omitempty"`
	Shares          royalty.ShareSet `json:"shares,omitempty"`
}

func (s ShareInputs) toResolverInput() (royalty.Input, error) {
	in := royalty.Input{
		CoAuthorWeights: s.CoAuthorWeights,
		Shares:          s.Shares,
	}
	if s.SingleAuthor != "" {
		p, ok := models.NewPrincipal(s.SingleAuthor)
		if !ok {
			return in, fmt.Errorf("%w: malformed single author", royalty.ErrInvalidAuthorData)
		}
		in.SingleRecipient = p
	}
	for _, raw := range s.CoAuthors {
		p, ok := models.NewPrincipal(raw)
		if !ok {
			return in, fmt.Errorf("%w: malformed co-author %q", royalty.ErrInvalidAuthorData, raw)
		}
		in.CoAuthors = append(in.CoAuthors, p)
	}
	return in, nil
}

type RegisterRootRequest struct {
	Recipient       string               `json:"recipient" validate:"required,principal"`
	MetadataURI     string               `json:"metadata_uri" validate:"omitempty,max=512"`
	MetadataHash    string               `json:"metadata_hash" validate:"omitempty,max=66"`
	LicenseKinds    []models.LicenseKind `json:"license_kinds" validate:"required"`
	CustomFee       models.Amount        `json:"custom_fee"`
	CustomRevShare  uint32               `json:"custom_rev_share"`
	ShareInputs     ShareInputs          `json:"share_inputs"`
	AllowDuplicates bool                 `json:"allow_duplicates"`
}

// RegisterRoot registers a literary work as a root IP asset. Precondition
// order is load-bearing: pause, author authorization, collection, license
// cardinality, then policy building and share resolution before the one
// external call.
func (s *RegistrationService) RegisterRoot(ctx context.Context, caller models.Principal, req *RegisterRootRequest) (*models.RegistrationRecord, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.gate.RequireNotPaused(); err != nil {
		return nil, err
	}
	if err := s.gate.RequireAuthorAuthorized(caller); err != nil {
		return nil, err
	}

	collection, err := s.store.Collection()
	if err != nil {
		return nil, err
	}

	if len(req.LicenseKinds) == 0 || len(req.LicenseKinds) > license.MaxKindsPerAsset {
		return nil, fmt.Errorf("%w: got %d", license.ErrInvalidLicenseTypes, len(req.LicenseKinds))
	}
	for _, kind := range req.LicenseKinds {
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: %d", license.ErrInvalidLicenseKind, kind)
		}
	}

	policies, err := license.BuildPolicies(s.licenseDefaults(), req.LicenseKinds, req.CustomFee, req.CustomRevShare)
	if err != nil {
		return nil, err
	}

	shareInput, err := req.ShareInputs.toResolverInput()
	if err != nil {
		return nil, err
	}
	recipient, ok := models.NewPrincipal(req.Recipient)
	if !ok || recipient.IsZero() {
		return nil, fmt.Errorf("%w: malformed recipient", royalty.ErrInvalidAuthorData)
	}
	if shareInput.SingleRecipient.IsZero() && len(shareInput.CoAuthors) == 0 && len(shareInput.Shares) == 0 {
		shareInput.SingleRecipient = recipient
	}

	shares, err := royalty.Resolve(shareInput)
	if err != nil {
		return nil, err
	}

	result, err := s.registrar.RegisterRoot(ctx, protocol.RootRegistration{
		Collection:      collection.Handle,
		Recipient:       recipient,
		MetadataURI:     req.MetadataURI,
		MetadataHash:    req.MetadataHash,
		Policies:        policies,
		Shares:          shares,
		AllowDuplicates: req.AllowDuplicates,
		IdempotencyKey:  uuid.New(),
	})
	if err != nil {
		return nil, err
	}

	vault, err := s.royalties.VaultOf(ctx, result.AssetID)
	if err != nil {
		return nil, err
	}

	record := &models.RegistrationRecord{
		AssetID:        result.AssetID,
		TokenID:        result.TokenID,
		Kind:           models.RegistrationKindRoot,
		Recipient:      recipient,
		RegisteredBy:   caller,
		MetadataURI:    req.MetadataURI,
		MetadataHash:   req.MetadataHash,
		LicenseTermIDs: result.LicenseTermIDs,
		RoyaltyVault:   vault,
		ShareCount:     len(shares),
	}
	if err := s.store.SaveRegistration(record); err != nil {
		return nil, err
	}

	if err := s.events.Record(models.EventRegistrationCompleted, caller, result.AssetID, models.JSONB{
		"token_id":         result.TokenID,
		"license_term_ids": result.LicenseTermIDs,
		"royalty_vault":    vault.String(),
		"share_count":      len(shares),
	}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"asset_id":    result.AssetID,
		"recipient":   recipient,
		"share_count": len(shares),
	}).Info("Root registration completed")

	return record, nil
}

type RegisterDerivativeRequest struct {
	Recipient            string        `json:"recipient" validate:"required,principal"`
	MetadataURI          string        `json:"metadata_uri" validate:"omitempty,max=512"`
	MetadataHash         string        `json:"metadata_hash" validate:"omitempty,max=66"`
	ParentAssetIDs       []string      `json:"parent_asset_ids"`
	ParentLicenseTermIDs []string      `json:"parent_license_term_ids"`
	MaxMintingFee        models.Amount `json:"max_minting_fee"`
	MaxRoyaltyTokens     models.Amount `json:"max_royalty_tokens"`
	MaxRevenueShare      uint32        `json:"max_revenue_share"`
	ShareInputs          ShareInputs   `json:"share_inputs"`
	AllowDuplicates      bool          `json:"allow_duplicates"`
}

// RegisterDerivative registers a child work referencing one or more
// parent assets. Derivatives inherit parent licensing, so no license
// kinds are selected here; the caller's ceilings travel to the protocol
// verbatim.
func (s *RegistrationService) RegisterDerivative(ctx context.Context, caller models.Principal, req *RegisterDerivativeRequest) (*models.RegistrationRecord, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.gate.RequireNotPaused(); err != nil {
		return nil, err
	}

	collection, err := s.store.Collection()
	if err != nil {
		return nil, err
	}

	if len(req.ParentAssetIDs) == 0 {
		return nil, ErrNoParents
	}
	if len(req.ParentAssetIDs) > royalty.MaxCollaborators {
		return nil, &royalty.CollaboratorLimitError{
			Provided: len(req.ParentAssetIDs),
			Limit:    royalty.MaxCollaborators,
		}
	}
	if len(req.ParentAssetIDs) != len(req.ParentLicenseTermIDs) {
		return nil, fmt.Errorf("%w: %d parents but %d license terms",
			royalty.ErrInvalidAuthorData, len(req.ParentAssetIDs), len(req.ParentLicenseTermIDs))
	}

	shareInput, err := req.ShareInputs.toResolverInput()
	if err != nil {
		return nil, err
	}
	recipient, ok := models.NewPrincipal(req.Recipient)
	if !ok || recipient.IsZero() {
		return nil, fmt.Errorf("%w: malformed recipient", royalty.ErrInvalidAuthorData)
	}
	if shareInput.SingleRecipient.IsZero() && len(shareInput.CoAuthors) == 0 && len(shareInput.Shares) == 0 {
		shareInput.SingleRecipient = recipient
	}

	shares, err := royalty.Resolve(shareInput)
	if err != nil {
		return nil, err
	}

	result, err := s.derivatives.RegisterDerivative(ctx, protocol.DerivativeRegistration{
		Collection:           collection.Handle,
		Recipient:            recipient,
		MetadataURI:          req.MetadataURI,
		MetadataHash:         req.MetadataHash,
		ParentAssetIDs:       req.ParentAssetIDs,
		ParentLicenseTermIDs: req.ParentLicenseTermIDs,
		MaxMintingFee:        req.MaxMintingFee,
		MaxRoyaltyTokens:     req.MaxRoyaltyTokens,
		MaxRevenueShare:      req.MaxRevenueShare,
		Shares:               shares,
		AllowDuplicates:      req.AllowDuplicates,
		IdempotencyKey:       uuid.New(),
	})
	if err != nil {
		return nil, err
	}

	record := &models.RegistrationRecord{
		AssetID:        result.AssetID,
		TokenID:        result.TokenID,
		Kind:           models.RegistrationKindDerivative,
		Recipient:      recipient,
		RegisteredBy:   caller,
		MetadataURI:    req.MetadataURI,
		MetadataHash:   req.MetadataHash,
		ParentAssetIDs: req.ParentAssetIDs,
		ShareCount:     len(shares),
	}
	if err := s.store.SaveRegistration(record); err != nil {
		return nil, err
	}

	if err := s.events.Record(models.EventDerivativeCreated, caller, result.AssetID, models.JSONB{
		"token_id":         result.TokenID,
		"parent_asset_ids": req.ParentAssetIDs,
		"share_count":      len(shares),
	}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"asset_id": result.AssetID,
		"parents":  len(req.ParentAssetIDs),
	}).Info("Derivative registration completed")

	return record, nil
}

// GetRegistration returns the local record for one asset.
func (s *RegistrationService) GetRegistration(assetID string) (*models.RegistrationRecord, error) {
	return s.store.GetRegistration(assetID)
}

// ListRegistrations pages through the local registration records.
func (s *RegistrationService) ListRegistrations(params utils.PaginationParams) ([]models.RegistrationRecord, int64, error) {
	return s.store.ListRegistrations(params)
}

func (s *RegistrationService) licenseDefaults() license.Defaults {
	return license.Defaults{
		CommercialFee:       s.cfg.License.DefaultCommercialFee,
		CommercialRevShare:  s.cfg.License.DefaultCommercialRevShare,
		AttributionFee:      s.cfg.License.AttributionFee,
		AttributionRevShare: s.cfg.License.AttributionRevShare,
		RoyaltyPolicy:       s.cfg.Protocol.RoyaltyPolicy,
		Currency:            s.cfg.Protocol.Currency,
	}
}
