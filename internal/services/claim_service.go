// internal/services/claim_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inklight/bookip-backend/internal/authz"
	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/protocol"
	"github.com/inklight/bookip-backend/internal/utils"
)

// ClaimService is a pass-through to the external claim service. It
// performs no financial computation; the protocol's answer is
// authoritative and is only republished as an event.
type ClaimService struct {
	gate      *authz.Gate
	royalties protocol.RoyaltyClient
	events    *EventRecorder
}

func NewClaimService(gate *authz.Gate, royalties protocol.RoyaltyClient, events *EventRecorder) *ClaimService {
	return &ClaimService{
		gate:      gate,
		royalties: royalties,
		events:    events,
	}
}

type ClaimRequest struct {
	AssetID        string   `json:"asset_id" validate:"required"`
	Claimant       string   `json:"claimant" validate:"required,principal"`
	RevenueSources []string `json:"revenue_sources" validate:"omitempty,dive,principal"`
}

// ClaimedAmount pairs one revenue-source currency with the amount the
// protocol released for it, in request order.
type ClaimedAmount struct {
	Currency models.Principal `json:"currency"`
	Amount   models.Amount    `json:"amount"`
}

func (s *ClaimService) ClaimRoyalties(ctx context.Context, caller models.Principal, req *ClaimRequest) ([]ClaimedAmount, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.gate.RequireNotPaused(); err != nil {
		return nil, err
	}
	if len(req.RevenueSources) == 0 {
		return nil, fmt.Errorf("%w: no revenue sources", ErrInvalidAmount)
	}

	claimant, ok := models.NewPrincipal(req.Claimant)
	if !ok || claimant.IsZero() {
		return nil, fmt.Errorf("%w: malformed claimant", ErrInvalidAmount)
	}

	sources := make([]models.Principal, 0, len(req.RevenueSources))
	for _, raw := range req.RevenueSources {
		p, ok := models.NewPrincipal(raw)
		if !ok {
			return nil, fmt.Errorf("%w: malformed revenue source %q", ErrInvalidAmount, raw)
		}
		sources = append(sources, p)
	}

	amounts, err := s.royalties.ClaimAllRevenue(ctx, req.AssetID, claimant, sources)
	if err != nil {
		return nil, err
	}

	claimed := make([]ClaimedAmount, 0, len(amounts))
	payload := make([]interface{}, 0, len(amounts))
	for i, amount := range amounts {
		currency := models.ZeroPrincipal
		if i < len(sources) {
			currency = sources[i]
		}
		claimed = append(claimed, ClaimedAmount{Currency: currency, Amount: amount})
		payload = append(payload, map[string]interface{}{
			"currency": currency.String(),
			"amount":   amount.Decimal(),
		})
	}

	if err := s.events.Record(models.EventRoyaltiesClaimed, caller, req.AssetID, models.JSONB{
		"claimant": claimant.String(),
		"claimed":  payload,
	}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"asset_id": req.AssetID,
		"claimant": claimant,
		"sources":  len(sources),
	}).Info("Royalties claimed")

	return claimed, nil
}
