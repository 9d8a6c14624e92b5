// internal/services/payment_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inklight/bookip-backend/internal/authz"
	"github.com/inklight/bookip-backend/internal/config"
	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/protocol"
	"github.com/inklight/bookip-backend/internal/utils"
)

// PaymentService relays tips and royalty pass-through payments. Both
// flows are open to any caller and only pause-gated. Ordering is
// checks, then the event record, then the currency interactions, so the
// event trail reflects intent even when a transfer fails the call.
type PaymentService struct {
	store     GatewayStore
	gate      *authz.Gate
	royalties protocol.RoyaltyClient
	currency  protocol.Currency
	events    *EventRecorder
	cfg       *config.Config
}

func NewPaymentService(
	store GatewayStore,
	gate *authz.Gate,
	royalties protocol.RoyaltyClient,
	currency protocol.Currency,
	events *EventRecorder,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		store:     store,
		gate:      gate,
		royalties: royalties,
		currency:  currency,
		events:    events,
		cfg:       cfg,
	}
}

type TipRequest struct {
	TargetAssetID         string        `json:"target_asset_id" validate:"required"`
	Amount                models.Amount `json:"amount"`
	Message               string        `json:"message" validate:"omitempty,max=512"`
	MaxPlatformFeePercent uint32        `json:"max_platform_fee_percent"`
}

type TipReceipt struct {
	TargetAssetID string        `json:"target_asset_id"`
	Amount        models.Amount `json:"amount"`
	PlatformFee   models.Amount `json:"platform_fee"`
	NetAmount     models.Amount `json:"net_amount"`
	FeePercent    uint32        `json:"fee_percent"`
}

// PayTip deducts the platform fee, bounded by the caller's ceiling, and
// forwards the remainder to the asset's registered recipient. The fee
// uses floor division; fee + net always equals the tipped amount.
func (s *PaymentService) PayTip(ctx context.Context, caller models.Principal, req *TipRequest) (*TipReceipt, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.gate.RequireNotPaused(); err != nil {
		return nil, err
	}
	if req.Amount.IsZero() {
		return nil, ErrInvalidAmount
	}

	feePercent, err := s.store.PlatformFeePercent()
	if err != nil {
		return nil, err
	}
	// The ceiling protects callers against a fee raise racing their tip.
	if feePercent > req.MaxPlatformFeePercent {
		return nil, fmt.Errorf("%w: configured %d, ceiling %d",
			ErrFeeTooHigh, feePercent, req.MaxPlatformFeePercent)
	}

	record, err := s.store.GetRegistration(req.TargetAssetID)
	if err != nil {
		return nil, err
	}

	fee, net, err := req.Amount.FeeSplit(feePercent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	if err := s.events.Record(models.EventTipPaid, caller, req.TargetAssetID, models.JSONB{
		"amount":       req.Amount.Decimal(),
		"platform_fee": fee.Decimal(),
		"net_amount":   net.Decimal(),
		"message":      req.Message,
	}); err != nil {
		return nil, err
	}

	if err := s.currency.TransferFrom(ctx, caller, record.Recipient, net); err != nil {
		return nil, err
	}
	if !fee.IsZero() && !s.cfg.Payment.FeeTreasury.IsZero() {
		if err := s.currency.TransferFrom(ctx, caller, s.cfg.Payment.FeeTreasury, fee); err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"asset_id": req.TargetAssetID,
		"amount":   req.Amount.Decimal(),
		"fee":      fee.Decimal(),
	}).Info("Tip paid")

	return &TipReceipt{
		TargetAssetID: req.TargetAssetID,
		Amount:        req.Amount,
		PlatformFee:   fee,
		NetAmount:     net,
		FeePercent:    feePercent,
	}, nil
}

type RoyaltyPaymentRequest struct {
	ParentAssetID string        `json:"parent_asset_id" validate:"required"`
	ChildAssetID  string        `json:"child_asset_id" validate:"required"`
	Amount        models.Amount `json:"amount"`
	Reason        string        `json:"reason" validate:"omitempty,max=512"`
}

// PayRoyaltyShare forwards the full amount into the parent asset's
// deployed royalty vault on behalf of the child asset.
func (s *PaymentService) PayRoyaltyShare(ctx context.Context, caller models.Principal, req *RoyaltyPaymentRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := s.gate.RequireNotPaused(); err != nil {
		return err
	}
	if req.Amount.IsZero() {
		return ErrInvalidAmount
	}

	vault, err := s.royalties.VaultOf(ctx, req.ParentAssetID)
	if err != nil {
		return err
	}
	if vault.IsZero() {
		return fmt.Errorf("%w: %s", ErrNoRoyaltyVault, req.ParentAssetID)
	}

	if err := s.events.Record(models.EventRoyaltySharePaid, caller, req.ParentAssetID, models.JSONB{
		"child_asset_id": req.ChildAssetID,
		"amount":         req.Amount.Decimal(),
		"vault":          vault.String(),
		"reason":         req.Reason,
	}); err != nil {
		return err
	}

	if err := s.royalties.PayOnBehalf(ctx, req.ParentAssetID, req.ChildAssetID, s.cfg.Protocol.Currency, req.Amount); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"parent": req.ParentAssetID,
		"child":  req.ChildAssetID,
		"amount": req.Amount.Decimal(),
	}).Info("Royalty share paid")
	return nil
}
