// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inklight/bookip-backend/internal/authz"
	"github.com/inklight/bookip-backend/internal/config"
	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/protocol"
	"github.com/inklight/bookip-backend/internal/utils"
)

// AdminService is the owner-gated administrative surface. Every change
// emits an audit event.
type AdminService struct {
	store     GatewayStore
	gate      *authz.Gate
	registrar protocol.Registrar
	events    *EventRecorder
	cfg       *config.Config
}

func NewAdminService(store GatewayStore, gate *authz.Gate, registrar protocol.Registrar, events *EventRecorder, cfg *config.Config) *AdminService {
	return &AdminService{
		store:     store,
		gate:      gate,
		registrar: registrar,
		events:    events,
		cfg:       cfg,
	}
}

type SetAuthorizedRequest struct {
	Target  string `json:"target" validate:"required,principal"`
	Allowed bool   `json:"allowed"`
}

func (s *AdminService) SetAuthorized(caller models.Principal, req *SetAuthorizedRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	target, ok := models.NewPrincipal(req.Target)
	if !ok {
		return fmt.Errorf("malformed target principal")
	}

	if err := s.gate.SetAuthorized(caller, target, req.Allowed); err != nil {
		return err
	}

	return s.events.Record(models.EventAuthorizationChanged, caller, "", models.JSONB{
		"target":  target.String(),
		"allowed": req.Allowed,
	})
}

func (s *AdminService) SetPaused(caller models.Principal, paused bool) error {
	if err := s.gate.SetPaused(caller, paused); err != nil {
		return err
	}
	return s.events.Record(models.EventPauseToggled, caller, "", models.JSONB{
		"paused": paused,
	})
}

// SetPlatformFee updates the tip fee percentage, bounded to 10%.
func (s *AdminService) SetPlatformFee(caller models.Principal, percent uint32) error {
	if caller != s.gate.Owner() {
		return authz.ErrNotOwner
	}
	if percent > config.MaxPlatformFeePercent {
		return fmt.Errorf("%w: got %d", ErrFeeAboveLimit, percent)
	}

	previous, err := s.store.PlatformFeePercent()
	if err != nil {
		return err
	}
	if err := s.store.SetPlatformFeePercent(percent); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"previous": previous,
		"percent":  percent,
	}).Info("Platform fee updated")

	return s.events.Record(models.EventPlatformFeeUpdated, caller, "", models.JSONB{
		"previous_percent": previous,
		"percent":          percent,
	})
}

func (s *AdminService) TransferOwnership(caller models.Principal, next string) error {
	nextOwner, ok := models.NewPrincipal(next)
	if !ok {
		return fmt.Errorf("malformed new owner principal")
	}
	if err := s.gate.TransferOwnership(caller, nextOwner); err != nil {
		return err
	}
	return s.events.Record(models.EventOwnerTransferred, caller, "", models.JSONB{
		"new_owner": nextOwner.String(),
	})
}

// CreateCollection creates the one protocol collection this gateway
// registers assets into. Owner-only, once.
func (s *AdminService) CreateCollection(ctx context.Context, caller models.Principal) (*models.Collection, error) {
	if caller != s.gate.Owner() {
		return nil, authz.ErrNotOwner
	}

	// Refuse before the external call; CreateCollection on the protocol
	// is not idempotent.
	if _, err := s.store.Collection(); err == nil {
		return nil, ErrCollectionExists
	} else if !errors.Is(err, ErrCollectionNotCreated) {
		return nil, err
	}

	handle, err := s.registrar.CreateCollection(ctx, s.cfg.Protocol.CollectionName, s.cfg.Protocol.CollectionSymbol)
	if err != nil {
		return nil, err
	}

	collection := &models.Collection{
		Handle:    handle,
		Name:      s.cfg.Protocol.CollectionName,
		Symbol:    s.cfg.Protocol.CollectionSymbol,
		CreatedBy: caller,
	}
	if err := s.store.CreateCollection(collection); err != nil {
		return nil, err
	}

	if err := s.events.Record(models.EventCollectionCreated, caller, "", models.JSONB{
		"handle": handle,
		"name":   collection.Name,
		"symbol": collection.Symbol,
	}); err != nil {
		return nil, err
	}

	return collection, nil
}

// ListEvents pages through the gateway's append-only audit log.
func (s *AdminService) ListEvents(params utils.PaginationParams) ([]models.GatewayEvent, int64, error) {
	return s.store.ListEvents(params)
}
