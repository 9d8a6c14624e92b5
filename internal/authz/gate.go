// internal/authz/gate.go
package authz

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/inklight/bookip-backend/internal/models"
)

var (
	ErrSystemPaused = errors.New("system is paused")
	ErrUnauthorized = errors.New("caller is not an authorized author")
	ErrNotOwner     = errors.New("caller is not the gateway owner")
)

// Gate owns the gateway's only durable mutable state: the administrative
// owner, the root-registration allow-list, and the pause flag. Every
// mutating entry point consults it first. A single Gate instance is
// shared across requests; the mutex covers concurrent HTTP handlers.
type Gate struct {
	mu     sync.RWMutex
	db     *gorm.DB
	owner  models.Principal
	allow  map[models.Principal]bool
	paused bool
}

// NewGate constructs the gate for the given owner and loads persisted
// state. A nil db keeps the gate purely in-memory, which tests rely on.
func NewGate(db *gorm.DB, owner models.Principal) (*Gate, error) {
	if owner.IsZero() {
		return nil, fmt.Errorf("gate owner must be a non-zero principal")
	}

	g := &Gate{
		db:    db,
		owner: owner,
		allow: make(map[models.Principal]bool),
	}

	if db == nil {
		return g, nil
	}

	// Adopt the persisted state row if one exists; the configured owner
	// only seeds the very first start.
	var state models.GatewayState
	err := db.First(&state).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		state = models.GatewayState{ID: 1, Owner: owner}
		if err := db.Create(&state).Error; err != nil {
			return nil, fmt.Errorf("failed to persist gateway state: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load gateway state: %w", err)
	default:
		g.owner = state.Owner
		g.paused = state.Paused
	}

	var entries []models.AuthorizedAuthor
	if err := db.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load allow-list: %w", err)
	}
	for _, entry := range entries {
		g.allow[entry.Principal] = true
	}

	return g, nil
}

// RequireNotPaused gates every mutating operation.
func (g *Gate) RequireNotPaused() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.paused {
		return ErrSystemPaused
	}
	return nil
}

// RequireAuthorAuthorized gates root registrations only; derivative
// registration and payments are open to any caller.
func (g *Gate) RequireAuthorAuthorized(caller models.Principal) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if caller == g.owner || g.allow[caller] {
		return nil
	}
	return ErrUnauthorized
}

// SetAuthorized adds or removes an allow-list entry. Owner-only,
// idempotent.
func (g *Gate) SetAuthorized(caller, target models.Principal, allowed bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if caller != g.owner {
		return ErrNotOwner
	}
	if target.IsZero() {
		return fmt.Errorf("cannot authorize the zero principal")
	}

	if allowed == g.allow[target] {
		return nil
	}

	if g.db != nil {
		if allowed {
			entry := models.AuthorizedAuthor{Principal: target, AddedBy: caller}
			if err := g.db.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to persist allow-list entry: %w", err)
			}
		} else {
			if err := g.db.Unscoped().
				Where("principal = ?", target).
				Delete(&models.AuthorizedAuthor{}).Error; err != nil {
				return fmt.Errorf("failed to remove allow-list entry: %w", err)
			}
		}
	}

	if allowed {
		g.allow[target] = true
	} else {
		delete(g.allow, target)
	}

	logrus.WithFields(logrus.Fields{
		"target":  target,
		"allowed": allowed,
	}).Info("Allow-list updated")
	return nil
}

// SetPaused toggles the pause flag. Owner-only.
func (g *Gate) SetPaused(caller models.Principal, paused bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if caller != g.owner {
		return ErrNotOwner
	}

	if g.db != nil {
		if err := g.db.Model(&models.GatewayState{}).
			Where("id = ?", 1).
			Update("paused", paused).Error; err != nil {
			return fmt.Errorf("failed to persist pause flag: %w", err)
		}
	}

	g.paused = paused
	logrus.WithField("paused", paused).Warn("Pause flag toggled")
	return nil
}

// TransferOwnership hands the gate to a new owner. Only the current
// owner may do this; the owner can never become the zero principal.
func (g *Gate) TransferOwnership(caller, next models.Principal) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if caller != g.owner {
		return ErrNotOwner
	}
	if next.IsZero() {
		return fmt.Errorf("new owner must be a non-zero principal")
	}

	if g.db != nil {
		if err := g.db.Model(&models.GatewayState{}).
			Where("id = ?", 1).
			Update("owner", next).Error; err != nil {
			return fmt.Errorf("failed to persist owner transfer: %w", err)
		}
	}

	g.owner = next
	logrus.WithField("owner", next).Warn("Gateway ownership transferred")
	return nil
}

func (g *Gate) Owner() models.Principal {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.owner
}

func (g *Gate) Paused() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.paused
}

func (g *Gate) IsAuthorized(p models.Principal) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return p == g.owner || g.allow[p]
}
