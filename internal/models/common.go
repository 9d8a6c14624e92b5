// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// PercentScale is the protocol's 8-decimal fixed-point percentage scale.
// 100_000_000 represents 100%.
const PercentScale uint32 = 100_000_000

// LicenseKind is the closed set of license policies an asset may carry.
type LicenseKind uint8

const (
	LicenseCommercialRemix    LicenseKind = 0
	LicenseNonCommercialRemix LicenseKind = 1
	LicenseAttributionOnly    LicenseKind = 2
)

func (k LicenseKind) Valid() bool {
	switch k {
	case LicenseCommercialRemix, LicenseNonCommercialRemix, LicenseAttributionOnly:
		return true
	}
	return false
}

func (k LicenseKind) String() string {
	switch k {
	case LicenseCommercialRemix:
		return "commercial_remix"
	case LicenseNonCommercialRemix:
		return "non_commercial_remix"
	case LicenseAttributionOnly:
		return "attribution_only"
	}
	return "unknown"
}

type RegistrationKind string

const (
	RegistrationKindRoot       RegistrationKind = "root"
	RegistrationKindDerivative RegistrationKind = "derivative"
)

// EventType enumerates the gateway's append-only audit log entries.
type EventType string

const (
	EventRegistrationCompleted EventType = "registration_completed"
	EventDerivativeCreated     EventType = "derivative_created"
	EventTipPaid               EventType = "tip_paid"
	EventRoyaltySharePaid      EventType = "royalty_share_paid"
	EventRoyaltiesClaimed      EventType = "royalties_claimed"
	EventPlatformFeeUpdated    EventType = "platform_fee_updated"
	EventAuthorizationChanged  EventType = "authorization_changed"
	EventPauseToggled          EventType = "pause_toggled"
	EventOwnerTransferred      EventType = "owner_transferred"
	EventCollectionCreated     EventType = "collection_created"
)
