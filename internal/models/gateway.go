// internal/models/gateway.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// GatewayState is the single durable row of mutable state owned by this
// core: the administrative owner, the pause flag, and the platform fee.
type GatewayState struct {
	ID                 uint      `json:"-" gorm:"primaryKey"`
	Owner              Principal `json:"owner" gorm:"size:42;not null"`
	Paused             bool      `json:"paused" gorm:"default:false"`
	PlatformFeePercent uint32    `json:"platform_fee_percent" gorm:"default:0"`
	FeeTreasury        Principal `json:"fee_treasury" gorm:"size:42"`
}

// AuthorizedAuthor is one allow-list entry permitting root registrations.
type AuthorizedAuthor struct {
	BaseModel
	Principal Principal `json:"principal" gorm:"size:42;uniqueIndex;not null"`
	AddedBy   Principal `json:"added_by" gorm:"size:42"`
}

// Collection is the protocol collection every asset of this gateway is
// minted into. Created once by the owner.
type Collection struct {
	BaseModel
	Handle    string    `json:"handle" gorm:"size:128;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:255"`
	Symbol    string    `json:"symbol" gorm:"size:32"`
	CreatedBy Principal `json:"created_by" gorm:"size:42"`
}

// RegistrationRecord is the local copy of an asset registration returned
// by the external protocol. The protocol owns the asset; this row only
// backs the gateway's query surface and event log referents.
type RegistrationRecord struct {
	BaseModel
	AssetID        string           `json:"asset_id" gorm:"size:128;uniqueIndex;not null"`
	TokenID        uint64           `json:"token_id"`
	Kind           RegistrationKind `json:"kind" gorm:"type:varchar(16);index"`
	Recipient      Principal        `json:"recipient" gorm:"size:42;index"`
	RegisteredBy   Principal        `json:"registered_by" gorm:"size:42;index"`
	MetadataURI    string           `json:"metadata_uri" gorm:"size:512"`
	MetadataHash   string           `json:"metadata_hash" gorm:"size:66"`
	LicenseTermIDs pq.StringArray   `json:"license_term_ids" gorm:"type:text[]"`
	ParentAssetIDs pq.StringArray   `json:"parent_asset_ids,omitempty" gorm:"type:text[]"`
	RoyaltyVault   Principal        `json:"royalty_vault" gorm:"size:42"`
	ShareCount     int              `json:"share_count"`
}

// GatewayEvent is one entry of the gateway's append-only audit log.
type GatewayEvent struct {
	BaseModel
	Type    EventType `json:"type" gorm:"type:varchar(32);index;not null"`
	Actor   Principal `json:"actor" gorm:"size:42;index"`
	AssetID string    `json:"asset_id,omitempty" gorm:"size:128;index"`
	Payload JSONB     `json:"payload,omitempty" gorm:"type:jsonb"`
}

// AuditLog captures inbound mutating HTTP requests, independent of the
// domain event log.
type AuditLog struct {
	BaseModel
	RequestID uuid.UUID `json:"request_id" gorm:"type:uuid"`
	Actor     Principal `json:"actor" gorm:"size:42;index"`
	Action    string    `json:"action" gorm:"size:255"`
	Resource  string    `json:"resource" gorm:"size:100;index"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"size:512"`
	Body      JSONB     `json:"body,omitempty" gorm:"type:jsonb"`
}
