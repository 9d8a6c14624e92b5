// internal/services/store.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/utils"
)

// GatewayStore is the persistence boundary of the services. The gorm
// implementation backs production; the memory implementation backs
// tests and local development without postgres.
type GatewayStore interface {
	Collection() (*models.Collection, error)
	CreateCollection(c *models.Collection) error

	SaveRegistration(r *models.RegistrationRecord) error
	GetRegistration(assetID string) (*models.RegistrationRecord, error)
	ListRegistrations(params utils.PaginationParams) ([]models.RegistrationRecord, int64, error)

	AppendEvent(e *models.GatewayEvent) error
	ListEvents(params utils.PaginationParams) ([]models.GatewayEvent, int64, error)

	PlatformFeePercent() (uint32, error)
	SetPlatformFeePercent(percent uint32) error
}

// --- gorm implementation ---

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) GatewayStore {
	return &gormStore{db: db}
}

func (s *gormStore) Collection() (*models.Collection, error) {
	var collection models.Collection
	if err := s.db.First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotCreated
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &collection, nil
}

func (s *gormStore) CreateCollection(c *models.Collection) error {
	var count int64
	if err := s.db.Model(&models.Collection{}).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return ErrCollectionExists
	}
	if err := s.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func (s *gormStore) SaveRegistration(r *models.RegistrationRecord) error {
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("failed to save registration record: %w", err)
	}
	return nil
}

func (s *gormStore) GetRegistration(assetID string) (*models.RegistrationRecord, error) {
	var record models.RegistrationRecord
	if err := s.db.Where("asset_id = ?", assetID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &record, nil
}

func (s *gormStore) ListRegistrations(params utils.PaginationParams) ([]models.RegistrationRecord, int64, error) {
	query := s.db.Model(&models.RegistrationRecord{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	allowedSortFields := []string{"created_at", "token_id", "kind"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var records []models.RegistrationRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch registrations: %w", err)
	}
	return records, total, nil
}

func (s *gormStore) AppendEvent(e *models.GatewayEvent) error {
	if err := s.db.Create(e).Error; err != nil {
		return fmt.Errorf("failed to append gateway event: %w", err)
	}
	return nil
}

func (s *gormStore) ListEvents(params utils.PaginationParams) ([]models.GatewayEvent, int64, error) {
	query := s.db.Model(&models.GatewayEvent{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	allowedSortFields := []string{"created_at", "type"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var events []models.GatewayEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, total, nil
}

func (s *gormStore) PlatformFeePercent() (uint32, error) {
	var state models.GatewayState
	if err := s.db.First(&state).Error; err != nil {
		return 0, fmt.Errorf("failed to load gateway state: %w", err)
	}
	return state.PlatformFeePercent, nil
}

func (s *gormStore) SetPlatformFeePercent(percent uint32) error {
	if err := s.db.Model(&models.GatewayState{}).
		Where("id = ?", 1).
		Update("platform_fee_percent", percent).Error; err != nil {
		return fmt.Errorf("failed to persist platform fee: %w", err)
	}
	return nil
}

// --- in-memory implementation ---

// MemoryStore keeps everything in process. Used by tests and by the
// server when no database is configured.
type MemoryStore struct {
	mu            sync.RWMutex
	collection    *models.Collection
	registrations map[string]models.RegistrationRecord
	order         []string
	events        []models.GatewayEvent
	feePercent    uint32
}

func NewMemoryStore(feePercent uint32) *MemoryStore {
	return &MemoryStore{
		registrations: make(map[string]models.RegistrationRecord),
		feePercent:    feePercent,
	}
}

func (s *MemoryStore) Collection() (*models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.collection == nil {
		return nil, ErrCollectionNotCreated
	}
	c := *s.collection
	return &c, nil
}

func (s *MemoryStore) CreateCollection(c *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collection != nil {
		return ErrCollectionExists
	}
	copied := *c
	s.collection = &copied
	return nil
}

func (s *MemoryStore) SaveRegistration(r *models.RegistrationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.registrations[r.AssetID]; !exists {
		s.order = append(s.order, r.AssetID)
	}
	s.registrations[r.AssetID] = *r
	return nil
}

func (s *MemoryStore) GetRegistration(assetID string) (*models.RegistrationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.registrations[assetID]
	if !ok {
		return nil, ErrAssetNotFound
	}
	return &record, nil
}

func (s *MemoryStore) ListRegistrations(params utils.PaginationParams) ([]models.RegistrationRecord, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	if params.Order == "desc" {
		sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	}

	records := make([]models.RegistrationRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, s.registrations[id])
	}
	return paginate(records, params), int64(len(s.order)), nil
}

func (s *MemoryStore) AppendEvent(e *models.GatewayEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *e)
	return nil
}

func (s *MemoryStore) ListEvents(params utils.PaginationParams) ([]models.GatewayEvent, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]models.GatewayEvent, len(s.events))
	copy(events, s.events)
	return paginate(events, params), int64(len(s.events)), nil
}

// Events returns the full event log in append order. Test helper.
func (s *MemoryStore) Events() []models.GatewayEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]models.GatewayEvent, len(s.events))
	copy(events, s.events)
	return events
}

func (s *MemoryStore) PlatformFeePercent() (uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feePercent, nil
}

func (s *MemoryStore) SetPlatformFeePercent(percent uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feePercent = percent
	return nil
}

func paginate[T any](items []T, params utils.PaginationParams) []T {
	if params.Limit <= 0 {
		return items
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * params.Limit
	if start < 0 || start >= len(items) {
		return nil
	}
	end := start + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
