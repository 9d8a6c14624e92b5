// internal/services/mocks_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inklight/bookip-backend/internal/authz"
	"github.com/inklight/bookip-backend/internal/config"
	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/protocol"
	"github.com/inklight/bookip-backend/internal/utils"
)

// paginationAll lists everything in insertion order.
func paginationAll() utils.PaginationParams {
	return utils.PaginationParams{}
}

var (
	testOwner, _    = models.NewPrincipal("0x00000000000000000000000000000000000000f1")
	testAuthor, _   = models.NewPrincipal("0x00000000000000000000000000000000000000f2")
	testStranger, _ = models.NewPrincipal("0x00000000000000000000000000000000000000f3")
	testTreasury, _ = models.NewPrincipal("0x00000000000000000000000000000000000000f4")
	testCurrency, _ = models.NewPrincipal("0x00000000000000000000000000000000000000f5")
	testPolicy, _   = models.NewPrincipal("0x00000000000000000000000000000000000000f6")
	testVault, _    = models.NewPrincipal("0x00000000000000000000000000000000000000f7")
)

func testConfig() *config.Config {
	return &config.Config{
		Protocol: config.ProtocolConfig{
			RoyaltyPolicy:    testPolicy,
			Currency:         testCurrency,
			CollectionName:   "BookIP Works",
			CollectionSymbol: "BOOK",
		},
		License: config.LicenseConfig{
			DefaultCommercialFee:      models.MustAmount("10000000000000000000"),
			DefaultCommercialRevShare: 10_000_000,
		},
		Payment: config.PaymentConfig{
			PlatformFeePercent: 1_000_000,
			FeeTreasury:        testTreasury,
		},
		Gateway: config.GatewayConfig{
			Owner: testOwner,
		},
	}
}

func testGate(t *testing.T) *authz.Gate {
	t.Helper()
	gate, err := authz.NewGate(nil, testOwner)
	require.NoError(t, err)
	require.NoError(t, gate.SetAuthorized(testOwner, testAuthor, true))
	return gate
}

// testStore returns a memory store with the collection already created,
// which is the steady state every non-admin flow assumes.
func testStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore(1_000_000)
	require.NoError(t, store.CreateCollection(&models.Collection{
		Handle:    "col-1",
		Name:      "BookIP Works",
		Symbol:    "BOOK",
		CreatedBy: testOwner,
	}))
	return store
}

type mockRegistrar struct {
	mock.Mock
}

func (m *mockRegistrar) CreateCollection(ctx context.Context, name, symbol string) (string, error) {
	args := m.Called(ctx, name, symbol)
	return args.String(0), args.Error(1)
}

func (m *mockRegistrar) RegisterRoot(ctx context.Context, req protocol.RootRegistration) (*protocol.RootResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*protocol.RootResult), args.Error(1)
}

type mockDerivativeRegistrar struct {
	mock.Mock
}

func (m *mockDerivativeRegistrar) RegisterDerivative(ctx context.Context, req protocol.DerivativeRegistration) (*protocol.DerivativeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*protocol.DerivativeResult), args.Error(1)
}

type mockRoyaltyClient struct {
	mock.Mock
}

func (m *mockRoyaltyClient) VaultOf(ctx context.Context, assetID string) (models.Principal, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).(models.Principal), args.Error(1)
}

func (m *mockRoyaltyClient) PayOnBehalf(ctx context.Context, parentAssetID, payerAssetID string, currency models.Principal, amount models.Amount) error {
	args := m.Called(ctx, parentAssetID, payerAssetID, currency, amount)
	return args.Error(0)
}

func (m *mockRoyaltyClient) ClaimAllRevenue(ctx context.Context, assetID string, claimant models.Principal, sources []models.Principal) ([]models.Amount, error) {
	args := m.Called(ctx, assetID, claimant, sources)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Amount), args.Error(1)
}

type mockCurrency struct {
	mock.Mock
}

func (m *mockCurrency) TransferFrom(ctx context.Context, payer, recipient models.Principal, amount models.Amount) error {
	args := m.Called(ctx, payer, recipient, amount)
	return args.Error(0)
}
