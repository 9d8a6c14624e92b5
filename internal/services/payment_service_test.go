// internal/services/payment_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inklight/bookip-backend/internal/authz"
	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/protocol"
)

type paymentFixture struct {
	store     *MemoryStore
	gate      *authz.Gate
	royalties *mockRoyaltyClient
	currency  *mockCurrency
	svc       *PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		store:     testStore(t),
		gate:      testGate(t),
		royalties: &mockRoyaltyClient{},
		currency:  &mockCurrency{},
	}
	f.svc = NewPaymentService(f.store, f.gate, f.royalties, f.currency,
		NewEventRecorder(f.store), testConfig())

	require.NoError(t, f.store.SaveRegistration(&models.RegistrationRecord{
		AssetID:   "asset-1",
		TokenID:   1,
		Kind:      models.RegistrationKindRoot,
		Recipient: testAuthor,
	}))
	return f
}

func tipRequest(amount string) *TipRequest {
	return &TipRequest{
		TargetAssetID:         "asset-1",
		Amount:                models.MustAmount(amount),
		Message:               "great book",
		MaxPlatformFeePercent: 1_000_000,
	}
}

func TestPayTipSplitsFee(t *testing.T) {
	f := newPaymentFixture(t)

	// 100 tokens at the configured 1%: 1 to the treasury, 99 to the author.
	f.currency.On("TransferFrom", mock.Anything, testStranger, testAuthor,
		models.MustAmount("99000000000000000000")).Return(nil)
	f.currency.On("TransferFrom", mock.Anything, testStranger, testTreasury,
		models.MustAmount("1000000000000000000")).Return(nil)

	receipt, err := f.svc.PayTip(context.Background(), testStranger, tipRequest("100000000000000000000"))
	require.NoError(t, err)

	assert.Equal(t, "1000000000000000000", receipt.PlatformFee.Decimal())
	assert.Equal(t, "99000000000000000000", receipt.NetAmount.Decimal())
	assert.Equal(t, uint32(1_000_000), receipt.FeePercent)
	f.currency.AssertExpectations(t)

	events := f.store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventTipPaid, events[0].Type)
}

func TestPayTipZeroFeeSkipsTreasuryTransfer(t *testing.T) {
	f := newPaymentFixture(t)
	require.NoError(t, f.store.SetPlatformFeePercent(0))

	f.currency.On("TransferFrom", mock.Anything, testStranger, testAuthor,
		models.MustAmount("500")).Return(nil)

	receipt, err := f.svc.PayTip(context.Background(), testStranger, &TipRequest{
		TargetAssetID:         "asset-1",
		Amount:                models.MustAmount("500"),
		MaxPlatformFeePercent: 1_000_000,
	})
	require.NoError(t, err)
	assert.True(t, receipt.PlatformFee.IsZero())

	f.currency.AssertNumberOfCalls(t, "TransferFrom", 1)
}

func TestPayTipEventRecordedBeforeTransfer(t *testing.T) {
	f := newPaymentFixture(t)

	f.currency.On("TransferFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			assert.Len(t, f.store.Events(), 1, "event must precede the transfer")
		}).Return(nil)

	_, err := f.svc.PayTip(context.Background(), testStranger, tipRequest("100000000000000000000"))
	require.NoError(t, err)
}

func TestPayTipFeeCeiling(t *testing.T) {
	f := newPaymentFixture(t)

	req := tipRequest("100000000000000000000")
	req.MaxPlatformFeePercent = 999_999

	_, err := f.svc.PayTip(context.Background(), testStranger, req)
	assert.ErrorIs(t, err, ErrFeeTooHigh)
	f.currency.AssertNotCalled(t, "TransferFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.store.Events())
}

func TestPayTipZeroAmount(t *testing.T) {
	f := newPaymentFixture(t)

	req := tipRequest("100")
	req.Amount = models.Amount{}

	_, err := f.svc.PayTip(context.Background(), testStranger, req)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPayTipUnknownAsset(t *testing.T) {
	f := newPaymentFixture(t)

	req := tipRequest("100")
	req.TargetAssetID = "asset-missing"

	_, err := f.svc.PayTip(context.Background(), testStranger, req)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestPayTipPaused(t *testing.T) {
	f := newPaymentFixture(t)
	require.NoError(t, f.gate.SetPaused(testOwner, true))

	_, err := f.svc.PayTip(context.Background(), testStranger, tipRequest("100"))
	assert.ErrorIs(t, err, authz.ErrSystemPaused)
}

func royaltyRequest() *RoyaltyPaymentRequest {
	return &RoyaltyPaymentRequest{
		ParentAssetID: "asset-1",
		ChildAssetID:  "asset-9",
		Amount:        models.MustAmount("5000000000000000000"),
		Reason:        "sequel revenue",
	}
}

func TestPayRoyaltyShare(t *testing.T) {
	f := newPaymentFixture(t)

	f.royalties.On("VaultOf", mock.Anything, "asset-1").Return(testVault, nil)
	f.royalties.On("PayOnBehalf", mock.Anything, "asset-1", "asset-9", testCurrency,
		models.MustAmount("5000000000000000000")).Return(nil)

	err := f.svc.PayRoyaltyShare(context.Background(), testStranger, royaltyRequest())
	require.NoError(t, err)
	f.royalties.AssertExpectations(t)

	events := f.store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventRoyaltySharePaid, events[0].Type)
}

func TestPayRoyaltyShareNoVault(t *testing.T) {
	f := newPaymentFixture(t)

	f.royalties.On("VaultOf", mock.Anything, "asset-1").Return(models.ZeroPrincipal, nil)

	err := f.svc.PayRoyaltyShare(context.Background(), testStranger, royaltyRequest())
	assert.ErrorIs(t, err, ErrNoRoyaltyVault)
	f.royalties.AssertNotCalled(t, "PayOnBehalf",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPayRoyaltyShareZeroAmount(t *testing.T) {
	f := newPaymentFixture(t)

	req := royaltyRequest()
	req.Amount = models.Amount{}

	err := f.svc.PayRoyaltyShare(context.Background(), testStranger, req)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPayRoyaltySharePaused(t *testing.T) {
	f := newPaymentFixture(t)
	require.NoError(t, f.gate.SetPaused(testOwner, true))

	err := f.svc.PayRoyaltyShare(context.Background(), testStranger, royaltyRequest())
	assert.ErrorIs(t, err, authz.ErrSystemPaused)
}

func TestPayRoyaltyShareProtocolError(t *testing.T) {
	f := newPaymentFixture(t)

	f.royalties.On("VaultOf", mock.Anything, "asset-1").Return(testVault, nil)
	f.royalties.On("PayOnBehalf", mock.Anything, "asset-1", "asset-9", testCurrency, mock.Anything).
		Return(&protocol.RemoteError{Status: 502, Code: "VAULT_REVERT", Message: "execution reverted"})

	err := f.svc.PayRoyaltyShare(context.Background(), testStranger, royaltyRequest())
	var remoteErr *protocol.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "VAULT_REVERT", remoteErr.Code)
}
