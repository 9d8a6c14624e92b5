// internal/handlers/asset_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/inklight/bookip-backend/internal/authz"
	"github.com/inklight/bookip-backend/internal/config"
	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/protocol"
	"github.com/inklight/bookip-backend/internal/services"
)

// stubProtocol satisfies all collaborator interfaces with canned
// replies, enough to drive the handlers end to end.
type stubProtocol struct {
	registerErr error
}

func (s *stubProtocol) CreateCollection(ctx context.Context, name, symbol string) (string, error) {
	return "col-1", nil
}

func (s *stubProtocol) RegisterRoot(ctx context.Context, req protocol.RootRegistration) (*protocol.RootResult, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &protocol.RootResult{AssetID: "asset-1", TokenID: 1, LicenseTermIDs: []string{"lt-1"}}, nil
}

func (s *stubProtocol) RegisterDerivative(ctx context.Context, req protocol.DerivativeRegistration) (*protocol.DerivativeResult, error) {
	return &protocol.DerivativeResult{AssetID: "asset-2", TokenID: 2}, nil
}

func (s *stubProtocol) VaultOf(ctx context.Context, assetID string) (models.Principal, error) {
	vault, _ := models.NewPrincipal("0x00000000000000000000000000000000000000d7")
	return vault, nil
}

func (s *stubProtocol) PayOnBehalf(ctx context.Context, parentAssetID, payerAssetID string, currency models.Principal, amount models.Amount) error {
	return nil
}

func (s *stubProtocol) ClaimAllRevenue(ctx context.Context, assetID string, claimant models.Principal, sources []models.Principal) ([]models.Amount, error) {
	return nil, nil
}

func (s *stubProtocol) TransferFrom(ctx context.Context, payer, recipient models.Principal, amount models.Amount) error {
	return nil
}

type AssetHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	store     *services.MemoryStore
	gate      *authz.Gate
	protocol  *stubProtocol
	principal string
}

func (suite *AssetHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	owner, _ := models.NewPrincipal("0x00000000000000000000000000000000000000a1")
	author, _ := models.NewPrincipal("0x00000000000000000000000000000000000000a2")

	gate, err := authz.NewGate(nil, owner)
	suite.Require().NoError(err)
	suite.Require().NoError(gate.SetAuthorized(owner, author, true))

	store := services.NewMemoryStore(1_000_000)
	suite.Require().NoError(store.CreateCollection(&models.Collection{Handle: "col-1"}))

	cfg := &config.Config{
		License: config.LicenseConfig{
			DefaultCommercialFee:      models.MustAmount("10000000000000000000"),
			DefaultCommercialRevShare: 10_000_000,
		},
	}

	stub := &stubProtocol{}
	events := services.NewEventRecorder(store)
	registrations := services.NewRegistrationService(store, gate, stub, stub, stub, events, cfg)
	handler := NewAssetHandler(registrations)

	suite.store = store
	suite.gate = gate
	suite.protocol = stub
	suite.principal = author.String()

	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		if suite.principal != "" {
			c.Set("principal", suite.principal)
		}
	})

	assets := suite.router.Group("/v1/assets")
	{
		assets.GET("/:id", handler.GetAsset)
		assets.POST("", handler.RegisterRoot)
		assets.POST("/derivative", handler.RegisterDerivative)
	}
}

func (suite *AssetHandlerTestSuite) postJSON(path string, body map[string]interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AssetHandlerTestSuite) TestRegisterRoot() {
	w := suite.postJSON("/v1/assets", map[string]interface{}{
		"recipient":     suite.principal,
		"metadata_uri":  "ipfs://QmBook",
		"license_kinds": []int{0},
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(suite.T(), response["success"].(bool))
}

func (suite *AssetHandlerTestSuite) TestRegisterRootUnauthenticated() {
	suite.principal = ""

	w := suite.postJSON("/v1/assets", map[string]interface{}{
		"recipient":     "0x00000000000000000000000000000000000000a2",
		"license_kinds": []int{0},
	})

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AssetHandlerTestSuite) TestRegisterRootNotAllowListed() {
	suite.principal = "0x00000000000000000000000000000000000000a9"

	w := suite.postJSON("/v1/assets", map[string]interface{}{
		"recipient":     suite.principal,
		"license_kinds": []int{0},
	})

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *AssetHandlerTestSuite) TestRegisterRootPaused() {
	owner, _ := models.NewPrincipal("0x00000000000000000000000000000000000000a1")
	suite.Require().NoError(suite.gate.SetPaused(owner, true))

	w := suite.postJSON("/v1/assets", map[string]interface{}{
		"recipient":     suite.principal,
		"license_kinds": []int{0},
	})

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "SYSTEM_PAUSED", errObj["code"])
}

func (suite *AssetHandlerTestSuite) TestRegisterRootBadLicenseKinds() {
	w := suite.postJSON("/v1/assets", map[string]interface{}{
		"recipient":     suite.principal,
		"license_kinds": []int{0, 0},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "INVALID_LICENSE_TYPES", errObj["code"])
}

func (suite *AssetHandlerTestSuite) TestRegisterRootProtocolDown() {
	suite.protocol.registerErr = &protocol.RemoteError{Status: 500, Code: "NODE_DOWN", Message: "down"}

	w := suite.postJSON("/v1/assets", map[string]interface{}{
		"recipient":     suite.principal,
		"license_kinds": []int{0},
	})

	assert.Equal(suite.T(), http.StatusBadGateway, w.Code)
}

func (suite *AssetHandlerTestSuite) TestRegisterDerivative() {
	w := suite.postJSON("/v1/assets/derivative", map[string]interface{}{
		"recipient":               suite.principal,
		"parent_asset_ids":        []string{"asset-1"},
		"parent_license_term_ids": []string{"lt-1"},
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

func (suite *AssetHandlerTestSuite) TestGetAssetNotFound() {
	req, _ := http.NewRequest("GET", "/v1/assets/missing", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestAssetHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AssetHandlerTestSuite))
}
