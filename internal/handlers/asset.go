// internal/handlers/asset.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/inklight/bookip-backend/internal/i18n"
	"github.com/inklight/bookip-backend/internal/services"
	"github.com/inklight/bookip-backend/internal/utils"
)

type AssetHandler struct {
	registrations *services.RegistrationService
}

func NewAssetHandler(registrations *services.RegistrationService) *AssetHandler {
	return &AssetHandler{registrations: registrations}
}

// RegisterRoot handles POST /api/v1/assets
func (h *AssetHandler) RegisterRoot(c *gin.Context) {
	caller, ok := callerPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.RegisterRootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	record, err := h.registrations.RegisterRoot(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyRegistrationSuccess),
		"registration": record,
	})
}

// RegisterDerivative handles POST /api/v1/assets/derivative
func (h *AssetHandler) RegisterDerivative(c *gin.Context) {
	caller, ok := callerPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.RegisterDerivativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	record, err := h.registrations.RegisterDerivative(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyDerivativeSuccess),
		"registration": record,
	})
}

// ListAssets handles GET /api/v1/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	records, total, err := h.registrations.ListRegistrations(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(records, total, params))
}

// GetAsset handles GET /api/v1/assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	record, err := h.registrations.GetRegistration(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, record)
}
