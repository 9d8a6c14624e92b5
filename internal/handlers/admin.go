// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/inklight/bookip-backend/internal/i18n"
	"github.com/inklight/bookip-backend/internal/services"
	"github.com/inklight/bookip-backend/internal/utils"
)

// AdminHandler exposes the owner-gated administrative surface. Owner
// checks live in the services; these handlers only bind and relay.
type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// SetAuthorized handles POST /api/v1/admin/authors
func (h *AdminHandler) SetAuthorized(c *gin.Context) {
	caller, ok := callerPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.SetAuthorizedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if err := h.admin.SetAuthorized(caller, &req); err != nil {
		respondServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthorizationUpdated),
		"target":  req.Target,
		"allowed": req.Allowed,
	})
}

type setPausedRequest struct {
	Paused bool `json:"paused"`
}

// SetPaused handles PUT /api/v1/admin/pause
func (h *AdminHandler) SetPaused(c *gin.Context) {
	caller, ok := callerPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req setPausedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if err := h.admin.SetPaused(caller, req.Paused); err != nil {
		respondServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPauseUpdated),
		"paused":  req.Paused,
	})
}

type setPlatformFeeRequest struct {
	Percent uint32 `json:"percent"`
}

// SetPlatformFee handles PUT /api/v1/admin/platform-fee
func (h *AdminHandler) SetPlatformFee(c *gin.Context) {
	caller, ok := callerPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req setPlatformFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if err := h.admin.SetPlatformFee(caller, req.Percent); err != nil {
		respondServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPlatformFeeUpdated),
		"percent": req.Percent,
	})
}

type transferOwnerRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}

// TransferOwner handles PUT /api/v1/admin/owner
func (h *AdminHandler) TransferOwner(c *gin.Context) {
	caller, ok := callerPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req transferOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if err := h.admin.TransferOwnership(caller, req.NewOwner); err != nil {
		respondServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyOwnerTransferred),
		"new_owner": req.NewOwner,
	})
}

// CreateCollection handles POST /api/v1/admin/collection
func (h *AdminHandler) CreateCollection(c *gin.Context) {
	caller, ok := callerPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	collection, err := h.admin.CreateCollection(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyCollectionCreated),
		"collection": collection,
	})
}
