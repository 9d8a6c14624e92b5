// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/inklight/bookip-backend/internal/i18n"
	"github.com/inklight/bookip-backend/internal/services"
	"github.com/inklight/bookip-backend/internal/utils"
)

type PaymentHandler struct {
	payments *services.PaymentService
	claims   *services.ClaimService
}

func NewPaymentHandler(payments *services.PaymentService, claims *services.ClaimService) *PaymentHandler {
	return &PaymentHandler{payments: payments, claims: claims}
}

// Tip handles POST /api/v1/payments/tip
func (h *PaymentHandler) Tip(c *gin.Context) {
	caller, ok := callerPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.TipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	receipt, err := h.payments.PayTip(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTipSuccess),
		"receipt": receipt,
	})
}

// PayRoyalty handles POST /api/v1/payments/royalty
func (h *PaymentHandler) PayRoyalty(c *gin.Context) {
	caller, ok := callerPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.RoyaltyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if err := h.payments.PayRoyaltyShare(c.Request.Context(), caller, &req); err != nil {
		respondServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message":         i18n.T(lang, i18n.KeyRoyaltyPaidSuccess),
		"parent_asset_id": req.ParentAssetID,
		"child_asset_id":  req.ChildAssetID,
		"amount":          req.Amount,
	})
}

// Claim handles POST /api/v1/payments/claim
func (h *PaymentHandler) Claim(c *gin.Context) {
	caller, ok := callerPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	claimed, err := h.claims.ClaimRoyalties(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClaimSuccess),
		"claimed": claimed,
	})
}
