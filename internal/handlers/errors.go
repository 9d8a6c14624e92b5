// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/inklight/bookip-backend/internal/authz"
	"github.com/inklight/bookip-backend/internal/i18n"
	"github.com/inklight/bookip-backend/internal/license"
	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/protocol"
	"github.com/inklight/bookip-backend/internal/royalty"
	"github.com/inklight/bookip-backend/internal/services"
	"github.com/inklight/bookip-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto the HTTP
// envelope. Access errors are 403, shape and amount errors 400,
// resource-state errors 404/409, pause 503, and opaque protocol
// failures 502.
func respondServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var limitErr *royalty.CollaboratorLimitError
	var remoteErr *protocol.RemoteError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, authz.ErrSystemPaused):
		utils.ServiceUnavailableResponse(c, i18n.T(lang, i18n.KeySystemPaused))

	case errors.Is(err, authz.ErrUnauthorized):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthorNotAllowed))

	case errors.Is(err, authz.ErrNotOwner):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyOwnerAccessDenied))

	case errors.As(err, &limitErr):
		utils.ErrorResponse(c, http.StatusBadRequest, "TOO_MANY_COLLABORATORS", err.Error(), gin.H{
			"provided": limitErr.Provided,
			"limit":    limitErr.Limit,
		})

	case errors.Is(err, royalty.ErrInvalidRoyaltyShares):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_ROYALTY_SHARES", err.Error(), nil)

	case errors.Is(err, royalty.ErrInvalidAuthorData):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_AUTHOR_DATA", err.Error(), nil)

	case errors.Is(err, license.ErrInvalidLicenseKind),
		errors.Is(err, license.ErrInvalidLicenseTypes),
		errors.Is(err, license.ErrDuplicateLicenseKind),
		errors.Is(err, license.ErrRevenueShareOverScale):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_LICENSE_TYPES", err.Error(), nil)

	case errors.Is(err, services.ErrNoParents):
		utils.ErrorResponse(c, http.StatusBadRequest, "NO_PARENTS", err.Error(), nil)

	case errors.Is(err, services.ErrInvalidAmount):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_AMOUNT", i18n.T(lang, i18n.KeyInvalidAmount), nil)

	case errors.Is(err, services.ErrFeeTooHigh):
		utils.ErrorResponse(c, http.StatusBadRequest, "FEE_TOO_HIGH", i18n.T(lang, i18n.KeyFeeTooHigh), nil)

	case errors.Is(err, services.ErrFeeAboveLimit):
		utils.ErrorResponse(c, http.StatusBadRequest, "FEE_ABOVE_LIMIT", err.Error(), nil)

	case errors.Is(err, services.ErrNoRoyaltyVault):
		utils.ErrorResponse(c, http.StatusConflict, "NO_ROYALTY_VAULT", i18n.T(lang, i18n.KeyNoRoyaltyVault), nil)

	case errors.Is(err, services.ErrCollectionNotCreated):
		utils.ErrorResponse(c, http.StatusConflict, "COLLECTION_NOT_CREATED", i18n.T(lang, i18n.KeyCollectionNotCreated), nil)

	case errors.Is(err, services.ErrCollectionExists):
		utils.ErrorResponse(c, http.StatusConflict, "COLLECTION_EXISTS", i18n.T(lang, i18n.KeyCollectionExists), nil)

	case errors.Is(err, services.ErrAssetNotFound):
		utils.NotFoundResponse(c, "asset")

	case errors.As(err, &remoteErr):
		utils.BadGatewayResponse(c, remoteErr.Error())

	case errors.As(err, &validationErrs):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))

	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// callerPrincipal pulls the authenticated wallet principal out of the
// request context.
func callerPrincipal(c *gin.Context) (models.Principal, bool) {
	raw, exists := utils.GetPrincipalFromContext(c)
	if !exists {
		return models.ZeroPrincipal, false
	}
	principal, ok := models.NewPrincipal(raw)
	if !ok || principal.IsZero() {
		return models.ZeroPrincipal, false
	}
	return principal, true
}
