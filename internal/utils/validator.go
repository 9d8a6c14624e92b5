// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inklight/bookip-backend/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("principal", validatePrincipal)
	validate.RegisterValidation("percent_scale", validatePercentScale)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePrincipal(fl validator.FieldLevel) bool {
	return models.IsValidPrincipal(fl.Field().String())
}

func validatePercentScale(fl validator.FieldLevel) bool {
	return fl.Field().Uint() <= uint64(models.PercentScale)
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "principal":
		return e.Field() + " must be a 0x-prefixed 20-byte hex address"
	case "percent_scale":
		return e.Field() + " must not exceed 100000000 (100%)"
	default:
		return e.Field() + " is invalid"
	}
}
