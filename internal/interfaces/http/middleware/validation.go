package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/invoicelink/backend/internal/domain/shared/valueobject"
)

// SetupValidator configures the gin binding validator with the custom
// tags the request DTOs rely on
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report field names from json/form tags so validation errors
	// match the wire format
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("currency", validateCurrency)
}

// validateCurrency accepts supported ISO 4217 codes; empty values pass
// so optional fields can fall back to the account default
func validateCurrency(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if code == "" {
		return true
	}
	return valueobject.Currency(code).IsSupported()
}
