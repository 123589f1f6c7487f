package dto

import (
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding rules used by the request types.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := domain.NormalizeDate(fl.Field().String())
		return err == nil
	})
}
