package services

import (
	"github.com/go-playground/validator/v10"

	"civicsync/models"
)

// RegisterIssueValidations adds the custom tags used by models.IssueFormData.
func RegisterIssueValidations(v *validator.Validate) error {
	return v.RegisterValidation("issuecategory", func(fl validator.FieldLevel) bool {
		return models.IssueCategory(fl.Field().String()).Valid()
	})
}

// NewFormValidator returns a validator that understands issue form tags.
func NewFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterIssueValidations(v); err != nil {
		panic(err)
	}
	return v
}
