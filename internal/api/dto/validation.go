package dto

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "github.com/goldendrops/storefront/pkg/util/errorutil"
)

// Validatable is implemented by every request payload.
type Validatable = validation.Validatable

// Check runs v.Validate and converts field failures into a 400
// VALIDATION_FAILED error listing each field.
func Check(v Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return apperrors.NewInternalError(internal.InternalError())
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return apperrors.NewValidationError("Validation failed", flatten(fields))
	}
	return apperrors.NewValidationError(err.Error(), nil)
}

func flatten(errs validation.Errors) map[string]any {
	out := make(map[string]any, len(errs))
	for field, err := range errs {
		var nested validation.Errors
		if errors.As(err, &nested) {
			out[field] = flatten(nested)
			continue
		}
		out[field] = err.Error()
	}
	return out
}
