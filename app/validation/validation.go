package validation

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Struct validates a request DTO against its validate tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// FormatErrors maps field names to the failed rule for API responses.
func FormatErrors(err error) map[string]string {
	out := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		out["error"] = err.Error()
		return out
	}
	for _, ve := range validationErrors {
		out[ve.Field()] = ve.Tag()
	}
	return out
}
