package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator tags over a request struct and returns one
// message per failing field, or nil when everything passes.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "is required"
		case "oneof":
			out[field] = "must be one of: " + fe.Param()
		case "min":
			out[field] = "must be at least " + fe.Param()
		case "max":
			out[field] = "must be at most " + fe.Param()
		default:
			out[field] = "is invalid"
		}
	}
	return out
}
