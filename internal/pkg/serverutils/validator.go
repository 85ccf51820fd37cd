package serverutils

import (
	"fmt"
	"strings"

	"ai-usecase-explorer-be/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a DTO against its validate tags and converts
// failures into the ValidationError taxonomy so the error middleware can
// map them to a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperror.NewValidation("invalid request: %v", err)
		}
		var fields []string
		for _, fe := range validationErrors {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return apperror.NewValidation("invalid request: %s", strings.Join(fields, ", "))
	}
	return nil
}
