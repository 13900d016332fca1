package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "ifc-reuse-backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their JSON name
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validationError converts validator output into an apperrors.ValidationError
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed on the '%s=%s' rule", fe.Tag(), fe.Param())
		}
		return apperrors.NewValidationError(fe.Field(), msg)
	}
	return apperrors.NewValidationError("", err.Error())
}
