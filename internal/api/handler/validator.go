package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Failures surface as *domain.ValidationError carrying one entry per broken
// rule, which the error handler renders as an errors array.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Report fields by their JSON names so error params match the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Structural GSTIN check, case-insensitive; normalization to upper case
	// happens in the service before storage.
	_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return domain.GSTINPattern.MatchString(domain.NormalizeGSTIN(fl.Field().String()))
	})

	// At least one upper-case letter, one lower-case letter, and one digit.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var upper, lower, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return upper && lower && digit
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]domain.FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, domain.FieldError{
					Param:   fe.Field(),
					Message: fieldError(fe),
				})
			}
			return domain.NewValidationError(fields...)
		}
		return err
	}
	return nil
}

// fieldLabels are the human-readable field names used in messages.
var fieldLabels = map[string]string{
	"fullName":   "Full name",
	"email":      "Email",
	"password":   "Password",
	"gstin":      "GSTIN",
	"entityType": "Entity type",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// fieldError converts a single ValidationError into a client-facing message.
func fieldError(fe validator.FieldError) string {
	l := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return l + " is required."
	case "email":
		return "Please provide a valid email address."
	case "min", "max":
		if fe.Field() == "password" {
			return "Password must be at least 6 characters long."
		}
		return l + " must be between 2 and 100 characters."
	case "oneof":
		return fmt.Sprintf("%s must be either %s.", l, strings.Join(strings.Fields(fe.Param()), " or "))
	case "gstin":
		return "Invalid GSTIN format. Expected format: 22AAAAA0000A1Z5"
	case "password":
		return "Password must contain at least one uppercase letter, one lowercase letter, and one digit."
	default:
		return fmt.Sprintf("%s failed validation (%s).", l, fe.Tag())
	}
}
