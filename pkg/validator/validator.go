package validator

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// phonePattern allows an optional leading + followed by 7-15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report json tag names so validation errors line up with wire fields
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("password", validatePassword)
	v.RegisterValidation("phone", validatePhone)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors maps field names to human-readable messages, grouped
// the way the response envelope expects.
func (cv *CustomValidator) FormatValidationErrors(err error) map[string][]string {
	errors := make(map[string][]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			var message string
			switch e.Tag() {
			case "required":
				message = field + " is required"
			case "email":
				message = field + " must be a valid email address"
			case "min":
				message = field + " must be at least " + e.Param() + " characters"
			case "max":
				message = field + " must be at most " + e.Param() + " characters"
			case "gte":
				message = field + " must be greater than or equal to " + e.Param()
			case "lte":
				message = field + " must be less than or equal to " + e.Param()
			case "oneof":
				message = field + " must be one of: " + e.Param()
			case "password":
				message = field + " must be at least 8 characters with an uppercase letter, a lowercase letter and a digit"
			case "phone":
				message = field + " must be a valid phone number"
			default:
				message = field + " is invalid"
			}
			errors[field] = append(errors[field], message)
		}
	}

	return errors
}

// validatePassword enforces length >= 8 with at least one upper, one lower
// and one digit.
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}
