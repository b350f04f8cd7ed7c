package users

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/user/finstarter-go/apperror"
)

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

var firstNamePattern = regexp.MustCompile(`^[a-zA-Z' -]+$`)

// fieldLabels gives human names for json field names in messages.
var fieldLabels = map[string]string{
	"email":           "Email",
	"password":        "Password",
	"firstName":       "First name",
	"currentPassword": "Current password",
	"newPassword":     "New password",
}

// Validator applies the user input rules shared by the credential store and
// the HTTP request DTOs. Besides the built-in tags it understands:
//
//	passwordlen  at least the configured minimum characters, at most 72 bytes
//	hasupper     at least one ASCII uppercase letter
//	hasdigit     at least one ASCII digit
//	firstname    letters, hyphen, apostrophe and space only
type Validator struct {
	validate          *validator.Validate
	passwordMinLength int
}

// NewValidator builds a Validator enforcing passwordMinLength.
func NewValidator(passwordMinLength int) *Validator {
	v := validator.New()
	// Report fields by their json names so errors match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	val := &Validator{validate: v, passwordMinLength: passwordMinLength}
	// Registration only fails for an empty tag name or nil func.
	_ = v.RegisterValidation("passwordlen", val.passwordLength)
	_ = v.RegisterValidation("hasupper", containsRange('A', 'Z'))
	_ = v.RegisterValidation("hasdigit", containsRange('0', '9'))
	_ = v.RegisterValidation("firstname", func(fl validator.FieldLevel) bool {
		return firstNamePattern.MatchString(fl.Field().String())
	})
	return val
}

// Struct validates s and returns a ValidationError listing every failing
// field, or nil.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInternalError("validator misuse", err)
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fe.Field(),
			Message: v.message(fe),
		})
	}
	return apperror.NewValidationError("Invalid input", fields)
}

func (v *Validator) passwordLength(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return utf8.RuneCountInString(s) >= v.passwordMinLength && len(s) <= maxPasswordBytes
}

func containsRange(lo, hi byte) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for i := 0; i < len(s); i++ {
			if s[i] >= lo && s[i] <= hi {
				return true
			}
		}
		return false
	}
}

func (v *Validator) message(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Invalid email address"
	case "passwordlen":
		if len(fmt.Sprint(fe.Value())) > maxPasswordBytes {
			return fmt.Sprintf("%s must be at most %d bytes", label, maxPasswordBytes)
		}
		return fmt.Sprintf("%s must be at least %d characters", label, v.passwordMinLength)
	case "hasupper":
		return "Must contain at least one uppercase letter"
	case "hasdigit":
		return "Must contain at least one number"
	case "firstname":
		return "Invalid characters in first name"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// NormalizeEmail trims and lowercases an address; emails are case-insensitive keys.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
