package checkout

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one validation failure, labeled with its section-qualified
// path (e.g. "billing.email").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	phonePattern   = regexp.MustCompile(`^\+?[0-9][0-9 \-]*$`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	zipPattern     = regexp.MustCompile(`^[A-Za-z0-9-]{3,10}$`)
	cardPattern    = regexp.MustCompile(`^[0-9]{16}$`)
	expDatePattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvcPattern     = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// NewValidator builds the validator with the storefront's custom rules
// registered and json tag names used in error paths.
func NewValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if !phonePattern.MatchString(value) {
			return false
		}
		return len(digitPattern.FindAllString(value, -1)) >= 10
	})

	_ = validate.RegisterValidation("zip", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		stripped := strings.ReplaceAll(fl.Field().String(), " ", "")
		return cardPattern.MatchString(stripped)
	})

	_ = validate.RegisterValidation("expdate", func(fl validator.FieldLevel) bool {
		return expDatePattern.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("cvc", func(fl validator.FieldLevel) bool {
		return cvcPattern.MatchString(fl.Field().String())
	})

	return validate
}

var messages = map[string]string{
	"required":    "is required",
	"required_if": "is required",
	"min":         "is too short",
	"email":       "must be a valid email address",
	"phone":       "must contain at least 10 digits",
	"zip":         "must be 3-10 letters, digits or hyphens",
	"cardnumber":  "must be 16 digits",
	"expdate":     "must match MM/YY",
	"cvc":         "must be 3 or 4 digits",
	"oneof":       "is not a supported option",
	"eq":          "must be accepted",
}

// ValidateForm runs the full form against the current conditional state and
// returns the aggregated, path-labeled error list in field order. The first
// entry identifies the field the client should focus.
func ValidateForm(validate *validator.Validate, form *Form) []FieldError {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "form", Message: "could not be validated"}}
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		message, known := messages[fe.Tag()]
		if !known {
			message = "is invalid"
		}
		fieldErrors = append(fieldErrors, FieldError{
			Field:   trimRootNamespace(fe.Namespace()),
			Message: message,
		})
	}
	return fieldErrors
}

// trimRootNamespace turns "Form.billing.email" into "billing.email".
func trimRootNamespace(ns string) string {
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
