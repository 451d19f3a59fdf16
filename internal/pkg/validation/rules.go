package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Roll number pattern - letters, digits and dashes, 3 to 20 characters
	RollNoPattern = `^[A-Za-z0-9\-]{3,20}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	RollNo *regexp.Regexp
}{
	RollNo: regexp.MustCompile(RollNoPattern),
}

// FieldError is a single itemized validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()

		// Report JSON field names instead of Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("rollno", func(fl validator.FieldLevel) bool {
			return CompiledPatterns.RollNo.MatchString(fl.Field().String())
		})

		instance = v
	})
	return instance
}

// Struct validates s and returns itemized field errors, or nil when s is valid.
// A non-validation error (for example a nil pointer) is reported as a single
// field-less entry.
func Struct(s interface{}) []FieldError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe),
			Message: formatValidationError(fe),
		})
	}
	return out
}

// fieldPath strips the top-level struct name from the namespace, e.g.
// "UpdateUserRequest.pg.cgpa" becomes "pg.cgpa".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := fieldPath(e)
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "lte":
		return field + " must be less than or equal to " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "rollno":
		return field + " must be 3-20 letters, digits or dashes"
	case "uuid":
		return field + " must be a valid identifier"
	default:
		return field + " validation failed: " + e.Tag()
	}
}
