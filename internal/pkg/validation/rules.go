package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/gradtracker/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// GraduationYearPattern - exactly four digits, e.g. 2023
	GraduationYearPattern = `^\d{4}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	GraduationYear *regexp.Regexp
}{
	GraduationYear: regexp.MustCompile(GraduationYearPattern),
}

// Custom validator tags
const (
	TagNotBlank = "notblank"
	TagYear     = "year4"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so clients see the same key they sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag name, so the errors are not interesting
	_ = v.RegisterValidation(TagNotBlank, func(fl validator.FieldLevel) bool {
		return !IsBlank(fl.Field().String())
	})
	_ = v.RegisterValidation(TagYear, func(fl validator.FieldLevel) bool {
		return IsGraduationYear(fl.Field().String())
	})

	return v
}

// IsBlank reports whether s is empty after trimming
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsGraduationYear reports whether s (trimmed) is a four digit year
func IsGraduationYear(s string) bool {
	return CompiledPatterns.GraduationYear.MatchString(strings.TrimSpace(s))
}

// Struct validates s against its `validate` tags. The first failing field
// (in declaration order) is returned as an *apperrors.FieldError.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.NewFieldError(fe.Field(), message(fe))
	}

	return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
}

// message creates a human-readable validation error message
func message(e validator.FieldError) string {
	switch e.Tag() {
	case TagNotBlank, "required":
		return e.Field() + " is required"
	case TagYear:
		return e.Field() + " must be a 4-digit year (e.g. 2023)"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
