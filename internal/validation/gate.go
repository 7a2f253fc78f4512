package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// objectIDPattern matches a document-database object id: exactly 24
// hexadecimal characters.
var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Gate validates structured input against declared schemas before a handler
// runs. On success the normalized, trimmed value replaces the raw input and
// handlers never re-validate; on violation every failing field is collected
// into one Error. The gate is a stateless transform and safe for concurrent
// use across requests.
type Gate struct {
	validate *validator.Validate
}

// New creates a Gate with the application's schema rules registered.
func New() *Gate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names so error details line up with the
	// payload the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return objectIDPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register objectid rule: %v", err))
	}

	return &Gate{validate: v}
}

// Check trims the value's string fields in place, then validates it against
// its declared schema tags. Returns nil on success or a *Error carrying every
// violation. The argument must be a pointer to a struct.
func (g *Gate) Check(value any) error {
	TrimStrings(value)

	err := g.validate.Struct(value)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// validator only returns a non-ValidationErrors error for a misuse
		// of the API (nil, non-struct); surface it unchanged as a defect.
		return err
	}

	details := newError()
	for _, fe := range verrs {
		details.add(fieldPath(fe), violationMessage(fe))
	}
	return details
}

// fieldPath converts a validator namespace like "RegisterRequest.profile.name"
// into the dot-joined payload path "profile.name" by dropping the root struct
// segment.
func fieldPath(fe validator.FieldError) string {
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// violationMessage renders a human-readable message for a single violation.
func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "objectid":
		return "must be a 24-character hexadecimal id"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}
