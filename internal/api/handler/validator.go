package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FieldError is one field-level failure in a validation report. Field is the
// dot-joined json path of the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the complete per-field failure report for one
// request part. All failing fields are collected in a single pass; callers
// never see only the first problem.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, d.Message)
	}
	return strings.Join(msgs, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in error reports use the json tag, not the Go field name.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. A rule failure returns a
// *ValidationError listing every failing field; anything else (a broken
// schema declaration) surfaces as-is and maps to a 500.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make([]FieldError, 0, len(ve))
		for _, fe := range ve {
			details = append(details, FieldError{
				Field:   fieldPath(fe),
				Message: fieldMessage(fe),
			})
		}
		return &ValidationError{Details: details}
	}
	return err
}

// fieldPath returns the dot-joined json path, with the root struct name
// stripped ("createPostRequest.title" becomes "title").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// fieldMessage converts a single ValidationError into a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// bindBody decodes the request body into i. A field of the wrong JSON type
// is a field-level validation failure naming that field's path, matching the
// reports the schema rules produce; only a syntactically broken body falls
// back to the generic 400.
func bindBody(c echo.Context, i any) error {
	err := c.Bind(i)
	if err == nil {
		return nil
	}

	// Echo wraps the decoder error inside HTTPError.Internal.
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		err = he.Internal
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return &ValidationError{Details: []FieldError{{
			Field:   ute.Field,
			Message: bindTypeMessage(ute),
		}}}
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}

func bindTypeMessage(ute *json.UnmarshalTypeError) string {
	switch ute.Type.Kind() {
	case reflect.String:
		return ute.Field + " must be a string"
	case reflect.Bool:
		return ute.Field + " must be a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return ute.Field + " must be a number"
	default:
		return ute.Field + " is of the wrong type"
	}
}

// pathID coerces a numeric path parameter. Anything that is not a plain
// decimal number is a field-level validation failure on that parameter, not
// a routing error.
func pathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	if raw == "" || !isDigits(raw) {
		return 0, &ValidationError{Details: []FieldError{{
			Field:   name,
			Message: name + " must be a number",
		}}}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Details: []FieldError{{
			Field:   name,
			Message: name + " must be a number",
		}}}
	}
	return id, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
