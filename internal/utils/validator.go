package utils

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DateLayout date format accepted for date fields
const DateLayout = "2006-01-02"

var initOnce sync.Once

// ValidationError per-field validation failures
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates a ValidationError with a single message
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{Fields: map[string][]string{}}
	e.Add(field, message)
	return e
}

// Add appends a message for field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strings.Join(e.Fields[k], " "))
	}
	return strings.Join(parts, "; ")
}

// InitValidator registers custom rules on gin's validator engine
func InitValidator() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("past_date", validatePastDate)
	})
}

// fieldName reports fields by their json name, falling back to the form name
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.Split(f.Tag.Get(tag), ",")[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// validatePastDate accepts YYYY-MM-DD strictly before today
func validatePastDate(fl validator.FieldLevel) bool {
	d, err := time.ParseInLocation(DateLayout, fl.Field().String(), time.Local)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return d.Before(today)
}

// FormatValidationError converts validator errors into a ValidationError.
// Other errors are returned unchanged.
func FormatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	result := &ValidationError{Fields: map[string][]string{}}
	for _, e := range validationErrors {
		result.Add(e.Field(), fieldMessage(e))
	}
	return result
}

func fieldMessage(e validator.FieldError) string {
	field := strings.ReplaceAll(e.Field(), "_", " ")
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
		return fmt.Sprintf("The %s must be at least %s.", field, param)
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, param)
		}
		return fmt.Sprintf("The %s may not be greater than %s.", field, param)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid. Allowed: %s.", field, strings.ReplaceAll(param, " ", ", "))
	case "datetime":
		return fmt.Sprintf("The %s must be a valid date.", field)
	case "past_date":
		return fmt.Sprintf("The %s must be a date before today.", field)
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
