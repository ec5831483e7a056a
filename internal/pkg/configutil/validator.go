package configutil

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors holds multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("multiple validation errors: %d errors found", len(e))
}

// Validator provides configuration validation utilities
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// RequiredString validates that a string field is not empty
func (v *Validator) RequiredString(field, value string) *Validator {
	if value == "" {
		v.errors = append(v.errors, ValidationError{
			Field:   field,
			Message: "is required and cannot be empty",
		})
	}
	return v
}

// IntRange validates that an integer field is within a specific range
func (v *Validator) IntRange(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.errors = append(v.errors, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d", min, max),
		})
	}
	return v
}

// RequiredDuration validates that a duration field is positive
func (v *Validator) RequiredDuration(field string, value time.Duration) *Validator {
	if value <= 0 {
		v.errors = append(v.errors, ValidationError{
			Field:   field,
			Message: "must be a positive duration",
		})
	}
	return v
}

// OneOf validates that a string field is one of the allowed values
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return v
		}
	}
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %v", allowed),
	})
	return v
}

// ValidateURL validates that a string looks like an HTTP or HTTPS URL
func (v *Validator) ValidateURL(field, value string) *Validator {
	if value == "" {
		return v // Allow empty URLs if not required
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		v.errors = append(v.errors, ValidationError{
			Field:   field,
			Message: "must be a valid HTTP or HTTPS URL",
		})
	}
	return v
}

// ValidateFilePath validates that a file path is not empty
func (v *Validator) ValidateFilePath(field, value string) *Validator {
	if value == "" {
		v.errors = append(v.errors, ValidationError{
			Field:   field,
			Message: "file path cannot be empty",
		})
	}
	return v
}

// Result returns validation errors if any exist
func (v *Validator) Result() error {
	if len(v.errors) == 0 {
		return nil
	}
	return ValidationErrors(v.errors)
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// ErrorCount returns the number of validation errors
func (v *Validator) ErrorCount() int {
	return len(v.errors)
}
