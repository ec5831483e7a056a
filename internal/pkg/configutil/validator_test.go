package configutil

import (
	"testing"
	"time"
)

func TestValidator_RequiredString(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		value     string
		wantError bool
	}{
		{
			name:      "valid_string",
			field:     "test_field",
			value:     "valid_value",
			wantError: false,
		},
		{
			name:      "empty_string",
			field:     "test_field",
			value:     "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewValidator()
			result := validator.RequiredString(tt.field, tt.value).Result()

			if tt.wantError && result == nil {
				t.Errorf("Expected error for field %s with value %s, but got none", tt.field, tt.value)
			}
			if !tt.wantError && result != nil {
				t.Errorf("Expected no error for field %s with value %s, but got: %v", tt.field, tt.value, result)
			}
		})
	}
}

func TestValidator_IntRange(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		min       int
		max       int
		wantError bool
	}{
		{name: "valid_range", value: 8080, min: 1, max: 65535, wantError: false},
		{name: "below_min", value: 0, min: 1, max: 65535, wantError: true},
		{name: "above_max", value: 70000, min: 1, max: 65535, wantError: true},
		{name: "at_min", value: 1, min: 1, max: 65535, wantError: false},
		{name: "at_max", value: 65535, min: 1, max: 65535, wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewValidator()
			result := validator.IntRange("port", tt.value, tt.min, tt.max).Result()

			if tt.wantError && result == nil {
				t.Errorf("Expected error for value %d, but got none", tt.value)
			}
			if !tt.wantError && result != nil {
				t.Errorf("Expected no error for value %d, but got: %v", tt.value, result)
			}
		})
	}
}

func TestValidator_RequiredDuration(t *testing.T) {
	tests := []struct {
		name      string
		value     time.Duration
		wantError bool
	}{
		{name: "positive_duration", value: 30 * time.Second, wantError: false},
		{name: "zero_duration", value: 0, wantError: true},
		{name: "negative_duration", value: -time.Second, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewValidator()
			result := validator.RequiredDuration("timeout", tt.value).Result()

			if tt.wantError && result == nil {
				t.Errorf("Expected error for value %v, but got none", tt.value)
			}
			if !tt.wantError && result != nil {
				t.Errorf("Expected no error for value %v, but got: %v", tt.value, result)
			}
		})
	}
}

func TestValidator_OneOf(t *testing.T) {
	allowed := []string{"text", "json"}

	tests := []struct {
		name      string
		value     string
		wantError bool
	}{
		{name: "allowed_value", value: "json", wantError: false},
		{name: "disallowed_value", value: "xml", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewValidator()
			result := validator.OneOf("format", tt.value, allowed).Result()

			if tt.wantError && result == nil {
				t.Errorf("Expected error for value %s, but got none", tt.value)
			}
			if !tt.wantError && result != nil {
				t.Errorf("Expected no error for value %s, but got: %v", tt.value, result)
			}
		})
	}
}

func TestValidator_ValidateURL(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantError bool
	}{
		{name: "http_url", value: "http://localhost:3000", wantError: false},
		{name: "https_url", value: "https://api.example.com", wantError: false},
		{name: "missing_scheme", value: "localhost:3000", wantError: true},
		{name: "empty_allowed", value: "", wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewValidator()
			result := validator.ValidateURL("base_url", tt.value).Result()

			if tt.wantError && result == nil {
				t.Errorf("Expected error for value %s, but got none", tt.value)
			}
			if !tt.wantError && result != nil {
				t.Errorf("Expected no error for value %s, but got: %v", tt.value, result)
			}
		})
	}
}

func TestValidator_CollectsMultipleErrors(t *testing.T) {
	validator := NewValidator()
	err := validator.
		RequiredString("host", "").
		IntRange("port", 0, 1, 65535).
		ValidateFilePath("path", "").
		Result()

	if err == nil {
		t.Fatal("Expected errors, got none")
	}

	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}
	if len(errs) != 3 {
		t.Errorf("Expected 3 errors, got %d", len(errs))
	}
}
