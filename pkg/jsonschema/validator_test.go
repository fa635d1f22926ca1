package jsonschema

import (
	"errors"
	"strings"
	"testing"
)

const benchSchema = `{
	"type": "object",
	"properties": {
		"name": { "type": "string", "minLength": 3 },
		"repeats": { "type": "integer", "minimum": 1 }
	},
	"required": ["name"]
}`

func TestValidateJSON(t *testing.T) {
	schema, err := Compile("bench.json", benchSchema)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	tests := []struct {
		name          string
		json          string
		expectedValid bool
		expectedError bool
	}{
		{
			name:          "Valid object",
			json:          `{"name": "cold", "repeats": 3}`,
			expectedValid: true,
		},
		{
			name:          "Missing required property",
			json:          `{"repeats": 3}`,
			expectedValid: false,
		},
		{
			name:          "Wrong type",
			json:          `{"name": "cold", "repeats": "three"}`,
			expectedValid: false,
		},
		{
			name:          "Invalid JSON",
			json:          `{ invalid json }`,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.ValidateJSON([]byte(tt.json))

			var verrs ValidationErrors
			isValidation := errors.As(err, &verrs)

			if tt.expectedError {
				if err == nil || isValidation {
					t.Errorf("Expected decode error, got %v", err)
				}
				return
			}
			if tt.expectedValid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.expectedValid && !isValidation {
				t.Errorf("Expected ValidationErrors, got %v", err)
			}
		})
	}
}

func TestValidateErrors(t *testing.T) {
	schema := MustCompile("bench.json", benchSchema)

	tests := []struct {
		name           string
		doc            any
		expectedErrors []string // Substrings that should be in the error message
	}{
		{
			name:           "Missing required property",
			doc:            map[string]any{},
			expectedErrors: []string{"name", "missing properties"},
		},
		{
			name:           "Wrong type",
			doc:            map[string]any{"name": "cold", "repeats": "three"},
			expectedErrors: []string{"/repeats", "integer", "string"},
		},
		{
			name:           "Multiple errors",
			doc:            map[string]any{"name": "Jo", "repeats": 0},
			expectedErrors: []string{"length must be >= 3", "must be >= 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(tt.doc)
			if err == nil {
				t.Errorf("Expected validation errors, got none")
				return
			}

			errorStr := err.Error()
			for _, expectedError := range tt.expectedErrors {
				if !strings.Contains(errorStr, expectedError) {
					t.Errorf("Expected error to contain %q, got %q", expectedError, errorStr)
				}
			}
		})
	}
}

func TestValidateYAMLShapedDocument(t *testing.T) {
	schema := MustCompile("bench.json", benchSchema)

	// yaml.v3 decodes integers as int, not float64.
	doc := map[string]any{"name": "cold", "repeats": 3}
	if err := schema.Validate(doc); err != nil {
		t.Errorf("Expected valid, got %v", err)
	}
}

func TestCompileInvalidSchema(t *testing.T) {
	if _, err := Compile("bad.json", `{"type": "invalid-type"}`); err == nil {
		t.Errorf("Expected error, got nil")
	}
}
