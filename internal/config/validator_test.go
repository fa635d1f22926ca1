package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/pagelat/internal/pagemem"
)

// TestValidationError_Error tests the ValidationError.Error() method
func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name:     "with field",
			err:      ValidationError{Field: "repeats", Message: "must be at least 1, got 0"},
			expected: "invalid repeats: must be at least 1, got 0",
		},
		{
			name:     "without field",
			err:      ValidationError{Message: "document is not an object"},
			expected: "document is not an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestValidationErrors(t *testing.T) {
	errs := &ValidationErrors{}
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "no validation errors", errs.Error())

	errs.Add("mb", "must be positive, got 0")
	assert.Equal(t, "invalid mb: must be positive, got 0", errs.Error())

	errs.Add("repeats", "must be at least 1, got -2")
	msg := errs.Error()
	assert.True(t, strings.HasPrefix(msg, "2 validation errors:"))
	assert.Contains(t, msg, "1. invalid mb")
	assert.Contains(t, msg, "2. invalid repeats")

	var err error = errs
	assert.True(t, errors.Is(err, pagemem.ErrConfiguration))
	assert.False(t, errors.Is(err, pagemem.ErrOutOfMemory))
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name       string
		s          Settings
		wantFields []string
	}{
		{"empty is valid", Settings{}, nil},
		{"all valid", Settings{MB: ptr(8), Repeats: ptr(1), Order: "random", Policy: "pool", Format: "HTML"}, nil},
		{"bad mb", Settings{MB: ptr(-1)}, []string{"mb"}},
		{"bad gb", Settings{GB: ptr(0.0)}, []string{"gb"}},
		{"mb overflows bytes", Settings{MB: ptr(1<<44 + 1)}, []string{"mb"}},
		{"largest mb", Settings{MB: ptr(math.MaxInt64 >> 20)}, nil},
		{"gb overflows bytes", Settings{GB: ptr(float64(1 << 33))}, []string{"gb"}},
		{"infinite gb", Settings{GB: ptr(math.Inf(1))}, []string{"gb"}},
		{"nan gb", Settings{GB: ptr(math.NaN())}, []string{"gb"}},
		{"collects all", Settings{Repeats: ptr(0), Order: "zigzag", Policy: "x", Format: "csv"},
			[]string{"repeats", "order", "policy", "format"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var verrs *ValidationErrors
			require.ErrorAs(t, err, &verrs)
			var fields []string
			for _, e := range verrs.Errors {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestFromEnv(t *testing.T) {
	s, err := FromEnv(map[string]string{
		"PAGELAT_MB":      "256",
		"PAGELAT_REPEATS": " 4 ",
		"PAGELAT_RANDOM":  "true",
		"PAGELAT_SEED":    "77",
		"PAGELAT_POLICY":  "pool",
		"PAGELAT_GB":      "",
		"OTHER":           "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, 256, *s.MB)
	assert.Nil(t, s.GB, "empty values are unset")
	assert.Equal(t, 4, *s.Repeats)
	assert.Equal(t, "random", s.Order)
	assert.Equal(t, uint64(77), *s.Seed)
	assert.Equal(t, "pool", s.Policy)
}

func TestFromEnv_Malformed(t *testing.T) {
	_, err := FromEnv(map[string]string{
		"PAGELAT_MB":     "lots",
		"PAGELAT_RANDOM": "maybe",
		"PAGELAT_SEED":   "-1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, pagemem.ErrConfiguration)

	var verrs *ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs.Errors, 3)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PAGELAT_MB", "32")
	t.Setenv("PAGELAT_REPEATS", "9")

	path := filepath.Join(t.TempDir(), "bench.env")
	require.NoError(t, os.WriteFile(path, []byte("# overrides\nPAGELAT_REPEATS=2\nPAGELAT_RANDOM=false\n"), 0o644))

	s, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, 32, *s.MB)
	assert.Equal(t, 2, *s.Repeats, "env file overrides the process environment")
	assert.Equal(t, "sequential", s.Order)

	_, err = LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
