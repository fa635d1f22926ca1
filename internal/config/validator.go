package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wesleyorama2/pagelat/internal/bench"
	"github.com/wesleyorama2/pagelat/internal/order"
	"github.com/wesleyorama2/pagelat/internal/pagemem"
	"github.com/wesleyorama2/pagelat/pkg/jsonschema"
)

//go:embed schema.json
var settingsSchemaJSON string

var settingsSchema = jsonschema.MustCompile("pagelat-settings.json", settingsSchemaJSON)

// Formats lists the accepted report formats.
var Formats = []string{"text", "json", "yaml", "html"}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors is a collection of validation errors. It matches
// pagemem.ErrConfiguration under errors.Is.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Is makes errors.Is(err, pagemem.ErrConfiguration) match.
func (e *ValidationErrors) Is(target error) bool {
	return target == pagemem.ErrConfiguration
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Size limits keep the byte count within int64.
const (
	maxMB = math.MaxInt64 >> 20
	maxGB = float64(1<<63) / (1 << 30)
)

// Validate checks every set field.
//
// Returns nil if valid, or a *ValidationErrors containing all problems.
func (s *Settings) Validate() error {
	errs := &ValidationErrors{}

	if s.MB != nil {
		switch {
		case *s.MB <= 0:
			errs.Add("mb", fmt.Sprintf("must be positive, got %d", *s.MB))
		case int64(*s.MB) > maxMB:
			errs.Add("mb", fmt.Sprintf("must be at most %d, got %d", int64(maxMB), *s.MB))
		}
	}
	if s.GB != nil {
		switch {
		case !(*s.GB > 0):
			errs.Add("gb", fmt.Sprintf("must be positive, got %g", *s.GB))
		case !(*s.GB < maxGB):
			errs.Add("gb", fmt.Sprintf("must be less than %g, got %g", maxGB, *s.GB))
		}
	}
	if s.Repeats != nil && *s.Repeats < 1 {
		errs.Add("repeats", fmt.Sprintf("must be at least 1, got %d", *s.Repeats))
	}
	if s.Order != "" {
		if _, err := order.ParseMode(s.Order); err != nil {
			errs.Add("order", err.Error())
		}
	}
	if s.Policy != "" {
		if _, err := bench.ParsePolicy(s.Policy); err != nil {
			errs.Add("policy", err.Error())
		}
	}
	if s.Format != "" && !validFormat(s.Format) {
		errs.Add("format", fmt.Sprintf("unknown format %q (want %s)", s.Format, strings.Join(Formats, ", ")))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if strings.EqualFold(f, known) {
			return true
		}
	}
	return false
}

// schemaCheck validates a decoded settings document against the embedded
// schema, converting schema errors to ValidationErrors.
func schemaCheck(doc any) error {
	err := settingsSchema.Validate(doc)
	if err == nil {
		return nil
	}

	errs := &ValidationErrors{}
	var schemaErrs jsonschema.ValidationErrors
	if errors.As(err, &schemaErrs) {
		for _, fe := range schemaErrs {
			errs.Add(strings.TrimPrefix(fe.Location, "/"), fe.Message)
		}
		return errs
	}
	errs.Add("", err.Error())
	return errs
}
