// Package config loads benchmark settings from files, env files and the
// process environment, and turns them into a bench.Config.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/pagelat/internal/bench"
	"github.com/wesleyorama2/pagelat/internal/order"
)

// DefaultMB is the working set used when neither mb nor gb is set.
const DefaultMB = 1024

// Settings holds every user-adjustable option. Nil pointers and empty
// strings mean "not set", so layers can be merged.
type Settings struct {
	MB      *int     `json:"mb,omitempty" yaml:"mb,omitempty"`
	GB      *float64 `json:"gb,omitempty" yaml:"gb,omitempty"`
	Repeats *int     `json:"repeats,omitempty" yaml:"repeats,omitempty"`
	Order   string   `json:"order,omitempty" yaml:"order,omitempty"`
	Seed    *uint64  `json:"seed,omitempty" yaml:"seed,omitempty"`
	Policy  string   `json:"policy,omitempty" yaml:"policy,omitempty"`
	Verify  *bool    `json:"verify,omitempty" yaml:"verify,omitempty"`

	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	Record string `json:"record,omitempty" yaml:"record,omitempty"`
}

// LoadConfig loads a settings file.
func LoadConfig(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data, path)
}

// ParseConfig parses settings data and checks it against the settings
// schema.
//
// The format is determined by the file extension in path, or defaults to YAML
// if the path is empty or has an unknown extension.
func ParseConfig(data []byte, path string) (*Settings, error) {
	var doc any
	var settings Settings

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
		if err := schemaCheck(doc); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
		if doc == nil {
			// Empty document.
			return &settings, nil
		}
		if err := schemaCheck(doc); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	return &settings, nil
}

// Merge overlays every field set in o onto s.
func (s *Settings) Merge(o *Settings) {
	if o == nil {
		return
	}
	if o.MB != nil {
		s.MB = o.MB
	}
	if o.GB != nil {
		s.GB = o.GB
	}
	if o.Repeats != nil {
		s.Repeats = o.Repeats
	}
	if o.Order != "" {
		s.Order = o.Order
	}
	if o.Seed != nil {
		s.Seed = o.Seed
	}
	if o.Policy != "" {
		s.Policy = o.Policy
	}
	if o.Verify != nil {
		s.Verify = o.Verify
	}
	if o.Format != "" {
		s.Format = o.Format
	}
	if o.Output != "" {
		s.Output = o.Output
	}
	if o.Record != "" {
		s.Record = o.Record
	}
}

// SizeBytes returns the working set in bytes. gb takes precedence over mb.
func (s *Settings) SizeBytes() int64 {
	if s.GB != nil {
		return int64(*s.GB * (1 << 30))
	}
	if s.MB != nil {
		return int64(*s.MB) << 20
	}
	return DefaultMB << 20
}

// ToBench validates the settings and converts them to a run
// configuration. A random order with no seed is seeded from the clock; the
// chosen seed is part of the result so the run can be repeated.
func (s *Settings) ToBench(pageSize int) (bench.Config, error) {
	if err := s.Validate(); err != nil {
		return bench.Config{}, err
	}

	cfg := bench.DefaultConfig()
	cfg.SizeBytes = s.SizeBytes()
	if s.Repeats != nil {
		cfg.Repeats = *s.Repeats
	}
	if s.Order != "" {
		mode, err := order.ParseMode(s.Order)
		if err != nil {
			return bench.Config{}, err
		}
		cfg.Order = mode
	}
	if s.Policy != "" {
		policy, err := bench.ParsePolicy(s.Policy)
		if err != nil {
			return bench.Config{}, err
		}
		cfg.Policy = policy
	}
	if s.Verify != nil {
		cfg.VerifyEviction = *s.Verify
	}
	switch {
	case s.Seed != nil:
		cfg.Seed = *s.Seed
	case cfg.Order == order.ModeRandom:
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	if err := cfg.Validate(pageSize); err != nil {
		return bench.Config{}, err
	}
	return cfg, nil
}
