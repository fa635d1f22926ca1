package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment key.
const EnvPrefix = "PAGELAT_"

// LoadEnv reads PAGELAT_* settings from the process environment, then
// overlays the env file at path when path is not empty.
func LoadEnv(path string) (*Settings, error) {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			vars[k] = v
		}
	}

	if path != "" {
		fileVars, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}

	return FromEnv(vars)
}

// FromEnv builds settings from PAGELAT_* variables. Unknown keys are
// ignored. Malformed values are collected into ValidationErrors.
func FromEnv(vars map[string]string) (*Settings, error) {
	s := &Settings{}
	errs := &ValidationErrors{}

	get := func(name string) (string, bool) {
		v, ok := vars[EnvPrefix+name]
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("MB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Add(EnvPrefix+"MB", fmt.Sprintf("not an integer: %q", v))
		} else {
			s.MB = &n
		}
	}
	if v, ok := get("GB"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs.Add(EnvPrefix+"GB", fmt.Sprintf("not a number: %q", v))
		} else {
			s.GB = &f
		}
	}
	if v, ok := get("REPEATS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Add(EnvPrefix+"REPEATS", fmt.Sprintf("not an integer: %q", v))
		} else {
			s.Repeats = &n
		}
	}
	if v, ok := get("RANDOM"); ok {
		random, err := strconv.ParseBool(v)
		if err != nil {
			errs.Add(EnvPrefix+"RANDOM", fmt.Sprintf("not a boolean: %q", v))
		} else if random {
			s.Order = "random"
		} else {
			s.Order = "sequential"
		}
	}
	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs.Add(EnvPrefix+"SEED", fmt.Sprintf("not an unsigned integer: %q", v))
		} else {
			s.Seed = &n
		}
	}
	if v, ok := get("POLICY"); ok {
		s.Policy = v
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return s, nil
}
