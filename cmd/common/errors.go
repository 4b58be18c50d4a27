package common

import "errors"

// Common errors for command dependency validation.
var (
	// ErrLoggerRequired is returned when the logger dependency is missing.
	ErrLoggerRequired = errors.New("logger is required")
	// ErrConfigRequired is returned when the config dependency is missing.
	ErrConfigRequired = errors.New("config is required")
	// ErrGeneratorRequired is returned when the generator dependency is missing.
	ErrGeneratorRequired = errors.New("generator is required")
)
