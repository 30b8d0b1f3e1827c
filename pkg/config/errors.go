package config

import "errors"

// ErrFileNotFound is returned when the configured YAML path does not exist;
// loading proceeds with built-in defaults only in that case.
var ErrFileNotFound = errors.New("config file not found")

// ErrValidation wraps a failure from Validator.ValidateAll.
var ErrValidation = errors.New("config validation failed")
