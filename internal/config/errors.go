package config

import "errors"

// ErrInvalidConfig is returned when configuration cannot be loaded or fails
// validation. It is fatal: the application must not start.
var ErrInvalidConfig = errors.New("invalid configuration")
