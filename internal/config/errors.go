package config

import "errors"

// ErrInvalidConfig is wrapped by Validate for out-of-range settings such as
// a non-positive batch worker count or an unknown log level.
// ErrLoadConfig is wrapped by Load when the PAYERLENS_CONFIG file or the
// environment cannot be read into a Config.
var (
	ErrInvalidConfig = errors.New("payerlens: invalid config")
	ErrLoadConfig    = errors.New("payerlens: load config")
)
