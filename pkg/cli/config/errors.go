package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrProfileNotFound = goerr.New("scoring profile not found")
	ErrInvalidProfile  = goerr.New("invalid scoring profile")
	ErrInvalidBackend  = goerr.New("invalid storage backend")
	ErrInvalidLogLevel = goerr.New("invalid log level")
	ErrInvalidLogFmt   = goerr.New("invalid log format")
)

// Context keys for error values
const (
	ProfilePathKey = "profile_path"
	BackendKey     = "backend"
	LogLevelKey    = "log_level"
	LogFormatKey   = "log_format"
)
