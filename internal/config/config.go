// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped with this package's sentinel kinds.
package config

import (
	"context"
)

// Size defaults.
const (
	mebibyte                    = 1 << 20
	defaultMaxUploadBytes       = 32 * mebibyte
	defaultMultipartMemoryBytes = 8 * mebibyte
	defaultMaxParallel          = 3
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects console (human readable) or json output.
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr" validate:"required"`

	// MaxUploadBytes caps the size of any request body.
	MaxUploadBytes int64 `koanf:"max_upload_bytes" validate:"gt=0"`

	// MultipartMemoryBytes is how much of a multipart form is held in memory
	// before the parser spills file parts to temporary files.
	MultipartMemoryBytes int64 `koanf:"multipart_memory_bytes" validate:"gt=0,ltefield=MaxUploadBytes"`

	// MaxParallel bounds concurrent upload inspection per multimodal request.
	MaxParallel int `koanf:"max_parallel" validate:"gte=1"`

	// CORSAllowedOrigins lists origins allowed by CORS; "*" allows any.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"min=1,dive,required"`

	// MetricsEnabled exposes GET /metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// DocsEnabled exposes GET /docs and GET /openapi.yaml.
	DocsEnabled bool `koanf:"docs_enabled"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "console",
		Addr:                 ":8000",
		MaxUploadBytes:       defaultMaxUploadBytes,
		MultipartMemoryBytes: defaultMultipartMemoryBytes,
		MaxParallel:          defaultMaxParallel,
		CORSAllowedOrigins:   []string{"*"},
		MetricsEnabled:       true,
		DocsEnabled:          true,
	}
}
