// Package logtrace provides logging utilities for the Mirador client.
// It integrates with zerolog for structured logging and carries per-request
// identifiers for correlating diagnostics with backend audit entries.
package logtrace

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global logger with Unix timestamp format.
// Configures zerolog to output to stderr with timestamps.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// RequestIDFromContext extracts the request ID from the context.
// Returns an empty string if the context is nil or if no request ID is found.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	r, ok := ctx.Value(requestIDKey{}).(string)
	if !ok {
		return ""
	}
	return r
}

type requestIDKey struct{}

// WithRequestID returns a context carrying the given request ID.
// The gateway client stamps every outgoing request with one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// SetLevel adjusts the global zerolog level. The CLI defaults to warn so
// that diagnostic output does not pollute command output.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
