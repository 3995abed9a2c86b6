package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// WithField adds a single field to the logger in the context.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := FromContext(ctx)
	var newLogger zerolog.Logger
	switch v := value.(type) {
	case string:
		newLogger = logger.With().Str(key, v).Logger()
	case int:
		newLogger = logger.With().Int(key, v).Logger()
	case bool:
		newLogger = logger.With().Bool(key, v).Logger()
	case error:
		newLogger = logger.With().Str(key, v.Error()).Logger()
	default:
		newLogger = logger.With().Interface(key, v).Logger()
	}
	return WithLogger(ctx, &newLogger)
}

// WithPlugin adds plugin context to the logger.
func WithPlugin(ctx context.Context, name string) context.Context {
	return WithField(ctx, "plugin", name)
}

// WithStore adds catalog store context to the logger.
func WithStore(ctx context.Context, store string) context.Context {
	return WithField(ctx, "store", store)
}
