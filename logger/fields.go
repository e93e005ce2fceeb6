package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRequestID   = "request_id"
	FieldDestination = "destination"
	FieldSource      = "source"

	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Text
	FieldLength    = "length"
	FieldMaxLength = "max_length"
	FieldEntries   = "entries"
	FieldLinks     = "links"

	// Images
	FieldWidth    = "width"
	FieldHeight   = "height"
	FieldSize     = "size"
	FieldMaxBytes = "max_bytes"
	FieldQuality  = "quality"
	FieldPasses   = "passes"
	FieldMIMEType = "mime_type"
)

// Context keys for propagating logging context
type contextKey string

const (
	requestIDKey   contextKey = "logger_request_id"
	destinationKey contextKey = "logger_destination"
)

// WithRequestID adds a request ID to the context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithDestination adds a destination name to the context for logging
func WithDestination(ctx context.Context, destination string) context.Context {
	return context.WithValue(ctx, destinationKey, destination)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields = append(fields, FieldRequestID, requestID)
	}
	if destination, ok := ctx.Value(destinationKey).(string); ok && destination != "" {
		fields = append(fields, FieldDestination, destination)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	scaler := media.NewScaler(logger.ComponentLogger("media"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
