package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey string

const loggerKey contextKey = "logger"

// FromContext returns the request-scoped logger carried in ctx, falling back
// to the service logger when none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return log
	}
	return GetLogger()
}

// WithContext attaches a logger to ctx. The request-ID middleware uses this
// so core packages can log with the request ID without knowing about echo.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromEcho returns the request-scoped logger stored on the echo context,
// falling back to the service logger.
func FromEcho(c echo.Context) *zap.Logger {
	if log, ok := c.Get("logger").(*zap.Logger); ok {
		return log
	}
	return GetLogger()
}
