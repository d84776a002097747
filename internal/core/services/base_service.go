package services

import (
	"context"
	"log/slog"

	"github.com/Marceldinga/The-young-shall-grow/internal/middleware"
)

// AdminAuthorizer gates service operations on the caller's resolved role.
type AdminAuthorizer interface {
	RequireAdmin(ctx context.Context, profileID string) error
}

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer AdminAuthorizer
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeAdmin checks that the caller resolves to the admin role.
func (s *BaseService) AuthorizeAdmin(ctx context.Context, profileID string) error {
	if s.Authorizer != nil {
		return s.Authorizer.RequireAdmin(ctx, profileID)
	}
	// Route-level RequireRole middleware remains the outer gate when no
	// authorizer is injected (tests, internal callers).
	s.LogDebug(ctx, "No authorizer provided, access granted by default",
		slog.String("profile_id", profileID))
	return nil
}
