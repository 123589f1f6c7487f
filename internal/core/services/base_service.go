package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/middleware"
)

// DefaultStorageTimeout bounds a single persistence call when no timeout is configured.
const DefaultStorageTimeout = 5 * time.Second

// BaseService provides common functionality for all services
type BaseService struct {
	StorageTimeout time.Duration
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogFailure logs err at error level when it is a storage or unexpected failure and at
// info level when the request was rejected by a business rule.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isRejection(err) {
		args := make([]any, 0, len(keyvals)+1)
		args = append(args, slog.String("reason", err.Error()))
		args = append(args, keyvals...)
		s.LogInfo(ctx, msg, args...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// StorageCtx bounds ctx by the storage timeout for one persistence call.
func (s *BaseService) StorageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.StorageTimeout
	if timeout <= 0 {
		timeout = DefaultStorageTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func isRejection(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrUnbalanced) ||
		errors.Is(err, apperrors.ErrUnauthorized)
}
