package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// storageFailureMessage is returned when a change was rejected by the storage backend.
const storageFailureMessage = "Changes could not be saved"

// errorMessages overrides the client-facing text for the common error classes.
type errorMessages struct {
	NotFound     string
	Duplicate    string
	Unauthorized string
	Fallback     string
}

// respondWithError maps err onto an HTTP status and writes {"error": ...}.
func respondWithError(c *gin.Context, err error, msgs errorMessages) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status, message := http.StatusInternalServerError, msgs.Fallback
	switch {
	case errors.Is(err, apperrors.ErrUnbalanced):
		status, message = http.StatusBadRequest, "Debits must equal credits"
	case errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, detail(err, apperrors.ErrValidation)
	case errors.Is(err, apperrors.ErrDuplicate):
		status, message = http.StatusBadRequest, msgs.Duplicate
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, msgs.NotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, msgs.Unauthorized
		if message == "" {
			message = "Invalid credentials"
		}
	case errors.Is(err, apperrors.ErrUnsupported):
		status, message = http.StatusNotImplemented, "Not supported by the storage backend"
	case errors.Is(err, apperrors.ErrStorage):
		status, message = http.StatusServiceUnavailable, storageFailureMessage
	}
	if message == "" {
		message = err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": message})
}

// detail strips the sentinel's own text so clients see only the specific reason.
func detail(err, sentinel error) string {
	msg := err.Error()
	for _, sep := range []string{sentinel.Error() + ": ", ": " + sentinel.Error()} {
		msg = strings.Replace(msg, sep, "", 1)
	}
	if msg == "" {
		return sentinel.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// bindError answers a request whose body or query failed to bind.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

// ledgerID returns the ledger of the authenticated user, answering 401 when there is none.
func ledgerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// idParam parses the numeric :id path parameter, answering 400 when it is malformed.
func idParam(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " id"})
		return 0, false
	}
	return id, true
}
