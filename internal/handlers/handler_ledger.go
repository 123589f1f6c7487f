package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const eventsKeepAlive = 30 * time.Second

var ledgerErrors = errorMessages{
	NotFound: "Ledger not found",
	Fallback: "Failed to update ledger",
}

// ledgerHandler handles whole-ledger operations.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers demo loading, clearing and the change stream.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/demo", h.loadDemoData)
		ledger.DELETE("", h.clearLedger)
		ledger.GET("/backup", h.backup)
		ledger.GET("/integrity", h.checkIntegrity)
		ledger.GET("/events", h.streamEvents)
	}
}

// backup godoc
// @Summary Download a ledger backup
// @Description Returns every account, journal entry and id counter of the caller's ledger
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.LedgerBackupResponse
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /ledger/backup [get]
func (h *ledgerHandler) backup(c *gin.Context) {
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	backup, err := h.ledgerService.Backup(c.Request.Context(), ledger)
	if err != nil {
		respondWithError(c, err, errorMessages{NotFound: "User not found", Fallback: "Failed to create backup"})
		return
	}
	filename := fmt.Sprintf("ledger-backup-%s.json", backup.CreatedAt.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, dto.ToLedgerBackupResponse(backup))
}

// checkIntegrity godoc
// @Summary Check ledger integrity
// @Description Reports dangling account references, unbalanced entries and stale counters in the stored ledger
// @Tags ledger
// @Produce json
// @Success 200 {object} domain.IntegrityReport
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /ledger/integrity [get]
func (h *ledgerHandler) checkIntegrity(c *gin.Context) {
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	report, err := h.ledgerService.CheckIntegrity(c.Request.Context(), ledger)
	if err != nil {
		respondWithError(c, err, errorMessages{Fallback: "Failed to check ledger integrity"})
		return
	}
	if !report.Valid {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Ledger failed integrity check", slog.Int("errors", len(report.Errors)))
	}
	c.JSON(http.StatusOK, report)
}

// loadDemoData godoc
// @Summary Load demo data
// @Description Replaces the ledger with a sample restaurant chart of accounts and journal
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.LedgerResetResponse
// @Failure 503 {object} dto.ErrorResponse "Changes could not be saved"
// @Security BearerAuth
// @Router /ledger/demo [post]
func (h *ledgerHandler) loadDemoData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	accounts, entries, err := h.ledgerService.LoadDemoData(c.Request.Context(), ledger)
	if err != nil {
		respondWithError(c, err, ledgerErrors)
		return
	}
	logger.Info("Demo data loaded", slog.Int("accounts", accounts), slog.Int("entries", entries))
	c.JSON(http.StatusOK, dto.LedgerResetResponse{
		Success:  true,
		Message:  fmt.Sprintf("Loaded %d accounts and %d journal entries", accounts, entries),
		Accounts: accounts,
		Entries:  entries,
	})
}

// clearLedger godoc
// @Summary Clear the ledger
// @Description Removes every account and journal entry and resets the id counters
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.LedgerResetResponse
// @Failure 503 {object} dto.ErrorResponse "Changes could not be saved"
// @Security BearerAuth
// @Router /ledger [delete]
func (h *ledgerHandler) clearLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	accounts, entries, err := h.ledgerService.ClearLedger(c.Request.Context(), ledger)
	if err != nil {
		respondWithError(c, err, ledgerErrors)
		return
	}
	logger.Info("Ledger cleared", slog.Int("accounts", accounts), slog.Int("entries", entries))
	c.JSON(http.StatusOK, dto.LedgerResetResponse{
		Success:  true,
		Message:  "All data cleared",
		Accounts: accounts,
		Entries:  entries,
	})
}

// streamEvents godoc
// @Summary Stream ledger changes
// @Description Server-sent events, one "change" event per persisted write. Not every storage backend supports it.
// @Tags ledger
// @Produce text/event-stream
// @Success 200 {object} domain.ChangeEvent
// @Failure 501 {object} dto.ErrorResponse "Storage backend cannot publish changes"
// @Security BearerAuth
// @Router /ledger/events [get]
func (h *ledgerHandler) streamEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}

	events := make(chan domain.ChangeEvent, 16)
	cancel, err := h.ledgerService.SubscribeChanges(c.Request.Context(), ledger, func(ev domain.ChangeEvent) {
		select {
		case events <- ev:
		default:
			logger.Warn("Dropping change event for slow subscriber", slog.String("kind", string(ev.Kind)))
		}
	})
	if err != nil {
		respondWithError(c, err, ledgerErrors)
		return
	}
	defer cancel()

	logger.Info("Change stream opened")
	ticker := time.NewTicker(eventsKeepAlive)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev := <-events:
			c.SSEvent("change", ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
	logger.Info("Change stream closed")
}
