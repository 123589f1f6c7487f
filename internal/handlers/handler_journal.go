package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

var journalErrors = errorMessages{
	NotFound: "Journal entry not found",
	Fallback: "Failed to process journal entry",
}

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/:id", h.getJournalEntry)
		entries.PUT("/:id", h.updateJournalEntry)
		entries.DELETE("/:id", h.deleteJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Post a journal entry
// @Description Records a balanced journal entry. Lines with both debit and credit zero are dropped.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.JournalEntryRequest true "Journal entry"
// @Success 201 {object} domain.JournalEntry
// @Failure 400 {object} dto.ErrorResponse "Invalid input or debits do not equal credits"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "Changes could not be saved"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), ledger, req)
	if err != nil {
		respondWithError(c, err, journalErrors)
		return
	}

	logger.Info("Journal entry created successfully", slog.Int64("entry_id", entry.ID))
	c.JSON(http.StatusCreated, entry)
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Returns journal entries newest first. Pass limit to page through them with nextToken.
// @Tags journal
// @Produce  json
// @Param   limit query int false "Page size (1-500)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), ledger, params)
	if err != nil {
		respondWithError(c, err, journalErrors)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "journal entry")
	if !ok {
		return
	}
	entry, err := h.journalService.GetJournalEntryByID(c.Request.Context(), ledger, id)
	if err != nil {
		respondWithError(c, err, journalErrors)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// updateJournalEntry godoc
// @Summary Replace a journal entry
// @Description Replaces the date, reference, description and lines of an entry. The id and creation time are kept.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Param   entry body dto.JournalEntryRequest true "Journal entry"
// @Success 200 {object} domain.JournalEntry
// @Failure 400 {object} dto.ErrorResponse "Invalid input or debits do not equal credits"
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Failure 503 {object} dto.ErrorResponse "Changes could not be saved"
// @Security BearerAuth
// @Router /journal-entries/{id} [put]
func (h *journalHandler) updateJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "journal entry")
	if !ok {
		return
	}
	var req dto.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(c.Request.Context(), ledger, id, req)
	if err != nil {
		respondWithError(c, err, journalErrors)
		return
	}
	logger.Info("Journal entry updated successfully", slog.Int64("entry_id", id))
	c.JSON(http.StatusOK, entry)
}

// deleteJournalEntry godoc
// @Summary Delete a journal entry
// @Tags journal
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Failure 503 {object} dto.ErrorResponse "Changes could not be saved"
// @Security BearerAuth
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "journal entry")
	if !ok {
		return
	}
	if err := h.journalService.DeleteJournalEntry(c.Request.Context(), ledger, id); err != nil {
		respondWithError(c, err, journalErrors)
		return
	}
	logger.Info("Journal entry deleted", slog.Int64("entry_id", id))
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Journal entry deleted successfully"})
}
