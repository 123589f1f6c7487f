package handlers

import (
	"context"
	"net/http"

	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

var reportErrors = errorMessages{
	NotFound: "Ledger not found",
	Fallback: "Failed to generate report",
}

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers the report endpoints and the dashboard.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
	}
	rg.GET("/dashboard", h.getDashboard)
}

// report runs build for the caller's ledger and writes the result.
func report[T any](c *gin.Context, build func(ctx context.Context, ledgerID string) (*T, error)) {
	ledger, ok := ledgerID(c)
	if !ok {
		return
	}
	result, err := build(c.Request.Context(), ledger)
	if err != nil {
		respondWithError(c, err, reportErrors)
		return
	}
	c.JSON(http.StatusOK, result)
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists every account with a nonzero balance in a debit or credit column
// @Tags reports
// @Produce json
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	report(c, h.reportingService.GetTrialBalance)
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Reports assets against liabilities and equity, including current net income
// @Tags reports
// @Produce json
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	report(c, h.reportingService.GetBalanceSheet)
}

// getIncomeStatement godoc
// @Summary Generate income statement report
// @Tags reports
// @Produce json
// @Success 200 {object} domain.IncomeStatementReport
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	report(c, h.reportingService.GetIncomeStatement)
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Headline totals, the five most recent entries and ledger alerts
// @Tags reports
// @Produce json
// @Success 200 {object} domain.DashboardSummary
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	report(c, h.reportingService.GetDashboard)
}
