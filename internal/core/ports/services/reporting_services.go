package services

import (
	"context"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
)

// ReportingService generates financial reports from a ledger's current state.
type ReportingService interface {
	GetTrialBalance(ctx context.Context, ledgerID string) (*domain.TrialBalanceReport, error)
	GetBalanceSheet(ctx context.Context, ledgerID string) (*domain.BalanceSheetReport, error)
	GetIncomeStatement(ctx context.Context, ledgerID string) (*domain.IncomeStatementReport, error)
	GetDashboard(ctx context.Context, ledgerID string) (*domain.DashboardSummary, error)
}
