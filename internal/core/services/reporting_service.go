package services

import (
	"context"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/utils/accounting"
)

// reportingService computes every report from one snapshot of the ledger.
type reportingService struct {
	BaseService
	ledgers portssvc.LedgerProviderSvc
}

// NewReportingService creates a new reporting service.
func NewReportingService(ledgers portssvc.LedgerProviderSvc) portssvc.ReportingService {
	return &reportingService{ledgers: ledgers}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) snapshot(ctx context.Context, ledgerID string) (domain.LedgerSnapshot, error) {
	l, err := s.ledgers.Ledger(ctx, ledgerID)
	if err != nil {
		return domain.LedgerSnapshot{}, err
	}
	return l.Snapshot(), nil
}

func (s *reportingService) GetTrialBalance(ctx context.Context, ledgerID string) (*domain.TrialBalanceReport, error) {
	snap, err := s.snapshot(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	report := accounting.TrialBalance(snap.Accounts, snap.Entries)
	if !report.IsBalanced {
		s.LogInfo(ctx, "Trial balance is out of balance",
			"total_debits", report.TotalDebits.String(),
			"total_credits", report.TotalCredits.String())
	}
	return &report, nil
}

func (s *reportingService) GetBalanceSheet(ctx context.Context, ledgerID string) (*domain.BalanceSheetReport, error) {
	snap, err := s.snapshot(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	report := accounting.BalanceSheet(snap.Accounts, snap.Entries)
	return &report, nil
}

func (s *reportingService) GetIncomeStatement(ctx context.Context, ledgerID string) (*domain.IncomeStatementReport, error) {
	snap, err := s.snapshot(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	report := accounting.IncomeStatement(snap.Accounts, snap.Entries)
	return &report, nil
}

func (s *reportingService) GetDashboard(ctx context.Context, ledgerID string) (*domain.DashboardSummary, error) {
	snap, err := s.snapshot(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	summary := accounting.Dashboard(snap.Accounts, snap.Entries)
	return &summary, nil
}
