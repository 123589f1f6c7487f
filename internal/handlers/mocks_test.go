package handlers_test

import (
	"context"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/core/ledger"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			panic(err)
		}
	}
}

// generateTestToken creates a signed JWT for the given user.
func generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "gl-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// closeNotifyingRecorder lets gin's Stream run against an httptest recorder.
type closeNotifyingRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyingRecorder() *closeNotifyingRecorder {
	return &closeNotifyingRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyingRecorder) CloseNotify() <-chan bool {
	return r.closed
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, ledgerID string, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, ledgerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccountsByType(ctx context.Context, ledgerID string) ([]domain.AccountGroup, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}
func (m *MockAccountService) NextAccountNumber(ctx context.Context, ledgerID string) (string, error) {
	args := m.Called(ctx, ledgerID)
	return args.String(0), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, ledgerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, ledgerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, ledgerID string, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, ledgerID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, ledgerID string, accountID int64) (int, error) {
	args := m.Called(ctx, ledgerID, accountID)
	return args.Int(0), args.Error(1)
}
func (m *MockAccountService) CalculateAccountBalance(ctx context.Context, ledgerID string, accountID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, ledgerID, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalEntryByID(ctx context.Context, ledgerID string, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ledgerID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListJournalEntries(ctx context.Context, ledgerID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, ledgerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}
func (m *MockJournalService) CreateJournalEntry(ctx context.Context, ledgerID string, req dto.JournalEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ledgerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) UpdateJournalEntry(ctx context.Context, ledgerID string, entryID int64, req dto.JournalEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ledgerID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) DeleteJournalEntry(ctx context.Context, ledgerID string, entryID int64) error {
	args := m.Called(ctx, ledgerID, entryID)
	return args.Error(0)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetTrialBalance(ctx context.Context, ledgerID string) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}
func (m *MockReportingService) GetBalanceSheet(ctx context.Context, ledgerID string) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) GetIncomeStatement(ctx context.Context, ledgerID string) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}
func (m *MockReportingService) GetDashboard(ctx context.Context, ledgerID string) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Ledger(ctx context.Context, ledgerID string) (*ledger.Ledger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Ledger), args.Error(1)
}
func (m *MockLedgerService) LoadDemoData(ctx context.Context, ledgerID string) (int, int, error) {
	args := m.Called(ctx, ledgerID)
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *MockLedgerService) ClearLedger(ctx context.Context, ledgerID string) (int, int, error) {
	args := m.Called(ctx, ledgerID)
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *MockLedgerService) Backup(ctx context.Context, ledgerID string) (*domain.LedgerBackup, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerBackup), args.Error(1)
}

func (m *MockLedgerService) CheckIntegrity(ctx context.Context, ledgerID string) (*domain.IntegrityReport, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityReport), args.Error(1)
}

func (m *MockLedgerService) SubscribeChanges(ctx context.Context, ledgerID string, fn func(domain.ChangeEvent)) (func(), error) {
	args := m.Called(ctx, ledgerID, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}
func (m *MockLedgerService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, userID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}
func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, identifier, password string) (*domain.User, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) FindOrCreateOAuthUser(ctx context.Context, identity domain.GoogleIdentity) (*domain.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}
func (m *MockGoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleIdentity), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)
