package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/handlers"
	"github.com/SscSPs/general_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	userID             string
	token              string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.router = gin.New()
	suite.mockAccountService = new(MockAccountService)
	suite.userID = uuid.NewString()
	suite.token = generateTestToken(suite.userID)

	api := suite.router.Group("/api", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterAccountRoutes(api, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) TearDownTest() {
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func errorBody(w *httptest.ResponseRecorder) string {
	var resp dto.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Error
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Number: "1000", Name: "Cash", Type: "Asset"}
	created := &domain.Account{ID: 1, Number: "1000", Name: "Cash", Type: domain.Asset}
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.userID, req).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/accounts", `{"number":"1000","name":"Cash","type":"Asset"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.Account
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(int64(1), got.ID)
	suite.Equal(domain.Asset, got.Type)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingFields() {
	w := suite.do(http.MethodPost, "/api/accounts", `{"number":"1000"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(errorBody(w), "Invalid request format")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateNumber() {
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.userID, mock.AnythingOfType("dto.CreateAccountRequest")).
		Return(nil, fmt.Errorf("%w: account number 1000", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/accounts", `{"number":"1000","name":"Cash","type":"Asset"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Account number already exists", errorBody(w))
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidType() {
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.userID, mock.AnythingOfType("dto.CreateAccountRequest")).
		Return(nil, fmt.Errorf("%w: invalid account type", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/accounts", `{"number":"1000","name":"Cash","type":"Stuff"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Invalid account type", errorBody(w))
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_StorageFailure() {
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.userID, mock.AnythingOfType("dto.CreateAccountRequest")).
		Return(nil, fmt.Errorf("%w: disk full", apperrors.ErrStorage)).Once()

	w := suite.do(http.MethodPost, "/api/accounts", `{"number":"1000","name":"Cash","type":"Asset"}`)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("Changes could not be saved", errorBody(w))
}

func (suite *AccountHandlerTestSuite) TestListAccounts() {
	accounts := []domain.Account{{ID: 1, Number: "1000", Name: "Cash", Type: domain.Asset}}
	suite.mockAccountService.On("ListAccounts", mock.Anything, suite.userID).Return(accounts, nil).Once()

	w := suite.do(http.MethodGet, "/api/accounts", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 1)
}

func (suite *AccountHandlerTestSuite) TestListAccountsByType() {
	groups := []domain.AccountGroup{{Type: domain.Asset, Accounts: []domain.Account{}}}
	suite.mockAccountService.On("ListAccountsByType", mock.Anything, suite.userID).Return(groups, nil).Once()

	w := suite.do(http.MethodGet, "/api/accounts/grouped", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"groups"`)
}

func (suite *AccountHandlerTestSuite) TestNextAccountNumber() {
	suite.mockAccountService.On("NextAccountNumber", mock.Anything, suite.userID).Return("1100", nil).Once()

	w := suite.do(http.MethodGet, "/api/accounts/next-number", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"number":"1100"}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.userID, int64(42)).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/accounts/42", "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Account not found", errorBody(w))
}

func (suite *AccountHandlerTestSuite) TestGetAccount_InvalidID() {
	w := suite.do(http.MethodGet, "/api/accounts/abc", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Invalid account id", errorBody(w))
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount_PartialFields() {
	updated := &domain.Account{ID: 3, Number: "1000", Name: "Petty Cash", Type: domain.Asset}
	suite.mockAccountService.On("UpdateAccount", mock.Anything, suite.userID, int64(3),
		mock.MatchedBy(func(r dto.UpdateAccountRequest) bool {
			return r.Name != nil && *r.Name == "Petty Cash" && r.Number == nil && r.Type == nil
		}),
	).Return(updated, nil).Once()

	w := suite.do(http.MethodPut, "/api/accounts/3", `{"name":"Petty Cash"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Petty Cash")
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_ReportsRemovedEntries() {
	suite.mockAccountService.On("DeleteAccount", mock.Anything, suite.userID, int64(7)).Return(2, nil).Once()

	w := suite.do(http.MethodDelete, "/api/accounts/7", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DeleteAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(2, resp.DeletedEntries)
	suite.Equal("Account deleted along with 2 journal entries", resp.Message)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance() {
	suite.mockAccountService.On("CalculateAccountBalance", mock.Anything, suite.userID, int64(1)).
		Return(decimal.RequireFromString("-125.50"), nil).Once()

	w := suite.do(http.MethodGet, "/api/accounts/1/balance", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.RequireFromString("-125.5")))
}

func (suite *AccountHandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
