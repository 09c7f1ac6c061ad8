package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/moneytx/internal/apperrors"
	"github.com/SscSPs/moneytx/internal/core/domain"
	"github.com/SscSPs/moneytx/internal/core/ports"
	portssvc "github.com/SscSPs/moneytx/internal/core/ports/services"
	"github.com/SscSPs/moneytx/internal/dto"
	"github.com/SscSPs/moneytx/internal/handlers"
	"github.com/SscSPs/moneytx/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateAccount(ctx context.Context) (*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Deposit(ctx context.Context, id domain.AccountID, amount domain.Money) (*domain.Account, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, id domain.AccountID, amount domain.Money) (*domain.Account, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, id, payee domain.AccountID, amount domain.Money) (*domain.Account, error) {
	args := m.Called(ctx, id, payee, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) CurrentBalance(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// stubHealth reports a fixed processor state.
type stubHealth struct {
	state    ports.State
	restarts int64
}

func (s *stubHealth) State() ports.State { return s.state }
func (s *stubHealth) Restarts() int64     { return s.restarts }

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockLedgerService
	health      *stubHealth
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockLedgerService)
	suite.health = &stubHealth{state: ports.StateRunning}
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		Ledger: suite.mockService,
		Health: suite.health,
	})
}

func (suite *LedgerHandlerTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		suite.Require().NoError(json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) decodeAccount(w *httptest.ResponseRecorder) dto.AccountResponse {
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (suite *LedgerHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) string {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func amountOf(n int64) any {
	want := domain.NewMoneyFromInt(n)
	return mock.MatchedBy(func(m domain.Money) bool { return m.Equal(want) })
}

func account(id domain.AccountID, balance int64) *domain.Account {
	acc := domain.NewAccount(id).WithBalance(domain.NewMoneyFromInt(balance))
	return &acc
}

func (suite *LedgerHandlerTestSuite) TestCreateAccount_GetAndPost() {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		id := domain.NewAccountID()
		suite.mockService.On("CreateAccount", mock.Anything).Return(account(id, 0), nil).Once()

		w := suite.do(method, "/createAccount", nil)

		suite.Equal(http.StatusOK, w.Code, method)
		resp := suite.decodeAccount(w)
		suite.Equal(id.String(), resp.ID)
		suite.Equal("0", resp.CurrentBalance)
	}
}

func (suite *LedgerHandlerTestSuite) TestDeposit_Success() {
	id := domain.NewAccountID()
	suite.mockService.On("Deposit", mock.Anything, id, amountOf(20)).Return(account(id, 20), nil).Once()

	w := suite.do(http.MethodPost, "/deposit", map[string]any{"accountId": id.String(), "amount": 20})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("20", suite.decodeAccount(w).CurrentBalance)
}

func (suite *LedgerHandlerTestSuite) TestDeposit_AmountAsString() {
	id := domain.NewAccountID()
	suite.mockService.On("Deposit", mock.Anything, id, mock.MatchedBy(func(m domain.Money) bool {
		return m.String() == "12.5"
	})).Return(account(id, 0), nil).Once()

	w := suite.do(http.MethodPost, "/deposit", fmt.Sprintf(`{"accountId":%q,"amount":"12.50"}`, id))

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestDeposit_MissingFields() {
	w := suite.do(http.MethodPost, "/deposit", map[string]any{"amount": 5})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decodeError(w), "request body validation failed")
	suite.Contains(suite.decodeError(w), "'accountId' is required")
	suite.mockService.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestDeposit_MalformedJSON() {
	w := suite.do(http.MethodPost, "/deposit", `{"accountId":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decodeError(w), "request body validation failed")
}

func (suite *LedgerHandlerTestSuite) TestDeposit_MalformedAccountID() {
	w := suite.do(http.MethodPost, "/deposit", map[string]any{"accountId": "not-a-uuid", "amount": 5})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decodeError(w), "not-a-uuid")
}

func (suite *LedgerHandlerTestSuite) TestDeposit_ValidationError() {
	id := domain.NewAccountID()
	verr := &domain.IllegalAmountError{Amount: domain.NewMoneyFromInt(-1)}
	suite.mockService.On("Deposit", mock.Anything, id, amountOf(-1)).Return(nil, verr).Once()

	w := suite.do(http.MethodPost, "/deposit", map[string]any{"accountId": id.String(), "amount": -1})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(verr.Error(), suite.decodeError(w))
}

func (suite *LedgerHandlerTestSuite) TestWithdraw_InsufficientFunds() {
	id := domain.NewAccountID()
	verr := &domain.InsufficientFundsError{ID: id, CurrentBalance: domain.ZeroMoney()}
	suite.mockService.On("Withdraw", mock.Anything, id, amountOf(100)).Return(nil, verr).Once()

	w := suite.do(http.MethodPost, "/withdraw", map[string]any{"accountId": id.String(), "amount": 100})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(verr.Error(), suite.decodeError(w))
}

func (suite *LedgerHandlerTestSuite) TestTransfer_Success() {
	payer, payee := domain.NewAccountID(), domain.NewAccountID()
	suite.mockService.On("Transfer", mock.Anything, payer, payee, amountOf(200)).Return(account(payer, 0), nil).Once()

	w := suite.do(http.MethodPost, "/transfer", map[string]any{
		"accountId": payer.String(),
		"payeeId":   payee.String(),
		"amount":    200,
	})

	suite.Equal(http.StatusOK, w.Code)
	resp := suite.decodeAccount(w)
	suite.Equal(payer.String(), resp.ID)
	suite.Equal("0", resp.CurrentBalance)
}

func (suite *LedgerHandlerTestSuite) TestTransfer_MissingPayee() {
	w := suite.do(http.MethodPost, "/transfer", map[string]any{"accountId": domain.NewAccountID().String(), "amount": 1})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decodeError(w), "'payeeId' is required")
}

func (suite *LedgerHandlerTestSuite) TestCurrentBalance_NotFound() {
	id := domain.NewAccountID()
	suite.mockService.On("CurrentBalance", mock.Anything, id).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/currentBalance/"+id.String(), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestInternalErrorsAreHidden() {
	cases := []error{
		fmt.Errorf("failed to process: %w", apperrors.ErrAskTimeout),
		apperrors.ErrProcessorStopped,
		apperrors.ErrUnexpectedReply,
		apperrors.ErrExpectedAccountNotFound,
	}
	for _, cause := range cases {
		id := domain.NewAccountID()
		suite.mockService.On("CurrentBalance", mock.Anything, id).Return(nil, cause).Once()

		w := suite.do(http.MethodGet, "/currentBalance/"+id.String(), nil)

		suite.Equal(http.StatusInternalServerError, w.Code, cause.Error())
		suite.Equal("internal server error", suite.decodeError(w))
	}
}

func (suite *LedgerHandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.health.state = ports.StateRestarting
	suite.health.restarts = 2
	w = suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)

	var resp dto.HealthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("restarting", resp.Processor)
	suite.EqualValues(2, resp.Restarts)
}

func (suite *LedgerHandlerTestSuite) TestSwaggerDisabledInProduction() {
	w := suite.do(http.MethodGet, "/swagger/index.html", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
