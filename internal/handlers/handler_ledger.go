package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/SscSPs/moneytx/internal/apperrors"
	"github.com/SscSPs/moneytx/internal/core/domain"
	portssvc "github.com/SscSPs/moneytx/internal/core/ports/services"
	"github.com/SscSPs/moneytx/internal/dto"
	"github.com/SscSPs/moneytx/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const internalErrorMessage = "internal server error"

func init() {
	// report binding failures by json field name
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// ledgerHandler handles HTTP requests for ledger operations.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the ledger operations at the root of the router.
func registerLedgerRoutes(r gin.IRoutes, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	r.GET("/createAccount", h.createAccount)
	r.POST("/createAccount", h.createAccount)
	r.POST("/deposit", h.deposit)
	r.POST("/withdraw", h.withdraw)
	r.POST("/transfer", h.transfer)
	r.GET("/currentBalance/:accId", h.currentBalance)
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens an account with a generated ID and a zero balance
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /createAccount [post]
// @Router /createAccount [get]
func (h *ledgerHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account")

	acc, err := h.ledgerService.CreateAccount(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// deposit godoc
// @Summary Deposit into an account
// @Description Adds a positive amount to an existing account
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deposit [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepositRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	id, err := domain.ParseAccountID(req.AccountID, "accountId")
	if err != nil {
		respondWithError(c, logger, err, "Invalid account ID")
		return
	}

	amount := domain.NewMoney(*req.Amount)
	logger = logger.With(slog.String("account_id", id.String()), slog.Any("amount", amount))
	logger.Info("Received request to deposit")

	acc, err := h.ledgerService.Deposit(c.Request.Context(), id, amount)
	if err != nil {
		respondWithError(c, logger, err, "Failed to deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Removes a positive amount the account balance can cover
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /withdraw [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WithdrawRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	id, err := domain.ParseAccountID(req.AccountID, "accountId")
	if err != nil {
		respondWithError(c, logger, err, "Invalid account ID")
		return
	}

	amount := domain.NewMoney(*req.Amount)
	logger = logger.With(slog.String("account_id", id.String()), slog.Any("amount", amount))
	logger.Info("Received request to withdraw")

	acc, err := h.ledgerService.Withdraw(c.Request.Context(), id, amount)
	if err != nil {
		respondWithError(c, logger, err, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// transfer godoc
// @Summary Transfer between accounts
// @Description Moves an amount from one account to another and returns the payer
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transfer [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	id, err := domain.ParseAccountID(req.AccountID, "accountId")
	if err != nil {
		respondWithError(c, logger, err, "Invalid account ID")
		return
	}
	payee, err := domain.ParseAccountID(req.PayeeID, "payeeId")
	if err != nil {
		respondWithError(c, logger, err, "Invalid payee ID")
		return
	}

	amount := domain.NewMoney(*req.Amount)
	logger = logger.With(
		slog.String("account_id", id.String()),
		slog.String("payee_id", payee.String()),
		slog.Any("amount", amount),
	)
	logger.Info("Received request to transfer")

	acc, err := h.ledgerService.Transfer(c.Request.Context(), id, payee, amount)
	if err != nil {
		respondWithError(c, logger, err, "Failed to transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// currentBalance godoc
// @Summary Get an account's balance
// @Description Returns the account with its current balance
// @Tags ledger
// @Produce  json
// @Param   accId path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed account ID"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /currentBalance/{accId} [get]
func (h *ledgerHandler) currentBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, err := domain.ParseAccountID(c.Param("accId"), "accId")
	if err != nil {
		respondWithError(c, logger, err, "Invalid account ID")
		return
	}

	logger = logger.With(slog.String("account_id", id.String()))

	acc, err := h.ledgerService.CurrentBalance(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get current balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// bindJSON binds the request body into req and answers 400 when it cannot.
func bindJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Failed to bind request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body validation failed: " + describeBindError(err)})
		return false
	}
	return true
}

// describeBindError renders validator errors by JSON field name.
func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("field '%s' is required", fe.Field()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// respondWithError maps service errors to status codes. Internal details
// never reach the client.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
	} else if errors.Is(err, apperrors.ErrAskTimeout) {
		logger.Error(msg+": command processor timed out", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	} else {
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	}
}
