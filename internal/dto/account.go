package dto

import (
	"github.com/SscSPs/moneytx/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest defines the data needed to deposit into an account.
// Amount accepts a JSON number or a decimal string.
type DepositRequest struct {
	AccountID string           `json:"accountId" binding:"required" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	Amount    *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"20"`
}

// WithdrawRequest defines the data needed to withdraw from an account.
type WithdrawRequest struct {
	AccountID string           `json:"accountId" binding:"required" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	Amount    *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"20"`
}

// TransferRequest defines the data needed to move money between accounts.
type TransferRequest struct {
	AccountID string           `json:"accountId" binding:"required" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	PayeeID   string           `json:"payeeId" binding:"required" example:"6fa459ea-ee8a-3ca4-894e-db77e160355e"`
	Amount    *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"200"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID             string `json:"id" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	CurrentBalance string `json:"currentBalance" example:"20"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:             acc.ID.String(),
		CurrentBalance: acc.Balance.String(),
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"account with id 1b4e28ba-2fa1-11d2-883f-0016d3cca427 does not exist"`
}

// HealthResponse reports the state of the ledger processor.
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Processor string `json:"processor" example:"running"`
	Restarts  int64  `json:"restarts" example:"0"`
}
