package services

import (
	"context"

	"github.com/SscSPs/moneytx/internal/core/domain"
)

// LedgerWriterSvc defines the mutating ledger operations.
// Each returns the primary account as it is right after the change.
type LedgerWriterSvc interface {
	// CreateAccount opens a new account with a generated ID and zero balance.
	CreateAccount(ctx context.Context) (*domain.Account, error)

	// Deposit adds a positive amount to an existing account.
	Deposit(ctx context.Context, id domain.AccountID, amount domain.Money) (*domain.Account, error)

	// Withdraw removes a positive amount the account can cover.
	Withdraw(ctx context.Context, id domain.AccountID, amount domain.Money) (*domain.Account, error)

	// Transfer moves an amount from id to payee and returns the payer.
	Transfer(ctx context.Context, id, payee domain.AccountID, amount domain.Money) (*domain.Account, error)
}

// LedgerReaderSvc defines ledger queries.
type LedgerReaderSvc interface {
	// CurrentBalance returns the account or apperrors.ErrNotFound.
	CurrentBalance(ctx context.Context, id domain.AccountID) (*domain.Account, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
