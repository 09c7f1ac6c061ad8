package domain

import (
	"fmt"

	"github.com/SscSPs/moneytx/internal/apperrors"
)

// ValidationError is a business-rule rejection. It is always returned as a
// value, never raised mid-mutation, and always matches apperrors.ErrValidation.
type ValidationError interface {
	error
	isValidationError()
}

// IllegalAmountError rejects amounts that are zero, negative or out of range.
type IllegalAmountError struct {
	Amount Money
}

func (e *IllegalAmountError) Error() string {
	if e.Amount.IsPositive() {
		return fmt.Sprintf("money should have at most %d decimal places and %d integer digits", MaxAmountScale, MaxAmountIntegerDigits)
	}
	return "money should be greater than zero"
}

// AccountAlreadyExistsError rejects a CreateAccount for an id already in the ledger.
type AccountAlreadyExistsError struct {
	ID AccountID
}

func (e *AccountAlreadyExistsError) Error() string {
	return fmt.Sprintf("account: %s already exists", e.ID)
}

// AccountDoesNotExistError rejects a command naming an unknown account.
// IsPayee is set when the unknown account is the receiving side of a transfer.
type AccountDoesNotExistError struct {
	ID      AccountID
	IsPayee bool
}

func (e *AccountDoesNotExistError) Error() string {
	if e.IsPayee {
		return fmt.Sprintf("payee account: %s does not exist", e.ID)
	}
	return fmt.Sprintf("account: %s does not exist", e.ID)
}

// InsufficientFundsError rejects a withdrawal or transfer larger than the balance.
type InsufficientFundsError struct {
	ID             AccountID
	CurrentBalance Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in account: %s, current balance: %s", e.ID, e.CurrentBalance)
}

// SelfTransferError rejects a transfer whose payer and payee are the same account.
type SelfTransferError struct{}

func (e *SelfTransferError) Error() string {
	return "transferring into your own account is not allowed (use deposit)"
}

// InvalidAccountIDError rejects caller input that is not an account id.
type InvalidAccountIDError struct {
	Value string
	Field string
	Err   error
}

func (e *InvalidAccountIDError) Error() string {
	return fmt.Sprintf("value: %s for %s cannot be converted to an account id", e.Value, e.Field)
}

func (*IllegalAmountError) isValidationError()        {}
func (*AccountAlreadyExistsError) isValidationError() {}
func (*AccountDoesNotExistError) isValidationError()  {}
func (*InsufficientFundsError) isValidationError()    {}
func (*SelfTransferError) isValidationError()         {}
func (*InvalidAccountIDError) isValidationError()     {}

func (*IllegalAmountError) Is(target error) bool        { return target == apperrors.ErrValidation }
func (*AccountAlreadyExistsError) Is(target error) bool {
	return target == apperrors.ErrValidation || target == apperrors.ErrDuplicate
}
func (*AccountDoesNotExistError) Is(target error) bool  { return target == apperrors.ErrValidation }
func (*InsufficientFundsError) Is(target error) bool    { return target == apperrors.ErrValidation }
func (*SelfTransferError) Is(target error) bool         { return target == apperrors.ErrValidation }
func (*InvalidAccountIDError) Is(target error) bool     { return target == apperrors.ErrValidation }

// Unwrap exposes the uuid parse failure.
func (e *InvalidAccountIDError) Unwrap() error { return e.Err }
