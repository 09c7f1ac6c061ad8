package domain

import (
	"errors"

	"github.com/google/uuid"
)

var errNilAccountID = errors.New("nil uuid is never an account id")

// AccountID identifies an account. IDs are only ever minted by NewAccountID;
// callers never choose them.
type AccountID uuid.UUID

// NewAccountID generates a random (v4) account identifier.
func NewAccountID() AccountID {
	return AccountID(uuid.New())
}

// ParseAccountID converts caller input into an AccountID. field names the
// request field or path parameter the value came from and ends up in the
// error message.
func ParseAccountID(value, field string) (AccountID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return AccountID{}, &InvalidAccountIDError{Value: value, Field: field, Err: err}
	}
	if AccountID(id).IsZero() {
		return AccountID{}, &InvalidAccountIDError{Value: value, Field: field, Err: errNilAccountID}
	}
	return AccountID(id), nil
}

func (id AccountID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the id was never assigned.
func (id AccountID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

func (id AccountID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *AccountID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

// Account is an immutable account record. Balance changes produce a new
// value via WithBalance.
type Account struct {
	ID      AccountID `json:"id"`
	Balance Money     `json:"currentBalance"`
}

// NewAccount returns an account with a zero balance.
func NewAccount(id AccountID) Account {
	return Account{ID: id, Balance: ZeroMoney()}
}

// WithBalance returns a copy of the account carrying the given balance.
func (a Account) WithBalance(balance Money) Account {
	a.Balance = balance
	return a
}
