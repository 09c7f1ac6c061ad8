package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand is returned by EventFor for a command outside the closed set.
var ErrUnknownCommand = errors.New("unknown command type")

// Event is a validated fact. Applying an event never fails.
type Event interface {
	isEvent()
}

type AccountCreated struct {
	ID AccountID
}

type Deposited struct {
	ID     AccountID
	Amount Money
}

type Withdrawn struct {
	ID     AccountID
	Amount Money
}

type Transferred struct {
	ID     AccountID
	Payee  AccountID
	Amount Money
}

func (AccountCreated) isEvent() {}
func (Deposited) isEvent()      {}
func (Withdrawn) isEvent()      {}
func (Transferred) isEvent()    {}

// EventFor derives the event recorded for an accepted command.
// It must only be called after Validate returned nil.
func EventFor(cmd Command) (Event, error) {
	switch c := cmd.(type) {
	case CreateAccount:
		return AccountCreated{ID: c.ID}, nil
	case Deposit:
		return Deposited{ID: c.ID, Amount: c.Amount}, nil
	case Withdraw:
		return Withdrawn{ID: c.ID, Amount: c.Amount}, nil
	case Transfer:
		return Transferred{ID: c.ID, Payee: c.Payee, Amount: c.Amount}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}
