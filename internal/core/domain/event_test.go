package domain_test

import (
	"testing"

	"github.com/SscSPs/moneytx/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownCommand struct{ domain.CreateAccount }

func TestEventFor(t *testing.T) {
	id, payee := domain.NewAccountID(), domain.NewAccountID()
	amount := domain.NewMoneyFromInt(42)

	tests := []struct {
		name string
		cmd  domain.Command
		want domain.Event
	}{
		{"create account", domain.CreateAccount{ID: id}, domain.AccountCreated{ID: id}},
		{"deposit", domain.Deposit{ID: id, Amount: amount}, domain.Deposited{ID: id, Amount: amount}},
		{"withdraw", domain.Withdraw{ID: id, Amount: amount}, domain.Withdrawn{ID: id, Amount: amount}},
		{"transfer", domain.Transfer{ID: id, Payee: payee, Amount: amount}, domain.Transferred{ID: id, Payee: payee, Amount: amount}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.EventFor(tt.cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, id, tt.cmd.PrimaryAccount())
		})
	}
}

func TestEventFor_UnknownCommand(t *testing.T) {
	_, err := domain.EventFor(unknownCommand{})
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
}
