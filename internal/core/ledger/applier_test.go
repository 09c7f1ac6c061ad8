package ledger

import (
	"testing"

	"github.com/SscSPs/moneytx/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownEvent struct{ domain.AccountCreated }

func balanceOf(t *testing.T, s *Store, id domain.AccountID) domain.Money {
	t.Helper()
	acc, ok := s.Account(id)
	require.True(t, ok, "account %s not in store", id)
	return acc.Balance
}

func TestEventApplier_AccountCreated(t *testing.T) {
	store := NewStore()
	applier := NewEventApplier(store)
	id := domain.NewAccountID()

	applier.Apply(domain.AccountCreated{ID: id})

	acc, ok := store.Snapshot().Account(id)
	require.True(t, ok)
	assert.Equal(t, domain.NewAccount(id), acc)
}

func TestEventApplier_Deposited(t *testing.T) {
	store := NewStore()
	applier := NewEventApplier(store)
	id := domain.NewAccountID()

	applier.Apply(domain.AccountCreated{ID: id})
	applier.Apply(domain.Deposited{ID: id, Amount: domain.NewMoneyFromInt(100)})

	assert.True(t, balanceOf(t, store, id).Equal(domain.NewMoneyFromInt(100)))
}

func TestEventApplier_Withdrawn(t *testing.T) {
	store := NewStore()
	applier := NewEventApplier(store)
	id := domain.NewAccountID()

	applier.Apply(domain.AccountCreated{ID: id})
	applier.Apply(domain.Deposited{ID: id, Amount: domain.NewMoneyFromInt(100)})
	applier.Apply(domain.Withdrawn{ID: id, Amount: domain.NewMoneyFromInt(10)})

	assert.True(t, balanceOf(t, store, id).Equal(domain.NewMoneyFromInt(90)))
}

func TestEventApplier_Transferred(t *testing.T) {
	store := NewStore()
	applier := NewEventApplier(store)
	id, payee := domain.NewAccountID(), domain.NewAccountID()

	applier.Apply(domain.AccountCreated{ID: id})
	applier.Apply(domain.AccountCreated{ID: payee})
	applier.Apply(domain.Deposited{ID: id, Amount: domain.NewMoneyFromInt(100)})
	applier.Apply(domain.Transferred{ID: id, Payee: payee, Amount: domain.NewMoneyFromInt(10)})

	assert.True(t, balanceOf(t, store, id).Equal(domain.NewMoneyFromInt(90)))
	assert.True(t, balanceOf(t, store, payee).Equal(domain.NewMoneyFromInt(10)))
}

func TestEventApplier_AccountCreatedTwiceOverwrites(t *testing.T) {
	store := NewStore()
	applier := NewEventApplier(store)
	id := domain.NewAccountID()

	applier.Apply(domain.AccountCreated{ID: id})
	applier.Apply(domain.Deposited{ID: id, Amount: domain.NewMoneyFromInt(5)})
	applier.Apply(domain.AccountCreated{ID: id})

	assert.True(t, balanceOf(t, store, id).Equal(domain.ZeroMoney()))
}

func TestEventApplier_UnknownEventPanics(t *testing.T) {
	applier := NewEventApplier(NewStore())
	assert.Panics(t, func() { applier.Apply(unknownEvent{}) })
}

func TestStore_SnapshotDoesNotAliasLedger(t *testing.T) {
	store := NewStore()
	applier := NewEventApplier(store)
	id := domain.NewAccountID()
	applier.Apply(domain.AccountCreated{ID: id})

	before := store.Snapshot()
	applier.Apply(domain.Deposited{ID: id, Amount: domain.NewMoneyFromInt(3)})

	acc, _ := before.Account(id)
	assert.True(t, acc.Balance.Equal(domain.ZeroMoney()))
}
