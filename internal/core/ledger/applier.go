package ledger

import (
	"fmt"

	"github.com/SscSPs/moneytx/internal/core/domain"
)

// EventApplier turns validated events into ledger mutations. It is the only
// code path allowed to change a Store.
type EventApplier interface {
	Apply(event domain.Event)
}

type storeApplier struct {
	store *Store
}

// NewEventApplier returns the applier writing into store.
func NewEventApplier(store *Store) EventApplier {
	return &storeApplier{store: store}
}

func (a *storeApplier) Apply(event domain.Event) {
	switch e := event.(type) {
	case domain.AccountCreated:
		a.store.setAccount(domain.NewAccount(e.ID))
	case domain.Deposited:
		a.store.updateBalance(e.ID, e.Amount, domain.Money.Add)
	case domain.Withdrawn:
		a.store.updateBalance(e.ID, e.Amount, domain.Money.Sub)
	case domain.Transferred:
		a.store.updateBalance(e.ID, e.Amount, domain.Money.Sub)
		a.store.updateBalance(e.Payee, e.Amount, domain.Money.Add)
	default:
		// events are a closed set; reaching here is a bug and crashes the processor
		panic(fmt.Sprintf("ledger: unknown event type %T", event))
	}
}
