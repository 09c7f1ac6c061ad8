package ledger

import (
	"github.com/SscSPs/moneytx/internal/core/domain"
)

// Store owns the single live ledger. It is not safe for concurrent use: only
// the processor goroutine that created it may touch it, and only the event
// applier may mutate it.
type Store struct {
	accounts map[domain.AccountID]domain.Account
}

// NewStore returns an empty ledger.
func NewStore() *Store {
	return &Store{accounts: make(map[domain.AccountID]domain.Account)}
}

// Snapshot returns a copy of the ledger for validation.
func (s *Store) Snapshot() domain.Snapshot {
	return domain.NewSnapshot(s.accounts)
}

// Account returns a copy of one account.
func (s *Store) Account(id domain.AccountID) (domain.Account, bool) {
	acc, ok := s.accounts[id]
	return acc, ok
}

// setAccount inserts or replaces an account.
func (s *Store) setAccount(acc domain.Account) {
	s.accounts[acc.ID] = acc
}

// updateBalance replaces the account with a copy whose balance is
// reduce(balance, amount). Unknown ids are ignored.
func (s *Store) updateBalance(id domain.AccountID, amount domain.Money, reduce func(balance, amount domain.Money) domain.Money) {
	acc, ok := s.accounts[id]
	if !ok {
		return
	}
	s.accounts[id] = acc.WithBalance(reduce(acc.Balance, amount))
}
