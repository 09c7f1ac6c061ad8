package domain

// Snapshot is a read-only view of every account at one instant.
// It never aliases the live ledger.
type Snapshot struct {
	accounts map[AccountID]Account
}

// NewSnapshot copies the given accounts into a snapshot.
func NewSnapshot(accounts map[AccountID]Account) Snapshot {
	cp := make(map[AccountID]Account, len(accounts))
	for id, acc := range accounts {
		cp[id] = acc
	}
	return Snapshot{accounts: cp}
}

// Account looks up an account by id.
func (s Snapshot) Account(id AccountID) (Account, bool) {
	acc, ok := s.accounts[id]
	return acc, ok
}

// Has reports whether an account exists.
func (s Snapshot) Has(id AccountID) bool {
	_, ok := s.accounts[id]
	return ok
}
