package domain

// Command is a client intent that has not been validated yet.
// The variant set is closed: CreateAccount, Deposit, Withdraw and Transfer.
type Command interface {
	// PrimaryAccount is the account the command acts upon and the one
	// returned to the caller once the command is accepted.
	PrimaryAccount() AccountID
	isCommand()
}

// CreateAccount opens an account under an id minted by the service layer.
type CreateAccount struct {
	ID AccountID
}

// Deposit adds Amount to account ID.
type Deposit struct {
	ID     AccountID
	Amount Money
}

// Withdraw removes Amount from account ID.
type Withdraw struct {
	ID     AccountID
	Amount Money
}

// Transfer moves Amount from account ID into Payee. It behaves as a Withdraw
// on ID followed by a Deposit on Payee.
type Transfer struct {
	ID     AccountID
	Payee  AccountID
	Amount Money
}

func (c CreateAccount) PrimaryAccount() AccountID { return c.ID }
func (c Deposit) PrimaryAccount() AccountID       { return c.ID }
func (c Withdraw) PrimaryAccount() AccountID      { return c.ID }
func (c Transfer) PrimaryAccount() AccountID      { return c.ID }

func (CreateAccount) isCommand() {}
func (Deposit) isCommand()       {}
func (Withdraw) isCommand()      {}
func (Transfer) isCommand()      {}
