package domain

// Validate checks cmd against the snapshot and returns the first rule it
// breaks, or nil when the command may proceed. Rules are evaluated in a fixed
// order and short-circuit; errors are never accumulated.
func Validate(s Snapshot, cmd Command) ValidationError {
	switch c := cmd.(type) {
	case CreateAccount:
		// ids are freshly generated, so this only trips on a uuid collision
		if s.Has(c.ID) {
			return &AccountAlreadyExistsError{ID: c.ID}
		}
		return nil
	case Deposit:
		if err := ValidateAccount(s, c.ID, false); err != nil {
			return err
		}
		return ValidateAmount(c.Amount)
	case Withdraw:
		return ValidateSufficientFunds(s, c.ID, c.Amount)
	case Transfer:
		if c.ID == c.Payee {
			return &SelfTransferError{}
		}
		if err := ValidateAccount(s, c.Payee, true); err != nil {
			return err
		}
		return ValidateSufficientFunds(s, c.ID, c.Amount)
	default:
		// unreachable for the closed command set; EventFor reports it
		return nil
	}
}

// ValidateSufficientFunds checks that id exists, amount is positive and the
// balance covers amount, in that order.
func ValidateSufficientFunds(s Snapshot, id AccountID, amount Money) ValidationError {
	if err := ValidateAccount(s, id, false); err != nil {
		return err
	}
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	acc, _ := s.Account(id)
	if !acc.Balance.GreaterThanOrEqual(amount) {
		return &InsufficientFundsError{ID: id, CurrentBalance: acc.Balance}
	}
	return nil
}

// ValidateAccount checks that id exists in the snapshot.
func ValidateAccount(s Snapshot, id AccountID, isPayee bool) ValidationError {
	if s.Has(id) {
		return nil
	}
	return &AccountDoesNotExistError{ID: id, IsPayee: isPayee}
}

// ValidateAmount checks that amount is strictly positive and in range.
func ValidateAmount(amount Money) ValidationError {
	if amount.IsPositive() && amount.InRange() {
		return nil
	}
	return &IllegalAmountError{Amount: amount}
}
