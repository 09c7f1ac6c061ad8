package ledger

import (
	"context"

	"github.com/SscSPs/moneytx/internal/core/domain"
	"github.com/SscSPs/moneytx/internal/core/ports"
)

// Request is a message the processor accepts. The set is closed.
type Request interface {
	isRequest()
}

// HandleCommand asks the processor to validate and apply a command.
type HandleCommand struct {
	Cmd domain.Command
}

// GetAccountInfo asks for the current state of one account.
type GetAccountInfo struct {
	ID domain.AccountID
}

func (HandleCommand) isRequest()  {}
func (GetAccountInfo) isRequest() {}

// envelope pairs a request with its caller. reply is buffered so the worker
// never blocks on a caller that already gave up.
type envelope struct {
	ctx   context.Context
	req   Request
	reply chan ports.Reply
}
