package ports

import (
	"context"
	"fmt"

	"github.com/SscSPs/moneytx/internal/core/domain"
)

// CommandProcessor is the serialized ledger engine as seen by the service layer.
// Both calls block until the processor replies or the ask times out.
type CommandProcessor interface {
	HandleCommand(ctx context.Context, cmd domain.Command) (Reply, error)
	GetAccountInfo(ctx context.Context, id domain.AccountID) (Reply, error)
}

// Reply is a message the processor answers with. The set is closed.
type Reply interface {
	isReply()
}

// CommandAccepted carries the primary account after the event was applied.
// A nil Account means the ledger lost an account it had just written to.
type CommandAccepted struct {
	Account *domain.Account
}

// CommandRejected carries the validation failure. Nothing was applied.
type CommandRejected struct {
	Err domain.ValidationError
}

// AccountInfo carries the requested account, or nil when it is unknown.
type AccountInfo struct {
	Account *domain.Account
}

func (CommandAccepted) isReply() {}
func (CommandRejected) isReply() {}
func (AccountInfo) isReply()     {}

// ProcessorHealth reports the supervised processor's lifecycle.
type ProcessorHealth interface {
	State() State
	Restarts() int64
}

// State is the lifecycle state of the supervised processor.
type State int32

const (
	StateStarting State = iota
	StateRunning
	StateRestarting
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateRestarting:
		return "restarting"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}
