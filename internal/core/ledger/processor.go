package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/SscSPs/moneytx/internal/core/domain"
	"github.com/SscSPs/moneytx/internal/core/ports"
)

// CrashError reports a panic that ended a processor incarnation.
type CrashError struct {
	Request Request
	Value   any
	Stack   []byte
}

func (e *CrashError) Error() string {
	return fmt.Sprintf("ledger processor crashed while handling %T: %v", e.Request, e.Value)
}

// Processor is one incarnation of the single writer. It owns a fresh Store
// and handles requests strictly one at a time on the goroutine calling run.
type Processor struct {
	store   *Store
	applier EventApplier
	logger  *slog.Logger
}

func newProcessor(logger *slog.Logger, newApplier func(*Store) EventApplier) *Processor {
	store := NewStore()
	return &Processor{
		store:   store,
		applier: newApplier(store),
		logger:  logger,
	}
}

// run consumes the mailbox until ctx is done. It returns nil on a clean stop
// and a *CrashError when handling a request panicked; the crashing request
// gets no reply.
func (p *Processor) run(ctx context.Context, mailbox <-chan envelope) (err error) {
	var inFlight Request
	defer func() {
		if r := recover(); r != nil {
			err = &CrashError{Request: inFlight, Value: r, Stack: debug.Stack()}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case env := <-mailbox:
			if env.ctx.Err() != nil {
				p.logger.Debug("Skipping request abandoned by caller", slog.String("request", fmt.Sprintf("%T", env.req)))
				continue
			}
			inFlight = env.req
			env.reply <- p.handle(env.req)
			inFlight = nil
		}
	}
}

func (p *Processor) handle(req Request) ports.Reply {
	switch r := req.(type) {
	case HandleCommand:
		return p.processCommand(r.Cmd)
	case GetAccountInfo:
		return ports.AccountInfo{Account: p.lookup(r.ID)}
	default:
		panic(fmt.Sprintf("ledger: unknown request type %T", req))
	}
}

// processCommand validates, derives the event, applies it and reports the
// primary account as it is now.
func (p *Processor) processCommand(cmd domain.Command) ports.Reply {
	if verr := domain.Validate(p.store.Snapshot(), cmd); verr != nil {
		return ports.CommandRejected{Err: verr}
	}
	event, err := domain.EventFor(cmd)
	if err != nil {
		panic(err)
	}
	p.applier.Apply(event)
	return ports.CommandAccepted{Account: p.lookup(cmd.PrimaryAccount())}
}

func (p *Processor) lookup(id domain.AccountID) *domain.Account {
	acc, ok := p.store.Account(id)
	if !ok {
		return nil
	}
	return &acc
}
