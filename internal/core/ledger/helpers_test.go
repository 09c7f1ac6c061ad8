package ledger

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/moneytx/internal/core/domain"
	"github.com/SscSPs/moneytx/internal/core/ports"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startSupervisor runs a supervisor for the duration of the test.
func startSupervisor(t *testing.T, opts ...Option) *Supervisor {
	t.Helper()
	sup := NewSupervisor(discardLogger(), opts...)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- sup.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("supervisor did not stop")
		}
	})
	return sup
}

func mustAccept(t *testing.T, sup *Supervisor, cmd domain.Command) domain.Account {
	t.Helper()
	reply, err := sup.HandleCommand(context.Background(), cmd)
	require.NoError(t, err)
	accepted, ok := reply.(ports.CommandAccepted)
	require.True(t, ok, "expected CommandAccepted, got %T", reply)
	require.NotNil(t, accepted.Account)
	return *accepted.Account
}

func mustReject(t *testing.T, sup *Supervisor, cmd domain.Command) domain.ValidationError {
	t.Helper()
	reply, err := sup.HandleCommand(context.Background(), cmd)
	require.NoError(t, err)
	rejected, ok := reply.(ports.CommandRejected)
	require.True(t, ok, "expected CommandRejected, got %T", reply)
	return rejected.Err
}

func accountInfo(t *testing.T, sup *Supervisor, id domain.AccountID) *domain.Account {
	t.Helper()
	reply, err := sup.GetAccountInfo(context.Background(), id)
	require.NoError(t, err)
	info, ok := reply.(ports.AccountInfo)
	require.True(t, ok, "expected AccountInfo, got %T", reply)
	return info.Account
}

func openAccount(t *testing.T, sup *Supervisor) domain.AccountID {
	t.Helper()
	return mustAccept(t, sup, domain.CreateAccount{ID: domain.NewAccountID()}).ID
}

// poisonApplier panics on deposits of the poison amount.
type poisonApplier struct {
	EventApplier
	poison domain.Money
}

func withPoison(poison domain.Money) Option {
	return WithApplierFactory(func(s *Store) EventApplier {
		return &poisonApplier{EventApplier: NewEventApplier(s), poison: poison}
	})
}

func (p *poisonApplier) Apply(event domain.Event) {
	if d, ok := event.(domain.Deposited); ok && d.Amount.Equal(p.poison) {
		panic("poisoned deposit")
	}
	p.EventApplier.Apply(event)
}

// gateApplier blocks deposits of the gated amount until release is closed.
type gateApplier struct {
	EventApplier
	gated    domain.Money
	entered  chan struct{}
	release  chan struct{}
	enterOne sync.Once
}

func (g *gateApplier) Apply(event domain.Event) {
	if d, ok := event.(domain.Deposited); ok && d.Amount.Equal(g.gated) {
		g.enterOne.Do(func() { close(g.entered) })
		<-g.release
	}
	g.EventApplier.Apply(event)
}
