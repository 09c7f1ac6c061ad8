package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/SscSPs/moneytx/internal/apperrors"
	"github.com/SscSPs/moneytx/internal/core/domain"
	"github.com/SscSPs/moneytx/internal/core/ports"
	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultAskTimeout   = 100 * time.Millisecond
	DefaultMailboxSize  = 1024
	DefaultMinBackoff   = 1 * time.Second
	DefaultMaxBackoff   = 10 * time.Second
	DefaultRandomFactor = 0.2
)

var (
	_ ports.CommandProcessor = (*Supervisor)(nil)
	_ ports.ProcessorHealth  = (*Supervisor)(nil)
)

// ErrAlreadyRunning is returned by Run when the supervisor was started before.
var ErrAlreadyRunning = errors.New("ledger: supervisor already started")

// Supervisor runs the ledger processor and restarts it with exponential
// backoff when it crashes. Every restart begins with an empty ledger: there
// is no durable state to recover from.
//
// The mailbox belongs to the supervisor and outlives each incarnation, so
// requests keep their global arrival order across restarts.
type Supervisor struct {
	logger       *slog.Logger
	mailbox      chan envelope
	askTimeout   time.Duration
	minBackoff   time.Duration
	maxBackoff   time.Duration
	randomFactor float64
	newApplier   func(*Store) EventApplier

	state    atomic.Int32
	restarts atomic.Int64
	started  atomic.Bool
	done     chan struct{}
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithAskTimeout bounds how long HandleCommand and GetAccountInfo wait for a reply.
func WithAskTimeout(d time.Duration) Option {
	return func(s *Supervisor) {
		if d > 0 {
			s.askTimeout = d
		}
	}
}

// WithMailboxSize sets the capacity of the request queue.
func WithMailboxSize(n int) Option {
	return func(s *Supervisor) {
		if n > 0 {
			s.mailbox = make(chan envelope, n)
		}
	}
}

// WithBackoff sets the restart delay curve: min doubling up to max, each
// delay randomized by ±randomFactor.
func WithBackoff(minBackoff, maxBackoff time.Duration, randomFactor float64) Option {
	return func(s *Supervisor) {
		if minBackoff > 0 {
			s.minBackoff = minBackoff
		}
		if maxBackoff >= s.minBackoff {
			s.maxBackoff = maxBackoff
		}
		if randomFactor >= 0 && randomFactor < 1 {
			s.randomFactor = randomFactor
		}
	}
}

// WithApplierFactory replaces the event applier built for each incarnation.
func WithApplierFactory(f func(*Store) EventApplier) Option {
	return func(s *Supervisor) {
		if f != nil {
			s.newApplier = f
		}
	}
}

// NewSupervisor builds a supervisor. Call Run to start processing.
func NewSupervisor(logger *slog.Logger, opts ...Option) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Supervisor{
		logger:       logger.With(slog.String("component", "ledger")),
		mailbox:      make(chan envelope, DefaultMailboxSize),
		askTimeout:   DefaultAskTimeout,
		minBackoff:   DefaultMinBackoff,
		maxBackoff:   DefaultMaxBackoff,
		randomFactor: DefaultRandomFactor,
		newApplier:   NewEventApplier,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxBackoff < s.minBackoff {
		s.maxBackoff = s.minBackoff
	}
	return s
}

// Run processes requests until ctx is cancelled, restarting the processor
// after each crash. It returns nil on a graceful stop.
func (s *Supervisor) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer func() {
		s.state.Store(int32(ports.StateStopped))
		close(s.done)
	}()

	b := s.newBackOff()
	for {
		p := newProcessor(s.logger, s.newApplier)
		s.state.Store(int32(ports.StateRunning))
		startedAt := time.Now()
		s.logger.Info("Ledger processor started", slog.Int64("restarts", s.restarts.Load()))

		err := p.run(ctx, s.mailbox)
		if err == nil || ctx.Err() != nil {
			s.logger.Info("Ledger processor stopped")
			return nil
		}

		var crash *CrashError
		if errors.As(err, &crash) {
			s.logger.Error("Ledger processor crashed, ledger state discarded",
				slog.String("error", err.Error()),
				slog.String("stack", string(crash.Stack)))
		} else {
			s.logger.Error("Ledger processor failed", slog.String("error", err.Error()))
		}

		// a processor that stayed up for a while starts the curve over
		if time.Since(startedAt) >= s.minBackoff {
			b.Reset()
		}
		delay := b.NextBackOff()
		s.state.Store(int32(ports.StateRestarting))
		restarts := s.restarts.Add(1)
		s.logger.Warn("Restarting ledger processor",
			slog.Duration("backoff", delay),
			slog.Int64("restarts", restarts))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Ledger processor stopped during backoff")
			return nil
		case <-timer.C:
		}
	}
}

func (s *Supervisor) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.minBackoff
	b.MaxInterval = s.maxBackoff
	b.Multiplier = 2
	b.RandomizationFactor = s.randomFactor
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// State reports the current lifecycle state.
func (s *Supervisor) State() ports.State { return ports.State(s.state.Load()) }

// Restarts reports how many times the processor was restarted after a crash.
func (s *Supervisor) Restarts() int64 { return s.restarts.Load() }

// Done is closed once Run has returned.
func (s *Supervisor) Done() <-chan struct{} { return s.done }

// HandleCommand submits a command and waits for the processor's verdict.
func (s *Supervisor) HandleCommand(ctx context.Context, cmd domain.Command) (ports.Reply, error) {
	return s.ask(ctx, HandleCommand{Cmd: cmd})
}

// GetAccountInfo reads one account through the processor.
func (s *Supervisor) GetAccountInfo(ctx context.Context, id domain.AccountID) (ports.Reply, error) {
	return s.ask(ctx, GetAccountInfo{ID: id})
}

// ask sends req and waits at most askTimeout for the reply. A timeout says
// nothing about whether req was applied.
func (s *Supervisor) ask(ctx context.Context, req Request) (ports.Reply, error) {
	select {
	case <-s.done:
		return nil, apperrors.ErrProcessorStopped
	default:
	}

	ctx, cancel := context.WithTimeout(ctx, s.askTimeout)
	defer cancel()

	env := envelope{ctx: ctx, req: req, reply: make(chan ports.Reply, 1)}
	select {
	case s.mailbox <- env:
	case <-s.done:
		return nil, apperrors.ErrProcessorStopped
	case <-ctx.Done():
		return nil, askError(ctx)
	}

	select {
	case reply := <-env.reply:
		return reply, nil
	case <-s.done:
		select {
		case reply := <-env.reply:
			return reply, nil
		default:
			return nil, apperrors.ErrProcessorStopped
		}
	case <-ctx.Done():
		return nil, askError(ctx)
	}
}

func askError(ctx context.Context) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", apperrors.ErrAskTimeout, err)
	}
	return err
}
