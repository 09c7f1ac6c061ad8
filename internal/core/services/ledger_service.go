package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/moneytx/internal/apperrors"
	"github.com/SscSPs/moneytx/internal/core/domain"
	"github.com/SscSPs/moneytx/internal/core/ports"
	portssvc "github.com/SscSPs/moneytx/internal/core/ports/services"
)

// ledgerService is the boundary in front of the command processor. It
// generates account IDs and turns processor replies into results or errors.
type ledgerService struct {
	BaseService
	processor ports.CommandProcessor
	newID     func() domain.AccountID
}

// LedgerServiceOption configures a ledgerService.
type LedgerServiceOption func(*ledgerService)

// WithAccountIDGenerator replaces the generator used by CreateAccount.
func WithAccountIDGenerator(gen func() domain.AccountID) LedgerServiceOption {
	return func(s *ledgerService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewLedgerService creates a ledger service backed by processor.
func NewLedgerService(processor ports.CommandProcessor, opts ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	s := &ledgerService{
		processor: processor,
		newID:     domain.NewAccountID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ledgerService) CreateAccount(ctx context.Context) (*domain.Account, error) {
	id := s.newID()
	acc, err := s.execute(ctx, domain.CreateAccount{ID: id})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Account created", slog.String("account_id", acc.ID.String()))
	return acc, nil
}

func (s *ledgerService) Deposit(ctx context.Context, id domain.AccountID, amount domain.Money) (*domain.Account, error) {
	return s.execute(ctx, domain.Deposit{ID: id, Amount: amount})
}

func (s *ledgerService) Withdraw(ctx context.Context, id domain.AccountID, amount domain.Money) (*domain.Account, error) {
	return s.execute(ctx, domain.Withdraw{ID: id, Amount: amount})
}

func (s *ledgerService) Transfer(ctx context.Context, id, payee domain.AccountID, amount domain.Money) (*domain.Account, error) {
	return s.execute(ctx, domain.Transfer{ID: id, Payee: payee, Amount: amount})
}

func (s *ledgerService) CurrentBalance(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	reply, err := s.processor.GetAccountInfo(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Account lookup failed", slog.String("account_id", id.String()))
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}

	info, ok := reply.(ports.AccountInfo)
	if !ok {
		s.LogError(ctx, apperrors.ErrUnexpectedReply, "Account lookup got an unexpected reply",
			slog.String("reply", fmt.Sprintf("%T", reply)))
		return nil, fmt.Errorf("%w: %T", apperrors.ErrUnexpectedReply, reply)
	}
	if info.Account == nil {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
	}
	return info.Account, nil
}

// execute submits cmd and translates the reply.
func (s *ledgerService) execute(ctx context.Context, cmd domain.Command) (*domain.Account, error) {
	attrs := []any{
		slog.String("command", fmt.Sprintf("%T", cmd)),
		slog.String("account_id", cmd.PrimaryAccount().String()),
	}

	reply, err := s.processor.HandleCommand(ctx, cmd)
	if err != nil {
		if errors.Is(err, apperrors.ErrAskTimeout) {
			s.LogWarn(ctx, "Command processor did not reply in time; outcome unknown",
				append(attrs, slog.String("error", err.Error()))...)
		} else {
			s.LogError(ctx, err, "Command submission failed", attrs...)
		}
		return nil, fmt.Errorf("failed to process %T: %w", cmd, err)
	}

	switch r := reply.(type) {
	case ports.CommandAccepted:
		if r.Account == nil {
			s.LogError(ctx, apperrors.ErrExpectedAccountNotFound, "Account missing right after an accepted command", attrs...)
			return nil, apperrors.ErrExpectedAccountNotFound
		}
		s.LogDebug(ctx, "Command accepted", append(attrs, slog.String("balance", r.Account.Balance.String()))...)
		return r.Account, nil
	case ports.CommandRejected:
		s.LogInfo(ctx, "Command rejected", append(attrs, slog.String("reason", r.Err.Error()))...)
		return nil, r.Err
	default:
		s.LogError(ctx, apperrors.ErrUnexpectedReply, "Command got an unexpected reply",
			append(attrs, slog.String("reply", fmt.Sprintf("%T", reply)))...)
		return nil, fmt.Errorf("%w: %T", apperrors.ErrUnexpectedReply, reply)
	}
}
