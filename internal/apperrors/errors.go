package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
// Every ledger validation error matches it via errors.Is.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAskTimeout indicates the command processor did not reply in time.
// It says nothing about whether the request was applied.
var ErrAskTimeout = errors.New("command processor did not reply in time")

// ErrProcessorStopped indicates the command processor is not accepting requests.
var ErrProcessorStopped = errors.New("command processor is stopped")

// ErrUnexpectedReply indicates the command processor replied with a shape the caller did not expect.
var ErrUnexpectedReply = errors.New("unexpected reply from command processor")

// ErrExpectedAccountNotFound indicates an account vanished right after a successful mutation.
// This points at ledger state corruption, not at a client mistake.
var ErrExpectedAccountNotFound = errors.New("expected account not found (could be state corruption)")
