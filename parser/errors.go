package parser

import (
	"fmt"

	"github.com/ghettovoice/httpspan/internal/errorutil"
	"github.com/ghettovoice/httpspan/internal/grammar"
)

// Error is a string type that implements the error interface.
type Error = errorutil.Error

const (
	// ErrInvalidArgument is returned when an invalid argument is provided.
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrReentrantCall is returned when a consumer calls back into the session
	// while the session is delivering events.
	ErrReentrantCall Error = "reentrant call"
	// ErrUpgraded is returned when data is fed to a session after a protocol upgrade.
	ErrUpgraded Error = "connection upgraded"
)

// Errno is a protocol error code with an HPE_* name.
type Errno = grammar.Errno

// ParseError represents a protocol error found in the input.
//
// The session stays in the error state until [Session.Reinitialize].
type ParseError struct {
	// Consumed is the number of bytes of the failed call consumed before the error.
	Consumed int
	Code     Errno
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s: %s", err.Code, err.Code.Description())
}

func (*ParseError) Grammar() bool { return true }

// ConsumerError wraps an error returned by a [Consumer].
//
// Headers accumulated for the interrupted message are discarded.
type ConsumerError struct {
	// Consumed is the number of bytes of the failed call consumed before the error.
	Consumed int
	Err      error
}

func (err *ConsumerError) Error() string {
	return fmt.Sprintf("consumer error: %v", err.Err)
}

func (err *ConsumerError) Unwrap() error { return err.Err }

// IsGrammarErr reports whether err is caused by malformed input.
func IsGrammarErr(err error) bool { return errorutil.IsGrammarErr(err) }

func newInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}
