package parser

import (
	"context"
	"log/slog"

	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/httpspan/log"
)

// State is a lifecycle state of a [Session].
type State int

const (
	// StateIdle waits for the first byte of a message.
	StateIdle State = iota
	// StateHeaders is inside a message head.
	StateHeaders
	// StateBody is inside a message body, possibly an empty one.
	StateBody
	// StateUpgraded is terminal: the connection switched protocols
	// and the session does not accept more data.
	StateUpgraded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHeaders:
		return "headers"
	case StateBody:
		return "body"
	case StateUpgraded:
		return "upgraded"
	default:
		return "unknown"
	}
}

const (
	evtBegin       = "begin"
	evtHeadersDone = "headers_done"
	evtUpgrade     = "upgrade"
	evtComplete    = "complete"
	evtReset       = "reset"
)

func (s *Session) initFSM() {
	s.fsm = stateless.NewStateMachineWithExternalStorage(
		func(context.Context) (stateless.State, error) { return s.state, nil },
		func(_ context.Context, st stateless.State) error {
			s.state = st.(State) //nolint:forcetypeassert
			return nil
		},
		stateless.FiringImmediate,
	)

	s.fsm.Configure(StateIdle).
		Permit(evtBegin, StateHeaders).
		Ignore(evtReset)

	s.fsm.Configure(StateHeaders).
		Permit(evtHeadersDone, StateBody).
		Permit(evtUpgrade, StateUpgraded).
		Permit(evtReset, StateIdle)

	s.fsm.Configure(StateBody).
		Permit(evtComplete, StateIdle).
		Permit(evtReset, StateIdle)

	s.fsm.Configure(StateUpgraded).
		OnEntry(s.actUpgraded).
		Ignore(evtComplete).
		Permit(evtReset, StateIdle)
}

func (s *Session) actUpgraded(ctx context.Context, _ ...any) error {
	s.log.LogAttrs(ctx, slog.LevelDebug, "connection upgraded",
		slog.Any("session", s),
		slog.Any("info", log.FmtValue(&s.info, false)),
	)
	return nil
}

// fire moves the lifecycle forward. A refused transition stops the current call.
func (s *Session) fire(evt string) error {
	if err := s.fsm.Fire(evt); err != nil {
		if s.fsmErr == nil {
			s.fsmErr = err
		}
		return err //errtrace:skip
	}
	return nil
}
