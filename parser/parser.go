// Package parser adapts the incremental HTTP/1.x tokenizer to a stream of message events.
//
// A [Session] is fed with chunks of a connection byte stream through [Session.Execute].
// Header names and values cut by chunk boundaries are reassembled without copying while
// they stay inside one chunk; anything that must survive the call is copied before
// Execute returns, so the caller may reuse its buffer right away.
// Header fields are delivered in batches of at most [header.TableCap].
package parser

//go:generate go tool errtrace -w .

import (
	"context"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/httpspan/header"
	"github.com/ghettovoice/httpspan/internal/grammar"
	"github.com/ghettovoice/httpspan/log"
	"github.com/ghettovoice/httpspan/span"
)

// DefaultMaxHeaderSize is the default limit of a message head size.
const DefaultMaxHeaderSize = grammar.DefaultMaxHeaderSize

// Options are optional settings of a [Session].
type Options struct {
	// MaxHeaderSize limits the size of a message head and of trailers.
	// Zero means [DefaultMaxHeaderSize].
	MaxHeaderSize int
	// Log is a logger for debug events. Nil means [log.Default].
	Log *slog.Logger
}

func (o *Options) maxHeaderSize() int {
	if o == nil || o.MaxHeaderSize <= 0 {
		return DefaultMaxHeaderSize
	}
	return o.MaxHeaderSize
}

func (o *Options) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// Session parses the messages of one connection.
//
// A Session is not safe for concurrent use. Independent sessions share nothing
// and may run in parallel.
type Session struct {
	typ MessageType
	c   Consumer
	log *slog.Logger
	eng *grammar.Parser
	fsm *stateless.StateMachine

	state State

	// current call
	chunk     span.Chunk
	gen       uint64
	base      int
	executing bool

	// current message
	url     span.Accumulator
	tbl     header.Table
	fields  []header.Field
	info    MessageInfo
	flushed bool

	consumerErr error
	fsmErr      error
}

// New creates a session for messages of type typ that delivers events to c.
//
// A nil consumer discards all events. Options are optional and can be nil.
func New(typ MessageType, c Consumer, opts *Options) (*Session, error) {
	if !typ.IsValid() {
		return nil, errtrace.Wrap(newInvalidArgumentError("unknown message type %d", typ))
	}
	if c == nil {
		c = &Handlers{}
	}

	s := &Session{
		typ:    typ,
		c:      c,
		log:    opts.log(),
		eng:    grammar.New(typ),
		fields: make([]header.Field, 0, header.TableCap),
	}
	s.eng.SetMaxHeaderSize(opts.maxHeaderSize())
	s.initFSM()
	return s, nil
}

// Type returns the type of messages the session parses.
func (s *Session) Type() MessageType { return s.typ }

// State returns the lifecycle state of the session.
func (s *Session) State() State { return s.state }

// Execute parses buf[off:off+n] and delivers the events found in it to the consumer.
//
// It returns the number of bytes consumed. The bytes are not retained after Execute returns.
// Errors:
//   - [ErrReentrantCall] when called from a consumer method;
//   - [ErrInvalidArgument] when buf is nil or the range is out of its bounds;
//   - [ErrUpgraded] after the session switched protocols;
//   - [*ParseError] on malformed input;
//   - [*ConsumerError] when the consumer failed.
//
// After an upgrade the returned count stops at the end of the upgraded message head,
// the rest of buf belongs to the new protocol.
func (s *Session) Execute(buf []byte, off, n int) (int, error) {
	if s.executing {
		return 0, errtrace.Wrap(ErrReentrantCall)
	}
	if buf == nil {
		return 0, errtrace.Wrap(newInvalidArgumentError("nil buffer"))
	}
	if off < 0 || off > len(buf) {
		return 0, errtrace.Wrap(newInvalidArgumentError("offset %d out of range [0, %d]", off, len(buf)))
	}
	if n < 0 || n > len(buf)-off {
		return 0, errtrace.Wrap(newInvalidArgumentError("length %d out of range [0, %d]", n, len(buf)-off))
	}
	if s.state == StateUpgraded {
		return 0, errtrace.Wrap(ErrUpgraded)
	}
	if s.consumerErr != nil {
		return 0, errtrace.Wrap(&ConsumerError{Err: s.consumerErr})
	}
	if n == 0 {
		return 0, nil
	}

	s.begin(buf, off)
	defer s.end()

	data := buf[off : off+n]
	nparsed := s.eng.Execute((*engineHooks)(s), data)
	return nparsed, errtrace.Wrap(s.result(data, nparsed))
}

// Finish signals the end of the stream.
//
// A response whose body is delimited by the connection close is completed here.
// A stream cut in the middle of a message gives a [*ParseError] with HPE_INVALID_EOF_STATE.
// Errors report zero bytes consumed.
func (s *Session) Finish() error {
	if s.executing {
		return errtrace.Wrap(ErrReentrantCall)
	}
	if s.consumerErr != nil {
		return errtrace.Wrap(&ConsumerError{Err: s.consumerErr})
	}

	s.begin(nil, 0)
	defer s.end()

	s.eng.Finish((*engineHooks)(s))
	return errtrace.Wrap(s.result(nil, 0))
}

// Reinitialize prepares the session for a new connection with messages of type typ.
// Storage is kept for reuse.
func (s *Session) Reinitialize(typ MessageType) error {
	if s.executing {
		return errtrace.Wrap(ErrReentrantCall)
	}
	if !typ.IsValid() {
		return errtrace.Wrap(newInvalidArgumentError("unknown message type %d", typ))
	}

	s.typ = typ
	s.eng.Reset(typ)
	s.discard()
	s.consumerErr, s.fsmErr = nil, nil
	if err := s.fsm.Fire(evtReset); err != nil {
		return errtrace.Wrap(err)
	}
	return nil
}

// LogValue implements [slog.LogValuer].
func (s *Session) LogValue() slog.Value {
	if s == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("type", s.typ.String()),
		slog.String("state", s.state.String()),
	)
}

func (s *Session) begin(buf []byte, off int) {
	s.executing = true
	s.gen++
	s.chunk = span.Chunk{Data: buf, Gen: s.gen}
	s.base = off
}

// end runs on every exit path of a call, panics included:
// nothing may keep pointing into the caller's buffer.
func (s *Session) end() {
	s.url.Promote()
	s.tbl.Promote()
	s.chunk = span.Chunk{}
	s.executing = false
}

// nearLen limits the logged input starting at a parse error.
const nearLen = 16

// result turns the outcome of a tokenizer call over data into an error.
func (s *Session) result(data []byte, nparsed int) error {
	ctx := context.Background()
	switch {
	case s.consumerErr != nil:
		s.discard()
		s.log.LogAttrs(ctx, slog.LevelDebug, "consumer failed",
			slog.Any("session", s),
			slog.Int("consumed", nparsed),
			slog.Any("error", s.consumerErr),
		)
		return &ConsumerError{Consumed: nparsed, Err: s.consumerErr} //errtrace:skip
	case s.fsmErr != nil:
		s.discard()
		return s.fsmErr //errtrace:skip
	}

	if code := s.eng.Errno(); code != grammar.OK {
		s.discard()
		s.log.LogAttrs(ctx, slog.LevelDebug, "parse failed",
			slog.Any("session", s),
			slog.Int("consumed", nparsed),
			slog.String("code", code.String()),
			slog.Any("near", log.StringValue(data[nparsed:min(nparsed+nearLen, len(data))])),
		)
		return &ParseError{Consumed: nparsed, Code: code} //errtrace:skip
	}
	return nil
}

// discard drops what was accumulated for the current message.
func (s *Session) discard() {
	s.tbl.Reset()
	s.url.Reset()
	s.flushed = false
}

// flush delivers the fields accumulated so far and empties the table.
// A consumer failure is recorded and reported by the next callback.
func (s *Session) flush() {
	s.fields = s.tbl.AppendFields(s.fields[:0])
	var url string
	if s.typ == TypeRequest && !s.flushed {
		url = s.url.String()
	}
	s.flushed = true

	s.log.LogAttrs(context.Background(), slog.LevelDebug, "headers flushed",
		slog.Any("session", s),
		slog.Int("count", len(s.fields)),
	)

	if err := s.c.OnHeaders(s.fields, url); err != nil && s.consumerErr == nil {
		s.consumerErr = err
	}
	s.tbl.Reset()
}

func (s *Session) buildInfo() *MessageInfo {
	major, minor := s.eng.Version()
	info := &s.info
	*info = MessageInfo{
		Type:          s.typ,
		VersionMajor:  major,
		VersionMinor:  minor,
		KeepAlive:     s.eng.ShouldKeepAlive(),
		Upgrade:       s.eng.Upgrade(),
		ContentLength: s.eng.ContentLength(),
		MayHaveBody:   s.eng.BodyExpected(),
		Flushed:       s.flushed,
	}
	if s.typ == TypeRequest {
		info.Method = s.eng.Method().String()
	} else {
		info.StatusCode = s.eng.StatusCode()
	}
	if !s.flushed {
		s.fields = s.tbl.AppendFields(s.fields[:0])
		info.Headers = s.fields
		if s.typ == TypeRequest {
			info.URL = s.url.String()
		}
	}
	return info
}
