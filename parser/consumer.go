package parser

import (
	"github.com/ghettovoice/httpspan/header"
	"github.com/ghettovoice/httpspan/internal/grammar"
)

//go:generate go tool mockgen -destination ../internal/testutil/parsermock/consumer.go -package parsermock . Consumer

// MessageType is the kind of messages a [Session] parses.
type MessageType = grammar.Type

const (
	TypeRequest  = grammar.Request
	TypeResponse = grammar.Response
)

// Consumer receives parse events of a [Session].
//
// Slices and buffers passed to the methods are only valid until the method returns.
// A non-nil error stops the current [Session.Execute] call with a [*ConsumerError].
type Consumer interface {
	// OnHeaders receives a batch of header fields flushed before the head is complete.
	// This happens when a message has more fields than [header.TableCap] and for trailers.
	// url is set only on the first batch of a request.
	OnHeaders(fields []header.Field, url string) error
	// OnHeadersComplete is called once per message at the end of the head.
	// Returning skipBody = true tells the session that the message has no body,
	// for instance a response to a HEAD request.
	OnHeadersComplete(info *MessageInfo) (skipBody bool, err error)
	// OnBody receives a part of the message body.
	OnBody(chunk BodyChunk) error
	// OnMessageComplete is called at the end of each message.
	OnMessageComplete() error
}

// MessageInfo describes a message head.
type MessageInfo struct {
	Type MessageType
	// Method is set for requests.
	Method string
	// StatusCode is set for responses.
	StatusCode   int
	VersionMajor int
	VersionMinor int
	KeepAlive    bool
	Upgrade      bool
	// ContentLength is the Content-Length value or -1 when the head has none.
	ContentLength int64
	// MayHaveBody reports whether the head announced a body.
	MayHaveBody bool
	// Flushed reports that headers were already delivered through [Consumer.OnHeaders].
	// In that case URL and Headers are empty.
	Flushed bool
	URL     string
	Headers []header.Field
}

// BodyChunk points at body bytes inside the buffer given to [Session.Execute].
type BodyChunk struct {
	Buf []byte
	Off int
	Len int
}

// Bytes returns the body bytes without copying.
func (c BodyChunk) Bytes() []byte { return c.Buf[c.Off : c.Off+c.Len : c.Off+c.Len] }

// Handlers implements [Consumer] with optional functions. Nil functions are skipped.
type Handlers struct {
	Headers         func(fields []header.Field, url string) error
	HeadersComplete func(info *MessageInfo) (skipBody bool, err error)
	Body            func(chunk BodyChunk) error
	MessageComplete func() error
}

func (h *Handlers) OnHeaders(fields []header.Field, url string) error {
	if h == nil || h.Headers == nil {
		return nil
	}
	return h.Headers(fields, url) //errtrace:skip
}

func (h *Handlers) OnHeadersComplete(info *MessageInfo) (bool, error) {
	if h == nil || h.HeadersComplete == nil {
		return false, nil
	}
	return h.HeadersComplete(info) //errtrace:skip
}

func (h *Handlers) OnBody(chunk BodyChunk) error {
	if h == nil || h.Body == nil {
		return nil
	}
	return h.Body(chunk) //errtrace:skip
}

func (h *Handlers) OnMessageComplete() error {
	if h == nil || h.MessageComplete == nil {
		return nil
	}
	return h.MessageComplete() //errtrace:skip
}
