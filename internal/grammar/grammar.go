// Package grammar implements the byte-level HTTP/1.x tokenizer that drives span callbacks.
//
// A [Parser] walks the bytes passed to [Parser.Execute] and reports the URL, header names,
// header values and body as (offset, length) pairs relative to that slice.
// A token cut by the end of the slice is reported in fragments, one per call.
// The [Handler] is passed on every call, so a Parser carries no ambient state.
package grammar

// Type is the kind of messages a [Parser] expects.
type Type uint8

const (
	Request Type = iota + 1
	Response
)

func (t Type) String() string {
	switch t {
	case Request:
		return "request"
	case Response:
		return "response"
	default:
		return "unknown"
	}
}

// IsValid reports whether t is [Request] or [Response].
func (t Type) IsValid() bool { return t == Request || t == Response }

// Handler receives tokenizer events.
//
// Data callbacks get offsets into the slice of the current [Parser.Execute] call.
// An empty header value is reported with a zero length.
// Returning a non-nil error stops the parser and sets the matching HPE_CB_* code.
type Handler interface {
	OnMessageBegin() error
	OnURL(off, n int) error
	OnHeaderField(off, n int) error
	OnHeaderValue(off, n int) error
	// OnHeadersComplete returns skipBody = true to treat the message as having no body,
	// for instance a response to a HEAD request.
	OnHeadersComplete() (skipBody bool, err error)
	OnBody(off, n int) error
	OnMessageComplete() error
}

// DefaultMaxHeaderSize limits the bytes of a message head, trailers included.
const DefaultMaxHeaderSize = 80 * 1024

type flags uint16

const (
	flagChunked flags = 1 << iota
	flagConnKeepAlive
	flagConnClose
	flagConnUpgrade
	flagUpgrade
	flagTrailing
	flagSkipBody
	flagUpgraded
)

type hdrKind uint8

const (
	hdrGeneral hdrKind = iota
	hdrConnection
	hdrContentLength
	hdrTransferEncoding
	hdrUpgrade
)

// Parser is an incremental HTTP/1.x tokenizer.
type Parser struct {
	typ           Type
	state         state
	errno         Errno
	flags         flags
	nread         int
	maxHeaderSize int

	index         int
	method        Method
	methodBuf     [maxMethodLen]byte
	statusCode    int
	major, minor  int
	contentLength int64
	remaining     int64

	hdr       hdrKind
	nameBuf   [len("transfer-encoding")]byte
	nameLen   int
	tok       [16]byte
	tokLen    int
	tokSpill  bool
	clDigits  bool
	clTrailWS bool
}

// New creates a parser for messages of type typ.
func New(typ Type) *Parser {
	p := &Parser{maxHeaderSize: DefaultMaxHeaderSize}
	p.Reset(typ)
	return p
}

// Reset prepares p for a new stream of messages of type typ and clears any error.
func (p *Parser) Reset(typ Type) {
	p.typ = typ
	p.errno = OK
	p.state = startState(typ)
	p.beginMessage()
}

// SetMaxHeaderSize changes the head size limit. Non-positive values restore [DefaultMaxHeaderSize].
func (p *Parser) SetMaxHeaderSize(n int) {
	if n <= 0 {
		n = DefaultMaxHeaderSize
	}
	p.maxHeaderSize = n
}

func (p *Parser) beginMessage() {
	p.flags = 0
	p.nread = 0
	p.index = 0
	p.method = MethodUnknown
	p.statusCode = 0
	p.major, p.minor = 0, 0
	p.contentLength = -1
	p.remaining = 0
	p.hdr = hdrGeneral
}

func (p *Parser) Type() Type { return p.typ }

// Errno returns the error that stopped the parser, or [OK].
// The error is sticky until [Parser.Reset].
func (p *Parser) Errno() Errno { return p.errno }

// Method returns the request method of the current message.
func (p *Parser) Method() Method { return p.method }

// StatusCode returns the response status code of the current message.
func (p *Parser) StatusCode() int { return p.statusCode }

// Version returns the HTTP version of the current message.
func (p *Parser) Version() (major, minor int) { return p.major, p.minor }

// ContentLength returns the Content-Length of the current message or -1 if absent.
func (p *Parser) ContentLength() int64 { return p.contentLength }

func (p *Parser) Chunked() bool { return p.flags&flagChunked != 0 }

// Upgrade reports whether the current message switches protocols.
// It is known once the head is complete.
func (p *Parser) Upgrade() bool { return p.flags&flagUpgraded != 0 }

// Upgraded reports whether the parser stopped after an upgrade.
// The bytes following the upgraded head are not HTTP and are left to the caller.
func (p *Parser) Upgraded() bool { return p.state == sUpgraded }

// BodyExpected reports whether the head announced a body: a positive Content-Length,
// chunked coding or a response delimited by the end of the stream.
func (p *Parser) BodyExpected() bool {
	return p.flags&flagChunked != 0 || p.contentLength > 0 || p.needsEOF()
}

// ShouldKeepAlive reports whether the connection may carry another message.
//
// HTTP/1.1 keeps connections alive unless "Connection: close" is given,
// older versions need "Connection: keep-alive". A body delimited by the end of the
// stream always closes the connection.
func (p *Parser) ShouldKeepAlive() bool {
	if p.major > 0 && p.minor > 0 {
		if p.flags&flagConnClose != 0 {
			return false
		}
	} else if p.flags&flagConnKeepAlive == 0 {
		return false
	}
	return !p.needsEOF()
}

func (p *Parser) needsEOF() bool {
	if p.typ == Request {
		return false
	}
	if p.statusCode/100 == 1 || p.statusCode == 204 || p.statusCode == 304 || p.flags&flagSkipBody != 0 {
		return false
	}
	if p.flags&flagChunked != 0 || p.contentLength >= 0 {
		return false
	}
	return true
}
