package grammar

import "math"

type state uint8

const (
	sDead state = iota
	sStartReq
	sStartRes

	// head states, counted against the header size limit
	sReqMethod
	sReqSpacesBeforeURL
	sReqURL
	sHTTPConst
	sVersionMajor
	sVersionDot
	sVersionMinor
	sVersionEnd
	sResStatus
	sResReason
	sLineAlmostDone
	sHeaderFieldStart
	sHeaderField
	sHeaderValueDiscardWS
	sHeaderValue
	sHeaderAlmostDone
	sHeadersAlmostDone

	sBodyIdentity
	sBodyIdentityEOF
	sChunkSizeStart
	sChunkSize
	sChunkParams
	sChunkSizeAlmostDone
	sChunkData
	sChunkDataAlmostDone
	sChunkDataDone

	sUpgraded
)

func (s state) inHead() bool { return s >= sReqMethod && s <= sHeadersAlmostDone }

func startState(typ Type) state {
	if typ == Response {
		return sStartRes
	}
	return sStartReq
}

const httpConst = "HTTP/"

// Execute parses data and calls h for every event found in it.
//
// It returns the number of bytes consumed. A result smaller than len(data) means either
// an error, see [Parser.Errno], or an upgrade, see [Parser.Upgraded].
// Tokens still open at the end of data are reported up to the last byte
// and continued on the next call.
func (p *Parser) Execute(h Handler, data []byte) int {
	if p.errno != OK || p.state == sUpgraded || len(data) == 0 {
		return 0
	}

	urlMark, fieldMark, valueMark := -1, -1, -1
	switch p.state {
	case sReqURL:
		urlMark = 0
	case sHeaderField:
		fieldMark = 0
	case sHeaderValue:
		valueMark = 0
	}

	for i := 0; i < len(data); i++ {
		c := data[i]

		if p.state.inHead() {
			p.nread++
			if p.nread > p.maxHeaderSize {
				return p.fail(ErrHeaderOverflow, i)
			}
		}

		switch p.state {
		case sDead:
			if c == cr || c == lf {
				continue
			}
			return p.fail(ErrClosedConnection, i)

		case sStartReq, sStartRes:
			if c == cr || c == lf {
				continue
			}
			p.beginMessage()
			if err := h.OnMessageBegin(); err != nil {
				return p.fail(ErrCBMessageBegin, i)
			}
			if p.typ == Response {
				if c != httpConst[0] {
					return p.fail(ErrInvalidConstant, i)
				}
				p.index = 1
				p.state = sHTTPConst
			} else {
				if !isMethodChar(c) {
					return p.fail(ErrInvalidMethod, i)
				}
				p.methodBuf[0] = c
				p.index = 1
				p.state = sReqMethod
			}
			p.nread++

		case sReqMethod:
			switch {
			case c == ' ':
				p.method = LookupMethod(p.methodBuf[:p.index])
				if p.method == MethodUnknown {
					return p.fail(ErrInvalidMethod, i)
				}
				p.state = sReqSpacesBeforeURL
			case isMethodChar(c) && p.index < maxMethodLen:
				p.methodBuf[p.index] = c
				p.index++
			default:
				return p.fail(ErrInvalidMethod, i)
			}

		case sReqSpacesBeforeURL:
			switch {
			case c == ' ':
			case isURLChar(c):
				urlMark = i
				p.state = sReqURL
			default:
				return p.fail(ErrInvalidURL, i)
			}

		case sReqURL:
			switch {
			case c == ' ':
				if i > urlMark {
					if err := h.OnURL(urlMark, i-urlMark); err != nil {
						return p.fail(ErrCBURL, i)
					}
				}
				urlMark = -1
				p.index = 0
				p.state = sHTTPConst
			case c == cr || c == lf:
				return p.fail(ErrInvalidVersion, i)
			case !isURLChar(c):
				return p.fail(ErrInvalidURL, i)
			}

		case sHTTPConst:
			if c != httpConst[p.index] {
				return p.fail(ErrInvalidConstant, i)
			}
			p.index++
			if p.index == len(httpConst) {
				p.state = sVersionMajor
			}

		case sVersionMajor:
			if !isDigit(c) {
				return p.fail(ErrInvalidVersion, i)
			}
			p.major = int(c - '0')
			p.state = sVersionDot

		case sVersionDot:
			if c != '.' {
				return p.fail(ErrInvalidVersion, i)
			}
			p.state = sVersionMinor

		case sVersionMinor:
			if !isDigit(c) {
				return p.fail(ErrInvalidVersion, i)
			}
			p.minor = int(c - '0')
			p.state = sVersionEnd

		case sVersionEnd:
			switch {
			case p.typ == Response && c == ' ':
				p.index = 0
				p.state = sResStatus
			case p.typ == Request && c == cr:
				p.state = sLineAlmostDone
			case p.typ == Request && c == lf:
				p.state = sHeaderFieldStart
			default:
				return p.fail(ErrInvalidVersion, i)
			}

		case sResStatus:
			if p.index < 3 {
				if !isDigit(c) {
					return p.fail(ErrInvalidStatus, i)
				}
				p.statusCode = p.statusCode*10 + int(c-'0')
				p.index++
				continue
			}
			if p.statusCode < 100 {
				return p.fail(ErrInvalidStatus, i)
			}
			switch c {
			case ' ':
				p.state = sResReason
			case cr:
				p.state = sLineAlmostDone
			case lf:
				p.state = sHeaderFieldStart
			default:
				return p.fail(ErrInvalidStatus, i)
			}

		case sResReason:
			switch c {
			case cr:
				p.state = sLineAlmostDone
			case lf:
				p.state = sHeaderFieldStart
			}

		case sLineAlmostDone, sHeaderAlmostDone:
			if c != lf {
				return p.fail(ErrLFExpected, i)
			}
			p.state = sHeaderFieldStart

		case sHeaderFieldStart:
			switch {
			case c == cr:
				p.state = sHeadersAlmostDone
			case c == lf:
				if n, stop := p.headersDone(h, i); stop {
					return n
				}
			case IsTokenChar(c):
				fieldMark = i
				p.nameLen = 0
				p.nameByte(c)
				p.state = sHeaderField
			default:
				return p.fail(ErrInvalidHeaderToken, i)
			}

		case sHeaderField:
			switch {
			case IsTokenChar(c):
				p.nameByte(c)
			case c == ':':
				if i > fieldMark {
					if err := h.OnHeaderField(fieldMark, i-fieldMark); err != nil {
						return p.fail(ErrCBHeaderField, i)
					}
				}
				fieldMark = -1
				p.beginValue()
				p.state = sHeaderValueDiscardWS
			default:
				return p.fail(ErrInvalidHeaderToken, i)
			}

		case sHeaderValueDiscardWS:
			switch {
			case c == ' ' || c == '\t':
			case c == cr || c == lf:
				if err := h.OnHeaderValue(i, 0); err != nil {
					return p.fail(ErrCBHeaderValue, i)
				}
				if e := p.endValue(); e != OK {
					return p.fail(e, i)
				}
				p.state = sHeaderAlmostDone
				if c == lf {
					p.state = sHeaderFieldStart
				}
			case isValueChar(c):
				valueMark = i
				if e := p.valueByte(c); e != OK {
					return p.fail(e, i)
				}
				p.state = sHeaderValue
			default:
				return p.fail(ErrInvalidHeaderToken, i)
			}

		case sHeaderValue:
			switch {
			case c == cr || c == lf:
				if i > valueMark {
					if err := h.OnHeaderValue(valueMark, i-valueMark); err != nil {
						return p.fail(ErrCBHeaderValue, i)
					}
				}
				valueMark = -1
				if e := p.endValue(); e != OK {
					return p.fail(e, i)
				}
				p.state = sHeaderAlmostDone
				if c == lf {
					p.state = sHeaderFieldStart
				}
			case isValueChar(c):
				if e := p.valueByte(c); e != OK {
					return p.fail(e, i)
				}
			default:
				return p.fail(ErrInvalidHeaderToken, i)
			}

		case sHeadersAlmostDone:
			if c != lf {
				return p.fail(ErrLFExpected, i)
			}
			if n, stop := p.headersDone(h, i); stop {
				return n
			}

		case sBodyIdentity:
			n := min(p.remaining, int64(len(data)-i))
			if err := h.OnBody(i, int(n)); err != nil {
				return p.fail(ErrCBBody, i)
			}
			p.remaining -= n
			i += int(n) - 1
			if p.remaining == 0 && !p.messageDone(h) {
				return i
			}

		case sBodyIdentityEOF:
			if err := h.OnBody(i, len(data)-i); err != nil {
				return p.fail(ErrCBBody, i)
			}
			i = len(data) - 1

		case sChunkSizeStart:
			v := unhex(c)
			if v < 0 {
				return p.fail(ErrInvalidChunkSize, i)
			}
			p.remaining = v
			p.state = sChunkSize

		case sChunkSize:
			switch {
			case c == cr:
				p.state = sChunkSizeAlmostDone
			case c == ';' || c == ' ' || c == '\t':
				p.state = sChunkParams
			default:
				v := unhex(c)
				if v < 0 || p.remaining > (math.MaxInt64-v)/16 {
					return p.fail(ErrInvalidChunkSize, i)
				}
				p.remaining = p.remaining*16 + v
			}

		case sChunkParams:
			if c == cr {
				p.state = sChunkSizeAlmostDone
			}

		case sChunkSizeAlmostDone:
			if c != lf {
				return p.fail(ErrLFExpected, i)
			}
			if p.remaining == 0 {
				p.flags |= flagTrailing
				p.nread = 0
				p.state = sHeaderFieldStart
			} else {
				p.state = sChunkData
			}

		case sChunkData:
			n := min(p.remaining, int64(len(data)-i))
			if err := h.OnBody(i, int(n)); err != nil {
				return p.fail(ErrCBBody, i)
			}
			p.remaining -= n
			i += int(n) - 1
			if p.remaining == 0 {
				p.state = sChunkDataAlmostDone
			}

		case sChunkDataAlmostDone:
			if c != cr {
				return p.fail(ErrStrict, i)
			}
			p.state = sChunkDataDone

		case sChunkDataDone:
			if c != lf {
				return p.fail(ErrLFExpected, i)
			}
			p.state = sChunkSizeStart

		case sUpgraded:
			return i

		default:
			return p.fail(ErrInvalidInternalState, i)
		}
	}

	// report tokens cut by the end of data
	switch {
	case urlMark >= 0 && p.state == sReqURL && urlMark < len(data):
		if err := h.OnURL(urlMark, len(data)-urlMark); err != nil {
			return p.fail(ErrCBURL, len(data))
		}
	case fieldMark >= 0 && p.state == sHeaderField && fieldMark < len(data):
		if err := h.OnHeaderField(fieldMark, len(data)-fieldMark); err != nil {
			return p.fail(ErrCBHeaderField, len(data))
		}
	case valueMark >= 0 && p.state == sHeaderValue && valueMark < len(data):
		if err := h.OnHeaderValue(valueMark, len(data)-valueMark); err != nil {
			return p.fail(ErrCBHeaderValue, len(data))
		}
	}
	return len(data)
}

// Finish signals the end of the stream.
//
// A response whose body runs until the connection closes is completed here.
// Ending the stream in the middle of a message gives [ErrInvalidEOFState].
func (p *Parser) Finish(h Handler) Errno {
	if p.errno != OK {
		return p.errno
	}
	switch p.state {
	case sDead, sStartReq, sStartRes, sUpgraded:
		return OK
	case sBodyIdentityEOF:
		if !p.messageDone(h) {
			return p.errno
		}
		p.state = sDead
		return OK
	default:
		p.errno = ErrInvalidEOFState
		return p.errno
	}
}

func (p *Parser) fail(e Errno, i int) int {
	p.errno = e
	return i
}

// headersDone handles the empty line after the head or the trailers.
// It reports stop = true when Execute must return n.
func (p *Parser) headersDone(h Handler, i int) (n int, stop bool) {
	p.nread = 0
	if p.flags&flagTrailing != 0 {
		if !p.messageDone(h) {
			return i, true
		}
		return 0, false
	}

	if p.typ == Request {
		if (p.flags&flagUpgrade != 0 && p.flags&flagConnUpgrade != 0) || p.method == MethodConnect {
			p.flags |= flagUpgraded
		}
	} else if p.statusCode == 101 {
		p.flags |= flagUpgraded
	}

	skip, err := h.OnHeadersComplete()
	if err != nil {
		return p.fail(ErrCBHeadersComplete, i), true
	}
	if skip {
		p.flags |= flagSkipBody
	}

	switch {
	case p.flags&flagUpgraded != 0:
		if err := h.OnMessageComplete(); err != nil {
			return p.fail(ErrCBMessageComplete, i), true
		}
		p.state = sUpgraded
		return i + 1, true
	case p.flags&flagSkipBody != 0:
		if !p.messageDone(h) {
			return i, true
		}
	case p.flags&flagChunked != 0:
		p.state = sChunkSizeStart
	case p.contentLength > 0:
		p.remaining = p.contentLength
		p.state = sBodyIdentity
	case p.contentLength == 0:
		if !p.messageDone(h) {
			return i, true
		}
	case p.needsEOF():
		p.state = sBodyIdentityEOF
	default:
		if !p.messageDone(h) {
			return i, true
		}
	}
	return 0, false
}

// messageDone completes the current message and picks the state for the next one.
// It reports false when the handler failed.
func (p *Parser) messageDone(h Handler) bool {
	keepAlive := p.ShouldKeepAlive()
	if err := h.OnMessageComplete(); err != nil {
		p.errno = ErrCBMessageComplete
		return false
	}
	if keepAlive {
		p.state = startState(p.typ)
	} else {
		p.state = sDead
	}
	return true
}

func (p *Parser) nameByte(c byte) {
	if p.nameLen < len(p.nameBuf) {
		p.nameBuf[p.nameLen] = lower(c)
	}
	p.nameLen++
}

// beginValue classifies the header name seen so far and prepares value inspection.
func (p *Parser) beginValue() {
	p.hdr = hdrGeneral
	p.tokLen, p.tokSpill = 0, false
	if p.flags&flagTrailing != 0 || p.nameLen > len(p.nameBuf) {
		return
	}
	switch string(p.nameBuf[:p.nameLen]) {
	case "connection":
		p.hdr = hdrConnection
	case "content-length":
		p.hdr = hdrContentLength
		p.contentLength = 0
		p.clDigits, p.clTrailWS = false, false
	case "transfer-encoding":
		p.hdr = hdrTransferEncoding
		p.flags &^= flagChunked
	case "upgrade":
		p.hdr = hdrUpgrade
		p.flags |= flagUpgrade
	}
}

func (p *Parser) valueByte(c byte) Errno {
	switch p.hdr {
	case hdrContentLength:
		switch {
		case isDigit(c):
			if p.clTrailWS || p.contentLength > (math.MaxInt64-9)/10 {
				return ErrInvalidContentLength
			}
			p.contentLength = p.contentLength*10 + int64(c-'0')
			p.clDigits = true
		case c == ' ' || c == '\t':
			if p.clDigits {
				p.clTrailWS = true
			}
		default:
			return ErrInvalidContentLength
		}
	case hdrConnection, hdrTransferEncoding:
		if c == ',' || c == ' ' || c == '\t' {
			p.endToken()
			return OK
		}
		if p.tokLen < len(p.tok) {
			p.tok[p.tokLen] = lower(c)
			p.tokLen++
		} else {
			p.tokSpill = true
		}
	}
	return OK
}

func (p *Parser) endValue() Errno {
	switch p.hdr {
	case hdrContentLength:
		if !p.clDigits {
			return ErrInvalidContentLength
		}
	case hdrConnection, hdrTransferEncoding:
		p.endToken()
	}
	p.hdr = hdrGeneral
	return OK
}

func (p *Parser) endToken() {
	if p.tokLen == 0 && !p.tokSpill {
		return
	}
	var tok string
	if !p.tokSpill {
		tok = string(p.tok[:p.tokLen])
	}
	switch p.hdr {
	case hdrConnection:
		switch tok {
		case "close":
			p.flags |= flagConnClose
		case "keep-alive":
			p.flags |= flagConnKeepAlive
		case "upgrade":
			p.flags |= flagConnUpgrade
		}
	case hdrTransferEncoding:
		if tok == "chunked" {
			p.flags |= flagChunked
		} else {
			p.flags &^= flagChunked
		}
	}
	p.tokLen, p.tokSpill = 0, false
}
