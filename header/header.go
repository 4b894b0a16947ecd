package header

import (
	"github.com/ghettovoice/httpspan/span"
)

// Well-known header names returned by [Intern].
const (
	Accept           = "Accept"
	AcceptCharset    = "Accept-Charset"
	AcceptEncoding   = "Accept-Encoding"
	AcceptLanguage   = "Accept-Language"
	AcceptRanges     = "Accept-Ranges"
	Authorization    = "Authorization"
	CacheControl     = "Cache-Control"
	Connection       = "Connection"
	ContentEncoding  = "Content-Encoding"
	ContentLanguage  = "Content-Language"
	ContentLength    = "Content-Length"
	ContentType      = "Content-Type"
	Cookie           = "Cookie"
	Date             = "Date"
	Expect           = "Expect"
	Expires          = "Expires"
	Host             = "Host"
	IfModifiedSince  = "If-Modified-Since"
	IfNoneMatch      = "If-None-Match"
	LastModified     = "Last-Modified"
	Location         = "Location"
	Referer          = "Referer"
	Server           = "Server"
	SetCookie        = "Set-Cookie"
	TransferEncoding = "Transfer-Encoding"
	Upgrade          = "Upgrade"
	UserAgent        = "User-Agent"
	Vary             = "Vary"
	XForwardedFor    = "X-Forwarded-For"
)

// Field is a materialized header field.
type Field struct {
	Name  string
	Value string
}

// Intern returns the shared well-known name equal to b, or a new string copied from b.
//
// Matching is exact and case-sensitive: "Content-Length" yields [ContentLength],
// while "content-length" is returned as a fresh string.
// Hits never allocate.
func Intern(b []byte) string {
	if s, ok := lookup(b); ok {
		return s
	}
	return string(b)
}

// InternName interns the value accumulated by a.
func InternName(a *span.Accumulator) string { return Intern(a.Bytes()) }

// lookup dispatches on length, then on the leading byte, then compares the rest.
func lookup(b []byte) (string, bool) {
	switch len(b) {
	case 4:
		switch b[0] {
		case 'D':
			if string(b[1:]) == "ate" {
				return Date, true
			}
		case 'H':
			if string(b[1:]) == "ost" {
				return Host, true
			}
		case 'V':
			if string(b[1:]) == "ary" {
				return Vary, true
			}
		}
	case 6:
		switch b[0] {
		case 'A':
			if string(b[1:]) == "ccept" {
				return Accept, true
			}
		case 'C':
			if string(b[1:]) == "ookie" {
				return Cookie, true
			}
		case 'E':
			if string(b[1:]) == "xpect" {
				return Expect, true
			}
		case 'S':
			if string(b[1:]) == "erver" {
				return Server, true
			}
		}
	case 7:
		switch b[0] {
		case 'E':
			if string(b[1:]) == "xpires" {
				return Expires, true
			}
		case 'R':
			if string(b[1:]) == "eferer" {
				return Referer, true
			}
		case 'U':
			if string(b[1:]) == "pgrade" {
				return Upgrade, true
			}
		}
	case 8:
		if b[0] == 'L' && string(b[1:]) == "ocation" {
			return Location, true
		}
	case 10:
		switch b[0] {
		case 'C':
			if string(b[1:]) == "onnection" {
				return Connection, true
			}
		case 'S':
			if string(b[1:]) == "et-Cookie" {
				return SetCookie, true
			}
		case 'U':
			if string(b[1:]) == "ser-Agent" {
				return UserAgent, true
			}
		}
	case 12:
		if b[0] == 'C' && string(b[1:]) == "ontent-Type" {
			return ContentType, true
		}
	case 13:
		switch b[0] {
		case 'A':
			switch b[1] {
			case 'c':
				if string(b[2:]) == "cept-Ranges" {
					return AcceptRanges, true
				}
			case 'u':
				if string(b[2:]) == "thorization" {
					return Authorization, true
				}
			}
		case 'C':
			if string(b[1:]) == "ache-Control" {
				return CacheControl, true
			}
		case 'I':
			if string(b[1:]) == "f-None-Match" {
				return IfNoneMatch, true
			}
		case 'L':
			if string(b[1:]) == "ast-Modified" {
				return LastModified, true
			}
		}
	case 14:
		switch b[0] {
		case 'A':
			if string(b[1:]) == "ccept-Charset" {
				return AcceptCharset, true
			}
		case 'C':
			if string(b[1:]) == "ontent-Length" {
				return ContentLength, true
			}
		}
	case 15:
		switch b[0] {
		case 'A':
			// Accept-Encoding and Accept-Language share the first 7 bytes.
			if string(b[1:7]) != "ccept-" {
				break
			}
			switch b[7] {
			case 'E':
				if string(b[8:]) == "ncoding" {
					return AcceptEncoding, true
				}
			case 'L':
				if string(b[8:]) == "anguage" {
					return AcceptLanguage, true
				}
			}
		case 'X':
			if string(b[1:]) == "-Forwarded-For" {
				return XForwardedFor, true
			}
		}
	case 16:
		if b[0] != 'C' || string(b[1:8]) != "ontent-" {
			break
		}
		switch b[8] {
		case 'E':
			if string(b[9:]) == "ncoding" {
				return ContentEncoding, true
			}
		case 'L':
			if string(b[9:]) == "anguage" {
				return ContentLanguage, true
			}
		}
	case 17:
		switch b[0] {
		case 'I':
			if string(b[1:]) == "f-Modified-Since" {
				return IfModifiedSince, true
			}
		case 'T':
			if string(b[1:]) == "ransfer-Encoding" {
				return TransferEncoding, true
			}
		}
	}
	return "", false
}
