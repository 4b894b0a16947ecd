package grammar

// Character classes of RFC 7230.

var tcharTab = func() (t [256]bool) {
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
		t[c-'a'+'A'] = true
	}
	for _, c := range "!#$%&'*+-.^_`|~" {
		t[c] = true
	}
	return t
}()

// IsTokenChar reports whether c may appear in a token, a header field name for instance.
func IsTokenChar(c byte) bool { return tcharTab[c] }

func isURLChar(c byte) bool { return c > ' ' && c != 0x7f }

// isValueChar accepts field-content octets: visible characters, obs-text, SP and HTAB.
func isValueChar(c byte) bool { return c == '\t' || (c >= ' ' && c != 0x7f) }

func isMethodChar(c byte) bool { return (c >= 'A' && c <= 'Z') || c == '-' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// unhex returns the value of a hex digit or -1.
func unhex(c byte) int64 {
	switch {
	case c >= '0' && c <= '9':
		return int64(c - '0')
	case c >= 'a' && c <= 'f':
		return int64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int64(c-'A') + 10
	default:
		return -1
	}
}

const (
	cr = '\r'
	lf = '\n'
)
