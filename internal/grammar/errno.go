package grammar

// Errno is the reason a [Parser] stopped.
type Errno uint8

const (
	OK Errno = iota

	// Handler failures.
	ErrCBMessageBegin
	ErrCBURL
	ErrCBHeaderField
	ErrCBHeaderValue
	ErrCBHeadersComplete
	ErrCBBody
	ErrCBMessageComplete

	// Parsing failures.
	ErrInvalidEOFState
	ErrHeaderOverflow
	ErrClosedConnection
	ErrInvalidVersion
	ErrInvalidStatus
	ErrInvalidMethod
	ErrInvalidURL
	ErrLFExpected
	ErrInvalidHeaderToken
	ErrInvalidContentLength
	ErrInvalidChunkSize
	ErrInvalidConstant
	ErrInvalidInternalState
	ErrStrict
	ErrUnknown
)

var errnoNames = [...]struct{ name, desc string }{
	OK:                      {"OK", "success"},
	ErrCBMessageBegin:       {"CB_message_begin", "the on_message_begin callback failed"},
	ErrCBURL:                {"CB_url", "the on_url callback failed"},
	ErrCBHeaderField:        {"CB_header_field", "the on_header_field callback failed"},
	ErrCBHeaderValue:        {"CB_header_value", "the on_header_value callback failed"},
	ErrCBHeadersComplete:    {"CB_headers_complete", "the on_headers_complete callback failed"},
	ErrCBBody:               {"CB_body", "the on_body callback failed"},
	ErrCBMessageComplete:    {"CB_message_complete", "the on_message_complete callback failed"},
	ErrInvalidEOFState:      {"INVALID_EOF_STATE", "stream ended at an unexpected time"},
	ErrHeaderOverflow:       {"HEADER_OVERFLOW", "too many header bytes seen; overflow detected"},
	ErrClosedConnection:     {"CLOSED_CONNECTION", "data received after completed connection: close message"},
	ErrInvalidVersion:       {"INVALID_VERSION", "invalid HTTP version"},
	ErrInvalidStatus:        {"INVALID_STATUS", "invalid HTTP status code"},
	ErrInvalidMethod:        {"INVALID_METHOD", "invalid HTTP method"},
	ErrInvalidURL:           {"INVALID_URL", "invalid URL"},
	ErrLFExpected:           {"LF_EXPECTED", "LF character expected"},
	ErrInvalidHeaderToken:   {"INVALID_HEADER_TOKEN", "invalid character in header"},
	ErrInvalidContentLength: {"INVALID_CONTENT_LENGTH", "invalid character in content-length header"},
	ErrInvalidChunkSize:     {"INVALID_CHUNK_SIZE", "invalid character in chunk size header"},
	ErrInvalidConstant:      {"INVALID_CONSTANT", "invalid constant string"},
	ErrInvalidInternalState: {"INVALID_INTERNAL_STATE", "encountered unexpected internal state"},
	ErrStrict:               {"STRICT", "strict mode assertion failed"},
	ErrUnknown:              {"UNKNOWN", "an unknown error occurred"},
}

// String returns the HPE_* name of the code.
func (e Errno) String() string {
	if int(e) >= len(errnoNames) {
		return "HPE_UNKNOWN"
	}
	return "HPE_" + errnoNames[e].name
}

// Description returns a human-readable message for the code.
func (e Errno) Description() string {
	if int(e) >= len(errnoNames) {
		return errnoNames[ErrUnknown].desc
	}
	return errnoNames[e].desc
}

// IsCallback reports whether the code was caused by a failing [Handler].
func (e Errno) IsCallback() bool { return e >= ErrCBMessageBegin && e <= ErrCBMessageComplete }
