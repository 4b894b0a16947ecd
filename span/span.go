// Package span accumulates byte ranges that the grammar engine reports in fragments.
//
// An [Accumulator] keeps a zero-copy reference into the chunk being parsed for as long as
// the fragments stay contiguous, and falls back to an owned heap copy otherwise.
// A reference into a chunk is valid only during the parse call that supplied the chunk,
// so callers must [Accumulator.Promote] every accumulator that outlives the call.
package span

// Chunk is an externally owned byte buffer borrowed for exactly one parse call.
//
// Gen identifies the call: two chunks with the same Gen are the same buffer.
type Chunk struct {
	Data []byte
	Gen  uint64
}

// Span is a logical byte range of a [Chunk].
type Span struct {
	Off int
	Len int
}

// End returns the offset following the last byte of the span.
func (s Span) End() int { return s.Off + s.Len }

type mode uint8

const (
	modeEmpty mode = iota
	modeBorrowed
	modeOwned
)

// Accumulator joins fragmented spans into one logical value.
//
// The zero value is an empty accumulator ready to use.
// Storage moves from borrowed to owned only; [Accumulator.Reset] is the only way back to empty.
type Accumulator struct {
	mode mode
	// borrowed
	src []byte
	gen uint64
	sp  Span
	// owned
	buf []byte
}

// Update appends the bytes of s to the value.
//
// A span adjacent to the end of the current borrowed span in the same chunk extends it
// without copying. Any other combination copies the bytes into owned storage.
// Zero-length spans are ignored.
func (a *Accumulator) Update(c Chunk, s Span) {
	if s.Len == 0 {
		return
	}
	switch a.mode {
	case modeEmpty:
		a.mode = modeBorrowed
		a.src, a.gen, a.sp = c.Data, c.Gen, s
	case modeBorrowed:
		if a.gen == c.Gen && a.sp.End() == s.Off {
			a.sp.Len += s.Len
			return
		}
		a.own()
		a.buf = append(a.buf, c.Data[s.Off:s.End()]...)
	case modeOwned:
		a.buf = append(a.buf, c.Data[s.Off:s.End()]...)
	}
}

// Promote copies a borrowed value into owned storage. It is a no-op for empty or owned values.
func (a *Accumulator) Promote() {
	if a.mode == modeBorrowed {
		a.own()
	}
}

func (a *Accumulator) own() {
	b := a.src[a.sp.Off:a.sp.End()]
	if cap(a.buf) < len(b) {
		a.buf = make([]byte, 0, len(b))
	}
	a.buf = append(a.buf[:0], b...)
	a.mode = modeOwned
	a.src, a.gen, a.sp = nil, 0, Span{}
}

// Reset empties the accumulator. Owned capacity is kept for reuse.
func (a *Accumulator) Reset() {
	a.mode = modeEmpty
	a.src, a.gen, a.sp = nil, 0, Span{}
	a.buf = a.buf[:0]
}

// Bytes returns the accumulated bytes.
// A borrowed value aliases the chunk, so the result must not be used after the parse call returns.
func (a *Accumulator) Bytes() []byte {
	switch a.mode {
	case modeBorrowed:
		return a.src[a.sp.Off:a.sp.End():a.sp.End()]
	case modeOwned:
		return a.buf
	default:
		return nil
	}
}

// String materializes the accumulated bytes into a new string.
func (a *Accumulator) String() string { return string(a.Bytes()) }

// Len returns the number of accumulated bytes.
func (a *Accumulator) Len() int {
	switch a.mode {
	case modeBorrowed:
		return a.sp.Len
	case modeOwned:
		return len(a.buf)
	default:
		return 0
	}
}

func (a *Accumulator) IsEmpty() bool    { return a.mode == modeEmpty }
func (a *Accumulator) IsBorrowed() bool { return a.mode == modeBorrowed }
func (a *Accumulator) IsOwned() bool    { return a.mode == modeOwned }
