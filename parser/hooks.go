package parser

import (
	"github.com/ghettovoice/httpspan/span"
)

// engineHooks is the [grammar.Handler] side of a [Session].
// The session passes itself to the tokenizer on every call.
type engineHooks Session

func (h *engineHooks) session() *Session { return (*Session)(h) }

// failed returns the error recorded earlier in the call, if any.
func (h *engineHooks) failed() error {
	if h.consumerErr != nil {
		return h.consumerErr //errtrace:skip
	}
	return h.fsmErr //errtrace:skip
}

func (h *engineHooks) span(off, n int) span.Span { return span.Span{Off: h.base + off, Len: n} }

func (h *engineHooks) OnMessageBegin() error {
	if err := h.failed(); err != nil {
		return err //errtrace:skip
	}
	s := h.session()
	s.discard()
	return s.fire(evtBegin) //errtrace:skip
}

func (h *engineHooks) OnURL(off, n int) error {
	if err := h.failed(); err != nil {
		return err //errtrace:skip
	}
	h.url.Update(h.chunk, h.span(off, n))
	return nil
}

func (h *engineHooks) OnHeaderField(off, n int) error {
	if err := h.failed(); err != nil {
		return err //errtrace:skip
	}
	sp := h.span(off, n)
	if !h.tbl.AppendName(h.chunk, sp) {
		h.session().flush()
		h.tbl.AppendName(h.chunk, sp)
	}
	return nil
}

func (h *engineHooks) OnHeaderValue(off, n int) error {
	if err := h.failed(); err != nil {
		return err //errtrace:skip
	}
	h.tbl.AppendValue(h.chunk, h.span(off, n))
	return nil
}

func (h *engineHooks) OnHeadersComplete() (bool, error) {
	if err := h.failed(); err != nil {
		return false, err //errtrace:skip
	}
	s := h.session()
	if s.flushed && s.tbl.Len() > 0 {
		s.flush()
		if err := h.failed(); err != nil {
			return false, err //errtrace:skip
		}
	}

	info := s.buildInfo()
	skip, err := s.c.OnHeadersComplete(info)
	s.tbl.Reset()
	s.url.Reset()
	if err != nil {
		s.consumerErr = err
		return false, err //errtrace:skip
	}

	evt := evtHeadersDone
	if info.Upgrade {
		evt = evtUpgrade
	}
	return skip, s.fire(evt) //errtrace:skip
}

func (h *engineHooks) OnBody(off, n int) error {
	if err := h.failed(); err != nil {
		return err //errtrace:skip
	}
	s := h.session()
	if err := s.c.OnBody(BodyChunk{Buf: s.chunk.Data, Off: s.base + off, Len: n}); err != nil {
		s.consumerErr = err
		return err //errtrace:skip
	}
	return nil
}

func (h *engineHooks) OnMessageComplete() error {
	if err := h.failed(); err != nil {
		return err //errtrace:skip
	}
	s := h.session()
	// trailers
	if s.tbl.Len() > 0 {
		s.flush()
		if err := h.failed(); err != nil {
			return err //errtrace:skip
		}
	}

	err := s.c.OnMessageComplete()
	s.flushed = false
	if err != nil {
		s.consumerErr = err
		return err //errtrace:skip
	}
	return s.fire(evtComplete) //errtrace:skip
}
