package main

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpspan/header"
	"github.com/ghettovoice/httpspan/internal/ioutil"
	"github.com/ghettovoice/httpspan/parser"
)

// printer writes parse events as text lines.
// A failed write stops the parse with the write error.
type printer struct {
	w    *ioutil.Writer
	body int
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: ioutil.NewWriter(w)}
}

func (p *printer) printf(format string, args ...any) { p.w.Printf(format, args...) }

func (p *printer) printFields(fields []header.Field) {
	for _, f := range fields {
		p.printf("  %s: %s\n", f.Name, f.Value)
	}
}

func (p *printer) OnHeaders(fields []header.Field, url string) error {
	if url != "" {
		p.printf("headers url=%s\n", url)
	} else {
		p.printf("headers\n")
	}
	p.printFields(fields)
	return errtrace.Wrap(p.w.Err())
}

func (p *printer) OnHeadersComplete(info *parser.MessageInfo) (bool, error) {
	if info.Type == parser.TypeRequest {
		p.printf("request %s %s HTTP/%d.%d", info.Method, info.URL, info.VersionMajor, info.VersionMinor)
	} else {
		p.printf("response %d HTTP/%d.%d", info.StatusCode, info.VersionMajor, info.VersionMinor)
	}
	p.printf(" keep-alive=%t upgrade=%t body=%t", info.KeepAlive, info.Upgrade, info.MayHaveBody)
	if info.Flushed {
		p.printf(" flushed")
	}
	p.printf("\n")
	p.printFields(info.Headers)
	p.body = 0
	return false, errtrace.Wrap(p.w.Err())
}

func (p *printer) OnBody(chunk parser.BodyChunk) error {
	p.body += chunk.Len
	return nil
}

func (p *printer) OnMessageComplete() error {
	if p.body > 0 {
		p.printf("body %d bytes\n", p.body)
	}
	p.printf("complete\n")
	p.body = 0
	return errtrace.Wrap(p.w.Err())
}
