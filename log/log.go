// Package log provides logging utilities.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/httpspan/header"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(f header.Field) slog.Value {
		return slog.GroupValue(
			slog.String("name", f.Name),
			slog.String("value", f.Value),
		)
	}),
	slogformatter.FormatByType(func(fs []header.Field) slog.Value {
		attrs := make([]slog.Attr, len(fs))
		for i, f := range fs {
			attrs[i] = slog.String(f.Name, f.Value)
		}
		return slog.GroupValue(attrs...)
	}),
)

// NewConsole creates a logger writing human-readable lines to w.
func NewConsole(w io.Writer, lvl slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  true,
			Level:      lvl,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// NewDev creates a logger with the developer-friendly multiline output.
func NewDev(w io.Writer, lvl slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     lvl,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// NewJSON creates a logger writing JSON records to w.
func NewJSON(w io.Writer, lvl slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}),
	))
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

var def atomic.Pointer[slog.Logger]

func init() { def.Store(Noop) }

// Default returns the logger used when no logger is configured.
// It discards everything until [SetDefault] is called.
func Default() *slog.Logger { return def.Load() }

// SetDefault replaces the default logger. Nil restores [Noop].
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = Noop
	}
	def.Store(l)
}

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }

type stringValue[T ~string | ~[]byte] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
// Byte slices are converted only when the record is handled.
func StringValue[T ~string | ~[]byte](v T) slog.LogValuer { return stringValue[T]{v} }
