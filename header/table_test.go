package header_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httpspan/header"
	"github.com/ghettovoice/httpspan/span"
)

// feeder writes fragments into a single buffer and returns spans pointing at them.
type feeder struct {
	c span.Chunk
}

func (f *feeder) add(s string) span.Span {
	sp := span.Span{Off: len(f.c.Data), Len: len(s)}
	f.c.Data = append(f.c.Data, s...)
	return sp
}

func (f *feeder) name(tbl *header.Table, s string) bool {
	sp := f.add(s)
	return tbl.AppendName(f.c, sp)
}

func (f *feeder) value(tbl *header.Table, s string) {
	sp := f.add(s)
	tbl.AppendValue(f.c, sp)
}

func TestTable_Lockstep(t *testing.T) {
	t.Parallel()

	f := &feeder{c: span.Chunk{Data: make([]byte, 0, 256), Gen: 1}}
	var tbl header.Table

	// "Host" split in two fragments, value split in three
	f.name(&tbl, "Ho")
	f.name(&tbl, "st")
	f.value(&tbl, "exa")
	f.value(&tbl, "mple.c")
	f.value(&tbl, "om")
	// empty value
	f.name(&tbl, "X-Empty")
	f.value(&tbl, "")
	f.name(&tbl, "Accept")
	f.value(&tbl, "*/*")

	if got, want := tbl.Len(), 3; got != want {
		t.Fatalf("tbl.Len() = %d, want %d", got, want)
	}

	got := tbl.AppendFields(nil)
	want := []header.Field{
		{Name: "Host", Value: "example.com"},
		{Name: "X-Empty", Value: ""},
		{Name: "Accept", Value: "*/*"},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("tbl.AppendFields(nil) = %+v, want %+v\ndiff (-got +want):\n%v", got, want, diff)
	}
}

func TestTable_MissingValue(t *testing.T) {
	t.Parallel()

	f := &feeder{c: span.Chunk{Data: make([]byte, 0, 64), Gen: 1}}
	var tbl header.Table

	f.value(&tbl, "orphan")
	f.name(&tbl, "Vary")

	got := tbl.AppendFields(nil)
	want := []header.Field{{Name: "Vary", Value: ""}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("tbl.AppendFields(nil) = %+v, want %+v\ndiff (-got +want):\n%v", got, want, diff)
	}
}

func TestTable_Overflow(t *testing.T) {
	t.Parallel()

	f := &feeder{c: span.Chunk{Data: make([]byte, 0, 1024), Gen: 1}}
	var tbl header.Table

	for i := range header.TableCap {
		if !f.name(&tbl, fmt.Sprintf("X-H%d", i)) {
			t.Fatalf("tbl.AppendName(...) = false at field %d, want true", i)
		}
		f.value(&tbl, fmt.Sprintf("v%d", i))
	}

	if f.name(&tbl, "X-Extra") {
		t.Fatalf("tbl.AppendName(...) = true on a full table, want false")
	}
	if got, want := tbl.Len(), header.TableCap; got != want {
		t.Fatalf("tbl.Len() = %d, want %d", got, want)
	}

	fields := tbl.AppendFields(nil)
	if got, want := fields[header.TableCap-1], (header.Field{Name: "X-H31", Value: "v31"}); got != want {
		t.Errorf("fields[31] = %+v, want %+v", got, want)
	}

	tbl.Reset()
	if !f.name(&tbl, "X-Extra") {
		t.Fatalf("tbl.AppendName(...) = false after Reset, want true")
	}
	f.value(&tbl, "1")
	got := tbl.AppendFields(nil)
	want := []header.Field{{Name: "X-Extra", Value: "1"}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("tbl.AppendFields(nil) = %+v, want %+v\ndiff (-got +want):\n%v", got, want, diff)
	}
}

func TestTable_NameContinuesAtCapacity(t *testing.T) {
	t.Parallel()

	f := &feeder{c: span.Chunk{Data: make([]byte, 0, 1024), Gen: 1}}
	var tbl header.Table

	for i := range header.TableCap - 1 {
		f.name(&tbl, fmt.Sprintf("X-H%d", i))
		f.value(&tbl, "v")
	}
	// the last slot name arrives in two fragments
	if !f.name(&tbl, "X-La") {
		t.Fatalf("tbl.AppendName(...) = false, want true")
	}
	if !f.name(&tbl, "st") {
		t.Fatalf("tbl.AppendName(...) = false for a continued name, want true")
	}

	fields := tbl.AppendFields(nil)
	if got, want := fields[len(fields)-1], (header.Field{Name: "X-Last"}); got != want {
		t.Errorf("fields[last] = %+v, want %+v", got, want)
	}
}

func TestTable_Promote(t *testing.T) {
	t.Parallel()

	buf := []byte("Content-Typetext/plain")
	c := span.Chunk{Data: buf, Gen: 1}

	var tbl header.Table
	tbl.AppendName(c, span.Span{Off: 0, Len: 12})
	tbl.AppendValue(c, span.Span{Off: 12, Len: 10})
	tbl.Promote()

	for i := range buf {
		buf[i] = '#'
	}

	got := tbl.AppendFields(nil)
	want := []header.Field{{Name: header.ContentType, Value: "text/plain"}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("tbl.AppendFields(nil) = %+v, want %+v\ndiff (-got +want):\n%v", got, want, diff)
	}
}
