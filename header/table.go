package header

import "github.com/ghettovoice/httpspan/span"

// TableCap is the number of fields a [Table] holds before it must be flushed.
const TableCap = 32

// Table is a fixed-capacity, ordered list of header fields under accumulation.
//
// Field names and values arrive as independent fragments. Counters for names and values
// move in lockstep: a new field starts when both counters are equal, a new value starts
// when the value counter lags behind.
//
// The zero value is an empty table ready to use.
type Table struct {
	names   [TableCap]span.Accumulator
	values  [TableCap]span.Accumulator
	nnames  int
	nvalues int
}

// AppendName routes field-name bytes to the table.
//
// It reports false and stores nothing when s starts a new field but the table is full;
// the caller is expected to flush and [Table.Reset] the table, then retry.
func (t *Table) AppendName(c span.Chunk, s span.Span) bool {
	if t.nnames == t.nvalues {
		if t.nnames == TableCap {
			return false
		}
		t.names[t.nnames].Reset()
		t.nnames++
	}
	t.names[t.nnames-1].Update(c, s)
	return true
}

// AppendValue routes field-value bytes to the table.
//
// A zero-length span still opens a value, so empty header values keep the counters paired.
// Value bytes without a preceding name are dropped.
func (t *Table) AppendValue(c span.Chunk, s span.Span) {
	if t.nnames == 0 {
		return
	}
	if t.nvalues < t.nnames {
		t.values[t.nvalues].Reset()
		t.nvalues++
	}
	t.values[t.nvalues-1].Update(c, s)
}

// Len returns the number of fields started in the table.
func (t *Table) Len() int { return t.nnames }

// Promote moves every borrowed name and value into owned storage.
func (t *Table) Promote() {
	for i := range t.nnames {
		t.names[i].Promote()
	}
	for i := range t.nvalues {
		t.values[i].Promote()
	}
}

// Reset empties the table, keeping accumulator storage for reuse.
func (t *Table) Reset() {
	for i := range t.nnames {
		t.names[i].Reset()
	}
	for i := range t.nvalues {
		t.values[i].Reset()
	}
	t.nnames, t.nvalues = 0, 0
}

// AppendFields materializes the fields in arrival order and appends them to dst.
// Names are interned with [Intern]. A name still waiting for its value gets an empty value.
func (t *Table) AppendFields(dst []Field) []Field {
	for i := range t.nnames {
		f := Field{Name: InternName(&t.names[i])}
		if i < t.nvalues {
			f.Value = t.values[i].String()
		}
		dst = append(dst, f)
	}
	return dst
}
