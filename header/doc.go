// Package header provides header name interning and the fixed-capacity header table
// used while a message head is being parsed.
//
// # Field names
//
// [Intern] maps a raw field name to a shared string constant when it exactly matches
// one of the well-known names ([Host], [ContentLength], [TransferEncoding] and so on).
// The match is case-sensitive: "content-length" is returned as a fresh string.
// A hit allocates nothing, so every message carrying the usual headers reuses
// the same name strings.
//
//	name := header.Intern([]byte("Content-Type")) // header.ContentType
//
// # Table
//
// [Table] collects up to [TableCap] fields from name and value fragments delivered
// by the tokenizer. Fragments are kept as [span.Accumulator] values: a field that
// arrives in one chunk is referenced in place, a field split across chunks is copied.
// Before the chunk is released the owner calls [Table.Promote], which copies what
// is still referenced.
//
// When a field starts while the table is full, [Table.AppendName] refuses it.
// The owner then materializes the fields with [Table.AppendFields], hands them
// over and calls [Table.Reset] before retrying.
package header
