// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data shared across d2b: the bibliographic
// Record every component passes along and the per-run Config.
package types

// Reserved field names. Every record returned by a resolver carries both.
const (
	FieldEntryType = "ENTRYTYPE"
	FieldID        = "ID"
)

// Record is a single bibliographic entry: an open mapping from field name
// to raw (possibly LaTeX-escaped) value. Field names are case-sensitive;
// the codec lowercases everything except ENTRYTYPE and ID.
//
// Providers return heterogeneous, partially overlapping field sets, so
// Record stays a map rather than a struct. Transforms that need a field
// check for it themselves.
type Record map[string]string

// EntryType returns the entry type ("article", "book", ...).
func (r Record) EntryType() string { return r[FieldEntryType] }

// Key returns the citekey.
func (r Record) Key() string { return r[FieldID] }

// Has reports whether field is present, even with an empty value.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Clone returns a shallow copy. Values are strings, so the copy is
// independent of the original.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Fields returns the names of all fields except ENTRYTYPE and ID,
// in no particular order.
func (r Record) Fields() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		if k == FieldEntryType || k == FieldID {
			continue
		}
		names = append(names, k)
	}
	return names
}
