package model

import (
	"errors"
	"strings"
)

var (
	ErrMissingID    = errors.New("record: missing id")
	ErrMissingField = errors.New("record: missing field")
)

// Record is one row of the sheet. The JSON keys match the sheet's column
// headers.
type Record struct {
	ID string `json:"id"`
	A  string `json:"a"`
	B  string `json:"b"`
}

// Validate reports the first required value that is blank.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(r.A) == "" || strings.TrimSpace(r.B) == "" {
		return ErrMissingField
	}
	return nil
}

// WithFields returns a copy of r carrying the given field values. The id is
// kept as is.
func (r Record) WithFields(a, b string) Record {
	r.A = a
	r.B = b
	return r
}

// Clone copies a slice of records so callers never share backing arrays
// with controller state.
func Clone(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
