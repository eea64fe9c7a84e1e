package gcode

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTable is the kind of a table with a bad cell.
	ErrMalformedTable = errors.New("malformed codon table")
	// ErrAmbiguousTable is the kind of a table with duplicate codons.
	ErrAmbiguousTable = errors.New("ambiguous codon table")
	// ErrEmptyTable is the kind of a table without rows.
	ErrEmptyTable = errors.New("empty codon table")
	// ErrUnknownCodon is returned (wrapped in UnknownCodonError)
	// when a codon is absent from the table.
	ErrUnknownCodon = errors.New("unknown codon")
)

// TableError is returned when a codon table cannot be constructed.
// Kind is one of ErrMalformedTable, ErrAmbiguousTable or
// ErrEmptyTable.
type TableError struct {
	Kind error
	// Row is 1-based row (or line) number, zero if not applicable.
	Row   int
	Codon string
	Msg   string
}

func (e *TableError) Error() string {
	s := e.Kind.Error()
	if e.Row > 0 {
		s += fmt.Sprintf(", row %d", e.Row)
	}
	if e.Codon != "" {
		s += fmt.Sprintf(", codon %s", e.Codon)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *TableError) Unwrap() error {
	return e.Kind
}

// IsTableError reports whether err originates from table
// construction, i.e. the codon table source needs fixing rather than
// the input sequence.
func IsTableError(err error) bool {
	var te *TableError
	return errors.As(err, &te)
}

// UnknownCodonError is returned by Resolve for a codon which is not
// in the table. Index is the codon number in the sequence.
type UnknownCodonError struct {
	Codon string
	Index int
}

func (e *UnknownCodonError) Error() string {
	return fmt.Sprintf("unknown codon %s at codon index %d", e.Codon, e.Index)
}

func (e *UnknownCodonError) Unwrap() error {
	return ErrUnknownCodon
}
