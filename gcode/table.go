// Package gcode implements codon tables: immutable mappings from a DNA
// codon to a one letter amino acid symbol.
//
// A table is built once from rows of four cells (three codon letters
// and an amino acid) and can then be shared between goroutines; it is
// never modified after Build returns.
package gcode

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/gotrans/bio"
)

// log is the global logging variable.
var log = logging.MustGetLogger("gcode")

// Row is a raw table row: three codon cells followed by the amino
// acid cell. A cell is either a single character ("A") or a decimal
// code point ("65").
type Row [4]string

// Table maps codons (three upper case letters) to amino acids.
type Table struct {
	name   string
	codons map[string]byte
}

// cell converts a raw cell to a character.
func cell(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	cp, err := strconv.Atoi(s)
	if err != nil || cp < 0 || cp > utf8.MaxRune {
		return 0, fmt.Errorf("cell %q is neither a character nor a code point", s)
	}
	return rune(cp), nil
}

// Build validates the rows and creates a table. It fails with
// ErrMalformedTable if a codon cell is not one of A, T, G, C (after
// upper-casing) or the amino acid is not a printable ASCII character,
// with ErrAmbiguousTable if two rows share a codon and with
// ErrEmptyTable if there are no rows.
func Build(name string, rows []Row) (*Table, error) {
	if len(rows) == 0 {
		return nil, &TableError{Kind: ErrEmptyTable, Msg: name}
	}

	codons := make(map[string]byte, len(rows))
	seen := make(map[string]int, len(rows))

	for i, row := range rows {
		var key [3]byte
		for j := 0; j < 3; j++ {
			r, err := cell(row[j])
			if err != nil {
				return nil, &TableError{Kind: ErrMalformedTable, Row: i + 1, Msg: err.Error()}
			}
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			if r >= utf8.RuneSelf || !bio.IsNucleotide(byte(r)) {
				return nil, &TableError{Kind: ErrMalformedTable, Row: i + 1,
					Msg: fmt.Sprintf("codon position %d is %q, not a nucleotide", j+1, r)}
			}
			key[j] = byte(r)
		}
		codon := string(key[:])

		aa, err := cell(row[3])
		if err != nil {
			return nil, &TableError{Kind: ErrMalformedTable, Row: i + 1, Codon: codon, Msg: err.Error()}
		}
		if aa <= ' ' || aa > '~' {
			return nil, &TableError{Kind: ErrMalformedTable, Row: i + 1, Codon: codon,
				Msg: fmt.Sprintf("amino acid %q is not a printable character", aa)}
		}

		if prev, ok := seen[codon]; ok {
			return nil, &TableError{Kind: ErrAmbiguousTable, Row: i + 1, Codon: codon,
				Msg: fmt.Sprintf("already defined in row %d", prev)}
		}
		seen[codon] = i + 1
		codons[codon] = byte(aa)
	}

	if len(codons) < bio.NCodon {
		log.Debugf("Table %q defines %d of %d codons", name, len(codons), bio.NCodon)
	}
	log.Debugf("Built codon table %q with %d codons", name, len(codons))

	return &Table{name: name, codons: codons}, nil
}

// Resolve returns the amino acid for a codon. The codon must already
// be upper case; it is not validated. index is the codon number in the
// sequence and is only used for the error.
func (t *Table) Resolve(codon string, index int) (byte, error) {
	aa, ok := t.codons[codon]
	if !ok {
		return 0, &UnknownCodonError{Codon: codon, Index: index}
	}
	return aa, nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Len returns number of codons in the table.
func (t *Table) Len() int {
	return len(t.codons)
}

// Codons returns sorted list of codons defined in the table.
func (t *Table) Codons() []string {
	res := make([]string, 0, len(t.codons))
	for codon := range t.codons {
		res = append(res, codon)
	}
	sort.Strings(res)
	return res
}

// Digest returns a hex encoded hash of the table content. Tables with
// the same mapping have the same digest regardless of name or row
// order.
func (t *Table) Digest() string {
	h := sha256.New()
	for _, codon := range t.Codons() {
		h.Write([]byte(codon))
		h.Write([]byte{t.codons[codon], '\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (t *Table) String() string {
	return fmt.Sprintf("<Table: %s, %d codons>", t.name, len(t.codons))
}
