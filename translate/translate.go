// Package translate converts DNA sequences into protein sequences
// using a codon table.
//
// Translation is a single pass: the input is normalized (whitespace
// removed, upper-cased), validated, split into codons starting at the
// first nucleotide and every codon is resolved with the table. The
// first codon missing from the table aborts the translation
// (gcode.UnknownCodonError), no partial protein is returned.
//
// The functions keep no state between calls, a single *gcode.Table
// can be shared by any number of goroutines.
package translate

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/gotrans/bio"
	"bitbucket.org/Davydov/gotrans/gcode"
)

// log is the global logging variable.
var log = logging.MustGetLogger("translate")

// LineWidth is the maximum number of residues per rendered line.
const LineWidth = 60

// Result is the outcome of a successful translation.
type Result struct {
	// Protein is the amino acid sequence, one symbol per codon.
	Protein string
}

// Len returns the number of residues.
func (r Result) Len() int {
	return len(r.Protein)
}

// Lines yields the protein in lines of at most LineWidth residues.
// The sequence is computed on demand and can be iterated again.
func (r Result) Lines() iter.Seq[string] {
	return bio.Wrap(r.Protein, LineWidth)
}

// Normalize removes all whitespace from the raw input and converts it
// to upper case.
func Normalize(raw string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw))
}

// Validate checks a normalized sequence. Checks are done in order:
// emptiness, length divisible by three, alphabet. All the invalid
// characters are reported, not only the first one.
func Validate(seq string) error {
	if seq == "" {
		return ErrEmptySequence
	}

	n := utf8.RuneCountInString(seq)
	if n%3 != 0 {
		return &LengthError{Length: n, Remainder: n % 3}
	}

	var invalid []Invalid
	pos := 0
	for _, r := range seq {
		if r >= utf8.RuneSelf || !bio.IsNucleotide(byte(r)) {
			invalid = append(invalid, Invalid{Char: r, Pos: pos})
		}
		pos++
	}
	if len(invalid) > 0 {
		return &InvalidCharactersError{Invalid: invalid}
	}
	return nil
}

// Translate translates raw DNA input into a protein. Errors are
// ErrEmptySequence, *LengthError, *InvalidCharactersError or
// *gcode.UnknownCodonError; the latter is returned for the first codon
// absent from the table.
func Translate(raw string, table *gcode.Table) (Result, error) {
	seq := Normalize(raw)
	if err := Validate(seq); err != nil {
		return Result{}, err
	}
	return translateValid(seq, table)
}

// TranslateBytes is like Translate, but takes the input as bytes.
func TranslateBytes(raw []byte, table *gcode.Table) (Result, error) {
	return Translate(string(raw), table)
}

// translateValid resolves codons of a validated sequence.
func translateValid(seq string, table *gcode.Table) (Result, error) {
	ncodon := len(seq) / 3
	var b strings.Builder
	b.Grow(ncodon)

	for i := 0; i < ncodon; i++ {
		aa, err := table.Resolve(seq[3*i:3*i+3], i)
		if err != nil {
			return Result{}, err
		}
		b.WriteByte(aa)
	}

	log.Debugf("Translated %d codons using %s table", ncodon, table.Name())
	return Result{Protein: b.String()}, nil
}
