package translate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptySequence is returned when nothing is left after
	// whitespace removal.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrLengthNotMultipleOfThree is the kind of LengthError.
	ErrLengthNotMultipleOfThree = errors.New("sequence length is not a multiple of 3")
	// ErrInvalidCharacters is the kind of InvalidCharactersError.
	ErrInvalidCharacters = errors.New("invalid characters in sequence")
)

// LengthError reports a sequence which can't be split into codons.
type LengthError struct {
	Length    int
	Remainder int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%v: length %d, remainder %d", ErrLengthNotMultipleOfThree, e.Length, e.Remainder)
}

func (e *LengthError) Unwrap() error {
	return ErrLengthNotMultipleOfThree
}

// Invalid is an offending character and its 0-based position in the
// normalized sequence.
type Invalid struct {
	Char rune
	Pos  int
}

// maxReported limits the number of characters listed by Error.
const maxReported = 10

// InvalidCharactersError lists every character of the sequence which
// is not A, T, G or C.
type InvalidCharactersError struct {
	Invalid []Invalid
}

// Chars returns the distinct offending characters in order of the
// first occurrence.
func (e *InvalidCharactersError) Chars() []rune {
	seen := make(map[rune]bool)
	var res []rune
	for _, inv := range e.Invalid {
		if !seen[inv.Char] {
			seen[inv.Char] = true
			res = append(res, inv.Char)
		}
	}
	return res
}

func (e *InvalidCharactersError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %d invalid (", ErrInvalidCharacters, len(e.Invalid))
	for i, inv := range e.Invalid {
		if i == maxReported {
			b.WriteString(", ...")
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q at %d", inv.Char, inv.Pos)
	}
	b.WriteString(")")
	return b.String()
}

func (e *InvalidCharactersError) Unwrap() error {
	return ErrInvalidCharacters
}
