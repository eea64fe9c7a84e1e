// Package bio provides the nucleotide alphabet and sequence rendering
// helpers shared by the genetic code and translation packages.
package bio

import (
	"iter"
	"strings"
)

// Nucleotides is the DNA alphabet in the order used by NCBI genetic
// code tables (T, C, A, G).
const Nucleotides = "TCAG"

// NCodon is the number of distinct codons over the DNA alphabet.
const NCodon = 64

// IsNucleotide tests if the byte is an upper case DNA letter.
func IsNucleotide(b byte) bool {
	switch b {
	case 'A', 'T', 'G', 'C':
		return true
	}
	return false
}

// Codons yields all 64 codons in NCBI order (TTT, TTC, TTA, TTG,
// TCT, ...) together with their index.
func Codons() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		for _, n1 := range []byte(Nucleotides) {
			for _, n2 := range []byte(Nucleotides) {
				for _, n3 := range []byte(Nucleotides) {
					if !yield(i, string([]byte{n1, n2, n3})) {
						return
					}
					i++
				}
			}
		}
	}
}

// Wrap splits a string into consecutive chunks of n characters or
// less. The returned sequence can be iterated more than once.
func Wrap(seq string, n int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if n <= 0 {
			if seq != "" {
				yield(seq)
			}
			return
		}
		for i := 0; i < len(seq); i += n {
			end := i + n
			if end > len(seq) {
				end = len(seq)
			}
			if !yield(seq[i:end]) {
				return
			}
		}
	}
}

// Sequence is a type which is intended for storing nucleotide or
// protein sequence with it's name.
type Sequence struct {
	Name     string
	Sequence string
}

// FastaWidth is the line width used when formatting sequences.
const FastaWidth = 60

// String returns a sequence in FASTA format.
func (seq Sequence) String() string {
	var b strings.Builder
	b.WriteString(">" + seq.Name + "\n")
	for line := range Wrap(seq.Sequence, FastaWidth) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
