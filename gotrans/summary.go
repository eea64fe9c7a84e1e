package main

// RunSummary is storing gotrans run summary information.
type RunSummary struct {
	// Version stores gotrans version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Table is the codon table name.
	Table string `json:"table"`
	// TableCodons is the number of codons defined in the table.
	TableCodons int `json:"tableCodons"`
	// Codons is the number of translated codons.
	Codons int `json:"codons"`
	// Protein is the translated sequence.
	Protein string `json:"protein"`
	// Composition is the residue counts.
	Composition map[string]int `json:"composition"`
	// Entropy is the Shannon entropy of the composition in bits.
	Entropy float64 `json:"entropy"`
	// Cached is true if the translation was taken from the cache.
	Cached bool `json:"cached,omitempty"`
	// Time is the computations time in seconds.
	Time float64 `json:"time"`
}
