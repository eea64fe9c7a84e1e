package gcode

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadRows reads table rows from a reader. Each line holds at least
// four whitespace separated fields: three codon letters and an amino
// acid, either as characters or as decimal code points. Empty lines
// and lines starting with '#' are skipped, extra fields are ignored.
func ReadRows(rd io.Reader) ([]Row, error) {
	rows := make([]Row, 0, 64)
	scanner := bufio.NewScanner(rd)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, &TableError{Kind: ErrMalformedTable, Row: lineNo,
				Msg: fmt.Sprintf("expected 4 fields, got %d", len(fields))}
		}
		rows = append(rows, Row{fields[0], fields[1], fields[2], fields[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading codon table: %w", err)
	}
	return rows, nil
}

// Read reads rows from a reader and builds a table.
func Read(rd io.Reader, name string) (*Table, error) {
	rows, err := ReadRows(rd)
	if err != nil {
		return nil, err
	}
	return Build(name, rows)
}
