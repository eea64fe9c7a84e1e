package gcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"bitbucket.org/Davydov/gotrans/bio"
)

// GeneticCode is a single entry of the NCBI genetic code file
// (gc.prt). Ncbieaa holds 64 amino acids in the bio.Codons order.
//
// More information is available here:
// - https://www.ncbi.nlm.nih.gov/Taxonomy/Utils/wprintgc.cgi
// - ftp://ftp.ncbi.nih.gov/entrez/misc/data/gc.prt
type GeneticCode struct {
	Name      string
	ShortName string
	ID        int
	Ncbieaa   string
	Sncbieaa  string
}

func (gc GeneticCode) String() string {
	return fmt.Sprintf("<GC: Name=%q, ShortName=%q, ID=%d>", gc.Name, gc.ShortName, gc.ID)
}

// Rows converts the genetic code into table rows.
func (gc GeneticCode) Rows() ([]Row, error) {
	if len(gc.Ncbieaa) != bio.NCodon {
		return nil, &TableError{Kind: ErrMalformedTable,
			Msg: fmt.Sprintf("genetic code %d has %d amino acids, expected %d", gc.ID, len(gc.Ncbieaa), bio.NCodon)}
	}
	rows := make([]Row, 0, bio.NCodon)
	for i, codon := range bio.Codons() {
		rows = append(rows, Row{codon[0:1], codon[1:2], codon[2:3], gc.Ncbieaa[i : i+1]})
	}
	return rows, nil
}

// Table builds a codon table from the genetic code.
func (gc GeneticCode) Table() (*Table, error) {
	rows, err := gc.Rows()
	if err != nil {
		return nil, err
	}
	return Build(gc.Name, rows)
}

type parseMode int

const (
	modeNormal parseMode = iota
	modeTable
	modeAssign
	modeList
	modeElement
	modeElementPar
	modeElementPreComma
	modePreComma
	modeEnd
)

func unquote(s string) (string, error) {
	if len(s) < 2 || !strings.HasPrefix(s, "\"") || !strings.HasSuffix(s, "\"") {
		return "", fmt.Errorf("string %s is not quoted", s)
	}
	return s[1 : len(s)-1], nil
}

func isWordByte(b byte) bool {
	r := rune(b)
	return r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// splitASN1 is a bufio.SplitFunc producing ASN.1 value notation tokens:
// words, quoted strings, "::=", braces, commas and "--" comments.
func splitASN1(data []byte, atEOF bool) (int, []byte, error) {
	i := 0
	for ; i < len(data); i++ {
		if !unicode.IsSpace(rune(data[i])) {
			break
		}
	}
	data = data[i:]
	advance := i

	if len(data) == 0 {
		return advance, nil, nil
	}

	switch data[0] {
	case '-':
		if len(data) < 2 {
			if atEOF {
				return 0, nil, errors.New("unexpected end of file")
			}
			return advance, nil, nil
		}
		if data[1] == '-' {
			a, t, err := bufio.ScanLines(data, atEOF)
			if a == 0 {
				return advance, nil, err
			}
			return a + advance, t, err
		}
		return 0, nil, errors.New("unexpected character after '-'")
	case ':':
		if len(data) < 3 {
			if atEOF {
				return 0, nil, errors.New("unexpected end of file")
			}
			return advance, nil, nil
		}
		if data[1] == ':' && data[2] == '=' {
			return advance + 3, data[:3], nil
		}
		return 0, nil, errors.New("unexpected character after ':'")
	case '"':
		for j := 1; j < len(data); j++ {
			if data[j] == '"' {
				return advance + j + 1, data[:j+1], nil
			}
		}
		if atEOF {
			return 0, nil, errors.New("unfinished string literal")
		}
		return advance, nil, nil
	case '{', '}', ',':
		return advance + 1, data[:1], nil
	}

	if isWordByte(data[0]) {
		j := 1
		for ; j < len(data); j++ {
			if !isWordByte(data[j]) {
				break
			}
		}
		if j == len(data) && !atEOF {
			return advance, nil, nil
		}
		return advance + j, data[:j], nil
	}
	return 0, nil, fmt.Errorf("unknown token starting with %q", data[0])
}

// ParseASN1 parses genetic codes from the NCBI gc.prt file.
func ParseASN1(rd io.Reader) (res []GeneticCode, err error) {
	scanner := bufio.NewScanner(rd)
	scanner.Split(splitASN1)

	mode := modeNormal

	var gc GeneticCode
	var parName string

	for scanner.Scan() {
		text := scanner.Text()
		if strings.HasPrefix(text, "--") {
			continue
		}

		switch mode {
		case modeNormal:
			if text != "Genetic-code-table" {
				return nil, errors.New("expecting 'Genetic-code-table'")
			}
			mode = modeTable
		case modeTable:
			if text != "::=" {
				return nil, errors.New("expecting '::='")
			}
			mode = modeAssign
		case modeAssign:
			if text != "{" {
				return nil, errors.New("expecting '{'")
			}
			mode = modeList
		case modeList:
			switch text {
			case "{":
				gc = GeneticCode{}
				mode = modeElement
			case "}":
				mode = modeEnd
			default:
				return nil, errors.New("expecting '{' or '}'")
			}
		case modeElement:
			parName = text
			mode = modeElementPar
		case modeElementPar:
			switch parName {
			case "name":
				uq, err := unquote(text)
				if err != nil {
					return nil, err
				}
				uq = strings.ReplaceAll(uq, "\n", "")
				if gc.Name == "" {
					gc.Name = uq
				} else {
					gc.ShortName = uq
				}
			case "id":
				id, err := strconv.Atoi(text)
				if err != nil {
					return nil, fmt.Errorf("bad genetic code id: %w", err)
				}
				gc.ID = id
			case "ncbieaa":
				code, err := unquote(text)
				if err != nil {
					return nil, err
				}
				gc.Ncbieaa = code
			case "sncbieaa":
				code, err := unquote(text)
				if err != nil {
					return nil, err
				}
				gc.Sncbieaa = code
			}
			mode = modeElementPreComma
		case modeElementPreComma:
			switch text {
			case ",":
				mode = modeElement
			case "}":
				res = append(res, gc)
				mode = modePreComma
			default:
				return nil, errors.New("expecting ',' or '}'")
			}
		case modePreComma:
			switch text {
			case ",":
				mode = modeList
			case "}":
				mode = modeEnd
			default:
				return nil, errors.New("expecting ',' or '}'")
			}
		case modeEnd:
			return nil, errors.New("unexpected symbols at the end of file")
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}

	if mode != modeEnd {
		return nil, errors.New("unexpected end of stream")
	}

	return res, nil
}
