package gcode

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
)

// StandardName is the name of the table returned by Standard.
const StandardName = "Standard"

//go:embed tables/standard.tsv
var standardTSV []byte

//go:embed tables/gc.prt
var ncbiPrt []byte

// Standard builds the standard genetic code from the distributed
// table file. Every call builds a new table; callers are expected to
// keep the result.
func Standard() (*Table, error) {
	return Read(bytes.NewReader(standardTSV), StandardName)
}

// NCBICodes returns the genetic codes distributed with the package,
// sorted by id.
func NCBICodes() ([]GeneticCode, error) {
	codes, err := ParseASN1(bytes.NewReader(ncbiPrt))
	if err != nil {
		return nil, fmt.Errorf("parsing distributed gc.prt: %w", err)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].ID < codes[j].ID })
	return codes, nil
}

// Lookup returns the genetic code with given id.
func Lookup(codes []GeneticCode, id int) (GeneticCode, bool) {
	for _, gc := range codes {
		if gc.ID == id {
			return gc, true
		}
	}
	return GeneticCode{}, false
}

// NCBI builds a table for one of the distributed NCBI genetic codes.
func NCBI(id int) (*Table, error) {
	codes, err := NCBICodes()
	if err != nil {
		return nil, err
	}
	gc, ok := Lookup(codes, id)
	if !ok {
		return nil, fmt.Errorf("couldn't find genetic code with id=%d", id)
	}
	return gc.Table()
}
