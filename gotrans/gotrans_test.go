package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/gotrans/gcode"
	"bitbucket.org/Davydov/gotrans/translate"
)

func init() {
	for _, module := range loggers {
		logging.SetLevel(logging.ERROR, module)
	}
}

// resetOptions sets all the command line options to defaults.
func resetOptions(in string) {
	*input = in
	*gcodeID = 0
	*gcFileName = ""
	*tableF = ""
	*quiet = false
	*fastaName = ""
	*jsonF = ""
	*plotF = ""
	*dbF = ""
}

func writeFile(tst *testing.T, name, content string) string {
	fn := filepath.Join(tst.TempDir(), name)
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		tst.Fatal(err)
	}
	return fn
}

func TestParse(tst *testing.T) {
	defer resetOptions("")
	_, err := app.Parse([]string{"--gcode", "2", "--quiet", "ATGTGA"})
	if err != nil {
		tst.Fatal("Error parsing command line:", err)
	}
	if *gcodeID != 2 || !*quiet || *input != "ATGTGA" || *logLevel != "notice" {
		tst.Error("Wrong options:", *gcodeID, *quiet, *input, *logLevel)
	}
}

func TestReadInput(tst *testing.T) {
	s, err := readInput("ATGCCC", nil)
	if err != nil || s != "ATGCCC" {
		tst.Error("Literal input:", s, err)
	}

	fn := writeFile(tst, "seq.txt", "ATG\nCCC\n")
	s, err = readInput(fn, nil)
	if err != nil || s != "ATG\nCCC\n" {
		tst.Error("File input:", s, err)
	}

	s, err = readInput("-", strings.NewReader("atgccc"))
	if err != nil || s != "atgccc" {
		tst.Error("Standard input:", s, err)
	}

	if _, err = readInput(tst.TempDir(), nil); err == nil {
		tst.Error("Directory should not be accepted")
	}
}

func TestRun(tst *testing.T) {
	defer resetOptions("")
	resetOptions("atg ccc")
	var buf bytes.Buffer
	summary, err := run(&buf)
	if err != nil {
		tst.Fatal("Error running:", err)
	}
	if buf.String() != "MP\n" {
		tst.Errorf("Wrong output: %q", buf.String())
	}
	if summary.Codons != 2 || summary.Protein != "MP" || summary.Table != gcode.StandardName ||
		summary.TableCodons != 64 || summary.Composition["M"] != 1 || summary.Cached {
		tst.Error("Wrong summary:", summary)
	}
}

func TestRunLines(tst *testing.T) {
	defer resetOptions("")
	resetOptions(writeFile(tst, "seq.txt", strings.Repeat("GCT\n", 125)))
	var buf bytes.Buffer
	if _, err := run(&buf); err != nil {
		tst.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 || len(lines[0]) != 60 || len(lines[1]) != 60 || len(lines[2]) != 5 {
		tst.Error("Wrong lines:", lines)
	}

	buf.Reset()
	*quiet = true
	if _, err := run(&buf); err != nil {
		tst.Fatal(err)
	}
	if buf.Len() != 0 {
		tst.Error("Quiet run printed output")
	}
}

func TestRunFasta(tst *testing.T) {
	defer resetOptions("")
	resetOptions("ATGCCC")
	*fastaName = "prot"
	var buf bytes.Buffer
	if _, err := run(&buf); err != nil {
		tst.Fatal(err)
	}
	if buf.String() != ">prot\nMP\n" {
		tst.Errorf("Wrong FASTA output: %q", buf.String())
	}
}

func TestRunGeneticCodes(tst *testing.T) {
	defer resetOptions("")
	resetOptions("TGAAGA")
	*gcodeID = 2
	summary, err := run(&bytes.Buffer{})
	if err != nil {
		tst.Fatal(err)
	}
	if summary.Protein != "W*" {
		tst.Error("Wrong mitochondrial translation:", summary.Protein)
	}

	*gcodeID = 0
	*tableF = writeFile(tst, "table.tsv", "84 71 65 87\nA G A R\n")
	summary, err = run(&bytes.Buffer{})
	if err != nil {
		tst.Fatal(err)
	}
	if summary.Protein != "WR" || summary.Table != "table.tsv" || summary.TableCodons != 2 {
		tst.Error("Wrong custom table translation:", summary)
	}
}

func TestRunGCFile(tst *testing.T) {
	defer resetOptions("")
	resetOptions("CTG")
	*gcFileName = writeFile(tst, "gc.prt", `Genetic-code-table ::= {
 {
  name "Yeast Mitochondrial" ,
  id 3 ,
  ncbieaa  "FFLLSSSSYY**CCWWTTTTPPPPHHQQRRRRIIMMTTTTNNKKSSRRVVVVAAAADDEEGGGG"
 }
}`)
	*gcodeID = 3
	summary, err := run(&bytes.Buffer{})
	if err != nil {
		tst.Fatal(err)
	}
	if summary.Protein != "T" || summary.Table != "Yeast Mitochondrial" {
		tst.Error("Wrong translation:", summary)
	}

	*gcodeID = 1
	_, err = run(&bytes.Buffer{})
	if exitCode(err) != exitTable {
		tst.Error("Missing genetic code should be a table error, got", err)
	}
}

func TestRunErrors(tst *testing.T) {
	defer resetOptions("")

	resetOptions("ATGXCC")
	_, err := run(&bytes.Buffer{})
	if !errors.Is(err, translate.ErrInvalidCharacters) || exitCode(err) != exitInput {
		tst.Error("Expected input error, got", err)
	}

	resetOptions("ATG")
	*tableF = writeFile(tst, "dup.tsv", "A T G M\nA T G V\n")
	_, err = run(&bytes.Buffer{})
	if !errors.Is(err, gcode.ErrAmbiguousTable) || exitCode(err) != exitTable {
		tst.Error("Expected table error, got", err)
	}

	resetOptions("ATG")
	*gcodeID = 42
	_, err = run(&bytes.Buffer{})
	if exitCode(err) != exitTable {
		tst.Error("Unknown genetic code should be a table error, got", err)
	}

	resetOptions("TAG")
	*tableF = writeFile(tst, "small.tsv", "A T G M\n")
	_, err = run(&bytes.Buffer{})
	if !errors.Is(err, gcode.ErrUnknownCodon) || exitCode(err) != exitInput {
		tst.Error("Expected unknown codon, got", err)
	}
}

func TestRunCache(tst *testing.T) {
	defer resetOptions("")
	resetOptions("ATGCCCTAA")
	*dbF = filepath.Join(tst.TempDir(), "cache.db")

	summary, err := run(&bytes.Buffer{})
	if err != nil {
		tst.Fatal(err)
	}
	if summary.Cached {
		tst.Error("First run should not be cached")
	}

	*input = "atg ccc taa"
	var buf bytes.Buffer
	summary, err = run(&buf)
	if err != nil {
		tst.Fatal(err)
	}
	if !summary.Cached || summary.Protein != "MP*" || buf.String() != "MP*\n" {
		tst.Error("Second run should be cached:", summary, buf.String())
	}

	*gcodeID = 2
	summary, err = run(&bytes.Buffer{})
	if err != nil {
		tst.Fatal(err)
	}
	if summary.Cached {
		tst.Error("Other table should not hit the cache")
	}

	*input = "ATGX"
	if _, err = run(&bytes.Buffer{}); !errors.Is(err, translate.ErrLengthNotMultipleOfThree) {
		tst.Error("Invalid input should fail with cache, got", err)
	}
}

func TestRunPlotJSON(tst *testing.T) {
	defer resetOptions("")
	resetOptions("ATGCCCCCCAAA")
	dir := tst.TempDir()
	*plotF = filepath.Join(dir, "comp.svg")
	summary, err := run(&bytes.Buffer{})
	if err != nil {
		tst.Fatal(err)
	}
	if fi, err := os.Stat(*plotF); err != nil || fi.Size() == 0 {
		tst.Error("Plot was not written:", err)
	}

	fn := filepath.Join(dir, "summary.json")
	writeJSON(fn, summary)
	b, err := os.ReadFile(fn)
	if err != nil {
		tst.Fatal(err)
	}
	if !bytes.Contains(b, []byte(`"protein":"MPPK"`)) {
		tst.Error("Wrong json:", string(b))
	}
}
