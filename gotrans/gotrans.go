/*

Gotrans translates a DNA sequence into a protein sequence.

The basic usage of gotrans looks like this:

	gotrans ATGCCCTAA

, the argument is either a file name, "-" for the standard input or
the sequence itself. The protein is printed in lines of 60 residues.

The standard genetic code is used by default. Another NCBI genetic
code or a custom four column table can be selected:

	gotrans -gcode 2 mito.txt
	gotrans -table mytable.tsv seq.txt

To see all the options run:

	gotrans -h

*/
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/gotrans/bio"
	"bitbucket.org/Davydov/gotrans/cache"
	"bitbucket.org/Davydov/gotrans/composition"
	"bitbucket.org/Davydov/gotrans/gcode"
	"bitbucket.org/Davydov/gotrans/translate"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("gotrans")
var formatter = logging.MustStringFormatter(`%{message}`)

// loggers lists all the package loggers.
var loggers = []string{"gotrans", "gcode", "translate", "cache"}

// Exit codes.
const (
	exitInput = 1
	exitTable = 2
)

// command-line options
var (
	// application
	app = kingpin.New("gotrans", "DNA to protein translator").Version(version)

	// input
	input = app.Arg("input", "sequence file, '-' for standard input, or the sequence itself").Required().String()

	// codon table
	gcodeID    = app.Flag("gcode", "NCBI genetic code id, distributed standard table by default").Default("0").Int()
	gcFileName = app.Flag("gcfile", "NCBI genetic codes file in ASN.1 format (gc.prt), used with -gcode").ExistingFile()
	tableF     = app.Flag("table", "codon table file with four columns (three codon letters and amino acid); overrides -gcode").ExistingFile()

	// output
	quiet     = app.Flag("quiet", "don't print the protein").Bool()
	fastaName = app.Flag("fasta", "print the protein in FASTA format with this name").String()
	jsonF     = app.Flag("json", "write json summary to a file").String()
	plotF     = app.Flag("plot", "plot residue composition to a file (png, svg, pdf...)").String()
	dbF       = app.Flag("db", "cache translations in a bolt database").String()

	// technical
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
)

// configError marks failures to load the codon table.
type configError struct {
	err error
}

func (e configError) Error() string {
	return "loading codon table: " + e.err.Error()
}

func (e configError) Unwrap() error {
	return e.err
}

// exitCode returns the exit code for an error returned by run.
func exitCode(err error) int {
	var ce configError
	if errors.As(err, &ce) || gcode.IsTableError(err) {
		return exitTable
	}
	return exitInput
}

// loadTable creates a codon table from the command line options.
func loadTable() (*gcode.Table, error) {
	switch {
	case *tableF != "":
		f, err := os.Open(*tableF)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return gcode.Read(f, filepath.Base(*tableF))
	case *gcFileName != "":
		f, err := os.Open(*gcFileName)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		codes, err := gcode.ParseASN1(f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", *gcFileName, err)
		}
		id := *gcodeID
		if id == 0 {
			id = 1
		}
		gc, ok := gcode.Lookup(codes, id)
		if !ok {
			return nil, fmt.Errorf("couldn't find genetic code with id=%d in %s", id, *gcFileName)
		}
		return gc.Table()
	case *gcodeID > 0:
		return gcode.NCBI(*gcodeID)
	}
	return gcode.Standard()
}

// translateCached translates the sequence, using the cache if it is
// not nil.
func translateCached(raw string, table *gcode.Table, c *cache.Cache) (translate.Result, bool, error) {
	if c == nil {
		res, err := translate.Translate(raw, table)
		return res, false, err
	}

	seq := translate.Normalize(raw)
	if err := translate.Validate(seq); err != nil {
		return translate.Result{}, false, err
	}

	key := cache.Key(table, seq)
	rec, err := c.Get(key)
	if err != nil {
		log.Warning("Error reading cache:", err)
	} else if rec != nil {
		log.Info("Using cached translation")
		return translate.Result{Protein: rec.Protein}, true, nil
	}

	res, err := translate.Translate(seq, table)
	if err != nil {
		return res, false, err
	}
	err = c.Put(key, &cache.Record{
		Table:   table.Name(),
		Digest:  table.Digest(),
		Protein: res.Protein,
		Codons:  res.Len(),
		Created: time.Now().UTC(),
	})
	if err != nil {
		log.Warning("Error writing cache:", err)
	}
	return res, false, nil
}

// printProtein writes the protein lines to w.
func printProtein(w io.Writer, res translate.Result) error {
	bw := bufio.NewWriter(w)
	if *fastaName != "" {
		bw.WriteString(bio.Sequence{Name: *fastaName, Sequence: res.Protein}.String())
	} else {
		for line := range res.Lines() {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// writePlot plots the residue composition.
func writePlot(fn string, comp composition.Composition) error {
	format := filepath.Ext(fn)
	if len(format) < 2 {
		return fmt.Errorf("can't determine plot format from %s", fn)
	}
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if err := comp.Plot(f, "Residue composition", format[1:]); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// run translates the input and writes the protein to w.
func run(w io.Writer) (summary *RunSummary, err error) {
	startTime := time.Now()
	summary = &RunSummary{}

	table, err := loadTable()
	if err != nil {
		return nil, configError{err}
	}
	log.Infof("Codon table: %s, %d codons", table.Name(), table.Len())
	summary.Table = table.Name()
	summary.TableCodons = table.Len()

	raw, err := readInput(*input, os.Stdin)
	if err != nil {
		return nil, err
	}

	var c *cache.Cache
	if *dbF != "" {
		c, err = cache.Open(*dbF)
		if err != nil {
			return nil, err
		}
		defer c.Close()
	}

	res, hit, err := translateCached(raw, table, c)
	if err != nil {
		return nil, err
	}
	log.Infof("Translated %d codons", res.Len())
	summary.Codons = res.Len()
	summary.Protein = res.Protein
	summary.Cached = hit

	if !*quiet {
		if err := printProtein(w, res); err != nil {
			return nil, err
		}
	}

	comp := composition.Count(res.Protein)
	summary.Composition = comp.Map()
	summary.Entropy = comp.Entropy()
	log.Debugf("Entropy: %v bits", summary.Entropy)

	if *plotF != "" {
		if err := writePlot(*plotF, comp); err != nil {
			log.Error("Error creating plot:", err)
		}
	}

	summary.Time = time.Since(startTime).Seconds()
	return summary, nil
}

// setupLogging configures the logging backend and returns the log
// file, if any.
func setupLogging() (*os.File, error) {
	logging.SetFormatter(formatter)

	var f *os.File
	var backend *logging.LogBackend
	if *outLogF != "" {
		var err error
		f, err = os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		return f, err
	}
	for _, module := range loggers {
		logging.SetLevel(level, module)
	}
	return f, nil
}

// writeJSON writes the summary in json format.
func writeJSON(fn string, summary *RunSummary) {
	j, err := json.Marshal(summary)
	if err != nil {
		log.Error(err)
		return
	}
	log.Debug(string(j))
	if err := os.WriteFile(fn, j, 0666); err != nil {
		log.Error("Error creating json output file:", err)
	}
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logFile, err := setupLogging()
	if err != nil {
		log.Fatal("Error setting up logging:", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	summary, err := run(os.Stdout)
	if err != nil {
		log.Critical(err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(exitCode(err))
	}
	summary.Version = version
	summary.CommandLine = os.Args

	// output summary in json format
	if *jsonF != "" {
		writeJSON(*jsonF, summary)
	}
}
