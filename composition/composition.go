// Package composition computes amino acid composition of a protein
// and draws it.
package composition

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Composition holds residue counts.
type Composition struct {
	Counts map[byte]int
	Total  int
}

// Count counts residues of a protein.
func Count(protein string) Composition {
	c := Composition{Counts: make(map[byte]int), Total: len(protein)}
	for i := 0; i < len(protein); i++ {
		c.Counts[protein[i]]++
	}
	return c
}

// Symbols returns the observed residues sorted.
func (c Composition) Symbols() []byte {
	res := make([]byte, 0, len(c.Counts))
	for aa := range c.Counts {
		res = append(res, aa)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Fractions returns residue frequencies in the Symbols order.
func (c Composition) Fractions() []float64 {
	symbols := c.Symbols()
	f := make([]float64, len(symbols))
	for i, aa := range symbols {
		f[i] = float64(c.Counts[aa])
	}
	if sum := floats.Sum(f); sum > 0 {
		floats.Scale(1/sum, f)
	}
	return f
}

// Entropy returns Shannon entropy of the composition in bits.
func (c Composition) Entropy() float64 {
	if c.Total == 0 {
		return 0
	}
	return stat.Entropy(c.Fractions()) / math.Ln2
}

// Map returns counts keyed by one letter strings, e.g. for JSON.
func (c Composition) Map() map[string]int {
	m := make(map[string]int, len(c.Counts))
	for aa, n := range c.Counts {
		m[string(aa)] = n
	}
	return m
}

// Plot draws a bar chart of residue counts. format is one of the
// formats supported by gonum plot (png, svg, pdf, ...).
func (c Composition) Plot(w io.Writer, title, format string) error {
	if c.Total == 0 {
		return fmt.Errorf("nothing to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Residue"
	p.Y.Label.Text = "Count"

	symbols := c.Symbols()
	values := make(plotter.Values, len(symbols))
	labels := make([]string, len(symbols))
	for i, aa := range symbols {
		values[i] = float64(c.Counts[aa])
		labels[i] = string(aa)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
