package EdgeFlux1D

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
)

// OutputOptions select what is written while the transport runs.
type OutputOptions struct {
	SaveDirectory string
	SaveTSVs      bool
	SavePlots     bool
	SaveFrequency int // steps between TSV files, the final step is always saved
	PlotTitle     string
	PlotYMax      *float64
	AuxVars       []string
	AuxTitles     []string
	AuxYMin       []*float64
	AuxYMax       []*float64
}

// Output records the profiles seen by a Transport and writes TSV files and plots.
type Output struct {
	Opts       OutputOptions
	Log        logrus.FieldLogger
	TotalSteps int
	last       State
	lastResult *Result
	lastTotal  []float64
	err        error
}

func NewOutput(opts OutputOptions, totalSteps int) (o *Output, err error) {
	if (opts.SaveTSVs || opts.SavePlots) && opts.SaveDirectory == "" {
		err = fmt.Errorf("no directory specified for saving files")
		return
	}
	if opts.SaveDirectory != "" && (opts.SaveTSVs || opts.SavePlots) {
		if err = os.MkdirAll(opts.SaveDirectory, 0o755); err != nil {
			return
		}
	}
	o = &Output{Opts: opts, Log: logrus.StandardLogger(), TotalSteps: totalSteps}
	return
}

// Observe is a StepObserver. The first write failure is kept and reported by Err.
func (o *Output) Observe(s State, r *Result, total []float64) {
	o.last, o.lastResult, o.lastTotal = s, r, total
	if !o.Opts.SaveTSVs || o.err != nil {
		return
	}
	isDone := s.Step == o.TotalSteps
	if isDone || (o.Opts.SaveFrequency > 0 && s.Step%o.Opts.SaveFrequency == 0) {
		name := filepath.Join(o.Opts.SaveDirectory, fmt.Sprintf("step_%06d.tsv", s.Step))
		if o.err = o.writeTSVFile(name, s, r, total); o.err == nil {
			o.Log.WithField("file", name).Debug("saved profiles")
		}
	}
}

func (o *Output) Err() error { return o.err }

// Last returns the most recently observed state and its flux evaluation.
func (o *Output) Last() (State, *Result, []float64) { return o.last, o.lastResult, o.lastTotal }

func (o *Output) writeTSVFile(name string, s State, r *Result, total []float64) (err error) {
	var (
		f *os.File
	)
	if f, err = os.Create(name); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteTSV(f, s, r, total, o.Opts.AuxVars)
}

type column struct {
	name   string
	values []float64
}

func profileColumns(s State, r *Result, total []float64, aux []string) (cols []column) {
	cols = []column{
		{"x", nil}, {"n", s.N.Values}, {"T", s.T.Values}, {"Z", s.Z.Values}, {"D", s.D},
	}
	if r == nil {
		return
	}
	for ch := Anomalous; ch < NumChannels; ch++ {
		cols = append(cols, column{ch.String(), r.Gamma[ch]})
	}
	cols = append(cols, column{"Gamma_total", total})
	for _, name := range aux {
		if v, ok := r.Lookup(name); ok {
			cols = append(cols, column{name, v})
		}
	}
	return
}

// WriteTSV writes one row per cell with a header row of column names.
func WriteTSV(w io.Writer, s State, r *Result, total []float64, aux []string) (err error) {
	var (
		cw   = csv.NewWriter(w)
		cols = profileColumns(s, r, total, aux)
	)
	cw.Comma = '\t'
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.name
	}
	if err = cw.Write(header); err != nil {
		return
	}
	cols[0].values = s.X
	row := make([]string, len(cols))
	for k := range s.X {
		for i, c := range cols {
			var v float64
			if k < len(c.values) {
				v = c.values[k]
			}
			row[i] = strconv.FormatFloat(v, 'e', 10, 64)
		}
		if err = cw.Write(row); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}
