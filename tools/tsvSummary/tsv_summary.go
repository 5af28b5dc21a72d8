package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	tsvFile     string
	compareFile string
)

func main() {
	tsvFilePtr := flag.String("tsvFile", tsvFile, "profile file written by edgeflux 1D")
	compareFilePtr := flag.String("compare", compareFile, "second profile file, the max change per column is reported")
	flag.Parse()
	tsvFile, compareFile = *tsvFilePtr, *compareFilePtr
	if len(tsvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", tsvFile)
	prof, err := readTSV(tsvFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	for _, col := range prof.Columns {
		s := Summarize(col, prof.Data[col])
		fmt.Printf("%-16s min = %13.5e, max = %13.5e, mean = %13.5e\n", s.Name, s.Min, s.Max, s.Mean)
	}
	if len(compareFile) == 0 {
		return
	}
	other, err := readTSV(compareFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	for _, col := range prof.Columns {
		if d, ok := MaxChange(prof, other, col); ok {
			fmt.Printf("%-16s max change = %13.5e\n", col, d)
		}
	}
}

// Profile is a TSV file read column wise.
type Profile struct {
	Columns []string
	Data    map[string][]float64
}

type ColumnSummary struct {
	Name           string
	Min, Max, Mean float64
}

func Summarize(name string, v []float64) (s ColumnSummary) {
	s.Name = name
	if len(v) == 0 {
		s.Min, s.Max, s.Mean = math.NaN(), math.NaN(), math.NaN()
		return
	}
	s.Min, s.Max = floats.Min(v), floats.Max(v)
	s.Mean = stat.Mean(v, nil)
	return
}

// MaxChange is the max norm of the difference of a column present in both profiles.
func MaxChange(a, b *Profile, col string) (d float64, ok bool) {
	va, oka := a.Data[col]
	vb, okb := b.Data[col]
	if !oka || !okb || len(va) != len(vb) {
		return
	}
	return floats.Distance(va, vb, math.Inf(1)), true
}

func readTSV(tsvFile string) (prof *Profile, err error) {
	var (
		records [][]string
		f       *os.File
	)
	if f, err = os.Open(tsvFile); err != nil {
		return
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = '\t'
	if records, err = r.ReadAll(); err != nil {
		return
	}
	if len(records) == 0 {
		err = fmt.Errorf("%s: empty file", tsvFile)
		return
	}
	prof = &Profile{Columns: records[0], Data: make(map[string][]float64)}
	for i, rec := range records[1:] {
		for j, txt := range rec {
			var val float64
			if val, err = strconv.ParseFloat(txt, 64); err != nil {
				err = fmt.Errorf("%s: row %d, column %s: %w", tsvFile, i+1, prof.Columns[j], err)
				return
			}
			prof.Data[prof.Columns[j]] = append(prof.Data[prof.Columns[j]], val)
		}
	}
	return
}
