package EdgeFlux1D

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTSV(t *testing.T, name string) [][]string {
	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = '\t'
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestOutputTaylor(t *testing.T) {
	dir := t.TempDir()
	cfg := taylorConfig()
	cfg.Numerics.TotalTimeSteps = 3
	tr := newTestTransport(t, cfg)
	out, err := NewOutput(OutputOptions{
		SaveDirectory: dir,
		SaveTSVs:      true,
		SavePlots:     true,
		SaveFrequency: 2,
		AuxVars:       []string{"rho_pi"},
	}, cfg.Numerics.TotalTimeSteps)
	require.NoError(t, err)
	out.Log = quietLogger()
	tr.AddObserver(out.Observe)
	require.NoError(t, tr.Run(context.Background()))
	require.NoError(t, out.Err())

	for _, step := range []string{"step_000002.tsv", "step_000003.tsv"} {
		records := readTSV(t, filepath.Join(dir, step))
		require.Len(t, records, cfg.Numerics.NX+1)
		// No flux channels in the Taylor model
		assert.Equal(t, []string{"x", "n", "T", "Z", "D"}, records[0])
	}
	assert.NoFileExists(t, filepath.Join(dir, "step_000001.tsv"))

	files, err := out.SavePlots()
	require.NoError(t, err)
	assert.Len(t, files, 3)
	for _, f := range files {
		assert.FileExists(t, f)
	}
}

func TestWriteTSVFluxModel(t *testing.T) {
	cs := newFluxConstants(t)
	mesh, n, T, Z := fluxProfiles(t, cs, 4)
	r, err := Evaluate(mesh, n, T, Z, cs)
	require.NoError(t, err)
	total, err := Aggregate(r, AllChannels)
	require.NoError(t, err)
	D, err := Diffusivity(cs, Z)
	require.NoError(t, err)
	s := State{X: mesh.X, N: n, T: T, Z: Z, D: D}

	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, s, r, total, []string{"v_Ti", "unknown"}))
	cr := csv.NewReader(&buf)
	cr.Comma = '\t'
	records, err := cr.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"x", "n", "T", "Z", "D",
		"Gamma_an", "Gamma_cx", "Gamma_bulk", "Gamma_ol", "Gamma_total", "v_Ti"}, records[0])
	for k := 0; k < 4; k++ {
		x, err := strconv.ParseFloat(records[k+1][0], 64)
		require.NoError(t, err)
		assert.InEpsilon(t, mesh.X[k], x, 1.e-9)
		g, err := strconv.ParseFloat(records[k+1][9], 64)
		require.NoError(t, err)
		assert.InEpsilon(t, total[k], g, 1.e-9)
	}
}

func TestNewOutputNeedsDirectory(t *testing.T) {
	_, err := NewOutput(OutputOptions{SaveTSVs: true}, 10)
	assert.Error(t, err)
	o, err := NewOutput(OutputOptions{}, 10)
	require.NoError(t, err)
	files, err := o.SavePlots()
	assert.NoError(t, err)
	assert.Empty(t, files)
}
