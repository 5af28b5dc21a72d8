package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTSV(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tsv")
	b := filepath.Join(dir, "b.tsv")
	require.NoError(t, os.WriteFile(a, []byte("x\tn\n0.5\t1.0e18\n1.5\t3.0e18\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("x\tn\n0.5\t1.5e18\n1.5\t3.0e18\n"), 0o644))
	pa, err := readTSV(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "n"}, pa.Columns)
	s := Summarize("n", pa.Data["n"])
	assert.Equal(t, 1.e18, s.Min)
	assert.Equal(t, 3.e18, s.Max)
	assert.InEpsilon(t, 2.e18, s.Mean, 1.e-15)

	pb, err := readTSV(b)
	require.NoError(t, err)
	d, ok := MaxChange(pa, pb, "n")
	assert.True(t, ok)
	assert.InEpsilon(t, 0.5e18, d, 1.e-15)
	_, ok = MaxChange(pa, pb, "T")
	assert.False(t, ok)

	bad := filepath.Join(dir, "bad.tsv")
	require.NoError(t, os.WriteFile(bad, []byte("x\n0.5\nabc\n"), 0o644))
	_, err = readTSV(bad)
	assert.Error(t, err)
}
