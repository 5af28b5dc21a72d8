package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPOW(t *testing.T) {
	for p := -10; p <= 10; p++ {
		assert.InDeltaf(t, math.Pow(1.3, float64(p)), POW(1.3, p), 1.e-12, "p = %d", p)
	}
}

func TestLinspace(t *testing.T) {
	v := Linspace(0, 1, 5)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, v)
	assert.Equal(t, []float64{2}, Linspace(2, 3, 1))
}

func TestFindAndFinite(t *testing.T) {
	v := []float64{-2, 0.5, 3, -0.1}
	assert.Equal(t, []int{0, 2}, Find(v, Greater, 1, true))
	assert.Equal(t, []int{0, 3}, Find(v, Less, 0, false))
	assert.Equal(t, -1, FirstNonFinite(v))
	assert.Equal(t, 1, FirstNonFinite([]float64{0, math.Inf(1), math.NaN()}))
	assert.Equal(t, 2.5, MaxAbsDiff([]float64{1, 2}, []float64{-1.5, 2}))
}
