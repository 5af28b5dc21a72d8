package EdgeFlux1D

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/edgeflux/FV1D"
	"github.com/notargets/edgeflux/physics"
)

func TestDiffusivityModels(t *testing.T) {
	cs := newFluxConstants(t)
	Z := FV1D.Field{
		Values: []float64{0, 2, 20, 0},
		Grad:   []float64{0, 0, 0, 100},
	}
	mid := 0.5 * (cs.DMax + cs.DMin)
	{
		cs.Diffusivity = physics.DZohm
		D, err := Diffusivity(cs, Z)
		require.NoError(t, err)
		assert.InDelta(t, mid, D[0], 1.e-14)
		assert.InDelta(t, cs.DMax, D[2], 1.e-12)
	}
	{
		cs.Diffusivity = physics.DStaps
		D, err := Diffusivity(cs, Z)
		require.NoError(t, err)
		assert.InDelta(t, cs.DMax, D[0], 1.e-14)
		assert.InDelta(t, cs.DMax, D[2], 1.e-14) // Z alone does not suppress
		assert.InDelta(t, cs.DMin, D[3], 1.e-3)
	}
	{
		cs.Diffusivity = physics.DFlowShear
		D, err := Diffusivity(cs, Z)
		require.NoError(t, err)
		assert.InDelta(t, cs.DMax, D[0], 1.e-14)
		assert.InDelta(t, cs.DMin+(cs.DMax-cs.DMin)/5, D[1], 1.e-14)
		assert.InDelta(t, cs.DMin+(cs.DMax-cs.DMin)/(1+0.5*1.e4), D[3], 1.e-14)
	}
	{
		cs.Diffusivity = physics.DWeymiensL
		D, err := Diffusivity(cs, Z)
		require.NoError(t, err)
		assert.InDelta(t, cs.DMin+(cs.DMax-cs.DMin)/5, D[1], 1.e-14)
		assert.InDelta(t, cs.DMax, D[3], 1.e-14)
		for _, chi := range HeatDiffusivity(cs, D) {
			assert.Greater(t, chi, 0.)
		}
		assert.InDelta(t, 2*D[1], HeatDiffusivity(cs, D)[1], 1.e-14)
	}
	{ // Flow shear denominator crossing zero
		cs.Diffusivity = physics.DFlowShear
		cs.DParams.ShearA1 = -1
		_, err := Diffusivity(cs, FV1D.Field{Values: []float64{1}, Grad: []float64{0}})
		assert.True(t, errors.Is(err, ErrZeroDenominator))
	}
}

func TestTaylorSource(t *testing.T) {
	cfg := physics.DefaultConfig()
	cfg.ZModel = physics.TaylorModel
	cs, err := physics.NewConstantSet(cfg)
	require.NoError(t, err)
	c := cs.Closure
	n := FV1D.Field{Values: []float64{1, 1, 2}, Grad: []float64{0, 0, 1}}
	T := FV1D.Field{Values: []float64{1, 1, 3}, Grad: []float64{0, 0, 2}}
	Z := FV1D.Field{Values: []float64{c.ZS, c.ZS + 1, c.ZS}, Grad: []float64{0, 0, 0}}
	S, err := TaylorSource(cs, n, T, Z)
	require.NoError(t, err)
	assert.InDelta(t, c.A, S[0], 1.e-14)
	assert.InDelta(t, c.A+c.B+c.C, S[1], 1.e-14)
	assert.InDelta(t, c.CN*3*1/4+c.CT*2/2+c.A, S[2], 1.e-14)

	n.Values[1] = 0
	_, err = TaylorSource(cs, n, T, Z)
	assert.True(t, errors.Is(err, ErrNonPositiveState))
}
