package EdgeFlux1D

import (
	"errors"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/edgeflux/FV1D"
	"github.com/notargets/edgeflux/physics"
	"github.com/notargets/edgeflux/utils"
)

func newFluxConstants(t *testing.T) physics.ConstantSet {
	cs, err := physics.NewConstantSet(physics.DefaultConfig())
	require.NoError(t, err)
	return cs
}

func fluxProfiles(t *testing.T, cs physics.ConstantSet, K int) (mesh *FV1D.Mesh1D, n, T, Z FV1D.Field) {
	var err error
	mesh, err = FV1D.SimpleMesh1D(0, cs.L, K)
	require.NoError(t, err)
	nv, Tv, Zv := InitialState(cs, physics.Numerics{InitialHMode: true}, mesh)
	n, err = mesh.NewField(nv)
	require.NoError(t, err)
	T, err = mesh.NewField(Tv)
	require.NoError(t, err)
	Z, err = mesh.NewField(Zv)
	require.NoError(t, err)
	return
}

func TestEvaluateFixture(t *testing.T) {
	cs := newFluxConstants(t)
	mesh, err := FV1D.SimpleMesh1D(0, cs.L, 3)
	require.NoError(t, err)
	n := FV1D.Uniform(3, 1.e18)
	T := FV1D.Uniform(3, 50)
	Z := FV1D.Uniform(3, 0)
	r, err := Evaluate(mesh, n, T, Z, cs)
	require.NoError(t, err)
	// No gradients and no field: the anomalous flux vanishes
	assert.Equal(t, []float64{0, 0, 0}, r.Flux(Anomalous))
	for ch := Anomalous; ch < NumChannels; ch++ {
		assert.Equal(t, -1, utils.FirstNonFinite(r.Flux(ch)), ch.String())
	}
	for k := 0; k < 3; k++ {
		assert.InEpsilon(t, math.Sqrt(2*cs.Charge*50/cs.MI), r.Diag.VTi[k], 1.e-14)
		assert.InEpsilon(t, cs.RhoPiFactor*r.Diag.VTi[k], r.Diag.RhoPi[k], 1.e-14)
		assert.InEpsilon(t, cs.CollisionFactor*1.e18/math.Pow(50, 1.5), r.Diag.NuEi[k], 1.e-12)
		assert.Greater(t, r.Diag.N0[k], 0.)
		assert.Less(t, r.Diag.DBulk[k], 0.) // x < a_m
	}
	// Neutral density falls off past the step
	assert.Greater(t, r.Diag.N0[0], r.Diag.N0[2])
}

func TestEvaluateFinite(t *testing.T) {
	cs := newFluxConstants(t)
	mesh, n, T, Z := fluxProfiles(t, cs, 50)
	r, err := Evaluate(mesh, n, T, Z, cs)
	require.NoError(t, err)
	for name, v := range r.Fluxes() {
		assert.Len(t, v, 50, name)
		assert.Equal(t, -1, utils.FirstNonFinite(v), name)
	}
	for _, name := range DiagnosticNames() {
		v, ok := r.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, -1, utils.FirstNonFinite(v), name)
	}
	_, ok := r.Lookup("no_such_quantity")
	assert.False(t, ok)
}

func TestEvaluateDeterministic(t *testing.T) {
	cs := newFluxConstants(t)
	mesh, n, T, Z := fluxProfiles(t, cs, 20)
	n0, T0, Z0 := n.Copy(), T.Copy(), Z.Copy()
	e, err := NewEvaluator(cs, mesh)
	require.NoError(t, err)
	r1, err := e.Evaluate(n, T, Z)
	require.NoError(t, err)
	r2, err := e.Evaluate(n, T, Z)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
	// Inputs are untouched
	assert.Equal(t, n0, n)
	assert.Equal(t, T0, T)
	assert.Equal(t, Z0, Z)
	// Results do not alias each other
	r1.Gamma[Anomalous][0] = 42
	assert.NotEqual(t, 42., r2.Gamma[Anomalous][0])
}

func TestNeutralDensityLinearInCoreFlux(t *testing.T) {
	cfg := physics.DefaultConfig()
	cs1, err := physics.NewConstantSet(cfg)
	require.NoError(t, err)
	cfg.GammaC *= 2
	cs2, err := physics.NewConstantSet(cfg)
	require.NoError(t, err)
	mesh, n, T, Z := fluxProfiles(t, cs1, 10)
	r1, err := Evaluate(mesh, n, T, Z, cs1)
	require.NoError(t, err)
	r2, err := Evaluate(mesh, n, T, Z, cs2)
	require.NoError(t, err)
	for k := range r1.Diag.N0 {
		assert.InEpsilon(t, 2*r1.Diag.N0[k], r2.Diag.N0[k], 1.e-14)
	}
	// Only charge exchange depends on the neutrals
	assert.Equal(t, r1.Flux(Anomalous), r2.Flux(Anomalous))
	assert.Equal(t, r1.Flux(BulkViscosity), r2.Flux(BulkViscosity))
	assert.Equal(t, r1.Flux(OrbitLoss), r2.Flux(OrbitLoss))
}

func TestSingularRadius(t *testing.T) {
	cs := newFluxConstants(t)
	mesh, n, T, Z := fluxProfiles(t, cs, 5)
	cs.AM = mesh.X[2]
	_, err := NewEvaluator(cs, mesh)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingularRadius))
	var dv *DomainViolation
	require.True(t, errors.As(err, &dv))
	assert.Equal(t, 2, dv.Cell)
	assert.Equal(t, BulkViscosity.String(), dv.Channel)

	r, err := Evaluate(mesh, n, T, Z, cs)
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, ErrSingularRadius))
}

func TestNearSingularRadiusWarning(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	cs := newFluxConstants(t)
	mesh, n, T, Z := fluxProfiles(t, cs, 5)

	hook.Reset()
	_, err := NewEvaluator(cs, mesh)
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())

	cs.AM = mesh.X[2] + 0.25*mesh.H[2]
	hook.Reset()
	e, err := NewEvaluator(cs, mesh)
	require.NoError(t, err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Contains(t, entry.Data["cells"], 2)
	assert.Equal(t, cs.AM, entry.Data["a_m"])
	// Still evaluates, only the exact hit is rejected
	r, err := e.Evaluate(n, T, Z)
	require.NoError(t, err)
	assert.Len(t, r.Gamma[BulkViscosity], mesh.K)
}

func TestZNegationFlipsFieldTerm(t *testing.T) {
	cs := newFluxConstants(t)
	mesh, n, T, Z := fluxProfiles(t, cs, 12)
	zVals := make([]float64, mesh.K)
	for k, x := range mesh.X {
		zVals[k] = -0.5 - 10*x
	}
	Z, err := mesh.NewField(zVals)
	require.NoError(t, err)
	rp, err := Evaluate(mesh, n, T, Z, cs)
	require.NoError(t, err)
	rm, err := Evaluate(mesh, n, T, Z.Scale(-1), cs)
	require.NoError(t, err)
	for k := range zVals {
		var (
			gZ    = rp.Diag.GZAn[k]
			rest  = rp.Diag.GNAn[k]*n.Grad[k]/n.Values[k] + rp.Diag.GTAn[k]*T.Grad[k]/T.Values[k]
			scale = math.Abs(rest) + math.Abs(gZ*zVals[k])
		)
		assert.Equal(t, gZ, rm.Diag.GZAn[k])
		assert.InDelta(t, 2*gZ*zVals[k], rp.Gamma[Anomalous][k]-rm.Gamma[Anomalous][k], 1.e-12*scale)
		assert.InDelta(t, 2*rest, rp.Gamma[Anomalous][k]+rm.Gamma[Anomalous][k], 1.e-12*scale)
	}
}

func TestEvaluateDomainErrors(t *testing.T) {
	cs := newFluxConstants(t)
	mesh, n, T, Z := fluxProfiles(t, cs, 6)
	{ // Zero density
		bad := n.Copy()
		bad.Values[3] = 0
		r, err := Evaluate(mesh, bad, T, Z, cs)
		assert.Nil(t, r)
		assert.True(t, errors.Is(err, ErrNonPositiveState))
		var dv *DomainViolation
		require.True(t, errors.As(err, &dv))
		assert.Equal(t, 3, dv.Cell)
		assert.Equal(t, "n", dv.Quantity)
	}
	{ // Negative temperature
		bad := T.Copy()
		bad.Values[0] = -1
		_, err := Evaluate(mesh, n, bad, Z, cs)
		assert.True(t, errors.Is(err, ErrNonPositiveState))
	}
	{ // Non-finite field
		bad := Z.Copy()
		bad.Values[5] = math.NaN()
		_, err := Evaluate(mesh, n, T, bad, cs)
		assert.True(t, errors.Is(err, ErrNonFinite))
	}
	{ // Wrong length
		_, err := Evaluate(mesh, FV1D.Uniform(4, 1.e18), T, Z, cs)
		assert.True(t, errors.Is(err, ErrShapeMismatch))
	}
	{ // Valid inputs whose orbit loss radicand overflows
		m3, err := FV1D.SimpleMesh1D(0, cs.L, 3)
		require.NoError(t, err)
		r, err := Evaluate(m3, FV1D.Uniform(3, 1.e18), FV1D.Uniform(3, 50), FV1D.Uniform(3, 1.e80), cs)
		assert.Nil(t, r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNonFinite))
		var dv *DomainViolation
		require.True(t, errors.As(err, &dv))
		assert.Equal(t, "Gamma_ol", dv.Channel)
		assert.Equal(t, "radical_ol", dv.Quantity)
		assert.Equal(t, 0, dv.Cell)
		assert.True(t, math.IsInf(dv.Value, 1))
	}
}

func TestAggregate(t *testing.T) {
	r := &Result{}
	r.Gamma[Anomalous] = []float64{1.5, -2}
	r.Gamma[ChargeExchange] = []float64{math.NaN(), 1}
	r.Gamma[BulkViscosity] = []float64{0.25, 3}
	r.Gamma[OrbitLoss] = []float64{-4, 0.5}

	total, err := Aggregate(r, AllChannels.Without(ChargeExchange))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5 + 0.25 - 4, -2 + 3 + 0.5}, total)

	_, err = Aggregate(r, AllChannels)
	assert.True(t, errors.Is(err, ErrNonFinite))

	total, err = Aggregate(r, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, total)

	set := NewChannelSet(physics.ChannelSwitches{Anomalous: true, OrbitLoss: true})
	assert.Equal(t, "{Gamma_an, Gamma_ol}", set.String())
	assert.True(t, set.Has(OrbitLoss))
	assert.False(t, set.Has(BulkViscosity))
	assert.Equal(t, AllChannels, NewChannelSet(physics.AllChannels()))
}
