package EdgeFlux1D

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/notargets/edgeflux/FV1D"
	"github.com/notargets/edgeflux/physics"
	"github.com/notargets/edgeflux/utils"
)

// Diagnostics are the intermediate quantities of one evaluation, one value per cell.
type Diagnostics struct {
	VTi, VTe                 []float64 // thermal velocities [m/s]
	N0                       []float64 // neutral density [m^-3]
	RhoPi, RhoPe             []float64 // poloidal gyro radii [m]
	OmegaT, OmegaBi, OmegaBe []float64 // transition and bounce frequencies [s^-1]
	WBi                      []float64 // banana width [m]
	NuEi, NuIi               []float64 // collision frequencies [s^-1]
	NuAi, NuAe               []float64 // collisionalities
	DAn, GNAn, GTAn, GZAn    []float64
	IonizationRate, CXRate   []float64 // [m^3 s^-1]
	GNCX, GTCX, GZCX         []float64
	PlasmaDisp, DBulk        []float64
	GOl, RadicalOl           []float64
}

func newDiagnostics(K int) (d Diagnostics) {
	for _, p := range d.pointers() {
		*p = make([]float64, K)
	}
	return
}

func (d *Diagnostics) pointers() map[string]*[]float64 {
	return map[string]*[]float64{
		"v_Ti":            &d.VTi,
		"v_Te":            &d.VTe,
		"n_0":             &d.N0,
		"rho_pi":          &d.RhoPi,
		"rho_pe":          &d.RhoPe,
		"omega_t":         &d.OmegaT,
		"omega_bi":        &d.OmegaBi,
		"omega_be":        &d.OmegaBe,
		"w_bi":            &d.WBi,
		"nu_ei":           &d.NuEi,
		"nu_ii":           &d.NuIi,
		"nu_ai":           &d.NuAi,
		"nu_ae":           &d.NuAe,
		"D_an":            &d.DAn,
		"g_n_an":          &d.GNAn,
		"g_T_an":          &d.GTAn,
		"g_Z_an":          &d.GZAn,
		"ionization_rate": &d.IonizationRate,
		"cx_rate":         &d.CXRate,
		"g_n_cx":          &d.GNCX,
		"g_T_cx":          &d.GTCX,
		"g_Z_cx":          &d.GZCX,
		"plasma_disp":     &d.PlasmaDisp,
		"D_bulk":          &d.DBulk,
		"g_ol":            &d.GOl,
		"radical_ol":      &d.RadicalOl,
	}
}

// DiagnosticNames lists the names accepted by Result.Lookup, sorted.
func DiagnosticNames() (names []string) {
	var d Diagnostics
	for name := range d.pointers() {
		names = append(names, name)
	}
	for ch := Anomalous; ch < NumChannels; ch++ {
		names = append(names, ch.String())
	}
	sort.Strings(names)
	return
}

// Result is the output of one evaluation. It shares no storage with the inputs.
type Result struct {
	Gamma [NumChannels][]float64
	Diag  Diagnostics
}

func (r *Result) Flux(ch Channel) []float64 { return r.Gamma[ch] }

// Fluxes maps channel names to flux fields.
func (r *Result) Fluxes() map[string][]float64 {
	m := make(map[string][]float64, NumChannels)
	for ch := Anomalous; ch < NumChannels; ch++ {
		m[ch.String()] = r.Gamma[ch]
	}
	return m
}

// Lookup finds a flux channel or diagnostic by its conventional name.
func (r *Result) Lookup(name string) (v []float64, ok bool) {
	for ch := Anomalous; ch < NumChannels; ch++ {
		if ch.String() == name {
			return r.Gamma[ch], true
		}
	}
	var p *[]float64
	if p, ok = r.Diag.pointers()[name]; ok {
		v = *p
	}
	return
}

// Evaluator computes the flux channels of the full flux model. It holds a copy
// of the constants and the mesh, and no state between calls.
type Evaluator struct {
	cs   physics.ConstantSet
	mesh *FV1D.Mesh1D
}

// NewEvaluator rejects meshes with a cell centre on the singular radius x = a_m
// and warns when centres fall within one cell width of it.
func NewEvaluator(cs physics.ConstantSet, mesh *FV1D.Mesh1D) (e *Evaluator, err error) {
	if cells := mesh.CellsAt(cs.AM); len(cells) != 0 {
		err = &DomainViolation{
			Channel:  BulkViscosity.String(),
			Cell:     cells[0],
			Quantity: "x - a_m",
			Value:    0,
			Err:      ErrSingularRadius,
		}
		return
	}
	if cells := mesh.CellsNear(cs.AM, mesh.MinWidth()); len(cells) != 0 {
		logrus.WithFields(logrus.Fields{
			"a_m":   cs.AM,
			"cells": cells,
		}).Warn("cell centres within one cell width of the bulk viscosity singular radius")
	}
	e = &Evaluator{cs: cs, mesh: mesh}
	return
}

// Evaluate is the one-shot form of Evaluator.Evaluate.
func Evaluate(mesh *FV1D.Mesh1D, n, T, Z FV1D.Field, cs physics.ConstantSet) (r *Result, err error) {
	var e *Evaluator
	if e, err = NewEvaluator(cs, mesh); err != nil {
		return
	}
	return e.Evaluate(n, T, Z)
}

func (e *Evaluator) Evaluate(n, T, Z FV1D.Field) (r *Result, err error) {
	var (
		K = e.mesh.K
	)
	for _, f := range []struct {
		name  string
		field FV1D.Field
	}{{"n", n}, {"T", T}, {"Z", Z}} {
		if len(f.field.Values) != K || len(f.field.Grad) != K {
			err = &DomainViolation{Channel: "state", Cell: -1, Quantity: f.name,
				Value: float64(len(f.field.Values)), Err: ErrShapeMismatch}
			return
		}
	}
	r = &Result{Diag: newDiagnostics(K)}
	for ch := range r.Gamma {
		r.Gamma[ch] = make([]float64, K)
	}
	for k := 0; k < K; k++ {
		if err = e.cell(k, n, T, Z, r); err != nil {
			return nil, err
		}
	}
	return
}

// guard records the first domain violation of a cell evaluation.
type guard struct {
	cell int
	err  error
}

func (g *guard) fail(channel, quantity string, val float64, err error) {
	if g.err == nil {
		g.err = &DomainViolation{Channel: channel, Cell: g.cell, Quantity: quantity, Value: val, Err: err}
	}
}

func (g *guard) finite(channel, quantity string, val float64) float64 {
	if !utils.IsFinite(val) {
		g.fail(channel, quantity, val, ErrNonFinite)
	}
	return val
}

func (g *guard) sqrt(channel, quantity string, arg float64) float64 {
	if arg < 0 {
		g.fail(channel, quantity, arg, ErrNegativeSqrt)
		return 0
	}
	return g.finite(channel, quantity, math.Sqrt(arg))
}

func (g *guard) div(channel, quantity string, num, den float64) float64 {
	if den == 0 {
		g.fail(channel, quantity, num, ErrZeroDenominator)
		return 0
	}
	return g.finite(channel, quantity, num/den)
}

const state = "state"

func (e *Evaluator) cell(k int, nF, TF, ZF FV1D.Field, r *Result) error {
	var (
		cs = &e.cs
		d  = &r.Diag
		g  = &guard{cell: k}
		x  = e.mesh.X[k]
		n  = nF.Values[k]
		T  = TF.Values[k]
		Z  = ZF.Values[k]
		dn = nF.Grad[k]
		dT = TF.Grad[k]
		an = Anomalous.String()
		cx = ChargeExchange.String()
		bk = BulkViscosity.String()
		ol = OrbitLoss.String()
	)
	switch {
	case !(n > 0) || math.IsInf(n, 0):
		g.fail(state, "n", n, ErrNonPositiveState)
	case !(T > 0) || math.IsInf(T, 0):
		g.fail(state, "T", T, ErrNonPositiveState)
	}
	g.finite(state, "Z", Z)
	g.finite(state, "dn/dx", dn)
	g.finite(state, "dT/dx", dT)
	if g.err != nil {
		return g.err
	}

	// Thermal velocities (most probable) [m/s]
	vTi := g.sqrt(state, "v_Ti", 2.0*cs.Charge*T/cs.MI)
	vTe := g.sqrt(state, "v_Te", 2.0*cs.Charge*T/cs.ME)

	// Neutral density, driven by the core flux boundary condition [m^-3]
	n0 := g.div(state, "n_0", -cs.NeutralFluxFactor*cs.GammaC/vTi,
		1.0+math.Exp(cs.NeutralSharpness*(x-cs.NeutralStep)))

	// Poloidal gyro radii [m]
	rhoPi := g.finite(state, "rho_pi", cs.RhoPiFactor*vTi)
	rhoPe := g.finite(state, "rho_pe", cs.RhoPeFactor*vTe)

	omegaT := g.div(state, "omega_t", vTi, cs.QR)
	omegaBi := g.finite(state, "omega_bi", cs.Aspect32*omegaT)
	omegaBe := g.finite(state, "omega_be", cs.Aspect32*vTe/cs.QR)
	wBi := g.finite(state, "w_bi", cs.SqrtAspect*rhoPi)

	nuEi := g.div(state, "nu_ei", cs.CollisionFactor*n, math.Sqrt(T*T*T))
	nuIi := g.finite(state, "nu_ii", cs.IonCollisionFactor*cs.SqrtMassRatio*nuEi)
	nuAi := g.div(state, "nu_ai", nuIi, omegaBi)
	nuAe := g.div(state, "nu_ae", nuEi, omegaBe)
	if g.err != nil {
		return g.err
	}

	// Electron anomalous diffusion
	DAn := g.div(an, "D_an", cs.Aspect*cs.Aspect*math.SqrtPi*rhoPe*(T/cs.Charge), 2*cs.AM*cs.B)
	gNAn := g.finite(an, "g_n_an", cs.Charge*n*DAn) // [A m^-2]
	gTAn := g.finite(an, "g_T_an", gNAn*cs.AlphaAn) // [A m^-2]
	gZAn := g.div(an, "g_Z_an", gNAn, rhoPi)        // [A m^-1]
	gammaAn := g.finite(an, an, gNAn*dn/n+gTAn*dT/T+gZAn*Z)

	// Charge exchange friction
	ionization := g.finite(cx, "ionization_rate", 5.0e-14*math.Pow(100.0*T, -1.0/4.0))
	cxRate := g.finite(cx, "cx_rate", 1.0e-14*math.Cbrt(100.0*T))
	bt2 := cs.BTheta * cs.BTheta
	geom := bt2/utils.POW(cs.Aspect*cs.BPhi, 2) + 2.0
	gNCX := g.finite(cx, "g_n_cx", (-(cs.MI*n0*cxRate*n*(T/cs.Charge))/bt2)*geom)
	gTCX := g.finite(cx, "g_T_cx", cs.AlphaCX*gNCX)
	gZCX := g.div(cx, "g_Z_cx", gNCX, rhoPi)
	gammaCX := g.finite(cx, cx, gNCX*dn/n+gTCX*dT/T+gZCX*Z)
	if g.err != nil {
		return g.err
	}

	// Ion bulk (parallel) viscosity
	disp := g.finite(bk, "plasma_disp", imag(utils.PlasmaDispersion(complex(Z, nuIi/omegaT))))
	if x == cs.AM {
		g.fail(bk, "x - a_m", x, ErrSingularRadius)
		return g.err
	}
	DBulk := g.div(bk, "D_bulk", cs.Aspect*cs.Aspect*rhoPi*T, (x-cs.AM)*cs.B*math.SqrtPi)
	gammaBulk := g.finite(bk, bk, n*DBulk*(dn/n+Z/rhoPi)*disp)

	// Ion orbit loss
	gOl := g.finite(ol, "g_ol", -cs.Charge*n*nuIi*nuAi*rhoPi)
	radical := g.sqrt(ol, "radical_ol", nuAi+utils.POW(Z, 4)+utils.POW(x/wBi, 4))
	if g.err != nil {
		return g.err
	}
	gammaOl := g.div(ol, ol, gOl*math.Exp(-radical), cs.Charge*radical)
	if g.err != nil {
		return g.err
	}

	d.VTi[k], d.VTe[k], d.N0[k] = vTi, vTe, n0
	d.RhoPi[k], d.RhoPe[k] = rhoPi, rhoPe
	d.OmegaT[k], d.OmegaBi[k], d.OmegaBe[k], d.WBi[k] = omegaT, omegaBi, omegaBe, wBi
	d.NuEi[k], d.NuIi[k], d.NuAi[k], d.NuAe[k] = nuEi, nuIi, nuAi, nuAe
	d.DAn[k], d.GNAn[k], d.GTAn[k], d.GZAn[k] = DAn, gNAn, gTAn, gZAn
	d.IonizationRate[k], d.CXRate[k] = ionization, cxRate
	d.GNCX[k], d.GTCX[k], d.GZCX[k] = gNCX, gTCX, gZCX
	d.PlasmaDisp[k], d.DBulk[k] = disp, DBulk
	d.GOl[k], d.RadicalOl[k] = gOl, radical
	r.Gamma[Anomalous][k] = gammaAn
	r.Gamma[ChargeExchange][k] = gammaCX
	r.Gamma[BulkViscosity][k] = gammaBulk
	r.Gamma[OrbitLoss][k] = gammaOl
	return nil
}
