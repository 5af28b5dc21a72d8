package EdgeFlux1D

import (
	"math"

	"github.com/notargets/edgeflux/FV1D"
	"github.com/notargets/edgeflux/physics"
)

// Diffusivity returns the particle diffusivity D(Z, Z') of the configured model.
func Diffusivity(cs physics.ConstantSet, Z FV1D.Field) (D []float64, err error) {
	var (
		p     = cs.DParams
		delta = cs.DMax - cs.DMin
	)
	if len(Z.Values) != len(Z.Grad) {
		err = &DomainViolation{Channel: "diffusivity", Cell: -1, Quantity: "Z", Value: float64(len(Z.Grad)), Err: ErrShapeMismatch}
		return
	}
	D = make([]float64, len(Z.Values))
	for k, z := range Z.Values {
		dz := Z.Grad[k]
		var den float64
		switch cs.Diffusivity {
		case physics.DZohm:
			D[k] = 0.5*(cs.DMax+cs.DMin) + 0.5*delta*math.Tanh(z)
			continue
		case physics.DStaps:
			den = 1 + p.AlphaSup*math.Pow(math.Abs(dz), p.Beta)
		case physics.DFlowShear:
			den = 1 + p.ShearA1*z*z + p.ShearA2*z*dz + p.ShearA3*dz*dz
		case physics.DWeymiensL:
			den = 1 + p.ShearA1*z*z
		}
		if den == 0 {
			err = &DomainViolation{Channel: "diffusivity", Cell: k, Quantity: "D", Value: z, Err: ErrZeroDenominator}
			return nil, err
		}
		D[k] = cs.DMin + delta/den
		if math.IsNaN(D[k]) || math.IsInf(D[k], 0) {
			err = &DomainViolation{Channel: "diffusivity", Cell: k, Quantity: "D", Value: D[k], Err: ErrNonFinite}
			return nil, err
		}
	}
	return
}

// HeatDiffusivity is chi = D/zeta.
func HeatDiffusivity(cs physics.ConstantSet, D []float64) (chi []float64) {
	chi = make([]float64, len(D))
	for k, d := range D {
		chi[k] = d / cs.Zeta
	}
	return
}

/*
TaylorSource is the Z equation source of the Taylor-expanded model,

	c_n T n'/n^2 + c_T T'/n + G(Z),  G(Z) = a + b (Z - Z_S) + c (Z - Z_S)^3
*/
func TaylorSource(cs physics.ConstantSet, n, T, Z FV1D.Field) (S []float64, err error) {
	var (
		c = cs.Closure
		K = len(Z.Values)
	)
	if len(n.Values) != K || len(T.Values) != K || len(n.Grad) != K || len(T.Grad) != K {
		err = &DomainViolation{Channel: "taylor", Cell: -1, Quantity: "state", Value: float64(K), Err: ErrShapeMismatch}
		return
	}
	S = make([]float64, K)
	for k := range S {
		nk := n.Values[k]
		if !(nk > 0) {
			err = &DomainViolation{Channel: "taylor", Cell: k, Quantity: "n", Value: nk, Err: ErrNonPositiveState}
			return nil, err
		}
		dZ := Z.Values[k] - c.ZS
		S[k] = c.CN*T.Values[k]*n.Grad[k]/(nk*nk) + c.CT*T.Grad[k]/nk +
			c.A + c.B*dZ + c.C*dZ*dZ*dZ
	}
	return
}
