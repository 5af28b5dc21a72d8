package EdgeFlux1D

import (
	"math"

	"github.com/notargets/edgeflux/FV1D"
	"github.com/notargets/edgeflux/physics"
)

// Edge values of the initial profiles. The Taylor model is normalized.
const (
	EdgeDensity     = 1.0e18 // [m^-3]
	EdgeTemperature = 50.0   // [eV]
)

/*
InitialState builds the starting n, T and Z values on the mesh.

Linear profiles satisfy the edge decay condition u' = u/lambda_u exactly, with
Z flat at zero in L-mode and a well of depth Z_S at the edge in H-mode. Paquay's
profiles are tanh pedestals of width L/4 reaching the same core values.
*/
func InitialState(cs physics.ConstantSet, num physics.Numerics, mesh *FV1D.Mesh1D) (n, T, Z []float64) {
	var (
		K            = mesh.K
		nEdge, tEdge = EdgeDensity, EdgeTemperature
		width        = cs.L / 4
		zEdge        float64
	)
	if cs.ZModel == physics.TaylorModel {
		nEdge, tEdge = 1.0, 1.0
	}
	if num.InitialHMode {
		zEdge = cs.Closure.ZS
	}
	nCore := nEdge * (1 + cs.L/cs.LambdaN)
	tCore := tEdge * (1 + cs.L/cs.LambdaT)
	n, T, Z = make([]float64, K), make([]float64, K), make([]float64, K)
	for k, x := range mesh.X {
		if num.PaquayInitConds {
			s := math.Tanh(x / width)
			n[k] = nEdge + (nCore-nEdge)*s
			T[k] = tEdge + (tCore-tEdge)*s
			Z[k] = zEdge * (1 - s)
			continue
		}
		n[k] = nEdge * (1 + x/cs.LambdaN)
		T[k] = tEdge * (1 + x/cs.LambdaT)
		r := 1 - x/cs.L
		Z[k] = zEdge * r * r
	}
	return
}
