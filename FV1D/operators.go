package FV1D

import (
	"errors"
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/edgeflux/utils"
)

type BCType uint8

const (
	// Flux prescribes F = D du/dx at the boundary face.
	Flux BCType = iota
	// Robin prescribes du/dx = u/Lambda at the boundary face, with u taken
	// from the adjacent cell.
	Robin
)

type Boundary struct {
	Type   BCType
	Flux   float64
	Lambda float64
}

func FluxBC(F float64) Boundary       { return Boundary{Type: Flux, Flux: F} }
func RobinBC(lambda float64) Boundary { return Boundary{Type: Robin, Lambda: lambda} }
func (b Boundary) String() string {
	if b.Type == Robin {
		return fmt.Sprintf("Robin(lambda=%g)", b.Lambda)
	}
	return fmt.Sprintf("Flux(%g)", b.Flux)
}

/*
Diffusion is one backward Euler step of

	A du/dt = d/dx(D du/dx) + S

integrated over each cell. Face diffusivities are arithmetic means of the
adjacent cell values.
*/
type Diffusion struct {
	A           float64
	Dt          float64
	D, S        []float64
	Left, Right Boundary
}

// Assemble returns the system matrix and right hand side for old values uOld.
func (m *Mesh1D) Assemble(eq Diffusion, uOld []float64) (A *sparse.CSR, b []float64, err error) {
	var (
		K = m.K
	)
	if len(eq.D) != K || len(eq.S) != K || len(uOld) != K {
		err = fmt.Errorf("%w: diffusion operands do not match %d cells", ErrMesh, K)
		return
	}
	if !(eq.Dt > 0) {
		err = fmt.Errorf("%w: time step %v", ErrMesh, eq.Dt)
		return
	}
	for _, bc := range []Boundary{eq.Left, eq.Right} {
		if bc.Type == Robin && bc.Lambda == 0 {
			err = fmt.Errorf("%w: Robin boundary with zero decay length", ErrMesh)
			return
		}
	}
	var (
		diag  = make([]float64, K)
		lower = make([]float64, K) // lower[k] couples k to k-1
		upper = make([]float64, K) // upper[k] couples k to k+1
	)
	b = make([]float64, K)
	for k := 0; k < K; k++ {
		transient := eq.A * m.H[k] / eq.Dt
		diag[k] += transient
		b[k] = transient*uOld[k] + m.H[k]*eq.S[k]
	}
	for k := 0; k < K-1; k++ {
		coef := 0.5 * (eq.D[k] + eq.D[k+1]) / (m.X[k+1] - m.X[k])
		diag[k] += coef
		diag[k+1] += coef
		upper[k] -= coef
		lower[k+1] -= coef
	}
	switch eq.Left.Type {
	case Robin:
		diag[0] += eq.D[0] / eq.Left.Lambda
	case Flux:
		b[0] -= eq.Left.Flux
	}
	switch eq.Right.Type {
	case Robin:
		diag[K-1] -= eq.D[K-1] / eq.Right.Lambda
	case Flux:
		b[K-1] += eq.Right.Flux
	}
	dok := sparse.NewDOK(K, K)
	for k := 0; k < K; k++ {
		dok.Set(k, k, diag[k])
		if k > 0 {
			dok.Set(k, k-1, lower[k])
		}
		if k < K-1 {
			dok.Set(k, k+1, upper[k])
		}
	}
	A = dok.ToCSR()
	return
}

// Solve assembles and solves one implicit step. The residual is the max norm
// of A u - b evaluated at the incoming iterate u, which is zero when the
// coefficients no longer change between sweeps.
func (m *Mesh1D) Solve(eq Diffusion, uOld, u []float64) (uNew []float64, residual float64, err error) {
	var (
		A  *sparse.CSR
		b  []float64
		bV *mat.VecDense
	)
	if A, b, err = m.Assemble(eq, uOld); err != nil {
		return
	}
	if len(u) != m.K {
		err = fmt.Errorf("%w: iterate has %d values, mesh has %d cells", ErrMesh, len(u), m.K)
		return
	}
	bV = mat.NewVecDense(m.K, b)
	var Au mat.VecDense
	Au.MulVec(A, mat.NewVecDense(m.K, append([]float64(nil), u...)))
	residual = utils.MaxAbsDiff(utils.VecGetF64(&Au), b)

	var x mat.VecDense
	if err = x.SolveVec(A, bV); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return
		}
		// Ill conditioned but solved
		err = nil
	}
	uNew = utils.VecGetF64(&x)
	if k := utils.FirstNonFinite(uNew); k >= 0 {
		err = fmt.Errorf("FV1D: non-finite solution %v in cell %d", uNew[k], k)
		uNew = nil
	}
	return
}
