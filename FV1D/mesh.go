package FV1D

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/edgeflux/utils"
)

var ErrMesh = errors.New("FV1D: invalid mesh")

// Mesh1D is a cell-centred finite volume grid. Faces has K+1 entries, X and
// H (cell widths) have K.
type Mesh1D struct {
	K          int
	XMin, XMax float64
	Faces      []float64
	X, H       []float64
}

func SimpleMesh1D(xmin, xmax float64, K int) (m *Mesh1D, err error) {
	if K < 1 {
		err = fmt.Errorf("%w: %d cells", ErrMesh, K)
		return
	}
	return NewMesh1D(utils.Linspace(xmin, xmax, K+1))
}

// NewMesh1D builds a mesh from strictly increasing face coordinates.
func NewMesh1D(faces []float64) (m *Mesh1D, err error) {
	var (
		K = len(faces) - 1
	)
	if K < 1 {
		err = fmt.Errorf("%w: need at least two faces, have %d", ErrMesh, len(faces))
		return
	}
	for i, f := range faces {
		if !utils.IsFinite(f) {
			err = fmt.Errorf("%w: face %d is %v", ErrMesh, i, f)
			return
		}
		if i > 0 && !(f > faces[i-1]) {
			err = fmt.Errorf("%w: faces not increasing at %d", ErrMesh, i)
			return
		}
	}
	m = &Mesh1D{
		K:     K,
		XMin:  faces[0],
		XMax:  faces[K],
		Faces: append([]float64(nil), faces...),
		X:     make([]float64, K),
		H:     make([]float64, K),
	}
	for k := 0; k < K; k++ {
		m.X[k] = 0.5 * (faces[k] + faces[k+1])
		m.H[k] = faces[k+1] - faces[k]
	}
	return
}

// CellsAt returns the cells whose centre lies exactly at x.
func (m *Mesh1D) CellsAt(x float64) []int {
	return utils.Find(m.X, utils.Equal, x, false)
}

// CellsNear returns the cells whose centre lies within tol of x.
func (m *Mesh1D) CellsNear(x, tol float64) []int {
	d := make([]float64, m.K)
	for k, xk := range m.X {
		d[k] = xk - x
	}
	return utils.Find(d, utils.LessOrEqual, tol, true)
}

// Gradient is the cell-centred first derivative: central differences in the
// interior and one sided differences in the boundary cells.
func (m *Mesh1D) Gradient(u []float64) (du []float64) {
	var (
		K = m.K
		x = m.X
	)
	du = make([]float64, K)
	if K == 1 {
		return
	}
	du[0] = (u[1] - u[0]) / (x[1] - x[0])
	du[K-1] = (u[K-1] - u[K-2]) / (x[K-1] - x[K-2])
	for k := 1; k < K-1; k++ {
		du[k] = (u[k+1] - u[k-1]) / (x[k+1] - x[k-1])
	}
	return
}

// NewField copies values and attaches their gradient on this mesh.
func (m *Mesh1D) NewField(values []float64) (f Field, err error) {
	if len(values) != m.K {
		err = fmt.Errorf("%w: field has %d values, mesh has %d cells", ErrMesh, len(values), m.K)
		return
	}
	f.Values = append([]float64(nil), values...)
	f.Grad = m.Gradient(f.Values)
	return
}

// Integrate is the cell-width weighted sum of u.
func (m *Mesh1D) Integrate(u []float64) (sum float64) {
	for k, val := range u {
		sum += val * m.H[k]
	}
	return
}

// MinWidth is the narrowest cell width.
func (m *Mesh1D) MinWidth() (h float64) {
	h = math.Inf(1)
	for _, w := range m.H {
		h = math.Min(h, w)
	}
	return
}
