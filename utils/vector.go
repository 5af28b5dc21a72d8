package utils

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Find returns the indices of v whose value satisfies op against target.
func Find(v []float64, op EvalOp, target float64, abs bool) (r []int) {
	for i, val := range v {
		if abs {
			val = math.Abs(val)
		}
		if op.Compare(val, target) {
			r = append(r, i)
		}
	}
	return
}

// MaxAbsDiff is the max norm of a - b.
func MaxAbsDiff(a, b []float64) (d float64) {
	for i := range a {
		if dd := math.Abs(a[i] - b[i]); dd > d {
			d = dd
		}
	}
	return
}

func VecGetF64(v mat.Vector) (r []float64) {
	r = make([]float64, v.Len())
	for i := 0; i < v.Len(); i++ {
		r[i] = v.AtVec(i)
	}
	return
}
