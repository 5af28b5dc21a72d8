package utils

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaddeeva(t *testing.T) {
	tol := 1.e-8
	{ // Origin
		w := Faddeeva(0)
		assert.InDelta(t, 1., real(w), tol)
		assert.InDelta(t, 0., imag(w), tol)
	}
	{ // Imaginary axis: w(iy) = exp(y^2) erfc(y)
		for _, y := range []float64{0.1, 0.5, 1, 2, 5} {
			w := Faddeeva(complex(0, y))
			assert.InDeltaf(t, math.Exp(y*y)*math.Erfc(y), real(w), tol, "y = %v", y)
			assert.InDeltaf(t, 0., imag(w), tol, "y = %v", y)
		}
	}
	{ // Real axis: Re w(x) = exp(-x^2)
		for _, x := range []float64{-2, -0.5, 0.3, 1, 1.5} {
			w := Faddeeva(complex(x, 0))
			assert.InDeltaf(t, math.Exp(-x*x), real(w), tol, "x = %v", x)
		}
		// Im w(1) = 2/sqrt(pi) * Dawson(1)
		assert.InDelta(t, 2/math.SqrtPi*0.5380795069127684, imag(Faddeeva(1)), tol)
	}
	{
		w := Faddeeva(complex(1, 1))
		assert.InDelta(t, 0.30474420525691, real(w), tol)
		assert.InDelta(t, 0.20821893820283, imag(w), tol)
	}
	{ // Reflection into the lower half plane
		z := complex(0.7, -0.4)
		w := Faddeeva(z)
		assert.InDelta(t, 0., cmplx.Abs(w+Faddeeva(-z)-2*cmplx.Exp(-z*z)), tol)
	}
	{ // Symmetry w(-conj(z)) = conj(w(z))
		z := complex(1.3, 0.8)
		assert.InDelta(t, 0., cmplx.Abs(Faddeeva(-cmplx.Conj(z))-cmplx.Conj(Faddeeva(z))), tol)
	}
}

func TestPlasmaDispersion(t *testing.T) {
	// Im(i sqrt(pi) w(x)) = sqrt(pi) exp(-x^2) on the real axis
	for _, x := range []float64{0, 0.5, 1.2} {
		pd := PlasmaDispersion(complex(x, 0))
		assert.InDelta(t, math.SqrtPi*math.Exp(-x*x), imag(pd), 1.e-8)
	}
	assert.False(t, cmplx.IsNaN(PlasmaDispersion(complex(3, 1.e-3))))
}
