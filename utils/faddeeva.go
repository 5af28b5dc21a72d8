package utils

import (
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

/*
	Faddeeva evaluates w(z) = exp(-z^2) erfc(-iz) using Weideman's rational
	expansion (SIAM J. Numer. Anal. 31, 1994):

		w(z) = 2 p(Z) / (L - iz)^2 + 1 / (sqrt(pi) (L - iz)),  Z = (L + iz) / (L - iz)

	with p a polynomial of degree N-1 whose coefficients are the Fourier
	coefficients of exp(-t^2)(L^2 + t^2) sampled at t = L tan(theta/2).
	The expansion converges for Im(z) >= 0; the lower half plane uses the
	reflection w(z) = 2 exp(-z^2) - w(-z).
*/

const faddeevaTerms = 64

var (
	faddeevaOnce   sync.Once
	faddeevaCoeffs []float64 // faddeevaCoeffs[m-1] multiplies Z^(m-1)
	faddeevaL      float64
)

func faddeevaInit() {
	var (
		N  = faddeevaTerms
		M  = 2 * N
		M2 = 2 * M
		f  = make([]float64, M2)
	)
	faddeevaL = math.Sqrt(float64(N) / math.Sqrt2)
	L2 := faddeevaL * faddeevaL
	// f[0] = 0, f[1:] holds k = -M+1 ... M-1
	for k := -M + 1; k < M; k++ {
		theta := float64(k) * math.Pi / float64(M)
		t := faddeevaL * math.Tan(theta/2)
		f[k+M] = math.Exp(-t*t) * (L2 + t*t)
	}
	// fftshift
	shifted := make([]float64, M2)
	for i := range shifted {
		shifted[i] = f[(i+M2/2)%M2]
	}
	coeff := fourier.NewFFT(M2).Coefficients(nil, shifted)
	faddeevaCoeffs = make([]float64, N)
	for m := 1; m <= N; m++ {
		faddeevaCoeffs[m-1] = real(coeff[m]) / float64(M2)
	}
}

func Faddeeva(z complex128) complex128 {
	faddeevaOnce.Do(faddeevaInit)
	if imag(z) < 0 {
		return 2*cmplx.Exp(-z*z) - Faddeeva(-z)
	}
	var (
		L   = complex(faddeevaL, 0)
		iz  = complex(0, 1) * z
		den = L - iz
		Z   = (L + iz) / den
		p   complex128
	)
	for m := len(faddeevaCoeffs) - 1; m >= 0; m-- {
		p = p*Z + complex(faddeevaCoeffs[m], 0)
	}
	return 2*p/(den*den) + complex(1/math.SqrtPi, 0)/den
}

// PlasmaDispersion is the plasma dispersion function Z(zeta) = i sqrt(pi) w(zeta).
func PlasmaDispersion(zeta complex128) complex128 {
	return complex(0, math.SqrtPi) * Faddeeva(zeta)
}
