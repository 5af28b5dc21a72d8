package FV1D

// Field is a per-cell quantity and its cell-centred first derivative.
// Operations return new fields; the receiver is never modified.
type Field struct {
	Values, Grad []float64
}

func (f Field) Len() int { return len(f.Values) }

func (f Field) Copy() Field {
	return Field{
		Values: append([]float64(nil), f.Values...),
		Grad:   append([]float64(nil), f.Grad...),
	}
}

// Scale multiplies values and gradient by a.
func (f Field) Scale(a float64) (r Field) {
	r = f.Copy()
	for i := range r.Values {
		r.Values[i] *= a
	}
	for i := range r.Grad {
		r.Grad[i] *= a
	}
	return
}

// Uniform is a constant field with zero gradient.
func Uniform(K int, val float64) (f Field) {
	f.Values = make([]float64, K)
	f.Grad = make([]float64, K)
	for i := range f.Values {
		f.Values[i] = val
	}
	return
}
