package proxy

import (
	"errors"
	"math/cmplx"
)

// wrapper for a 2D complex array
//
// A spectrum is either raw (DC at [0][0], as produced by a Transformer) or centred (DC at
// [h/2][w/2], after Shift).
type Complex2D [][]complex128

func NewComplex2D(w, h int) Complex2D {
	c := make(Complex2D, h)
	for j := 0; j < h; j++ {
		c[j] = make([]complex128, w)
	}
	return c
}

func (c Complex2D) Dims() (rows, cols int) {
	if len(c) == 0 {
		return 0, 0
	}
	return len(c), len(c[0])
}

// deep copy
func (c Complex2D) Copy() Complex2D {
	out := make(Complex2D, len(c))
	for j := range c {
		out[j] = make([]complex128, len(c[j]))
		copy(out[j], c[j])
	}
	return out
}

// magnitude of every coefficient
func (c Complex2D) AsAmplitude() Float2D {
	h, w := c.Dims()
	var out Float2D = make([][]float64, h)
	for i := 0; i < h; i++ {
		out[i] = make([]float64, w)
		for j := 0; j < w; j++ {
			out[i][j] = cmplx.Abs(c[i][j])
		}
	}
	return out
}

// keeps the real part, discarding any imaginary residue
func (c Complex2D) AsReal() Float2D {
	h, w := c.Dims()
	var out Float2D = make([][]float64, h)
	for i := 0; i < h; i++ {
		out[i] = make([]float64, w)
		for j := 0; j < w; j++ {
			out[i][j] = real(c[i][j])
		}
	}
	return out
}

// shifts the spectrum by half in x and y, moving DC from [0][0] to [h/2][w/2]
func (c Complex2D) Shift() Complex2D {
	h, w := c.Dims()
	cOut := NewComplex2D(w, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			J := (j + h/2) % h
			I := (i + w/2) % w
			cOut[J][I] = c[j][i]
		}
	}
	return cOut
}

// undoes Shift, so that DC returns to [0][0]. For odd sizes this is not the same as a second Shift.
func (c Complex2D) Unshift() Complex2D {
	h, w := c.Dims()
	cOut := NewComplex2D(w, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			J := (j + h/2) % h
			I := (i + w/2) % w
			cOut[j][i] = c[J][I]
		}
	}
	return cOut
}

// weights each coefficient by a real value, scaling real and imaginary parts alike
func (c Complex2D) MultiplyReal(a Float2D) (Complex2D, error) {
	R, C := c.Dims()
	R2, C2 := a.Dims()
	if R != R2 || C != C2 {
		return nil, errors.New("spectral dimensions do not match")
	}
	var out Complex2D = make([][]complex128, R)
	for i := 0; i < R; i++ {
		out[i] = make([]complex128, C)
		for j := 0; j < C; j++ {
			k := a[i][j]
			out[i][j] = complex(real(c[i][j])*k, imag(c[i][j])*k)
		}
	}
	return out, nil
}
