package proxy

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Float2D represents a monochrome image using floats.
//
// Rows come first, so f[j][i] is the sample at row j, column i. Values are either on a 255 scale
// (decoded pixels, reconstructions) or on a unit scale ([0,1], noise and sharpness work). Use
// Normalise01 and Scale to move between the two.
type Float2D [][]float64

func (c Float2D) Dims() (rows, cols int) {
	if len(c) == 0 {
		return 0, 0
	}
	return len(c), len(c[0])
}

// creates an empty (zero-valued image)
func NewFloat2D(w, h int) *Float2D {
	f := Float2D(make([][]float64, h))
	for i := 0; i < h; i++ {
		f[i] = make([]float64, w)
	}
	return &f
}

// creates a single-valued image
func NewFloat2DUniform(w, h int, v float64) *Float2D {
	f := Float2D(make([][]float64, h))
	for j := 0; j < h; j++ {
		f[j] = make([]float64, w)
		for i := 0; i < w; i++ {
			f[j][i] = v
		}
	}
	return &f
}

// reports whether both arrays have the same number of rows and columns
func (f Float2D) SameDims(g Float2D) bool {
	r, c := f.Dims()
	R, C := g.Dims()
	return r == R && c == C
}

// deep copy
func (f Float2D) Copy() Float2D {
	out := make(Float2D, len(f))
	for j := range f {
		out[j] = make([]float64, len(f[j]))
		copy(out[j], f[j])
	}
	return out
}

// returns the range of values as minimum, maximum
func (f Float2D) Range() (float64, float64) {
	mx := -math.MaxFloat64
	mn := math.MaxFloat64
	for j := 0; j < len(f); j++ {
		if len(f[j]) == 0 {
			continue
		}
		mn = math.Min(mn, floats.Min(f[j]))
		mx = math.Max(mx, floats.Max(f[j]))
	}
	return mn, mx
}

// multiplies every value by k
func (f Float2D) Scale(k float64) Float2D {
	out := f.Copy()
	for j := range out {
		floats.Scale(k, out[j])
	}
	return out
}

// adds k to every value
func (f Float2D) AddConst(k float64) Float2D {
	out := f.Copy()
	for j := range out {
		floats.AddConst(k, out[j])
	}
	return out
}

// converts a 255-scale array to a unit-scale array, ie f/255 clipped to 0..1
func (f Float2D) Normalise01() Float2D {
	out := f.Copy()
	for j := range out {
		for i := range out[j] {
			out[j][i] = clip(out[j][i]/255, 0, 1)
		}
	}
	return out
}

// returns the values as a single row-major list
func (f Float2D) Flatten() []float64 {
	h, w := f.Dims()
	out := make([]float64, 0, h*w)
	for j := 0; j < h; j++ {
		out = append(out, f[j]...)
	}
	return out
}

// promotes real values to complex values with zero imaginary part
func (f Float2D) AsComplex() Complex2D {
	h, w := f.Dims()
	out := make(Complex2D, h)
	for j := 0; j < h; j++ {
		out[j] = make([]complex128, w)
		for i := 0; i < w; i++ {
			out[j][i] = complex(f[j][i], 0)
		}
	}
	return out
}

func (c Float2D) MultiplyElements(a Float2D) (Float2D, error) {
	if !c.SameDims(a) {
		return nil, errors.New("array dimensions do not match")
	}
	R, C := c.Dims()
	var out Float2D = make([][]float64, R)
	for i := 0; i < R; i++ {
		out[i] = make([]float64, C)
		floats.MulTo(out[i], c[i], a[i])
	}
	return out, nil
}

// subtracts a from c element by element
func (c Float2D) SubtractElements(a Float2D) (Float2D, error) {
	if !c.SameDims(a) {
		return nil, errors.New("array dimensions do not match")
	}
	R, C := c.Dims()
	var out Float2D = make([][]float64, R)
	for i := 0; i < R; i++ {
		out[i] = make([]float64, C)
		floats.SubTo(out[i], c[i], a[i])
	}
	return out, nil
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
