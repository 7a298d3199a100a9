package proxy

import (
	"errors"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transformer computes 2D discrete Fourier transforms of arrays of any size.
//
// Forward leaves DC at [0][0]. Inverse is normalised, so Inverse(Forward(f)) gives f back up to
// rounding, with a tiny imaginary residue that callers drop with AsReal.
type Transformer interface {
	Forward(f Float2D) Complex2D
	Inverse(c Complex2D) Complex2D
	Name() string
}

// names accepted by NewTransformer
const (
	TransformerDSP   = "dsp"
	TransformerGonum = "gonum"
)

// returns the transformer registered under name. An empty name selects go-dsp.
func NewTransformer(name string) (Transformer, error) {
	switch name {
	case "", TransformerDSP:
		return DSP{}, nil
	case TransformerGonum:
		return Gonum{}, nil
	}
	return nil, errors.New("unknown transformer " + name + " (use dsp or gonum)")
}

// DSP transforms with github.com/mjibson/go-dsp, which falls back to Bluestein's algorithm for
// lengths that are not powers of two.
type DSP struct{}

func (DSP) Name() string { return TransformerDSP }

func (DSP) Forward(f Float2D) Complex2D {
	return Complex2D(fft.FFT2Real(f))
}

func (DSP) Inverse(c Complex2D) Complex2D {
	return Complex2D(fft.IFFT2(c))
}

// Gonum transforms rows then columns with gonum's complex FFT.
type Gonum struct{}

func (Gonum) Name() string { return TransformerGonum }

func (Gonum) Forward(f Float2D) Complex2D {
	c := f.AsComplex()
	fft2InPlace(c, true)
	return c
}

func (Gonum) Inverse(c Complex2D) Complex2D {
	out := c.Copy()
	fft2InPlace(out, false)
	h, w := out.Dims()
	n := complex(float64(h*w), 0)
	for j := range out {
		for i := range out[j] {
			out[j][i] /= n
		}
	}
	return out
}

// gonum's Sequence is not normalised; Gonum.Inverse divides by h*w afterwards
func fft2InPlace(a Complex2D, forward bool) {
	h, w := a.Dims()
	if h*w == 0 {
		return
	}
	rowFFT := fourier.NewCmplxFFT(w)
	colFFT := fourier.NewCmplxFFT(h)

	row := make([]complex128, w)
	for j := 0; j < h; j++ {
		if forward {
			rowFFT.Coefficients(row, a[j])
		} else {
			rowFFT.Sequence(row, a[j])
		}
		copy(a[j], row)
	}

	col := make([]complex128, h)
	out := make([]complex128, h)
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			col[j] = a[j][i]
		}
		if forward {
			colFFT.Coefficients(out, col)
		} else {
			colFFT.Sequence(out, col)
		}
		for j := 0; j < h; j++ {
			a[j][i] = out[j]
		}
	}
}
