package freq

import (
	"github.com/hippodribble/fdfilter/proxy"
)

// Engine filters grids by the convolution theorem: multiplying the centred spectrum by a mask
// is a spatial convolution with the mask's inverse transform.
type Engine struct {
	Transform proxy.Transformer
}

// NewEngine returns an engine using t, or go-dsp when t is nil.
func NewEngine(t proxy.Transformer) *Engine {
	if t == nil {
		t = proxy.DSP{}
	}
	return &Engine{Transform: t}
}

func (e *Engine) transformer() proxy.Transformer {
	if e == nil || e.Transform == nil {
		return proxy.DSP{}
	}
	return e.Transform
}

// Spectrum returns the centred spectrum of grid.
func (e *Engine) Spectrum(grid proxy.Float2D) proxy.Complex2D {
	return e.transformer().Forward(grid).Shift()
}

// Apply filters grid with mask. It returns the real part of the reconstruction and the filtered
// spectrum, still centred.
func (e *Engine) Apply(grid proxy.Float2D, mask Mask) (proxy.Float2D, proxy.Complex2D, error) {
	h, w := grid.Dims()
	if h*w == 0 {
		return nil, nil, invalidf("grid is empty")
	}
	if H, W := mask.Dims(); h != H || w != W {
		return nil, nil, mismatch("mask", H, W, h, w)
	}
	return e.ApplyCentered(e.Spectrum(grid), mask)
}

// ApplyCentered is Apply for a spectrum that has already been transformed and centred.
func (e *Engine) ApplyCentered(centered proxy.Complex2D, mask Mask) (proxy.Float2D, proxy.Complex2D, error) {
	h, w := centered.Dims()
	if h*w == 0 {
		return nil, nil, invalidf("spectrum is empty")
	}
	H, W := mask.Dims()
	if h != H || w != W {
		return nil, nil, mismatch("mask", H, W, h, w)
	}
	filtered, err := centered.MultiplyReal(mask.Float2D)
	if err != nil {
		return nil, nil, mismatch("mask", H, W, h, w)
	}
	recon := e.transformer().Inverse(filtered.Unshift()).AsReal()
	return recon, filtered, nil
}
