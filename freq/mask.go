package freq

import (
	"math"

	"github.com/hippodribble/fdfilter/proxy"
)

// Mask is a centred weighting grid with values in [0,1], the same size as the spectrum it
// weights. The high-pass mask of a kind and cutoff is exactly 1 minus the low-pass mask.
type Mask struct {
	proxy.Float2D
	Kind  MaskType
	Pass  PassType
	Param float64
}

// DistanceField returns the Euclidean distance of every sample from the grid centre
// (floor(h/2), floor(w/2)), where a centred spectrum keeps its DC term. Distances to integer
// points are exact, so an ideal disc includes its boundary.
func DistanceField(h, w int) proxy.Float2D {
	cy, cx := h/2, w/2
	d := *proxy.NewFloat2D(w, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			dy, dx := float64(j-cy), float64(i-cx)
			d[j][i] = math.Sqrt(dy*dy + dx*dx)
		}
	}
	return d
}

// IdealLowPass is 1 inside the closed disc of the given radius about the centre and 0 outside.
func IdealLowPass(h, w int, radius float64) proxy.Float2D {
	m := DistanceField(h, w)
	for j := range m {
		for i, d := range m[j] {
			if d <= radius {
				m[j][i] = 1
			} else {
				m[j][i] = 0
			}
		}
	}
	return m
}

// GaussianLowPass is exp(-D²/2σ²), 1 at the centre.
func GaussianLowPass(h, w int, sigma float64) proxy.Float2D {
	s2 := 2 * sigma * sigma
	m := DistanceField(h, w)
	for j := range m {
		for i, d := range m[j] {
			m[j][i] = math.Exp(-d * d / s2)
		}
	}
	return m
}

// Complement returns 1 - m for every sample.
func Complement(m proxy.Float2D) proxy.Float2D {
	out := m.Copy()
	for j := range out {
		for i := range out[j] {
			out[j][i] = 1 - out[j][i]
		}
	}
	return out
}

// NewMask builds an h x w mask. param is the radius of an ideal mask or the standard deviation
// of a Gaussian one; it must already be clamped by the caller. pass must be low or high.
func NewMask(h, w int, kind MaskType, param float64, pass PassType) (Mask, error) {
	if h < 1 || w < 1 {
		return Mask{}, invalidf("mask size %dx%d must be at least 1x1", h, w)
	}
	if !finite(param) || param <= 0 {
		return Mask{}, invalidf("mask parameter %v must be a finite positive number", param)
	}

	var low proxy.Float2D
	switch kind {
	case MaskIdeal:
		low = IdealLowPass(h, w, param)
	case MaskGaussian:
		low = GaussianLowPass(h, w, param)
	default:
		return Mask{}, invalidf("unknown mask type %q", kind)
	}

	m := Mask{Kind: kind, Pass: pass, Param: param}
	switch pass {
	case PassLow:
		m.Float2D = low
	case PassHigh:
		m.Float2D = Complement(low)
	default:
		return Mask{}, invalidf("mask pass type must be low or high, got %q", pass)
	}
	return m, nil
}

// Display returns the mask on the 255 scale for rendering.
func (m Mask) Display() proxy.Float2D {
	return m.Scale(255)
}
