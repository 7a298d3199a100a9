// Package freq filters grayscale images in the frequency domain.
//
// A 255-scale grid is transformed, centred, weighted by an ideal or Gaussian mask in low-pass or
// high-pass polarity, and transformed back. The package also scores the result (MSE, PSNR and
// Laplacian-variance sharpness) and renders spectra for display. Everything here is a pure
// function of its inputs; calls may run concurrently.
package freq

import (
	"math"
	"strings"
)

// PassType selects which frequencies a mask keeps.
type PassType string

const (
	PassLow  PassType = "low"
	PassHigh PassType = "high"
	// PassBoth runs the low-pass and the high-pass filter side by side.
	PassBoth PassType = "both"
)

func ParsePassType(s string) (PassType, error) {
	switch p := PassType(strings.ToLower(strings.TrimSpace(s))); p {
	case PassLow, PassHigh, PassBoth:
		return p, nil
	}
	return "", invalidf("unknown pass type %q (want low, high or both)", s)
}

// MaskType selects the mask profile.
type MaskType string

const (
	// MaskIdeal is a hard cutoff. It rings.
	MaskIdeal MaskType = "ideal"
	// MaskGaussian rolls off smoothly and does not ring.
	MaskGaussian MaskType = "gaussian"
)

func ParseMaskType(s string) (MaskType, error) {
	switch k := MaskType(strings.ToLower(strings.TrimSpace(s))); k {
	case MaskIdeal, MaskGaussian:
		return k, nil
	}
	return "", invalidf("unknown mask type %q (want ideal or gaussian)", s)
}

// DefaultNoiseSigma is the standard deviation used when noise is enabled without one, on the
// unit scale.
const DefaultNoiseSigma = 0.03

type NoiseConfig struct {
	Enabled bool
	Sigma   float64 // unit scale
	Seed    int64
}

// Config describes one filtering request.
//
// Radius is the ideal-mask cutoff and Sigma the Gaussian-mask standard deviation, both in
// frequency samples. Zero means "derive from the image size" (see DefaultCutoff). Values beyond
// MaxCutoff are clamped.
type Config struct {
	Pass   PassType
	Kind   MaskType
	Radius float64
	Sigma  float64
	Noise  NoiseConfig
}

func DefaultConfig() Config {
	return Config{
		Pass:  PassLow,
		Kind:  MaskIdeal,
		Noise: NoiseConfig{Sigma: DefaultNoiseSigma},
	}
}

func (c Config) Validate() error {
	if _, err := ParsePassType(string(c.Pass)); err != nil {
		return err
	}
	if _, err := ParseMaskType(string(c.Kind)); err != nil {
		return err
	}
	if !finite(c.Radius) || c.Radius < 0 {
		return invalidf("radius %v must be finite and not negative", c.Radius)
	}
	if !finite(c.Sigma) || c.Sigma < 0 {
		return invalidf("sigma %v must be finite and not negative", c.Sigma)
	}
	if c.Noise.Enabled && (!finite(c.Noise.Sigma) || c.Noise.Sigma < 0) {
		return invalidf("noise sigma %v must be finite and not negative", c.Noise.Sigma)
	}
	return nil
}

// MaxCutoff is the largest cutoff that stays inside the representable frequency range of an
// h x w grid, floor(min(h,w)/2). Grids thinner than two samples still allow a cutoff of 1.
func MaxCutoff(h, w int) float64 {
	return float64(max(1, min(h, w)/2))
}

// DefaultCutoff is max(2, rMax/6) with integer division, for either mask kind.
func DefaultCutoff(h, w int) float64 {
	return float64(max(2, (min(h, w)/2)/6))
}

// ClampCutoff limits a requested cutoff to MaxCutoff. Non-positive or non-finite requests are
// rejected rather than clamped.
func ClampCutoff(param float64, h, w int) (float64, error) {
	if !finite(param) || param <= 0 {
		return 0, invalidf("cutoff %v must be a finite positive number", param)
	}
	return math.Min(param, MaxCutoff(h, w)), nil
}

// Cutoff resolves the parameter the configured mask kind uses for an h x w grid.
func (c Config) Cutoff(h, w int) (float64, error) {
	param := c.Radius
	if c.Kind == MaskGaussian {
		param = c.Sigma
	}
	if param == 0 {
		param = DefaultCutoff(h, w)
	}
	return ClampCutoff(param, h, w)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
