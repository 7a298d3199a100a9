package freq

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/hippodribble/fdfilter/proxy"
)

const (
	// DefaultMaxIntensity is the peak value of a 255-scale grid.
	DefaultMaxIntensity = 255.0

	// PSNREpsilon is the MSE at or below which two grids count as identical and PSNR is +Inf.
	PSNREpsilon = 1e-12
)

// Metrics scores one reconstruction against the grid it was filtered from.
type Metrics struct {
	MSE          float64
	PSNR         float64 // +Inf for a lossless reconstruction
	SharpnessOut float64
}

// MSE is the mean over all samples of (a-b)². Identical grids give exactly zero.
func MSE(a, b proxy.Float2D) (float64, error) {
	h, w := a.Dims()
	if H, W := b.Dims(); h != H || w != W {
		return 0, mismatch("grid", H, W, h, w)
	}
	if h*w == 0 {
		return 0, invalidf("cannot compare empty grids")
	}
	d, err := a.SubtractElements(b)
	if err != nil {
		return 0, mismatch("grid", h, w, h, w)
	}
	sq, err := d.MultiplyElements(d)
	if err != nil {
		return 0, err
	}
	return stat.Mean(sq.Flatten(), nil), nil
}

// PSNR is 10·log10(maxIntensity²/mse) in dB, or +Inf when mse is at most PSNREpsilon.
func PSNR(mse, maxIntensity float64) float64 {
	if mse <= PSNREpsilon {
		return math.Inf(1)
	}
	return 10 * math.Log10(maxIntensity*maxIntensity/mse)
}

// Sharpness is the population variance of the discrete Laplacian of a unit-scale grid, with
// edges replicated by one sample. Larger values mean more edge energy.
func Sharpness(grid01 proxy.Float2D) (float64, error) {
	l, err := grid01.Laplacian()
	if err != nil {
		return 0, invalidf("sharpness: %v", err)
	}
	return stat.PopVariance(l.Flatten(), nil), nil
}

// Score compares a 255-scale reconstruction with the working grid it came from. Sharpness is
// measured on the reconstruction clipped to 0..255.
func Score(working, recon proxy.Float2D) (Metrics, error) {
	mse, err := MSE(working, recon)
	if err != nil {
		return Metrics{}, err
	}
	sharp, err := Sharpness(recon.Normalise01())
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{MSE: mse, PSNR: PSNR(mse, DefaultMaxIntensity), SharpnessOut: sharp}, nil
}
