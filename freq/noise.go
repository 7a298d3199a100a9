package freq

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hippodribble/fdfilter/proxy"
)

// InjectNoise adds zero-mean Gaussian noise with standard deviation sigma to a unit-scale grid
// and clamps the result to [0,1]. Samples are drawn in row-major order from a PCG source seeded
// with seed, so equal arguments give bit-identical output.
func InjectNoise(grid01 proxy.Float2D, sigma float64, seed int64) (proxy.Float2D, error) {
	if !finite(sigma) || sigma < 0 {
		return nil, invalidf("noise sigma %v must be finite and not negative", sigma)
	}
	normal := distuv.Normal{
		Mu:    0,
		Sigma: sigma,
		Src:   rand.NewSource(uint64(seed)),
	}
	out := grid01.Copy()
	for j := range out {
		for i := range out[j] {
			v := out[j][i] + normal.Rand()
			out[j][i] = min(max(v, 0), 1)
		}
	}
	return out, nil
}
