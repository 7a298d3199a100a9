package freq

import (
	"math"

	"github.com/hippodribble/fdfilter/proxy"
)

// Visualize maps a centred spectrum to a 255-scale picture of log(1+|c|), stretched so the
// smallest magnitude is 0 and the largest 255. A flat spectrum, including an all-zero one, gives
// an all-zero picture.
func Visualize(centered proxy.Complex2D) proxy.Float2D {
	h, w := centered.Dims()
	spec := centered.AsAmplitude()
	if h*w == 0 {
		return spec
	}
	for j := range spec {
		for i := range spec[j] {
			spec[j][i] = math.Log1p(spec[j][i])
		}
	}
	d := spec.ToDenseMatrix()
	stretched := proxy.RescaleMatrixTo256(&d)
	im := proxy.NewImageMatrix(&stretched)
	return im.ToFloat2D()
}
