package proxy

type Ushort interface {
	uint8 | uint16
}

type Ushortarray[k Ushort] [][]k

// folds a row-major pixel list into rows of w samples
func ListToGrid[k Ushort](g []k, w int) Ushortarray[k] {
	if w <= 0 {
		return Ushortarray[k]{}
	}
	h := len(g) / w

	out := make(Ushortarray[k], h)
	for j := 0; j < h; j++ {
		out[j] = make([]k, w)
		copy(out[j], g[j*w:(j+1)*w])
	}
	return out
}

// convert 8 or 16-bit uint data to float64 for further processsing
func (px Ushortarray[k]) AsFloat() Float2D {
	h := len(px)
	out := make(Float2D, h)
	for j := 0; j < h; j++ {
		out[j] = make([]float64, len(px[j]))
		for i := range px[j] {
			out[j][i] = float64(px[j][i])
		}
	}
	return out
}
