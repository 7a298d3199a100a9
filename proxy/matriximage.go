package proxy

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/mat"
)

// MatrixImage presents a matrix of 255-scale values as a read-only 8-bit gray image.
// Values outside 0..255 are clipped, fractions truncated.
type MatrixImage struct {
	matrix mat.Dense
}

func NewMatrixImage(matrix mat.Matrix) *MatrixImage {
	return &MatrixImage{matrix: *mat.DenseCopyOf(matrix)}
}

func (mi *MatrixImage) At(x, y int) color.Color {
	return color.Gray{uint8(clip(mi.matrix.At(y, x), 0, 255))}
}

func (mi *MatrixImage) ColorModel() color.Model {
	return color.GrayModel
}

func (mi *MatrixImage) Bounds() image.Rectangle {
	r, c := mi.matrix.Dims()
	return image.Rect(0, 0, c, r)
}

// materialises the image as an *image.Gray
func (mi *MatrixImage) Gray() *image.Gray {
	b := mi.Bounds()
	g := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g.Pix[y*g.Stride+x] = uint8(clip(mi.matrix.At(y, x), 0, 255))
		}
	}
	return g
}

// linearly maps the matrix range onto 0..255, minimum to 0 and maximum to 255. A constant matrix
// maps to zero.
func RescaleMatrixTo256(matrix mat.Matrix) mat.Dense {
	r, c := matrix.Dims()
	m := mat.NewDense(r, c, nil)
	vmin := mat.Min(matrix)
	vrange := mat.Max(matrix) - vmin
	if vrange == 0 {
		return *m
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, (matrix.At(i, j)-vmin)/vrange*255)
		}
	}
	return *m
}
