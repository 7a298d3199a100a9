package proxy

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

type ImageMatrix struct {
	*mat.Dense
}

func NewImageMatrix(m *mat.Dense) ImageMatrix {
	return ImageMatrix{Dense: m}
}

// 3x3 discrete Laplacian, the sum of second differences in rows and columns
func NewLaplacianKernel() ImageMatrix {
	return NewImageMatrix(mat.NewDense(3, 3, []float64{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	}))
}

// copies a Float2D into a dense matrix
func (f Float2D) ToDenseMatrix() mat.Dense {
	r, c := f.Dims()
	return *mat.NewDense(r, c, f.Flatten())
}

// copies the matrix out as a Float2D, so later changes to either side are independent
func (A *ImageMatrix) ToFloat2D() Float2D {
	r, c := A.Dims()
	aA := make([][]float64, r)
	for i := 0; i < r; i++ {
		aA[i] = make([]float64, c)
		copy(aA[i], A.RawRowView(i))
	}
	return aA
}

// correlates the matrix with kernel B, keeping only positions where B fits entirely ("valid"),
// so the result is (R-r+1) x (C-c+1). For the symmetric kernels used here this equals convolution.
func (f *ImageMatrix) Convolve(B ImageMatrix) (ImageMatrix, error) {
	R, C := f.Dims()
	r, c := B.Dims()
	if r > R || c > C {
		return ImageMatrix{}, errors.New("kernel is larger than the matrix")
	}
	H := R - r + 1
	W := C - c + 1
	g := mat.NewDense(H, W, nil)

	var v float64
	for i := 0; i < H; i++ {
		for j := 0; j < W; j++ {
			v = 0
			for k := 0; k < r; k++ {
				for l := 0; l < c; l++ {
					v += f.At(i+k, j+l) * B.At(k, l)
				}
			}
			g.Set(i, j, v)
		}
	}
	return NewImageMatrix(g), nil
}

func (m *ImageMatrix) Pad(T, B, L, R int) *ImageMatrix {
	rows, cols := m.Dims()
	h := rows + T + B
	w := cols + L + R
	M := NewImageMatrix(mat.NewDense(h, w, nil))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			M.Set(i+T, j+L, m.At(i, j))
		}
	}
	return &M
}

// pads by n samples on every side, repeating the nearest edge sample (corners take the corner value)
func (m *ImageMatrix) PadEdge(n int) *ImageMatrix {
	rows, cols := m.Dims()
	M := m.Pad(n, n, n, n)

	for row := 0; row < rows+2*n; row++ {
		src := min(max(row-n, 0), rows-1)
		for col := 0; col < cols+2*n; col++ {
			if row >= n && row < rows+n && col >= n && col < cols+n {
				continue
			}
			M.Set(row, col, m.At(src, min(max(col-n, 0), cols-1)))
		}
	}
	return M
}

// discrete Laplacian response with replicated edges, the same size as the input
func (f Float2D) Laplacian() (Float2D, error) {
	r, c := f.Dims()
	if r == 0 || c == 0 {
		return nil, errors.New("array has either zero rows or zero columns")
	}
	d := f.ToDenseMatrix()
	im := NewImageMatrix(&d)
	out, err := im.PadEdge(1).Convolve(NewLaplacianKernel())
	if err != nil {
		return nil, err
	}
	return out.ToFloat2D(), nil
}
