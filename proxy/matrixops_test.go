package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPadEdge(t *testing.T) {
	m := NewImageMatrix(mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	}))
	p := m.PadEdge(1)
	r, c := p.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 5, c)

	want := []float64{
		1, 1, 2, 3, 3,
		1, 1, 2, 3, 3,
		4, 4, 5, 6, 6,
		4, 4, 5, 6, 6,
	}
	assert.Equal(t, want, p.RawMatrix().Data)
}

func TestConvolveValid(t *testing.T) {
	m := NewImageMatrix(mat.NewDense(3, 3, []float64{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}))
	out, err := m.Convolve(NewLaplacianKernel())
	require.NoError(t, err)
	r, c := out.Dims()
	require.Equal(t, 1, r)
	require.Equal(t, 1, c)
	assert.Equal(t, -4.0, out.At(0, 0))

	small := NewImageMatrix(mat.NewDense(2, 2, nil))
	_, err = small.Convolve(NewLaplacianKernel())
	assert.Error(t, err)
}

func TestLaplacian(t *testing.T) {
	t.Run("constant array has zero response", func(t *testing.T) {
		f := *NewFloat2DUniform(5, 4, 0.7)
		l, err := f.Laplacian()
		require.NoError(t, err)
		for _, row := range l {
			for _, v := range row {
				assert.InDelta(t, 0, v, 1e-15)
			}
		}
	})

	t.Run("single spike", func(t *testing.T) {
		f := *NewFloat2D(5, 5)
		f[2][2] = 1
		l, err := f.Laplacian()
		require.NoError(t, err)
		h, w := l.Dims()
		require.Equal(t, 5, h)
		require.Equal(t, 5, w)
		assert.Equal(t, -4.0, l[2][2])
		assert.Equal(t, 1.0, l[1][2])
		assert.Equal(t, 1.0, l[2][3])
		assert.Equal(t, 0.0, l[1][1])
	})

	t.Run("edge samples are replicated", func(t *testing.T) {
		// a ramp along the columns has zero second difference everywhere except where the
		// replicated border flattens it
		f := Float2D{{0, 1, 2, 3}}
		l, err := f.Laplacian()
		require.NoError(t, err)
		assert.Equal(t, Float2D{{1, 0, 0, -1}}, l)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Float2D{}.Laplacian()
		assert.Error(t, err)
	})
}

func TestToFloat2DCopies(t *testing.T) {
	d := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	m := NewImageMatrix(d)
	f := m.ToFloat2D()
	d.Set(0, 0, 99)
	assert.Equal(t, Float2D{{1, 2}, {3, 4}}, f)
}
