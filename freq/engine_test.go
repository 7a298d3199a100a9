package freq

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/hippodribble/fdfilter/proxy"
)

func randomGrid(seed int64, w, h int) proxy.Float2D {
	rng := rand.New(rand.NewSource(seed))
	g := *proxy.NewFloat2D(w, h)
	for j := range g {
		for i := range g[j] {
			g[j][i] = rng.Float64() * 255
		}
	}
	return g
}

func checkerboard(w, h int, v float64) proxy.Float2D {
	g := *proxy.NewFloat2D(w, h)
	for j := range g {
		for i := range g[j] {
			if (i+j)%2 == 1 {
				g[j][i] = v
			}
		}
	}
	return g
}

func engines() map[string]*Engine {
	return map[string]*Engine{
		"dsp":   NewEngine(proxy.DSP{}),
		"gonum": NewEngine(proxy.Gonum{}),
	}
}

func TestApplyAllPassIsIdentity(t *testing.T) {
	for name, e := range engines() {
		for _, size := range [][2]int{{32, 32}, {15, 22}} {
			h, w := size[0], size[1]
			g := randomGrid(int64(h*w), w, h)
			ones := Mask{Float2D: *proxy.NewFloat2DUniform(w, h, 1), Kind: MaskIdeal, Pass: PassLow, Param: 1}

			recon, _, err := e.Apply(g, ones)
			require.NoError(t, err)
			mse, err := MSE(g, recon)
			require.NoError(t, err)
			assert.Less(t, mse, PSNREpsilon, "%s %dx%d", name, h, w)
			assert.True(t, isPosInf(PSNR(mse, DefaultMaxIntensity)))
		}
	}
}

func TestApplyUniformLowPass(t *testing.T) {
	g := *proxy.NewFloat2DUniform(64, 64, 128)
	for name, e := range engines() {
		for _, kind := range []MaskType{MaskIdeal, MaskGaussian} {
			m, err := NewMask(64, 64, kind, 5, PassLow)
			require.NoError(t, err)
			recon, _, err := e.Apply(g, m)
			require.NoError(t, err)
			mse, err := MSE(g, recon)
			require.NoError(t, err)
			assert.Less(t, mse, 1e-9, "%s %s", name, kind)
		}
	}
}

func TestApplyUniformHighPassRemovesMean(t *testing.T) {
	g := *proxy.NewFloat2DUniform(16, 16, 200)
	m, err := NewMask(16, 16, MaskIdeal, 2, PassHigh)
	require.NoError(t, err)
	recon, _, err := NewEngine(nil).Apply(g, m)
	require.NoError(t, err)
	assert.InDelta(t, 0, stat.Mean(recon.Flatten(), nil), 1e-9)
	mn, mx := recon.Range()
	assert.InDelta(t, 0, mn, 1e-9)
	assert.InDelta(t, 0, mx, 1e-9)
}

func TestApplyLowPlusHighIsOriginal(t *testing.T) {
	g := randomGrid(7, 20, 12)
	e := NewEngine(proxy.Gonum{})
	for _, kind := range []MaskType{MaskIdeal, MaskGaussian} {
		low, err := NewMask(12, 20, kind, 3, PassLow)
		require.NoError(t, err)
		high, err := NewMask(12, 20, kind, 3, PassHigh)
		require.NoError(t, err)
		rl, _, err := e.Apply(g, low)
		require.NoError(t, err)
		rh, _, err := e.Apply(g, high)
		require.NoError(t, err)
		for j := range g {
			for i := range g[j] {
				assert.InDelta(t, g[j][i], rl[j][i]+rh[j][i], 1e-9)
			}
		}
	}
}

func TestApplyMismatch(t *testing.T) {
	m, err := NewMask(8, 8, MaskIdeal, 2, PassLow)
	require.NoError(t, err)
	_, _, err = NewEngine(nil).Apply(*proxy.NewFloat2D(8, 9), m)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestApplyEmpty(t *testing.T) {
	e := NewEngine(nil)
	_, _, err := e.Apply(proxy.Float2D{}, Mask{})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, _, err = e.ApplyCentered(proxy.Complex2D{}, Mask{})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSpectrumCentresDC(t *testing.T) {
	g := *proxy.NewFloat2DUniform(10, 6, 3)
	c := (*Engine)(nil).Spectrum(g)
	assert.InDelta(t, 180, real(c[3][5]), 1e-9)
	assert.InDelta(t, 0, real(c[0][0]), 1e-9)
}

func stepEdge(w, h int) proxy.Float2D {
	g := *proxy.NewFloat2D(w, h)
	for j := range g {
		for i := w / 2; i < w; i++ {
			g[j][i] = 255
		}
	}
	return g
}

func TestIdealRingsGaussianDoesNot(t *testing.T) {
	g := stepEdge(64, 64)
	e := NewEngine(nil)

	ideal, err := NewMask(64, 64, MaskIdeal, 5, PassLow)
	require.NoError(t, err)
	gauss, err := NewMask(64, 64, MaskGaussian, 5, PassLow)
	require.NoError(t, err)

	ri, _, err := e.Apply(g, ideal)
	require.NoError(t, err)
	rg, _, err := e.Apply(g, gauss)
	require.NoError(t, err)

	mi, err := Score(g, ri)
	require.NoError(t, err)
	mg, err := Score(g, rg)
	require.NoError(t, err)
	assert.Greater(t, math.Abs(mi.MSE-mg.MSE), 1.0, "ideal %v gaussian %v", mi.MSE, mg.MSE)

	// a hard cutoff overshoots the step, a gaussian one stays within the input range
	mn, mx := ri.Range()
	assert.Greater(t, mx, 260.0)
	assert.Less(t, mn, -5.0)
	mn, mx = rg.Range()
	assert.LessOrEqual(t, mx, 255+1e-3)
	assert.GreaterOrEqual(t, mn, -1e-3)
}
