package report

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hippodribble/fdfilter/freq"
	"github.com/hippodribble/fdfilter/proxy"
)

func ramp(w, h int) proxy.Float2D {
	g := *proxy.NewFloat2D(w, h)
	for j := range g {
		for i := range g[j] {
			g[j][i] = float64((i*13 + j*7) % 256)
		}
	}
	return g
}

func run(t *testing.T, g proxy.Float2D, cfg freq.Config) freq.Result {
	t.Helper()
	res, err := freq.NewPipeline(nil, nil).Run(g, cfg)
	require.NoError(t, err)
	return res
}

func decodePNG(t *testing.T, s string) *image.Gray {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	im, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	g, ok := im.(*image.Gray)
	require.True(t, ok, "got %T", im)
	return g
}

func TestNumber(t *testing.T) {
	assert.Nil(t, Number(math.Inf(1)))
	assert.Nil(t, Number(math.Inf(-1)))
	assert.Nil(t, Number(math.NaN()))
	p := Number(31.5)
	require.NotNil(t, p)
	assert.Equal(t, 31.5, *p)
}

func TestBuildSingle(t *testing.T) {
	g := ramp(24, 16)
	rep, err := Build(run(t, g, freq.DefaultConfig()))
	require.NoError(t, err)
	require.NotNil(t, rep.Single)
	assert.Nil(t, rep.Comparison)

	b, err := json.Marshal(rep)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))

	for _, k := range []string{"mode", "pass_type", "compare", "original", "spec_before", "spec_after", "mask", "recon", "mse", "psnr", "sharp_in", "sharp_out"} {
		assert.Contains(t, doc, k)
	}
	assert.NotContains(t, doc, "recon_low")
	assert.Equal(t, "filter", doc["mode"])
	assert.Equal(t, "low", doc["pass_type"])
	assert.Equal(t, false, doc["compare"])
	assert.IsType(t, float64(0), doc["psnr"])

	orig := decodePNG(t, rep.Original)
	assert.Equal(t, image.Rect(0, 0, 24, 16), orig.Bounds())
	assert.Equal(t, uint8(g[3][5]), orig.GrayAt(5, 3).Y)

	mask := decodePNG(t, rep.Mask)
	assert.Equal(t, uint8(255), mask.GrayAt(12, 8).Y)
	assert.Equal(t, uint8(0), mask.GrayAt(0, 0).Y)
}

func TestBuildIdentityPSNRIsNull(t *testing.T) {
	rep, err := Build(run(t, proxy.Float2D{{77}}, freq.DefaultConfig()))
	require.NoError(t, err)
	assert.Nil(t, rep.PSNR)

	b, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"psnr":null`)
}

func TestBuildComparison(t *testing.T) {
	cfg := freq.DefaultConfig()
	cfg.Pass = freq.PassBoth
	cfg.Kind = freq.MaskGaussian
	rep, err := Build(run(t, ramp(20, 20), cfg))
	require.NoError(t, err)
	require.NotNil(t, rep.Comparison)
	assert.Nil(t, rep.Single)
	assert.True(t, rep.Compare)

	b, err := json.Marshal(rep)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	for _, k := range []string{"recon_low", "recon_high", "mask_low", "mask_high", "spec_after_low", "spec_after_high", "mse_low", "mse_high", "psnr_low", "psnr_high", "sharp_in", "sharp_low", "sharp_high"} {
		assert.Contains(t, doc, k)
	}
	assert.NotContains(t, doc, "recon")
	assert.NotContains(t, doc, "sharp_out")
	assert.Equal(t, "both", doc["pass_type"])
	assert.Equal(t, "gaussian", doc["mask_type"])

	lo := decodePNG(t, rep.MaskLow)
	hi := decodePNG(t, rep.MaskHigh)
	assert.Equal(t, uint8(255), lo.GrayAt(10, 10).Y)
	assert.Equal(t, uint8(0), hi.GrayAt(10, 10).Y)
}

func TestPicturesRejectsNil(t *testing.T) {
	_, err := Pictures(nil)
	assert.Error(t, err)
	_, err = Build(nil)
	assert.Error(t, err)
}

func TestWriteImages(t *testing.T) {
	cfg := freq.DefaultConfig()
	cfg.Pass = freq.PassBoth
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := WriteImages(dir, run(t, ramp(16, 12), cfg))
	require.NoError(t, err)
	require.Len(t, paths, 8)
	assert.Equal(t, filepath.Join(dir, "original.png"), paths[0])

	for _, p := range paths {
		f, err := os.Open(p)
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(f)
		f.Close()
		require.NoError(t, err, p)
		assert.Equal(t, 16, cfg.Width)
		assert.Equal(t, 12, cfg.Height)
	}
}
