// Package report turns a filtering result into the JSON document and PNG files handed to users.
//
// Every picture is an 8-bit grayscale PNG of a 255-scale grid, clipped to 0..255 with fractions
// truncated. Masks are rendered scaled by 255. JSON cannot carry infinities, so a lossless
// reconstruction reports its PSNR as null.
package report

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/hippodribble/fdfilter/freq"
	"github.com/hippodribble/fdfilter/proxy"
)

// ModeFilter is the only mode this program produces.
const ModeFilter = "filter"

// Report is the JSON document for one run. Exactly one of Single and Comparison is set; the other
// contributes no fields.
type Report struct {
	Header
	*Single
	*Comparison
}

// Header carries the fields common to both shapes.
type Header struct {
	Mode       string        `json:"mode"`
	PassType   freq.PassType `json:"pass_type"`
	MaskType   freq.MaskType `json:"mask_type"`
	Cutoff     float64       `json:"cutoff"`
	Compare    bool          `json:"compare"`
	Original   string        `json:"original"`
	SpecBefore string        `json:"spec_before"`
	SharpIn    float64       `json:"sharp_in"`
}

type Single struct {
	SpecAfter string   `json:"spec_after"`
	Mask      string   `json:"mask"`
	Recon     string   `json:"recon"`
	MSE       float64  `json:"mse"`
	PSNR      *float64 `json:"psnr"`
	SharpOut  float64  `json:"sharp_out"`
}

type Comparison struct {
	ReconLow      string   `json:"recon_low"`
	ReconHigh     string   `json:"recon_high"`
	MaskLow       string   `json:"mask_low"`
	MaskHigh      string   `json:"mask_high"`
	SpecAfterLow  string   `json:"spec_after_low"`
	SpecAfterHigh string   `json:"spec_after_high"`
	MSELow        float64  `json:"mse_low"`
	MSEHigh       float64  `json:"mse_high"`
	PSNRLow       *float64 `json:"psnr_low"`
	PSNRHigh      *float64 `json:"psnr_high"`
	SharpLow      float64  `json:"sharp_low"`
	SharpHigh     float64  `json:"sharp_high"`
}

// Number returns nil for NaN and infinities, which JSON cannot represent, and &v otherwise.
func Number(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Picture is one displayable grid of a result, named as in the JSON document.
type Picture struct {
	Name string
	Grid proxy.Float2D
}

// Pictures lists the displayable grids of res in document order.
func Pictures(res freq.Result) ([]Picture, error) {
	switch r := res.(type) {
	case *freq.SingleResult:
		return []Picture{
			{"original", r.Working},
			{"spec_before", r.SpectrumBefore},
			{"spec_after", r.Filtered.SpectrumAfter},
			{"mask", r.Filtered.Mask.Display()},
			{"recon", r.Filtered.Reconstructed},
		}, nil
	case *freq.ComparisonResult:
		return []Picture{
			{"original", r.Working},
			{"spec_before", r.SpectrumBefore},
			{"recon_low", r.Low.Reconstructed},
			{"recon_high", r.High.Reconstructed},
			{"mask_low", r.Low.Mask.Display()},
			{"mask_high", r.High.Mask.Display()},
			{"spec_after_low", r.Low.SpectrumAfter},
			{"spec_after_high", r.High.SpectrumAfter},
		}, nil
	case nil:
		return nil, errors.New("no result")
	}
	return nil, fmt.Errorf("unsupported result %T", res)
}

func toImage(p Picture) (proxy.ImageProxy, error) {
	var ip proxy.ImageProxy
	if err := ip.LoadFromFloats(p.Grid); err != nil {
		return ip, fmt.Errorf("%s: %w", p.Name, err)
	}
	ip.AddMetadata(p.Name)
	return ip, nil
}

// encodes every picture as base64 PNG, concurrently
func encodeAll(pics []Picture) (map[string]string, error) {
	out := make([]string, len(pics))
	var g errgroup.Group
	for k, p := range pics {
		k, p := k, p
		g.Go(func() error {
			ip, err := toImage(p)
			if err != nil {
				return err
			}
			s, err := ip.Base64PNG()
			if err != nil {
				return fmt.Errorf("%s: %w", p.Name, err)
			}
			out[k] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	m := make(map[string]string, len(pics))
	for k, p := range pics {
		m[p.Name] = out[k]
	}
	return m, nil
}

// Build renders res as a JSON-ready report.
func Build(res freq.Result) (*Report, error) {
	pics, err := Pictures(res)
	if err != nil {
		return nil, err
	}
	enc, err := encodeAll(pics)
	if err != nil {
		return nil, err
	}

	in := res.Source()
	rep := &Report{Header: Header{
		Mode:       ModeFilter,
		PassType:   res.PassType(),
		MaskType:   in.Kind,
		Cutoff:     in.Cutoff,
		Original:   enc["original"],
		SpecBefore: enc["spec_before"],
		SharpIn:    in.SharpnessIn,
	}}

	switch r := res.(type) {
	case *freq.SingleResult:
		m := r.Filtered.Metrics
		rep.Single = &Single{
			SpecAfter: enc["spec_after"],
			Mask:      enc["mask"],
			Recon:     enc["recon"],
			MSE:       m.MSE,
			PSNR:      Number(m.PSNR),
			SharpOut:  m.SharpnessOut,
		}
	case *freq.ComparisonResult:
		rep.Compare = true
		lo, hi := r.Low.Metrics, r.High.Metrics
		rep.Comparison = &Comparison{
			ReconLow:      enc["recon_low"],
			ReconHigh:     enc["recon_high"],
			MaskLow:       enc["mask_low"],
			MaskHigh:      enc["mask_high"],
			SpecAfterLow:  enc["spec_after_low"],
			SpecAfterHigh: enc["spec_after_high"],
			MSELow:        lo.MSE,
			MSEHigh:       hi.MSE,
			PSNRLow:       Number(lo.PSNR),
			PSNRHigh:      Number(hi.PSNR),
			SharpLow:      lo.SharpnessOut,
			SharpHigh:     hi.SharpnessOut,
		}
	}
	return rep, nil
}

// WriteImages saves every picture of res as dir/<name>.png, creating dir if needed, and returns
// the paths written.
func WriteImages(dir string, res freq.Result) ([]string, error) {
	pics, err := Pictures(res)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(pics))
	for _, p := range pics {
		ip, err := toImage(p)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, p.Name+".png")
		if err := ip.SavePNG(path); err != nil {
			return paths, fmt.Errorf("%s: %w", p.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
