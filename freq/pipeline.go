package freq

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/hippodribble/fdfilter/proxy"
)

// Result is either a *SingleResult (low or high pass) or a *ComparisonResult (both).
// Callers switch on the concrete type.
type Result interface {
	PassType() PassType
	Source() *Input
	isResult()
}

// Input holds what both result shapes share: the grid actually filtered and its analysis.
type Input struct {
	Working        proxy.Float2D // 255 scale, after optional noise
	SpectrumBefore proxy.Float2D // 255-scale log-magnitude picture
	SharpnessIn    float64
	Kind           MaskType
	Cutoff         float64 // after defaulting and clamping
}

// Branch is the outcome of filtering with one mask polarity.
type Branch struct {
	Pass          PassType
	Mask          Mask
	Reconstructed proxy.Float2D // 255 scale, not clipped
	SpectrumAfter proxy.Float2D // 255-scale log-magnitude picture of the filtered spectrum
	Metrics       Metrics
}

type SingleResult struct {
	Input
	Filtered Branch
}

func (r *SingleResult) PassType() PassType { return r.Filtered.Pass }
func (r *SingleResult) Source() *Input     { return &r.Input }
func (*SingleResult) isResult()            {}

type ComparisonResult struct {
	Input
	Low  Branch
	High Branch
}

func (*ComparisonResult) PassType() PassType { return PassBoth }
func (r *ComparisonResult) Source() *Input   { return &r.Input }
func (*ComparisonResult) isResult()          {}

// Pipeline runs a whole filtering request: optional noise, forward transform, masks, inverse
// transforms, pictures and metrics.
type Pipeline struct {
	Engine *Engine
	Log    logrus.FieldLogger
}

// NewPipeline returns a pipeline on engine e. A nil e uses go-dsp, a nil log discards.
func NewPipeline(e *Engine, log logrus.FieldLogger) *Pipeline {
	if e == nil {
		e = NewEngine(nil)
	}
	if log == nil {
		log = discardLogger()
	}
	return &Pipeline{Engine: e, Log: log}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (p *Pipeline) logger() logrus.FieldLogger {
	if p.Log == nil {
		return discardLogger()
	}
	return p.Log
}

// Run filters a 255-scale grid as described by cfg.
func (p *Pipeline) Run(grid255 proxy.Float2D, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h, w := grid255.Dims()
	if h == 0 || w == 0 {
		return nil, invalidf("grid is empty")
	}
	for j := range grid255 {
		if len(grid255[j]) != w {
			return nil, invalidf("grid row %d has %d samples, want %d", j, len(grid255[j]), w)
		}
	}
	cutoff, err := cfg.Cutoff(h, w)
	if err != nil {
		return nil, err
	}
	log := p.logger().WithFields(logrus.Fields{
		"pass":   cfg.Pass,
		"mask":   cfg.Kind,
		"cutoff": cutoff,
		"rows":   h,
		"cols":   w,
	})

	working := grid255
	if cfg.Noise.Enabled {
		noisy, err := InjectNoise(grid255.Normalise01(), cfg.Noise.Sigma, cfg.Noise.Seed)
		if err != nil {
			return nil, err
		}
		working = noisy.Scale(255)
		log.WithFields(logrus.Fields{"sigma": cfg.Noise.Sigma, "seed": cfg.Noise.Seed}).Debug("noise added")
	}

	centered := p.Engine.Spectrum(working)
	in := Input{
		Working:        working,
		SpectrumBefore: Visualize(centered),
		Kind:           cfg.Kind,
		Cutoff:         cutoff,
	}
	if in.SharpnessIn, err = Sharpness(working.Normalise01()); err != nil {
		return nil, err
	}
	log.WithField("sharp_in", in.SharpnessIn).Debug("input analysed")

	if cfg.Pass == PassBoth {
		low, err := p.branch(centered, working, cfg.Kind, cutoff, PassLow, log)
		if err != nil {
			return nil, err
		}
		high, err := p.branch(centered, working, cfg.Kind, cutoff, PassHigh, log)
		if err != nil {
			return nil, err
		}
		return &ComparisonResult{Input: in, Low: low, High: high}, nil
	}

	b, err := p.branch(centered, working, cfg.Kind, cutoff, cfg.Pass, log)
	if err != nil {
		return nil, err
	}
	return &SingleResult{Input: in, Filtered: b}, nil
}

func (p *Pipeline) branch(centered proxy.Complex2D, working proxy.Float2D, kind MaskType, cutoff float64, pass PassType, log logrus.FieldLogger) (Branch, error) {
	h, w := centered.Dims()
	mask, err := NewMask(h, w, kind, cutoff, pass)
	if err != nil {
		return Branch{}, err
	}
	recon, filtered, err := p.Engine.ApplyCentered(centered, mask)
	if err != nil {
		return Branch{}, err
	}
	m, err := Score(working, recon)
	if err != nil {
		return Branch{}, err
	}
	log.WithFields(logrus.Fields{
		"branch":    pass,
		"mse":       m.MSE,
		"psnr":      m.PSNR,
		"sharp_out": m.SharpnessOut,
	}).Debug("branch filtered")
	return Branch{
		Pass:          pass,
		Mask:          mask,
		Reconstructed: recon,
		SpectrumAfter: Visualize(filtered),
		Metrics:       m,
	}, nil
}
