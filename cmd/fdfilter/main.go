// Command fdfilter filters a grayscale image in the frequency domain and prints a JSON report of
// the spectra, mask, reconstruction and quality metrics.
//
//	fdfilter --pass both --mask gaussian --sigma 12 --images out/ moon.png > report.json
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hippodribble/fdfilter/freq"
	"github.com/hippodribble/fdfilter/proxy"
	"github.com/hippodribble/fdfilter/report"
)

type options struct {
	pass       string
	mask       string
	radius     float64
	sigma      float64
	noise      bool
	noiseSigma float64
	noiseSeed  int64
	fft        string
	out        string
	images     string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:           "fdfilter [flags] IMAGE",
		Short:         "Low-pass or high-pass filter an image in the frequency domain",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			level, err := logrus.ParseLevel(o.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)

			if err := run(o, cmd.Flags(), args[0], cmd.OutOrStdout(), log); err != nil {
				log.WithError(err).Error("filtering failed")
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.pass, "pass", string(freq.PassLow), "frequencies to keep: low, high or both")
	f.StringVar(&o.mask, "mask", string(freq.MaskIdeal), "mask profile: ideal or gaussian")
	f.Float64Var(&o.radius, "radius", 0, "ideal mask cutoff radius in frequency samples (default max(2, rMax/6))")
	f.Float64Var(&o.sigma, "sigma", 0, "gaussian mask standard deviation in frequency samples (default max(2, rMax/6))")
	f.BoolVar(&o.noise, "noise", false, "add gaussian noise before filtering")
	f.Float64Var(&o.noiseSigma, "noise-sigma", freq.DefaultNoiseSigma, "noise standard deviation on the 0..1 scale")
	f.Int64Var(&o.noiseSeed, "noise-seed", 0, "noise generator seed")
	f.StringVar(&o.fft, "fft", proxy.TransformerDSP, "transform backend: dsp or gonum")
	f.StringVarP(&o.out, "out", "o", "", "write the JSON report to this file instead of stdout")
	f.StringVar(&o.images, "images", "", "also write every picture as PNG into this directory")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	return cmd
}

// config turns the flags into a filter configuration. A cutoff is only taken from the flags when
// it was given explicitly, so that 0 stays "derive from the image".
func (o *options) config(flags *pflag.FlagSet) (freq.Config, error) {
	cfg := freq.DefaultConfig()
	var err error
	if cfg.Pass, err = freq.ParsePassType(o.pass); err != nil {
		return cfg, err
	}
	if cfg.Kind, err = freq.ParseMaskType(o.mask); err != nil {
		return cfg, err
	}
	if flags.Changed("radius") {
		if o.radius <= 0 {
			return cfg, fmt.Errorf("%w: --radius must be positive", freq.ErrInvalidConfiguration)
		}
		cfg.Radius = o.radius
	}
	if flags.Changed("sigma") {
		if o.sigma <= 0 {
			return cfg, fmt.Errorf("%w: --sigma must be positive", freq.ErrInvalidConfiguration)
		}
		cfg.Sigma = o.sigma
	}
	cfg.Noise = freq.NoiseConfig{Enabled: o.noise, Sigma: o.noiseSigma, Seed: o.noiseSeed}
	return cfg, cfg.Validate()
}

func run(o *options, flags *pflag.FlagSet, path string, stdout io.Writer, log *logrus.Logger) error {
	start := time.Now()
	cfg, err := o.config(flags)
	if err != nil {
		return err
	}
	tr, err := proxy.NewTransformer(o.fft)
	if err != nil {
		return fmt.Errorf("%w: %v", freq.ErrInvalidConfiguration, err)
	}

	var ip proxy.ImageProxy
	if err := ip.LoadFromFile(path); err != nil {
		return err
	}
	grid, err := ip.LuminanceAsFloat()
	if err != nil {
		return err
	}
	fields := logrus.Fields{"file": path, "type": ip.Type(), "width": ip.Config.Width, "height": ip.Config.Height}
	if info, err := os.Stat(path); err == nil {
		fields["size"] = humanize.Bytes(uint64(info.Size()))
	}
	log.WithFields(fields).Info("image loaded")
	log.Debug(ip.AllMetadata())

	res, err := freq.NewPipeline(freq.NewEngine(tr), log).Run(*grid, cfg)
	if err != nil {
		return err
	}
	logResult(log, res)

	rep, err := report.Build(res)
	if err != nil {
		return err
	}
	b, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	if o.out == "" {
		if _, err := stdout.Write(append(b, '\n')); err != nil {
			return err
		}
	} else if err := os.WriteFile(o.out, b, 0o644); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"out": destination(o.out), "size": humanize.Bytes(uint64(len(b)))}).Info("report written")

	if o.images != "" {
		paths, err := report.WriteImages(o.images, res)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"dir": o.images, "files": len(paths)}).Info("images written")
	}

	log.WithField("elapsed", durafmt.Parse(time.Since(start)).LimitFirstN(2).String()).Info("done")
	return nil
}

func logResult(log logrus.FieldLogger, res freq.Result) {
	in := res.Source()
	entry := log.WithFields(logrus.Fields{
		"pass":     res.PassType(),
		"mask":     in.Kind,
		"cutoff":   in.Cutoff,
		"sharp_in": humanize.FormatFloat("#.####", in.SharpnessIn),
	})
	switch r := res.(type) {
	case *freq.SingleResult:
		m := r.Filtered.Metrics
		entry.WithFields(logrus.Fields{
			"mse":       humanize.FormatFloat("#.###", m.MSE),
			"psnr":      psnrText(m.PSNR),
			"sharp_out": humanize.FormatFloat("#.####", m.SharpnessOut),
		}).Info("filtered")
	case *freq.ComparisonResult:
		entry.WithFields(logrus.Fields{
			"mse_low":    humanize.FormatFloat("#.###", r.Low.Metrics.MSE),
			"mse_high":   humanize.FormatFloat("#.###", r.High.Metrics.MSE),
			"psnr_low":   psnrText(r.Low.Metrics.PSNR),
			"psnr_high":  psnrText(r.High.Metrics.PSNR),
			"sharp_low":  humanize.FormatFloat("#.####", r.Low.Metrics.SharpnessOut),
			"sharp_high": humanize.FormatFloat("#.####", r.High.Metrics.SharpnessOut),
		}).Info("compared")
	default:
		entry.Warnf("unexpected result %T", res)
	}
}

func psnrText(v float64) string {
	if report.Number(v) == nil {
		return "inf"
	}
	return humanize.FormatFloat("#.##", v) + " dB"
}

func destination(out string) string {
	if out == "" {
		return "stdout"
	}
	return out
}
