package main

import (
	"fmt"

	"github.com/linuxmatters/isfconv/internal/audio"
	"github.com/linuxmatters/isfconv/internal/cli"
	"github.com/linuxmatters/isfconv/internal/config"
	"github.com/linuxmatters/isfconv/internal/export"
)

// SpectrumCmd writes the amplitude spectrum of a waveform.
type SpectrumCmd struct {
	Input     string  `arg:"" help:"ISF file." type:"existingfile"`
	Output    string  `short:"o" help:"Output CSV file (default: input with .csv extension)." type:"path" placeholder:"FILE"`
	Delimiter *string `help:"CSV column delimiter (default: ,)." placeholder:"CHAR"`
	Precision *int    `help:"Digits after the decimal point; -1 writes the shortest exact value." placeholder:"N"`
}

func (c *SpectrumCmd) Run(g *Globals) error {
	wf, err := readWaveform(c.Input)
	if err != nil {
		return err
	}

	spec, err := audio.ComputeSpectrum(wf.Trace(), sampleInterval(wf))
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}

	precision := g.Config.GetPrecision()
	opts := export.Options{
		Delimiter: g.Config.GetDelimiter(),
		Precision: &precision,
	}
	if c.Delimiter != nil {
		if opts.Delimiter, err = delimiterFlag(*c.Delimiter); err != nil {
			return err
		}
	}
	if c.Precision != nil {
		precision = min(*c.Precision, config.MaxPrecision)
	}

	xUnit, yUnit := wf.Header.XUnit(), wf.Header.YUnit()
	hdr := fmt.Sprintf("# frequency (1/%s), amplitude (%s), %d-point FFT", xUnit, yUnit, spec.Size)

	out := export.WithCSVExt(outputPath(c.Input, c.Output, config.CSVExt))
	if err := export.WriteColumns(out, hdr, opts, spec.Freq, spec.Magnitude); err != nil {
		return err
	}

	freq, mag := spec.Peak()
	cli.PrintSuccess(fmt.Sprintf("%s → %s (peak %g at %g 1/%s)", c.Input, out, mag, freq, xUnit))
	return nil
}
