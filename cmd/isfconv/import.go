package main

import (
	"fmt"

	"github.com/linuxmatters/isfconv/internal/audio"
	"github.com/linuxmatters/isfconv/internal/cli"
	"github.com/linuxmatters/isfconv/internal/config"
	"github.com/linuxmatters/isfconv/internal/isf"
)

// ImportCmd converts audio into an XY ISF file.
type ImportCmd struct {
	Input  string `arg:"" help:"WAV, FLAC or MP3 file." type:"existingfile"`
	Output string `short:"o" help:"Output ISF file (default: input with .isf extension)." type:"path" placeholder:"FILE"`
	Type   string `help:"Float sample type: <f4, >f4, <f8 or >f8." default:"<f4" placeholder:"TYPE"`
}

func (c *ImportCmd) Run(g *Globals) error {
	d, err := isf.ParseDescriptor(c.Type)
	if err != nil {
		return err
	}
	// Samples are in [-1, 1]; integer types would truncate them to zero
	if d.Kind != isf.Float {
		return fmt.Errorf("import needs a float sample type, got %s", d)
	}

	samples, rate, err := audio.ReadFile(c.Input)
	if err != nil {
		return err
	}

	x := make([]float64, len(samples))
	for i := range x {
		x[i] = float64(i) / float64(rate)
	}

	out := outputPath(c.Input, c.Output, config.ISFExt)
	if err := writeXY(out, d, x, samples); err != nil {
		return err
	}
	cli.PrintSuccess(fmt.Sprintf("%s → %s (%d samples at %d Hz)", c.Input, out, len(samples), rate))
	return nil
}
