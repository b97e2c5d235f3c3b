package main

import (
	"fmt"

	"github.com/linuxmatters/isfconv/internal/audio"
	"github.com/linuxmatters/isfconv/internal/cli"
)

// WAVCmd exports a waveform as audio.
type WAVCmd struct {
	Input  string `arg:"" help:"ISF file." type:"existingfile"`
	Output string `short:"o" help:"Output WAV file (default: input with .wav extension)." type:"path" placeholder:"FILE"`
	Rate   *int   `help:"Sample rate in Hz (default: 1/XINCR, clamped to 8000-192000)." placeholder:"HZ"`
	Bits   *int   `help:"Bits per sample: 16, 24 or 32 (default: 16)." placeholder:"N"`
}

func (c *WAVCmd) Run(g *Globals) error {
	wf, err := readWaveform(c.Input)
	if err != nil {
		return err
	}

	rate := g.Config.GetSampleRate()
	if c.Rate != nil {
		rate = *c.Rate
	}
	if rate == 0 {
		rate = audio.RateFromInterval(sampleInterval(wf))
	}
	bits := g.Config.GetBitDepth()
	if c.Bits != nil {
		bits = *c.Bits
	}

	out := outputPath(c.Input, c.Output, ".wav")
	samples := audio.Normalise(wf.Trace())
	if err := audio.WriteWAV(out, samples, rate, bits); err != nil {
		return err
	}
	cli.PrintSuccess(fmt.Sprintf("%s → %s (%d samples, %d Hz, %d-bit)", c.Input, out, len(samples), rate, bits))
	return nil
}
