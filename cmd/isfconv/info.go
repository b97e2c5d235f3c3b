package main

import (
	"fmt"

	"github.com/linuxmatters/isfconv/internal/audio"
	"github.com/linuxmatters/isfconv/internal/cli"
)

// InfoCmd prints what a file contains.
type InfoCmd struct {
	Files []string `arg:"" help:"ISF files to describe." type:"existingfile"`
}

func (c *InfoCmd) Run(g *Globals) error {
	failed := 0
	for _, fname := range c.Files {
		if err := describe(fname); err != nil {
			cli.PrintError(fmt.Sprintf("%s: %v", fname, err))
			failed++
		}
	}
	if failed > 0 {
		return failures(failed, len(c.Files))
	}
	return nil
}

func describe(fname string) error {
	wf, err := readWaveform(fname)
	if err != nil {
		return err
	}
	h := wf.Header

	cli.PrintSection(fname)
	for name, v := range h.All() {
		cli.PrintInfo(name, v.String())
	}

	cli.PrintSection("Payload")
	cli.PrintInfo("Offset", fmt.Sprintf("%d", h.Curve.Offset))
	cli.PrintInfo("Length", fmt.Sprintf("%d bytes (%s)", h.Curve.Length, cli.FormatBytes(int64(h.Curve.Length))))
	cli.PrintInfo("Points", fmt.Sprintf("%d", len(wf.X)))

	st := audio.Analyze(wf.Trace())
	if st.N == 0 {
		return nil
	}
	unit := h.YUnit()
	value := func(v float64) string {
		if unit == "" {
			return fmt.Sprintf("%g", v)
		}
		return fmt.Sprintf("%g %s", v, unit)
	}
	cli.PrintSection("Statistics")
	cli.PrintInfo("Min", value(st.Min))
	cli.PrintInfo("Max", value(st.Max))
	cli.PrintInfo("Peak-to-peak", value(st.PeakToPeak()))
	cli.PrintInfo("Mean", value(st.Mean))
	cli.PrintInfo("Std-dev", value(st.StdDev))
	cli.PrintInfo("RMS", value(st.RMS))
	return nil
}
