package main

import (
	"fmt"
	"image/color"

	"github.com/linuxmatters/isfconv/internal/cli"
	"github.com/linuxmatters/isfconv/internal/config"
	"github.com/linuxmatters/isfconv/internal/renderer"
)

// PlotCmd renders a waveform image.
type PlotCmd struct {
	Input  string `arg:"" help:"ISF file." type:"existingfile"`
	Output string `short:"o" help:"Output PNG file (default: input with .png extension)." type:"path" placeholder:"FILE"`
	Width  *int   `help:"Image width in pixels (default: 1280)." placeholder:"PX"`
	Height *int   `help:"Image height in pixels (default: 720)." placeholder:"PX"`
	Color  string `help:"Trace colour as hex, e.g. #F8B31D." placeholder:"HEX"`
	Title  string `help:"Title text (default: the waveform's WFID)."`
}

func (c *PlotCmd) Run(g *Globals) error {
	opts := renderer.DefaultOptions()
	opts.Width, opts.Height = g.Config.GetPlotSize()
	if c.Width != nil {
		opts.Width = *c.Width
	}
	if c.Height != nil {
		opts.Height = *c.Height
	}

	r, gr, b := g.Config.GetTraceColor()
	if c.Color != "" {
		var err error
		if r, gr, b, err = config.ParseHexColor(c.Color); err != nil {
			return err
		}
	}
	opts.Trace = color.RGBA{R: r, G: gr, B: b, A: 255}
	r, gr, b = g.Config.GetTextColor()
	opts.Text = color.RGBA{R: r, G: gr, B: b, A: 255}
	opts.Title = c.Title

	wf, err := readWaveform(c.Input)
	if err != nil {
		return err
	}
	img, err := renderer.Plot(wf, opts)
	if err != nil {
		return err
	}

	out := outputPath(c.Input, c.Output, ".png")
	if err := renderer.SavePNG(img, out); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	cli.PrintSuccess(fmt.Sprintf("%s → %s (%dx%d)", c.Input, out, opts.Width, opts.Height))
	return nil
}
