package main

import (
	"fmt"

	"github.com/linuxmatters/isfconv/internal/cli"
	"github.com/linuxmatters/isfconv/internal/config"
	"github.com/linuxmatters/isfconv/internal/export"
	"github.com/linuxmatters/isfconv/internal/isf"
)

// XYCmd writes CSV columns as an XY ISF file.
type XYCmd struct {
	Input     string  `arg:"" help:"CSV file with x and y columns; lines starting with # are ignored." type:"existingfile"`
	Output    string  `short:"o" help:"Output ISF file (default: input with .isf extension)." type:"path" placeholder:"FILE"`
	Type      string  `help:"Sample type as a numpy-style descriptor, e.g. <f8, >i2, u1." default:"<f8" placeholder:"TYPE"`
	Delimiter *string `help:"CSV column delimiter (default: ,)." placeholder:"CHAR"`
}

func (c *XYCmd) Run(g *Globals) error {
	d, err := isf.ParseDescriptor(c.Type)
	if err != nil {
		return err
	}
	delim := g.Config.GetDelimiter()
	if c.Delimiter != nil {
		if delim, err = delimiterFlag(*c.Delimiter); err != nil {
			return err
		}
	}

	x, y, err := export.ReadXY(c.Input, delim)
	if err != nil {
		return err
	}

	out := outputPath(c.Input, c.Output, config.ISFExt)
	if err := writeXY(out, d, x, y); err != nil {
		return err
	}
	cli.PrintSuccess(fmt.Sprintf("%s → %s (%d points, %s)", c.Input, out, len(x), d))
	return nil
}

// writeXY encodes x and y with element type d into an XY ISF file.
func writeXY(fname string, d isf.Descriptor, x, y []float64) error {
	xa, err := isf.EncodeArray(d, x)
	if err != nil {
		return err
	}
	ya, err := isf.EncodeArray(d, y)
	if err != nil {
		return err
	}
	if err := isf.WriteXYFile(fname, xa, ya); err != nil {
		return fmt.Errorf("failed to write %s: %w", fname, err)
	}
	return nil
}
