package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/isfconv/internal/cli"
	"github.com/linuxmatters/isfconv/internal/isf"
)

// readWaveform decodes fname, printing warnings as they are raised.
func readWaveform(fname string) (*isf.Waveform, error) {
	name := filepath.Base(fname)
	opts := &isf.Options{
		Reporter: isf.ReporterFunc(func(w isf.Warning) {
			cli.PrintWarning(fmt.Sprintf("%s: %s", name, w))
		}),
	}
	return isf.ReadFile(fname, opts)
}

// outputPath returns out, or in with its extension replaced by ext.
func outputPath(in, out, ext string) string {
	if out != "" {
		return out
	}
	return strings.TrimSuffix(in, filepath.Ext(in)) + ext
}

// sampleInterval returns the X step of wf: XINCR for Y and ENV traces, the
// mean spacing of X for XY data.
func sampleInterval(wf *isf.Waveform) float64 {
	if wf.Header.PointFormat != isf.PointXY {
		return wf.Header.XIncr
	}
	n := len(wf.X)
	if n < 2 {
		return 0
	}
	return (wf.X[n-1] - wf.X[0]) / float64(n-1)
}
