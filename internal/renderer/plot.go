// Package renderer draws decoded waveforms as PNG images in the style of an
// oscilloscope screen: dark background, graticule, trace and labels.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/linuxmatters/isfconv/internal/config"
	"github.com/linuxmatters/isfconv/internal/isf"
)

// Line widths in pixels
const (
	traceWidth = 1.5
	gridAlpha  = 48
)

// Options controls the appearance of a plot.
type Options struct {
	Width      int
	Height     int
	Trace      color.RGBA
	Text       color.RGBA
	Background color.RGBA
	Title      string // defaults to the waveform's WFID
}

// DefaultOptions returns the compile-time plot settings.
func DefaultOptions() Options {
	return Options{
		Width:      config.PlotWidth,
		Height:     config.PlotHeight,
		Trace:      color.RGBA{R: config.TraceColorR, G: config.TraceColorG, B: config.TraceColorB, A: 255},
		Text:       color.RGBA{R: config.TextColorR, G: config.TextColorG, B: config.TextColorB, A: 255},
		Background: color.RGBA{R: config.BackgroundColorR, G: config.BackgroundColorG, B: config.BackgroundColorB, A: 255},
	}
}

// span is a closed data interval mapped onto a pixel interval.
type span struct {
	lo, hi float64
}

func (s span) width() float64 { return s.hi - s.lo }

// dataSpan returns the finite extent of the given slices. Degenerate spans
// are widened so that a flat trace sits in the middle of the screen.
func dataSpan(values ...[]float64) span {
	s := span{lo: math.Inf(1), hi: math.Inf(-1)}
	for _, vs := range values {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			s.lo = math.Min(s.lo, v)
			s.hi = math.Max(s.hi, v)
		}
	}
	switch {
	case s.lo > s.hi:
		return span{lo: -1, hi: 1}
	case s.lo == s.hi:
		pad := math.Max(math.Abs(s.lo)*0.5, 1e-12)
		if s.lo == 0 {
			pad = 1
		}
		return span{lo: s.lo - pad, hi: s.hi + pad}
	}
	return s
}

// screen maps data coordinates into the graticule rectangle.
type screen struct {
	area image.Rectangle
	x, y span
}

func (s screen) px(x float64) float32 {
	return float32(float64(s.area.Min.X) + (x-s.x.lo)/s.x.width()*float64(s.area.Dx()))
}

func (s screen) py(y float64) float32 {
	return float32(float64(s.area.Max.Y) - (y-s.y.lo)/s.y.width()*float64(s.area.Dy()))
}

// Plot renders wf into a new image. ENV waveforms are drawn as a shaded
// min/max band with the mid-point trace on top.
func Plot(wf *isf.Waveform, opts Options) (*image.RGBA, error) {
	if wf == nil || wf.Header == nil {
		return nil, fmt.Errorf("no waveform to plot")
	}
	if opts.Width <= 2*config.PlotMargin || opts.Height <= 2*config.PlotMargin {
		return nil, fmt.Errorf("plot size %dx%d too small (minimum %dx%d)",
			opts.Width, opts.Height, 2*config.PlotMargin+1, 2*config.PlotMargin+1)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	sc := screen{
		area: image.Rect(config.PlotMargin, config.PlotMargin,
			opts.Width-config.PlotMargin, opts.Height-config.PlotMargin),
		x: dataSpan(wf.X),
	}

	trace := wf.Trace()
	var lo, hi []float64
	if wf.IsEnvelope() {
		lo, hi = wf.Envelope()
		sc.y = dataSpan(lo, hi)
	} else {
		sc.y = dataSpan(trace)
	}

	drawGraticule(img, sc.area, opts.Text)

	n := min(len(wf.X), len(trace))
	if lo != nil {
		band := opts.Trace
		band.A = config.EnvelopeAlpha
		fillBand(img, sc, wf.X[:n], lo[:n], hi[:n], premultiply(band))
	}
	drawTrace(img, sc, wf.X[:n], trace[:n], opts.Trace)

	if err := drawLabels(img, wf, sc, opts); err != nil {
		return nil, err
	}
	return img, nil
}

// premultiply converts a straight-alpha colour to the premultiplied form
// image/color expects.
func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}

// drawGraticule draws the division grid and the outline of area.
func drawGraticule(img *image.RGBA, area image.Rectangle, c color.RGBA) {
	grid := c
	grid.A = gridAlpha
	gridSrc := image.NewUniform(premultiply(grid))

	for i := 1; i < config.GridDivisionsX; i++ {
		x := area.Min.X + i*area.Dx()/config.GridDivisionsX
		draw.Draw(img, image.Rect(x, area.Min.Y, x+1, area.Max.Y), gridSrc, image.Point{}, draw.Over)
	}
	for i := 1; i < config.GridDivisionsY; i++ {
		y := area.Min.Y + i*area.Dy()/config.GridDivisionsY
		draw.Draw(img, image.Rect(area.Min.X, y, area.Max.X, y+1), gridSrc, image.Point{}, draw.Over)
	}

	outline := image.NewUniform(c)
	for _, r := range []image.Rectangle{
		image.Rect(area.Min.X, area.Min.Y, area.Max.X, area.Min.Y+1),
		image.Rect(area.Min.X, area.Max.Y-1, area.Max.X, area.Max.Y),
		image.Rect(area.Min.X, area.Min.Y, area.Min.X+1, area.Max.Y),
		image.Rect(area.Max.X-1, area.Min.Y, area.Max.X, area.Max.Y),
	} {
		draw.Draw(img, r, outline, image.Point{}, draw.Src)
	}
}

// drawTrace strokes the polyline through (x[i], y[i]). Non-finite points
// break the line.
func drawTrace(img *image.RGBA, sc screen, x, y []float64, c color.RGBA) {
	z := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	half := float32(traceWidth / 2)

	finite := func(i int) bool {
		return !math.IsNaN(x[i]) && !math.IsInf(x[i], 0) && !math.IsNaN(y[i]) && !math.IsInf(y[i], 0)
	}

	drawn := false
	for i := range x {
		if !finite(i) {
			continue
		}
		ax, ay := sc.px(x[i]), sc.py(y[i])
		if i+1 < len(x) && finite(i+1) {
			strokeSegment(z, ax, ay, sc.px(x[i+1]), sc.py(y[i+1]), half)
			drawn = true
			continue
		}
		if i == 0 || !finite(i-1) {
			// isolated point
			strokeSegment(z, ax-half, ay, ax+half, ay, half)
			drawn = true
		}
	}
	if drawn {
		z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}
}

// strokeSegment adds a rectangle of half-width w around the segment a-b.
func strokeSegment(z *vector.Rasterizer, ax, ay, bx, by, w float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	// unit normal scaled to w
	nx, ny := -dy/l*w, dx/l*w

	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

// fillBand shades the region between lo and hi.
func fillBand(img *image.RGBA, sc screen, x, lo, hi []float64, c color.RGBA) {
	if len(x) < 2 {
		return
	}
	for i := range x {
		for _, v := range [...]float64{x[i], lo[i], hi[i]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return
			}
		}
	}
	z := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	z.MoveTo(sc.px(x[0]), sc.py(hi[0]))
	for i := 1; i < len(x); i++ {
		z.LineTo(sc.px(x[i]), sc.py(hi[i]))
	}
	for i := len(x) - 1; i >= 0; i-- {
		z.LineTo(sc.px(x[i]), sc.py(lo[i]))
	}
	z.ClosePath()
	z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(outFile, img); err != nil {
		outFile.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return outFile.Close()
}
