package renderer

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/linuxmatters/isfconv/internal/config"
	"github.com/linuxmatters/isfconv/internal/isf"
)

// Label font, parsed once
var labelFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

type align int

const (
	alignLeft align = iota
	alignRight
)

// measureText returns the width and bounds of rendered text
func measureText(face font.Face, text string) (int, fixed.Rectangle26_6) {
	d := &font.Drawer{Face: face}
	bounds, _ := d.BoundString(text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	return width, bounds
}

// drawText draws text with its baseline at y. x is the left or right edge
// depending on a.
func drawText(img *image.RGBA, face font.Face, c color.RGBA, text string, x, y int, a align) {
	if text == "" {
		return
	}
	if a == alignRight {
		width, _ := measureText(face, text)
		x -= width
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  freetype.Pt(x, y),
	}
	d.DrawString(text)
}

// formatScale formats a per-division value like an instrument readout.
func formatScale(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'g', 3, 64) + " "
	if unit != "" {
		s += unit
	}
	return s + "/div"
}

// drawLabels writes the title, point count and per-division scales around
// the graticule.
func drawLabels(img *image.RGBA, wf *isf.Waveform, sc screen, opts Options) error {
	f, err := labelFont()
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    config.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	title := opts.Title
	if title == "" {
		title = wf.Header.WFID()
	}

	top := sc.area.Min.Y - config.PlotMargin/4
	bottom := sc.area.Max.Y + config.PlotMargin/2
	left, right := sc.area.Min.X, sc.area.Max.X

	drawText(img, face, opts.Text, title, left, top, alignLeft)
	drawText(img, face, opts.Text,
		fmt.Sprintf("%d points  %s", len(wf.X), wf.Header.PointFormat), right, top, alignRight)

	drawText(img, face, opts.Text,
		formatScale(sc.x.width()/config.GridDivisionsX, wf.Header.XUnit()), left, bottom, alignLeft)
	drawText(img, face, opts.Text,
		formatScale(sc.y.width()/config.GridDivisionsY, wf.Header.YUnit()), right, bottom, alignRight)
	return nil
}
