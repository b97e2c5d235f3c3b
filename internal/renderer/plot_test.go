package renderer

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/linuxmatters/isfconv/internal/config"
	"github.com/linuxmatters/isfconv/internal/isf"
)

func newWaveform(t *testing.T, ptFmt string, x, y []float64) *isf.Waveform {
	t.Helper()
	h := isf.NewHeader()
	for name, v := range map[string]isf.Value{
		"PT_FMT": isf.String(ptFmt),
		"NR_PT":  isf.Int(int64(len(y))),
		"XUNIT":  isf.String("s"),
		"YUNIT":  isf.String("V"),
		"WFID":   isf.String("Ch1 test"),
	} {
		if _, err := h.Set(name, v); err != nil {
			t.Fatalf("failed to set %s: %v", name, err)
		}
	}
	return &isf.Waveform{Header: h, X: x, Y: y}
}

func sineWaveform(t *testing.T, n int) *isf.Waveform {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * 1e-3
		y[i] = math.Sin(2 * math.Pi * float64(i) / float64(n))
	}
	return newWaveform(t, isf.PointY, x, y)
}

// countTrace counts pixels at least ~80% covered by the default trace
// colour over the dark background.
func countTrace(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R >= 200 && c.G >= 140 && c.B <= 80 {
				n++
			}
		}
	}
	return n
}

func plotArea(opts Options) image.Rectangle {
	return image.Rect(config.PlotMargin, config.PlotMargin,
		opts.Width-config.PlotMargin, opts.Height-config.PlotMargin)
}

func TestPlot_Trace(t *testing.T) {
	opts := DefaultOptions()
	img, err := Plot(sineWaveform(t, 500), opts)
	if err != nil {
		t.Fatalf("Plot() returned error: %v", err)
	}

	if got := img.Bounds(); got.Dx() != opts.Width || got.Dy() != opts.Height {
		t.Fatalf("image size = %v, want %dx%d", got, opts.Width, opts.Height)
	}
	if got := img.RGBAAt(1, 1); got != opts.Background {
		t.Errorf("corner pixel = %v, want background %v", got, opts.Background)
	}
	if n := countTrace(img, plotArea(opts)); n == 0 {
		t.Errorf("no trace-coloured pixels inside the graticule")
	}
	if n := countTrace(img, image.Rect(0, 0, opts.Width, config.PlotMargin/2)); n != 0 {
		t.Errorf("%d trace-coloured pixels above the graticule", n)
	}
	// The graticule outline is drawn opaque
	area := plotArea(opts)
	if got := img.RGBAAt(area.Min.X, area.Max.Y-1); got != opts.Text {
		t.Errorf("outline pixel = %v, want %v", got, opts.Text)
	}
}

func TestPlot_Envelope(t *testing.T) {
	const n = 100
	x := make([]float64, n)
	y := make([]float64, 2*n)
	for i := range x {
		x[i] = float64(i)
		y[2*i] = -1
		y[2*i+1] = 1
	}
	opts := DefaultOptions()
	opts.Title = "envelope"

	img, err := Plot(newWaveform(t, isf.PointENV, x, y), opts)
	if err != nil {
		t.Fatalf("Plot() returned error: %v", err)
	}

	// The band spans the full height, away from any grid line
	area := plotArea(opts)
	p := image.Pt(area.Min.X+5, area.Min.Y+area.Dy()/4+3)
	got := img.RGBAAt(p.X, p.Y)
	if got == opts.Background {
		t.Errorf("pixel %v inside the envelope band is background", p)
	}
	if got == opts.Trace {
		t.Errorf("pixel %v inside the envelope band is opaque trace colour", p)
	}

	// Mid-point trace runs along the centre line
	if n := countTrace(img, image.Rect(area.Min.X, area.Min.Y+area.Dy()/2-2, area.Max.X, area.Min.Y+area.Dy()/2+3)); n == 0 {
		t.Errorf("no trace pixels along the centre of the envelope")
	}
}

func TestPlot_FlatAndSinglePoint(t *testing.T) {
	testCases := []struct {
		name string
		x, y []float64
	}{
		{"flat", []float64{0, 1, 2}, []float64{5, 5, 5}},
		{"single point", []float64{0}, []float64{0}},
		{"empty", nil, nil},
		{"with NaN", []float64{0, 1, 2, 3}, []float64{1, math.NaN(), 2, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Plot(newWaveform(t, isf.PointY, tc.x, tc.y), DefaultOptions()); err != nil {
				t.Errorf("Plot() returned error: %v", err)
			}
		})
	}
}

func TestPlot_Errors(t *testing.T) {
	if _, err := Plot(nil, DefaultOptions()); err == nil {
		t.Errorf("Plot(nil) expected error, got nil")
	}

	opts := DefaultOptions()
	opts.Width = 2 * config.PlotMargin
	if _, err := Plot(sineWaveform(t, 10), opts); err == nil {
		t.Errorf("Plot() with width %d expected error, got nil", opts.Width)
	}
}

func TestSavePNG(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 320, 200
	img, err := Plot(sineWaveform(t, 50), opts)
	if err != nil {
		t.Fatalf("Plot() returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "plots", "sine.png")
	if err := SavePNG(img, path); err != nil {
		t.Fatalf("SavePNG() returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open PNG: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if got := decoded.Bounds(); got.Dx() != 320 || got.Dy() != 200 {
		t.Errorf("decoded size = %v, want 320x200", got)
	}
}

func TestDataSpan(t *testing.T) {
	testCases := []struct {
		name   string
		values []float64
		want   span
	}{
		{"range", []float64{3, -1, 2}, span{-1, 3}},
		{"skips non-finite", []float64{math.NaN(), 1, math.Inf(1), 4}, span{1, 4}},
		{"constant", []float64{2, 2}, span{1, 3}},
		{"zero", []float64{0}, span{-1, 1}},
		{"empty", nil, span{-1, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dataSpan(tc.values); got != tc.want {
				t.Errorf("dataSpan(%v) = %v, want %v", tc.values, got, tc.want)
			}
		})
	}
}

func TestFormatScale(t *testing.T) {
	testCases := []struct {
		v    float64
		unit string
		want string
	}{
		{0.0002, "s", "0.0002 s/div"},
		{0.25, "V", "0.25 V/div"},
		{12345, "", "1.23e+04 /div"},
	}
	for _, tc := range testCases {
		if got := formatScale(tc.v, tc.unit); got != tc.want {
			t.Errorf("formatScale(%v, %q) = %q, want %q", tc.v, tc.unit, got, tc.want)
		}
	}
}

func TestPremultiply(t *testing.T) {
	got := premultiply(color.RGBA{R: 255, G: 100, B: 0, A: 51})
	want := color.RGBA{R: 51, G: 20, B: 0, A: 51}
	if got != want {
		t.Errorf("premultiply() = %v, want %v", got, want)
	}
}
