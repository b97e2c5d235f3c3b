package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// File extensions
const (
	ISFExt = ".isf"
	CSVExt = ".csv"
)

// CSV output settings
const (
	Delimiter    = ","
	Precision    = -1 // shortest representation that round-trips
	MaxPrecision = 18 // digits after the decimal point in %e output
)

// Batch settings
const (
	Workers = 4 // files converted concurrently
)

// Plot settings
const (
	PlotWidth  = 1280
	PlotHeight = 720
	PlotMargin = 64 // Space around the graticule for axis labels

	GridDivisionsX = 10 // Horizontal graticule divisions, as on the instrument
	GridDivisionsY = 8  // Vertical graticule divisions

	FontSize      = 14.0
	EnvelopeAlpha = 96 // Opacity of the ENV min/max band
)

// Appearance - plot colours
const (
	// Trace colour (brand yellow #F8B31D)
	TraceColorR = 248
	TraceColorG = 179
	TraceColorB = 29

	// Labels and graticule outline
	TextColorR = 220
	TextColorG = 220
	TextColorB = 220

	// Background
	BackgroundColorR = 16
	BackgroundColorG = 16
	BackgroundColorB = 16
)

// Audio settings
const (
	SampleRate    = 44100
	MinSampleRate = 8000
	MaxSampleRate = 192000
	BitDepth      = 16
	FFTSize       = 2048 // Minimum spectrum length; shorter records are zero-padded
)

// RuntimeConfig holds settings loaded from a YAML file. Nil or empty fields
// fall back to the defaults above.
type RuntimeConfig struct {
	Delimiter     *string `yaml:"delimiter"`
	Precision     *int    `yaml:"precision"`
	IncludeHeader *bool   `yaml:"include_header"`
	OutputDir     string  `yaml:"output_dir"`
	Workers       *int    `yaml:"workers"`

	PlotWidth  *int   `yaml:"plot_width"`
	PlotHeight *int   `yaml:"plot_height"`
	TraceColor string `yaml:"trace_color"` // hex, e.g. "#F8B31D"
	TextColor  string `yaml:"text_color"`

	SampleRate *int `yaml:"sample_rate"`
	BitDepth   *int `yaml:"bit_depth"`

	// Colour components, set from TraceColor/TextColor by Load or directly
	TraceColorR *uint8 `yaml:"-"`
	TraceColorG *uint8 `yaml:"-"`
	TraceColorB *uint8 `yaml:"-"`
	TextColorR  *uint8 `yaml:"-"`
	TextColorG  *uint8 `yaml:"-"`
	TextColorB  *uint8 `yaml:"-"`
}

// Load reads a YAML runtime configuration. Unknown keys are an error.
func Load(path string) (*RuntimeConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := &RuntimeConfig{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	// An empty file is a valid, empty configuration
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.resolve(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// resolve validates the loaded values and expands hex colours
func (c *RuntimeConfig) resolve() error {
	if c.Delimiter != nil && utf8.RuneCountInString(*c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", *c.Delimiter)
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}
	if c.BitDepth != nil {
		switch *c.BitDepth {
		case 16, 24, 32:
		default:
			return fmt.Errorf("bit_depth must be 16, 24 or 32, got %d", *c.BitDepth)
		}
	}

	if c.TraceColor != "" {
		r, g, b, err := ParseHexColor(c.TraceColor)
		if err != nil {
			return fmt.Errorf("trace_color: %w", err)
		}
		c.TraceColorR, c.TraceColorG, c.TraceColorB = &r, &g, &b
	}
	if c.TextColor != "" {
		r, g, b, err := ParseHexColor(c.TextColor)
		if err != nil {
			return fmt.Errorf("text_color: %w", err)
		}
		c.TextColorR, c.TextColorG, c.TextColorB = &r, &g, &b
	}
	return nil
}

// ParseHexColor parses "RRGGBB" or "#RRGGBB".
func ParseHexColor(s string) (r, g, b uint8, err error) {
	hexStr := strings.TrimPrefix(s, "#")
	if len(hexStr) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: want 6 hex digits", s)
	}
	rgb, err := hex.DecodeString(hexStr)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return rgb[0], rgb[1], rgb[2], nil
}

// GetDelimiter returns the CSV field delimiter
func (c *RuntimeConfig) GetDelimiter() rune {
	d := Delimiter
	if c != nil && c.Delimiter != nil && *c.Delimiter != "" {
		d = *c.Delimiter
	}
	r, _ := utf8.DecodeRuneInString(d)
	return r
}

// GetPrecision returns the CSV float precision, capped at MaxPrecision.
// Negative values select the shortest round-trip representation.
func (c *RuntimeConfig) GetPrecision() int {
	if c == nil || c.Precision == nil {
		return Precision
	}
	return min(*c.Precision, MaxPrecision)
}

// GetIncludeHeader reports whether the header line is written to CSV files
func (c *RuntimeConfig) GetIncludeHeader() bool {
	return c != nil && c.IncludeHeader != nil && *c.IncludeHeader
}

// GetWorkers returns the batch concurrency
func (c *RuntimeConfig) GetWorkers() int {
	if c == nil || c.Workers == nil || *c.Workers < 1 {
		return Workers
	}
	return *c.Workers
}

// GetPlotSize returns the plot dimensions in pixels
func (c *RuntimeConfig) GetPlotSize() (width, height int) {
	width, height = PlotWidth, PlotHeight
	if c == nil {
		return width, height
	}
	if c.PlotWidth != nil && *c.PlotWidth > 2*PlotMargin {
		width = *c.PlotWidth
	}
	if c.PlotHeight != nil && *c.PlotHeight > 2*PlotMargin {
		height = *c.PlotHeight
	}
	return width, height
}

// GetTraceColor returns the trace colour. All three components must be set
// for the override to apply.
func (c *RuntimeConfig) GetTraceColor() (r, g, b uint8) {
	if c != nil && c.TraceColorR != nil && c.TraceColorG != nil && c.TraceColorB != nil {
		return *c.TraceColorR, *c.TraceColorG, *c.TraceColorB
	}
	return TraceColorR, TraceColorG, TraceColorB
}

// GetTextColor returns the label colour. All three components must be set
// for the override to apply.
func (c *RuntimeConfig) GetTextColor() (r, g, b uint8) {
	if c != nil && c.TextColorR != nil && c.TextColorG != nil && c.TextColorB != nil {
		return *c.TextColorR, *c.TextColorG, *c.TextColorB
	}
	return TextColorR, TextColorG, TextColorB
}

// GetSampleRate returns the WAV sample rate override, or 0 when the rate
// should be derived from the waveform.
func (c *RuntimeConfig) GetSampleRate() int {
	if c == nil || c.SampleRate == nil || *c.SampleRate <= 0 {
		return 0
	}
	return *c.SampleRate
}

// GetBitDepth returns the WAV bit depth
func (c *RuntimeConfig) GetBitDepth() int {
	if c == nil || c.BitDepth == nil {
		return BitDepth
	}
	return *c.BitDepth
}
