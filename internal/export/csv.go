package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go-hep.org/x/hep/csvutil"

	"github.com/linuxmatters/isfconv/internal/config"
	"github.com/linuxmatters/isfconv/internal/isf"
)

// Options controls the CSV text.
type Options struct {
	Delimiter rune // field separator, ',' when zero
	Precision *int // digits after the point in %e form; nil or <0 for shortest
	Header    bool // write the ISF header as the first line
}

func (o Options) precision() int {
	if o.Precision == nil {
		return -1
	}
	return *o.Precision
}

func (o Options) comma() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// FormatFloat formats v with the given precision. A negative precision
// selects the shortest representation that parses back to v; otherwise
// %.Ne is used with N capped at config.MaxPrecision.
func FormatFloat(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'e', min(precision, config.MaxPrecision), 64)
}

// HeaderLine renders the header fields as "NAME: value; NAME: value; ...".
func HeaderLine(h *isf.Header) string {
	parts := make([]string, 0, h.Len())
	for name, v := range h.All() {
		parts = append(parts, name+": "+v.String())
	}
	return strings.Join(parts, "; ")
}

// WriteWaveform writes wf to fname as CSV rows "x,y" (Y and XY layouts) or
// "x,ymin,ymax" (ENV). A ".csv" suffix is appended when missing and parent
// directories are created. It returns the name of the written file.
func WriteWaveform(fname string, wf *isf.Waveform, opts Options) (string, error) {
	var cols [][]float64
	switch {
	case wf.IsEnvelope():
		lo, hi := wf.Envelope()
		cols = [][]float64{wf.X, lo, hi}
	default:
		n := min(len(wf.X), len(wf.Y))
		cols = [][]float64{wf.X[:n], wf.Y[:n]}
	}

	var hdr string
	if opts.Header {
		hdr = HeaderLine(wf.Header)
	}

	fname = WithCSVExt(fname)
	if err := WriteColumns(fname, hdr, opts, cols...); err != nil {
		return "", err
	}
	return fname, nil
}

// WriteColumns writes equal-length columns to fname, one row per index.
// A non-empty hdr is written verbatim as the first line.
func WriteColumns(fname, hdr string, opts Options, cols ...[]float64) error {
	n := 0
	for i, col := range cols {
		if i == 0 || len(col) < n {
			n = len(col)
		}
	}

	if dir := filepath.Dir(fname); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tbl, err := csvutil.Create(fname)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer tbl.Close()
	tbl.Writer.Comma = opts.comma()

	if hdr != "" {
		if err := tbl.WriteHeader(hdr + "\n"); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	prec := opts.precision()
	row := make([]any, len(cols))
	for i := 0; i < n; i++ {
		for j, col := range cols {
			row[j] = FormatFloat(col[i], prec)
		}
		if err := tbl.WriteRow(row...); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	if err := tbl.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}
	return nil
}

// ReadXY reads the first two numeric columns of a CSV file. Lines starting
// with '#' are comments.
func ReadXY(fname string, delim rune) (x, y []float64, err error) {
	tbl, err := csvutil.Open(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer tbl.Close()

	if delim == 0 {
		delim = ','
	}
	tbl.Reader.Comma = delim
	tbl.Reader.Comment = '#'
	tbl.Reader.TrimLeadingSpace = true

	rows, err := tbl.ReadRows(0, -1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		var xv, yv float64
		if err := rows.Scan(&xv, &yv); err != nil {
			return nil, nil, fmt.Errorf("failed to parse CSV row %d: %w", i+1, err)
		}
		x = append(x, xv)
		y = append(y, yv)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return x, y, nil
}
