package isf

import "fmt"

// WarningKind classifies a non-fatal diagnostic.
type WarningKind int

const (
	// IntegrityWarning: the declared payload length disagrees with BYT_NR*NR_PT.
	IntegrityWarning WarningKind = iota + 1
	// DuplicateField: a header field was redefined with a different value;
	// the last value wins.
	DuplicateField
)

func (k WarningKind) String() string {
	switch k {
	case IntegrityWarning:
		return "integrity"
	case DuplicateField:
		return "duplicate-field"
	default:
		return "unknown"
	}
}

// Warning is a diagnostic raised while reading a file. Warnings never abort
// decoding.
type Warning struct {
	Kind  WarningKind
	Field string
	Want  int // BYT_NR*NR_PT for IntegrityWarning
	Got   int // declared payload length for IntegrityWarning
}

func (w Warning) String() string {
	switch w.Kind {
	case IntegrityWarning:
		return fmt.Sprintf("BYT_NR * NR_PT != CURVE data size (%d != %d)", w.Want, w.Got)
	case DuplicateField:
		return fmt.Sprintf("header field %s redefined, keeping the last value", w.Field)
	default:
		return fmt.Sprintf("%s warning", w.Kind)
	}
}

// Reporter receives warnings as they are raised.
type Reporter interface {
	Report(w Warning)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(w Warning)

func (f ReporterFunc) Report(w Warning) { f(w) }

// DefaultPreambleLimit is the number of leading bytes searched for the
// binary-block marker.
const DefaultPreambleLimit = 64 << 10

// Options carries the per-call diagnostics context. A nil *Options is valid.
type Options struct {
	// Reporter, if set, is called for every warning.
	Reporter Reporter

	// PreambleLimit bounds the text preamble. Zero means DefaultPreambleLimit.
	PreambleLimit int
}

func (o *Options) report(w Warning) {
	if o == nil || o.Reporter == nil {
		return
	}
	o.Reporter.Report(w)
}

func (o *Options) preambleLimit() int {
	if o == nil || o.PreambleLimit <= 0 {
		return DefaultPreambleLimit
	}
	return o.PreambleLimit
}
