package isf

import (
	"iter"

	"github.com/elliotchance/orderedmap/v3"
)

// Point formats (PT_FMT).
const (
	PointY   = "Y"
	PointENV = "ENV"
	PointXY  = "XY"
)

// requiredFields lists, in check order, the fields needed to decode a payload.
var requiredFields = []string{
	"NR_PT", "BYT_NR", "BIT_NR", "ENCDG", "BN_FMT", "BYT_OR", "PT_FMT",
	"XZERO", "XINCR", "YZERO", "YMULT", "YOFF", "PT_OFF",
}

// Curve locates the binary payload within a file.
type Curve struct {
	Offset int64 // first payload byte
	Length int   // declared payload length, in bytes
}

// Header is the parsed text preamble of an ISF file.
//
// Fields holds every field in file order. The exported typed members mirror
// the fields required for decoding and are kept in sync by Set.
type Header struct {
	Fields *orderedmap.OrderedMap[string, Value]

	NrPt        int    // NR_PT
	BytNr       int    // BYT_NR
	BitNr       int    // BIT_NR
	Encoding    string // ENCDG
	BinFormat   string // BN_FMT
	ByteOrder   string // BYT_OR
	PointFormat string // PT_FMT

	XZero float64 // XZERO
	XIncr float64 // XINCR
	PtOff float64 // PT_OFF
	YZero float64 // YZERO
	YMult float64 // YMULT
	YOff  float64 // YOFF

	Curve    Curve
	Warnings []Warning
}

// NewHeader returns an empty header.
func NewHeader() *Header {
	return &Header{Fields: orderedmap.NewOrderedMap[string, Value]()}
}

// Get returns the value of the named field.
func (h *Header) Get(name string) (Value, bool) {
	return h.Fields.Get(name)
}

// Has reports whether the named field is present.
func (h *Header) Has(name string) bool {
	return h.Fields.Has(name)
}

// All iterates over the fields in file order.
func (h *Header) All() iter.Seq2[string, Value] {
	return h.Fields.AllFromFront()
}

// Len returns the number of distinct fields.
func (h *Header) Len() int {
	return h.Fields.Len()
}

// Str returns the named field as a string, or "" when absent.
func (h *Header) Str(name string) string {
	v, ok := h.Fields.Get(name)
	if !ok {
		return ""
	}
	return v.String()
}

// XUnit returns XUNIT.
func (h *Header) XUnit() string { return h.Str("XUNIT") }

// YUnit returns YUNIT.
func (h *Header) YUnit() string { return h.Str("YUNIT") }

// WFID returns the waveform identifier.
func (h *Header) WFID() string { return h.Str("WFID") }

// Set stores a field, updating the typed member for required fields.
// It reports whether the field already existed.
func (h *Header) Set(name string, v Value) (existed bool, err error) {
	if err := h.bind(name, v); err != nil {
		return false, err
	}
	existed = h.Fields.Has(name)
	h.Fields.Set(name, v)
	return existed, nil
}

func (h *Header) bind(name string, v Value) error {
	switch name {
	case "NR_PT":
		return bindInt(&h.NrPt, name, v)
	case "BYT_NR":
		return bindInt(&h.BytNr, name, v)
	case "BIT_NR":
		return bindInt(&h.BitNr, name, v)
	case "ENCDG":
		h.Encoding = v.String()
	case "BN_FMT":
		h.BinFormat = v.String()
	case "BYT_OR":
		h.ByteOrder = v.String()
	case "PT_FMT":
		h.PointFormat = v.String()
	case "XZERO":
		return bindFloat(&h.XZero, name, v)
	case "XINCR":
		return bindFloat(&h.XIncr, name, v)
	case "PT_OFF":
		return bindFloat(&h.PtOff, name, v)
	case "YZERO":
		return bindFloat(&h.YZero, name, v)
	case "YMULT":
		return bindFloat(&h.YMult, name, v)
	case "YOFF":
		return bindFloat(&h.YOff, name, v)
	}
	return nil
}

func bindInt(dst *int, name string, v Value) error {
	i, ok := v.AsInt()
	if !ok {
		return errMalformed(name, v.String(), nil)
	}
	*dst = int(i)
	return nil
}

func bindFloat(dst *float64, name string, v Value) error {
	f, ok := v.AsFloat()
	if !ok {
		return errMalformed(name, v.String(), nil)
	}
	*dst = f
	return nil
}

// checkRequired fails with ErrMissingField naming the first absent field.
func (h *Header) checkRequired() error {
	for _, name := range requiredFields {
		if !h.Fields.Has(name) {
			return errMissing(name)
		}
	}
	return nil
}

// Descriptor resolves the element descriptor of the payload.
func (h *Header) Descriptor() (Descriptor, error) {
	return Resolve(h.ByteOrder, h.BinFormat, h.BytNr)
}
