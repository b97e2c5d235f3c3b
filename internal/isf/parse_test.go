package isf

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseHeader(t *testing.T) {
	pre := yPreamble(PointY, 4, 2, "RI", "LSB")
	raw := makeISF(pre, 8, le16(1, 2, 3, 4))

	h, err := ParseHeader(raw, nil)
	if err != nil {
		t.Fatalf("could not parse header: %+v", err)
	}

	if got, want := h.NrPt, 4; got != want {
		t.Fatalf("invalid NR_PT: got=%d, want=%d", got, want)
	}
	if got, want := h.BytNr, 2; got != want {
		t.Fatalf("invalid BYT_NR: got=%d, want=%d", got, want)
	}
	if got, want := h.BitNr, 16; got != want {
		t.Fatalf("invalid BIT_NR: got=%d, want=%d", got, want)
	}
	if got, want := h.Encoding, "BIN"; got != want {
		t.Fatalf("invalid ENCDG: got=%q, want=%q", got, want)
	}
	if got, want := h.WFID(), "Ch1, DC coupling, 2.0E-2 V/div"; got != want {
		t.Fatalf("invalid WFID: got=%q, want=%q", got, want)
	}
	if got, want := h.XUnit(), "s"; got != want {
		t.Fatalf("invalid XUNIT: got=%q, want=%q", got, want)
	}
	if got, want := h.YUnit(), "V"; got != want {
		t.Fatalf("invalid YUNIT: got=%q, want=%q", got, want)
	}

	wantOffset := int64(len(pre) + len(":CURVE #18"))
	if h.Curve.Offset != wantOffset || h.Curve.Length != 8 {
		t.Fatalf("invalid curve: got=%+v, want={Offset:%d Length:8}", h.Curve, wantOffset)
	}
	if len(h.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", h.Warnings)
	}

	var names []string
	for name := range h.All() {
		names = append(names, name)
	}
	want := []string{
		"BYT_NR", "BIT_NR", "ENCDG", "BN_FMT", "BYT_OR", "WFID", "NR_PT", "PT_FMT",
		"XUNIT", "XINCR", "XZERO", "PT_OFF", "YUNIT", "YMULT", "YOFF", "YZERO",
	}
	if got := strings.Join(names, ","); got != strings.Join(want, ",") {
		t.Fatalf("invalid field order:\ngot= %s\nwant=%s", got, strings.Join(want, ","))
	}
	if h.Len() != len(want) {
		t.Fatalf("invalid field count: got=%d, want=%d", h.Len(), len(want))
	}
}

func TestParseHeaderValues(t *testing.T) {
	pre := yPreamble(PointY, 2, 1, "RI", "MSB") + "XINCR 4.0E-6;HDELAY -2.5e-3;DOMAIN TIME;VSCALE 5;"
	h, err := ParseHeader(makeISF(pre, 2, []byte{0, 0}), nil)
	if err != nil {
		t.Fatalf("could not parse header: %+v", err)
	}

	for _, tc := range []struct {
		name string
		want Value
	}{
		{"NR_PT", Int(2)},
		{"VSCALE", Int(5)},
		{"XINCR", Float64(4e-6)},
		{"HDELAY", Float64(-2.5e-3)},
		{"DOMAIN", String("TIME")},
		{"XUNIT", String("s")},
	} {
		got, ok := h.Get(tc.name)
		if !ok {
			t.Fatalf("missing field %s", tc.name)
		}
		if got != tc.want {
			t.Fatalf("invalid %s: got=%v (kind=%d), want=%v (kind=%d)", tc.name, got, got.Kind(), tc.want, tc.want.Kind())
		}
	}
	if h.XIncr != 4e-6 {
		t.Fatalf("invalid typed XINCR: got=%v", h.XIncr)
	}
}

func TestParseValue(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Value
	}{
		{"42", Int(42)},
		{" -7 ", Int(-7)},
		{"+3", Int(3)},
		{"1.5", Float64(1.5)},
		{"4.0E-6", Float64(4e-6)},
		{"1e3", Float64(1000)},
		{"a.u.", String("a.u.")},
		{" Ch1 ", String("Ch1")},
		{"0x10", String("0x10")},
		{"", String("")},
	} {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseValue(tc.in); got != tc.want {
				t.Fatalf("invalid value: got=%#v, want=%#v", got, tc.want)
			}
		})
	}
}

func TestValueConversions(t *testing.T) {
	if i, ok := Float64(3).AsInt(); !ok || i != 3 {
		t.Fatalf("integral float: got=(%d, %v)", i, ok)
	}
	if _, ok := Float64(3.5).AsInt(); ok {
		t.Fatalf("non-integral float converted to int")
	}
	if _, ok := String("3").AsFloat(); ok {
		t.Fatalf("string converted to float")
	}
	if f, ok := Int(-2).AsFloat(); !ok || f != -2 {
		t.Fatalf("int to float: got=(%v, %v)", f, ok)
	}
	if got, want := Float64(1e-3).String(), "0.001"; got != want {
		t.Fatalf("invalid float string: got=%q, want=%q", got, want)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	base := yPreamble(PointY, 4, 2, "RI", "LSB")

	for _, tc := range []struct {
		name  string
		raw   []byte
		kind  error
		field string
	}{
		{
			name:  "missing-ymult",
			raw:   makeISF(strings.Replace(base, "YMULT 1;", "", 1), 8, le16(1, 2, 3, 4)),
			kind:  ErrMissingField,
			field: "YMULT",
		},
		{
			name:  "missing-nr_pt",
			raw:   makeISF(strings.Replace(base, "NR_PT 4;", "", 1), 8, le16(1, 2, 3, 4)),
			kind:  ErrMissingField,
			field: "NR_PT",
		},
		{
			name: "no-marker",
			raw:  []byte(base),
			kind: ErrMalformedHeader,
		},
		{
			name:  "indefinite-block",
			raw:   []byte(base + ":CURVE #0" + string(le16(1, 2, 3, 4))),
			kind:  ErrMalformedHeader,
			field: "CURVE",
		},
		{
			name:  "bad-length-digits",
			raw:   []byte(base + ":CURVE #2x8"),
			kind:  ErrMalformedHeader,
			field: "CURVE",
		},
		{
			name:  "short-length",
			raw:   []byte(base + ":CURVE #98"),
			kind:  ErrMalformedHeader,
			field: "CURVE",
		},
		{
			name:  "no-hash",
			raw:   []byte(base + ":CURVE 8"),
			kind:  ErrMalformedHeader,
			field: "CURVE",
		},
		{
			name:  "non-numeric-nr_pt",
			raw:   makeISF(strings.Replace(base, "NR_PT 4;", "NR_PT four;", 1), 8, le16(1, 2, 3, 4)),
			kind:  ErrMalformedHeader,
			field: "NR_PT",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h, err := ParseHeader(tc.raw, nil)
			if err == nil {
				t.Fatalf("expected an error, got header %+v", h)
			}
			if !errors.Is(err, tc.kind) {
				t.Fatalf("invalid error kind: got=%v, want=%v", err, tc.kind)
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("error is not an *Error: %T", err)
			}
			if e.Field != tc.field {
				t.Fatalf("invalid error field: got=%q, want=%q", e.Field, tc.field)
			}
		})
	}
}

func TestParseHeaderSkipsPrefixes(t *testing.T) {
	// command prefixes, empty values and stray delimiters are not fields.
	pre := ":WFMPRE:;:;" + yPreamble(PointY, 1, 1, "RP", "MSB") + ";XUNIT \"\";LABEL:X 1;"
	h, err := ParseHeader(makeISF(pre, 1, []byte{7}), nil)
	if err != nil {
		t.Fatalf("could not parse header: %+v", err)
	}
	for _, name := range []string{"WFMPRE", "LABEL"} {
		if h.Has(name) {
			t.Fatalf("prefix %s parsed as a field", name)
		}
	}
	if got, want := h.XUnit(), "s"; got != want {
		t.Fatalf("empty value overwrote XUNIT: got=%q, want=%q", got, want)
	}
	if !h.Has("X") {
		t.Fatalf("field after prefix not parsed")
	}
}

func TestParseHeaderStopsAtBlock(t *testing.T) {
	pre := yPreamble(PointY, 4, 1, "RI", "LSB")
	// the payload looks like a field redefining YMULT.
	raw := makeISF(pre, 4, []byte(";YMU"))
	raw = append(raw, []byte("ULT 9;NR_PT 2;")...)

	h, err := ParseHeader(raw, nil)
	if err != nil {
		t.Fatalf("could not parse header: %+v", err)
	}
	if h.YMult != 1 || h.NrPt != 4 {
		t.Fatalf("payload bytes parsed as fields: YMULT=%v, NR_PT=%d", h.YMult, h.NrPt)
	}
}

func TestParseHeaderQuotedBlock(t *testing.T) {
	pre := yPreamble(PointY, 2, 1, "RI", "LSB")
	raw := append([]byte(pre+":CURV \"#12"), 1, 2)

	h, err := ParseHeader(raw, nil)
	if err != nil {
		t.Fatalf("could not parse header: %+v", err)
	}
	if got, want := h.Curve.Offset, int64(len(raw)-2); got != want {
		t.Fatalf("invalid payload offset: got=%d, want=%d", got, want)
	}
}

func TestParseHeaderLatin1(t *testing.T) {
	pre := yPreamble(PointY, 1, 1, "RI", "LSB")
	pre = strings.Replace(pre, "XUNIT \"s\"", "XUNIT \"\xb5s\"", 1)
	h, err := ParseHeader(makeISF(pre, 1, []byte{1}), nil)
	if err != nil {
		t.Fatalf("could not parse header: %+v", err)
	}
	if got, want := h.XUnit(), "µs"; got != want {
		t.Fatalf("invalid XUNIT: got=%q, want=%q", got, want)
	}
}

func TestParseHeaderIntegrityWarning(t *testing.T) {
	var reported []Warning
	opts := &Options{Reporter: ReporterFunc(func(w Warning) {
		reported = append(reported, w)
	})}

	pre := yPreamble(PointY, 4, 2, "RI", "LSB")
	h, err := ParseHeader(makeISF(pre, 10, make([]byte, 10)), opts)
	if err != nil {
		t.Fatalf("integrity mismatch must not fail the parse: %+v", err)
	}

	want := Warning{Kind: IntegrityWarning, Field: "CURVE", Want: 8, Got: 10}
	if len(h.Warnings) != 1 || h.Warnings[0] != want {
		t.Fatalf("invalid warnings: got=%v, want=[%v]", h.Warnings, want)
	}
	if len(reported) != 1 || reported[0] != want {
		t.Fatalf("invalid reported warnings: got=%v, want=[%v]", reported, want)
	}
	if got, want := want.String(), "BYT_NR * NR_PT != CURVE data size (8 != 10)"; got != want {
		t.Fatalf("invalid warning message: got=%q, want=%q", got, want)
	}
}

func TestParseHeaderDuplicateField(t *testing.T) {
	for _, tc := range []struct {
		name  string
		extra string
		nrPt  int
		warn  bool
	}{
		{"same-value", "NR_PT 4;", 4, false},
		{"redefined", "NR_PT 2;", 2, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pre := yPreamble(PointY, 4, 1, "RI", "LSB") + tc.extra
			h, err := ParseHeader(makeISF(pre, tc.nrPt, make([]byte, tc.nrPt)), nil)
			if err != nil {
				t.Fatalf("could not parse header: %+v", err)
			}
			if h.NrPt != tc.nrPt {
				t.Fatalf("last value must win: got=%d, want=%d", h.NrPt, tc.nrPt)
			}
			var dups int
			for _, w := range h.Warnings {
				if w.Kind == DuplicateField && w.Field == "NR_PT" {
					dups++
				}
			}
			if got := dups == 1; got != tc.warn {
				t.Fatalf("invalid duplicate warnings: %v", h.Warnings)
			}
		})
	}
}

func TestParseHeaderHugeNrPt(t *testing.T) {
	raw := makeISF(yPreamble(PointY, 1<<61, 8, "FP", "LSB"), 16, make([]byte, 16))
	h, err := ParseHeader(raw, nil)
	if err != nil {
		t.Fatalf("could not parse header: %+v", err)
	}
	if len(h.Warnings) != 1 {
		t.Fatalf("invalid number of warnings: got=%d, want=1", len(h.Warnings))
	}
	if w := h.Warnings[0]; w.Kind != IntegrityWarning || w.Want != math.MaxInt || w.Got != 16 {
		t.Fatalf("invalid warning: %+v", w)
	}
}
