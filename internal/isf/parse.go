package isf

import (
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"
)

// ParseHeader scans the text preamble at the start of raw and returns the
// header with the payload location in Header.Curve.
//
// Scanning stops at the binary-block marker; raw may extend into (or past)
// the payload. A disagreement between BYT_NR*NR_PT and the declared payload
// length is reported as an IntegrityWarning and does not fail the parse.
func ParseHeader(raw []byte, opts *Options) (*Header, error) {
	var (
		h     = NewHeader()
		sc    = newScanner(raw)
		found = false
	)

	for {
		tok, ok := sc.next()
		if !ok {
			break
		}
		if tok.kind == tokBlock {
			h.Curve = Curve{Offset: int64(tok.start), Length: tok.length}
			found = true
			break
		}

		str, err := latin1(tok.value)
		if err != nil {
			return nil, errMalformed(tok.name, "", err)
		}
		v := ParseValue(str)
		if prev, ok := h.Get(tok.name); ok && prev != v {
			h.warn(opts, Warning{Kind: DuplicateField, Field: tok.name})
		}
		if _, err := h.Set(tok.name, v); err != nil {
			return nil, err
		}
	}
	if sc.err != nil {
		return nil, sc.err
	}
	if !found {
		return nil, errMalformed("", "", errNoBlock)
	}

	if err := h.checkRequired(); err != nil {
		return nil, err
	}

	want := math.MaxInt
	if h.BytNr <= 0 || h.NrPt <= math.MaxInt/h.BytNr {
		want = h.BytNr * h.NrPt
	}
	if want != h.Curve.Length {
		h.warn(opts, Warning{
			Kind:  IntegrityWarning,
			Field: "CURVE",
			Want:  want,
			Got:   h.Curve.Length,
		})
	}

	return h, nil
}

func (h *Header) warn(opts *Options, w Warning) {
	h.Warnings = append(h.Warnings, w)
	opts.report(w)
}

func latin1(p []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(p)
	if err != nil {
		return "", fmt.Errorf("could not decode Latin-1 text: %w", err)
	}
	return string(out), nil
}
