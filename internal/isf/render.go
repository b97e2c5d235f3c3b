package isf

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

type fieldStyle int

const (
	styleInt fieldStyle = iota
	styleFloat
	styleString
)

// fieldOrder is the field order of a rendered header. The first two entries
// carry the ":WFMPRE:" prefix instruments emit.
var fieldOrder = []struct {
	name   string
	style  fieldStyle
	prefix string
}{
	{"NR_PT", styleInt, ":WFMPRE:"},
	{"BYT_NR", styleInt, ":WFMPRE:"},
	{"BIT_NR", styleInt, ""},
	{"ENCDG", styleString, ""},
	{"BN_FMT", styleString, ""},
	{"BYT_OR", styleString, ""},
	{"WFID", styleString, ""},
	{"NR_PT", styleInt, ""},
	{"PT_FMT", styleString, ""},
	{"XUNIT", styleString, ""},
	{"XINCR", styleFloat, ""},
	{"XZERO", styleFloat, ""},
	{"PT_OFF", styleFloat, ""},
	{"YUNIT", styleString, ""},
	{"YMULT", styleFloat, ""},
	{"YOFF", styleFloat, ""},
	{"YZERO", styleFloat, ""},
	{"VSCALE", styleFloat, ""},
	{"HSCALE", styleFloat, ""},
	{"VPOS", styleFloat, ""},
	{"VOFFSET", styleFloat, ""},
	{"HDELAY", styleFloat, ""},
	{"DOMAIN", styleString, ""},
	{"WFMTYPE", styleString, ""},
	{"CENTERFREQUENCY", styleFloat, ""},
	{"SPAN", styleFloat, ""},
	{"REFLEVEL", styleFloat, ""},
}

var errReservedByte = errors.New(`string values may not contain ';' or '"'`)

// RenderHeader renders h as a Latin-1 preamble in the fixed field order,
// followed by the binary-block marker for NR_PT*BYT_NR payload bytes. The
// payload itself must follow immediately.
func RenderHeader(h *Header) ([]byte, error) {
	var sb strings.Builder
	for _, f := range fieldOrder {
		v, ok := h.Get(f.name)
		if !ok {
			return nil, errMissing(f.name)
		}

		var str string
		switch f.style {
		case styleInt:
			i, ok := v.AsInt()
			if !ok {
				return nil, errMalformed(f.name, v.String(), nil)
			}
			str = strconv.FormatInt(i, 10)
		case styleFloat:
			x, ok := v.AsFloat()
			if !ok {
				return nil, errMalformed(f.name, v.String(), nil)
			}
			str = fmt.Sprintf("%e", x)
		default:
			str = v.String()
			if strings.ContainsAny(str, `;"`) {
				return nil, errMalformed(f.name, str, errReservedByte)
			}
		}

		sb.WriteString(f.prefix)
		sb.WriteString(f.name)
		sb.WriteByte(' ')
		sb.WriteString(str)
		sb.WriteByte(';')
	}

	n := h.NrPt * h.BytNr
	size := strconv.Itoa(n)
	if len(size) > 9 {
		return nil, errMalformed("CURVE", size, errBadBlock)
	}
	fmt.Fprintf(&sb, ":CURVE #%d%s", len(size), size)

	out, err := charmap.ISO8859_1.NewEncoder().String(sb.String())
	if err != nil {
		return nil, errMalformed("", "", fmt.Errorf("could not encode Latin-1 text: %w", err))
	}
	return []byte(out), nil
}

// WriteFile writes an ISF file made of the rendered preamble followed by
// the X and Y payload blocks.
func WriteFile(fname string, preamble, rawX, rawY []byte) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("isf: could not create output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range [][]byte{preamble, rawX, rawY} {
		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("isf: could not write %q: %w", fname, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("isf: could not flush %q: %w", fname, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("isf: could not close %q: %w", fname, err)
	}
	return nil
}
