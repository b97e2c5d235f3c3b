package isf

import (
	"fmt"
	"math"
	"strconv"
	"testing"
)

// makeISF builds an ISF file from a preamble and a payload, appending the
// ":CURVE #<n><len>" marker for the given declared length.
func makeISF(preamble string, declared int, payload []byte) []byte {
	size := strconv.Itoa(declared)
	raw := []byte(fmt.Sprintf("%s:CURVE #%d%s", preamble, len(size), size))
	return append(raw, payload...)
}

// yPreamble returns a minimal preamble for the given layout and descriptor.
func yPreamble(ptFmt string, nrPt, bytNr int, bnFmt, bytOr string) string {
	return fmt.Sprintf(
		":WFMPRE:BYT_NR %d;BIT_NR %d;ENCDG BIN;BN_FMT %s;BYT_OR %s;"+
			"WFID \"Ch1, DC coupling, 2.0E-2 V/div\";NR_PT %d;PT_FMT %s;"+
			"XUNIT \"s\";XINCR 1;XZERO 0;PT_OFF 0;YUNIT \"V\";YMULT 1;YOFF 0;YZERO 0;",
		bytNr, 8*bytNr, bnFmt, bytOr, nrPt, ptFmt,
	)
}

func le16(vs ...int16) []byte {
	out := make([]byte, 0, 2*len(vs))
	for _, v := range vs {
		out = append(out, byte(uint16(v)), byte(uint16(v)>>8))
	}
	return out
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func checkSlice(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("invalid %s length: got=%d, want=%d", name, len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Fatalf("invalid %s[%d]: got=%v, want=%v\ngot= %v\nwant=%v", name, i, got[i], want[i], got, want)
		}
	}
}
