package isf

// Waveform is a decoded waveform with calibrated X and Y samples.
//
// For PT_FMT Y, len(X) == len(Y) == NR_PT.
// For PT_FMT ENV, Y holds interleaved (min, max) pairs: len(Y) == NR_PT and
// len(X) == NR_PT/2.
// For PT_FMT XY, len(X) == len(Y) == NR_PT/2.
type Waveform struct {
	Header *Header
	X      []float64
	Y      []float64
}

// IsEnvelope reports whether Y holds (min, max) pairs.
func (w *Waveform) IsEnvelope() bool {
	return w.Header != nil && w.Header.PointFormat == PointENV
}

// Envelope splits an ENV waveform into its minimum and maximum traces, one
// value per X position.
func (w *Waveform) Envelope() (lo, hi []float64) {
	n := len(w.X)
	lo = make([]float64, n)
	hi = make([]float64, n)
	for i := 0; i < n && 2*i+1 < len(w.Y); i++ {
		lo[i] = w.Y[2*i]
		hi[i] = w.Y[2*i+1]
	}
	return lo, hi
}

// Trace returns one Y value per X position: Y itself, or the mid-point of
// each (min, max) pair for envelopes.
func (w *Waveform) Trace() []float64 {
	if !w.IsEnvelope() {
		return w.Y
	}
	lo, hi := w.Envelope()
	for i := range lo {
		lo[i] = 0.5 * (lo[i] + hi[i])
	}
	return lo
}

// DecodePayload decodes the payload bytes described by h into calibrated X
// and Y samples. For XY payloads the X block is the first half of payload
// and the Y block the second half.
//
// No partial result is ever returned: on error x and y are nil.
func DecodePayload(h *Header, payload []byte) (x, y []float64, err error) {
	switch h.Encoding {
	case "BIN", "BINARY":
	default:
		return nil, nil, errEncoding("ENCDG", h.Encoding)
	}

	switch h.PointFormat {
	case PointY, PointENV, PointXY:
	default:
		return nil, nil, &Error{Kind: ErrUnsupportedFormat, Field: "PT_FMT", Token: h.PointFormat}
	}

	desc, err := h.Descriptor()
	if err != nil {
		return nil, nil, err
	}
	if err := desc.validate(); err != nil {
		return nil, nil, err
	}

	if h.NrPt < 0 {
		return nil, nil, errMalformed("NR_PT", Int(int64(h.NrPt)).String(), nil)
	}

	switch h.PointFormat {
	case PointY:
		y, err = decodeElements(desc, payload, h.NrPt)
		if err != nil {
			return nil, nil, err
		}
		calibrate(y, h.YOff, h.YMult, h.YZero)
		x = linear(h.XZero, h.XIncr, h.NrPt)

	case PointENV:
		y, err = decodeElements(desc, payload, h.NrPt)
		if err != nil {
			return nil, nil, err
		}
		calibrate(y, h.YOff, h.YMult, h.YZero)
		x = linear(h.XZero, h.XIncr, h.NrPt/2)

	case PointXY:
		// X and Y blocks split the declared payload; trailing bytes
		// beyond it are ignored
		total := len(payload)
		if l := h.Curve.Length; l > 0 && l <= total {
			total = l
		}
		var (
			half = total / 2
			n    = h.NrPt / 2
		)
		x, err = decodeElements(desc, payload[:half], n)
		if err != nil {
			return nil, nil, err
		}
		y, err = decodeElements(desc, payload[half:2*half], n)
		if err != nil {
			return nil, nil, err
		}
		calibrate(x, h.PtOff, h.XIncr, h.XZero)
		calibrate(y, h.YOff, h.YMult, h.YZero)
	}

	return x, y, nil
}

// calibrate applies v = (v - off) * mult + zero in place.
func calibrate(vs []float64, off, mult, zero float64) {
	for i, v := range vs {
		vs[i] = (v-off)*mult + zero
	}
}

// linear returns zero + incr*i for i in [0, n).
func linear(zero, incr float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = zero + incr*float64(i)
	}
	return out
}
