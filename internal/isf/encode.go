package isf

import (
	"reflect"
)

// Element is the set of Go types that map onto a payload element.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// DescriptorOf returns the descriptor of element type T with byte order bo.
func DescriptorOf[T Element](bo ByteOrder) Descriptor {
	t := reflect.TypeFor[T]()
	d := Descriptor{Order: bo, Width: int(t.Size())}
	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		d.Kind = Signed
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		d.Kind = Unsigned
	default:
		d.Kind = Float
	}
	return d
}

// Array is a one-dimensional run of encoded payload elements.
type Array struct {
	Desc Descriptor
	Len  int
	Raw  []byte
}

// NewArray encodes values with the element type of T and byte order bo.
func NewArray[T Element](bo ByteOrder, values []T) Array {
	var (
		d   = DescriptorOf[T](bo)
		raw = make([]byte, len(values)*d.Width)
	)
	for i, v := range values {
		p := raw[i*d.Width : (i+1)*d.Width]
		switch d.Kind {
		case Signed:
			d.putBits(p, uint64(int64(v)))
		case Unsigned:
			d.putBits(p, uint64(v))
		default:
			d.put(p, float64(v))
		}
	}
	return Array{Desc: d, Len: len(values), Raw: raw}
}

// EncodeArray converts values to the element type described by d.
// Integer kinds truncate toward zero.
func EncodeArray(d Descriptor, values []float64) (Array, error) {
	if err := d.validate(); err != nil {
		return Array{}, err
	}
	raw := make([]byte, len(values)*d.Width)
	for i, v := range values {
		d.put(raw[i*d.Width:(i+1)*d.Width], v)
	}
	return Array{Desc: d, Len: len(values), Raw: raw}, nil
}

// Values decodes the elements of a back to float64.
func (a Array) Values() ([]float64, error) {
	if err := a.Desc.validate(); err != nil {
		return nil, err
	}
	return decodeElements(a.Desc, a.Raw, a.Len)
}

// XYCurveID is the waveform identifier written by EncodeXY.
const XYCurveID = "isfconv XY-curve"

// EncodeXY builds the header and raw blocks of an XY file holding x and y.
//
// Calibration coefficients are identity, so decoding the result returns the
// values of x and y unchanged. x and y must have the same length and the
// same element descriptor.
func EncodeXY(x, y Array) (h *Header, rawX, rawY []byte, err error) {
	if x.Len != y.Len {
		return nil, nil, nil, &Error{Kind: ErrShapeMismatch, Want: x.Len, Got: y.Len}
	}
	if x.Desc != y.Desc {
		return nil, nil, nil, &Error{
			Kind:  ErrShapeMismatch,
			Token: x.Desc.String() + " != " + y.Desc.String(),
		}
	}
	if err := y.Desc.validate(); err != nil {
		return nil, nil, nil, err
	}
	if len(x.Raw) != x.Len*x.Desc.Width || len(y.Raw) != y.Len*y.Desc.Width {
		return nil, nil, nil, &Error{Kind: ErrShapeMismatch, Want: len(x.Raw), Got: len(y.Raw)}
	}

	bytOr, bnFmt, err := Unresolve(y.Desc)
	if err != nil {
		return nil, nil, nil, err
	}

	h = NewHeader()
	for _, f := range []struct {
		name string
		v    Value
	}{
		{"ENCDG", String("BINARY")},
		{"WFID", String(XYCurveID)},
		{"NR_PT", Int(int64(2 * y.Len))},
		{"PT_FMT", String(PointXY)},
		{"XUNIT", String("a.u.")},
		{"YUNIT", String("a.u.")},
		{"VSCALE", Float64(1)},
		{"HSCALE", Float64(1)},
		{"VPOS", Float64(0)},
		{"VOFFSET", Float64(0)},
		{"HDELAY", Float64(0)},
		{"DOMAIN", String("TIME")},
		{"WFMTYPE", String("ANALOG")},
		{"CENTERFREQUENCY", Float64(0)},
		{"SPAN", Float64(0)},
		{"REFLEVEL", Float64(0)},
		{"BYT_OR", String(bytOr)},
		{"BN_FMT", String(bnFmt)},
		{"BYT_NR", Int(int64(y.Desc.Width))},
		{"BIT_NR", Int(int64(8 * y.Desc.Width))},
		{"XZERO", Float64(0)},
		{"XINCR", Float64(1)},
		{"PT_OFF", Float64(0)},
		{"YZERO", Float64(0)},
		{"YMULT", Float64(1)},
		{"YOFF", Float64(0)},
	} {
		if _, err := h.Set(f.name, f.v); err != nil {
			return nil, nil, nil, err
		}
	}
	h.Curve = Curve{Length: len(x.Raw) + len(y.Raw)}

	return h, x.Raw, y.Raw, nil
}
