package isf

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ByteOrder is the byte order of binary payload elements.
type ByteOrder int

const (
	BigEndian    ByteOrder = iota + 1 // BYT_OR MSB
	LittleEndian                      // BYT_OR LSB
)

// Kind is the numeric kind of binary payload elements.
type Kind int

const (
	Signed   Kind = iota + 1 // BN_FMT RI
	Unsigned                 // BN_FMT RP
	Float                    // BN_FMT FP
)

// Descriptor describes the binary encoding of one payload element.
type Descriptor struct {
	Order ByteOrder
	Kind  Kind
	Width int // bytes per element
}

var (
	byteOrders = map[string]ByteOrder{
		"MSB": BigEndian,
		"LSB": LittleEndian,
	}
	kinds = map[string]Kind{
		"RI": Signed,
		"RP": Unsigned,
		"FP": Float,
	}
)

// Resolve maps the BYT_OR and BN_FMT tokens plus BYT_NR to a Descriptor.
// The width is passed through unchecked.
func Resolve(bytOr, bnFmt string, bytNr int) (Descriptor, error) {
	order, ok := byteOrders[bytOr]
	if !ok {
		return Descriptor{}, errEncoding("BYT_OR", bytOr)
	}
	kind, ok := kinds[bnFmt]
	if !ok {
		return Descriptor{}, errEncoding("BN_FMT", bnFmt)
	}
	return Descriptor{Order: order, Kind: kind, Width: bytNr}, nil
}

// Unresolve returns the BYT_OR and BN_FMT tokens of d.
func Unresolve(d Descriptor) (bytOr, bnFmt string, err error) {
	switch d.Order {
	case BigEndian:
		bytOr = "MSB"
	case LittleEndian:
		bytOr = "LSB"
	default:
		return "", "", errEncoding("BYT_OR", d.String())
	}
	switch d.Kind {
	case Signed:
		bnFmt = "RI"
	case Unsigned:
		bnFmt = "RP"
	case Float:
		bnFmt = "FP"
	default:
		return "", "", errEncoding("BN_FMT", d.String())
	}
	return bytOr, bnFmt, nil
}

// String returns the numpy-style type string of d, e.g. "<i2" or ">f4".
func (d Descriptor) String() string {
	var sb strings.Builder
	switch d.Order {
	case BigEndian:
		sb.WriteByte('>')
	case LittleEndian:
		sb.WriteByte('<')
	default:
		sb.WriteByte('?')
	}
	switch d.Kind {
	case Signed:
		sb.WriteByte('i')
	case Unsigned:
		sb.WriteByte('u')
	case Float:
		sb.WriteByte('f')
	default:
		sb.WriteByte('?')
	}
	sb.WriteString(strconv.Itoa(d.Width))
	return sb.String()
}

// ParseDescriptor parses a numpy-style type string such as "<i2", ">f8" or
// "u1". A missing byte-order character means little-endian.
func ParseDescriptor(s string) (Descriptor, error) {
	var d Descriptor
	str := strings.TrimSpace(s)
	d.Order = LittleEndian
	if str != "" {
		switch str[0] {
		case '<', '=':
			str = str[1:]
		case '>':
			d.Order = BigEndian
			str = str[1:]
		}
	}
	if len(str) < 2 {
		return Descriptor{}, fmt.Errorf("isf: invalid element type %q", s)
	}
	switch str[0] {
	case 'i':
		d.Kind = Signed
	case 'u':
		d.Kind = Unsigned
	case 'f':
		d.Kind = Float
	default:
		return Descriptor{}, fmt.Errorf("isf: invalid element type %q", s)
	}
	w, err := strconv.Atoi(str[1:])
	if err != nil {
		return Descriptor{}, fmt.Errorf("isf: invalid element type %q: %w", s, err)
	}
	d.Width = w
	if err := d.validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

func (d Descriptor) byteOrder() binary.ByteOrder {
	if d.Order == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// validate reports whether elements of d can be decoded: integer widths
// 1, 2, 4 and 8, float widths 4 and 8.
func (d Descriptor) validate() error {
	if d.Order != BigEndian && d.Order != LittleEndian {
		return errEncoding("BYT_OR", d.String())
	}
	switch d.Kind {
	case Signed, Unsigned:
		switch d.Width {
		case 1, 2, 4, 8:
			return nil
		}
	case Float:
		switch d.Width {
		case 4, 8:
			return nil
		}
	}
	return errEncoding("BYT_NR", d.String())
}

func (d Descriptor) bits(p []byte) uint64 {
	bo := d.byteOrder()
	switch d.Width {
	case 1:
		return uint64(p[0])
	case 2:
		return uint64(bo.Uint16(p))
	case 4:
		return uint64(bo.Uint32(p))
	default:
		return bo.Uint64(p)
	}
}

func (d Descriptor) putBits(p []byte, v uint64) {
	bo := d.byteOrder()
	switch d.Width {
	case 1:
		p[0] = byte(v)
	case 2:
		bo.PutUint16(p, uint16(v))
	case 4:
		bo.PutUint32(p, uint32(v))
	default:
		bo.PutUint64(p, v)
	}
}

// value decodes the element stored in p[:d.Width]. d must be valid.
func (d Descriptor) value(p []byte) float64 {
	u := d.bits(p)
	switch d.Kind {
	case Signed:
		switch d.Width {
		case 1:
			return float64(int8(u))
		case 2:
			return float64(int16(u))
		case 4:
			return float64(int32(u))
		default:
			return float64(int64(u))
		}
	case Unsigned:
		return float64(u)
	default:
		if d.Width == 4 {
			return float64(math.Float32frombits(uint32(u)))
		}
		return math.Float64frombits(u)
	}
}

// put encodes v into p[:d.Width], converting it to the element type of d.
// d must be valid.
func (d Descriptor) put(p []byte, v float64) {
	switch d.Kind {
	case Signed:
		d.putBits(p, uint64(int64(v)))
	case Unsigned:
		d.putBits(p, uint64(v))
	default:
		if d.Width == 4 {
			d.putBits(p, uint64(math.Float32bits(float32(v))))
			return
		}
		d.putBits(p, math.Float64bits(v))
	}
}

// decodeElements decodes n elements of d from p into a new slice.
func decodeElements(d Descriptor, p []byte, n int) ([]float64, error) {
	// n comes from NR_PT and may be large enough for n*Width to overflow
	if n > len(p)/d.Width {
		want := math.MaxInt
		if n <= math.MaxInt/d.Width {
			want = n * d.Width
		}
		return nil, errTruncated(want, len(p))
	}
	out := make([]float64, n)
	for i := range out {
		beg := i * d.Width
		out[i] = d.value(p[beg : beg+d.Width])
	}
	return out, nil
}
