package isf

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Read decodes the ISF file held by r. Only the preamble (bounded by
// Options.PreambleLimit) and the payload region are read.
func Read(r io.ReaderAt, opts *Options) (*Waveform, error) {
	buf := make([]byte, opts.preambleLimit())
	n, err := r.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("isf: could not read preamble: %w", err)
	}

	h, err := ParseHeader(buf[:n], opts)
	if err != nil {
		return nil, err
	}

	payload, err := readPayload(r, h.Curve)
	if err != nil {
		return nil, err
	}

	x, y, err := DecodePayload(h, payload)
	if err != nil {
		return nil, err
	}

	return &Waveform{Header: h, X: x, Y: y}, nil
}

// readPayload reads the block located by c. The declared length is checked
// against the size of r before any buffer of that length is allocated; when
// the size is unknown the buffer only grows with the bytes actually read.
func readPayload(r io.ReaderAt, c Curve) ([]byte, error) {
	if size, ok := readerSize(r); ok {
		avail := max(size-c.Offset, 0)
		if int64(c.Length) > avail {
			return nil, errTruncated(c.Length, int(avail))
		}
		payload := make([]byte, c.Length)
		n, err := r.ReadAt(payload, c.Offset)
		if n < len(payload) {
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("isf: could not read payload: %w", err)
			}
			return nil, errTruncated(len(payload), n)
		}
		return payload, nil
	}

	payload, err := io.ReadAll(io.NewSectionReader(r, c.Offset, int64(c.Length)))
	if err != nil {
		return nil, fmt.Errorf("isf: could not read payload: %w", err)
	}
	if len(payload) < c.Length {
		return nil, errTruncated(c.Length, len(payload))
	}
	return payload, nil
}

// readerSize returns the total size of r when it can be known up front.
func readerSize(r io.ReaderAt) (int64, bool) {
	switch r := r.(type) {
	case interface{ Size() int64 }:
		return r.Size(), true
	case *os.File:
		fi, err := r.Stat()
		if err != nil || !fi.Mode().IsRegular() {
			return 0, false
		}
		return fi.Size(), true
	}
	return 0, false
}

// ReadFile decodes the named ISF file.
func ReadFile(fname string, opts *Options) (*Waveform, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("isf: could not open %q: %w", fname, err)
	}
	defer f.Close()

	return Read(f, opts)
}

// WriteXYFile encodes x and y as an XY waveform into the named file.
func WriteXYFile(fname string, x, y Array) error {
	h, rawX, rawY, err := EncodeXY(x, y)
	if err != nil {
		return err
	}
	pre, err := RenderHeader(h)
	if err != nil {
		return err
	}
	return WriteFile(fname, pre, rawX, rawY)
}
