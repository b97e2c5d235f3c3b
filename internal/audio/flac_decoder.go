package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACDecoder implements AudioDecoder for FLAC files
type FLACDecoder struct {
	stream      *flac.Stream
	file        *os.File
	sampleRate  int
	numSamples  int64
	numChannels int

	// decoded samples of the current frame not yet returned
	pending []float64
}

// NewFLACDecoder creates a new FLAC decoder
func NewFLACDecoder(filename string) (*FLACDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	// Parse FLAC stream - reads signature and StreamInfo block
	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create FLAC decoder: %w", err)
	}

	return &FLACDecoder{
		stream:      stream,
		file:        f,
		sampleRate:  int(stream.Info.SampleRate),
		numSamples:  int64(stream.Info.NSamples),
		numChannels: int(stream.Info.NChannels),
	}, nil
}

// ReadChunk reads the next chunk of samples
func (d *FLACDecoder) ReadChunk(numSamples int) ([]float64, error) {
	samples := make([]float64, 0, numSamples)

	for len(samples) < numSamples {
		if len(d.pending) == 0 {
			if err := d.parseFrame(); err != nil {
				if err == io.EOF {
					break
				}
				return nil, err
			}
			continue
		}
		n := min(numSamples-len(samples), len(d.pending))
		samples = append(samples, d.pending[:n]...)
		d.pending = d.pending[n:]
	}

	if len(samples) == 0 {
		return nil, io.EOF
	}
	return samples, nil
}

// parseFrame decodes the next FLAC frame into d.pending, averaging channels.
func (d *FLACDecoder) parseFrame() error {
	frame, err := d.stream.ParseNext()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("failed to parse FLAC frame: %w", err)
	}
	if len(frame.Subframes) == 0 {
		return nil
	}

	// FLAC supports 4-32 bits per sample
	maxVal := float64(int64(1) << (frame.BitsPerSample - 1))
	numCh := float64(len(frame.Subframes))

	n := len(frame.Subframes[0].Samples)
	d.pending = make([]float64, n)
	for i := 0; i < n; i++ {
		var sum int64
		for _, subframe := range frame.Subframes {
			sum += int64(subframe.Samples[i])
		}
		d.pending[i] = float64(sum) / numCh / maxVal
	}
	return nil
}

// SampleRate returns the sample rate
func (d *FLACDecoder) SampleRate() int {
	return d.sampleRate
}

// NumSamples returns the total number of samples
func (d *FLACDecoder) NumSamples() int64 {
	return d.numSamples
}

// NumChannels returns the number of audio channels
func (d *FLACDecoder) NumChannels() int {
	return d.numChannels
}

// Close closes the decoder and releases resources
func (d *FLACDecoder) Close() error {
	if d.stream != nil {
		d.stream.Close()
	}
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
