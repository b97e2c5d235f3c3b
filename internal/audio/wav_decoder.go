package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDecoder implements AudioDecoder for WAV files
type WAVDecoder struct {
	decoder    *wav.Decoder
	file       *os.File
	sampleRate int
	bitDepth   int
	numChans   int
	numSamples int64
}

// NewWAVDecoder creates a new WAV decoder
func NewWAVDecoder(filename string) (*WAVDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("invalid WAV file")
	}

	// Get format info without reading all samples
	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek to PCM data: %w", err)
	}
	if decoder.NumChans == 0 || decoder.BitDepth == 0 {
		f.Close()
		return nil, fmt.Errorf("invalid WAV format (%d channels, %d bits)", decoder.NumChans, decoder.BitDepth)
	}

	frameBytes := int64(decoder.BitDepth/8) * int64(decoder.NumChans)
	var numSamples int64
	if frameBytes > 0 {
		numSamples = decoder.PCMLen() / frameBytes
	}

	return &WAVDecoder{
		decoder:    decoder,
		file:       f,
		sampleRate: int(decoder.SampleRate),
		bitDepth:   int(decoder.BitDepth),
		numChans:   int(decoder.NumChans),
		numSamples: numSamples,
	}, nil
}

// ReadChunk reads the next chunk of samples
func (d *WAVDecoder) ReadChunk(numSamples int) ([]float64, error) {
	// numSamples × numChannels for interleaved data
	intBuf := &audio.IntBuffer{
		Data: make([]int, numSamples*d.numChans),
		Format: &audio.Format{
			NumChannels: d.numChans,
			SampleRate:  d.sampleRate,
		},
	}

	n, err := d.decoder.PCMBuffer(intBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}

	// Drop a trailing partial frame
	numTimeSamples := n / d.numChans
	if numTimeSamples == 0 {
		return nil, io.EOF
	}

	samples := make([]float64, numTimeSamples)
	for i := range samples {
		var sum float64
		for ch := 0; ch < d.numChans; ch++ {
			sum += d.normalise(intBuf.Data[i*d.numChans+ch])
		}
		samples[i] = sum / float64(d.numChans)
	}

	return samples, nil
}

// 8-bit WAV is unsigned, everything wider is signed.
func (d *WAVDecoder) normalise(v int) float64 {
	if d.bitDepth == 8 {
		return float64(v-128) / 128
	}
	return float64(v) / float64(audio.IntMaxSignedValue(d.bitDepth))
}

// SampleRate returns the sample rate
func (d *WAVDecoder) SampleRate() int {
	return d.sampleRate
}

// NumSamples returns the number of frames in the PCM chunk
func (d *WAVDecoder) NumSamples() int64 {
	return d.numSamples
}

// NumChannels returns the number of audio channels
func (d *WAVDecoder) NumChannels() int {
	return d.numChans
}

// Close closes the decoder and releases resources
func (d *WAVDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
