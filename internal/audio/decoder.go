package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AudioDecoder defines the interface for all audio format decoders
type AudioDecoder interface {
	// ReadChunk reads up to numSamples mono samples in [-1, 1].
	// Returns io.EOF once the stream is exhausted.
	ReadChunk(numSamples int) ([]float64, error)

	// SampleRate returns the audio sample rate in Hz
	SampleRate() int

	// NumSamples returns the total number of samples per channel.
	// Returns 0 if the length is unknown.
	NumSamples() int64

	// NumChannels returns the number of channels in the source
	NumChannels() int

	// Close closes the decoder and releases resources
	Close() error
}

// Open returns the decoder matching the file extension.
func Open(filename string) (AudioDecoder, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".wav":
		d, err := NewWAVDecoder(filename)
		if err != nil {
			return nil, err
		}
		return d, nil
	case ".flac":
		d, err := NewFLACDecoder(filename)
		if err != nil {
			return nil, err
		}
		return d, nil
	case ".mp3":
		d, err := NewMP3Decoder(filename)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported audio format %q (want .wav, .flac or .mp3)", ext)
	}
}
