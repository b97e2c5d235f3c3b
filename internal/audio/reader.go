package audio

import (
	"fmt"
	"io"
)

const readChunkSize = 4096

// ReadAll drains dec and returns its mono samples.
func ReadAll(dec AudioDecoder) ([]float64, error) {
	var samples []float64
	if n := dec.NumSamples(); n > 0 {
		samples = make([]float64, 0, n)
	}

	for {
		chunk, err := dec.ReadChunk(readChunkSize)
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
		samples = append(samples, chunk...)
	}
}

// ReadFile decodes a WAV, FLAC or MP3 file to mono samples in [-1, 1].
func ReadFile(filename string) (samples []float64, sampleRate int, err error) {
	dec, err := Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open audio: %w", err)
	}
	defer dec.Close()

	if dec.SampleRate() <= 0 {
		return nil, 0, fmt.Errorf("invalid sample rate %d", dec.SampleRate())
	}

	samples, err = ReadAll(dec)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode audio: %w", err)
	}
	return samples, dec.SampleRate(), nil
}
