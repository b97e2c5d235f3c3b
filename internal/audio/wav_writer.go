package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/linuxmatters/isfconv/internal/config"
)

const wavFormatPCM = 1

// WriteWAV writes samples in [-1, 1] as a mono PCM WAV file. Values outside
// that range are clipped.
func WriteWAV(filename string, samples []float64, sampleRate, bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth %d (want 16, 24 or 32)", bitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}

	maxVal := float64(audio.IntMaxSignedValue(bitDepth))
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(math.Round(clip(s) * maxVal))
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	// Close rewrites the RIFF sizes but leaves f open
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalise WAV file: %w", err)
	}
	return f.Close()
}

func clip(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}

// Normalise scales samples so the largest magnitude is 1. Silence and
// non-finite peaks are returned unscaled.
func Normalise(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak == 0 || math.IsInf(peak, 0) || math.IsNaN(peak) {
		return out
	}
	for i := range out {
		out[i] /= peak
	}
	return out
}

// RateFromInterval converts a sample interval in seconds to a WAV sample
// rate clamped to the supported range.
func RateFromInterval(dt float64) int {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return config.SampleRate
	}
	rate := math.Round(1 / dt)
	return int(math.Max(config.MinSampleRate, math.Min(config.MaxSampleRate, rate)))
}
