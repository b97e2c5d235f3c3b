package audio

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	"github.com/argusdusty/gofft"

	"github.com/linuxmatters/isfconv/internal/config"
)

// hann returns the i-th coefficient of an n-point symmetric Hann window.
// Windows shorter than three points are rectangular.
func hann(i, n int) float64 {
	if n < 3 {
		return 1
	}
	return 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
}

// ApplyHanning applies a Hanning window to the input data
func ApplyHanning(data []float64) []float64 {
	windowed := make([]float64, len(data))
	for i := range data {
		windowed[i] = data[i] * hann(i, len(data))
	}
	return windowed
}

// Spectrum is a single-sided amplitude spectrum.
type Spectrum struct {
	Freq      []float64 // Hz, or cycles per X unit
	Magnitude []float64 // amplitude, in the units of the input
	Size      int       // FFT length after zero padding
}

// ComputeSpectrum returns the Hann-windowed amplitude spectrum of samples
// taken every dt. The record is zero-padded to a power of two of at least
// config.FFTSize points. A pure sine on a bin centre reads its amplitude.
func ComputeSpectrum(samples []float64, dt float64) (*Spectrum, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples")
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("invalid sample interval %g", dt)
	}

	n := nextPow2(max(len(samples), config.FFTSize))
	buf := make([]complex128, n)
	var gain float64
	for i, s := range ApplyHanning(samples) {
		gain += hann(i, len(samples))
		buf[i] = complex(s, 0)
	}

	if err := gofft.FFT(buf); err != nil {
		return nil, fmt.Errorf("FFT computation failed: %w", err)
	}

	bins := n/2 + 1
	spec := &Spectrum{
		Freq:      make([]float64, bins),
		Magnitude: make([]float64, bins),
		Size:      n,
	}
	df := 1 / (dt * float64(n))
	for k := 0; k < bins; k++ {
		mag := cmplx.Abs(buf[k]) / gain
		if k != 0 && k != n/2 {
			mag *= 2
		}
		spec.Freq[k] = float64(k) * df
		spec.Magnitude[k] = mag
	}
	return spec, nil
}

// Peak returns the frequency and magnitude of the strongest non-DC bin.
func (s *Spectrum) Peak() (freq, mag float64) {
	for k := 1; k < len(s.Magnitude); k++ {
		if s.Magnitude[k] > mag {
			freq, mag = s.Freq[k], s.Magnitude[k]
		}
	}
	return freq, mag
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
