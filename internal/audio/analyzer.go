package audio

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises a trace.
type Stats struct {
	N      int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64 // sample standard deviation, 0 for fewer than two points
	RMS    float64
}

// PeakToPeak returns Max - Min.
func (s Stats) PeakToPeak() float64 {
	return s.Max - s.Min
}

// Analyze computes whole-trace statistics. An empty trace yields zero Stats.
func Analyze(samples []float64) Stats {
	st := Stats{N: len(samples)}
	if st.N == 0 {
		return st
	}

	st.Min = floats.Min(samples)
	st.Max = floats.Max(samples)
	if st.N < 2 {
		st.Mean = samples[0]
	} else {
		st.Mean, st.StdDev = stat.MeanStdDev(samples, nil)
	}
	st.RMS = math.Sqrt(floats.Dot(samples, samples) / float64(st.N))
	return st
}
