package audio

import (
	"math"
	"testing"
)

func TestAnalyze(t *testing.T) {
	testCases := []struct {
		name    string
		samples []float64
		want    Stats
	}{
		{
			name:    "empty",
			samples: nil,
			want:    Stats{},
		},
		{
			name:    "single sample",
			samples: []float64{-2},
			want:    Stats{N: 1, Min: -2, Max: -2, Mean: -2, RMS: 2},
		},
		{
			name:    "ramp",
			samples: []float64{1, 2, 3, 4},
			want: Stats{
				N: 4, Min: 1, Max: 4, Mean: 2.5,
				StdDev: math.Sqrt(5.0 / 3), RMS: math.Sqrt(7.5),
			},
		},
		{
			name:    "symmetric square wave",
			samples: []float64{1, -1, 1, -1},
			want: Stats{
				N: 4, Min: -1, Max: 1, Mean: 0,
				StdDev: math.Sqrt(4.0 / 3), RMS: 1,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Analyze(tc.samples)
			if got.N != tc.want.N {
				t.Errorf("N = %d, want %d", got.N, tc.want.N)
			}
			for _, f := range []struct {
				name      string
				got, want float64
			}{
				{"Min", got.Min, tc.want.Min},
				{"Max", got.Max, tc.want.Max},
				{"Mean", got.Mean, tc.want.Mean},
				{"StdDev", got.StdDev, tc.want.StdDev},
				{"RMS", got.RMS, tc.want.RMS},
			} {
				if math.Abs(f.got-f.want) > 1e-12 {
					t.Errorf("%s = %v, want %v", f.name, f.got, f.want)
				}
			}
		})
	}
}

func TestStats_PeakToPeak(t *testing.T) {
	st := Analyze([]float64{-0.5, 0.25, 1.5})
	if got := st.PeakToPeak(); got != 2 {
		t.Errorf("PeakToPeak() = %v, want 2", got)
	}
}
