// Package isf reads and writes ISF waveform files, the binary format saved by
// Tektronix oscilloscopes.
//
// An ISF file is a Latin-1 text preamble of ":NAME value;" fields followed
// by a binary block ":CURVE #<n><length>" and length bytes of samples. The
// samples are laid out according to PT_FMT:
//
//	Y    NR_PT Y samples; X is synthesised from XZERO and XINCR.
//	ENV  NR_PT samples forming (min, max) pairs; NR_PT/2 X positions.
//	XY   an X block then a Y block, NR_PT/2 samples each.
//
// Raw samples are calibrated as
//
//	y = (raw - YOFF) * YMULT + YZERO
//	x = (raw - PT_OFF) * XINCR + XZERO   (XY only)
//
// Writing is limited to the XY layout with identity calibration.
package isf // import "github.com/linuxmatters/isfconv/internal/isf"
