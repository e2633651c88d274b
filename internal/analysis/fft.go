package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lienard/internal/dynamo"
)

// Spectrum is a one-sided power spectrum.
type Spectrum struct {
	Freq  []float64
	Power []float64
}

// PowerSpectrum returns the magnitude of the DFT of data for the
// non-negative frequencies, with the mean removed first.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	centered := make([]float64, len(data))
	copy(centered, data)
	floats.AddConst(-floats.Sum(data)/float64(len(data)), centered)

	coeffs := fft.FFTReal(centered)
	ps := make([]float64, len(coeffs)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// SpectrumOf computes the power spectrum of samples taken at sampleRate.
func SpectrumOf(data []float64, sampleRate float64) Spectrum {
	ps := PowerSpectrum(data)
	freq := make([]float64, len(ps))
	for i := range freq {
		freq[i] = float64(i) * sampleRate / float64(len(data))
	}
	return Spectrum{Freq: freq, Power: ps}
}

// DominantFrequency is the frequency of the largest spectral peak.
func DominantFrequency(data []float64, sampleRate float64) (float64, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("%w: need at least 4 samples, got %d", dynamo.ErrParameterBounds, len(data))
	}
	if !(sampleRate > 0) {
		return 0, fmt.Errorf("%w: sample rate must be positive", dynamo.ErrParameterBounds)
	}
	s := SpectrumOf(data, sampleRate)
	peak := floats.MaxIdx(s.Power[1:]) + 1
	return s.Freq[peak], nil
}
