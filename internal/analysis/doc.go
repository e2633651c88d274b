// Package analysis turns recorded runs into numbers and pictures.
//
//   - [SpectrumOf]: power spectrum of a sampled signal, e.g. a field component
//   - [DominantFrequency]: the strongest non-DC frequency of a signal
//   - [SpacetimeDiagram]: a world line projected onto one spatial axis and ct
//   - [Crossings]: when a world line crosses a plane
//   - [SweepC]: field values at a probe point across speeds of light
//
// # Radiation Frequency
//
// An oscillating charge radiates at its own frequency; the field recorded at
// a fixed point recovers it:
//
//	f, err := analysis.DominantFrequency(ex, 1/dt)
package analysis
